package activity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

func (f Format) String() string { return string(f) }

// IsValid reports whether f is a supported format.
func (f Format) IsValid() bool {
	return f == FormatJSON || f == FormatXLSX
}

// ContentType returns the MIME type of the rendered document.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/json"
}

// Document is a rendered export.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

const sheetName = "Activity"

var exportHeader = []string{
	"ID",
	"Type",
	"Title",
	"Description",
	"User ID",
	"User Name",
	"Timestamp",
}

var columnWidths = []float64{
	24, // ID
	22, // Type
	28, // Title
	48, // Description
	18, // User ID
	24, // User Name
	24, // Timestamp
}

type jsonExport struct {
	RequestID  string      `json:"request_id"`
	ExportedAt time.Time   `json:"exported_at"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	UserID      *string   `json:"user_id,omitempty"`
	UserName    *string   `json:"user_name,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func renderJSON(requestID string, exportedAt time.Time, items []domain.ActivityLogItem) ([]byte, error) {
	doc := jsonExport{
		RequestID:  requestID,
		ExportedAt: exportedAt,
		Entries:    make([]jsonEntry, 0, len(items)),
	}
	for _, it := range items {
		doc.Entries = append(doc.Entries, jsonEntry{
			ID:          it.ID,
			Type:        it.Type.String(),
			Title:       it.Title,
			Description: it.Description,
			UserID:      it.UserID,
			UserName:    it.UserName,
			Timestamp:   it.Timestamp,
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

func renderXLSX(requestID string, items []domain.ActivityLogItem) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   requestID + " activity",
		Subject: "Activity ledger export",
	}); err != nil {
		return nil, fmt.Errorf("set doc props: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for col, header := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("set header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("style header %s: %w", cell, err)
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, name, name, columnWidths[col]); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	for i, it := range items {
		row := []any{
			it.ID,
			it.Type.String(),
			it.Title,
			deref(it.Description),
			deref(it.UserID),
			deref(it.UserName),
			it.Timestamp.UTC().Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
