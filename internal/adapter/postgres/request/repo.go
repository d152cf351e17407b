// Package request implements the Request Store using PostgreSQL.
// Every write runs in one transaction: the callback executes against the
// locked row and the caller's ledger appends join the same transaction.
package request

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/tenantdesk-backend/internal/adapter/postgres"
	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
)

const entity = "service_request"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var requestColumns = []string{
	"id", "title", "description", "tenant_id", "building_id", "unit_id",
	"status", "priority", "contractor_id", "contractor_name", "contractor_avatar",
	"contractor_rating", "request_date", "completion_date", "viewed_by_landlord",
	"viewed_at", "scheduled_for", "contractor_arrived_at",
}

// Repo provides service request persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
	tx *postgres.TxManager
}

// New creates a new request repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db, tx: postgres.NewTxManager(db)}
}

// ---------------------------------------------------------------------------
// Raw SQL
// ---------------------------------------------------------------------------

// The counter row lock is held until commit, so concurrent creates queue
// behind each other and a rolled-back create leaves no gap.
const nextSeqSQL = `
UPDATE service_request_seq SET last_value = last_value + 1
RETURNING last_value`

const updateRequestSQL = `
UPDATE service_requests SET
    title = $2, description = $3, status = $4, priority = $5,
    contractor_id = $6, contractor_name = $7, contractor_avatar = $8, contractor_rating = $9,
    completion_date = $10, viewed_by_landlord = $11, viewed_at = $12,
    scheduled_for = $13, contractor_arrived_at = $14
WHERE id = $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Get returns the request with the given ID including comments and media.
func (r *Repo) Get(ctx context.Context, id string) (*domain.ServiceRequest, error) {
	return r.load(ctx, postgres.QuerierFromCtx(ctx, r.db), id, false)
}

// List returns all requests matching filter in creation order.
func (r *Repo) List(ctx context.Context, filter domain.RequestFilter) ([]domain.ServiceRequest, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	b := psql.Select(requestColumns...).From("service_requests").OrderBy("seq ASC")
	if cond := filterCondition(filter); cond != nil {
		b = b.Where(cond)
	}
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []requestRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list service requests: %w", err)
	}
	if len(rows) == 0 {
		return []domain.ServiceRequest{}, nil
	}

	ids := make([]string, len(rows))
	for i, rw := range rows {
		ids[i] = rw.ID
	}
	comments, err := loadComments(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	media, err := loadMedia(ctx, q, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ServiceRequest, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain(comments[rw.ID], media[rw.ID])
	}
	return out, nil
}

// filterCondition OR-s the populated filter criteria. nil means no WHERE.
func filterCondition(f domain.RequestFilter) sq.Sqlizer {
	if f.IsEmpty() {
		return nil
	}
	var or sq.Or
	if len(f.BuildingIDs) > 0 {
		or = append(or, sq.Eq{"building_id": f.BuildingIDs})
	}
	if f.TenantID != "" {
		or = append(or, sq.Eq{"tenant_id": f.TenantID})
	}
	if f.UnitID != "" {
		or = append(or, sq.Eq{"unit_id": f.UnitID})
	}
	if f.CommonAreaOf != "" {
		or = append(or, sq.And{sq.Eq{"unit_id": nil}, sq.Eq{"building_id": f.CommonAreaOf}})
	}
	return or
}

func (r *Repo) load(ctx context.Context, q postgres.Querier, id string, forUpdate bool) (*domain.ServiceRequest, error) {
	b := psql.Select(requestColumns...).From("service_requests").Where(sq.Eq{"id": id})
	if forUpdate {
		b = b.Suffix("FOR UPDATE")
	}
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	var rw requestRow
	if err := pgxscan.Get(ctx, q, &rw, sql, args...); err != nil {
		return nil, postgres.MapError(err, entity, id)
	}

	ids := []string{id}
	comments, err := loadComments(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	media, err := loadMedia(ctx, q, ids)
	if err != nil {
		return nil, err
	}

	sr := rw.toDomain(comments[id], media[id])
	return &sr, nil
}

func loadComments(ctx context.Context, q postgres.Querier, ids []string) (map[string][]domain.Comment, error) {
	sql, args, err := psql.Select(
		"request_id", "id", "user_id", "user_name", "user_avatar", "user_role",
		"message", "attachments", "created_at",
	).From("service_request_comments").
		Where(sq.Eq{"request_id": ids}).
		OrderBy("request_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build comments query: %w", err)
	}

	var rows []commentRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}

	out := make(map[string][]domain.Comment, len(ids))
	for _, rw := range rows {
		out[rw.RequestID] = append(out[rw.RequestID], rw.toDomain())
	}
	return out, nil
}

func loadMedia(ctx context.Context, q postgres.Querier, ids []string) (map[string][]domain.Media, error) {
	sql, args, err := psql.Select("request_id", "type", "url", "filename", "uploaded_at").
		From("service_request_media").
		Where(sq.Eq{"request_id": ids}).
		OrderBy("request_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build media query: %w", err)
	}

	var rows []mediaRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("load media: %w", err)
	}

	out := make(map[string][]domain.Media, len(ids))
	for _, rw := range rows {
		out[rw.RequestID] = append(out[rw.RequestID], rw.toDomain())
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create takes the next sequence number, runs fn on the new record and
// inserts it. If fn or any insert fails the transaction rolls back and the
// sequence number is not consumed.
func (r *Repo) Create(ctx context.Context, draft domain.ServiceRequestDraft, fn func(ctx context.Context, sr *domain.ServiceRequest) error) (*domain.ServiceRequest, error) {
	var created domain.ServiceRequest

	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)

		var seq int64
		if err := q.QueryRow(ctx, nextSeqSQL).Scan(&seq); err != nil {
			return fmt.Errorf("next request sequence: %w", err)
		}

		sr := domain.ServiceRequest{
			ID:          domain.FormatRequestID(seq),
			Title:       draft.Title,
			Description: draft.Description,
			TenantID:    draft.TenantID,
			BuildingID:  draft.BuildingID,
			UnitID:      draft.UnitID,
			Status:      domain.RequestStatusPending,
			Priority:    draft.Priority,
			RequestDate: time.Now().UTC().Truncate(time.Microsecond),
			Comments:    []domain.Comment{},
			Media:       []domain.Media{},
		}
		sr = sr.Clone()

		if fn != nil {
			if err := fn(ctx, &sr); err != nil {
				return err
			}
		}

		if err := insertRequest(ctx, q, seq, &sr); err != nil {
			return err
		}
		if err := insertChildren(ctx, q, &sr, 0, 0); err != nil {
			return err
		}

		created = sr
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// Mutate locks the row, applies fn to a working copy and writes the copy
// back. Comments and media are append-only, so only entries past the
// stored count are inserted.
func (r *Repo) Mutate(ctx context.Context, id string, fn func(ctx context.Context, sr *domain.ServiceRequest) error) (*domain.ServiceRequest, error) {
	var updated domain.ServiceRequest

	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)

		current, err := r.load(ctx, q, id, true)
		if err != nil {
			return err
		}
		prevComments, prevMedia := len(current.Comments), len(current.Media)

		work := current.Clone()
		if err := fn(ctx, &work); err != nil {
			return err
		}
		if len(work.Comments) < prevComments || len(work.Media) < prevMedia {
			return fmt.Errorf("%s %s: comments and media cannot be removed: %w", entity, id, domain.ErrConflict)
		}

		if err := updateRequest(ctx, q, &work); err != nil {
			return err
		}
		if err := insertChildren(ctx, q, &work, prevComments, prevMedia); err != nil {
			return err
		}

		updated = work
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func insertRequest(ctx context.Context, q postgres.Querier, seq int64, sr *domain.ServiceRequest) error {
	c := contractorColumns(sr.AssignedContractor)
	sql, args, err := psql.Insert("service_requests").
		Columns(append([]string{"seq"}, requestColumns...)...).
		Values(
			seq, sr.ID, sr.Title, sr.Description, sr.TenantID, sr.BuildingID, sr.UnitID,
			sr.Status.String(), sr.Priority.String(), c.id, c.name, c.avatar,
			c.rating, sr.RequestDate, sr.CompletionDate, sr.ViewedByLandlord,
			sr.ViewedAt, sr.ScheduledFor, sr.ContractorArrivedAt,
		).ToSql()
	if err != nil {
		return fmt.Errorf("build request insert: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, entity, sr.ID)
	}
	return nil
}

func updateRequest(ctx context.Context, q postgres.Querier, sr *domain.ServiceRequest) error {
	c := contractorColumns(sr.AssignedContractor)
	tag, err := q.Exec(ctx, updateRequestSQL,
		sr.ID, sr.Title, sr.Description, sr.Status.String(), sr.Priority.String(),
		c.id, c.name, c.avatar, c.rating,
		sr.CompletionDate, sr.ViewedByLandlord, sr.ViewedAt,
		sr.ScheduledFor, sr.ContractorArrivedAt,
	)
	if err != nil {
		return postgres.MapError(err, entity, sr.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, sr.ID, domain.ErrNotFound)
	}
	return nil
}

// insertChildren stores comments[fromComment:] and media[fromMedia:].
func insertChildren(ctx context.Context, q postgres.Querier, sr *domain.ServiceRequest, fromComment, fromMedia int) error {
	if len(sr.Comments) > fromComment {
		b := psql.Insert("service_request_comments").Columns(
			"request_id", "position", "id", "user_id", "user_name", "user_avatar",
			"user_role", "message", "attachments", "created_at",
		)
		for i := fromComment; i < len(sr.Comments); i++ {
			c := sr.Comments[i]
			attachments := c.Attachments
			if attachments == nil {
				attachments = []string{}
			}
			b = b.Values(sr.ID, i, c.ID, c.UserID, c.UserName, c.UserAvatar,
				c.UserRole.String(), c.Message, attachments, c.Timestamp)
		}
		if err := execInsert(ctx, q, b, sr.ID); err != nil {
			return err
		}
	}

	if len(sr.Media) > fromMedia {
		b := psql.Insert("service_request_media").Columns(
			"request_id", "position", "type", "url", "filename", "uploaded_at",
		)
		for i := fromMedia; i < len(sr.Media); i++ {
			m := sr.Media[i]
			b = b.Values(sr.ID, i, m.Type.String(), m.URL, m.Filename, m.UploadedAt)
		}
		if err := execInsert(ctx, q, b, sr.ID); err != nil {
			return err
		}
	}

	return nil
}

func execInsert(ctx context.Context, q postgres.Querier, b sq.InsertBuilder, id string) error {
	sql, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, entity, id)
	}
	return nil
}
