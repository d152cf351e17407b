// Package ledger implements the Activity Ledger on PostgreSQL.
// Appends join the caller's transaction when there is one, so a request
// mutation and its ledger entries commit together.
package ledger

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/tenantdesk-backend/internal/adapter/postgres"
	"github.com/heartmarshall/tenantdesk-backend/internal/domain"
)

const table = "activity_log"

var columns = []string{
	"id", "related_entity_id", "related_entity_type", "ordinal", "type",
	"title", "description", "user_id", "user_name", "created_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type row struct {
	ID                string    `db:"id"`
	RelatedEntityID   string    `db:"related_entity_id"`
	RelatedEntityType string    `db:"related_entity_type"`
	Ordinal           int       `db:"ordinal"`
	Type              string    `db:"type"`
	Title             string    `db:"title"`
	Description       *string   `db:"description"`
	UserID            *string   `db:"user_id"`
	UserName          *string   `db:"user_name"`
	CreatedAt         time.Time `db:"created_at"`
}

func (r row) toDomain() domain.ActivityLogItem {
	return domain.ActivityLogItem{
		ID:                r.ID,
		Type:              domain.ActivityType(r.Type),
		Title:             r.Title,
		Timestamp:         r.CreatedAt.UTC(),
		Description:       r.Description,
		UserID:            r.UserID,
		UserName:          r.UserName,
		RelatedEntityID:   r.RelatedEntityID,
		RelatedEntityType: domain.EntityType(r.RelatedEntityType),
	}
}

// Repo provides activity ledger persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
	tx *postgres.TxManager
}

// New creates a new ledger repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db, tx: postgres.NewTxManager(db)}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Append validates and stores items in one statement. Ordinals continue from
// the highest stored ordinal of each related entity.
func (r *Repo) Append(ctx context.Context, items ...domain.ActivityLogItem) ([]domain.ActivityLogItem, error) {
	if len(items) == 0 {
		return []domain.ActivityLogItem{}, nil
	}
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return nil, fmt.Errorf("activity item %d: %w", i, err)
		}
	}

	out := make([]domain.ActivityLogItem, len(items))
	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)

		next := make(map[string]int)
		insert := psql.Insert(table).Columns(columns...)
		now := time.Now().UTC()

		for i, it := range items {
			rel := it.RelatedEntityID
			if _, ok := next[rel]; !ok {
				last, err := lastOrdinal(ctx, q, rel)
				if err != nil {
					return err
				}
				next[rel] = last
			}
			next[rel]++
			ordinal := next[rel]

			it.ID = domain.FormatActivityID(rel, ordinal)
			if it.Timestamp.IsZero() {
				it.Timestamp = now
			}
			out[i] = it

			insert = insert.Values(
				it.ID, rel, it.RelatedEntityType.String(), ordinal, it.Type.String(),
				it.Title, it.Description, it.UserID, it.UserName, it.Timestamp,
			)
		}

		sql, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("build activity insert: %w", err)
		}
		if _, err := q.Exec(ctx, sql, args...); err != nil {
			return postgres.MapError(err, "activity_log", items[0].RelatedEntityID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func lastOrdinal(ctx context.Context, q postgres.Querier, rel string) (int, error) {
	sql, args, err := psql.Select("COALESCE(MAX(ordinal), 0)").
		From(table).
		Where(sq.Eq{"related_entity_id": rel}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build ordinal query: %w", err)
	}

	var last int
	if err := q.QueryRow(ctx, sql, args...).Scan(&last); err != nil {
		return 0, postgres.MapError(err, "activity_log", rel)
	}
	return last, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListFor returns every entry of the related entity. SortDesc yields
// newest-first, anything else chronological.
func (r *Repo) ListFor(ctx context.Context, relatedEntityID string, order domain.SortOrder) ([]domain.ActivityLogItem, error) {
	direction := "ASC"
	if order == domain.SortDesc {
		direction = "DESC"
	}

	sql, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"related_entity_id": relatedEntityID}).
		OrderBy("ordinal " + direction).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build activity query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "activity_log", relatedEntityID)
	}

	items := make([]domain.ActivityLogItem, len(rows))
	for i, rw := range rows {
		items[i] = rw.toDomain()
	}
	return items, nil
}
