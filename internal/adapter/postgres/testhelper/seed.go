package testhelper

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Reset empties every table and rewinds the request sequence so each test
// starts from SR-0001. TRUNCATE bypasses the append-only row trigger on
// activity_log.
func Reset(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `
		TRUNCATE activity_log, service_request_media, service_request_comments, service_requests;
		UPDATE service_request_seq SET last_value = 0;
	`)
	if err != nil {
		t.Fatalf("testhelper: reset tables: %v", err)
	}
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()

	var n int
	if err := pool.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("testhelper: count %s: %v", table, err)
	}
	return n
}
