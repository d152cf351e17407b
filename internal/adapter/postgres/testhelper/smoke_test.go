package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)
	Reset(t, pool)

	var last int64
	err := pool.QueryRow(context.Background(), `SELECT last_value FROM service_request_seq`).Scan(&last)
	if err != nil {
		t.Fatalf("expected sequence row in DB, got error: %v", err)
	}
	if last != 0 {
		t.Fatalf("expected rewound sequence, got %d", last)
	}

	if n := CountRows(t, pool, "service_requests"); n != 0 {
		t.Fatalf("expected empty service_requests, got %d rows", n)
	}
}
