//go:build integration

package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'enrichment_records')`,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("query information_schema: %v", err)
	}
	if !exists {
		t.Fatal("expected enrichment_records table after migrations")
	}
}
