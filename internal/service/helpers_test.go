package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oseiserwaa/kitchen/internal/domain"
	"github.com/oseiserwaa/kitchen/internal/repository/embedded"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// newEmbeddedStorage returns a fresh in-memory SQLite store
func newEmbeddedStorage(t *testing.T) domain.Storage {
	t.Helper()
	db, err := embedded.Open(":memory:")
	require.NoError(t, err)
	store := embedded.NewStorage(db)
	t.Cleanup(func() { store.Close() })
	return store
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }

func intPtr(i int) *int { return &i }
