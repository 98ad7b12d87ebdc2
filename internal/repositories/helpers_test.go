package repositories

import (
	"log/slog"
	"testing"

	"github.com/jordanhw/honeywatch/internal/storage"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(t.TempDir(), slog.Default())
	require.NoError(t, err)
	return store
}
