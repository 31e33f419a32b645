package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ncobase/taskmate/config"
	"github.com/ncobase/taskmate/data/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "session.db")

	s, err := kv.Open(ctx, &config.Session{Driver: "sqlite", Sqlite: &config.SessionSqlite{Source: path}})
	require.NoError(t, err)

	_, err = s.Get(ctx, "userData")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, s.Set(ctx, "userData", `{"token":"a"}`))
	require.NoError(t, s.Set(ctx, "userData", `{"token":"b"}`))
	got, err := s.Get(ctx, "userData")
	require.NoError(t, err)
	assert.Equal(t, `{"token":"b"}`, got)
	require.NoError(t, s.Close())

	// reopen sees persisted value
	s2, err := Open(ctx, path)
	require.NoError(t, err)
	defer s2.Close()
	got, err = s2.Get(ctx, "userData")
	require.NoError(t, err)
	assert.Equal(t, `{"token":"b"}`, got)

	require.NoError(t, s2.Delete(ctx, "userData"))
	require.NoError(t, s2.Delete(ctx, "userData"))
	_, err = s2.Get(ctx, "userData")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestOpenRequiresSource(t *testing.T) {
	_, err := kv.Open(context.Background(), &config.Session{Driver: "sqlite", Sqlite: &config.SessionSqlite{}})
	assert.ErrorContains(t, err, "connection source is empty")
}
