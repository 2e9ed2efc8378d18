package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := fs.ReadDir(migrations, "migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())

		body, err := fs.ReadFile(migrations, "migrations/"+e.Name())
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", e.Name())
		assert.Contains(t, string(body), "-- +goose Down", e.Name())
	}
	assert.Equal(t, []string{"00001_init.sql", "00002_normalize_image_files.sql"}, names)
}

func TestInitMigrationDeclaresLikeUniqueness(t *testing.T) {
	body, err := fs.ReadFile(migrations, "migrations/00001_init.sql")
	require.NoError(t, err)

	sql := string(body)
	assert.True(t, strings.Contains(sql, "UNIQUE (user_id, post_id)") || strings.Contains(sql, "UNIQUE(user_id, post_id)"))
	assert.NotContains(t, strings.ToUpper(sql), "ON DELETE CASCADE")
}
