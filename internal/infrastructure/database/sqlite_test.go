package database

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteConnection_CreatesTable(t *testing.T) {
	log, _ := test.NewNullLogger()
	path := filepath.Join(t.TempDir(), "nested", "salon.db")

	db, err := NewSQLiteConnection(path, log)
	require.NoError(t, err)

	var name string
	require.NoError(t, db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'storage_slots'`).Scan(&name))
	assert.Equal(t, "storage_slots", name)
	require.NoError(t, db.Close())

	// reopening an existing database is fine
	db, err = NewSQLiteConnection(path, log)
	require.NoError(t, err)
	assert.NoError(t, db.Close())
}
