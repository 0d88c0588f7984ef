package repository

import (
	"context"
	"testing"

	"salon-booking/internal/infrastructure/database"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteSlotRepository_RoundTrip(t *testing.T) {
	log, _ := test.NewNullLogger()
	db, err := database.NewSQLiteConnection(":memory:", log)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewSQLiteSlotRepository(db)
	ctx := context.Background()

	data, err := repo.Get(ctx, "salonAppointments")
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, repo.Set(ctx, "salonAppointments", []byte(`[{"id":"a1"}]`)))
	require.NoError(t, repo.Set(ctx, "salonAppointments", []byte(`[{"id":"a1"},{"id":"a2"}]`)))

	data, err = repo.Get(ctx, "salonAppointments")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a1"},{"id":"a2"}]`, string(data))

	var rows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM storage_slots`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestSQLiteSlotRepository_ClosedDatabase(t *testing.T) {
	log, _ := test.NewNullLogger()
	db, err := database.NewSQLiteConnection(":memory:", log)
	require.NoError(t, err)
	db.Close()

	repo := NewSQLiteSlotRepository(db)
	_, err = repo.Get(context.Background(), "salonAppointments")
	assert.Error(t, err)
	assert.Error(t, repo.Set(context.Background(), "salonAppointments", []byte(`[]`)))
}
