/*
seed_test.go - Tests for the demo data loader
*/
package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/vacation-planner/booking"
	"github.com/warp/vacation-planner/store/sqlite"
)

func TestSeedDemoData_PopulatesEmptyStore(t *testing.T) {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	ctx := context.Background()

	require.NoError(t, SeedDemoData(ctx, store))

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 5)

	bookings, err := store.ListAllBookings(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, 3)
	for _, b := range bookings {
		assert.NotEmpty(t, b.Days, "seeded bookings carry expanded day sets")
		assert.NotNil(t, b.AbsenceType)
	}

	pending, err := store.ListBookingsByApproval(ctx, booking.ApprovalPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	holidays, err := store.ListHolidays(ctx)
	require.NoError(t, err)
	assert.Len(t, holidays, 5)
}

func TestSeedDemoData_SkipsNonEmptyStore(t *testing.T) {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	ctx := context.Background()

	require.NoError(t, SeedDemoData(ctx, store))
	require.NoError(t, SeedDemoData(ctx, store))

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 5)
}
