package grid_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/vacation-planner/booking"
	"github.com/warp/vacation-planner/calendar"
	"github.com/warp/vacation-planner/grid"
	"github.com/warp/vacation-planner/roster"
)

func date(year int, month time.Month, day int) calendar.Date {
	return calendar.NewDate(year, month, day)
}

func cellFor(t *testing.T, cells []grid.CalendarDay, d calendar.Date) grid.CalendarDay {
	t.Helper()
	for _, c := range cells {
		if c.Date.Equal(d) {
			return c
		}
	}
	t.Fatalf("no cell for %s", d)
	return grid.CalendarDay{}
}

func testConfig(daysPerWeek int) grid.Config {
	return grid.Config{
		DaysPerWeek: daysPerWeek,
		Weeks:       grid.DefaultWeeks,
		Today:       date(2024, time.January, 10),
	}
}

func vacationBooking() booking.Booking {
	return booking.Booking{
		ID:       "b-1",
		UserID:   "u-1",
		FromDate: date(2024, time.January, 8),
		ToDate:   date(2024, time.January, 10),
		Approval: booking.ApprovalApproved,
		AbsenceType: &booking.AbsenceType{
			ID: "at-1", Name: "Vacation", Shortening: "VAC",
		},
		Days: []booking.Day{
			{BookingID: "b-1", Date: date(2024, time.January, 8)},
			{BookingID: "b-1", Date: date(2024, time.January, 9)},
			{BookingID: "b-1", Date: date(2024, time.January, 10)},
		},
	}
}

// =============================================================================
// FLAT GRID TESTS
// =============================================================================

func TestBuild_WindowShape(t *testing.T) {
	monday := date(2024, time.January, 1)

	business := grid.Build(monday, testConfig(grid.BusinessWeek), nil)
	assert.Len(t, business, 30)
	// Business rows skip the weekend entirely and resume on the next Monday.
	assert.Equal(t, date(2024, time.January, 5), business[4].Date)
	assert.Equal(t, date(2024, time.January, 8), business[5].Date)

	full := grid.Build(monday, testConfig(grid.FullWeek), nil)
	assert.Len(t, full, 42)
	assert.Equal(t, date(2024, time.January, 7), full[6].Date)
}

func TestBuild_CellFlags(t *testing.T) {
	monday := date(2024, time.January, 1)
	cells := grid.Build(monday, testConfig(grid.FullWeek), nil)

	start := cellFor(t, cells, monday)
	assert.True(t, start.IsStartOfWeek)
	assert.False(t, start.IsWeekend)
	assert.Equal(t, 1, start.WeekNumber)

	saturday := cellFor(t, cells, date(2024, time.January, 6))
	assert.True(t, saturday.IsWeekend)
	assert.False(t, saturday.IsStartOfWeek)

	today := cellFor(t, cells, date(2024, time.January, 10))
	assert.True(t, today.IsToday)
}

func TestBuild_BookingProjectedIntoCells(t *testing.T) {
	// GIVEN: A booking covering Jan 8-10
	// WHEN: Building the grid
	// THEN: Those cells carry approval, absence type name, and booking id

	data := grid.NewDataSet([]booking.Booking{vacationBooking()}, nil)
	cells := grid.Build(date(2024, time.January, 1), testConfig(grid.BusinessWeek), data)

	planned := cellFor(t, cells, date(2024, time.January, 9))
	assert.True(t, planned.IsPlanned)
	assert.Equal(t, booking.ApprovalApproved, planned.Approval)
	assert.Equal(t, "Vacation", planned.AbsenceType)
	assert.Equal(t, "b-1", planned.BookingID)

	free := cellFor(t, cells, date(2024, time.January, 11))
	assert.False(t, free.IsPlanned)
	assert.Empty(t, free.BookingID)
}

func TestBuild_HolidayAndBookingCoexist(t *testing.T) {
	// A holiday note and a planned booking populate independently on the
	// same date.
	holidays := []booking.Holiday{{ID: "h-1", Date: date(2024, time.January, 9), Name: "Mid-week Day"}}
	data := grid.NewDataSet([]booking.Booking{vacationBooking()}, holidays)

	cells := grid.Build(date(2024, time.January, 8), testConfig(grid.BusinessWeek), data)

	cell := cellFor(t, cells, date(2024, time.January, 9))
	assert.True(t, cell.IsHoliday)
	assert.Equal(t, "Mid-week Day", cell.Note)
	assert.True(t, cell.IsPlanned)
	assert.Equal(t, "b-1", cell.BookingID)
}

func TestBuild_NilAbsenceType(t *testing.T) {
	b := vacationBooking()
	b.AbsenceType = nil
	data := grid.NewDataSet([]booking.Booking{b}, nil)

	cells := grid.Build(date(2024, time.January, 8), testConfig(grid.BusinessWeek), data)

	cell := cellFor(t, cells, date(2024, time.January, 8))
	assert.True(t, cell.IsPlanned)
	assert.Empty(t, cell.AbsenceType)
}

// =============================================================================
// WEEK-KEYED GRID TESTS
// =============================================================================

func TestBuildWeeks_KeyedByISOWeek(t *testing.T) {
	// January 2024 starts on a Monday; six rows cover weeks 1..6.
	firstDayInWeek := calendar.FirstDayInWeek(calendar.FirstDayOfMonth(2024, time.January))

	weeks := grid.BuildWeeks(firstDayInWeek, testConfig(grid.FullWeek), nil)

	require.Len(t, weeks, 6)
	for week := 1; week <= 6; week++ {
		row, ok := weeks[week]
		require.True(t, ok, "missing week %d", week)
		assert.Len(t, row, 7)
		assert.True(t, row[0].IsStartOfWeek)
	}
}

// =============================================================================
// USER OVERVIEW TESTS
// =============================================================================

func TestBuildUserOverview(t *testing.T) {
	// GIVEN: One user with bookings, one without any
	// WHEN: Building the overview
	// THEN: Only the booked user has a row; cells reflect their own bookings

	users := []roster.User{
		{ID: "u-1", DisplayName: "Alice"},
		{ID: "u-2", DisplayName: "Bob"},
	}
	bookingsByUser := map[string][]booking.Booking{
		"u-1": {vacationBooking()},
	}

	out := grid.BuildUserOverview(users, bookingsByUser, nil, date(2024, time.January, 8), testConfig(grid.BusinessWeek))

	require.Contains(t, out, "u-1")
	assert.NotContains(t, out, "u-2")
	assert.Len(t, out["u-1"], 30)

	cell := cellFor(t, out["u-1"], date(2024, time.January, 8))
	assert.True(t, cell.IsPlanned)
}

func TestBuildUserOverview_UserWithOnlyEmptyBookingListSkipped(t *testing.T) {
	users := []roster.User{{ID: "u-1", DisplayName: "Alice"}}
	bookingsByUser := map[string][]booking.Booking{"u-1": {}}

	out := grid.BuildUserOverview(users, bookingsByUser, nil, date(2024, time.January, 8), testConfig(grid.BusinessWeek))

	assert.Empty(t, out)
}
