package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/warp/vacation-planner/booking"
	"github.com/warp/vacation-planner/calendar"
)

func date(year int, month time.Month, day int) calendar.Date {
	return calendar.NewDate(year, month, day)
}

func dates(days []booking.Day) []calendar.Date {
	out := make([]calendar.Date, len(days))
	for i, d := range days {
		out[i] = d.Date
	}
	return out
}

// =============================================================================
// EXPANSION TESTS
// =============================================================================

func TestExpand_FullWorkingWeek(t *testing.T) {
	// GIVEN: Monday 2024-01-01 through Friday 2024-01-05, no holidays, no
	//        existing bookings
	// WHEN: Expanding
	// THEN: Exactly 5 days, zero conflicts

	res := booking.Expand("b-1", date(2024, time.January, 1), date(2024, time.January, 5), nil, nil, nil)

	assert.Len(t, res.Days, 5)
	assert.Empty(t, res.Conflicts)
	assert.Equal(t, []calendar.Date{
		date(2024, time.January, 1),
		date(2024, time.January, 2),
		date(2024, time.January, 3),
		date(2024, time.January, 4),
		date(2024, time.January, 5),
	}, dates(res.Days))
	for _, d := range res.Days {
		assert.Equal(t, "b-1", d.BookingID)
	}
}

func TestExpand_WeekendSpan(t *testing.T) {
	// GIVEN: A range spanning Saturday and Sunday
	// WHEN: Expanding
	// THEN: Weekend dates appear in neither the day list nor the conflicts

	res := booking.Expand("b-1", date(2024, time.January, 5), date(2024, time.January, 8), nil, nil, nil)

	assert.Equal(t, []calendar.Date{
		date(2024, time.January, 5), // Friday
		date(2024, time.January, 8), // Monday
	}, dates(res.Days))
	assert.Empty(t, res.Conflicts)
}

func TestExpand_HolidayExcluded(t *testing.T) {
	// GIVEN: 2024-01-03 is a holiday
	// WHEN: Expanding Monday through Friday
	// THEN: 4 days, the holiday silently skipped, zero conflicts

	holidays := calendar.NewDateSet(date(2024, time.January, 3))

	res := booking.Expand("b-1", date(2024, time.January, 1), date(2024, time.January, 5), holidays, nil, nil)

	assert.Len(t, res.Days, 4)
	assert.NotContains(t, dates(res.Days), date(2024, time.January, 3))
	assert.Empty(t, res.Conflicts)
}

func TestExpand_ConflictWithOtherBooking(t *testing.T) {
	// GIVEN: 2024-01-02 is already booked on another of the user's bookings
	// WHEN: Expanding Monday through Friday
	// THEN: 4 days and exactly one conflict for 01-02

	otherBooked := calendar.NewDateSet(date(2024, time.January, 2))

	res := booking.Expand("b-1", date(2024, time.January, 1), date(2024, time.January, 5), nil, otherBooked, nil)

	assert.Len(t, res.Days, 4)
	assert.Equal(t, []calendar.Date{date(2024, time.January, 2)}, res.Conflicts)
	assert.NotContains(t, dates(res.Days), date(2024, time.January, 2))
}

func TestExpand_EditKeepsPreviouslyOwnedDate(t *testing.T) {
	// GIVEN: An edit where 2024-01-02 is owned by this booking already and
	//        therefore also present in the user's global booked set
	// WHEN: Expanding with the previously owned dates supplied
	// THEN: 01-02 stays a day entry and is never reported as a conflict

	otherBooked := calendar.NewDateSet(date(2024, time.January, 2))
	previousOwned := calendar.NewDateSet(date(2024, time.January, 2))

	res := booking.Expand("b-1", date(2024, time.January, 1), date(2024, time.January, 5), nil, otherBooked, previousOwned)

	assert.Len(t, res.Days, 5)
	assert.Empty(t, res.Conflicts)
	assert.Contains(t, dates(res.Days), date(2024, time.January, 2))
}

func TestExpand_HolidayWinsOverPreviouslyOwned(t *testing.T) {
	// A date that became a holiday since the original booking drops out even
	// if the booking owned it before the edit.

	holidays := calendar.NewDateSet(date(2024, time.January, 2))
	previousOwned := calendar.NewDateSet(date(2024, time.January, 2))

	res := booking.Expand("b-1", date(2024, time.January, 1), date(2024, time.January, 5), holidays, nil, previousOwned)

	assert.Len(t, res.Days, 4)
	assert.NotContains(t, dates(res.Days), date(2024, time.January, 2))
	assert.Empty(t, res.Conflicts)
}

func TestExpand_WeekendOnlyRange(t *testing.T) {
	res := booking.Expand("b-1", date(2024, time.January, 6), date(2024, time.January, 7), nil, nil, nil)

	assert.Empty(t, res.Days)
	assert.Empty(t, res.Conflicts)
}

func TestExpand_SingleDay(t *testing.T) {
	res := booking.Expand("b-1", date(2024, time.January, 3), date(2024, time.January, 3), nil, nil, nil)

	assert.Equal(t, []calendar.Date{date(2024, time.January, 3)}, dates(res.Days))
}

func TestExpand_ChronologicalConflictOrder(t *testing.T) {
	otherBooked := calendar.NewDateSet(
		date(2024, time.January, 4),
		date(2024, time.January, 2),
	)

	res := booking.Expand("b-1", date(2024, time.January, 1), date(2024, time.January, 5), nil, otherBooked, nil)

	assert.Equal(t, []calendar.Date{
		date(2024, time.January, 2),
		date(2024, time.January, 4),
	}, res.Conflicts)
}

// =============================================================================
// HELPER TESTS
// =============================================================================

func TestBookedDates_ExcludesEditedBooking(t *testing.T) {
	bookings := []booking.Booking{
		{ID: "b-1", Days: []booking.Day{{BookingID: "b-1", Date: date(2024, time.March, 4)}}},
		{ID: "b-2", Days: []booking.Day{{BookingID: "b-2", Date: date(2024, time.March, 5)}}},
	}

	all := booking.BookedDates(bookings, "")
	assert.True(t, all.Contains(date(2024, time.March, 4)))
	assert.True(t, all.Contains(date(2024, time.March, 5)))

	withoutB1 := booking.BookedDates(bookings, "b-1")
	assert.False(t, withoutB1.Contains(date(2024, time.March, 4)))
	assert.True(t, withoutB1.Contains(date(2024, time.March, 5)))
}

func TestOwnedDates(t *testing.T) {
	b := booking.Booking{ID: "b-1", Days: []booking.Day{
		{BookingID: "b-1", Date: date(2024, time.March, 4)},
		{BookingID: "b-1", Date: date(2024, time.March, 5)},
	}}

	owned := b.OwnedDates()
	assert.Len(t, owned, 2)
	assert.True(t, owned.Contains(date(2024, time.March, 4)))
}
