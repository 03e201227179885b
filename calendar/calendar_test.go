package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/warp/vacation-planner/calendar"
)

func date(year int, month time.Month, day int) calendar.Date {
	return calendar.NewDate(year, month, day)
}

// =============================================================================
// ISO WEEK NUMBER TESTS
// =============================================================================

func TestWeekNumber_YearBoundary(t *testing.T) {
	tests := []struct {
		name string
		date calendar.Date
		week int
	}{
		{"mid-year Monday", date(2024, time.June, 3), 23},
		{"Jan 1 2024 is a Monday, week 1", date(2024, time.January, 1), 1},
		{"Dec 31 2024 belongs to week 1 of 2025", date(2024, time.December, 31), 1},
		{"Jan 1 2021 belongs to week 53 of 2020", date(2021, time.January, 1), 53},
		{"Jan 4 is always in week 1", date(2021, time.January, 4), 1},
		{"Dec 28 is always in the last week", date(2020, time.December, 28), 53},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.week, calendar.WeekNumber(tt.date))
		})
	}
}

func TestLastWeekOfYear(t *testing.T) {
	// 2020 is a 53-week ISO year, 2021 is not.
	assert.Equal(t, 53, calendar.LastWeekOfYear(2020))
	assert.Equal(t, 52, calendar.LastWeekOfYear(2021))
	assert.Equal(t, 52, calendar.LastWeekOfYear(2024))
	assert.Equal(t, 53, calendar.LastWeekOfYear(2026))
}

func TestFirstDateOfWeek_LandsOnMonday(t *testing.T) {
	for year := 2019; year <= 2027; year++ {
		for week := 1; week <= calendar.LastWeekOfYear(year); week++ {
			monday := calendar.FirstDateOfWeek(year, week)
			assert.Equal(t, time.Monday, monday.Weekday(), "year %d week %d", year, week)
			assert.Equal(t, week, calendar.WeekNumber(monday), "year %d week %d", year, week)
		}
	}
}

func TestFirstDateOfWeek_RoundTrip(t *testing.T) {
	// GIVEN: Any date d
	// WHEN: Resolving the first date of d's ISO week in d's ISO week-year
	// THEN: The result is the Monday of the week containing d

	d := date(2019, time.January, 1)
	end := date(2026, time.December, 31)
	for d.BeforeOrEqual(end) {
		monday := calendar.FirstDateOfWeek(calendar.WeekYear(d), calendar.WeekNumber(d))
		assert.Equal(t, calendar.FirstDayInWeek(d), monday, "date %s", d)
		d = d.AddDays(1)
	}
}

// =============================================================================
// WEEK AND MONTH ANCHORING TESTS
// =============================================================================

func TestFirstDayInWeek(t *testing.T) {
	monday := date(2024, time.January, 1)
	for i := 0; i < 7; i++ {
		assert.Equal(t, monday, calendar.FirstDayInWeek(monday.AddDays(i)))
	}
	assert.Equal(t, date(2024, time.January, 8), calendar.FirstDayInWeek(date(2024, time.January, 8)))
}

func TestFirstDayOfMonth(t *testing.T) {
	assert.Equal(t, date(2024, time.February, 1), calendar.FirstDayOfMonth(2024, time.February))
}

func TestDate_WeekendAndString(t *testing.T) {
	assert.True(t, date(2024, time.January, 6).IsWeekend())  // Saturday
	assert.True(t, date(2024, time.January, 7).IsWeekend())  // Sunday
	assert.False(t, date(2024, time.January, 8).IsWeekend()) // Monday
	assert.Equal(t, "2024-01-06", date(2024, time.January, 6).String())
}

func TestParseDate(t *testing.T) {
	d, err := calendar.ParseDate("2024-03-10")
	assert.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 10), d)

	_, err = calendar.ParseDate("10/03/2024")
	assert.Error(t, err)
}

// =============================================================================
// PAGING TESTS
// =============================================================================

func TestNormalizeYearMonth(t *testing.T) {
	today := date(2024, time.June, 15)

	tests := []struct {
		name              string
		year, month       int
		wantYear, wantMon int
	}{
		{"in range untouched", 2024, 5, 2024, 5},
		{"month zero rolls back a year", 2024, 0, 2023, 12},
		{"month thirteen rolls forward a year", 2024, 13, 2025, 1},
		{"year out of range resets to today", 10000, 5, 2024, 6},
		{"year below range resets to today", 0, 5, 2024, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, m := calendar.NormalizeYearMonth(tt.year, tt.month, today)
			assert.Equal(t, tt.wantYear, y)
			assert.Equal(t, tt.wantMon, m)
		})
	}
}

func TestNormalizeYearWeek(t *testing.T) {
	today := date(2024, time.June, 15)

	tests := []struct {
		name               string
		year, week         int
		wantYear, wantWeek int
	}{
		{"in range untouched", 2024, 30, 2024, 30},
		{"week zero rolls into previous year's last week", 2021, 0, 2020, 53},
		{"week past last rolls into next year", 2024, 53, 2025, 1},
		{"week 53 valid in 53-week year", 2020, 53, 2020, 53},
		{"year out of range resets to today", -5, 10, 2024, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, w := calendar.NormalizeYearWeek(tt.year, tt.week, today)
			assert.Equal(t, tt.wantYear, y)
			assert.Equal(t, tt.wantWeek, w)
		})
	}
}
