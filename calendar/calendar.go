/*
Package calendar provides the pure date arithmetic for the vacation planner.

PURPOSE:
  ISO-8601 week numbering and its inverse, week/month anchoring, and the
  paging normalization for calendar navigation. Everything here is a pure
  function over Date values; there is no I/O and no error path.

KEY CONCEPTS:
  - Date: Day-granularity calendar date (date.go)
  - ISO week: Monday-start weeks, week 1 is the week containing the year's
    first Thursday ("first four-day week" rule)
  - Paging: Out-of-range year/month or year/week inputs roll into the
    adjacent year instead of failing (paging.go)

USAGE:
  week := calendar.WeekNumber(calendar.NewDate(2020, time.December, 31)) // 53
  monday := calendar.FirstDateOfWeek(2021, 10)

SEE ALSO:
  - grid: Builds render-ready calendar grids on top of this package
  - booking: Uses Date and weekend checks during expansion
*/
package calendar

import "time"

// DayNames is the Monday-first week ordering used throughout the planner.
var DayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayNamesShort is the abbreviated variant for calendar headers.
var DayNamesShort = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// =============================================================================
// ISO-8601 WEEK NUMBERING
// =============================================================================

// WeekNumber returns the ISO-8601 week-of-year for a date. Weeks start on
// Monday and week 1 is the first week with four or more days in the new year,
// so dates in late December can belong to week 1 and dates in early January
// to week 52/53 of the previous year.
func WeekNumber(d Date) int {
	_, week := d.Time.ISOWeek()
	return week
}

// WeekYear returns the ISO week-numbering year a date belongs to, which can
// differ from the calendar year around the year boundary.
func WeekYear(d Date) int {
	year, _ := d.Time.ISOWeek()
	return year
}

// FirstDateOfWeek returns the Monday of the given ISO week. It locates the
// first Thursday of the year, which is always in week 1, offsets by whole
// weeks and steps back three days to land on Monday.
func FirstDateOfWeek(year, week int) Date {
	jan1 := NewDate(year, time.January, 1)
	daysOffset := int(time.Thursday - jan1.Weekday())
	firstThursday := jan1.AddDays(daysOffset)

	if WeekNumber(firstThursday) == 1 {
		week--
	}
	return firstThursday.AddDays(week * 7).AddDays(-3)
}

// LastWeekOfYear returns the ISO week number of the year's final week.
// December 28 is guaranteed to fall in it.
func LastWeekOfYear(year int) int {
	return WeekNumber(NewDate(year, time.December, 28))
}

// =============================================================================
// WEEK AND MONTH ANCHORING
// =============================================================================

// FirstDayOfMonth returns the first date of the given month.
func FirstDayOfMonth(year int, month time.Month) Date {
	return NewDate(year, month, 1)
}

// FirstDayInWeek returns the Monday of the week containing the given date.
func FirstDayInWeek(d Date) Date {
	offset := int(d.Weekday()-time.Monday+7) % 7
	return d.AddDays(-offset)
}
