package calendar

// Paging normalization for calendar navigation. Out-of-range month/week
// values roll into the adjacent year; a year outside 1..9999 resets the view
// to today.

const (
	minPagingYear = 1
	maxPagingYear = 9999
)

// NormalizeYearMonth rolls an out-of-range month into the adjacent year.
// Month 0 becomes December of the previous year, month 13 January of the
// next. A year outside the representable range resets to today's year/month.
func NormalizeYearMonth(year, month int, today Date) (int, int) {
	if year > 0 && month <= 0 {
		year--
		month = 12
	}
	if year > 0 && month >= 13 {
		year++
		month = 1
	}
	if year < minPagingYear || year > maxPagingYear {
		year = today.Year()
		month = int(today.Month())
	}
	return year, month
}

// NormalizeYearWeek rolls an out-of-range ISO week into the adjacent year.
// Week 0 becomes the last ISO week of the previous year; a week past the
// year's last ISO week becomes week 1 of the next year. A year outside the
// representable range resets to today's year/week.
func NormalizeYearWeek(year, week int, today Date) (int, int) {
	if year < minPagingYear || year > maxPagingYear {
		return today.Year(), WeekNumber(today)
	}
	if week <= 0 {
		year--
		week = LastWeekOfYear(year)
	} else if week > LastWeekOfYear(year) {
		year++
		week = 1
	}
	return year, week
}
