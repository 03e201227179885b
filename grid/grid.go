/*
Package grid assembles render-ready calendar grids from bookings and holidays.

PURPOSE:
  Overview and personal-calendar screens render a fixed window of day cells:
  6 rows of either 5 business days or 7 full days, anchored at a Monday. Each
  cell carries the weekend/holiday/today flags, the ISO week number, and the
  booking that covers the date, if any. A date can be a holiday and carry a
  planned booking at the same time; the fields are independent.

GRID VARIANTS:
  Build            flat cell list for one data set (overview rows)
  BuildWeeks       cells grouped by ISO week number (personal month view)
  BuildUserOverview   map of user id to cell list, per-user bookings only

SEE ALSO:
  - calendar: Date arithmetic and week numbering
  - booking: The entities projected into cells
*/
package grid

import (
	"github.com/warp/vacation-planner/booking"
	"github.com/warp/vacation-planner/calendar"
	"github.com/warp/vacation-planner/roster"
)

// Window lengths per grid row.
const (
	BusinessWeek = 5 // Monday..Friday
	FullWeek     = 7 // Monday..Sunday

	// DefaultWeeks covers up to six calendar weeks, enough for any month.
	DefaultWeeks = 6
)

// CalendarDay is the render record for one date cell.
type CalendarDay struct {
	Date          calendar.Date
	WeekNumber    int
	IsWeekend     bool
	IsHoliday     bool
	IsToday       bool
	IsStartOfWeek bool

	// Populated when a booking day falls on this date.
	IsPlanned   bool
	Approval    booking.ApprovalState
	AbsenceType string
	BookingID   string

	// Populated when the date is a holiday.
	Note string
}

// Config controls the window shape. Today anchors the "is today" flag and
// defaults to the wall clock; tests pin it.
type Config struct {
	DaysPerWeek int
	Weeks       int
	Today       calendar.Date
}

func (c Config) normalized() Config {
	if c.DaysPerWeek == 0 {
		c.DaysPerWeek = BusinessWeek
	}
	if c.Weeks == 0 {
		c.Weeks = DefaultWeeks
	}
	if c.Today.IsZero() {
		c.Today = calendar.Today()
	}
	return c
}

// =============================================================================
// DATA SET - Indexed view of one user's bookings plus the holiday list
// =============================================================================

// DataSet indexes bookings, their day entries, and holidays by date for cell
// lookup. Build one per user; day dates are unique within a user.
type DataSet struct {
	bookingsByID map[string]*booking.Booking
	dayOwner     map[calendar.Date]string
	holidayNames map[calendar.Date]string
}

// NewDataSet indexes the given bookings and holidays.
func NewDataSet(bookings []booking.Booking, holidays []booking.Holiday) *DataSet {
	ds := &DataSet{
		bookingsByID: make(map[string]*booking.Booking, len(bookings)),
		dayOwner:     make(map[calendar.Date]string),
		holidayNames: make(map[calendar.Date]string, len(holidays)),
	}
	for i := range bookings {
		b := &bookings[i]
		ds.bookingsByID[b.ID] = b
		for _, d := range b.Days {
			ds.dayOwner[d.Date] = b.ID
		}
	}
	for _, h := range holidays {
		ds.holidayNames[h.Date] = h.Name
	}
	return ds
}

// =============================================================================
// GRID BUILDERS
// =============================================================================

// Build produces the flat cell list for a window starting at firstDay.
// Rows advance by full weeks regardless of how many days each row shows, so
// a 5-day row still lands on the next Monday.
func Build(firstDay calendar.Date, cfg Config, data *DataSet) []CalendarDay {
	cfg = cfg.normalized()

	cells := make([]CalendarDay, 0, cfg.Weeks*cfg.DaysPerWeek)
	for w := 0; w < cfg.Weeks; w++ {
		rowStart := firstDay.AddDays(w * FullWeek)
		for i := 0; i < cfg.DaysPerWeek; i++ {
			cells = append(cells, buildCell(rowStart.AddDays(i), cfg.Today, data))
		}
	}
	return cells
}

// BuildWeeks produces the personal month view: one row per calendar week,
// keyed by the ISO week number of the row's first day.
func BuildWeeks(firstDayInWeekOfMonth calendar.Date, cfg Config, data *DataSet) map[int][]CalendarDay {
	cfg = cfg.normalized()

	weeks := make(map[int][]CalendarDay, cfg.Weeks)
	for w := 0; w < cfg.Weeks; w++ {
		rowStart := firstDayInWeekOfMonth.AddDays(w * FullWeek)
		row := make([]CalendarDay, 0, cfg.DaysPerWeek)
		for i := 0; i < cfg.DaysPerWeek; i++ {
			row = append(row, buildCell(rowStart.AddDays(i), cfg.Today, data))
		}
		weeks[calendar.WeekNumber(rowStart)] = row
	}
	return weeks
}

// BuildUserOverview builds one grid per user against that user's own bookings.
// Users with no bookings at all are skipped: an overview row for them carries
// no information. The result is keyed by user id.
func BuildUserOverview(users []roster.User, bookingsByUser map[string][]booking.Booking, holidays []booking.Holiday, firstDayInWeek calendar.Date, cfg Config) map[string][]CalendarDay {
	out := make(map[string][]CalendarDay, len(users))
	for i := range users {
		bookings := bookingsByUser[users[i].ID]
		if len(bookings) == 0 {
			continue
		}
		data := NewDataSet(bookings, holidays)
		out[users[i].ID] = Build(firstDayInWeek, cfg, data)
	}
	return out
}

func buildCell(d calendar.Date, today calendar.Date, data *DataSet) CalendarDay {
	cell := CalendarDay{
		Date:          d,
		WeekNumber:    calendar.WeekNumber(d),
		IsWeekend:     d.IsWeekend(),
		IsToday:       d.Equal(today),
		IsStartOfWeek: d.IsMonday(),
	}
	if data == nil {
		return cell
	}

	if id, ok := data.dayOwner[d]; ok {
		b := data.bookingsByID[id]
		cell.IsPlanned = true
		cell.BookingID = id
		cell.Approval = b.Approval
		if b.AbsenceType != nil {
			cell.AbsenceType = b.AbsenceType.Name
		}
	}
	if name, ok := data.holidayNames[d]; ok {
		cell.IsHoliday = true
		cell.Note = name
	}
	return cell
}
