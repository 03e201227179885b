/*
Package booking contains the vacation booking domain: the booking and day
entities, date-range expansion, collision detection, validation, and the
allowance summary.

PURPOSE:
  A booking is a user's absence request over an inclusive date range. When a
  booking is accepted, the range is expanded into individual working-day
  entries (weekends and holidays excluded) which the store persists alongside
  the booking. Expansion and validation are pure functions over data the
  caller has already fetched; persistence belongs to store/sqlite.

KEY CONCEPTS IN THIS FILE (types.go):
  - Booking: The absence request with its owned day set
  - Day: One working date belonging to exactly one booking
  - Holiday: A work-free date, imported or custom
  - ApprovalState: Pending | Approved | Denied

SEE ALSO:
  - expand.go: Range expansion and conflict detection
  - validate.go: Validation and edit/delete gating
  - balance.go: Per-year allowance summary
*/
package booking

import (
	"time"

	"github.com/warp/vacation-planner/calendar"
)

// =============================================================================
// APPROVAL STATE
// =============================================================================

type ApprovalState string

const (
	ApprovalPending  ApprovalState = "Pending"
	ApprovalApproved ApprovalState = "Approved"
	ApprovalDenied   ApprovalState = "Denied"
)

// Valid reports whether s is one of the three known states.
func (s ApprovalState) Valid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalDenied:
		return true
	}
	return false
}

// =============================================================================
// ENTITIES
// =============================================================================

// Booking is an absence request spanning [FromDate, ToDate] inclusive.
// Days is mutated only through the expansion pipeline; Approval is also set
// directly by a manager/admin decision without re-expansion.
type Booking struct {
	ID            string
	UserID        string
	FromDate      calendar.Date
	ToDate        calendar.Date
	AbsenceTypeID string // empty until validated against the reference table
	AbsenceType   *AbsenceType
	Approval      ApprovalState
	Comment       string
	Days          []Day

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedDates returns the set of dates this booking currently holds.
func (b *Booking) OwnedDates() calendar.DateSet {
	set := make(calendar.DateSet, len(b.Days))
	for _, d := range b.Days {
		set.Add(d.Date)
	}
	return set
}

// Day is a single working date owned by exactly one booking. The
// (BookingID, Date) pair is unique; weekends and holidays never appear here.
type Day struct {
	ID        string
	BookingID string
	Date      calendar.Date
}

// Holiday is a work-free date. Custom distinguishes locally created entries
// from imported ones.
type Holiday struct {
	ID     string
	Date   calendar.Date
	Name   string
	Custom bool
}

// HolidayDates collects the date set of a holiday list.
func HolidayDates(holidays []Holiday) calendar.DateSet {
	set := make(calendar.DateSet, len(holidays))
	for _, h := range holidays {
		set.Add(h.Date)
	}
	return set
}

// AbsenceType is a reference label for a booking (vacation, parental leave...).
type AbsenceType struct {
	ID         string
	Name       string
	Shortening string
}

// BookedDates returns every date held by the given bookings, optionally
// excluding one booking (the one being edited).
func BookedDates(bookings []Booking, excludeBookingID string) calendar.DateSet {
	set := make(calendar.DateSet)
	for i := range bookings {
		if bookings[i].ID == excludeBookingID && excludeBookingID != "" {
			continue
		}
		for _, d := range bookings[i].Days {
			set.Add(d.Date)
		}
	}
	return set
}
