/*
balance.go - Per-year vacation allowance summary

PURPOSE:
  Computes what a user sees next to their bookings: how many working days of
  the annual allowance are approved, how many are pending, and what remains.
  Denied bookings never count. Day entries already exclude weekends and
  holidays, so counting entries is counting working days.

PRECISION:
  Amounts are decimal.Decimal. Whole days today, but allowance policies are
  routinely fractional (half-day absence types, pro-rated starters), and the
  remainder arithmetic must not drift.
*/
package booking

import (
	"github.com/shopspring/decimal"
	"github.com/warp/vacation-planner/calendar"
)

// AllowanceSummary is a user's vacation balance for one calendar year.
type AllowanceSummary struct {
	UserID    string
	Year      int
	Allowance decimal.Decimal
	Approved  decimal.Decimal
	Pending   decimal.Decimal
	Remaining decimal.Decimal
}

// SummarizeAllowance tallies the user's booked working days in the given year
// against the annual allowance. Remaining counts both approved and pending
// days as spent, so a pending request cannot overdraw the allowance silently.
func SummarizeAllowance(userID string, year int, allowance decimal.Decimal, bookings []Booking) AllowanceSummary {
	summary := AllowanceSummary{
		UserID:    userID,
		Year:      year,
		Allowance: allowance,
		Approved:  decimal.Zero,
		Pending:   decimal.Zero,
	}

	for i := range bookings {
		b := &bookings[i]
		if b.UserID != userID {
			continue
		}
		n := decimal.NewFromInt(int64(countDaysInYear(b.Days, year)))
		switch b.Approval {
		case ApprovalApproved:
			summary.Approved = summary.Approved.Add(n)
		case ApprovalPending:
			summary.Pending = summary.Pending.Add(n)
		}
	}

	summary.Remaining = summary.Allowance.Sub(summary.Approved).Sub(summary.Pending)
	return summary
}

func countDaysInYear(days []Day, year int) int {
	count := 0
	for _, d := range days {
		if d.Date.Year() == year {
			count++
		}
	}
	return count
}

// UsedDates flattens the booked dates of a user's bookings, in no particular
// order. Convenience for overview callers.
func UsedDates(bookings []Booking) []calendar.Date {
	var dates []calendar.Date
	for i := range bookings {
		for _, d := range bookings[i].Days {
			dates = append(dates, d.Date)
		}
	}
	return dates
}
