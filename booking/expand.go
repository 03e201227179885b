/*
expand.go - Date-range expansion into working-day entries

PURPOSE:
  Turns a booking's [FromDate, ToDate] range into the Day entries to persist,
  excluding weekends and holidays and detecting collisions against the user's
  other bookings. One function covers both the create and the edit path: on
  edit the caller passes the dates the booking owned before the change, and
  those are kept without ever counting as conflicts.

ALGORITHM (per date, chronological order):
  1. Weekend        -> skipped silently
  2. Holiday        -> skipped silently
  3. Previously owned by this booking -> kept as a Day (edit path)
  4. Booked on another booking        -> conflict, no Day
  5. Otherwise      -> Day

  Check 3 runs before check 4 so an edit that keeps a date never reports a
  false collision against itself, even though the date is also in the user's
  global booked set.

OUTPUT ORDERING:
  Days and Conflicts are emitted in chronological order, which keeps display
  and equality-based tests deterministic.

SEE ALSO:
  - validate.go: Rejects empty day lists and non-empty conflict lists
*/
package booking

import "github.com/warp/vacation-planner/calendar"

// ExpandResult is the full outcome of expanding a booking's date range.
// Expansion either produces this completely or not at all; there is no
// partial output.
type ExpandResult struct {
	// Days are the working-day entries to persist, in chronological order.
	Days []Day

	// Conflicts are the dates already booked by the same user elsewhere,
	// in chronological order. Non-empty conflicts reject the booking.
	Conflicts []calendar.Date
}

// Expand walks every date from from to to inclusive and produces the day
// entries and conflict dates for the booking. holidays is the work-free date
// set, otherBooked the dates held by the user's bookings, and previousOwned
// the dates this booking held before an edit (nil when creating).
func Expand(bookingID string, from, to calendar.Date, holidays, otherBooked, previousOwned calendar.DateSet) ExpandResult {
	var res ExpandResult

	for d := from; d.BeforeOrEqual(to); d = d.AddDays(1) {
		if d.IsWeekend() {
			continue
		}
		if holidays.Contains(d) {
			continue
		}
		if previousOwned.Contains(d) {
			// The booking already owns this date; keep it and never treat
			// it as a collision with itself.
			res.Days = append(res.Days, Day{BookingID: bookingID, Date: d})
			continue
		}
		if otherBooked.Contains(d) {
			res.Conflicts = append(res.Conflicts, d)
			continue
		}
		res.Days = append(res.Days, Day{BookingID: bookingID, Date: d})
	}

	return res
}
