/*
validate.go - Booking validation and edit/delete gating

PURPOSE:
  Gathers every user-facing violation for a booking before rejecting it:
  the past/future booking window, range ordering, the empty-day-list rule and
  date collisions. Also the authorization gates that run before any mutation:
  who may edit or delete a booking in which approval state.

VALIDATION ORDER:
  Window and range checks run before expansion (a range outside the window is
  never expanded). Expansion checks run after. All violations found are
  reported together; nothing is persisted when any is present.

SEE ALSO:
  - expand.go: Produces the ExpandResult validated here
  - errors.go: ValidationErrors and the gating sentinels
*/
package booking

import (
	"strings"

	"github.com/warp/vacation-planner/calendar"
)

// Field names validation messages attach to.
const (
	FieldFromDate = "FromDate"
	FieldToDate   = "ToDate"
)

// Window bounds how far into the past and future a booking may reach,
// in months relative to today.
type Window struct {
	PastMonths   int
	FutureMonths int
}

// DefaultWindow matches the planner's stock policy: two months back,
// twelve months ahead.
var DefaultWindow = Window{PastMonths: 2, FutureMonths: 12}

// Validator checks bookings against the configured window. Now supplies the
// reference date and defaults to calendar.Today; tests pin it.
type Validator struct {
	Window Window
	Now    func() calendar.Date
}

func NewValidator(w Window) *Validator {
	return &Validator{Window: w, Now: calendar.Today}
}

func (v *Validator) today() calendar.Date {
	if v.Now != nil {
		return v.Now()
	}
	return calendar.Today()
}

// =============================================================================
// RANGE VALIDATION (before expansion)
// =============================================================================

// ValidateRange checks the booking window and range ordering. Both dates are
// checked independently so every violation is reported at once.
func (v *Validator) ValidateRange(from, to calendar.Date) ValidationErrors {
	var errs ValidationErrors

	today := v.today()
	earliest := today.AddMonths(-v.Window.PastMonths)
	latest := today.AddMonths(v.Window.FutureMonths)

	if from.Before(earliest) || from.After(latest) {
		errs.add(FieldFromDate, "You can only book vacation %d months in the past and %d months in the future.",
			v.Window.PastMonths, v.Window.FutureMonths)
	}
	if to.Before(earliest) || to.After(latest) {
		errs.add(FieldToDate, "You can only book vacation %d months in the past and %d months in the future.",
			v.Window.PastMonths, v.Window.FutureMonths)
	}
	if from.After(to) {
		errs.add(FieldFromDate, "Your FromDate must not be after your ToDate.")
	}

	return errs
}

// =============================================================================
// EXPANSION VALIDATION (after expansion)
// =============================================================================

// ValidateExpansion rejects an empty day list and any date collision. The two
// checks are independent and can both fire.
func (v *Validator) ValidateExpansion(res ExpandResult) ValidationErrors {
	var errs ValidationErrors

	if len(res.Days) == 0 {
		errs.add(FieldFromDate, "You can't book a vacation with 0 vacation days.")
		errs.add(FieldToDate, "You can't book a vacation with 0 vacation days.")
	}
	if len(res.Conflicts) > 0 {
		dates := formatDates(res.Conflicts)
		errs.add(FieldFromDate, "You have already booked a vacation on these dates: %s", dates)
		errs.add(FieldToDate, "You have already booked a vacation on these dates: %s", dates)
	}

	return errs
}

// ValidateBooking runs the range checks and, when they pass, the expansion
// checks in one call.
func (v *Validator) ValidateBooking(res ExpandResult, from, to calendar.Date) ValidationErrors {
	if errs := v.ValidateRange(from, to); errs.HasErrors() {
		return errs
	}
	return v.ValidateExpansion(res)
}

// formatDates renders dates as yyyy-MM-dd, comma-joined, for user messages.
func formatDates(dates []calendar.Date) string {
	strs := make([]string, len(dates))
	for i, d := range dates {
		strs[i] = d.String()
	}
	return strings.Join(strs, ", ")
}

// =============================================================================
// EDIT / DELETE GATING (before any mutation)
// =============================================================================

// Actor identifies the caller of a gated mutation. IsManager means manager of
// the booking owner specifically, not the role in general.
type Actor struct {
	UserID    string
	IsManager bool
	IsAdmin   bool
}

func (a Actor) privileged() bool { return a.IsManager || a.IsAdmin }

// CanView gates read access to a single booking: the owner, the owner's
// manager, and admins.
func CanView(b *Booking, actor Actor) error {
	if actor.privileged() || b.UserID == actor.UserID {
		return nil
	}
	return ErrAccessDenied
}

// CanEdit gates editing. Managers of the owner and admins may always edit;
// the owner may edit only while the booking is still Pending; everyone else
// is denied. Checked before re-running expansion.
func CanEdit(b *Booking, actor Actor) error {
	if actor.privileged() {
		return nil
	}
	if b.UserID != actor.UserID {
		return ErrAccessDenied
	}
	if b.Approval != ApprovalPending {
		return ErrNotEditable
	}
	return nil
}

// CanDelete gates deletion. A plain owner cannot remove an approved booking
// once it has started.
func CanDelete(b *Booking, actor Actor, today calendar.Date) error {
	if actor.privileged() {
		return nil
	}
	if b.UserID != actor.UserID {
		return ErrAccessDenied
	}
	if b.Approval == ApprovalApproved && b.FromDate.Before(today) {
		return ErrDeleteStarted
	}
	return nil
}

// RevertProtectedFields forces the approval state and owner of an edited
// booking back to their stored values. Applied for plain owners, whose edits
// must never change either field.
func RevertProtectedFields(edited, stored *Booking) {
	edited.Approval = stored.Approval
	edited.UserID = stored.UserID
}

// CanDecide gates the approval action itself: only the owner's manager or an
// admin sets Approved/Denied, and no other state is accepted.
func CanDecide(actor Actor, state ApprovalState) error {
	if !actor.privileged() {
		return ErrAccessDenied
	}
	if state != ApprovalApproved && state != ApprovalDenied {
		return ErrInvalidApprovalState
	}
	return nil
}
