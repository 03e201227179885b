package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/warp/vacation-planner/booking"
	"github.com/warp/vacation-planner/calendar"
)

func pinnedValidator(today calendar.Date) *booking.Validator {
	v := booking.NewValidator(booking.DefaultWindow)
	v.Now = func() calendar.Date { return today }
	return v
}

// =============================================================================
// RANGE VALIDATION TESTS
// =============================================================================

func TestValidateRange_InsideWindow(t *testing.T) {
	v := pinnedValidator(date(2024, time.June, 15))

	errs := v.ValidateRange(date(2024, time.July, 1), date(2024, time.July, 5))
	assert.False(t, errs.HasErrors())
}

func TestValidateRange_TooFarInThePast(t *testing.T) {
	// Window is 2 months back; a from-date three months back fails.
	v := pinnedValidator(date(2024, time.June, 15))

	errs := v.ValidateRange(date(2024, time.March, 1), date(2024, time.July, 1))
	assert.True(t, errs.HasErrors())
	assert.Len(t, errs.ByField(booking.FieldFromDate), 1)
	assert.Empty(t, errs.ByField(booking.FieldToDate))
}

func TestValidateRange_TooFarInTheFuture(t *testing.T) {
	v := pinnedValidator(date(2024, time.June, 15))

	errs := v.ValidateRange(date(2024, time.July, 1), date(2025, time.August, 1))
	assert.True(t, errs.HasErrors())
	assert.Len(t, errs.ByField(booking.FieldToDate), 1)
}

func TestValidateRange_FromAfterTo(t *testing.T) {
	v := pinnedValidator(date(2024, time.June, 15))

	errs := v.ValidateRange(date(2024, time.July, 5), date(2024, time.July, 1))
	assert.True(t, errs.HasErrors())
	assert.Contains(t, errs.ByField(booking.FieldFromDate)[0], "must not be after")
}

func TestValidateRange_AllViolationsReported(t *testing.T) {
	// Both dates outside the window AND reversed: three messages at once.
	v := pinnedValidator(date(2024, time.June, 15))

	errs := v.ValidateRange(date(2020, time.July, 5), date(2020, time.July, 1))
	assert.Len(t, errs, 3)
}

// =============================================================================
// EXPANSION VALIDATION TESTS
// =============================================================================

func TestValidateExpansion_EmptyDayList(t *testing.T) {
	v := pinnedValidator(date(2024, time.June, 15))

	errs := v.ValidateExpansion(booking.ExpandResult{})
	assert.True(t, errs.HasErrors())
	assert.Len(t, errs.ByField(booking.FieldFromDate), 1)
	assert.Len(t, errs.ByField(booking.FieldToDate), 1)
}

func TestValidateExpansion_ConflictsEnumerated(t *testing.T) {
	// GIVEN: Two conflicting dates
	// WHEN: Validating
	// THEN: The message lists both, yyyy-MM-dd comma-joined, on both fields

	v := pinnedValidator(date(2024, time.June, 15))

	res := booking.ExpandResult{
		Days:      []booking.Day{{Date: date(2024, time.July, 1)}},
		Conflicts: []calendar.Date{date(2024, time.July, 2), date(2024, time.July, 3)},
	}
	errs := v.ValidateExpansion(res)

	assert.Len(t, errs, 2)
	assert.Contains(t, errs.ByField(booking.FieldFromDate)[0], "2024-07-02, 2024-07-03")
	assert.Contains(t, errs.ByField(booking.FieldToDate)[0], "2024-07-02, 2024-07-03")
}

func TestValidateExpansion_BothClassesSimultaneously(t *testing.T) {
	// Empty day list and conflicts are independent checks; both fire.
	v := pinnedValidator(date(2024, time.June, 15))

	res := booking.ExpandResult{
		Conflicts: []calendar.Date{date(2024, time.July, 2)},
	}
	errs := v.ValidateExpansion(res)

	assert.Len(t, errs, 4)
	assert.Len(t, errs.ByField(booking.FieldFromDate), 2)
	assert.Len(t, errs.ByField(booking.FieldToDate), 2)
}

func TestValidateBooking_RangeFailureShortCircuitsExpansionChecks(t *testing.T) {
	v := pinnedValidator(date(2024, time.June, 15))

	errs := v.ValidateBooking(booking.ExpandResult{}, date(2020, time.July, 1), date(2020, time.July, 5))
	// Only window messages; the empty day list is not reported for a range
	// that was never eligible for expansion.
	assert.Len(t, errs, 2)
}

// =============================================================================
// EDIT / DELETE GATING TESTS
// =============================================================================

func TestCanView(t *testing.T) {
	b := &booking.Booking{ID: "b-1", UserID: "u-1", Approval: booking.ApprovalPending}

	assert.NoError(t, booking.CanView(b, booking.Actor{UserID: "u-1"}))
	assert.NoError(t, booking.CanView(b, booking.Actor{UserID: "u-9", IsManager: true}))
	assert.NoError(t, booking.CanView(b, booking.Actor{UserID: "u-9", IsAdmin: true}))
	assert.ErrorIs(t, booking.CanView(b, booking.Actor{UserID: "u-9"}), booking.ErrAccessDenied)
}

func TestCanEdit(t *testing.T) {
	pending := &booking.Booking{ID: "b-1", UserID: "u-1", Approval: booking.ApprovalPending}
	approved := &booking.Booking{ID: "b-2", UserID: "u-1", Approval: booking.ApprovalApproved}

	tests := []struct {
		name    string
		b       *booking.Booking
		actor   booking.Actor
		wantErr error
	}{
		{"owner edits pending", pending, booking.Actor{UserID: "u-1"}, nil},
		{"owner cannot edit approved", approved, booking.Actor{UserID: "u-1"}, booking.ErrNotEditable},
		{"manager edits approved", approved, booking.Actor{UserID: "u-9", IsManager: true}, nil},
		{"admin edits approved", approved, booking.Actor{UserID: "u-9", IsAdmin: true}, nil},
		{"stranger denied", pending, booking.Actor{UserID: "u-9"}, booking.ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := booking.CanEdit(tt.b, tt.actor)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCanDelete_ApprovedAndStarted(t *testing.T) {
	today := date(2024, time.June, 15)
	started := &booking.Booking{
		ID: "b-1", UserID: "u-1",
		Approval: booking.ApprovalApproved,
		FromDate: date(2024, time.June, 10),
	}

	assert.ErrorIs(t, booking.CanDelete(started, booking.Actor{UserID: "u-1"}, today), booking.ErrDeleteStarted)
	assert.NoError(t, booking.CanDelete(started, booking.Actor{UserID: "m-1", IsManager: true}, today))

	upcoming := &booking.Booking{
		ID: "b-2", UserID: "u-1",
		Approval: booking.ApprovalApproved,
		FromDate: date(2024, time.June, 20),
	}
	assert.NoError(t, booking.CanDelete(upcoming, booking.Actor{UserID: "u-1"}, today))
}

func TestRevertProtectedFields(t *testing.T) {
	stored := &booking.Booking{ID: "b-1", UserID: "u-1", Approval: booking.ApprovalApproved}
	edited := &booking.Booking{ID: "b-1", UserID: "u-2", Approval: booking.ApprovalPending}

	booking.RevertProtectedFields(edited, stored)

	assert.Equal(t, "u-1", edited.UserID)
	assert.Equal(t, booking.ApprovalApproved, edited.Approval)
}

func TestCanDecide(t *testing.T) {
	assert.ErrorIs(t, booking.CanDecide(booking.Actor{UserID: "u-1"}, booking.ApprovalApproved), booking.ErrAccessDenied)
	assert.ErrorIs(t, booking.CanDecide(booking.Actor{IsAdmin: true}, booking.ApprovalPending), booking.ErrInvalidApprovalState)
	assert.NoError(t, booking.CanDecide(booking.Actor{IsManager: true}, booking.ApprovalDenied))
	assert.NoError(t, booking.CanDecide(booking.Actor{IsAdmin: true}, booking.ApprovalApproved))
}
