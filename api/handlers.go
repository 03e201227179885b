/*
handlers.go - HTTP API handlers for the vacation planner

PURPOSE:
  Exposes the planner via REST API. Handles HTTP request/response, JSON
  serialization, and delegates to domain logic.

ENDPOINTS:
  Bookings:
    GET    /api/bookings                 List all bookings
    POST   /api/bookings                 Submit a booking
    GET    /api/bookings/pending         Pending approvals (managers' todo)
    GET    /api/bookings/{id}            Get a booking
    PUT    /api/bookings/{id}            Edit a booking
    DELETE /api/bookings/{id}            Delete a booking
    POST   /api/bookings/{id}/decision   Approve or deny

  Users:
    GET    /api/users                    Directory listing
    GET    /api/users/{id}               One user
    GET    /api/users/{id}/bookings      A user's bookings
    GET    /api/users/{id}/balance       Allowance summary for a year

  Calendar:
    GET    /api/calendar/month           Personal month view (week rows)
    GET    /api/calendar/overview        Team overview (filtered, sorted)

  Filters:
    GET    /api/filters                  Current filter selections
    POST   /api/filters                  Update one filter dimension

  Holidays:
    GET    /api/holidays                 List holidays
    POST   /api/holidays                 Add one holiday
    POST   /api/holidays/import          Batch import (dup dates skipped)
    DELETE /api/holidays/{id}            Remove a holiday

  Reference:
    GET    /api/absence-types
    GET    /api/teams
    GET    /api/departments
    GET    /api/roles

IDENTITY:
  The caller identifies itself with the X-User-Id header; edit/delete/decide
  gating resolves the actor's standing (owner, manager of the owner, admin)
  against the directory. Overview filter selections are keyed by the
  X-Session-Id header and fall back to the user id.

REQUEST FLOW:
  1. Parse and validate the request body (go-playground/validator)
  2. Resolve the actor and gate the operation
  3. Expand the date range and run domain validation
  4. Persist and serialize the response

ERROR HANDLING:
  - 400: Malformed input, struct validation, domain validation (per field)
  - 401: Missing X-User-Id on gated operations
  - 403: Actor may not touch this booking
  - 404: Unknown booking/user/holiday
  - 409: Gated state transitions (not pending, already started, bad decision)
  - 500: Internal errors (logged)

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - booking: Expansion, validation, and gating rules
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/warp/vacation-planner/booking"
	"github.com/warp/vacation-planner/calendar"
	"github.com/warp/vacation-planner/grid"
	"github.com/warp/vacation-planner/roster"
	"github.com/warp/vacation-planner/store/sqlite"
)

// Role names with administrative standing. The overview's role filter hides
// them; gating grants them elevated access.
const (
	roleAdmin   = "Admin"
	roleManager = "Manager"
)

// Filter dimension keys as stored per session.
const (
	dimRoles       = "roles"
	dimDepartments = "departments"
	dimTeams       = "teams"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     *sqlite.Store
	Bookings  *booking.Validator
	Allowance decimal.Decimal

	log      *logrus.Logger
	validate *validator.Validate
}

// NewHandler creates a new handler with the given store and booking window.
func NewHandler(store *sqlite.Store, window booking.Window, allowanceDays int, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		Store:     store,
		Bookings:  booking.NewValidator(window),
		Allowance: decimal.NewFromInt(int64(allowanceDays)),
		log:       log,
		validate:  validator.New(),
	}
}

// actorFor resolves the caller's standing relative to a booking owner.
// IsManager means the caller actually manages the owner; holding the Manager
// role on its own grants nothing on another user's booking.
func (h *Handler) actorFor(r *http.Request, ownerID string) (booking.Actor, error) {
	actorID := r.Header.Get("X-User-Id")
	if actorID == "" {
		return booking.Actor{}, errors.New("missing X-User-Id header")
	}

	ctx := r.Context()
	isAdmin, err := h.Store.UserHasRole(ctx, actorID, roleAdmin)
	if err != nil {
		return booking.Actor{}, err
	}
	var isManager bool
	if ownerID != "" {
		isManager, err = h.Store.IsManagerOf(ctx, actorID, ownerID)
		if err != nil {
			return booking.Actor{}, err
		}
	}

	return booking.Actor{UserID: actorID, IsManager: isManager, IsAdmin: isAdmin}, nil
}

func (h *Handler) sessionKey(r *http.Request) string {
	if s := r.Header.Get("X-Session-Id"); s != "" {
		return s
	}
	return r.Header.Get("X-User-Id")
}

// =============================================================================
// BOOKING HANDLERS
// =============================================================================

// ListBookings returns the bookings visible to the caller: admins see all,
// managers see their own plus their direct reports', everyone else their own.
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFor(r, "")
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Could not identify caller", err)
		return
	}

	ctx := r.Context()
	if actor.IsAdmin {
		bookings, err := h.Store.ListAllBookings(ctx)
		if err != nil {
			h.internalError(w, "Failed to list bookings", err)
			return
		}
		writeJSON(w, http.StatusOK, toBookingDTOs(bookings))
		return
	}

	own, err := h.Store.ListBookingsByUser(ctx, actor.UserID)
	if err != nil {
		h.internalError(w, "Failed to list bookings", err)
		return
	}
	reports, err := h.Store.ListBookingsByManager(ctx, actor.UserID)
	if err != nil {
		h.internalError(w, "Failed to list bookings", err)
		return
	}

	visible := append(own, reports...)
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].FromDate.Before(visible[j].FromDate)
	})
	writeJSON(w, http.StatusOK, toBookingDTOs(visible))
}

// GetBooking returns one booking with its day set. Only the owner, the
// owner's manager, or an admin may read it.
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.Store.GetBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.domainError(w, "Failed to load booking", err)
		return
	}

	actor, err := h.actorFor(r, b.UserID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Could not identify caller", err)
		return
	}
	if err := booking.CanView(b, actor); err != nil {
		h.domainError(w, "Access denied", err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingDTO(b))
}

// ListPendingBookings returns the managers' todo list, ordered by start
// date: admins see every pending booking, managers those of their direct
// reports. Everyone else is denied.
func (h *Handler) ListPendingBookings(w http.ResponseWriter, r *http.Request) {
	actor, err := h.actorFor(r, "")
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Could not identify caller", err)
		return
	}

	ctx := r.Context()
	if actor.IsAdmin {
		bookings, err := h.Store.ListBookingsByApproval(ctx, booking.ApprovalPending)
		if err != nil {
			h.internalError(w, "Failed to list pending bookings", err)
			return
		}
		writeJSON(w, http.StatusOK, toBookingDTOs(bookings))
		return
	}

	hasRole, err := h.Store.UserHasRole(ctx, actor.UserID, roleManager)
	if err != nil {
		h.internalError(w, "Failed to resolve caller", err)
		return
	}
	manages, err := h.Store.HasReports(ctx, actor.UserID)
	if err != nil {
		h.internalError(w, "Failed to resolve caller", err)
		return
	}
	if !hasRole && !manages {
		writeError(w, http.StatusForbidden, "Access denied", booking.ErrAccessDenied)
		return
	}

	reports, err := h.Store.ListBookingsByManager(ctx, actor.UserID)
	if err != nil {
		h.internalError(w, "Failed to list pending bookings", err)
		return
	}
	pending := reports[:0]
	for _, b := range reports {
		if b.Approval == booking.ApprovalPending {
			pending = append(pending, b)
		}
	}
	writeJSON(w, http.StatusOK, toBookingDTOs(pending))
}

// SubmitBooking creates a booking: the date range is expanded to working-day
// entries and validated before anything is stored.
func (h *Handler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	var req SubmitBookingRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	from, _ := calendar.ParseDate(req.FromDate)
	to, _ := calendar.ParseDate(req.ToDate)
	ctx := r.Context()

	if _, err := h.Store.GetUser(ctx, req.UserID); err != nil {
		h.domainError(w, "Unknown user", err)
		return
	}
	if req.AbsenceTypeID != "" {
		if _, err := h.Store.GetAbsenceType(ctx, req.AbsenceTypeID); err != nil {
			h.domainError(w, "Unknown absence type", err)
			return
		}
	}

	b := &booking.Booking{
		ID:            uuid.NewString(),
		UserID:        req.UserID,
		FromDate:      from,
		ToDate:        to,
		AbsenceTypeID: req.AbsenceTypeID,
		Approval:      booking.ApprovalPending,
		Comment:       req.Comment,
	}

	res, err := h.expand(r, b, nil)
	if err != nil {
		h.internalError(w, "Failed to expand booking", err)
		return
	}
	if errs := h.Bookings.ValidateBooking(res, from, to); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}
	b.Days = res.Days

	if err := h.Store.CreateBooking(ctx, b); err != nil {
		h.internalError(w, "Failed to create booking", err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"user_id":    b.UserID,
		"days":       len(b.Days),
	}).Info("booking created")
	writeJSON(w, http.StatusCreated, toBookingDTO(b))
}

// EditBooking replaces a booking's range and metadata. The stored booking's
// own dates never count as collisions, so shrinking or shifting a booking
// within itself always passes. Plain owners cannot change the owner or the
// approval state; those fields are reverted.
func (h *Handler) EditBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stored, err := h.Store.GetBooking(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.domainError(w, "Failed to load booking", err)
		return
	}

	actor, err := h.actorFor(r, stored.UserID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Could not identify caller", err)
		return
	}
	if err := booking.CanEdit(stored, actor); err != nil {
		h.domainError(w, "Edit denied", err)
		return
	}

	var req EditBookingRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	from, _ := calendar.ParseDate(req.FromDate)
	to, _ := calendar.ParseDate(req.ToDate)

	if req.AbsenceTypeID != "" {
		if _, err := h.Store.GetAbsenceType(ctx, req.AbsenceTypeID); err != nil {
			h.domainError(w, "Unknown absence type", err)
			return
		}
	}

	edited := &booking.Booking{
		ID:            stored.ID,
		UserID:        stored.UserID,
		FromDate:      from,
		ToDate:        to,
		AbsenceTypeID: req.AbsenceTypeID,
		Approval:      stored.Approval,
		Comment:       req.Comment,
		CreatedAt:     stored.CreatedAt,
	}
	if req.UserID != "" {
		edited.UserID = req.UserID
	}
	if req.Approval != "" {
		edited.Approval = booking.ApprovalState(req.Approval)
	}
	if !actor.IsManager && !actor.IsAdmin {
		booking.RevertProtectedFields(edited, stored)
	}

	res, err := h.expand(r, edited, stored.OwnedDates())
	if err != nil {
		h.internalError(w, "Failed to expand booking", err)
		return
	}
	if errs := h.Bookings.ValidateBooking(res, from, to); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}
	edited.Days = res.Days

	if err := h.Store.UpdateBooking(ctx, edited); err != nil {
		h.domainError(w, "Failed to update booking", err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"booking_id": edited.ID,
		"actor_id":   actor.UserID,
	}).Info("booking updated")
	writeJSON(w, http.StatusOK, toBookingDTO(edited))
}

// DeleteBooking removes a booking. Plain owners cannot remove an approved
// booking once it has started.
func (h *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stored, err := h.Store.GetBooking(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.domainError(w, "Failed to load booking", err)
		return
	}

	actor, err := h.actorFor(r, stored.UserID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Could not identify caller", err)
		return
	}
	if err := booking.CanDelete(stored, actor, h.Bookings.Now()); err != nil {
		h.domainError(w, "Delete denied", err)
		return
	}

	if err := h.Store.DeleteBooking(ctx, stored.ID); err != nil {
		h.domainError(w, "Failed to delete booking", err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"booking_id": stored.ID,
		"actor_id":   actor.UserID,
	}).Info("booking deleted")
	w.WriteHeader(http.StatusNoContent)
}

// DecideBooking sets a booking's approval state to Approved or Denied. The
// decision is role-gated: the owner's manager, any Manager-role holder, or an
// admin may decide.
func (h *Handler) DecideBooking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stored, err := h.Store.GetBooking(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.domainError(w, "Failed to load booking", err)
		return
	}

	actor, err := h.actorFor(r, stored.UserID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Could not identify caller", err)
		return
	}
	if !actor.IsManager && !actor.IsAdmin {
		actor.IsManager, err = h.Store.UserHasRole(ctx, actor.UserID, roleManager)
		if err != nil {
			h.internalError(w, "Failed to resolve caller", err)
			return
		}
	}

	var req DecisionRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	state := booking.ApprovalState(req.Approval)
	if err := booking.CanDecide(actor, state); err != nil {
		h.domainError(w, "Decision denied", err)
		return
	}
	if err := h.Store.SetApproval(ctx, stored.ID, state); err != nil {
		h.domainError(w, "Failed to set approval", err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"booking_id": stored.ID,
		"actor_id":   actor.UserID,
		"approval":   string(state),
	}).Info("booking decided")

	stored.Approval = state
	writeJSON(w, http.StatusOK, toBookingDTO(stored))
}

// expand turns a booking's range into working-day entries. Collisions are
// checked against the same user's other bookings; previousOwned carries the
// stored day set on edits so a booking never collides with itself.
func (h *Handler) expand(r *http.Request, b *booking.Booking, previousOwned calendar.DateSet) (booking.ExpandResult, error) {
	ctx := r.Context()

	holidays, err := h.Store.ListHolidays(ctx)
	if err != nil {
		return booking.ExpandResult{}, err
	}
	userBookings, err := h.Store.ListBookingsByUser(ctx, b.UserID)
	if err != nil {
		return booking.ExpandResult{}, err
	}

	otherBooked := booking.BookedDates(userBookings, b.ID)
	return booking.Expand(b.ID, b.FromDate, b.ToDate, booking.HolidayDates(holidays), otherBooked, previousOwned), nil
}

// =============================================================================
// USER HANDLERS
// =============================================================================

// ListUsers returns the visible directory.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.ListUsers(r.Context())
	if err != nil {
		h.internalError(w, "Failed to list users", err)
		return
	}
	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = toUserDTO(&users[i])
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetUser returns one user.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.Store.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.domainError(w, "Failed to load user", err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

// ListUserBookings returns one user's bookings.
func (h *Handler) ListUserBookings(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if _, err := h.Store.GetUser(r.Context(), userID); err != nil {
		h.domainError(w, "Unknown user", err)
		return
	}
	bookings, err := h.Store.ListBookingsByUser(r.Context(), userID)
	if err != nil {
		h.internalError(w, "Failed to list bookings", err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingDTOs(bookings))
}

// GetBalance returns a user's allowance summary for one year (default: the
// current year). Pending days count as spent.
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if _, err := h.Store.GetUser(r.Context(), userID); err != nil {
		h.domainError(w, "Unknown user", err)
		return
	}

	year := h.Bookings.Now().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		year = parsed
	}

	bookings, err := h.Store.ListBookingsByUser(r.Context(), userID)
	if err != nil {
		h.internalError(w, "Failed to list bookings", err)
		return
	}

	var used []string
	for _, d := range booking.UsedDates(bookings) {
		if d.Year() == year {
			used = append(used, d.String())
		}
	}
	sort.Strings(used)

	s := booking.SummarizeAllowance(userID, year, h.Allowance, bookings)
	writeJSON(w, http.StatusOK, AllowanceSummaryDTO{
		UserID:    s.UserID,
		Year:      s.Year,
		Allowance: s.Allowance.String(),
		Approved:  s.Approved.String(),
		Pending:   s.Pending.String(),
		Remaining: s.Remaining.String(),
		UsedDates: used,
	})
}

// =============================================================================
// CALENDAR HANDLERS
// =============================================================================

// MonthView renders a user's month as week rows keyed by ISO week number.
// Out-of-range or missing year/month resets to the current month; month 0 and
// 13 page across year boundaries.
func (h *Handler) MonthView(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required", nil)
		return
	}

	today := h.Bookings.Now()
	year, month := calendar.NormalizeYearMonth(
		queryInt(r, "year", today.Year()),
		queryInt(r, "month", int(today.Month())),
		today,
	)

	ctx := r.Context()
	bookings, err := h.Store.ListBookingsByUser(ctx, userID)
	if err != nil {
		h.internalError(w, "Failed to list bookings", err)
		return
	}
	holidays, err := h.Store.ListHolidays(ctx)
	if err != nil {
		h.internalError(w, "Failed to list holidays", err)
		return
	}

	firstDay := calendar.FirstDayInWeek(calendar.FirstDayOfMonth(year, time.Month(month)))
	data := grid.NewDataSet(bookings, holidays)
	weeks := grid.BuildWeeks(firstDay, grid.Config{DaysPerWeek: grid.FullWeek, Today: today}, data)

	resp := MonthViewResponse{
		Year:     year,
		Month:    month,
		DayNames: calendar.DayNames,
		Weeks:    make(map[int][]CalendarDayDTO, len(weeks)),
	}
	for wk, cells := range weeks {
		resp.Weeks[wk] = toCalendarDayDTOs(cells)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Overview renders the team calendar, six week rows by default: the directory is
// narrowed by the session's filter selections, sorted, and each remaining
// user gets a grid row. Users without any bookings are skipped.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	today := h.Bookings.Now()
	year, week := calendar.NormalizeYearWeek(
		queryInt(r, "year", calendar.WeekYear(today)),
		queryInt(r, "week", calendar.WeekNumber(today)),
		today,
	)

	daysPerWeek := queryInt(r, "days", grid.BusinessWeek)
	if daysPerWeek != grid.BusinessWeek && daysPerWeek != grid.FullWeek {
		daysPerWeek = grid.BusinessWeek
	}
	weeksCount := queryInt(r, "weeks", grid.DefaultWeeks)
	if weeksCount < 1 || weeksCount > grid.DefaultWeeks {
		weeksCount = grid.DefaultWeeks
	}

	ctx := r.Context()
	users, err := h.Store.ListUsers(ctx)
	if err != nil {
		h.internalError(w, "Failed to list users", err)
		return
	}

	filters, err := h.loadFilters(r)
	if err != nil {
		h.internalError(w, "Failed to load filters", err)
		return
	}
	filtered := roster.FilterUsers(users, filters.Roles, filters.Departments, filters.Teams)
	sorted := roster.SortUsers(filtered, roster.SortKey(r.URL.Query().Get("sort")))

	allBookings, err := h.Store.ListAllBookings(ctx)
	if err != nil {
		h.internalError(w, "Failed to list bookings", err)
		return
	}
	holidays, err := h.Store.ListHolidays(ctx)
	if err != nil {
		h.internalError(w, "Failed to list holidays", err)
		return
	}

	bookingsByUser := make(map[string][]booking.Booking)
	for _, b := range allBookings {
		bookingsByUser[b.UserID] = append(bookingsByUser[b.UserID], b)
	}

	firstDay := calendar.FirstDateOfWeek(year, week)
	cfg := grid.Config{DaysPerWeek: daysPerWeek, Weeks: weeksCount, Today: today}
	grids := grid.BuildUserOverview(sorted, bookingsByUser, holidays, firstDay, cfg)

	resp := OverviewResponse{Year: year, Week: week, DayNames: calendar.DayNamesShort[:daysPerWeek]}
	for i := range sorted {
		cells, ok := grids[sorted[i].ID]
		if !ok {
			continue
		}
		resp.Users = append(resp.Users, OverviewRowDTO{
			User:  toUserDTO(&sorted[i]),
			Cells: toCalendarDayDTOs(cells),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// FILTER HANDLERS
// =============================================================================

// GetFilters returns the caller's filter selections, falling back to the
// everything-selected defaults built from the reference data.
func (h *Handler) GetFilters(w http.ResponseWriter, r *http.Request) {
	filters, err := h.loadFilters(r)
	if err != nil {
		h.internalError(w, "Failed to load filters", err)
		return
	}
	writeJSON(w, http.StatusOK, filters)
}

// SetFilter replaces one filter dimension for the caller's session: listed
// ids become selected, the rest of the dimension is deselected. Selections
// are cumulative across dimensions.
func (h *Handler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req SetFilterRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	items, err := h.defaultFilter(r, req.Dimension)
	if err != nil {
		h.internalError(w, "Failed to build filter", err)
		return
	}

	selected := make(map[string]bool, len(req.SelectedIDs))
	for _, id := range req.SelectedIDs {
		selected[id] = true
	}
	for i := range items {
		items[i].Selected = selected[items[i].ID]
	}

	if err := h.Store.SaveFilterSelection(r.Context(), h.sessionKey(r), req.Dimension, items); err != nil {
		h.internalError(w, "Failed to save filter", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// loadFilters assembles all three dimensions for the caller's session.
func (h *Handler) loadFilters(r *http.Request) (FiltersResponse, error) {
	var resp FiltersResponse
	var err error

	if resp.Roles, err = h.filterFor(r, dimRoles); err != nil {
		return resp, err
	}
	if resp.Departments, err = h.filterFor(r, dimDepartments); err != nil {
		return resp, err
	}
	resp.Teams, err = h.filterFor(r, dimTeams)
	return resp, err
}

func (h *Handler) filterFor(r *http.Request, dimension string) ([]roster.FilterItem, error) {
	items, ok, err := h.Store.GetFilterSelection(r.Context(), h.sessionKey(r), dimension)
	if err != nil {
		return nil, err
	}
	if ok {
		return items, nil
	}
	return h.defaultFilter(r, dimension)
}

// defaultFilter builds the everything-selected item list for one dimension.
// The role dimension excludes the administrative Admin and Manager roles.
func (h *Handler) defaultFilter(r *http.Request, dimension string) ([]roster.FilterItem, error) {
	ctx := r.Context()
	switch dimension {
	case dimRoles:
		roles, err := h.Store.ListRoles(ctx, roleAdmin, roleManager)
		if err != nil {
			return nil, err
		}
		return roster.NewRoleFilter(roles), nil
	case dimDepartments:
		departments, err := h.Store.ListDepartments(ctx)
		if err != nil {
			return nil, err
		}
		return roster.NewDepartmentFilter(departments), nil
	case dimTeams:
		teams, err := h.Store.ListTeams(ctx)
		if err != nil {
			return nil, err
		}
		return roster.NewTeamFilter(teams), nil
	}
	return nil, fmt.Errorf("unknown filter dimension %q", dimension)
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns all holidays ordered by date.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Store.ListHolidays(r.Context())
	if err != nil {
		h.internalError(w, "Failed to list holidays", err)
		return
	}
	writeJSON(w, http.StatusOK, toHolidayDTOs(holidays))
}

// CreateHoliday adds one custom holiday.
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	date, _ := calendar.ParseDate(req.Date)
	holiday := &booking.Holiday{Date: date, Name: req.Name, Custom: req.Custom}
	if err := h.Store.CreateHoliday(r.Context(), holiday); err != nil {
		h.internalError(w, "Failed to create holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, HolidayDTO{
		ID: holiday.ID, Date: holiday.Date.String(), Name: holiday.Name, Custom: holiday.Custom,
	})
}

// ImportHolidays batch-imports holidays, skipping dates that already exist.
func (h *Handler) ImportHolidays(w http.ResponseWriter, r *http.Request) {
	var req ImportHolidaysRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	holidays := make([]booking.Holiday, len(req.Holidays))
	for i, hr := range req.Holidays {
		date, _ := calendar.ParseDate(hr.Date)
		holidays[i] = booking.Holiday{Date: date, Name: hr.Name, Custom: hr.Custom}
	}

	inserted, err := h.Store.ImportHolidays(r.Context(), holidays)
	if err != nil {
		h.internalError(w, "Failed to import holidays", err)
		return
	}
	writeJSON(w, http.StatusOK, ImportHolidaysResponse{
		Imported: inserted,
		Skipped:  len(holidays) - inserted,
	})
}

// DeleteHoliday removes one holiday.
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.domainError(w, "Failed to delete holiday", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// REFERENCE DATA HANDLERS
// =============================================================================

// ListAbsenceTypes returns all absence types.
func (h *Handler) ListAbsenceTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Store.ListAbsenceTypes(r.Context())
	if err != nil {
		h.internalError(w, "Failed to list absence types", err)
		return
	}
	dtos := make([]ReferenceItemDTO, len(types))
	for i, at := range types {
		dtos[i] = ReferenceItemDTO{ID: at.ID, Name: at.Name, Shortening: at.Shortening}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListTeams returns all teams.
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Store.ListTeams(r.Context())
	if err != nil {
		h.internalError(w, "Failed to list teams", err)
		return
	}
	dtos := make([]ReferenceItemDTO, len(teams))
	for i, t := range teams {
		dtos[i] = ReferenceItemDTO{ID: strconv.FormatInt(t.ID, 10), Name: t.Name, Shortening: t.Shortening}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListDepartments returns all departments.
func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Store.ListDepartments(r.Context())
	if err != nil {
		h.internalError(w, "Failed to list departments", err)
		return
	}
	dtos := make([]ReferenceItemDTO, len(departments))
	for i, d := range departments {
		dtos[i] = ReferenceItemDTO{ID: strconv.FormatInt(d.ID, 10), Name: d.Name, Shortening: d.Shortening}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListRoles returns all schedulable roles (Admin and Manager excluded).
func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Store.ListRoles(r.Context(), roleAdmin, roleManager)
	if err != nil {
		h.internalError(w, "Failed to list roles", err)
		return
	}
	dtos := make([]ReferenceItemDTO, len(roles))
	for i, role := range roles {
		dtos[i] = ReferenceItemDTO{ID: role.ID, Name: role.Name, Shortening: role.Shortening}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HELPERS
// =============================================================================

// decodeAndValidate parses the JSON body into dst and runs struct validation.
// On failure it writes the error response and returns false.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusInternalServerError, "Validation failed", err)
			return false
		}
		fields := make(map[string][]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = append(fields[fe.Field()],
				fmt.Sprintf("failed %q validation", fe.Tag()))
		}
		writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  "Invalid request",
			Fields: fields,
		})
		return false
	}
	return true
}

// domainError maps domain sentinels to HTTP statuses.
func (h *Handler) domainError(w http.ResponseWriter, message string, err error) {
	switch {
	case booking.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, booking.ErrAccessDenied):
		writeError(w, http.StatusForbidden, message, err)
	case booking.IsAccessError(err), errors.Is(err, booking.ErrInvalidApprovalState):
		writeError(w, http.StatusConflict, message, err)
	default:
		h.internalError(w, message, err)
	}
}

func (h *Handler) internalError(w http.ResponseWriter, message string, err error) {
	h.log.WithError(err).Error(message)
	writeError(w, http.StatusInternalServerError, message, err)
}

func writeValidationErrors(w http.ResponseWriter, errs booking.ValidationErrors) {
	fields := make(map[string][]string)
	for _, fe := range errs {
		fields[fe.Field] = append(fields[fe.Field], fe.Message)
	}
	writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Error:  "Booking rejected",
		Fields: fields,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}
