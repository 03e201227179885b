/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:
  Bookings:
    BookingDTO, DayDTO, SubmitBookingRequest, EditBookingRequest,
    DecisionRequest

  Calendar:
    CalendarDayDTO, MonthViewResponse, OverviewResponse, OverviewRowDTO

  Holidays:
    HolidayDTO, CreateHolidayRequest, ImportHolidaysRequest

  Users and filters:
    UserDTO, FiltersResponse, SetFilterRequest

  Balance:
    AllowanceSummaryDTO

VALIDATION:
  Request types carry go-playground/validator struct tags; handlers run
  them through the shared validator instance before touching the domain.
  Date fields are plain "2006-01-02" strings and are parsed in handlers.

SEE ALSO:
  - handlers.go: Uses these types
  - booking: Domain entities these types project
*/
package api

import (
	"github.com/warp/vacation-planner/booking"
	"github.com/warp/vacation-planner/grid"
	"github.com/warp/vacation-planner/roster"
)

// =============================================================================
// BOOKING TYPES
// =============================================================================

// BookingDTO represents a booking in API responses.
type BookingDTO struct {
	ID            string   `json:"id"`
	UserID        string   `json:"user_id"`
	FromDate      string   `json:"from_date"`
	ToDate        string   `json:"to_date"`
	AbsenceTypeID string   `json:"absence_type_id,omitempty"`
	AbsenceType   string   `json:"absence_type,omitempty"`
	Approval      string   `json:"approval"`
	Comment       string   `json:"comment,omitempty"`
	Days          []DayDTO `json:"days"`
	CreatedAt     string   `json:"created_at,omitempty"`
	UpdatedAt     string   `json:"updated_at,omitempty"`
}

// DayDTO represents one working-day entry of a booking.
type DayDTO struct {
	ID   string `json:"id"`
	Date string `json:"date"`
}

// SubmitBookingRequest is the request to create a booking.
type SubmitBookingRequest struct {
	UserID        string `json:"user_id" validate:"required"`
	FromDate      string `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate        string `json:"to_date" validate:"required,datetime=2006-01-02"`
	AbsenceTypeID string `json:"absence_type_id,omitempty"`
	Comment       string `json:"comment,omitempty" validate:"max=500"`
}

// EditBookingRequest is the request to edit a booking. UserID and Approval
// only take effect for managers and admins; plain owners have them reverted.
type EditBookingRequest struct {
	UserID        string `json:"user_id,omitempty"`
	FromDate      string `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate        string `json:"to_date" validate:"required,datetime=2006-01-02"`
	AbsenceTypeID string `json:"absence_type_id,omitempty"`
	Approval      string `json:"approval,omitempty" validate:"omitempty,oneof=Pending Approved Denied"`
	Comment       string `json:"comment,omitempty" validate:"max=500"`
}

// DecisionRequest is the request to approve or deny a booking.
type DecisionRequest struct {
	Approval string `json:"approval" validate:"required,oneof=Approved Denied"`
}

// =============================================================================
// CALENDAR TYPES
// =============================================================================

// CalendarDayDTO represents one rendered calendar cell.
type CalendarDayDTO struct {
	Date          string `json:"date"`
	WeekNumber    int    `json:"week_number"`
	IsWeekend     bool   `json:"is_weekend"`
	IsHoliday     bool   `json:"is_holiday"`
	IsToday       bool   `json:"is_today"`
	IsStartOfWeek bool   `json:"is_start_of_week"`
	IsPlanned     bool   `json:"is_planned"`
	Approval      string `json:"approval,omitempty"`
	AbsenceType   string `json:"absence_type,omitempty"`
	BookingID     string `json:"booking_id,omitempty"`
	Note          string `json:"note,omitempty"`
}

// MonthViewResponse is the personal month view: rows keyed by ISO week.
// DayNames carries the Monday-first column headers.
type MonthViewResponse struct {
	Year     int                      `json:"year"`
	Month    int                      `json:"month"`
	DayNames []string                 `json:"day_names"`
	Weeks    map[int][]CalendarDayDTO `json:"weeks"`
}

// OverviewRowDTO is one user's row in the team overview.
type OverviewRowDTO struct {
	User  UserDTO          `json:"user"`
	Cells []CalendarDayDTO `json:"cells"`
}

// OverviewResponse is the team overview. DayNames holds the abbreviated
// column headers, one per rendered weekday.
type OverviewResponse struct {
	Year     int              `json:"year"`
	Week     int              `json:"week"`
	DayNames []string         `json:"day_names"`
	Users    []OverviewRowDTO `json:"users"`
}

// =============================================================================
// HOLIDAY TYPES
// =============================================================================

// HolidayDTO represents a holiday in API responses.
type HolidayDTO struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Name   string `json:"name"`
	Custom bool   `json:"custom"`
}

// CreateHolidayRequest is the request to add one holiday.
type CreateHolidayRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Name   string `json:"name" validate:"required,max=200"`
	Custom bool   `json:"custom,omitempty"`
}

// ImportHolidaysRequest is a batch import; existing dates are skipped.
type ImportHolidaysRequest struct {
	Holidays []CreateHolidayRequest `json:"holidays" validate:"required,min=1,dive"`
}

// ImportHolidaysResponse reports how many holidays were actually inserted.
type ImportHolidaysResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// =============================================================================
// USER AND FILTER TYPES
// =============================================================================

// UserDTO represents a directory entry in API responses.
type UserDTO struct {
	ID           string   `json:"id"`
	DisplayName  string   `json:"display_name"`
	Email        string   `json:"email,omitempty"`
	TeamID       *int64   `json:"team_id,omitempty"`
	DepartmentID *int64   `json:"department_id,omitempty"`
	Roles        []string `json:"roles,omitempty"`
}

// FiltersResponse carries the three filter dimensions of the overview, each
// a list of roster.FilterItem (which marshals itself).
type FiltersResponse struct {
	Roles       []roster.FilterItem `json:"roles"`
	Departments []roster.FilterItem `json:"departments"`
	Teams       []roster.FilterItem `json:"teams"`
}

// SetFilterRequest updates one filter dimension for the caller's session:
// the listed ids become selected, everything else in the dimension is not.
type SetFilterRequest struct {
	Dimension   string   `json:"dimension" validate:"required,oneof=roles departments teams"`
	SelectedIDs []string `json:"selected_ids"`
}

// =============================================================================
// BALANCE TYPES
// =============================================================================

// AllowanceSummaryDTO represents a user's vacation balance for one year.
// Amounts are decimal strings; UsedDates lists the year's booked dates in
// ascending order.
type AllowanceSummaryDTO struct {
	UserID    string   `json:"user_id"`
	Year      int      `json:"year"`
	Allowance string   `json:"allowance"`
	Approved  string   `json:"approved"`
	Pending   string   `json:"pending"`
	Remaining string   `json:"remaining"`
	UsedDates []string `json:"used_dates"`
}

// ReferenceItemDTO represents one reference record (role, team, department,
// absence type). Numeric ids are formatted as strings so they match the ids
// used by filter selections.
type ReferenceItemDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Shortening string `json:"shortening,omitempty"`
}

// ErrorResponse is the generic error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ValidationErrorResponse carries per-field validation messages.
type ValidationErrorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func toBookingDTO(b *booking.Booking) BookingDTO {
	dto := BookingDTO{
		ID:            b.ID,
		UserID:        b.UserID,
		FromDate:      b.FromDate.String(),
		ToDate:        b.ToDate.String(),
		AbsenceTypeID: b.AbsenceTypeID,
		Approval:      string(b.Approval),
		Comment:       b.Comment,
		Days:          make([]DayDTO, len(b.Days)),
	}
	if b.AbsenceType != nil {
		dto.AbsenceType = b.AbsenceType.Name
	}
	if !b.CreatedAt.IsZero() {
		dto.CreatedAt = b.CreatedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	if !b.UpdatedAt.IsZero() {
		dto.UpdatedAt = b.UpdatedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	for i, d := range b.Days {
		dto.Days[i] = DayDTO{ID: d.ID, Date: d.Date.String()}
	}
	return dto
}

func toBookingDTOs(bookings []booking.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i := range bookings {
		dtos[i] = toBookingDTO(&bookings[i])
	}
	return dtos
}

func toCalendarDayDTO(c grid.CalendarDay) CalendarDayDTO {
	return CalendarDayDTO{
		Date:          c.Date.String(),
		WeekNumber:    c.WeekNumber,
		IsWeekend:     c.IsWeekend,
		IsHoliday:     c.IsHoliday,
		IsToday:       c.IsToday,
		IsStartOfWeek: c.IsStartOfWeek,
		IsPlanned:     c.IsPlanned,
		Approval:      string(c.Approval),
		AbsenceType:   c.AbsenceType,
		BookingID:     c.BookingID,
		Note:          c.Note,
	}
}

func toCalendarDayDTOs(cells []grid.CalendarDay) []CalendarDayDTO {
	dtos := make([]CalendarDayDTO, len(cells))
	for i, c := range cells {
		dtos[i] = toCalendarDayDTO(c)
	}
	return dtos
}

func toHolidayDTOs(holidays []booking.Holiday) []HolidayDTO {
	dtos := make([]HolidayDTO, len(holidays))
	for i, h := range holidays {
		dtos[i] = HolidayDTO{ID: h.ID, Date: h.Date.String(), Name: h.Name, Custom: h.Custom}
	}
	return dtos
}

func toUserDTO(u *roster.User) UserDTO {
	dto := UserDTO{
		ID:           u.ID,
		DisplayName:  u.DisplayName,
		Email:        u.Email,
		TeamID:       u.TeamID,
		DepartmentID: u.DepartmentID,
	}
	for _, r := range u.Roles {
		dto.Roles = append(dto.Roles, r.Name)
	}
	return dto
}
