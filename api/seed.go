/*
seed.go - Demo data loader for testing and demonstrations

PURPOSE:

	Populates an empty database with a realistic company: teams,
	departments, roles, absence types, a small directory with a manager
	chain, national holidays, and a handful of bookings in different
	approval states. Enough to exercise the overview, the filters, and
	the approval flow right after startup.

USAGE:

	./server -db=":memory:" -seed

	Seeding is skipped when the database already has users, so running
	with -seed against an existing file database is safe.

NOTE:

	Demo data only. Do not run against a production database.

SEE ALSO:
  - cmd/server/main.go: The -seed flag
  - store/sqlite/sqlite.go: Persistence
*/
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/warp/vacation-planner/booking"
	"github.com/warp/vacation-planner/calendar"
	"github.com/warp/vacation-planner/roster"
	"github.com/warp/vacation-planner/store/sqlite"
)

// SeedDemoData loads the demo company into an empty store. It is a no-op
// when users already exist.
func SeedDemoData(ctx context.Context, store *sqlite.Store) error {
	existing, err := store.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	// Roles
	roleByName := make(map[string]roster.Role)
	for _, spec := range []struct{ name, short string }{
		{"Admin", "ADM"},
		{"Manager", "MGR"},
		{"Developer", "DEV"},
		{"Designer", "DES"},
		{"Support", "SUP"},
	} {
		r := &roster.Role{Name: spec.name, Shortening: spec.short}
		if err := store.CreateRole(ctx, r); err != nil {
			return fmt.Errorf("seed role %s: %w", spec.name, err)
		}
		roleByName[spec.name] = *r
	}

	// Teams and departments
	platform := &roster.Team{Name: "Platform", Shortening: "PLT"}
	product := &roster.Team{Name: "Product", Shortening: "PRD"}
	for _, t := range []*roster.Team{platform, product} {
		if err := store.CreateTeam(ctx, t); err != nil {
			return fmt.Errorf("seed team %s: %w", t.Name, err)
		}
	}

	engineering := &roster.Department{Name: "Engineering", Shortening: "ENG"}
	customer := &roster.Department{Name: "Customer", Shortening: "CST"}
	for _, d := range []*roster.Department{engineering, customer} {
		if err := store.CreateDepartment(ctx, d); err != nil {
			return fmt.Errorf("seed department %s: %w", d.Name, err)
		}
	}

	// Absence types
	vacation := &booking.AbsenceType{Name: "Vacation", Shortening: "VAC"}
	for _, at := range []*booking.AbsenceType{
		vacation,
		{Name: "Parental Leave", Shortening: "PAR"},
		{Name: "Unpaid Leave", Shortening: "UNP"},
	} {
		if err := store.CreateAbsenceType(ctx, at); err != nil {
			return fmt.Errorf("seed absence type %s: %w", at.Name, err)
		}
	}

	// Directory: one admin, one manager, three reports
	admin := &roster.User{
		DisplayName: "Ada Admin", FirstName: "Ada", LastName: "Admin",
		Email: "ada@example.com", Roles: []roster.Role{roleByName["Admin"]},
	}
	manager := &roster.User{
		DisplayName: "Max Manager", FirstName: "Max", LastName: "Manager",
		Email: "max@example.com", Roles: []roster.Role{roleByName["Manager"]},
	}
	if err := store.CreateUser(ctx, admin); err != nil {
		return err
	}
	if err := store.CreateUser(ctx, manager); err != nil {
		return err
	}

	reports := []*roster.User{
		{
			DisplayName: "Dana Developer", FirstName: "Dana", LastName: "Developer",
			Email: "dana@example.com", TeamID: &platform.ID, DepartmentID: &engineering.ID,
			ManagerID: &manager.ID, Roles: []roster.Role{roleByName["Developer"]},
		},
		{
			DisplayName: "Devin Designer", FirstName: "Devin", LastName: "Designer",
			Email: "devin@example.com", TeamID: &product.ID, DepartmentID: &engineering.ID,
			ManagerID: &manager.ID, Roles: []roster.Role{roleByName["Designer"]},
		},
		{
			DisplayName: "Sam Support", FirstName: "Sam", LastName: "Support",
			Email: "sam@example.com", DepartmentID: &customer.ID,
			ManagerID: &manager.ID, Roles: []roster.Role{roleByName["Support"]},
		},
	}
	for _, u := range reports {
		if err := store.CreateUser(ctx, u); err != nil {
			return err
		}
	}

	// Holidays around the current year
	year := calendar.Today().Year()
	if _, err := store.ImportHolidays(ctx, []booking.Holiday{
		{Date: calendar.NewDate(year, time.January, 1), Name: "New Year's Day"},
		{Date: calendar.NewDate(year, time.May, 1), Name: "May Day"},
		{Date: calendar.NewDate(year, time.December, 25), Name: "Christmas Day"},
		{Date: calendar.NewDate(year, time.December, 26), Name: "Boxing Day"},
		{Date: calendar.NewDate(year+1, time.January, 1), Name: "New Year's Day"},
	}); err != nil {
		return fmt.Errorf("seed holidays: %w", err)
	}

	// Bookings in both approval states, anchored on upcoming Mondays
	holidays, err := store.ListHolidays(ctx)
	if err != nil {
		return err
	}
	holidaySet := booking.HolidayDates(holidays)

	nextMonday := calendar.Today()
	for !nextMonday.IsMonday() {
		nextMonday = nextMonday.AddDays(1)
	}

	seedBookings := []struct {
		user     *roster.User
		from, to calendar.Date
		approval booking.ApprovalState
	}{
		{reports[0], nextMonday, nextMonday.AddDays(4), booking.ApprovalApproved},
		{reports[1], nextMonday.AddDays(7), nextMonday.AddDays(9), booking.ApprovalPending},
		{reports[2], nextMonday.AddDays(14), nextMonday.AddDays(18), booking.ApprovalPending},
	}
	for _, sb := range seedBookings {
		b := &booking.Booking{
			ID:            uuid.NewString(),
			UserID:        sb.user.ID,
			FromDate:      sb.from,
			ToDate:        sb.to,
			AbsenceTypeID: vacation.ID,
			Approval:      sb.approval,
		}
		res := booking.Expand(b.ID, b.FromDate, b.ToDate, holidaySet, nil, nil)
		b.Days = res.Days
		if err := store.CreateBooking(ctx, b); err != nil {
			return fmt.Errorf("seed booking for %s: %w", sb.user.DisplayName, err)
		}
	}

	return nil
}
