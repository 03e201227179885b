/*
Package sqlite provides the SQLite-backed persistence for the vacation planner.

PURPOSE:
  Implements storage for bookings and their day sets, the user directory with
  roles/teams/departments, holidays, absence types, and the session-scoped
  filter selections. In production the same patterns apply to PostgreSQL -
  only minor SQL dialect differences.

KEY TABLES:
  bookings:          Absence requests with date range and approval state
  booking_days:      Working-day entries, owned by bookings (cascade delete)
  holidays:          Work-free dates, imported or custom
  users/roles/...:   Directory and reference data
  filter_selections: Serialized FilterItem lists per session and dimension

TRANSACTIONAL EDIT:
  Replacing a booking's day set on edit deletes the old entries and inserts
  the new ones inside one database transaction. A partially replaced day set
  is never observable.

CONCURRENCY:
  sync.RWMutex guards the connection; SQLite runs in WAL mode so readers
  don't block each other. Concurrent filter-selection writes from the same
  session are last-write-wins.

USAGE:
  store, err := sqlite.New("./data/planner.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - booking: Entities persisted here
  - api/handlers.go: The only caller
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/vacation-planner/booking"
	"github.com/warp/vacation-planner/calendar"
	"github.com/warp/vacation-planner/roster"
)

// Store implements all persistence for the planner using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Directory and reference data
	CREATE TABLE IF NOT EXISTS teams (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		shortening TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS departments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		shortening TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS roles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		shortening TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		display_name TEXT NOT NULL,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		team_id INTEGER REFERENCES teams(id),
		department_id INTEGER REFERENCES departments(id),
		manager_id TEXT REFERENCES users(id),
		hidden BOOLEAN NOT NULL DEFAULT FALSE
	);

	CREATE INDEX IF NOT EXISTS idx_users_manager ON users(manager_id);

	CREATE TABLE IF NOT EXISTS user_roles (
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role_id TEXT NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, role_id)
	);

	CREATE TABLE IF NOT EXISTS absence_types (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		shortening TEXT NOT NULL DEFAULT ''
	);

	-- Bookings and their owned day sets
	CREATE TABLE IF NOT EXISTS bookings (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		from_date TEXT NOT NULL,
		to_date TEXT NOT NULL,
		absence_type_id TEXT REFERENCES absence_types(id),
		approval TEXT NOT NULL DEFAULT 'Pending',
		comment TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_bookings_user ON bookings(user_id);
	CREATE INDEX IF NOT EXISTS idx_bookings_approval ON bookings(approval);

	CREATE TABLE IF NOT EXISTS booking_days (
		id TEXT PRIMARY KEY,
		booking_id TEXT NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
		date TEXT NOT NULL,
		UNIQUE (booking_id, date)
	);

	CREATE INDEX IF NOT EXISTS idx_booking_days_date ON booking_days(date);

	-- Holidays (work-free days)
	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		custom BOOLEAN NOT NULL DEFAULT FALSE
	);

	CREATE INDEX IF NOT EXISTS idx_holidays_date ON holidays(date);

	-- Session-scoped filter selections (last write wins)
	CREATE TABLE IF NOT EXISTS filter_selections (
		session_key TEXT NOT NULL,
		dimension TEXT NOT NULL,
		items_json TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (session_key, dimension)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// BOOKINGS
// =============================================================================

// CreateBooking persists a booking and its day set in one transaction.
func (s *Store) CreateBooking(ctx context.Context, b *booking.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bookings (id, user_id, from_date, to_date, absence_type_id, approval, comment, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.UserID, b.FromDate.String(), b.ToDate.String(),
		nullString(b.AbsenceTypeID), string(b.Approval), b.Comment,
		now.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	if err := insertDays(ctx, tx, b.ID, b.Days); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateBooking replaces a booking's fields and its whole day set
// atomically: the old day entries are deleted and the new ones inserted in
// the same transaction, so a partial replacement is never persisted.
func (s *Store) UpdateBooking(ctx context.Context, b *booking.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
		UPDATE bookings
		SET user_id = ?, from_date = ?, to_date = ?, absence_type_id = ?, approval = ?, comment = ?, updated_at = ?
		WHERE id = ?`,
		b.UserID, b.FromDate.String(), b.ToDate.String(),
		nullString(b.AbsenceTypeID), string(b.Approval), b.Comment,
		now.Format(time.RFC3339), b.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return booking.ErrNotFound
	}
	b.UpdatedAt = now

	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_days WHERE booking_id = ?`, b.ID); err != nil {
		return fmt.Errorf("failed to delete old booking days: %w", err)
	}
	if err := insertDays(ctx, tx, b.ID, b.Days); err != nil {
		return err
	}

	return tx.Commit()
}

func insertDays(ctx context.Context, tx *sql.Tx, bookingID string, days []booking.Day) error {
	for i := range days {
		if days[i].ID == "" {
			days[i].ID = uuid.NewString()
		}
		days[i].BookingID = bookingID
		_, err := tx.ExecContext(ctx, `
			INSERT INTO booking_days (id, booking_id, date) VALUES (?, ?, ?)`,
			days[i].ID, bookingID, days[i].Date.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert booking day %s: %w", days[i].Date, err)
		}
	}
	return nil
}

// GetBooking loads a booking with its day set and absence type.
func (s *Store) GetBooking(ctx context.Context, id string) (*booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, from_date, to_date, absence_type_id, approval, comment, created_at, updated_at
		FROM bookings WHERE id = ?`, id)

	b, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, booking.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.attachBookingDetails(ctx, []*booking.Booking{b}); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBookingsByUser returns a user's bookings, day sets attached, ordered
// by from-date.
func (s *Store) ListBookingsByUser(ctx context.Context, userID string) ([]booking.Booking, error) {
	return s.listBookings(ctx, `
		SELECT id, user_id, from_date, to_date, absence_type_id, approval, comment, created_at, updated_at
		FROM bookings WHERE user_id = ? ORDER BY from_date ASC`, userID)
}

// ListAllBookings returns every booking with day sets attached.
func (s *Store) ListAllBookings(ctx context.Context) ([]booking.Booking, error) {
	return s.listBookings(ctx, `
		SELECT id, user_id, from_date, to_date, absence_type_id, approval, comment, created_at, updated_at
		FROM bookings ORDER BY from_date ASC`)
}

// ListBookingsByManager returns bookings owned by the manager's direct
// reports, ordered by from-date.
func (s *Store) ListBookingsByManager(ctx context.Context, managerID string) ([]booking.Booking, error) {
	return s.listBookings(ctx, `
		SELECT b.id, b.user_id, b.from_date, b.to_date, b.absence_type_id, b.approval, b.comment, b.created_at, b.updated_at
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		WHERE u.manager_id = ? ORDER BY b.from_date ASC`, managerID)
}

// ListBookingsByApproval returns bookings in the given state ordered by
// from-date. The managers' todo list uses it with Pending.
func (s *Store) ListBookingsByApproval(ctx context.Context, state booking.ApprovalState) ([]booking.Booking, error) {
	return s.listBookings(ctx, `
		SELECT id, user_id, from_date, to_date, absence_type_id, approval, comment, created_at, updated_at
		FROM bookings WHERE approval = ? ORDER BY from_date ASC`, string(state))
}

func (s *Store) listBookings(ctx context.Context, query string, args ...any) ([]booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*booking.Booking, len(bookings))
	for i := range bookings {
		refs[i] = &bookings[i]
	}
	if err := s.attachBookingDetails(ctx, refs); err != nil {
		return nil, err
	}
	return bookings, nil
}

// attachBookingDetails loads day sets and absence types for the bookings.
func (s *Store) attachBookingDetails(ctx context.Context, bookings []*booking.Booking) error {
	for _, b := range bookings {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, booking_id, date FROM booking_days
			WHERE booking_id = ? ORDER BY date ASC`, b.ID)
		if err != nil {
			return fmt.Errorf("failed to query booking days: %w", err)
		}

		b.Days = nil
		for rows.Next() {
			var d booking.Day
			var dateStr string
			if err := rows.Scan(&d.ID, &d.BookingID, &dateStr); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan booking day: %w", err)
			}
			d.Date, _ = calendar.ParseDate(dateStr)
			b.Days = append(b.Days, d)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()

		if b.AbsenceTypeID != "" {
			at, err := s.getAbsenceType(ctx, b.AbsenceTypeID)
			if err != nil && err != sql.ErrNoRows {
				return err
			}
			b.AbsenceType = at
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*booking.Booking, error) {
	var (
		b             booking.Booking
		fromStr       string
		toStr         string
		absenceTypeID sql.NullString
		approval      string
		createdAt     string
		updatedAt     string
	)

	err := row.Scan(&b.ID, &b.UserID, &fromStr, &toStr, &absenceTypeID, &approval, &b.Comment, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	b.FromDate, _ = calendar.ParseDate(fromStr)
	b.ToDate, _ = calendar.ParseDate(toStr)
	b.AbsenceTypeID = absenceTypeID.String
	b.Approval = booking.ApprovalState(approval)
	b.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	b.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &b, nil
}

// SetApproval sets a booking's approval state without touching the day set.
// The manager decision path.
func (s *Store) SetApproval(ctx context.Context, bookingID string, state booking.ApprovalState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE bookings SET approval = ?, updated_at = ? WHERE id = ?`,
		string(state), time.Now().UTC().Format(time.RFC3339), bookingID,
	)
	if err != nil {
		return fmt.Errorf("failed to set approval: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return booking.ErrNotFound
	}
	return nil
}

// DeleteBooking removes a booking; its day set goes with it (cascade).
func (s *Store) DeleteBooking(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return booking.ErrNotFound
	}
	return nil
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// ListHolidays returns every holiday ordered by date.
func (s *Store) ListHolidays(ctx context.Context) ([]booking.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, date, name, custom FROM holidays ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	var holidays []booking.Holiday
	for rows.Next() {
		var h booking.Holiday
		var dateStr string
		if err := rows.Scan(&h.ID, &dateStr, &h.Name, &h.Custom); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		h.Date, _ = calendar.ParseDate(dateStr)
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// CreateHoliday inserts one holiday.
func (s *Store) CreateHoliday(ctx context.Context, h *booking.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO holidays (id, date, name, custom) VALUES (?, ?, ?, ?)`,
		h.ID, h.Date.String(), h.Name, h.Custom,
	)
	if err != nil {
		return fmt.Errorf("failed to insert holiday: %w", err)
	}
	return nil
}

// ImportHolidays inserts the given holidays, skipping any whose date already
// exists. Returns how many were inserted.
func (s *Store) ImportHolidays(ctx context.Context, holidays []booking.Holiday) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for _, h := range holidays {
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM holidays WHERE date = ?`, h.Date.String()).Scan(&count); err != nil {
			return 0, err
		}
		if count > 0 {
			continue
		}
		if h.ID == "" {
			h.ID = uuid.NewString()
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO holidays (id, date, name, custom) VALUES (?, ?, ?, ?)`,
			h.ID, h.Date.String(), h.Name, h.Custom,
		); err != nil {
			return 0, fmt.Errorf("failed to import holiday %s: %w", h.Date, err)
		}
		inserted++
	}

	return inserted, tx.Commit()
}

// DeleteHoliday removes one holiday.
func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM holidays WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return booking.ErrNotFound
	}
	return nil
}

// =============================================================================
// USERS AND REFERENCE DATA
// =============================================================================

// CreateUser inserts a directory entry and its role memberships.
func (s *Store) CreateUser(ctx context.Context, u *roster.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, display_name, first_name, last_name, email, team_id, department_id, manager_id, hidden)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.DisplayName, u.FirstName, u.LastName, u.Email,
		nullInt64(u.TeamID), nullInt64(u.DepartmentID), nullStringPtr(u.ManagerID), u.Hidden,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	for _, r := range u.Roles {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_roles (user_id, role_id) VALUES (?, ?)`, u.ID, r.ID); err != nil {
			return fmt.Errorf("failed to assign role: %w", err)
		}
	}

	return tx.Commit()
}

// GetUser loads one user with roles.
func (s *Store) GetUser(ctx context.Context, id string) (*roster.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, display_name, first_name, last_name, email, team_id, department_id, manager_id, hidden
		FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, booking.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.attachRoles(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ListUsers returns all visible (non-hidden) users with roles attached.
func (s *Store) ListUsers(ctx context.Context) ([]roster.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, display_name, first_name, last_name, email, team_id, department_id, manager_id, hidden
		FROM users WHERE hidden = FALSE ORDER BY display_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []roster.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range users {
		if err := s.attachRoles(ctx, &users[i]); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// IsManagerOf reports whether managerID manages userID.
func (s *Store) IsManagerOf(ctx context.Context, managerID, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM users WHERE id = ? AND manager_id = ?`, userID, managerID).Scan(&count)
	return count > 0, err
}

// UserHasRole reports whether the user holds the named role.
func (s *Store) UserHasRole(ctx context.Context, userID, roleName string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM user_roles ur
		JOIN roles r ON r.id = ur.role_id
		WHERE ur.user_id = ? AND r.name = ?`, userID, roleName).Scan(&count)
	return count > 0, err
}

// HasReports reports whether any user names userID as their manager.
func (s *Store) HasReports(ctx context.Context, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM users WHERE manager_id = ?`, userID).Scan(&count)
	return count > 0, err
}

func scanUser(row rowScanner) (*roster.User, error) {
	var (
		u            roster.User
		teamID       sql.NullInt64
		departmentID sql.NullInt64
		managerID    sql.NullString
	)

	err := row.Scan(&u.ID, &u.DisplayName, &u.FirstName, &u.LastName, &u.Email,
		&teamID, &departmentID, &managerID, &u.Hidden)
	if err != nil {
		return nil, err
	}

	if teamID.Valid {
		u.TeamID = &teamID.Int64
	}
	if departmentID.Valid {
		u.DepartmentID = &departmentID.Int64
	}
	if managerID.Valid {
		u.ManagerID = &managerID.String
	}
	return &u, nil
}

func (s *Store) attachRoles(ctx context.Context, u *roster.User) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.name, r.shortening FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = ? ORDER BY r.name ASC`, u.ID)
	if err != nil {
		return fmt.Errorf("failed to query user roles: %w", err)
	}
	defer rows.Close()

	u.Roles = nil
	for rows.Next() {
		var r roster.Role
		if err := rows.Scan(&r.ID, &r.Name, &r.Shortening); err != nil {
			return fmt.Errorf("failed to scan role: %w", err)
		}
		u.Roles = append(u.Roles, r)
	}
	return rows.Err()
}

// ListRoles returns roles, optionally excluding some by name. The filter UI
// hides the administrative Admin/Manager roles this way.
func (s *Store) ListRoles(ctx context.Context, excludeNames ...string) ([]roster.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, name, shortening FROM roles`
	var args []any
	if len(excludeNames) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(excludeNames)), ",")
		query += ` WHERE name NOT IN (` + placeholders + `)`
		for _, n := range excludeNames {
			args = append(args, n)
		}
	}
	query += ` ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	var roles []roster.Role
	for rows.Next() {
		var r roster.Role
		if err := rows.Scan(&r.ID, &r.Name, &r.Shortening); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, r)
	}
	return roles, rows.Err()
}

// CreateRole inserts a role.
func (s *Store) CreateRole(ctx context.Context, r *roster.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO roles (id, name, shortening) VALUES (?, ?, ?)`, r.ID, r.Name, r.Shortening)
	if err != nil {
		return fmt.Errorf("failed to insert role: %w", err)
	}
	return nil
}

// ListTeams returns all teams.
func (s *Store) ListTeams(ctx context.Context) ([]roster.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, shortening FROM teams ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	var teams []roster.Team
	for rows.Next() {
		var t roster.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Shortening); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// CreateTeam inserts a team.
func (s *Store) CreateTeam(ctx context.Context, t *roster.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `INSERT INTO teams (name, shortening) VALUES (?, ?)`, t.Name, t.Shortening)
	if err != nil {
		return fmt.Errorf("failed to insert team: %w", err)
	}
	t.ID, _ = res.LastInsertId()
	return nil
}

// ListDepartments returns all departments.
func (s *Store) ListDepartments(ctx context.Context) ([]roster.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, shortening FROM departments ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	var departments []roster.Department
	for rows.Next() {
		var d roster.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Shortening); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// CreateDepartment inserts a department.
func (s *Store) CreateDepartment(ctx context.Context, d *roster.Department) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `INSERT INTO departments (name, shortening) VALUES (?, ?)`, d.Name, d.Shortening)
	if err != nil {
		return fmt.Errorf("failed to insert department: %w", err)
	}
	d.ID, _ = res.LastInsertId()
	return nil
}

// ListAbsenceTypes returns all absence types.
func (s *Store) ListAbsenceTypes(ctx context.Context) ([]booking.AbsenceType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, shortening FROM absence_types ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query absence types: %w", err)
	}
	defer rows.Close()

	var types []booking.AbsenceType
	for rows.Next() {
		var at booking.AbsenceType
		if err := rows.Scan(&at.ID, &at.Name, &at.Shortening); err != nil {
			return nil, fmt.Errorf("failed to scan absence type: %w", err)
		}
		types = append(types, at)
	}
	return types, rows.Err()
}

// GetAbsenceType loads one absence type.
func (s *Store) GetAbsenceType(ctx context.Context, id string) (*booking.AbsenceType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	at, err := s.getAbsenceType(ctx, id)
	if err == sql.ErrNoRows {
		return nil, booking.ErrNotFound
	}
	return at, err
}

func (s *Store) getAbsenceType(ctx context.Context, id string) (*booking.AbsenceType, error) {
	var at booking.AbsenceType
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, shortening FROM absence_types WHERE id = ?`, id).
		Scan(&at.ID, &at.Name, &at.Shortening)
	if err != nil {
		return nil, err
	}
	return &at, nil
}

// CreateAbsenceType inserts an absence type.
func (s *Store) CreateAbsenceType(ctx context.Context, at *booking.AbsenceType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if at.ID == "" {
		at.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO absence_types (id, name, shortening) VALUES (?, ?, ?)`, at.ID, at.Name, at.Shortening)
	if err != nil {
		return fmt.Errorf("failed to insert absence type: %w", err)
	}
	return nil
}

// =============================================================================
// FILTER SELECTIONS
// =============================================================================

// GetFilterSelection loads the stored FilterItem list for a session and
// dimension. ok is false when nothing was stored yet.
func (s *Store) GetFilterSelection(ctx context.Context, sessionKey, dimension string) ([]roster.FilterItem, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var itemsJSON string
	err := s.db.QueryRowContext(ctx, `
		SELECT items_json FROM filter_selections WHERE session_key = ? AND dimension = ?`,
		sessionKey, dimension).Scan(&itemsJSON)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query filter selection: %w", err)
	}

	var items []roster.FilterItem
	if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
		return nil, false, fmt.Errorf("failed to decode filter selection: %w", err)
	}
	return items, true, nil
}

// SaveFilterSelection stores a FilterItem list for a session and dimension,
// replacing any previous value (last write wins).
func (s *Store) SaveFilterSelection(ctx context.Context, sessionKey, dimension string, items []roster.FilterItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode filter selection: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO filter_selections (session_key, dimension, items_json, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (session_key, dimension) DO UPDATE SET items_json = excluded.items_json, updated_at = excluded.updated_at`,
		sessionKey, dimension, string(itemsJSON), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save filter selection: %w", err)
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullStringPtr(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func nullInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}
