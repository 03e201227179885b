/*
Package roster holds the user directory view and the filter engine for
overview screens.

PURPOSE:
  Overview screens narrow the user list by role, department and team through
  checkbox filter sets, then sort by a caller-selected key. Each filter set
  carries a synthetic "none/unassigned" bucket for users without a value in
  that dimension. The engine is pure: it receives the user list and filter
  state and returns the narrowed list; session persistence of filter state is
  the caller's concern.

KEY CONCEPTS IN THIS FILE (types.go):
  - User: Directory entry with optional team/department/manager references
  - FilterItem: One selectable bucket, including the "none" sentinel
  - Role/Team/Department: Reference entities the buckets are built from

SEE ALSO:
  - filter.go: Filtering semantics
  - sort.go: Sort keys
*/
package roster

import "strconv"

// =============================================================================
// REFERENCE ENTITIES
// =============================================================================

type Role struct {
	ID         string
	Name       string
	Shortening string
}

type Team struct {
	ID         int64
	Name       string
	Shortening string
}

type Department struct {
	ID         int64
	Name       string
	Shortening string
}

// =============================================================================
// USER
// =============================================================================

// User is a directory entry. ManagerID is a back-reference, not an ownership
// edge; cycles are a data-quality issue, not a structural error. Hidden marks
// soft-deleted users, which never appear in listings or filter results.
type User struct {
	ID           string
	DisplayName  string
	FirstName    string
	LastName     string
	Email        string
	TeamID       *int64
	DepartmentID *int64
	ManagerID    *string
	Hidden       bool
	Roles        []Role
}

// PrimaryRoleName is the sort key for role ordering: the first role's name,
// empty for users without roles.
func (u *User) PrimaryRoleName() string {
	if len(u.Roles) == 0 {
		return ""
	}
	return u.Roles[0].Name
}

func (u *User) teamKey() string {
	if u.TeamID == nil {
		return ""
	}
	return strconv.FormatInt(*u.TeamID, 10)
}

func (u *User) departmentKey() string {
	if u.DepartmentID == nil {
		return ""
	}
	return strconv.FormatInt(*u.DepartmentID, 10)
}

// =============================================================================
// FILTER ITEMS
// =============================================================================

// Reserved identifiers for the synthetic "no value in this dimension" buckets.
const (
	NoneRoleID       = "#None-Role-Id"
	NoneDepartmentID = "#None-Department-Id"
	NoneTeamID       = "#None-Team-Id"
)

// FilterItem is one selectable bucket of a filter dimension. ID is either an
// entity identifier or one of the None sentinels.
type FilterItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// NewRoleFilter builds the role filter set from the reference list, everything
// selected, with the "No Roles" bucket appended. Admin and Manager are
// administrative roles, not schedulable ones, so callers usually exclude them
// from the input.
func NewRoleFilter(roles []Role) []FilterItem {
	items := make([]FilterItem, 0, len(roles)+1)
	for _, r := range roles {
		items = append(items, FilterItem{ID: r.ID, Name: r.Name + " - " + r.Shortening, Selected: true})
	}
	return append(items, FilterItem{ID: NoneRoleID, Name: "No Roles", Selected: true})
}

// NewDepartmentFilter builds the department filter set with the
// "No Departments" bucket appended.
func NewDepartmentFilter(departments []Department) []FilterItem {
	items := make([]FilterItem, 0, len(departments)+1)
	for _, d := range departments {
		items = append(items, FilterItem{ID: strconv.FormatInt(d.ID, 10), Name: d.Name + " - " + d.Shortening, Selected: true})
	}
	return append(items, FilterItem{ID: NoneDepartmentID, Name: "No Departments", Selected: true})
}

// NewTeamFilter builds the team filter set with the "No Teams" bucket appended.
func NewTeamFilter(teams []Team) []FilterItem {
	items := make([]FilterItem, 0, len(teams)+1)
	for _, t := range teams {
		items = append(items, FilterItem{ID: strconv.FormatInt(t.ID, 10), Name: t.Name + " - " + t.Shortening, Selected: true})
	}
	return append(items, FilterItem{ID: NoneTeamID, Name: "No Teams", Selected: true})
}
