/*
sort.go - Caller-selected ordering of the filtered user list

SORT KEYS:
  ""                display name ascending (default)
  name_desc         display name descending
  role, role_desc   primary role name
  department, department_desc   department id
  team, team_desc   team id

  Unknown keys fall back to the default. Sorting is stable and returns a new
  slice; the input is left untouched.
*/
package roster

import "sort"

type SortKey string

const (
	SortByName           SortKey = ""
	SortByNameDesc       SortKey = "name_desc"
	SortByRole           SortKey = "role"
	SortByRoleDesc       SortKey = "role_desc"
	SortByDepartment     SortKey = "department"
	SortByDepartmentDesc SortKey = "department_desc"
	SortByTeam           SortKey = "team"
	SortByTeamDesc       SortKey = "team_desc"
)

// SortUsers returns the users ordered by the given key.
func SortUsers(users []User, key SortKey) []User {
	out := make([]User, len(users))
	copy(out, users)

	var less func(a, b *User) bool
	switch key {
	case SortByNameDesc:
		less = func(a, b *User) bool { return a.DisplayName > b.DisplayName }
	case SortByRole:
		less = func(a, b *User) bool { return a.PrimaryRoleName() < b.PrimaryRoleName() }
	case SortByRoleDesc:
		less = func(a, b *User) bool { return a.PrimaryRoleName() > b.PrimaryRoleName() }
	case SortByDepartment:
		less = func(a, b *User) bool { return deref(a.DepartmentID) < deref(b.DepartmentID) }
	case SortByDepartmentDesc:
		less = func(a, b *User) bool { return deref(a.DepartmentID) > deref(b.DepartmentID) }
	case SortByTeam:
		less = func(a, b *User) bool { return deref(a.TeamID) < deref(b.TeamID) }
	case SortByTeamDesc:
		less = func(a, b *User) bool { return deref(a.TeamID) > deref(b.TeamID) }
	default:
		less = func(a, b *User) bool { return a.DisplayName < b.DisplayName }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(&out[i], &out[j]) })
	return out
}

func deref(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
