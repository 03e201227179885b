/*
filter.go - Role/department/team filtering of the user list

SEMANTICS:
  Within a dimension, selected buckets are a union: a user passes the role
  dimension by holding at least one role matching any selected role bucket,
  or by holding no roles at all when the "No Roles" bucket is selected.
  Department and team apply the same logic to their optional foreign key,
  where nil and 0 both mean unassigned.

  Across dimensions, filtering narrows cumulatively: role first, then
  department over the role-matched subset, then team over that. The result is
  de-duplicated by user id, since a user can match a dimension through
  several selected buckets.

  Hidden users never pass any dimension.
*/
package roster

// FilterUsers narrows the user list through the three filter dimensions in
// sequence and de-duplicates the result. Order within the list follows the
// bucket order of each dimension; callers sort afterwards.
func FilterUsers(users []User, roleFilter, departmentFilter, teamFilter []FilterItem) []User {
	out := filterByRoles(users, roleFilter)
	out = filterByDepartments(out, departmentFilter)
	out = filterByTeams(out, teamFilter)
	return distinctUsers(out)
}

func filterByRoles(users []User, filter []FilterItem) []User {
	var out []User
	for _, item := range filter {
		if !item.Selected {
			continue
		}
		for i := range users {
			u := &users[i]
			if u.Hidden {
				continue
			}
			if item.ID == NoneRoleID {
				if len(u.Roles) == 0 {
					out = append(out, *u)
				}
				continue
			}
			if hasRole(u, item.ID) {
				out = append(out, *u)
			}
		}
	}
	return out
}

func filterByDepartments(users []User, filter []FilterItem) []User {
	var out []User
	for _, item := range filter {
		if !item.Selected {
			continue
		}
		for i := range users {
			u := &users[i]
			if u.Hidden {
				continue
			}
			if item.ID == NoneDepartmentID {
				if u.DepartmentID == nil || *u.DepartmentID == 0 {
					out = append(out, *u)
				}
				continue
			}
			if u.departmentKey() == item.ID {
				out = append(out, *u)
			}
		}
	}
	return out
}

func filterByTeams(users []User, filter []FilterItem) []User {
	var out []User
	for _, item := range filter {
		if !item.Selected {
			continue
		}
		for i := range users {
			u := &users[i]
			if u.Hidden {
				continue
			}
			if item.ID == NoneTeamID {
				if u.TeamID == nil || *u.TeamID == 0 {
					out = append(out, *u)
				}
				continue
			}
			if u.teamKey() == item.ID {
				out = append(out, *u)
			}
		}
	}
	return out
}

func hasRole(u *User, roleID string) bool {
	for _, r := range u.Roles {
		if r.ID == roleID {
			return true
		}
	}
	return false
}

func distinctUsers(users []User) []User {
	seen := make(map[string]struct{}, len(users))
	out := make([]User, 0, len(users))
	for _, u := range users {
		if _, ok := seen[u.ID]; ok {
			continue
		}
		seen[u.ID] = struct{}{}
		out = append(out, u)
	}
	return out
}
