package rbac

// Set is a resolved permission set.
type Set map[Permission]struct{}

// Has reports whether the permission is in the set.
func (s Set) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// Permissions returns the members of the set. Order is unspecified.
func (s Set) Permissions() []Permission {
	perms := make([]Permission, 0, len(s))
	for p := range s {
		perms = append(perms, p)
	}
	return perms
}

// Resolve maps a user and a workspace membership list to the permission
// set configured for the user's role.
//
// Resolution fails closed: an empty user ID, a user absent from the
// membership list, or a role with no configured permissions all resolve
// to the empty set. Resolve is deterministic and side-effect-free.
func Resolve(userID string, members []Member) Set {
	if userID == "" {
		return Set{}
	}

	for _, m := range members {
		if m.UserID != userID {
			continue
		}

		perms, ok := RolePermissions[m.Role]
		if !ok {
			return Set{}
		}

		set := make(Set, len(perms))
		for _, p := range perms {
			set[p] = struct{}{}
		}
		return set
	}

	// Not a member of this workspace.
	return Set{}
}
