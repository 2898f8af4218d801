package rbac

import "testing"

func TestResolve_RoleSetsExact(t *testing.T) {
	// Every role must observe exactly its configured set: nothing extra
	// (no privilege leakage) and nothing missing (no false denial).
	for role, configured := range RolePermissions {
		members := []Member{{UserID: "u1", Role: role}}
		set := Resolve("u1", members)

		if len(set) != len(configured) {
			t.Errorf("role %s: resolved %d permissions, want %d", role, len(set), len(configured))
		}
		for _, p := range configured {
			if !set.Has(p) {
				t.Errorf("role %s: missing configured permission %s", role, p)
			}
		}
		for p := range set {
			found := false
			for _, c := range configured {
				if c == p {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("role %s: leaked permission %s outside configured set", role, p)
			}
		}
	}
}

func TestResolve_FailClosed(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		members []Member
	}{
		{
			name:    "not a member",
			userID:  "u1",
			members: []Member{{UserID: "u2", Role: RoleAdmin}},
		},
		{
			name:    "empty user id",
			userID:  "",
			members: []Member{{UserID: "", Role: RoleOwner}},
		},
		{
			name:    "nil members",
			userID:  "u1",
			members: nil,
		},
		{
			name:    "unknown role",
			userID:  "u1",
			members: []Member{{UserID: "u1", Role: Role("SUPERUSER")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := Resolve(tt.userID, tt.members)
			if len(set) != 0 {
				t.Errorf("Resolve() = %v, want empty set", set.Permissions())
			}
			for role, perms := range RolePermissions {
				for _, p := range perms {
					if set.Has(p) {
						t.Errorf("Has(%s) = true for %s role config, want false", p, role)
					}
				}
			}
		})
	}
}

func TestResolve_MemberLacksEditProject(t *testing.T) {
	members := []Member{{UserID: "u1", Role: RoleMember}}
	set := Resolve("u1", members)

	if set.Has(EditProject) {
		t.Error("Has(EDIT_PROJECT) = true for MEMBER role, want false")
	}
	if !set.Has(CreateTask) {
		t.Error("Has(CREATE_TASK) = false for MEMBER role, want true")
	}
}

func TestResolve_PicksCallersRecord(t *testing.T) {
	members := []Member{
		{UserID: "u2", Role: RoleOwner},
		{UserID: "u1", Role: RoleMember},
		{UserID: "u3", Role: RoleAdmin},
	}
	set := Resolve("u1", members)

	if set.Has(DeleteWorkspace) {
		t.Error("resolved against another member's role")
	}
	if !set.Has(ViewOnly) {
		t.Error("Has(VIEW_ONLY) = false, want true")
	}
}

func TestSet_Has(t *testing.T) {
	var empty Set
	if empty.Has(EditProject) {
		t.Error("nil set Has() = true, want false")
	}
}
