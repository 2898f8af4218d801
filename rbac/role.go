package rbac

// Role is a named membership category within a workspace.
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Permission is an atomic named capability. Presence of a permission in
// a resolved set authorizes the corresponding action.
type Permission string

const (
	CreateWorkspace         Permission = "CREATE_WORKSPACE"
	DeleteWorkspace         Permission = "DELETE_WORKSPACE"
	EditWorkspace           Permission = "EDIT_WORKSPACE"
	ManageWorkspaceSettings Permission = "MANAGE_WORKSPACE_SETTINGS"

	AddMember        Permission = "ADD_MEMBER"
	ChangeMemberRole Permission = "CHANGE_MEMBER_ROLE"
	RemoveMember     Permission = "REMOVE_MEMBER"

	CreateProject Permission = "CREATE_PROJECT"
	EditProject   Permission = "EDIT_PROJECT"
	DeleteProject Permission = "DELETE_PROJECT"

	CreateTask Permission = "CREATE_TASK"
	EditTask   Permission = "EDIT_TASK"
	DeleteTask Permission = "DELETE_TASK"

	ViewOnly Permission = "VIEW_ONLY"
)

// RolePermissions is the static role-to-permission mapping. It is the
// single source of truth for what each role may do; nothing is derived
// from server payloads beyond identifying the caller's role.
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		CreateWorkspace,
		EditWorkspace,
		DeleteWorkspace,
		ManageWorkspaceSettings,
		AddMember,
		ChangeMemberRole,
		RemoveMember,
		CreateProject,
		EditProject,
		DeleteProject,
		CreateTask,
		EditTask,
		DeleteTask,
		ViewOnly,
	},
	RoleAdmin: {
		AddMember,
		CreateProject,
		EditProject,
		DeleteProject,
		CreateTask,
		EditTask,
		DeleteTask,
		ManageWorkspaceSettings,
		ViewOnly,
	},
	RoleMember: {
		ViewOnly,
		CreateTask,
		EditTask,
	},
}

// Member is one entry in a workspace's membership list.
type Member struct {
	// UserID is the identity the role is assigned to.
	UserID string

	// Role is the membership role within this workspace.
	Role Role
}
