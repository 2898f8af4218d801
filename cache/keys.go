package cache

// Stable cache keys owned by the session core. Collaborators that need
// to invalidate the identity or a workspace entry must build keys
// through these helpers so the key shapes cannot drift.

// authUserKey is the single identity entry.
const authUserKey = "authUser"

// workspacePrefix scopes workspace entries by identifier.
const workspacePrefix = "workspace:"

// AuthUserKey returns the cache key for the identity fetch result.
func AuthUserKey() string {
	return authUserKey
}

// WorkspaceKey returns the cache key for the workspace fetch result
// with the given identifier.
func WorkspaceKey(workspaceID string) string {
	return workspacePrefix + workspaceID
}
