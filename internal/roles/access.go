package roles

import "strings"

// roleHierarchy is the total order used for "at least this privileged"
// checks: mentee < pending_mentor < mentor < admin.
var roleHierarchy = map[EffectiveRole]int{
	RoleMentee:        0,
	RolePendingMentor: 1,
	RoleMentor:        2,
	RoleAdmin:         3,
}

// HasRole reports whether effective satisfies required under the hierarchy.
// Unrecognized members on either side fail closed.
func HasRole(effective, required EffectiveRole) bool {
	have, ok := roleHierarchy[effective]
	if !ok {
		return false
	}
	want, ok := roleHierarchy[required]
	if !ok {
		return false
	}
	return have >= want
}

// publicPathPrefixes are accessible to any authenticated role.
var publicPathPrefixes = []string{
	"/dashboard",
	"/profile",
	"/settings",
}

// rolePathPrefixes maps each role to the path prefixes it may enter on top
// of the public set. A plain prefix match, not a routing grammar.
var rolePathPrefixes = map[EffectiveRole][]string{
	RoleMentee:        {"/mentee"},
	RolePendingMentor: {"/mentor/application"},
	RoleMentor:        {"/mentor"},
	RoleAdmin:         {"/admin", "/mentor", "/mentee"},
}

// IsPathAccessible reports whether a role may enter the given path. Roles
// outside the hierarchy (including RoleNone) can access nothing.
func IsPathAccessible(role EffectiveRole, path string) bool {
	if _, ok := roleHierarchy[role]; !ok {
		return false
	}

	for _, prefix := range publicPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	for _, prefix := range rolePathPrefixes[role] {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
