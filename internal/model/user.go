package model

import "strings"

// User represents an application user record as stored in the `users`
// table.  The booking engine never touches credentials; it only
// consumes the name, email and roles of an already-authenticated user.
//
// Fields:
//  ID           – opaque unique identifier (UUID).
//  Name         – display name used when addressing notifications.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Roles        – capabilities held by the user; any subset of
//                 {"user", "admin"}.  Stored comma-joined in the
//                 roles column.
type User struct {
	ID           string   // users.id
	Name         string   // users.name
	Email        string   // users.email
	PasswordHash string   // users.password_hash
	Roles        []string // users.roles (comma-joined)
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// JoinRoles serializes a role list for storage.
func JoinRoles(roles []string) string { return strings.Join(roles, ",") }

// SplitRoles parses a stored roles column back into a list.  Empty
// input yields an empty list, not a single empty role.
func SplitRoles(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			roles = append(roles, p)
		}
	}
	return roles
}

// Identity is the verified (id, name, email, roles) tuple extracted
// from an access token.  Handlers pass it to the booking engine; the
// engine trusts it as-is.
type Identity struct {
	ID    string
	Name  string
	Email string
	Roles []string
}
