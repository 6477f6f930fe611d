package identity

import (
	"database/sql"
	"time"
)

// Presence is an identity's online status, maintained alongside the
// session lifecycle (login -> online, logout -> offline).
type Presence string

const (
	StatusOnline  Presence = "online"
	StatusOffline Presence = "offline"
	StatusAway    Presence = "away"
)

// Valid reports whether p is a known presence value.
func (p Presence) Valid() bool {
	switch p {
	case StatusOnline, StatusOffline, StatusAway:
		return true
	}
	return false
}

// Permission is a closed enumeration of capability names. Role membership
// is resolved against these constants, never against free-form strings.
type Permission string

const (
	PermManageUsers      Permission = "manage_users"
	PermManageTasks      Permission = "manage_tasks"
	PermManageJobs       Permission = "manage_jobs"
	PermReviewApplicants Permission = "review_applicants"
	PermViewReports      Permission = "view_reports"
)

// AllPermissions lists every known permission, in seed order.
func AllPermissions() []Permission {
	return []Permission{
		PermManageUsers,
		PermManageTasks,
		PermManageJobs,
		PermReviewApplicants,
		PermViewReports,
	}
}

// ParsePermission maps a stored capability name onto the closed enumeration.
func ParsePermission(s string) (Permission, bool) {
	p := Permission(s)
	switch p {
	case PermManageUsers, PermManageTasks, PermManageJobs, PermReviewApplicants, PermViewReports:
		return p, true
	}
	return "", false
}

// Role is a named bundle of permissions assigned to exactly one identity.
type Role struct {
	ID          int64        `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Permissions []Permission `json:"permissions" db:"-"`
}

// HasPermission reports whether the role grants the given permission.
func (r *Role) HasPermission(perm Permission) bool {
	for _, p := range r.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether the role grants at least one of perms.
func (r *Role) HasAnyPermission(perms ...Permission) bool {
	for _, p := range perms {
		if r.HasPermission(p) {
			return true
		}
	}
	return false
}

// Identity is an authenticated principal. SessionToken mirrors the
// currently issued credential; a NULL token means no live session, which is
// what makes server-side revocation possible even for signature-valid tokens.
type Identity struct {
	ID           int64          `json:"id" db:"id"`
	Name         string         `json:"name" db:"name"`
	Email        string         `json:"email" db:"email"`
	PasswordHash string         `json:"-" db:"password_hash"`
	Status       Presence       `json:"status" db:"status"`
	SessionToken sql.NullString `json:"-" db:"session_token"`
	RoleID       int64          `json:"role_id" db:"role_id"`
	Role         Role           `json:"role" db:"-"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}
