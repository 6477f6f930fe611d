package identity

import "time"

// LoginRequest for email/password authentication.
type LoginRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	IPAddress string `json:"-"`
}

// LoginResponse successful login response.
type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserView  `json:"user"`
}

// UserView is the sanitized identity representation returned to callers.
// It never carries the password hash or the stored session token.
type UserView struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Status Presence `json:"status"`
	Role   RoleView `json:"role"`
}

// RoleView is the role as exposed on a user view.
type RoleView struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions,omitempty"`
}

// NewUserView builds the sanitized view from a resolved identity.
func NewUserView(id *Identity) UserView {
	return UserView{
		ID:     id.ID,
		Name:   id.Name,
		Email:  id.Email,
		Status: id.Status,
		Role: RoleView{
			ID:          id.Role.ID,
			Name:        id.Role.Name,
			Permissions: id.Role.Permissions,
		},
	}
}

// UpdateStatusRequest for explicit presence updates.
type UpdateStatusRequest struct {
	Status Presence `json:"status" binding:"required,oneof=online offline away"`
}

// UserSummary is the trimmed listing shape (no permissions flattened).
type UserSummary struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Status Presence `json:"status"`
	Role   RoleView `json:"role"`
}
