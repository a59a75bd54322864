package models

import (
	"encoding/json"
	"time"
)

// Request types

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

type CreateDashboardRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	SourceName  string `json:"source_name" validate:"required"`
}

// Nil fields are left untouched by the update.
type UpdateDashboardRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	SourceName  *string `json:"source_name,omitempty"`
}

type CreateSourceRequest struct {
	Name          string   `json:"name" validate:"required"`
	Route         string   `json:"route" validate:"required"`
	SubroutePaths []string `json:"subroute_paths"`
}

// SubroutePaths always replaces the full set, even when nil fields leave
// name and route untouched.
type UpdateSourceRequest struct {
	Name          *string  `json:"name,omitempty"`
	Route         *string  `json:"route,omitempty"`
	SubroutePaths []string `json:"subroute_paths"`
}

// Response types

type RegisterResponse struct {
	UserID int64  `json:"user_id"`
	Token  string `json:"token"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type CreateDashboardResponse struct {
	DashboardID int64 `json:"dashboard_id"`
}

type SourceWriteResponse struct {
	FailedSubroutes []SubrouteFailure `json:"failed_subroutes"`
}

type SubrouteFailure struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Domain types

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

// SourceKey identifies a source. Source names are unique per owner, not
// globally, so the owner id is part of the key everywhere a source is
// looked up or referenced.
type SourceKey struct {
	Name  string
	Owner int64
}

type Source struct {
	Name      string    `json:"name"`
	CreatedBy int64     `json:"created_by"`
	Route     string    `json:"route"`
	Subroutes []string  `json:"subroutes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (s Source) Key() SourceKey {
	return SourceKey{Name: s.Name, Owner: s.CreatedBy}
}

type Subroute struct {
	Path            string `json:"path"`
	SourceName      string `json:"source_name"`
	SourceCreatedBy int64  `json:"source_created_by"`
}

type Dashboard struct {
	ID            int64           `json:"id"`
	CreatedBy     int64           `json:"created_by"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	SourceName    string          `json:"source_name"`
	Configuration json.RawMessage `json:"configuration,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}
