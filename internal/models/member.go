package models

import "time"

// Role discriminates the three account types carried in the JWT payload.
type Role string

const (
	RoleMember    Role = "member"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// CanModerate reports whether the role may perform moderation operations.
func (r Role) CanModerate() bool {
	return r == RoleModerator || r == RoleAdmin
}

type Member struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"` // Never expose in JSON
	Role           Role       `json:"role"`
	IsActive       bool       `json:"is_active"` // false = suspended
	TOTPSecret     string     `json:"-"`
	TOTPEnabled    bool       `json:"totp_enabled"`
	TOTPVerifiedAt *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"-"`
}

type MemberDTO struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (m *Member) DTO() MemberDTO {
	return MemberDTO{
		ID:        m.ID,
		Username:  m.Username,
		Email:     m.Email,
		Role:      m.Role,
		IsActive:  m.IsActive,
		CreatedAt: ISOTime(m.CreatedAt),
		UpdatedAt: ISOTime(m.UpdatedAt),
	}
}

// SignupRequest represents the request body for signup
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code,omitempty"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token  string    `json:"token"`
	Member MemberDTO `json:"member"`
}

// CreateMemberRequest represents the admin request body for creating an account
type CreateMemberRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// UpdateMemberRequest represents the admin request body for updating an account
type UpdateMemberRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"` // Optional
	Role     Role   `json:"role"`
}
