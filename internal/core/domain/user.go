package domain

import "time"

const (
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

// User models an authenticated actor in the system. The role is fixed at
// signup: invite-based signups always produce employees, HR accounts are
// provisioned out of band.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
