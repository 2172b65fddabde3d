package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Actor identifies who performed a mutation. ID points into the admins or
// employees table depending on Type, so audit rows never carry an untyped
// user reference.
type Actor struct {
	Type Role
	ID   string
	Name string
}

type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
