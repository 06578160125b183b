package user

import "time"

type Role string

const (
	RoleAdmin    Role = "Admin"    // Configures the office and reads every record
	RoleEmployee Role = "Employee" // Marks and reads their own attendance
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

type User struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	Role          Role
	Phone         *string
	Department    *string
	Designation   *string
	DateOfJoining *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
