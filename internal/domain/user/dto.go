package user

import "time"

// UserResponse represents user data in API responses
type UserResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Role          string  `json:"role"`
	Phone         *string `json:"phone,omitempty"`
	Department    *string `json:"department,omitempty"`
	Designation   *string `json:"designation,omitempty"`
	DateOfJoining *string `json:"dateOfJoining,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

func NewUserResponse(u User) UserResponse {
	resp := UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		Phone:       u.Phone,
		Department:  u.Department,
		Designation: u.Designation,
		CreatedAt:   u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   u.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if u.DateOfJoining != nil {
		d := u.DateOfJoining.Format("2006-01-02")
		resp.DateOfJoining = &d
	}
	return resp
}
