package employee

import (
	"time"

	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/geo-attendance-go/internal/pkg/validator"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

type CreateEmployeeRequest struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	Phone         *string `json:"phone,omitempty"`
	Department    *string `json:"department,omitempty"`
	Designation   *string `json:"designation,omitempty"`
	DateOfJoining *string `json:"dateOfJoining,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}

	auth.ValidateEmail(&errs, r.Email)
	auth.ValidatePassword(&errs, r.Password)

	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs.Add("phone", "phone must contain 7 to 15 digits")
	}
	if r.Department != nil && len(*r.Department) > 255 {
		errs.Add("department", "department must not exceed 255 characters")
	}
	if r.Designation != nil && len(*r.Designation) > 255 {
		errs.Add("designation", "designation must not exceed 255 characters")
	}
	if r.DateOfJoining != nil {
		if _, err := time.Parse("2006-01-02", *r.DateOfJoining); err != nil {
			errs.Add("dateOfJoining", "dateOfJoining must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

// ToUser assumes Validate has passed. The password hash is filled in by the service.
func (r *CreateEmployeeRequest) ToUser() user.User {
	u := user.User{
		Name:        r.Name,
		Email:       auth.NormalizeEmail(r.Email),
		Role:        user.RoleEmployee,
		Phone:       r.Phone,
		Department:  r.Department,
		Designation: r.Designation,
	}
	if r.DateOfJoining != nil {
		d, _ := time.Parse("2006-01-02", *r.DateOfJoining)
		u.DateOfJoining = &d
	}
	return u
}

type ListEmployeesRequest struct {
	Search string
	Page   string
	Limit  string
}

func (r *ListEmployeesRequest) Parse() (user.ListFilter, error) {
	var errs validator.ValidationErrors

	page, ok := validator.ParseOptionalInt(r.Page, 1)
	if !ok {
		errs.Add("page", "page must be an integer")
	}
	limit, ok := validator.ParseOptionalInt(r.Limit, DefaultListLimit)
	if !ok {
		errs.Add("limit", "limit must be an integer")
	}
	if len(r.Search) > 255 {
		errs.Add("search", "search must not exceed 255 characters")
	}
	if err := errs.Err(); err != nil {
		return user.ListFilter{}, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	} else if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return user.ListFilter{Search: r.Search, Page: page, Limit: limit}, nil
}

type ListEmployeesResponse struct {
	Employees []user.UserResponse
	Page      int
	Limit     int
	Total     int64
}
