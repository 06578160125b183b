package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	userRepo user.UserRepository
}

func NewEmployeeService(userRepo user.UserRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{userRepo: userRepo}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := req.ToUser()
	newUser.PasswordHash = string(hash)

	created, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		return user.UserResponse{}, err
	}

	slog.Info("employee created", "user_id", created.ID, "department", created.Department)
	return user.NewUserResponse(created), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, req employee.ListEmployeesRequest) (employee.ListEmployeesResponse, error) {
	filter, err := req.Parse()
	if err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeesResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	resp := employee.ListEmployeesResponse{
		Employees: make([]user.UserResponse, 0, len(users)),
		Page:      filter.Page,
		Limit:     filter.Limit,
		Total:     total,
	}
	for _, u := range users {
		resp.Employees = append(resp.Employees, user.NewUserResponse(u))
	}
	return resp, nil
}
