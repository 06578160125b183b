package employee

import (
	"context"

	"github.com/cmlabs-hris/geo-attendance-go/internal/domain/user"
)

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (user.UserResponse, error)
	List(ctx context.Context, req ListEmployeesRequest) (ListEmployeesResponse, error)
}
