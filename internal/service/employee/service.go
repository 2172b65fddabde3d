package employee

import (
	"context"

	"github.com/paywise-hr/payroll-backend-go/internal/domain/employee"
)

type EmployeeService interface {
	List(ctx context.Context) ([]employee.EmployeeResponse, error)
}

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return employee.ToResponses(employees), nil
}
