package services

import (
	"context"
	"strings"
	"time"

	"Gin_postgres_redis_library_lending/models"
	"Gin_postgres_redis_library_lending/validation"
)

// EmployeeService covers registration and lookup of badge holders. Employee
// ids come from the HR side (e.g. "EMP001"); the badge barcode is the id and
// never changes.
type EmployeeService struct {
	employees EmployeeRepository
	loans     LoanRepository
}

func NewEmployeeService(employees EmployeeRepository, loans LoanRepository) *EmployeeService {
	return &EmployeeService{employees: employees, loans: loans}
}

func (s *EmployeeService) AddEmployee(ctx context.Context, id, name, email string) (*models.Employee, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if id == "" {
		return nil, &ValidationError{Field: "id", Reason: "required"}
	}
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	if !validation.ValidateEmail(email) {
		return nil, &ValidationError{Field: "email", Reason: "not a valid address"}
	}

	if existing, err := s.employees.FindByID(ctx, id); err != nil {
		return nil, &StorageError{Op: "find employee", Err: err}
	} else if existing != nil {
		return nil, &DuplicateError{Field: "employee id", Value: id}
	}
	if existing, err := s.employees.FindByEmail(ctx, email); err != nil {
		return nil, &StorageError{Op: "find employee by email", Err: err}
	} else if existing != nil {
		return nil, &DuplicateError{Field: "email", Value: email}
	}

	employee := &models.Employee{
		ID:           id,
		Name:         name,
		Email:        email,
		Barcode:      id,
		RegisteredAt: time.Now(),
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, &StorageError{Op: "create employee", Err: err}
	}
	return employee, nil
}

// UpdateEmployee edits name/email. ID, barcode and registration time are
// immutable.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id string, upd EmployeeUpdate) (*models.Employee, error) {
	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, &StorageError{Op: "find employee", Err: err}
	}
	if employee == nil {
		return nil, &EmployeeNotFoundError{EmployeeID: id}
	}

	if upd.Name != nil {
		n := strings.TrimSpace(*upd.Name)
		if n == "" {
			return nil, &ValidationError{Field: "name", Reason: "required"}
		}
		upd.Name = &n
	}
	if upd.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*upd.Email))
		if !validation.ValidateEmail(e) {
			return nil, &ValidationError{Field: "email", Reason: "not a valid address"}
		}
		if e != employee.Email {
			existing, err := s.employees.FindByEmail(ctx, e)
			if err != nil {
				return nil, &StorageError{Op: "find employee by email", Err: err}
			}
			if existing != nil && existing.ID != id {
				return nil, &DuplicateError{Field: "email", Value: e}
			}
		}
		upd.Email = &e
	}

	updated, err := s.employees.UpdateDetails(ctx, id, upd)
	if err != nil {
		return nil, &StorageError{Op: "update employee", Err: err}
	}
	return updated, nil
}

// DeleteEmployee removes an employee holding no active loans.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id string) error {
	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return &StorageError{Op: "find employee", Err: err}
	}
	if employee == nil {
		return &EmployeeNotFoundError{EmployeeID: id}
	}

	active, err := s.loans.FindActiveByEmployeeID(ctx, id)
	if err != nil {
		return &StorageError{Op: "count active loans", Err: err}
	}
	if len(active) > 0 {
		return &EmployeeHasLoansError{EmployeeID: id, Active: len(active)}
	}

	if err := s.employees.Delete(ctx, id); err != nil {
		return &StorageError{Op: "delete employee", Err: err}
	}
	return nil
}

func (s *EmployeeService) GetAllEmployees(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.employees.FindAll(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list employees", Err: err}
	}
	return employees, nil
}

func (s *EmployeeService) GetEmployeeByID(ctx context.Context, id string) (*models.Employee, error) {
	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, &StorageError{Op: "find employee", Err: err}
	}
	if employee == nil {
		return nil, &EmployeeNotFoundError{EmployeeID: id}
	}
	return employee, nil
}

func (s *EmployeeService) GetEmployeeByBarcode(ctx context.Context, barcode string) (*models.Employee, error) {
	barcode = strings.TrimSpace(barcode)
	employee, err := s.employees.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, &StorageError{Op: "find employee by barcode", Err: err}
	}
	if employee == nil {
		return nil, &EmployeeNotFoundError{Barcode: barcode}
	}
	return employee, nil
}
