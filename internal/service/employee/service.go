package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/spti-payroll/attendance-backend-go/internal/domain/employee"
	"github.com/spti-payroll/attendance-backend-go/internal/domain/shift"
)

// Service manages the employee roster. Roster entries normally arrive via
// the device sync; this service covers the administrative corrections
// (custom working hours, explicit shift assignment).
type Service struct {
	employeeRepo employee.EmployeeRepository
	shiftRepo    shift.ShiftRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, shiftRepo shift.ShiftRepository) *Service {
	return &Service{
		employeeRepo: employeeRepo,
		shiftRepo:    shiftRepo,
	}
}

func (s *Service) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	resp := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		resp = append(resp, toResponse(emp))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(emp), nil
}

func (s *Service) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.checkShift(ctx, req.ShiftID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		Name:         req.Name,
		EmployeeCode: req.EmployeeCode,
		BiometricID:  req.BiometricID,
		WorkingHours: req.WorkingHours,
		ShiftID:      req.ShiftID,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(created), nil
}

func (s *Service) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := s.checkShift(ctx, req.ShiftID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing.Name = req.Name
	existing.EmployeeCode = req.EmployeeCode
	existing.BiometricID = req.BiometricID
	existing.WorkingHours = req.WorkingHours
	existing.ShiftID = req.ShiftID

	if err := s.employeeRepo.Update(ctx, existing); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(updated), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.employeeRepo.Delete(ctx, id)
}

func (s *Service) checkShift(ctx context.Context, shiftID *string) error {
	if shiftID == nil {
		return nil
	}
	_, err := s.shiftRepo.GetByID(ctx, *shiftID)
	return err
}

func toResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:           emp.ID,
		Name:         emp.Name,
		EmployeeCode: emp.EmployeeCode,
		BiometricID:  emp.BiometricID,
		WorkingHours: emp.WorkingHours,
		ShiftID:      emp.ShiftID,
		ShiftName:    emp.ShiftName,
		CreatedAt:    emp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    emp.UpdatedAt.Format(time.RFC3339),
	}
}
