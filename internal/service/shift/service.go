package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/spti-payroll/attendance-backend-go/internal/domain/shift"
	"github.com/spti-payroll/attendance-backend-go/internal/pkg/validator"
)

// Service manages the shift catalog and the global work settings singleton.
// The engine never goes through this service; it reads the catalog fresh
// from the repositories on every recompute.
type Service struct {
	shiftRepo    shift.ShiftRepository
	settingsRepo shift.WorkSettingsRepository
	loc          *time.Location
}

func NewShiftService(shiftRepo shift.ShiftRepository, settingsRepo shift.WorkSettingsRepository, loc *time.Location) *Service {
	return &Service{
		shiftRepo:    shiftRepo,
		settingsRepo: settingsRepo,
		loc:          loc,
	}
}

func (s *Service) ListShifts(ctx context.Context, activeOnly bool) ([]shift.ShiftResponse, error) {
	var (
		shifts []shift.Shift
		err    error
	)
	if activeOnly {
		shifts, err = s.shiftRepo.ListActive(ctx)
	} else {
		shifts, err = s.shiftRepo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	resp := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		resp = append(resp, toShiftResponse(sh))
	}
	return resp, nil
}

func (s *Service) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	entity, err := shiftFromRequest(req)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	entity.IsActive = true

	created, err := s.shiftRepo.Create(ctx, entity)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return toShiftResponse(created), nil
}

func (s *Service) UpdateShift(ctx context.Context, id string, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	existing, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	entity, err := shiftFromRequest(req.CreateShiftRequest)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	entity.ID = existing.ID
	entity.IsActive = existing.IsActive
	if req.IsActive != nil {
		entity.IsActive = *req.IsActive
	}

	if err := s.shiftRepo.Update(ctx, entity); err != nil {
		return shift.ShiftResponse{}, err
	}

	updated, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return toShiftResponse(updated), nil
}

func (s *Service) DeleteShift(ctx context.Context, id string) error {
	if _, err := s.shiftRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.shiftRepo.Delete(ctx, id)
}

func (s *Service) GetWorkSettings(ctx context.Context) (shift.WorkSettingsResponse, error) {
	settings, err := s.settingsRepo.GetOrCreate(ctx)
	if err != nil {
		return shift.WorkSettingsResponse{}, fmt.Errorf("failed to load work settings: %w", err)
	}
	return toSettingsResponse(settings), nil
}

func (s *Service) UpdateWorkSettings(ctx context.Context, req shift.UpdateWorkSettingsRequest) (shift.WorkSettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.WorkSettingsResponse{}, err
	}

	lunchStart, _ := validator.ParseClockTime(req.LunchStartTime)
	lunchEnd, _ := validator.ParseClockTime(req.LunchEndTime)
	nightStart, _ := validator.ParseClockTime(req.NightStartTime)
	nightEnd, _ := validator.ParseClockTime(req.NightEndTime)

	updated, err := s.settingsRepo.Update(ctx, shift.WorkSettings{
		DefaultWorkingHours:   req.DefaultWorkingHours,
		LunchStartTime:        lunchStart,
		LunchEndTime:          lunchEnd,
		ExcludeLunchFromHours: req.ExcludeLunchFromHours,
		NightStartTime:        nightStart,
		NightEndTime:          nightEnd,
	})
	if err != nil {
		return shift.WorkSettingsResponse{}, fmt.Errorf("failed to update work settings: %w", err)
	}
	return toSettingsResponse(updated), nil
}

func shiftFromRequest(req shift.CreateShiftRequest) (shift.Shift, error) {
	start, err := validator.ParseClockTime(req.StartTime)
	if err != nil {
		return shift.Shift{}, err
	}
	end, err := validator.ParseClockTime(req.EndTime)
	if err != nil {
		return shift.Shift{}, err
	}

	entity := shift.Shift{
		Name:              req.Name,
		Type:              shift.ShiftType(req.Type),
		StartTime:         start,
		EndTime:           end,
		WorkingHours:      req.WorkingHours,
		NightAllowancePct: req.NightAllowancePct,
		ExcludeBreak:      true,
	}
	if req.ExcludeBreak != nil {
		entity.ExcludeBreak = *req.ExcludeBreak
	}
	if req.BreakStartTime != nil && req.BreakEndTime != nil {
		bs, err := validator.ParseClockTime(*req.BreakStartTime)
		if err != nil {
			return shift.Shift{}, err
		}
		be, err := validator.ParseClockTime(*req.BreakEndTime)
		if err != nil {
			return shift.Shift{}, err
		}
		entity.BreakStartTime = &bs
		entity.BreakEndTime = &be
	}
	return entity, nil
}

func toShiftResponse(sh shift.Shift) shift.ShiftResponse {
	resp := shift.ShiftResponse{
		ID:                sh.ID,
		Name:              sh.Name,
		Type:              string(sh.Type),
		StartTime:         sh.StartTime.Format("15:04:05"),
		EndTime:           sh.EndTime.Format("15:04:05"),
		WorkingHours:      sh.WorkingHours,
		ExcludeBreak:      sh.ExcludeBreak,
		NightAllowancePct: sh.NightAllowancePct,
		IsNightShift:      sh.IsNightShift(),
		IsActive:          sh.IsActive,
		CreatedAt:         sh.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         sh.UpdatedAt.Format(time.RFC3339),
	}
	if sh.BreakStartTime != nil {
		bs := sh.BreakStartTime.Format("15:04:05")
		resp.BreakStartTime = &bs
	}
	if sh.BreakEndTime != nil {
		be := sh.BreakEndTime.Format("15:04:05")
		resp.BreakEndTime = &be
	}
	return resp
}

func toSettingsResponse(settings shift.WorkSettings) shift.WorkSettingsResponse {
	return shift.WorkSettingsResponse{
		DefaultWorkingHours:   settings.DefaultWorkingHours,
		LunchStartTime:        settings.LunchStartTime.Format("15:04:05"),
		LunchEndTime:          settings.LunchEndTime.Format("15:04:05"),
		ExcludeLunchFromHours: settings.ExcludeLunchFromHours,
		NightStartTime:        settings.NightStartTime.Format("15:04:05"),
		NightEndTime:          settings.NightEndTime.Format("15:04:05"),
		UpdatedAt:             settings.UpdatedAt.Format(time.RFC3339),
	}
}
