package shift

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spti-payroll/attendance-backend-go/internal/domain/shift"
)

type fakeShiftRepo struct {
	shifts []shift.Shift
}

func (f *fakeShiftRepo) Create(_ context.Context, s shift.Shift) (shift.Shift, error) {
	if s.ID == "" {
		s.ID = "shift-" + s.Name
	}
	f.shifts = append(f.shifts, s)
	return s, nil
}

func (f *fakeShiftRepo) GetByID(_ context.Context, id string) (shift.Shift, error) {
	for _, s := range f.shifts {
		if s.ID == id {
			return s, nil
		}
	}
	return shift.Shift{}, shift.ErrShiftNotFound
}

func (f *fakeShiftRepo) List(_ context.Context) ([]shift.Shift, error) {
	return append([]shift.Shift(nil), f.shifts...), nil
}

func (f *fakeShiftRepo) ListActive(_ context.Context) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range f.shifts {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeShiftRepo) Update(_ context.Context, s shift.Shift) error {
	for i := range f.shifts {
		if f.shifts[i].ID == s.ID {
			f.shifts[i] = s
			return nil
		}
	}
	return shift.ErrShiftNotFound
}

func (f *fakeShiftRepo) Delete(_ context.Context, id string) error {
	for i := range f.shifts {
		if f.shifts[i].ID == id {
			f.shifts = append(f.shifts[:i], f.shifts[i+1:]...)
			return nil
		}
	}
	return shift.ErrShiftNotFound
}

type fakeSettingsRepo struct {
	settings shift.WorkSettings
}

func (f *fakeSettingsRepo) GetOrCreate(_ context.Context) (shift.WorkSettings, error) {
	return f.settings, nil
}

func (f *fakeSettingsRepo) Update(_ context.Context, s shift.WorkSettings) (shift.WorkSettings, error) {
	f.settings = s
	return s, nil
}

func clock(h, m int) time.Time {
	return time.Date(0, 1, 1, h, m, 0, 0, time.UTC)
}

func newTestService() (*Service, *fakeShiftRepo) {
	repo := &fakeShiftRepo{shifts: []shift.Shift{
		{ID: "shift-day", Name: "Day", Type: shift.ShiftTypeDay,
			StartTime: clock(9, 0), EndTime: clock(17, 0), WorkingHours: 8, IsActive: true},
		{ID: "shift-old", Name: "Old Night", Type: shift.ShiftTypeNight,
			StartTime: clock(22, 0), EndTime: clock(6, 0), WorkingHours: 7, IsActive: false},
	}}
	settings := &fakeSettingsRepo{}
	return NewShiftService(repo, settings, time.UTC), repo
}

func TestListShifts_ActiveFilter(t *testing.T) {
	svc, _ := newTestService()

	all, err := svc.ListShifts(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.ListShifts(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "shift-day", active[0].ID)
	assert.True(t, active[0].IsActive)
}

func TestUpdateShift_PreservesActiveFlagWhenOmitted(t *testing.T) {
	svc, repo := newTestService()

	req := shift.UpdateShiftRequest{CreateShiftRequest: shift.CreateShiftRequest{
		Name:         "Old Night",
		Type:         string(shift.ShiftTypeNight),
		StartTime:    "21:00:00",
		EndTime:      "05:00:00",
		WorkingHours: 7,
	}}

	updated, err := svc.UpdateShift(context.Background(), "shift-old", req)

	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "21:00:00", updated.StartTime)

	stored, err := repo.GetByID(context.Background(), "shift-old")
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestUpdateShift_Reactivates(t *testing.T) {
	svc, _ := newTestService()

	active := true
	req := shift.UpdateShiftRequest{
		CreateShiftRequest: shift.CreateShiftRequest{
			Name:         "Old Night",
			Type:         string(shift.ShiftTypeNight),
			StartTime:    "22:00:00",
			EndTime:      "06:00:00",
			WorkingHours: 7,
		},
		IsActive: &active,
	}

	updated, err := svc.UpdateShift(context.Background(), "shift-old", req)

	require.NoError(t, err)
	assert.True(t, updated.IsActive)

	listed, err := svc.ListShifts(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestUpdateWorkSettings_RoundTrip(t *testing.T) {
	svc, _ := newTestService()

	resp, err := svc.UpdateWorkSettings(context.Background(), shift.UpdateWorkSettingsRequest{
		DefaultWorkingHours:   8,
		LunchStartTime:        "12:00:00",
		LunchEndTime:          "13:00:00",
		ExcludeLunchFromHours: true,
		NightStartTime:        "22:00:00",
		NightEndTime:          "06:00:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "12:00:00", resp.LunchStartTime)
	assert.Equal(t, "06:00:00", resp.NightEndTime)
	assert.True(t, resp.ExcludeLunchFromHours)

	settings, err := svc.GetWorkSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8.0, settings.DefaultWorkingHours)
}
