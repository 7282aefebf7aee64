package summary

import (
	"time"

	"github.com/spti-payroll/attendance-backend-go/internal/domain/shift"
)

// ConfigSnapshot is the shift catalog and work settings captured once per
// recompute call. Settings may change between runs, so nothing here is
// cached across invocations; resolver and aggregation functions are pure
// over a snapshot.
type ConfigSnapshot struct {
	Settings shift.WorkSettings
	Location *time.Location

	byID       map[string]*shift.Shift
	detectable []*shift.Shift // active, non-GENERAL, catalog order; first match wins
	general    *shift.Shift   // active GENERAL fallback, nil when absent
}

// NewConfigSnapshot builds a snapshot from the full catalog. The slice order
// decides detection priority among overlapping windows.
func NewConfigSnapshot(settings shift.WorkSettings, shifts []shift.Shift, loc *time.Location) *ConfigSnapshot {
	snap := &ConfigSnapshot{
		Settings: settings,
		Location: loc,
		byID:     make(map[string]*shift.Shift, len(shifts)),
	}
	for i := range shifts {
		s := &shifts[i]
		snap.byID[s.ID] = s
		if !s.IsActive {
			continue
		}
		if s.Type == shift.ShiftTypeGeneral {
			if snap.general == nil {
				snap.general = s
			}
			continue
		}
		snap.detectable = append(snap.detectable, s)
	}
	return snap
}

// ShiftByID looks up any shift in the catalog, active or not. An employee's
// assigned shift keeps governing their punches even after deactivation.
func (c *ConfigSnapshot) ShiftByID(id string) *shift.Shift {
	return c.byID[id]
}
