package shift

import "time"

type ShiftType string

const (
	ShiftTypeDay     ShiftType = "DAY"
	ShiftTypeNight   ShiftType = "NIGHT"
	ShiftTypeGeneral ShiftType = "GENERAL"
)

var ShiftTypeValues = []string{
	string(ShiftTypeDay),
	string(ShiftTypeNight),
	string(ShiftTypeGeneral),
}

// Shift is a configured nominal work schedule. All time-of-day fields carry
// only their clock component; the date part is ignored.
type Shift struct {
	ID                  string
	Name                string
	Type                ShiftType
	StartTime           time.Time
	EndTime             time.Time
	WorkingHours        float64
	BreakStartTime      *time.Time
	BreakEndTime        *time.Time
	ExcludeBreak        bool
	NightAllowancePct   float64
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsNightShift reports whether the shift wraps past midnight.
func (s *Shift) IsNightShift() bool {
	return clockSeconds(s.EndTime) < clockSeconds(s.StartTime)
}

// HasBreak reports whether the shift defines its own break window.
func (s *Shift) HasBreak() bool {
	return s.BreakStartTime != nil && s.BreakEndTime != nil
}

// WorkSettings is the global singleton configuration record. It is created
// lazily on first read.
type WorkSettings struct {
	DefaultWorkingHours   float64
	LunchStartTime        time.Time
	LunchEndTime          time.Time
	ExcludeLunchFromHours bool
	NightStartTime        time.Time
	NightEndTime          time.Time
	UpdatedAt             time.Time
}

func clockSeconds(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
