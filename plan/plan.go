package plan

import "github.com/google/uuid"

// Status tracks a plan's lifecycle.
type Status string

const (
	StatusPending Status = "pending"
	StatusActive  Status = "active"
	StatusDone    Status = "done"
)

// MinutesPerDay is the span a daily plan may cover.
const MinutesPerDay = 24 * 60

// Plan is one schedule entry at any granularity. Start is the minute of day
// of the half-open interval [Start, Start+Duration). ParentID links hourly
// plans to their broad stroke and detailed plans to their hourly chunk.
type Plan struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Start       int    `json:"start"`    // minute of day
	Duration    int    `json:"duration"` // minutes
	Location    string `json:"location,omitempty"`
	Status      Status `json:"status"`
	ParentID    string `json:"parent_id,omitempty"`
}

// End returns the exclusive end minute of the plan's interval.
func (p *Plan) End() int { return p.Start + p.Duration }

// Contains reports whether the minute of day falls inside [Start, End).
func (p *Plan) Contains(minuteOfDay int) bool {
	return minuteOfDay >= p.Start && minuteOfDay < p.End()
}

// NewPlan creates a pending plan with a fresh id.
func NewPlan(description string, start, duration int, location string) *Plan {
	return &Plan{
		ID:          uuid.NewString(),
		Description: description,
		Start:       start,
		Duration:    duration,
		Location:    location,
		Status:      StatusPending,
	}
}

// Clone returns a copy of the plan.
func (p *Plan) Clone() *Plan {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

// DailyPlan holds one day's schedule at three decreasing granularities.
// Invariants: Hourly exactly tiles the span covered by Broad (no gap, no
// overlap); Detailed, where generated, exactly tiles its parent hourly plan.
type DailyPlan struct {
	Day      int     `json:"day"`
	Broad    []*Plan `json:"broad"`
	Hourly   []*Plan `json:"hourly"`
	Detailed []*Plan `json:"detailed,omitempty"`
}

// Clone returns a deep copy of the daily plan. Decomposing or editing one
// copy never shows through the other.
func (dp *DailyPlan) Clone() *DailyPlan {
	if dp == nil {
		return nil
	}
	return &DailyPlan{
		Day:      dp.Day,
		Broad:    clonePlans(dp.Broad),
		Hourly:   clonePlans(dp.Hourly),
		Detailed: clonePlans(dp.Detailed),
	}
}

func clonePlans(plans []*Plan) []*Plan {
	if plans == nil {
		return nil
	}
	out := make([]*Plan, len(plans))
	for i, p := range plans {
		out[i] = p.Clone()
	}
	return out
}

// hourlyDecomposed reports whether detailed plans already exist for the
// given hourly plan.
func (dp *DailyPlan) hourlyDecomposed(hourlyID string) bool {
	for _, d := range dp.Detailed {
		if d.ParentID == hourlyID {
			return true
		}
	}
	return false
}

// findHourly returns the hourly plan with the given id, or nil.
func (dp *DailyPlan) findHourly(hourlyID string) *Plan {
	for _, h := range dp.Hourly {
		if h.ID == hourlyID {
			return h
		}
	}
	return nil
}
