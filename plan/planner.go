package plan

import "strings"

// maxHourlyChunk caps hourly plan chunks at one hour.
const maxHourlyChunk = 60

// maxActivityMinutes caps detailed activities at fifteen minutes.
const maxActivityMinutes = 15

// ReplanPolicy decides whether an observation should interrupt the current
// plan. The built-in policy is a deliberately coarse keyword gate, intended
// to be combined with an external decision service for nuanced cases.
type ReplanPolicy interface {
	ShouldReplan(planDescription, observation string) bool
}

// KeywordReplan triggers on disruption keywords in the observation.
type KeywordReplan struct{}

var replanKeywords = []string{
	"fire", "emergency", "urgent", "accident", "help",
	"injured", "closed", "cancelled", "broken", "storm",
}

// ShouldReplan implements ReplanPolicy.
func (KeywordReplan) ShouldReplan(_, observation string) bool {
	lower := strings.ToLower(observation)
	for _, kw := range replanKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Planner generates and refines daily plans. It holds no per-character
// state; one planner instance serves every character in a world.
type Planner struct {
	routines RoutineSource
	replan   ReplanPolicy
}

// PlannerOptions configures a Planner.
type PlannerOptions struct {
	// Routines resolves occupations to broad strokes. Defaults to
	// DefaultRoutines.
	Routines RoutineSource
	// Replan gates plan interruption. Defaults to KeywordReplan.
	Replan ReplanPolicy
}

// NewPlanner creates a Planner.
func NewPlanner(optFns ...func(o *PlannerOptions)) *Planner {
	opts := PlannerOptions{Routines: DefaultRoutines{}, Replan: KeywordReplan{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Planner{routines: opts.Routines, replan: opts.Replan}
}

// InitializeDailyPlan builds the day's schedule for an occupation: broad
// strokes from the routine source, each immediately decomposed into
// contiguous hourly chunks of at most sixty minutes. The hourly tier exactly
// tiles the broad tier: no gap, no overlap, equal summed durations.
func (p *Planner) InitializeDailyPlan(occupation Occupation, day int) *DailyPlan {
	broad := p.routines.Routine(occupation, day)
	dp := &DailyPlan{Day: day, Broad: broad}
	for _, b := range broad {
		dp.Hourly = append(dp.Hourly, decomposeToHourly(b)...)
	}
	return dp
}

// decomposeToHourly splits a broad stroke into <=60 minute chunks via a
// running cursor. Chunks inherit the parent's description and location.
func decomposeToHourly(b *Plan) []*Plan {
	var chunks []*Plan
	cursor := b.Start
	remaining := b.Duration
	for remaining > 0 {
		dur := remaining
		if dur > maxHourlyChunk {
			dur = maxHourlyChunk
		}
		chunk := NewPlan(b.Description, cursor, dur, b.Location)
		chunk.ParentID = b.ID
		chunks = append(chunks, chunk)
		cursor += dur
		remaining -= dur
	}
	return chunks
}

// activityTemplates maps description keywords to concrete activity lists
// used for hourly->detailed decomposition.
var activityTemplates = []struct {
	keyword    string
	activities []string
}{
	{"research", []string{"review notes", "read papers", "run an analysis", "write up findings"}},
	{"class", []string{"set up the room", "teach", "answer questions", "assign homework"}},
	{"customer", []string{"greet customers", "restock shelves", "ring up purchases", "tidy the displays"}},
	{"field", []string{"check the crops", "pull weeds", "water the rows", "haul equipment"}},
	{"studio", []string{"prepare materials", "work on the piece", "step back and assess", "clean brushes"}},
	{"breakfast", []string{"prepare food", "eat", "clean up"}},
	{"lunch", []string{"prepare food", "eat", "clean up"}},
	{"dinner", []string{"prepare food", "eat", "clean up"}},
	{"walk", []string{"walk", "greet passersby"}},
	{"sleep", []string{"get ready for bed", "sleep"}},
	{"routine", []string{"wash up", "get dressed", "tidy the room"}},
}

var genericActivities = []string{"get started", "focus on the task", "take a short break", "wrap up"}

// activitiesFor picks the first template whose keyword appears in the
// description, falling back to the generic list.
func activitiesFor(description string) []string {
	lower := strings.ToLower(description)
	for _, t := range activityTemplates {
		if strings.Contains(lower, t.keyword) {
			return t.activities
		}
	}
	return genericActivities
}

// DecomposeHourly expands one hourly plan into detailed activities of at
// most fifteen minutes, split as evenly as the cap allows, exactly tiling
// the hourly span. Idempotent per hourly plan; unknown ids are a no-op.
func (p *Planner) DecomposeHourly(dp *DailyPlan, hourlyID string) []*Plan {
	if dp == nil {
		return nil
	}
	hourly := dp.findHourly(hourlyID)
	if hourly == nil || dp.hourlyDecomposed(hourlyID) {
		return nil
	}
	activities := activitiesFor(hourly.Description)

	// Even split across n slots, n chosen so every slot fits the cap.
	n := (hourly.Duration + maxActivityMinutes - 1) / maxActivityMinutes
	if n < 1 {
		n = 1
	}
	base := hourly.Duration / n
	extra := hourly.Duration % n // first `extra` slots get one more minute

	var detailed []*Plan
	cursor := hourly.Start
	for i := 0; i < n; i++ {
		dur := base
		if i < extra {
			dur++
		}
		if dur == 0 {
			continue
		}
		d := NewPlan(activities[i%len(activities)], cursor, dur, hourly.Location)
		d.ParentID = hourly.ID
		detailed = append(detailed, d)
		cursor += dur
	}
	dp.Detailed = append(dp.Detailed, detailed...)
	return detailed
}

// CurrentPlan resolves the plan active at the given minute of day, scanning
// the detailed, then hourly, then broad tiers for the first half-open
// [start, end) interval containing it. The tiered scan stays correct across
// partial detailed decompositions: minutes not covered by a detailed plan
// fall through to their hourly chunk. Returns nil when no tier covers the
// minute.
func (p *Planner) CurrentPlan(dp *DailyPlan, minuteOfDay int) *Plan {
	if dp == nil {
		return nil
	}
	for _, tier := range [][]*Plan{dp.Detailed, dp.Hourly, dp.Broad} {
		for _, candidate := range tier {
			if candidate.Contains(minuteOfDay) {
				return candidate
			}
		}
	}
	return nil
}

// ShouldReplan applies the replan policy to an observation made while the
// plan is active. Nil plans never trigger a replan.
func (p *Planner) ShouldReplan(current *Plan, observation string) bool {
	if current == nil {
		return false
	}
	return p.replan.ShouldReplan(current.Description, observation)
}
