package plan

import "strings"

// Occupation is a tagged enumeration of known occupations. Free-text
// occupation strings from templates are resolved exactly once at
// template-load time via ParseOccupation; everything downstream dispatches
// on the tag, never on string content.
type Occupation string

const (
	OccupationResearcher Occupation = "researcher"
	OccupationShopkeeper Occupation = "shopkeeper"
	OccupationFarmer     Occupation = "farmer"
	OccupationArtist     Occupation = "artist"
	OccupationTeacher    Occupation = "teacher"
	OccupationDoctor     Occupation = "doctor"
	OccupationGeneric    Occupation = "generic"
)

// ParseOccupation maps a free-text occupation to its tag. Matching is exact
// on the normalized string; anything unknown resolves to OccupationGeneric.
func ParseOccupation(s string) Occupation {
	switch Occupation(strings.ToLower(strings.TrimSpace(s))) {
	case OccupationResearcher:
		return OccupationResearcher
	case OccupationShopkeeper:
		return OccupationShopkeeper
	case OccupationFarmer:
		return OccupationFarmer
	case OccupationArtist:
		return OccupationArtist
	case OccupationTeacher:
		return OccupationTeacher
	case OccupationDoctor:
		return OccupationDoctor
	default:
		return OccupationGeneric
	}
}

// RoutineSource resolves an occupation to an ordered list of broad-stroke
// plans for a day. Injected into the Planner so template data or an external
// planning service can replace the built-in routines.
type RoutineSource interface {
	Routine(occupation Occupation, day int) []*Plan
}

// routineBlock is one contiguous span of a built-in routine.
type routineBlock struct {
	description string
	duration    int // minutes
	location    string
}

// buildRoutine turns blocks into contiguous pending plans starting at the
// given minute of day.
func buildRoutine(start int, blocks []routineBlock) []*Plan {
	plans := make([]*Plan, 0, len(blocks))
	cursor := start
	for _, b := range blocks {
		plans = append(plans, NewPlan(b.description, cursor, b.duration, b.location))
		cursor += b.duration
	}
	return plans
}

// DefaultRoutines is the built-in RoutineSource. Every routine yields
// between five and fifteen contiguous broad strokes.
type DefaultRoutines struct{}

// Routine implements RoutineSource.
func (DefaultRoutines) Routine(occupation Occupation, _ int) []*Plan {
	switch occupation {
	case OccupationResearcher:
		return buildRoutine(6*60+15, []routineBlock{
			{"Wake up", 15, "home"},
			{"Morning routine", 45, "home"},
			{"Breakfast", 30, "home"},
			{"Walk to work", 30, ""},
			{"Research", 210, "library"},
			{"Lunch", 60, "cafe"},
			{"Research and writing", 240, "library"},
			{"Walk home", 30, ""},
			{"Dinner", 60, "home"},
			{"Reading", 120, "home"},
			{"Prepare for bed", 30, "home"},
		})
	case OccupationShopkeeper:
		return buildRoutine(6*60, []routineBlock{
			{"Wake up and morning routine", 60, "home"},
			{"Breakfast", 30, "home"},
			{"Open the shop", 30, "shop"},
			{"Serve customers", 240, "shop"},
			{"Lunch behind the counter", 30, "shop"},
			{"Serve customers", 240, "shop"},
			{"Close the shop and tally", 60, "shop"},
			{"Dinner", 60, "home"},
			{"Relax", 120, "home"},
			{"Prepare for bed", 30, "home"},
		})
	case OccupationFarmer:
		return buildRoutine(5*60, []routineBlock{
			{"Wake up", 30, "home"},
			{"Tend the animals", 90, "barn"},
			{"Breakfast", 30, "home"},
			{"Work the fields", 240, "fields"},
			{"Lunch", 60, "home"},
			{"Work the fields", 180, "fields"},
			{"Evening chores", 90, "barn"},
			{"Dinner", 60, "home"},
			{"Rest", 90, "home"},
		})
	case OccupationArtist:
		return buildRoutine(8*60, []routineBlock{
			{"Wake up slowly", 60, "home"},
			{"Breakfast and coffee", 60, "home"},
			{"Studio work", 180, "studio"},
			{"Lunch", 60, "cafe"},
			{"Sketching outside", 120, ""},
			{"Studio work", 180, "studio"},
			{"Dinner", 60, "home"},
			{"Socialize", 120, ""},
		})
	case OccupationTeacher:
		return buildRoutine(6*60, []routineBlock{
			{"Wake up and morning routine", 60, "home"},
			{"Breakfast", 30, "home"},
			{"Walk to school", 30, ""},
			{"Morning classes", 180, "school"},
			{"Lunch with colleagues", 60, "school"},
			{"Afternoon classes", 150, "school"},
			{"Grade papers", 90, "school"},
			{"Walk home", 30, ""},
			{"Dinner", 60, "home"},
			{"Plan lessons", 90, "home"},
			{"Wind down", 60, "home"},
		})
	case OccupationDoctor:
		return buildRoutine(5*60+30, []routineBlock{
			{"Wake up", 30, "home"},
			{"Morning routine and breakfast", 60, "home"},
			{"Walk to the clinic", 30, ""},
			{"Morning appointments", 210, "clinic"},
			{"Lunch", 45, "clinic"},
			{"Afternoon appointments", 225, "clinic"},
			{"Paperwork", 60, "clinic"},
			{"Walk home", 30, ""},
			{"Dinner", 60, "home"},
			{"Relax", 90, "home"},
		})
	default:
		// Generic 8-block fallback for unknown occupations.
		return buildRoutine(7*60, []routineBlock{
			{"Wake up and morning routine", 60, "home"},
			{"Breakfast", 60, "home"},
			{"Morning activities", 240, ""},
			{"Lunch", 60, ""},
			{"Afternoon activities", 240, ""},
			{"Dinner", 60, "home"},
			{"Evening relaxation", 120, "home"},
			{"Prepare for bed", 60, "home"},
		})
	}
}
