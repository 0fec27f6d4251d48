package calc

import (
	"strengthdesk/coach-app/internal/domain"
)

// ResolvedSet is one concrete, loggable set row with its target weight
// worked out for a particular athlete.
type ResolvedSet struct {
	SetNumber    int      `json:"setNumber"`
	Reps         string   `json:"reps"`
	Percentage   *float64 `json:"percentage,omitempty"`
	TargetWeight *float64 `json:"targetWeight,omitempty"`
	DisplayText  string   `json:"displayText,omitempty"`
}

// ResolvedExercise is the per-athlete view of one prescription.
// HasOneRepMax lets callers render a "set your max" prompt distinctly from
// a bodyweight exercise that never needed one.
type ResolvedExercise struct {
	ExerciseName string        `json:"exerciseName"`
	Notes        string        `json:"notes,omitempty"`
	DemoURL      string        `json:"demoUrl,omitempty"`
	HasOneRepMax bool          `json:"hasOneRepMax"`
	OneRepMax    *float64      `json:"oneRepMax,omitempty"`
	Sets         []ResolvedSet `json:"sets"`
}

// ResolveExercise computes the concrete target weight for every expanded
// set row of a prescription, given the athlete's current maxes table.
// Fixed weight wins over a percentage-derived weight; a percentage with no
// known max resolves to no weight at all (percentage shown raw).
//
// The result is derived state, recomputed per athlete per request and never
// persisted: the same WorkoutDay is shared by every athlete on the team and
// resolves differently against each maxes table.
func ResolveExercise(p domain.ExercisePrescription, maxes []domain.AthleteMax) ResolvedExercise {
	key := p.Key()

	var oneRepMax *float64
	for i := range maxes {
		if key.Matches(maxes[i].ExerciseID, maxes[i].ExerciseName) {
			oneRepMax = &maxes[i].OneRepMax
			break
		}
	}

	resolved := ResolvedExercise{
		ExerciseName: p.ExerciseName,
		Notes:        p.Notes,
		DemoURL:      p.DemoURL,
		HasOneRepMax: oneRepMax != nil,
		OneRepMax:    oneRepMax,
		Sets:         make([]ResolvedSet, 0, p.TotalSets()),
	}

	setNumber := 0
	for _, cfg := range p.SetConfigs {
		for i := 0; i < cfg.Sets; i++ {
			setNumber++
			row := ResolvedSet{
				SetNumber:  setNumber,
				Reps:       cfg.Reps,
				Percentage: cfg.Percentage,
			}
			switch {
			case cfg.FixedWeight != nil:
				row.TargetWeight = cfg.FixedWeight
			case cfg.Percentage != nil:
				dw := ResolveDisplayWeight(oneRepMax, *cfg.Percentage)
				row.TargetWeight = dw.CalculatedWeight
				row.DisplayText = dw.DisplayText
			}
			resolved.Sets = append(resolved.Sets, row)
		}
	}
	return resolved
}

// ResolveDay resolves every prescription on a workout day for one athlete.
func ResolveDay(day domain.WorkoutDay, maxes []domain.AthleteMax) []ResolvedExercise {
	out := make([]ResolvedExercise, len(day.Exercises))
	for i, p := range day.Exercises {
		out[i] = ResolveExercise(p, maxes)
	}
	return out
}
