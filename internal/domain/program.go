package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrProgramEmpty   = errors.New("program has no workout days to move")
	ErrNoTeamAssigned = errors.New("must assign a team before publishing")
)

// SetConfig is one group of identical sets within an exercise prescription,
// e.g. "3 sets of 5 reps at 75%". Reps is free text so rep ranges like
// "8-10" or "AMRAP" survive round-trips untouched. Percentage and
// FixedWeight are both optional; a config with neither is valid
// (bodyweight or unspecified work).
type SetConfig struct {
	Sets        int      `bson:"sets" json:"sets"`
	Reps        string   `bson:"reps" json:"reps"`
	Percentage  *float64 `bson:"percentage,omitempty" json:"percentage,omitempty"`
	FixedWeight *float64 `bson:"fixedWeight,omitempty" json:"fixedWeight,omitempty"`
}

// Summary renders a single config as e.g. "3x5 @ 75%" or "4x8-10 @ 185 lbs".
func (c SetConfig) Summary() string {
	base := fmt.Sprintf("%dx%s", c.Sets, c.Reps)
	switch {
	case c.FixedWeight != nil:
		return fmt.Sprintf("%s @ %g lbs", base, *c.FixedWeight)
	case c.Percentage != nil:
		return fmt.Sprintf("%s @ %g%%", base, *c.Percentage)
	default:
		return base
	}
}

// ExercisePrescription is one exercise entry within a WorkoutDay.
//
// SetConfigs is the single stored representation of the programming; the
// legacy scalar sets/reps/percentage/weight view is derived on read via
// TotalSets and FirstConfig and is never persisted, so it cannot drift.
//
// ExerciseID may be nil (or point at a since-deleted exercise); the
// denormalized ExerciseName is always present and is the matching key of
// last resort.
type ExercisePrescription struct {
	ExerciseID   *primitive.ObjectID `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"`
	ExerciseName string              `bson:"exerciseName" json:"exerciseName"`
	SetConfigs   []SetConfig         `bson:"setConfigs" json:"setConfigs"`
	Notes        string              `bson:"notes,omitempty" json:"notes,omitempty"`
	DemoURL      string              `bson:"demoUrl,omitempty" json:"demoUrl,omitempty"` // copied from Exercise at authoring time
	Order        int                 `bson:"order" json:"order"`
}

// Key returns the id-or-name matching key for this prescription.
func (p *ExercisePrescription) Key() ExerciseKey {
	return KeyFor(p.ExerciseID, p.ExerciseName)
}

// TotalSets is the sum of all config set counts.
func (p *ExercisePrescription) TotalSets() int {
	total := 0
	for _, c := range p.SetConfigs {
		total += c.Sets
	}
	return total
}

// FirstConfig returns the scalar-compatible projection of the prescription:
// the first set config, or a zero config when none exist. Read-only view
// for legacy consumers.
func (p *ExercisePrescription) FirstConfig() SetConfig {
	if len(p.SetConfigs) == 0 {
		return SetConfig{}
	}
	return p.SetConfigs[0]
}

// Summary renders the whole prescription, one clause per config:
// "3x5 @ 75%, 2x3 @ 85%".
func (p *ExercisePrescription) Summary() string {
	if len(p.SetConfigs) == 0 {
		return ""
	}
	parts := make([]string, len(p.SetConfigs))
	for i, c := range p.SetConfigs {
		parts[i] = c.Summary()
	}
	return strings.Join(parts, ", ")
}

// WorkoutDay is the set of prescriptions scheduled for one calendar date.
// Date is stored normalized to midnight UTC; DayOfWeek is a denormalized
// label recomputed whenever the date moves.
type WorkoutDay struct {
	Date      time.Time              `bson:"date" json:"date"`
	DayOfWeek string                 `bson:"dayOfWeek" json:"dayOfWeek"`
	Title     string                 `bson:"title,omitempty" json:"title,omitempty"`
	Exercises []ExercisePrescription `bson:"exercises" json:"exercises"`
}

// WorkoutProgram is a named, calendar-dated program owned by a coach or
// trainer and assigned to zero or more teams. Programs with no teams live
// in the owner's personal library.
type WorkoutProgram struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name          string               `bson:"name" json:"name"`
	OwnerID       primitive.ObjectID   `bson:"ownerId" json:"ownerId"`
	AssignedTeams []primitive.ObjectID `bson:"assignedTeams" json:"assignedTeams"`
	Workouts      []WorkoutDay         `bson:"workouts" json:"workouts"` // ordered by date
	StartDate     time.Time            `bson:"startDate" json:"startDate"`
	EndDate       time.Time            `bson:"endDate" json:"endDate"`
	IsPublished   bool                 `bson:"isPublished" json:"isPublished"`
	IsDraft       bool                 `bson:"isDraft" json:"isDraft"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// SetWorkoutDay adds or replaces the day for the given calendar date.
// The date is normalized before matching, so two calls with differing
// time-of-day components hit the same slot and the later payload wins.
// At most one WorkoutDay per calendar date holds under every path through
// this method.
func (p *WorkoutProgram) SetWorkoutDay(date time.Time, day WorkoutDay) {
	day.Date = CalendarDate(date)
	day.DayOfWeek = DayOfWeekLabel(day.Date)

	for i := range p.Workouts {
		if SameCalendarDay(p.Workouts[i].Date, day.Date) {
			p.Workouts[i] = day
			return
		}
	}
	p.Workouts = append(p.Workouts, day)
	sort.SliceStable(p.Workouts, func(i, j int) bool {
		return p.Workouts[i].Date.Before(p.Workouts[j].Date)
	})
}

// DayOn returns the workout day scheduled for the given date, or nil.
func (p *WorkoutProgram) DayOn(date time.Time) *WorkoutDay {
	for i := range p.Workouts {
		if SameCalendarDay(p.Workouts[i].Date, date) {
			return &p.Workouts[i]
		}
	}
	return nil
}

// CoversDate reports whether the program's date range includes the given
// calendar date (inclusive on both ends).
func (p *WorkoutProgram) CoversDate(date time.Time) bool {
	d := CalendarDate(date)
	return !d.Before(CalendarDate(p.StartDate)) && !d.After(CalendarDate(p.EndDate))
}

// Shift moves the whole program so its earliest workout day lands on
// newStartDate, preserving the spacing between days and recomputing each
// day-of-week label. StartDate is updated to newStartDate; EndDate is
// deliberately left untouched (callers needing a full-range shift adjust
// it themselves).
func (p *WorkoutProgram) Shift(newStartDate time.Time) error {
	if len(p.Workouts) == 0 {
		return ErrProgramEmpty
	}

	earliest := CalendarDate(p.Workouts[0].Date)
	for _, w := range p.Workouts[1:] {
		if d := CalendarDate(w.Date); d.Before(earliest) {
			earliest = d
		}
	}

	target := CalendarDate(newStartDate)
	diff := target.Sub(earliest)
	for i := range p.Workouts {
		p.Workouts[i].Date = CalendarDate(p.Workouts[i].Date).Add(diff)
		p.Workouts[i].DayOfWeek = DayOfWeekLabel(p.Workouts[i].Date)
	}
	p.StartDate = target
	return nil
}

// Publish marks the program visible to athletes on its assigned teams.
// Idempotent and reversible via Unpublish; fails when no team is assigned.
func (p *WorkoutProgram) Publish() error {
	if len(p.AssignedTeams) == 0 {
		return ErrNoTeamAssigned
	}
	p.IsPublished = true
	p.IsDraft = false
	return nil
}

// Unpublish returns the program to draft state.
func (p *WorkoutProgram) Unpublish() {
	p.IsPublished = false
	p.IsDraft = true
}

// AssignTeam adds the team with set semantics; returns false when the team
// was already assigned.
func (p *WorkoutProgram) AssignTeam(teamID primitive.ObjectID) bool {
	for _, id := range p.AssignedTeams {
		if id == teamID {
			return false
		}
	}
	p.AssignedTeams = append(p.AssignedTeams, teamID)
	return true
}

// UnassignTeam removes the team; returns false when it was not assigned.
func (p *WorkoutProgram) UnassignTeam(teamID primitive.ObjectID) bool {
	for i, id := range p.AssignedTeams {
		if id == teamID {
			p.AssignedTeams = append(p.AssignedTeams[:i], p.AssignedTeams[i+1:]...)
			return true
		}
	}
	return false
}
