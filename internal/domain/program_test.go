package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func f64(v float64) *float64 { return &v }

func TestSetConfigSummary(t *testing.T) {
	assert.Equal(t, "3x5 @ 75%", SetConfig{Sets: 3, Reps: "5", Percentage: f64(75)}.Summary())
	assert.Equal(t, "4x8-10 @ 185 lbs", SetConfig{Sets: 4, Reps: "8-10", FixedWeight: f64(185)}.Summary())
	assert.Equal(t, "3xAMRAP", SetConfig{Sets: 3, Reps: "AMRAP"}.Summary())

	// Fixed weight wins when both are present.
	both := SetConfig{Sets: 2, Reps: "3", Percentage: f64(85), FixedWeight: f64(315)}
	assert.Equal(t, "2x3 @ 315 lbs", both.Summary())
}

func TestPrescriptionProjection(t *testing.T) {
	p := ExercisePrescription{
		ExerciseName: "Deadlift",
		SetConfigs: []SetConfig{
			{Sets: 3, Reps: "5", Percentage: f64(70)},
			{Sets: 2, Reps: "3", Percentage: f64(85)},
		},
	}

	assert.Equal(t, 5, p.TotalSets())
	assert.Equal(t, "3x5 @ 70%, 2x3 @ 85%", p.Summary())

	first := p.FirstConfig()
	assert.Equal(t, 3, first.Sets)
	assert.Equal(t, "5", first.Reps)

	empty := ExercisePrescription{ExerciseName: "Plank"}
	assert.Zero(t, empty.TotalSets())
	assert.Empty(t, empty.Summary())
	assert.Equal(t, SetConfig{}, empty.FirstConfig())
}

func TestSetWorkoutDay(t *testing.T) {
	program := &WorkoutProgram{}

	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	program.SetWorkoutDay(monday, WorkoutDay{Title: "Heavy Lower"})

	require.Len(t, program.Workouts, 1)
	assert.Equal(t, "Monday", program.Workouts[0].DayOfWeek)
	assert.Equal(t, monday, program.Workouts[0].Date)

	t.Run("same date with different time-of-day replaces", func(t *testing.T) {
		evening := time.Date(2026, 3, 2, 19, 30, 0, 0, time.UTC)
		program.SetWorkoutDay(evening, WorkoutDay{Title: "Rescheduled"})

		require.Len(t, program.Workouts, 1)
		assert.Equal(t, "Rescheduled", program.Workouts[0].Title)
		assert.Equal(t, monday, program.Workouts[0].Date)
	})

	t.Run("new dates keep the list date-ordered", func(t *testing.T) {
		program.SetWorkoutDay(monday.AddDate(0, 0, 4), WorkoutDay{Title: "Friday"})
		program.SetWorkoutDay(monday.AddDate(0, 0, 2), WorkoutDay{Title: "Wednesday"})

		require.Len(t, program.Workouts, 3)
		assert.Equal(t, "Rescheduled", program.Workouts[0].Title)
		assert.Equal(t, "Wednesday", program.Workouts[1].Title)
		assert.Equal(t, "Friday", program.Workouts[2].Title)
	})
}

func TestDayOnAndCoversDate(t *testing.T) {
	program := &WorkoutProgram{
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	program.SetWorkoutDay(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), WorkoutDay{Title: "Day 1"})

	afternoon := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	day := program.DayOn(afternoon)
	require.NotNil(t, day)
	assert.Equal(t, "Day 1", day.Title)

	assert.Nil(t, program.DayOn(time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)))

	assert.True(t, program.CoversDate(time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)))
	assert.True(t, program.CoversDate(program.EndDate))
	assert.False(t, program.CoversDate(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, program.CoversDate(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)))
}

func TestShift(t *testing.T) {
	t.Run("spacing and labels preserved", func(t *testing.T) {
		program := &WorkoutProgram{}
		program.SetWorkoutDay(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), WorkoutDay{Title: "A"})
		program.SetWorkoutDay(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), WorkoutDay{Title: "B"})
		program.EndDate = time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

		require.NoError(t, program.Shift(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))

		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), program.Workouts[0].Date)
		assert.Equal(t, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), program.Workouts[1].Date)
		assert.Equal(t, "Thursday", program.Workouts[0].DayOfWeek)
		assert.Equal(t, "Saturday", program.Workouts[1].DayOfWeek)

		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), program.StartDate)
		// EndDate is the caller's problem.
		assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), program.EndDate)
	})

	t.Run("empty program refuses to move", func(t *testing.T) {
		program := &WorkoutProgram{}
		err := program.Shift(time.Now())
		assert.ErrorIs(t, err, ErrProgramEmpty)
	})
}

func TestPublishLifecycle(t *testing.T) {
	program := &WorkoutProgram{IsDraft: true}

	assert.ErrorIs(t, program.Publish(), ErrNoTeamAssigned)
	assert.False(t, program.IsPublished)

	team := primitive.NewObjectID()
	assert.True(t, program.AssignTeam(team))
	assert.False(t, program.AssignTeam(team), "set semantics")

	require.NoError(t, program.Publish())
	assert.True(t, program.IsPublished)
	assert.False(t, program.IsDraft)

	// Publishing again is idempotent.
	require.NoError(t, program.Publish())

	program.Unpublish()
	assert.False(t, program.IsPublished)
	assert.True(t, program.IsDraft)

	assert.True(t, program.UnassignTeam(team))
	assert.False(t, program.UnassignTeam(team))
	assert.Empty(t, program.AssignedTeams)
}
