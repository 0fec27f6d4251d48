package service

import (
	"context"
	"testing"
	"time"

	"strengthdesk/coach-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func f64(v float64) *float64 { return &v }

var (
	programStart = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	programEnd   = time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
)

func newProgramFixture(t *testing.T) (ProgramService, *fakeProgramRepo, *fakeExerciseRepo, primitive.ObjectID) {
	t.Helper()
	programRepo := newFakeProgramRepo()
	exerciseRepo := newFakeExerciseRepo()
	svc := NewProgramService(programRepo, exerciseRepo)
	return svc, programRepo, exerciseRepo, primitive.NewObjectID()
}

func TestCreateProgram(t *testing.T) {
	ctx := context.Background()
	svc, _, _, owner := newProgramFixture(t)

	t.Run("starts as an unpublished draft", func(t *testing.T) {
		created, err := svc.CreateProgram(ctx, owner, "Spring Block", programStart, programEnd)
		require.NoError(t, err)
		assert.True(t, created.IsDraft)
		assert.False(t, created.IsPublished)
		assert.Empty(t, created.AssignedTeams)
	})

	t.Run("normalizes the date range", func(t *testing.T) {
		created, err := svc.CreateProgram(ctx, owner, "Evening Block",
			programStart.Add(18*time.Hour), programEnd.Add(6*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, programStart, created.StartDate)
		assert.Equal(t, programEnd, created.EndDate)
	})

	t.Run("rejects an inverted range and empty names", func(t *testing.T) {
		_, err := svc.CreateProgram(ctx, owner, "Backwards", programEnd, programStart)
		assert.ErrorIs(t, err, ErrProgramValidation)

		_, err = svc.CreateProgram(ctx, owner, "", programStart, programEnd)
		assert.ErrorIs(t, err, ErrProgramValidation)
	})
}

func TestSetWorkoutDay(t *testing.T) {
	ctx := context.Background()
	svc, _, exerciseRepo, owner := newProgramFixture(t)

	program, err := svc.CreateProgram(ctx, owner, "Spring Block", programStart, programEnd)
	require.NoError(t, err)

	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	day := domain.WorkoutDay{
		Title: "Heavy Lower",
		Exercises: []domain.ExercisePrescription{{
			ExerciseName: "Back Squat",
			SetConfigs:   []domain.SetConfig{{Sets: 3, Reps: "5", Percentage: f64(75)}},
		}},
	}

	t.Run("adds a day", func(t *testing.T) {
		updated, err := svc.SetWorkoutDay(ctx, owner, program.ID, monday, day)
		require.NoError(t, err)
		require.Len(t, updated.Workouts, 1)
		assert.Equal(t, "Monday", updated.Workouts[0].DayOfWeek)
	})

	t.Run("same calendar date replaces", func(t *testing.T) {
		replacement := day
		replacement.Title = "Deload"
		updated, err := svc.SetWorkoutDay(ctx, owner, program.ID, monday.Add(20*time.Hour), replacement)
		require.NoError(t, err)
		require.Len(t, updated.Workouts, 1)
		assert.Equal(t, "Deload", updated.Workouts[0].Title)
	})

	t.Run("denormalizes the demo url from the catalog", func(t *testing.T) {
		ex := exerciseRepo.add(&domain.Exercise{
			OwnerID: &owner,
			Name:    "Safety Bar Squat",
			DemoURL: "https://youtu.be/abc123",
		})

		withRef := domain.WorkoutDay{Exercises: []domain.ExercisePrescription{{
			ExerciseID:   &ex.ID,
			ExerciseName: "Safety Bar Squat",
			SetConfigs:   []domain.SetConfig{{Sets: 3, Reps: "8"}},
		}}}

		updated, err := svc.SetWorkoutDay(ctx, owner, program.ID, monday.AddDate(0, 0, 2), withRef)
		require.NoError(t, err)
		assert.Equal(t, "https://youtu.be/abc123", updated.Workouts[1].Exercises[0].DemoURL)
	})

	t.Run("validation", func(t *testing.T) {
		for _, bad := range []domain.WorkoutDay{
			{Exercises: []domain.ExercisePrescription{{ExerciseName: ""}}},
			{Exercises: []domain.ExercisePrescription{{ExerciseName: "Squat", SetConfigs: []domain.SetConfig{{Sets: 0, Reps: "5"}}}}},
			{Exercises: []domain.ExercisePrescription{{ExerciseName: "Squat", SetConfigs: []domain.SetConfig{{Sets: 3, Reps: ""}}}}},
			{Exercises: []domain.ExercisePrescription{{ExerciseName: "Squat", SetConfigs: []domain.SetConfig{{Sets: 3, Reps: "5", Percentage: f64(130)}}}}},
		} {
			_, err := svc.SetWorkoutDay(ctx, owner, program.ID, monday, bad)
			assert.ErrorIs(t, err, ErrProgramValidation)
		}
	})

	t.Run("only the owner may author", func(t *testing.T) {
		_, err := svc.SetWorkoutDay(ctx, primitive.NewObjectID(), program.ID, monday, day)
		assert.ErrorIs(t, err, ErrProgramAccessDenied)
	})
}

func TestMoveProgram(t *testing.T) {
	ctx := context.Background()
	svc, _, _, owner := newProgramFixture(t)

	program, err := svc.CreateProgram(ctx, owner, "Spring Block", programStart, programEnd)
	require.NoError(t, err)

	t.Run("empty program cannot move", func(t *testing.T) {
		_, err := svc.MoveProgram(ctx, owner, program.ID, programStart.AddDate(0, 1, 0))
		assert.ErrorIs(t, err, ErrProgramHasNoDays)
	})

	t.Run("shifts days and start date", func(t *testing.T) {
		day := domain.WorkoutDay{Exercises: []domain.ExercisePrescription{{
			ExerciseName: "Back Squat",
			SetConfigs:   []domain.SetConfig{{Sets: 3, Reps: "5"}},
		}}}
		_, err := svc.SetWorkoutDay(ctx, owner, program.ID, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), day)
		require.NoError(t, err)
		_, err = svc.SetWorkoutDay(ctx, owner, program.ID, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), day)
		require.NoError(t, err)

		moved, err := svc.MoveProgram(ctx, owner, program.ID, time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		assert.Equal(t, time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC), moved.Workouts[0].Date)
		assert.Equal(t, time.Date(2026, 4, 8, 0, 0, 0, 0, time.UTC), moved.Workouts[1].Date)
		assert.Equal(t, time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC), moved.StartDate)
		assert.Equal(t, programEnd, moved.EndDate, "end date is left for the caller")
	})
}

func TestPublishFlow(t *testing.T) {
	ctx := context.Background()
	svc, _, _, owner := newProgramFixture(t)
	team := primitive.NewObjectID()

	program, err := svc.CreateProgram(ctx, owner, "Spring Block", programStart, programEnd)
	require.NoError(t, err)

	t.Run("publish without a team fails", func(t *testing.T) {
		_, err := svc.Publish(ctx, owner, program.ID)
		assert.ErrorIs(t, err, ErrPublishNeedsTeam)
	})

	t.Run("assign then publish", func(t *testing.T) {
		_, err := svc.AssignTeam(ctx, owner, program.ID, team)
		require.NoError(t, err)

		// Assigning twice keeps set semantics.
		assigned, err := svc.AssignTeam(ctx, owner, program.ID, team)
		require.NoError(t, err)
		assert.Len(t, assigned.AssignedTeams, 1)

		published, err := svc.Publish(ctx, owner, program.ID)
		require.NoError(t, err)
		assert.True(t, published.IsPublished)
		assert.False(t, published.IsDraft)
	})

	t.Run("unpublish returns to draft", func(t *testing.T) {
		unpublished, err := svc.Unpublish(ctx, owner, program.ID)
		require.NoError(t, err)
		assert.False(t, unpublished.IsPublished)
		assert.True(t, unpublished.IsDraft)
	})

	t.Run("unassign", func(t *testing.T) {
		unassigned, err := svc.UnassignTeam(ctx, owner, program.ID, team)
		require.NoError(t, err)
		assert.Empty(t, unassigned.AssignedTeams)
	})
}

func TestProgramOwnershipAndDeletion(t *testing.T) {
	ctx := context.Background()
	svc, _, _, owner := newProgramFixture(t)
	stranger := primitive.NewObjectID()

	program, err := svc.CreateProgram(ctx, owner, "Spring Block", programStart, programEnd)
	require.NoError(t, err)

	_, err = svc.UpdateProgramMeta(ctx, stranger, program.ID, "Hijacked", programStart, programEnd)
	assert.ErrorIs(t, err, ErrProgramAccessDenied)

	err = svc.DeleteProgram(ctx, stranger, program.ID)
	assert.ErrorIs(t, err, ErrProgramAccessDenied)

	require.NoError(t, svc.DeleteProgram(ctx, owner, program.ID))

	_, err = svc.GetProgram(ctx, program.ID)
	assert.ErrorIs(t, err, ErrProgramNotFound)
}
