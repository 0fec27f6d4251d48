package calc

import (
	"testing"
	"time"

	"strengthdesk/coach-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func dayWith(prescriptions ...domain.ExercisePrescription) domain.WorkoutDay {
	return domain.WorkoutDay{
		Date:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Exercises: prescriptions,
	}
}

func TestBuildLogEntry(t *testing.T) {
	p := domain.ExercisePrescription{
		ExerciseName: "Back Squat",
		SetConfigs: []domain.SetConfig{
			{Sets: 3, Reps: "5", Percentage: f64(70)},
			{Sets: 2, Reps: "3", FixedWeight: f64(315)},
		},
	}

	entry := BuildLogEntry(p)
	require.Len(t, entry.Sets, 5)

	assert.Equal(t, 1, entry.Sets[0].SetNumber)
	assert.Equal(t, "5", entry.Sets[0].PrescribedReps)
	assert.Equal(t, 70.0, *entry.Sets[0].PrescribedPercentage)
	assert.Nil(t, entry.Sets[0].PrescribedWeight)

	assert.Equal(t, 4, entry.Sets[3].SetNumber)
	assert.Equal(t, "3", entry.Sets[3].PrescribedReps)
	assert.Equal(t, 315.0, *entry.Sets[3].PrescribedWeight)
	assert.Nil(t, entry.Sets[3].PrescribedPercentage)

	for _, s := range entry.Sets {
		assert.False(t, s.IsCompleted())
	}
}

func TestMergeWithExistingLog(t *testing.T) {
	squat := domain.ExercisePrescription{
		ExerciseName: "Back Squat",
		SetConfigs:   []domain.SetConfig{{Sets: 3, Reps: "5", Percentage: f64(75)}},
	}

	t.Run("no existing log yields a fresh expansion", func(t *testing.T) {
		merged := MergeWithExistingLog(dayWith(squat), nil)
		require.Len(t, merged, 1)
		require.Len(t, merged[0].Sets, 3)
		assert.Zero(t, merged[0].SetsCompleted)
	})

	t.Run("completed values survive a prescription edit", func(t *testing.T) {
		existing := &domain.WorkoutLog{
			Exercises: []domain.ExerciseLog{{
				ExerciseName: "back squat", // case differs, still matches
				Notes:        "felt heavy",
				Sets: []domain.SetLog{
					{SetNumber: 1, PrescribedPercentage: f64(70), CompletedReps: intp(5), CompletedWeight: f64(210)},
					{SetNumber: 2, PrescribedPercentage: f64(70)},
					{SetNumber: 3, PrescribedPercentage: f64(70)},
				},
			}},
		}

		merged := MergeWithExistingLog(dayWith(squat), existing)
		require.Len(t, merged, 1)
		entry := merged[0]
		require.Len(t, entry.Sets, 3)

		// Prescribed fields re-stamped from the current prescription.
		assert.Equal(t, 75.0, *entry.Sets[0].PrescribedPercentage)
		// Completed values and notes carried over.
		assert.Equal(t, 5, *entry.Sets[0].CompletedReps)
		assert.Equal(t, 210.0, *entry.Sets[0].CompletedWeight)
		assert.Equal(t, "felt heavy", entry.Notes)
		assert.Equal(t, 1, entry.SetsCompleted)
	})

	t.Run("growing the prescription adds empty rows", func(t *testing.T) {
		grown := squat
		grown.SetConfigs = []domain.SetConfig{{Sets: 5, Reps: "5", Percentage: f64(75)}}
		existing := &domain.WorkoutLog{
			Exercises: []domain.ExerciseLog{{
				ExerciseName: "Back Squat",
				Sets: []domain.SetLog{
					{SetNumber: 1, CompletedReps: intp(5)},
					{SetNumber: 2, CompletedReps: intp(5)},
					{SetNumber: 3, CompletedReps: intp(5)},
				},
			}},
		}

		merged := MergeWithExistingLog(dayWith(grown), existing)
		require.Len(t, merged[0].Sets, 5)
		assert.Equal(t, 3, merged[0].SetsCompleted)
		assert.False(t, merged[0].Sets[3].IsCompleted())
		assert.False(t, merged[0].Sets[4].IsCompleted())
	})

	t.Run("shrinking the prescription keeps the extra logged rows", func(t *testing.T) {
		shrunk := squat
		shrunk.SetConfigs = []domain.SetConfig{{Sets: 2, Reps: "5", Percentage: f64(75)}}
		existing := &domain.WorkoutLog{
			Exercises: []domain.ExerciseLog{{
				ExerciseName: "Back Squat",
				Sets: []domain.SetLog{
					{SetNumber: 1, CompletedReps: intp(5)},
					{SetNumber: 2, CompletedReps: intp(5)},
					{SetNumber: 3, CompletedReps: intp(4), CompletedWeight: f64(225)},
				},
			}},
		}

		merged := MergeWithExistingLog(dayWith(shrunk), existing)
		require.Len(t, merged[0].Sets, 3)

		extra := merged[0].Sets[2]
		assert.Equal(t, 3, extra.SetNumber)
		assert.Equal(t, 4, *extra.CompletedReps)
		assert.Equal(t, 225.0, *extra.CompletedWeight)
		assert.Equal(t, 3, merged[0].SetsCompleted)
	})

	t.Run("merge is idempotent", func(t *testing.T) {
		existing := &domain.WorkoutLog{
			Exercises: []domain.ExerciseLog{{
				ExerciseName: "Back Squat",
				Sets: []domain.SetLog{
					{SetNumber: 1, PrescribedReps: "5", PrescribedPercentage: f64(75), CompletedReps: intp(5)},
					{SetNumber: 2, PrescribedReps: "5", PrescribedPercentage: f64(75)},
					{SetNumber: 3, PrescribedReps: "5", PrescribedPercentage: f64(75)},
				},
			}},
		}

		once := MergeWithExistingLog(dayWith(squat), existing)
		again := MergeWithExistingLog(dayWith(squat), &domain.WorkoutLog{Exercises: once})
		assert.Equal(t, once, again)
	})

	t.Run("unprescribed exercises are outside the merge", func(t *testing.T) {
		existing := &domain.WorkoutLog{
			Exercises: []domain.ExerciseLog{
				{ExerciseName: "Back Squat", Sets: []domain.SetLog{{SetNumber: 1, CompletedReps: intp(5)}}},
				{ExerciseName: "Barbell Curl", Sets: []domain.SetLog{{SetNumber: 1, CompletedReps: intp(12)}}},
			},
		}

		merged := MergeWithExistingLog(dayWith(squat), existing)
		require.Len(t, merged, 1)
		assert.Equal(t, "Back Squat", merged[0].ExerciseName)
	})
}
