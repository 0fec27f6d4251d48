package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SetLog is one loggable set row. The prescribed triple is copied from the
// prescription at save time for audit; the completed fields stay nil until
// the athlete fills them in.
type SetLog struct {
	SetNumber            int      `bson:"setNumber" json:"setNumber"`
	PrescribedReps       string   `bson:"prescribedReps,omitempty" json:"prescribedReps,omitempty"`
	PrescribedWeight     *float64 `bson:"prescribedWeight,omitempty" json:"prescribedWeight,omitempty"`
	PrescribedPercentage *float64 `bson:"prescribedPercentage,omitempty" json:"prescribedPercentage,omitempty"`
	CompletedReps        *int     `bson:"completedReps,omitempty" json:"completedReps,omitempty"`
	CompletedWeight      *float64 `bson:"completedWeight,omitempty" json:"completedWeight,omitempty"`
}

// IsCompleted reports whether the athlete has logged anything for this set.
// Either value alone counts: bodyweight reps carry no weight, and a
// weight-only entry still records effort.
func (s SetLog) IsCompleted() bool {
	return s.CompletedWeight != nil || s.CompletedReps != nil
}

// ExerciseLog groups the logged sets for one exercise on one day.
type ExerciseLog struct {
	ExerciseID    *primitive.ObjectID `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"`
	ExerciseName  string              `bson:"exerciseName" json:"exerciseName"`
	Sets          []SetLog            `bson:"sets" json:"sets"`
	Notes         string              `bson:"notes,omitempty" json:"notes,omitempty"`
	SetsCompleted int                 `bson:"setsCompleted" json:"setsCompleted"` // derived on save
}

// Key returns the id-or-name matching key for this log entry.
func (e *ExerciseLog) Key() ExerciseKey {
	return KeyFor(e.ExerciseID, e.ExerciseName)
}

// CountCompleted recounts the completed sets.
func (e *ExerciseLog) CountCompleted() int {
	n := 0
	for _, s := range e.Sets {
		if s.IsCompleted() {
			n++
		}
	}
	return n
}

// WorkoutLog is an athlete's record for one calendar date. Exactly one
// exists per (athlete, date); the storage layer enforces the unique key
// and saves are upserts, so concurrent saves for the same day collapse to
// one document.
type WorkoutLog struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	AthleteID   primitive.ObjectID  `bson:"athleteId" json:"athleteId"`
	Date        time.Time           `bson:"date" json:"date"` // normalized calendar date
	ProgramID   *primitive.ObjectID `bson:"programId,omitempty" json:"programId,omitempty"`
	Exercises   []ExerciseLog       `bson:"exercises" json:"exercises"`
	IsCompleted bool                `bson:"isCompleted" json:"isCompleted"`
	CompletedAt *time.Time          `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Recalculate refreshes every derived completion field. The log counts as
// completed only when every exercise has all of its sets filled in and
// there is at least one set overall; editing a completed log back to a
// blank value legitimately transitions it back to in-progress.
func (l *WorkoutLog) Recalculate(now time.Time) {
	totalSets := 0
	allDone := true
	for i := range l.Exercises {
		l.Exercises[i].SetsCompleted = l.Exercises[i].CountCompleted()
		totalSets += len(l.Exercises[i].Sets)
		if l.Exercises[i].SetsCompleted != len(l.Exercises[i].Sets) {
			allDone = false
		}
	}

	completed := allDone && totalSets > 0
	if completed && !l.IsCompleted {
		t := now
		l.CompletedAt = &t
	}
	if !completed {
		l.CompletedAt = nil
	}
	l.IsCompleted = completed
}
