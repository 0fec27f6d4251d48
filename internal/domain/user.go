package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleCoach   Role = "coach"
	RoleTrainer Role = "trainer"
	RoleAthlete Role = "athlete"
)

// User represents a user in the system (a Coach, a Trainer or an Athlete).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// --- Athlete-specific ---
	// Team membership; nil for coaches/trainers and for athletes not yet
	// placed on a team.
	TeamID *primitive.ObjectID `bson:"teamId,omitempty" json:"teamId,omitempty"`

	// Per-exercise one-rep-max table, unique per exercise name
	// (case-insensitive). Embedded on the athlete document.
	Maxes []AthleteMax `bson:"maxes,omitempty" json:"maxes,omitempty"`

	// Append-only raw lift history used for display and for deriving Maxes.
	StatEntries []AthleteStatEntry `bson:"statEntries,omitempty" json:"statEntries,omitempty"`
}

// AthleteMax is one row of an athlete's one-rep-max table.
type AthleteMax struct {
	ExerciseID   *primitive.ObjectID `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"`
	ExerciseName string              `bson:"exerciseName" json:"exerciseName"` // source of truth for matching
	OneRepMax    float64             `bson:"oneRepMax" json:"oneRepMax"`
	LastUpdated  time.Time           `bson:"lastUpdated" json:"lastUpdated"`
}

// AthleteStatEntry is a single raw logged lift.
type AthleteStatEntry struct {
	VisibleName string              `bson:"visibleName" json:"visibleName"`
	Weight      float64             `bson:"weight" json:"weight"`
	Reps        int                 `bson:"reps" json:"reps"`
	Date        time.Time           `bson:"date" json:"date"`
	ExerciseID  *primitive.ObjectID `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"`
}

func (u *User) IsCoach() bool {
	return u.Role == RoleCoach
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsAthlete() bool {
	return u.Role == RoleAthlete
}

// CanProgram reports whether the user may author programs and catalog
// exercises (coaches and trainers, not athletes).
func (u *User) CanProgram() bool {
	return u.Role == RoleCoach || u.Role == RoleTrainer
}

// MaxFor returns the athlete's stored one-rep max for the given exercise key,
// or nil when the athlete has never recorded one.
func (u *User) MaxFor(key ExerciseKey) *AthleteMax {
	for i := range u.Maxes {
		if key.Matches(u.Maxes[i].ExerciseID, u.Maxes[i].ExerciseName) {
			return &u.Maxes[i]
		}
	}
	return nil
}
