package repository

import (
	"context"
	"time"

	"strengthdesk/coach-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// SetMaxes replaces the athlete's whole maxes table (last write wins).
	SetMaxes(ctx context.Context, athleteID primitive.ObjectID, maxes []domain.AthleteMax) error
	// AppendStatEntry appends one raw lift to the athlete's history.
	AppendStatEntry(ctx context.Context, athleteID primitive.ObjectID, entry domain.AthleteStatEntry) error
	SetTeam(ctx context.Context, athleteID, teamID primitive.ObjectID) error
}

// ExerciseRepository defines the interface for interacting with custom
// exercise data. Built-in exercises never touch storage.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id primitive.ObjectID, ownerID primitive.ObjectID) error // owner enforced in the filter
}

// ProgramRepository defines the interface for interacting with workout
// program documents (days, prescriptions and set configs are embedded).
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.WorkoutProgram) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutProgram, error)
	GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.WorkoutProgram, error)
	// GetPublishedForTeamOnDate returns the published programs assigned to
	// the team whose date range covers the given calendar date.
	GetPublishedForTeamOnDate(ctx context.Context, teamID primitive.ObjectID, date time.Time) ([]domain.WorkoutProgram, error)
	Update(ctx context.Context, program *domain.WorkoutProgram) error
	Delete(ctx context.Context, id primitive.ObjectID, ownerID primitive.ObjectID) error
}

// WorkoutLogRepository defines the interface for interacting with athlete
// workout logs, unique per (athlete, calendar date).
type WorkoutLogRepository interface {
	// Upsert atomically creates or replaces the log keyed on
	// (athleteId, date); two near-simultaneous saves resolve to one document.
	Upsert(ctx context.Context, log *domain.WorkoutLog) (*domain.WorkoutLog, error)
	GetByAthleteAndDate(ctx context.Context, athleteID primitive.ObjectID, date time.Time) (*domain.WorkoutLog, error)
	GetByAthleteInRange(ctx context.Context, athleteID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutLog, error)
}

// DemoUploadRepository defines the interface for demonstration video
// upload metadata.
type DemoUploadRepository interface {
	Create(ctx context.Context, upload *domain.DemoUpload) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DemoUpload, error)
	GetByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.DemoUpload, error)
}
