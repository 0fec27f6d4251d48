package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"strengthdesk/coach-app/internal/calc"
	"strengthdesk/coach-app/internal/domain"
	"strengthdesk/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrAthleteNotFound  = errors.New("athlete not found")
	ErrNotAnAthlete     = errors.New("user is not an athlete")
	ErrAthleteHasNoTeam = errors.New("athlete is not on a team")
	ErrStatValidation   = errors.New("stat entry requires a name, positive weight and positive reps")
	ErrMaxValidation    = errors.New("a max requires an exercise name and a positive value")
)

// TodayWorkout is the athlete-facing view of one program's day, weights
// already resolved against the athlete's maxes.
type TodayWorkout struct {
	ProgramID   primitive.ObjectID      `json:"programId"`
	ProgramName string                  `json:"programName"`
	Date        time.Time               `json:"date"`
	Title       string                  `json:"title,omitempty"`
	DayOfWeek   string                  `json:"dayOfWeek"`
	Exercises   []calc.ResolvedExercise `json:"exercises"`
}

type AthleteService interface {
	// GetTodayWorkouts finds the published programs covering the date for
	// the athlete's team and resolves each matching day's weights against
	// the athlete's maxes. Re-run per request; the result is never stored.
	GetTodayWorkouts(ctx context.Context, athleteID primitive.ObjectID, date time.Time) ([]TodayWorkout, error)

	// JoinTeam puts the athlete on a team, replacing any current
	// membership. Published programs for that team become visible to
	// the athlete immediately.
	JoinTeam(ctx context.Context, athleteID, teamID primitive.ObjectID) error

	GetMaxes(ctx context.Context, athleteID primitive.ObjectID) ([]domain.AthleteMax, error)
	// SetMax manually sets a one-rep max. Manual entry is authoritative
	// even when lower than the stored value.
	SetMax(ctx context.Context, athleteID primitive.ObjectID, exerciseID *primitive.ObjectID, exerciseName string, oneRepMax float64) ([]domain.AthleteMax, error)
	// LogStatEntry appends a raw lift to the athlete's history and raises
	// the stored max when the Brzycki estimate beats it.
	LogStatEntry(ctx context.Context, athleteID primitive.ObjectID, entry domain.AthleteStatEntry) ([]domain.AthleteMax, error)
	GetStatHistory(ctx context.Context, athleteID primitive.ObjectID) ([]domain.AthleteStatEntry, error)
}

// athleteService implements the AthleteService interface.
type athleteService struct {
	userRepo    repository.UserRepository
	programRepo repository.ProgramRepository
}

// NewAthleteService creates a new instance of athleteService.
func NewAthleteService(userRepo repository.UserRepository, programRepo repository.ProgramRepository) AthleteService {
	return &athleteService{
		userRepo:    userRepo,
		programRepo: programRepo,
	}
}

// GetTodayWorkouts resolves "what do I lift today" for one athlete.
func (s *athleteService) GetTodayWorkouts(ctx context.Context, athleteID primitive.ObjectID, date time.Time) ([]TodayWorkout, error) {
	athlete, err := s.getAthlete(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	if athlete.TeamID == nil {
		return nil, ErrAthleteHasNoTeam
	}

	programs, err := s.programRepo.GetPublishedForTeamOnDate(ctx, *athlete.TeamID, date)
	if err != nil {
		return nil, err
	}

	workouts := make([]TodayWorkout, 0, len(programs))
	for i := range programs {
		day := programs[i].DayOn(date)
		if day == nil {
			continue // program covers the date but schedules nothing on it
		}
		workouts = append(workouts, TodayWorkout{
			ProgramID:   programs[i].ID,
			ProgramName: programs[i].Name,
			Date:        day.Date,
			Title:       day.Title,
			DayOfWeek:   day.DayOfWeek,
			Exercises:   calc.ResolveDay(*day, athlete.Maxes),
		})
	}
	return workouts, nil
}

// JoinTeam writes the athlete's team membership.
func (s *athleteService) JoinTeam(ctx context.Context, athleteID, teamID primitive.ObjectID) error {
	if _, err := s.getAthlete(ctx, athleteID); err != nil {
		return err
	}
	return s.userRepo.SetTeam(ctx, athleteID, teamID)
}

// GetMaxes returns the athlete's one-rep-max table.
func (s *athleteService) GetMaxes(ctx context.Context, athleteID primitive.ObjectID) ([]domain.AthleteMax, error) {
	athlete, err := s.getAthlete(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	return athlete.Maxes, nil
}

// SetMax writes one row of the maxes table. One entry per distinct exercise
// name (case-insensitive); manual writes always win.
func (s *athleteService) SetMax(ctx context.Context, athleteID primitive.ObjectID, exerciseID *primitive.ObjectID, exerciseName string, oneRepMax float64) ([]domain.AthleteMax, error) {
	if strings.TrimSpace(exerciseName) == "" || oneRepMax <= 0 {
		return nil, ErrMaxValidation
	}

	athlete, err := s.getAthlete(ctx, athleteID)
	if err != nil {
		return nil, err
	}

	maxes := upsertMax(athlete.Maxes, exerciseID, exerciseName, oneRepMax, true)
	if err := s.userRepo.SetMaxes(ctx, athleteID, maxes); err != nil {
		return nil, err
	}
	return maxes, nil
}

// LogStatEntry appends a raw lift and recalculates the derived max.
func (s *athleteService) LogStatEntry(ctx context.Context, athleteID primitive.ObjectID, entry domain.AthleteStatEntry) ([]domain.AthleteMax, error) {
	if strings.TrimSpace(entry.VisibleName) == "" || entry.Weight <= 0 || entry.Reps <= 0 {
		return nil, ErrStatValidation
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}

	athlete, err := s.getAthlete(ctx, athleteID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.AppendStatEntry(ctx, athleteID, entry); err != nil {
		return nil, err
	}

	// Stat logging uses the Brzycki strategy; an estimate of 0 means "no
	// valid estimate" and never touches the table.
	estimate := calc.EstimateOneRepMaxBrzycki(entry.Weight, entry.Reps)
	if estimate <= 0 {
		return athlete.Maxes, nil
	}

	maxes := upsertMax(athlete.Maxes, entry.ExerciseID, entry.VisibleName, estimate, false)
	if err := s.userRepo.SetMaxes(ctx, athleteID, maxes); err != nil {
		return nil, err
	}
	return maxes, nil
}

// GetStatHistory returns the athlete's raw lift history.
func (s *athleteService) GetStatHistory(ctx context.Context, athleteID primitive.ObjectID) ([]domain.AthleteStatEntry, error) {
	athlete, err := s.getAthlete(ctx, athleteID)
	if err != nil {
		return nil, err
	}
	return athlete.StatEntries, nil
}

// upsertMax updates the table row for the exercise. The table holds one
// entry per distinct exercise name (case-insensitive), so rows are matched
// by name regardless of any stored id; an incoming id is adopted on update.
// With override set the new value always wins (manual entry); otherwise it
// only replaces a smaller stored value (derived estimate).
func upsertMax(maxes []domain.AthleteMax, exerciseID *primitive.ObjectID, exerciseName string, value float64, override bool) []domain.AthleteMax {
	name := strings.TrimSpace(exerciseName)
	now := time.Now().UTC()

	out := make([]domain.AthleteMax, len(maxes))
	copy(out, maxes)

	for i := range out {
		if !strings.EqualFold(strings.TrimSpace(out[i].ExerciseName), name) {
			continue
		}
		if override || value > out[i].OneRepMax {
			out[i].OneRepMax = value
			out[i].LastUpdated = now
			if exerciseID != nil {
				out[i].ExerciseID = exerciseID
			}
		}
		return out
	}

	return append(out, domain.AthleteMax{
		ExerciseID:   exerciseID,
		ExerciseName: name,
		OneRepMax:    value,
		LastUpdated:  now,
	})
}

// getAthlete loads a user and checks the athlete role.
func (s *athleteService) getAthlete(ctx context.Context, athleteID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, athleteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}
	if !user.IsAthlete() {
		return nil, ErrNotAnAthlete
	}
	return user, nil
}
