package service

import (
	"context"
	"errors"
	"time"

	"strengthdesk/coach-app/internal/calc"
	"strengthdesk/coach-app/internal/domain"
	"strengthdesk/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrLogValidation = errors.New("workout log validation failed")
	ErrLogRange      = errors.New("invalid date range")
)

// LogView is the merged prescribed-vs-completed view for one date. The
// entries come out of the reconciler, so they reflect the current
// prescription re-stamped over whatever the athlete already logged.
type LogView struct {
	Date        time.Time            `json:"date"`
	ProgramID   *primitive.ObjectID  `json:"programId,omitempty"`
	Entries     []domain.ExerciseLog `json:"entries"`
	IsCompleted bool                 `json:"isCompleted"`
}

type LogService interface {
	// GetMergedLog reconciles the day's prescription (if any program
	// schedules one) with the athlete's persisted log for that date.
	GetMergedLog(ctx context.Context, athleteID primitive.ObjectID, date time.Time) (*LogView, error)
	// SaveLog upserts the log for (athlete, date), recomputing every
	// derived completion field.
	SaveLog(ctx context.Context, athleteID primitive.ObjectID, date time.Time, programID *primitive.ObjectID, entries []domain.ExerciseLog) (*domain.WorkoutLog, error)
	ListLogs(ctx context.Context, athleteID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutLog, error)
}

// logService implements the LogService interface.
type logService struct {
	logRepo     repository.WorkoutLogRepository
	programRepo repository.ProgramRepository
	userRepo    repository.UserRepository
}

// NewLogService creates a new instance of logService.
func NewLogService(logRepo repository.WorkoutLogRepository, programRepo repository.ProgramRepository, userRepo repository.UserRepository) LogService {
	return &logService{
		logRepo:     logRepo,
		programRepo: programRepo,
		userRepo:    userRepo,
	}
}

// GetMergedLog builds the day's loggable view. All I/O happens up front;
// the merge itself is pure.
func (s *logService) GetMergedLog(ctx context.Context, athleteID primitive.ObjectID, date time.Time) (*LogView, error) {
	athlete, err := s.userRepo.GetByID(ctx, athleteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}
	if !athlete.IsAthlete() {
		return nil, ErrNotAnAthlete
	}

	existing, err := s.logRepo.GetByAthleteAndDate(ctx, athleteID, date)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	day, programID := s.findPrescribedDay(ctx, athlete, date)

	view := &LogView{Date: domain.CalendarDate(date), ProgramID: programID}
	if existing != nil {
		view.IsCompleted = existing.IsCompleted
		if view.ProgramID == nil {
			view.ProgramID = existing.ProgramID
		}
	}

	switch {
	case day != nil:
		view.Entries = calc.MergeWithExistingLog(*day, existing)
	case existing != nil:
		// Nothing prescribed (program deleted or never existed): show the
		// log exactly as saved.
		view.Entries = existing.Exercises
	default:
		view.Entries = []domain.ExerciseLog{}
	}
	return view, nil
}

// findPrescribedDay locates the first published team program scheduling a
// day on the date. Athletes without a team simply have no prescription.
func (s *logService) findPrescribedDay(ctx context.Context, athlete *domain.User, date time.Time) (*domain.WorkoutDay, *primitive.ObjectID) {
	if athlete.TeamID == nil {
		return nil, nil
	}
	programs, err := s.programRepo.GetPublishedForTeamOnDate(ctx, *athlete.TeamID, date)
	if err != nil {
		return nil, nil
	}
	for i := range programs {
		if day := programs[i].DayOn(date); day != nil {
			return day, &programs[i].ID
		}
	}
	return nil, nil
}

// SaveLog upserts the athlete's log for a calendar date.
func (s *logService) SaveLog(ctx context.Context, athleteID primitive.ObjectID, date time.Time, programID *primitive.ObjectID, entries []domain.ExerciseLog) (*domain.WorkoutLog, error) {
	if athleteID == primitive.NilObjectID {
		return nil, ErrLogValidation
	}
	for _, e := range entries {
		if e.ExerciseName == "" {
			return nil, ErrLogValidation
		}
	}

	existing, err := s.logRepo.GetByAthleteAndDate(ctx, athleteID, date)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	log := &domain.WorkoutLog{
		AthleteID: athleteID,
		Date:      domain.CalendarDate(date),
		ProgramID: programID,
		Exercises: entries,
	}
	if existing != nil {
		log.ID = existing.ID
		log.CreatedAt = existing.CreatedAt
		log.IsCompleted = existing.IsCompleted
		log.CompletedAt = existing.CompletedAt
		if log.ProgramID == nil {
			log.ProgramID = existing.ProgramID
		}
	}

	log.Recalculate(time.Now().UTC())
	return s.logRepo.Upsert(ctx, log)
}

// ListLogs returns the athlete's logs within a calendar date range.
func (s *logService) ListLogs(ctx context.Context, athleteID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutLog, error) {
	if domain.CalendarDate(to).Before(domain.CalendarDate(from)) {
		return nil, ErrLogRange
	}
	return s.logRepo.GetByAthleteInRange(ctx, athleteID, from, to)
}
