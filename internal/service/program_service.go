package service

import (
	"context"
	"errors"
	"time"

	"strengthdesk/coach-app/internal/domain"
	"strengthdesk/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrProgramNotFound     = errors.New("workout program not found")
	ErrProgramAccessDenied = errors.New("access denied: only the owner may modify this program")
	ErrProgramValidation   = errors.New("program validation failed")
	ErrProgramHasNoDays    = errors.New("cannot move a program with no workout days")
	ErrPublishNeedsTeam    = errors.New("must assign a team before publishing")
)

type ProgramService interface {
	CreateProgram(ctx context.Context, ownerID primitive.ObjectID, name string, startDate, endDate time.Time) (*domain.WorkoutProgram, error)
	GetProgram(ctx context.Context, programID primitive.ObjectID) (*domain.WorkoutProgram, error)
	ListPrograms(ctx context.Context, ownerID primitive.ObjectID) ([]domain.WorkoutProgram, error)
	UpdateProgramMeta(ctx context.Context, ownerID, programID primitive.ObjectID, name string, startDate, endDate time.Time) (*domain.WorkoutProgram, error)
	DeleteProgram(ctx context.Context, ownerID, programID primitive.ObjectID) error

	// SetWorkoutDay adds or replaces the day for the given calendar date
	// (time-of-day ignored), denormalizing each prescription's demo URL
	// from the catalog at authoring time.
	SetWorkoutDay(ctx context.Context, ownerID, programID primitive.ObjectID, date time.Time, day domain.WorkoutDay) (*domain.WorkoutProgram, error)
	MoveProgram(ctx context.Context, ownerID, programID primitive.ObjectID, newStartDate time.Time) (*domain.WorkoutProgram, error)
	Publish(ctx context.Context, ownerID, programID primitive.ObjectID) (*domain.WorkoutProgram, error)
	Unpublish(ctx context.Context, ownerID, programID primitive.ObjectID) (*domain.WorkoutProgram, error)
	AssignTeam(ctx context.Context, ownerID, programID, teamID primitive.ObjectID) (*domain.WorkoutProgram, error)
	UnassignTeam(ctx context.Context, ownerID, programID, teamID primitive.ObjectID) (*domain.WorkoutProgram, error)
}

// programService implements the ProgramService interface.
type programService struct {
	programRepo  repository.ProgramRepository
	exerciseRepo repository.ExerciseRepository
}

// NewProgramService creates a new instance of programService.
func NewProgramService(programRepo repository.ProgramRepository, exerciseRepo repository.ExerciseRepository) ProgramService {
	return &programService{
		programRepo:  programRepo,
		exerciseRepo: exerciseRepo,
	}
}

// CreateProgram creates a new program in draft state.
func (s *programService) CreateProgram(ctx context.Context, ownerID primitive.ObjectID, name string, startDate, endDate time.Time) (*domain.WorkoutProgram, error) {
	if name == "" {
		return nil, ErrProgramValidation
	}
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID is required to create a program")
	}
	start := domain.CalendarDate(startDate)
	end := domain.CalendarDate(endDate)
	if end.Before(start) {
		return nil, ErrProgramValidation
	}

	program := &domain.WorkoutProgram{
		Name:        name,
		OwnerID:     ownerID,
		StartDate:   start,
		EndDate:     end,
		IsPublished: false,
		IsDraft:     true,
	}

	programID, err := s.programRepo.Create(ctx, program)
	if err != nil {
		return nil, err
	}
	return s.programRepo.GetByID(ctx, programID)
}

// GetProgram retrieves a single program.
func (s *programService) GetProgram(ctx context.Context, programID primitive.ObjectID) (*domain.WorkoutProgram, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return program, nil
}

// ListPrograms retrieves the owner's whole library, drafts and unassigned
// programs included.
func (s *programService) ListPrograms(ctx context.Context, ownerID primitive.ObjectID) ([]domain.WorkoutProgram, error) {
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID cannot be nil")
	}
	return s.programRepo.GetByOwnerID(ctx, ownerID)
}

// UpdateProgramMeta renames a program and adjusts its date range.
func (s *programService) UpdateProgramMeta(ctx context.Context, ownerID, programID primitive.ObjectID, name string, startDate, endDate time.Time) (*domain.WorkoutProgram, error) {
	if name == "" {
		return nil, ErrProgramValidation
	}
	program, err := s.getOwnedProgram(ctx, ownerID, programID)
	if err != nil {
		return nil, err
	}

	program.Name = name
	program.StartDate = domain.CalendarDate(startDate)
	program.EndDate = domain.CalendarDate(endDate)

	if err := s.programRepo.Update(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

// DeleteProgram removes a program. Deletion is terminal: logs keep their
// programId and tolerate the dangling reference.
func (s *programService) DeleteProgram(ctx context.Context, ownerID, programID primitive.ObjectID) error {
	if _, err := s.getOwnedProgram(ctx, ownerID, programID); err != nil {
		return err
	}
	if err := s.programRepo.Delete(ctx, programID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProgramNotFound
		}
		return err
	}
	return nil
}

// SetWorkoutDay adds or replaces the day for the given calendar date.
func (s *programService) SetWorkoutDay(ctx context.Context, ownerID, programID primitive.ObjectID, date time.Time, day domain.WorkoutDay) (*domain.WorkoutProgram, error) {
	for _, p := range day.Exercises {
		if p.ExerciseName == "" {
			return nil, ErrProgramValidation
		}
		for _, cfg := range p.SetConfigs {
			if cfg.Sets <= 0 || cfg.Reps == "" {
				return nil, ErrProgramValidation
			}
			if cfg.Percentage != nil && (*cfg.Percentage < 0 || *cfg.Percentage > 120) {
				return nil, ErrProgramValidation
			}
		}
	}

	program, err := s.getOwnedProgram(ctx, ownerID, programID)
	if err != nil {
		return nil, err
	}

	s.denormalizeDemoURLs(ctx, day.Exercises)
	program.SetWorkoutDay(date, day)

	if err := s.programRepo.Update(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

// denormalizeDemoURLs copies each referenced exercise's demo URL onto the
// prescription at authoring time, so the day keeps rendering even if the
// exercise is later deleted. Missing exercises are tolerated.
func (s *programService) denormalizeDemoURLs(ctx context.Context, prescriptions []domain.ExercisePrescription) {
	for i := range prescriptions {
		if prescriptions[i].DemoURL != "" || prescriptions[i].ExerciseID == nil {
			continue
		}
		exercise, err := s.exerciseRepo.GetByID(ctx, *prescriptions[i].ExerciseID)
		if err != nil {
			continue
		}
		prescriptions[i].DemoURL = exercise.DemoURL
	}
}

// MoveProgram shifts every workout day so the earliest lands on
// newStartDate. EndDate is not adjusted, matching the calendar UI's
// "drag the program" behavior.
func (s *programService) MoveProgram(ctx context.Context, ownerID, programID primitive.ObjectID, newStartDate time.Time) (*domain.WorkoutProgram, error) {
	program, err := s.getOwnedProgram(ctx, ownerID, programID)
	if err != nil {
		return nil, err
	}

	if err := program.Shift(newStartDate); err != nil {
		if errors.Is(err, domain.ErrProgramEmpty) {
			return nil, ErrProgramHasNoDays
		}
		return nil, err
	}

	if err := s.programRepo.Update(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

// Publish makes the program visible to athletes on its assigned teams.
func (s *programService) Publish(ctx context.Context, ownerID, programID primitive.ObjectID) (*domain.WorkoutProgram, error) {
	program, err := s.getOwnedProgram(ctx, ownerID, programID)
	if err != nil {
		return nil, err
	}

	if err := program.Publish(); err != nil {
		if errors.Is(err, domain.ErrNoTeamAssigned) {
			return nil, ErrPublishNeedsTeam
		}
		return nil, err
	}

	if err := s.programRepo.Update(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

// Unpublish returns the program to draft state.
func (s *programService) Unpublish(ctx context.Context, ownerID, programID primitive.ObjectID) (*domain.WorkoutProgram, error) {
	program, err := s.getOwnedProgram(ctx, ownerID, programID)
	if err != nil {
		return nil, err
	}

	program.Unpublish()
	if err := s.programRepo.Update(ctx, program); err != nil {
		return nil, err
	}
	return program, nil
}

// AssignTeam adds the team to the program (set semantics).
func (s *programService) AssignTeam(ctx context.Context, ownerID, programID, teamID primitive.ObjectID) (*domain.WorkoutProgram, error) {
	if teamID == primitive.NilObjectID {
		return nil, ErrProgramValidation
	}
	program, err := s.getOwnedProgram(ctx, ownerID, programID)
	if err != nil {
		return nil, err
	}

	if program.AssignTeam(teamID) {
		if err := s.programRepo.Update(ctx, program); err != nil {
			return nil, err
		}
	}
	return program, nil
}

// UnassignTeam removes the team from the program.
func (s *programService) UnassignTeam(ctx context.Context, ownerID, programID, teamID primitive.ObjectID) (*domain.WorkoutProgram, error) {
	program, err := s.getOwnedProgram(ctx, ownerID, programID)
	if err != nil {
		return nil, err
	}

	if program.UnassignTeam(teamID) {
		if err := s.programRepo.Update(ctx, program); err != nil {
			return nil, err
		}
	}
	return program, nil
}

// getOwnedProgram loads a program and enforces ownership.
func (s *programService) getOwnedProgram(ctx context.Context, ownerID, programID primitive.ObjectID) (*domain.WorkoutProgram, error) {
	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if program.OwnerID != ownerID {
		return nil, ErrProgramAccessDenied
	}
	return program, nil
}
