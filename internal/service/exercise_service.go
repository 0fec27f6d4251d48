package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"strengthdesk/coach-app/internal/domain"
	"strengthdesk/coach-app/internal/repository"
	"strengthdesk/coach-app/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrExerciseAccessDenied = errors.New("access denied: only the creator may modify or delete this exercise")
	ErrGlobalImmutable      = errors.New("built-in exercises cannot be modified or deleted")
	ErrExerciseValidation   = errors.New("exercise validation failed")
	ErrInvalidDemoURL       = errors.New("demonstration URL must be a YouTube video link")
)

// videoURLPattern accepts youtube.com/watch?v= and youtu.be/ links.
// Validation is by pattern only; nobody checks reachability.
var videoURLPattern = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com/watch\?v=[\w-]+|youtu\.be/[\w-]+)`)

type ExerciseService interface {
	// ListVisibleExercises merges the requester's custom exercises with the
	// built-in catalog (built-ins win on name collision).
	ListVisibleExercises(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Exercise, error)
	GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	CreateExercise(ctx context.Context, ownerID primitive.ObjectID, name string, category domain.ExerciseCategory, demoURL, description string, sports []string) (*domain.Exercise, error)
	UpdateExercise(ctx context.Context, requesterID, exerciseID primitive.ObjectID, name string, category domain.ExerciseCategory, demoURL, description string, sports []string) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, requesterID, exerciseID primitive.ObjectID) error

	// Demonstration video upload flow (S3 presigned).
	RequestDemoUpload(ctx context.Context, requesterID, exerciseID primitive.ObjectID, fileName, contentType string) (uploadURL, objectKey string, err error)
	ConfirmDemoUpload(ctx context.Context, requesterID, exerciseID primitive.ObjectID, objectKey, fileName, contentType string, size int64) (*domain.DemoUpload, error)
	GetDemoDownloadURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	uploadRepo   repository.DemoUploadRepository
	fileStorage  storage.FileStorage
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, uploadRepo repository.DemoUploadRepository, fileStorage storage.FileStorage) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		uploadRepo:   uploadRepo,
		fileStorage:  fileStorage,
	}
}

// ListVisibleExercises is a pure server-side query: the catalog merge is
// recomputed on every call, so there is no process-wide cache to go stale.
func (s *exerciseService) ListVisibleExercises(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Exercise, error) {
	custom, err := s.exerciseRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return domain.MergeExercises(custom), nil
}

// GetExerciseByID retrieves a single custom exercise.
func (s *exerciseService) GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// CreateExercise handles the creation of a new custom exercise by a coach
// or trainer. A name that collides with a built-in is allowed here; the
// catalog merge simply suppresses it, the built-in stays authoritative.
func (s *exerciseService) CreateExercise(ctx context.Context, ownerID primitive.ObjectID, name string, category domain.ExerciseCategory, demoURL, description string, sports []string) (*domain.Exercise, error) {
	if name == "" {
		return nil, ErrExerciseValidation
	}
	if !domain.ValidCategory(category) {
		return nil, ErrExerciseValidation
	}
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID is required to create an exercise")
	}
	if demoURL != "" && !videoURLPattern.MatchString(demoURL) {
		return nil, ErrInvalidDemoURL
	}
	if len(sports) == 0 {
		sports = []string{domain.SportAll}
	}

	exercise := &domain.Exercise{
		OwnerID:     &ownerID, // new exercises are never global
		Name:        name,
		Category:    category,
		DemoURL:     demoURL,
		Description: description,
		Sports:      sports,
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	return s.exerciseRepo.GetByID(ctx, exerciseID)
}

// UpdateExercise handles updating an existing exercise, ensuring ownership.
// Built-in exercises are immutable regardless of requester.
func (s *exerciseService) UpdateExercise(ctx context.Context, requesterID, exerciseID primitive.ObjectID, name string, category domain.ExerciseCategory, demoURL, description string, sports []string) (*domain.Exercise, error) {
	if name == "" || !domain.ValidCategory(category) {
		return nil, ErrExerciseValidation
	}
	if demoURL != "" && !videoURLPattern.MatchString(demoURL) {
		return nil, ErrInvalidDemoURL
	}

	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	if existing.IsGlobal() {
		return nil, ErrGlobalImmutable
	}
	if !existing.OwnedBy(requesterID) {
		return nil, ErrExerciseAccessDenied
	}

	existing.Name = name
	existing.Category = category
	existing.DemoURL = demoURL
	existing.Description = description
	if len(sports) > 0 {
		existing.Sports = sports
	}

	if err := s.exerciseRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteExercise handles deleting an exercise, ensuring ownership.
// Prescriptions referencing the deleted exercise keep working via their
// denormalized name.
func (s *exerciseService) DeleteExercise(ctx context.Context, requesterID, exerciseID primitive.ObjectID) error {
	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	if existing.IsGlobal() {
		return ErrGlobalImmutable
	}
	if !existing.OwnedBy(requesterID) {
		return ErrExerciseAccessDenied
	}

	// The repository filter re-checks ownership at the DB level.
	if err := s.exerciseRepo.Delete(ctx, exerciseID, requesterID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	return nil
}

// RequestDemoUpload generates a presigned PUT URL so the coach's device can
// upload a recorded demonstration straight to S3.
func (s *exerciseService) RequestDemoUpload(ctx context.Context, requesterID, exerciseID primitive.ObjectID, fileName, contentType string) (string, string, error) {
	if fileName == "" || contentType == "" {
		return "", "", ErrExerciseValidation
	}

	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", ErrExerciseNotFound
		}
		return "", "", err
	}
	if existing.IsGlobal() {
		return "", "", ErrGlobalImmutable
	}
	if !existing.OwnedBy(requesterID) {
		return "", "", ErrExerciseAccessDenied
	}

	objectKey := storage.DemoObjectKey(requesterID.Hex(), fileName)
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", "", err
	}
	return uploadURL, objectKey, nil
}

// ConfirmDemoUpload records the upload metadata once the device reports the
// PUT succeeded.
func (s *exerciseService) ConfirmDemoUpload(ctx context.Context, requesterID, exerciseID primitive.ObjectID, objectKey, fileName, contentType string, size int64) (*domain.DemoUpload, error) {
	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if !existing.OwnedBy(requesterID) {
		return nil, ErrExerciseAccessDenied
	}

	upload := &domain.DemoUpload{
		ExerciseID:  exerciseID,
		OwnerID:     requesterID,
		S3ObjectKey: objectKey,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
		UploadedAt:  time.Now().UTC(),
	}

	uploadID, err := s.uploadRepo.Create(ctx, upload)
	if err != nil {
		return nil, err
	}
	upload.ID = uploadID
	return upload, nil
}

// GetDemoDownloadURL returns a presigned GET URL for the exercise's most
// recently uploaded demonstration video.
func (s *exerciseService) GetDemoDownloadURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error) {
	upload, err := s.uploadRepo.GetByExerciseID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrExerciseNotFound
		}
		return "", err
	}
	return s.fileStorage.GeneratePresignedDownloadURL(ctx, upload.S3ObjectKey, storage.DefaultPresignedURLExpiry)
}
