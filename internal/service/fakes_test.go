package service

import (
	"context"
	"time"

	"strengthdesk/coach-app/internal/domain"
	"strengthdesk/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. Each stores domain objects by id and mimics
// the mongo layer's ErrNotFound behavior; no locking, tests are serial.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *fakeUserRepo) add(user *domain.User) *domain.User {
	if user.ID == primitive.NilObjectID {
		user.ID = primitive.NewObjectID()
	}
	stored := *user
	r.users[user.ID] = &stored
	return user
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.add(user)
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *u
	return &copy, nil
}

func (r *fakeUserRepo) SetMaxes(_ context.Context, athleteID primitive.ObjectID, maxes []domain.AthleteMax) error {
	u, ok := r.users[athleteID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Maxes = maxes
	return nil
}

func (r *fakeUserRepo) AppendStatEntry(_ context.Context, athleteID primitive.ObjectID, entry domain.AthleteStatEntry) error {
	u, ok := r.users[athleteID]
	if !ok {
		return repository.ErrNotFound
	}
	u.StatEntries = append(u.StatEntries, entry)
	return nil
}

func (r *fakeUserRepo) SetTeam(_ context.Context, athleteID, teamID primitive.ObjectID) error {
	u, ok := r.users[athleteID]
	if !ok {
		return repository.ErrNotFound
	}
	u.TeamID = &teamID
	return nil
}

type fakeExerciseRepo struct {
	exercises map[primitive.ObjectID]*domain.Exercise
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: make(map[primitive.ObjectID]*domain.Exercise)}
}

func (r *fakeExerciseRepo) add(e *domain.Exercise) *domain.Exercise {
	if e.ID == primitive.NilObjectID {
		e.ID = primitive.NewObjectID()
	}
	r.exercises[e.ID] = e
	return e
}

func (r *fakeExerciseRepo) Create(_ context.Context, e *domain.Exercise) (primitive.ObjectID, error) {
	r.add(e)
	return e.ID, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	e, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *e
	return &copy, nil
}

func (r *fakeExerciseRepo) GetByOwnerID(_ context.Context, ownerID primitive.ObjectID) ([]domain.Exercise, error) {
	var out []domain.Exercise
	for _, e := range r.exercises {
		if e.OwnedBy(ownerID) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeExerciseRepo) Update(_ context.Context, e *domain.Exercise) error {
	if _, ok := r.exercises[e.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *e
	r.exercises[e.ID] = &copy
	return nil
}

func (r *fakeExerciseRepo) Delete(_ context.Context, id, ownerID primitive.ObjectID) error {
	e, ok := r.exercises[id]
	if !ok || !e.OwnedBy(ownerID) {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

type fakeProgramRepo struct {
	programs map[primitive.ObjectID]*domain.WorkoutProgram
}

func newFakeProgramRepo() *fakeProgramRepo {
	return &fakeProgramRepo{programs: make(map[primitive.ObjectID]*domain.WorkoutProgram)}
}

func (r *fakeProgramRepo) add(p *domain.WorkoutProgram) *domain.WorkoutProgram {
	if p.ID == primitive.NilObjectID {
		p.ID = primitive.NewObjectID()
	}
	r.programs[p.ID] = p
	return p
}

func (r *fakeProgramRepo) Create(_ context.Context, p *domain.WorkoutProgram) (primitive.ObjectID, error) {
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	r.add(p)
	return p.ID, nil
}

func (r *fakeProgramRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutProgram, error) {
	p, ok := r.programs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *p
	return &copy, nil
}

func (r *fakeProgramRepo) GetByOwnerID(_ context.Context, ownerID primitive.ObjectID) ([]domain.WorkoutProgram, error) {
	var out []domain.WorkoutProgram
	for _, p := range r.programs {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProgramRepo) GetPublishedForTeamOnDate(_ context.Context, teamID primitive.ObjectID, date time.Time) ([]domain.WorkoutProgram, error) {
	var out []domain.WorkoutProgram
	for _, p := range r.programs {
		if !p.IsPublished || !p.CoversDate(date) {
			continue
		}
		for _, id := range p.AssignedTeams {
			if id == teamID {
				out = append(out, *p)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeProgramRepo) Update(_ context.Context, p *domain.WorkoutProgram) error {
	if _, ok := r.programs[p.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *p
	copy.UpdatedAt = time.Now().UTC()
	r.programs[p.ID] = &copy
	return nil
}

func (r *fakeProgramRepo) Delete(_ context.Context, id, ownerID primitive.ObjectID) error {
	p, ok := r.programs[id]
	if !ok || p.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.programs, id)
	return nil
}

type fakeLogRepo struct {
	logs map[primitive.ObjectID]*domain.WorkoutLog
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{logs: make(map[primitive.ObjectID]*domain.WorkoutLog)}
}

func (r *fakeLogRepo) Upsert(_ context.Context, log *domain.WorkoutLog) (*domain.WorkoutLog, error) {
	log.Date = domain.CalendarDate(log.Date)
	for _, existing := range r.logs {
		if existing.AthleteID == log.AthleteID && domain.SameCalendarDay(existing.Date, log.Date) {
			log.ID = existing.ID
			log.CreatedAt = existing.CreatedAt
			break
		}
	}
	if log.ID == primitive.NilObjectID {
		log.ID = primitive.NewObjectID()
		log.CreatedAt = time.Now().UTC()
	}
	log.UpdatedAt = time.Now().UTC()
	copy := *log
	r.logs[log.ID] = &copy
	return log, nil
}

func (r *fakeLogRepo) GetByAthleteAndDate(_ context.Context, athleteID primitive.ObjectID, date time.Time) (*domain.WorkoutLog, error) {
	for _, l := range r.logs {
		if l.AthleteID == athleteID && domain.SameCalendarDay(l.Date, date) {
			copy := *l
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeLogRepo) GetByAthleteInRange(_ context.Context, athleteID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutLog, error) {
	var out []domain.WorkoutLog
	start := domain.CalendarDate(from)
	end := domain.CalendarDate(to)
	for _, l := range r.logs {
		if l.AthleteID != athleteID {
			continue
		}
		if !l.Date.Before(start) && !l.Date.After(end) {
			out = append(out, *l)
		}
	}
	return out, nil
}

type fakeUploadRepo struct {
	uploads map[primitive.ObjectID]*domain.DemoUpload
}

func newFakeUploadRepo() *fakeUploadRepo {
	return &fakeUploadRepo{uploads: make(map[primitive.ObjectID]*domain.DemoUpload)}
}

func (r *fakeUploadRepo) Create(_ context.Context, upload *domain.DemoUpload) (primitive.ObjectID, error) {
	if upload.ID == primitive.NilObjectID {
		upload.ID = primitive.NewObjectID()
	}
	copy := *upload
	r.uploads[upload.ID] = &copy
	return upload.ID, nil
}

func (r *fakeUploadRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.DemoUpload, error) {
	u, ok := r.uploads[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *u
	return &copy, nil
}

func (r *fakeUploadRepo) GetByExerciseID(_ context.Context, exerciseID primitive.ObjectID) (*domain.DemoUpload, error) {
	var latest *domain.DemoUpload
	for _, u := range r.uploads {
		if u.ExerciseID != exerciseID {
			continue
		}
		if latest == nil || u.UploadedAt.After(latest.UploadedAt) {
			latest = u
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	copy := *latest
	return &copy, nil
}

// fakeStorage satisfies storage.FileStorage with canned URLs.
type fakeStorage struct{}

func (fakeStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	return "https://s3.test/upload/" + objectKey, nil
}

func (fakeStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://s3.test/download/" + objectKey, nil
}

func (fakeStorage) DeleteObject(_ context.Context, _ string) error { return nil }
