package mongo

import (
	"context"
	"errors"
	"time"

	"strengthdesk/coach-app/internal/domain"
	"strengthdesk/coach-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutLogCollectionName = "workout_logs"

// mongoWorkoutLogRepository implements repository.WorkoutLogRepository
type mongoWorkoutLogRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutLogRepository creates a new WorkoutLog repository backed by MongoDB.
func NewMongoWorkoutLogRepository(db *mongo.Database) repository.WorkoutLogRepository {
	return &mongoWorkoutLogRepository{
		collection: db.Collection(workoutLogCollectionName),
	}
}

// Upsert atomically creates or replaces the log for (athleteId, date).
// The unique index on that pair plus the single ReplaceOne means two
// near-simultaneous saves for the same day deterministically collapse into
// one document instead of duplicating.
func (r *mongoWorkoutLogRepository) Upsert(ctx context.Context, log *domain.WorkoutLog) (*domain.WorkoutLog, error) {
	if log.AthleteID == primitive.NilObjectID {
		return nil, errors.New("athlete ID is required")
	}

	log.Date = domain.CalendarDate(log.Date)
	now := time.Now().UTC()
	log.UpdatedAt = now
	if log.CreatedAt.IsZero() {
		log.CreatedAt = now
	}

	filter := bson.M{
		"athleteId": log.AthleteID,
		"date":      log.Date,
	}

	// Keep the existing _id on replace; generate one for the insert path.
	if log.ID == primitive.NilObjectID {
		var existing domain.WorkoutLog
		err := r.collection.FindOne(ctx, filter).Decode(&existing)
		switch {
		case err == nil:
			log.ID = existing.ID
			log.CreatedAt = existing.CreatedAt
		case errors.Is(err, mongo.ErrNoDocuments):
			log.ID = primitive.NewObjectID()
		default:
			return nil, err
		}
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, filter, log, opts); err != nil {
		return nil, err
	}
	return log, nil
}

// GetByAthleteAndDate retrieves the log for one athlete and calendar date.
func (r *mongoWorkoutLogRepository) GetByAthleteAndDate(ctx context.Context, athleteID primitive.ObjectID, date time.Time) (*domain.WorkoutLog, error) {
	filter := bson.M{
		"athleteId": athleteID,
		"date":      domain.CalendarDate(date),
	}

	var log domain.WorkoutLog
	err := r.collection.FindOne(ctx, filter).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// GetByAthleteInRange lists an athlete's logs between two calendar dates,
// inclusive, oldest first.
func (r *mongoWorkoutLogRepository) GetByAthleteInRange(ctx context.Context, athleteID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutLog, error) {
	filter := bson.M{
		"athleteId": athleteID,
		"date": bson.M{
			"$gte": domain.CalendarDate(from),
			"$lte": domain.CalendarDate(to),
		},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []domain.WorkoutLog
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

// EnsureWorkoutLogIndexes creates necessary indexes for the workout_logs
// collection. The unique (athleteId, date) index is what makes the Upsert
// race-safe.
func EnsureWorkoutLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "athleteId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("athlete_date_unique"),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
