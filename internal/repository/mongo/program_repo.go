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

const programCollectionName = "workout_programs"

// mongoProgramRepository implements repository.ProgramRepository
type mongoProgramRepository struct {
	collection *mongo.Collection
}

// NewMongoProgramRepository creates a new WorkoutProgram repository backed by MongoDB.
func NewMongoProgramRepository(db *mongo.Database) repository.ProgramRepository {
	return &mongoProgramRepository{
		collection: db.Collection(programCollectionName),
	}
}

// Create inserts a new program document (days and prescriptions embedded).
func (r *mongoProgramRepository) Create(ctx context.Context, program *domain.WorkoutProgram) (primitive.ObjectID, error) {
	if program.Name == "" || program.OwnerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("program name and owner ID are required")
	}

	program.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	program.CreatedAt = now
	program.UpdatedAt = now
	if program.AssignedTeams == nil {
		program.AssignedTeams = []primitive.ObjectID{}
	}
	if program.Workouts == nil {
		program.Workouts = []domain.WorkoutDay{}
	}

	result, err := r.collection.InsertOne(ctx, program)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a program by its ID.
func (r *mongoProgramRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutProgram, error) {
	var program domain.WorkoutProgram
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

// GetByOwnerID retrieves all programs in a coach's library, drafts included.
func (r *mongoProgramRepository) GetByOwnerID(ctx context.Context, ownerID primitive.ObjectID) ([]domain.WorkoutProgram, error) {
	var programs []domain.WorkoutProgram
	filter := bson.M{"ownerId": ownerID}
	findOptions := options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &programs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return programs, nil
}

// GetPublishedForTeamOnDate returns the published programs assigned to the
// team whose [startDate, endDate] range covers the given calendar date.
func (r *mongoProgramRepository) GetPublishedForTeamOnDate(ctx context.Context, teamID primitive.ObjectID, date time.Time) ([]domain.WorkoutProgram, error) {
	day := domain.CalendarDate(date)
	filter := bson.M{
		"assignedTeams": teamID,
		"isPublished":   true,
		"startDate":     bson.M{"$lte": day},
		"endDate":       bson.M{"$gte": day},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var programs []domain.WorkoutProgram
	if err = cursor.All(ctx, &programs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return programs, nil
}

// Update replaces the whole program document. Programs are single-owner in
// practice, so document-level last-write-wins is acceptable here.
func (r *mongoProgramRepository) Update(ctx context.Context, program *domain.WorkoutProgram) error {
	if program.ID == primitive.NilObjectID {
		return errors.New("program ID is required for update")
	}

	program.UpdatedAt = time.Now().UTC()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": program.ID}, program)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a program, ensuring it belongs to the specified owner.
// Deletion is terminal and cascades nothing: logs keep their programId and
// tolerate the dangling reference.
func (r *mongoProgramRepository) Delete(ctx context.Context, id primitive.ObjectID, ownerID primitive.ObjectID) error {
	filter := bson.M{
		"_id":     id,
		"ownerId": ownerID,
	}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureProgramIndexes creates necessary indexes for the programs collection.
func EnsureProgramIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "assignedTeams", Value: 1}, {Key: "isPublished", Value: 1}, {Key: "startDate", Value: 1}},
			Options: options.Index().SetName("team_published_range"),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
