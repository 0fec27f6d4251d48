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

const uploadCollectionName = "demo_uploads"

// mongoDemoUploadRepository implements repository.DemoUploadRepository
type mongoDemoUploadRepository struct {
	collection *mongo.Collection
}

// NewMongoDemoUploadRepository creates a new DemoUpload repository backed by MongoDB.
func NewMongoDemoUploadRepository(db *mongo.Database) repository.DemoUploadRepository {
	return &mongoDemoUploadRepository{
		collection: db.Collection(uploadCollectionName),
	}
}

// Create inserts demonstration video upload metadata.
func (r *mongoDemoUploadRepository) Create(ctx context.Context, upload *domain.DemoUpload) (primitive.ObjectID, error) {
	if upload.S3ObjectKey == "" || upload.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("object key and exercise ID are required")
	}

	upload.ID = primitive.NewObjectID()
	if upload.UploadedAt.IsZero() {
		upload.UploadedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, upload)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves upload metadata by its ID.
func (r *mongoDemoUploadRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DemoUpload, error) {
	var upload domain.DemoUpload
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&upload)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &upload, nil
}

// GetByExerciseID retrieves the most recent upload for an exercise.
func (r *mongoDemoUploadRepository) GetByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.DemoUpload, error) {
	findOptions := options.FindOne().SetSort(bson.D{{Key: "uploadedAt", Value: -1}})

	var upload domain.DemoUpload
	err := r.collection.FindOne(ctx, bson.M{"exerciseId": exerciseID}, findOptions).Decode(&upload)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &upload, nil
}

// EnsureDemoUploadIndexes creates necessary indexes for the demo_uploads collection.
func EnsureDemoUploadIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "exerciseId", Value: 1}, {Key: "uploadedAt", Value: -1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
