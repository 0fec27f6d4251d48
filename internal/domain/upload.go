package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DemoUpload stores metadata about a demonstration video a coach or trainer
// recorded for one of their catalog exercises. The file itself lives in S3;
// the exercise's DemoURL is swapped to a presigned link once the upload is
// confirmed.
type DemoUpload struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExerciseID  primitive.ObjectID `bson:"exerciseId" json:"exerciseId"`
	OwnerID     primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	S3ObjectKey string             `bson:"s3ObjectKey" json:"-"` // internal use only
	FileName    string             `bson:"fileName" json:"fileName"`
	ContentType string             `bson:"contentType" json:"contentType"` // e.g. "video/mp4"
	Size        int64              `bson:"size" json:"size"`
	UploadedAt  time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}
