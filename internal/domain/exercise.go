package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseCategory groups exercises for filtering in the catalog UI.
type ExerciseCategory string

const (
	CategoryUpperBody ExerciseCategory = "upper_body"
	CategoryLowerBody ExerciseCategory = "lower_body"
	CategoryCore      ExerciseCategory = "core"
	CategoryCardio    ExerciseCategory = "cardio"
	CategoryOlympic   ExerciseCategory = "olympic"
	CategoryAccessory ExerciseCategory = "accessory"
)

// SportAll is the default applicable-sports tag.
const SportAll = "all"

// Exercise represents a single exercise definition in the catalog.
// Global (built-in) exercises have a nil OwnerID and are immutable;
// custom exercises belong to the coach or trainer who created them.
type Exercise struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OwnerID     *primitive.ObjectID `bson:"ownerId,omitempty" json:"ownerId,omitempty"` // nil => global/built-in
	Name        string              `bson:"name" json:"name"`
	Category    ExerciseCategory    `bson:"category" json:"category"`
	DemoURL     string              `bson:"demoUrl,omitempty" json:"demoUrl,omitempty"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Sports      []string            `bson:"sports,omitempty" json:"sports,omitempty"` // defaults to ["all"]
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IsGlobal reports whether the exercise is a built-in catalog entry.
func (e *Exercise) IsGlobal() bool {
	return e.OwnerID == nil
}

// OwnedBy reports whether the given user created this exercise.
// Global exercises are owned by nobody.
func (e *Exercise) OwnedBy(userID primitive.ObjectID) bool {
	return e.OwnerID != nil && *e.OwnerID == userID
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c ExerciseCategory) bool {
	switch c {
	case CategoryUpperBody, CategoryLowerBody, CategoryCore,
		CategoryCardio, CategoryOlympic, CategoryAccessory:
		return true
	}
	return false
}
