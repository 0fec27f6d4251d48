package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestExerciseKeyMatches(t *testing.T) {
	idA := primitive.NewObjectID()
	idB := primitive.NewObjectID()

	t.Run("ids win when both sides have one", func(t *testing.T) {
		key := KeyFor(&idA, "Back Squat")
		assert.True(t, key.Matches(&idA, "totally different name"))
		assert.False(t, key.Matches(&idB, "Back Squat"), "same name, different id")
	})

	t.Run("missing id on either side falls back to name", func(t *testing.T) {
		key := KeyFor(&idA, "Back Squat")
		assert.True(t, key.Matches(nil, "back squat"))

		nameOnly := KeyFor(nil, "Back Squat")
		assert.True(t, nameOnly.Matches(&idB, "BACK SQUAT"))
		assert.False(t, nameOnly.Matches(&idB, "Front Squat"))
	})

	t.Run("name comparison trims whitespace", func(t *testing.T) {
		key := KeyFor(nil, "  Bench Press ")
		assert.True(t, key.MatchesName("bench press"))
	})
}
