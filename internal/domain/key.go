package domain

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseKey identifies an exercise by id when one is available, falling
// back to case-insensitive name matching otherwise. Prescriptions keep a
// denormalized exercise name precisely because the id can be nil or stale
// (the exercise may have been deleted after being prescribed), so every
// matching site (weight resolver, log reconciler, max lookup) uses this
// value type instead of re-implementing the fallback.
type ExerciseKey struct {
	ID   *primitive.ObjectID
	Name string
}

// KeyFor builds an ExerciseKey from an optional id and a display name.
func KeyFor(id *primitive.ObjectID, name string) ExerciseKey {
	return ExerciseKey{ID: id, Name: name}
}

// Matches reports whether the key identifies the entity with the given
// id and name. Ids win when both sides have one; otherwise the comparison
// falls back to the case-insensitive name.
func (k ExerciseKey) Matches(id *primitive.ObjectID, name string) bool {
	if k.ID != nil && id != nil {
		return *k.ID == *id
	}
	return k.MatchesName(name)
}

// MatchesName compares by case-insensitive name only.
func (k ExerciseKey) MatchesName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(k.Name), strings.TrimSpace(name))
}
