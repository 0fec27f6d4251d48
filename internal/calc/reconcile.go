package calc

import (
	"strengthdesk/coach-app/internal/domain"
)

// BuildLogEntry expands a prescription into independently loggable set
// rows: each set config contributes Sets rows carrying that config's
// reps/percentage/fixed-weight as the prescribed triple, completed fields
// nil. "3x5 @ 70% then 2x3 @ 85%" becomes five rows.
func BuildLogEntry(p domain.ExercisePrescription) domain.ExerciseLog {
	entry := domain.ExerciseLog{
		ExerciseID:   p.ExerciseID,
		ExerciseName: p.ExerciseName,
		Sets:         make([]domain.SetLog, 0, p.TotalSets()),
	}

	setNumber := 0
	for _, cfg := range p.SetConfigs {
		for i := 0; i < cfg.Sets; i++ {
			setNumber++
			entry.Sets = append(entry.Sets, domain.SetLog{
				SetNumber:            setNumber,
				PrescribedReps:       cfg.Reps,
				PrescribedWeight:     cfg.FixedWeight,
				PrescribedPercentage: cfg.Percentage,
			})
		}
	}
	return entry
}

// MergeWithExistingLog reconciles a day's prescriptions against whatever
// the athlete has already logged for that date. existing may be nil (no
// log yet), in which case the result is a fresh expansion.
//
// For each prescribed exercise, a matching entry in the existing log
// (case-insensitive name, id when both sides have one) contributes its
// completed values and notes, while the prescribed fields are re-stamped
// from the current prescription. A coach editing percentages after the
// athlete partially logged refreshes the targets without touching what was
// already entered. Set-count changes never lose data: rows the athlete
// logged beyond a shrunken prescription are kept as persisted, and rows a
// grown prescription adds come in empty.
func MergeWithExistingLog(day domain.WorkoutDay, existing *domain.WorkoutLog) []domain.ExerciseLog {
	merged := make([]domain.ExerciseLog, 0, len(day.Exercises))
	for _, p := range day.Exercises {
		fresh := BuildLogEntry(p)
		if prior := findExerciseLog(existing, p.Key()); prior != nil {
			fresh = mergeEntry(fresh, *prior)
		}
		merged = append(merged, fresh)
	}
	return merged
}

func findExerciseLog(log *domain.WorkoutLog, key domain.ExerciseKey) *domain.ExerciseLog {
	if log == nil {
		return nil
	}
	for i := range log.Exercises {
		if key.Matches(log.Exercises[i].ExerciseID, log.Exercises[i].ExerciseName) {
			return &log.Exercises[i]
		}
	}
	return nil
}

// mergeEntry overlays a persisted entry onto a freshly expanded one.
func mergeEntry(fresh, prior domain.ExerciseLog) domain.ExerciseLog {
	fresh.Notes = prior.Notes

	for i := range fresh.Sets {
		if i < len(prior.Sets) {
			fresh.Sets[i].CompletedReps = prior.Sets[i].CompletedReps
			fresh.Sets[i].CompletedWeight = prior.Sets[i].CompletedWeight
		}
	}

	// A shrunken prescription never truncates logged work: carry the
	// athlete's extra rows over as persisted, renumbered after the fresh
	// expansion.
	for i := len(fresh.Sets); i < len(prior.Sets); i++ {
		extra := prior.Sets[i]
		extra.SetNumber = i + 1
		fresh.Sets = append(fresh.Sets, extra)
	}

	fresh.SetsCompleted = fresh.CountCompleted()
	return fresh
}
