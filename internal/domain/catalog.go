package domain

import "strings"

// builtinExercises is the fixed global catalog every team sees. Built-ins
// have no owner and are immutable; a custom exercise can never shadow one
// of these names.
var builtinExercises = []Exercise{
	{Name: "Back Squat", Category: CategoryLowerBody, Sports: []string{SportAll}},
	{Name: "Front Squat", Category: CategoryLowerBody, Sports: []string{SportAll}},
	{Name: "Deadlift", Category: CategoryLowerBody, Sports: []string{SportAll}},
	{Name: "Romanian Deadlift", Category: CategoryLowerBody, Sports: []string{SportAll}},
	{Name: "Lunge", Category: CategoryLowerBody, Sports: []string{SportAll}},
	{Name: "Bench Press", Category: CategoryUpperBody, Sports: []string{SportAll}},
	{Name: "Incline Bench Press", Category: CategoryUpperBody, Sports: []string{SportAll}},
	{Name: "Overhead Press", Category: CategoryUpperBody, Sports: []string{SportAll}},
	{Name: "Barbell Row", Category: CategoryUpperBody, Sports: []string{SportAll}},
	{Name: "Pull-Up", Category: CategoryUpperBody, Sports: []string{SportAll}},
	{Name: "Dip", Category: CategoryUpperBody, Sports: []string{SportAll}},
	{Name: "Power Clean", Category: CategoryOlympic, Sports: []string{SportAll}},
	{Name: "Hang Clean", Category: CategoryOlympic, Sports: []string{SportAll}},
	{Name: "Snatch", Category: CategoryOlympic, Sports: []string{SportAll}},
	{Name: "Push Jerk", Category: CategoryOlympic, Sports: []string{SportAll}},
	{Name: "Plank", Category: CategoryCore, Sports: []string{SportAll}},
	{Name: "Hanging Leg Raise", Category: CategoryCore, Sports: []string{SportAll}},
	{Name: "Russian Twist", Category: CategoryCore, Sports: []string{SportAll}},
	{Name: "Sled Push", Category: CategoryCardio, Sports: []string{SportAll}},
	{Name: "Rowing Machine", Category: CategoryCardio, Sports: []string{SportAll}},
	{Name: "Lateral Raise", Category: CategoryAccessory, Sports: []string{SportAll}},
	{Name: "Face Pull", Category: CategoryAccessory, Sports: []string{SportAll}},
	{Name: "Tricep Pushdown", Category: CategoryAccessory, Sports: []string{SportAll}},
	{Name: "Barbell Curl", Category: CategoryAccessory, Sports: []string{SportAll}},
}

// BuiltinExercises returns a copy of the global catalog.
func BuiltinExercises() []Exercise {
	out := make([]Exercise, len(builtinExercises))
	copy(out, builtinExercises)
	return out
}

// IsBuiltinName reports whether the name collides (case-insensitively)
// with a built-in exercise.
func IsBuiltinName(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, b := range builtinExercises {
		if strings.ToLower(b.Name) == n {
			return true
		}
	}
	return false
}

// MergeExercises combines coach/trainer-created exercises with the global
// catalog. Custom entries come first for UI prominence, but any custom
// exercise whose name collides with a built-in is dropped so the built-in
// stays authoritative.
func MergeExercises(custom []Exercise) []Exercise {
	builtinNames := make(map[string]struct{}, len(builtinExercises))
	for _, b := range builtinExercises {
		builtinNames[strings.ToLower(b.Name)] = struct{}{}
	}

	merged := make([]Exercise, 0, len(custom)+len(builtinExercises))
	for _, c := range custom {
		if _, collides := builtinNames[strings.ToLower(strings.TrimSpace(c.Name))]; collides {
			continue
		}
		merged = append(merged, c)
	}
	return append(merged, BuiltinExercises()...)
}
