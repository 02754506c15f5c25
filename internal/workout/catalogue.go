// Package workout holds the weekly planner, the saved routines and the
// set-by-set workout tracker.
package workout

import (
	"strings"
	"time"

	"gym-buddy-bot/internal/apperrors"
	"gym-buddy-bot/internal/models"
)

var ErrUnknownDay = apperrors.NewValidationError("day", "Pick a day of the week.")

// MuscleGroups lists the catalogue groups in display order.
var MuscleGroups = []string{"Chest", "Back", "Legs", "Arms", "Shoulders"}

var catalogue = map[string][]string{
	"Chest":     {"Bench Press", "Push-ups", "Chest Fly"},
	"Back":      {"Pull-ups", "Deadlifts", "Bent-over Rows"},
	"Legs":      {"Squats", "Lunges", "Leg Press"},
	"Arms":      {"Bicep Curls", "Triceps Dips", "Hammer Curls"},
	"Shoulders": {"Shoulder Press", "Lateral Raises", "Arnold Press"},
}

// Exercises returns the catalogue entries for a muscle group, matched
// case-insensitively.
func Exercises(group string) ([]string, bool) {
	for _, g := range MuscleGroups {
		if strings.EqualFold(g, strings.TrimSpace(group)) {
			out := make([]string, len(catalogue[g]))
			copy(out, catalogue[g])
			return out, true
		}
	}
	return nil, false
}

// DefaultPlans are the routines every device starts with.
func DefaultPlans() []models.SavedWorkoutPlan {
	return []models.SavedWorkoutPlan{
		{ID: "1", Name: "Full Body Routine", Exercises: []string{"Squats", "Push-ups", "Pull-ups"}},
		{ID: "2", Name: "Upper Body Routine", Exercises: []string{"Bench Press", "Shoulder Press"}},
	}
}

// Weekdays in planner order.
var Weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// ParseDay accepts a full weekday name or its three-letter abbreviation in any
// case and returns the canonical name.
func ParseDay(day string) (string, error) {
	day = strings.TrimSpace(day)
	for _, w := range Weekdays {
		name := w.String()
		if strings.EqualFold(day, name) || strings.EqualFold(day, name[:3]) {
			return name, nil
		}
	}
	return "", ErrUnknownDay
}
