package models

// WorkoutEntry is an exercise planned for a weekday. Sets and Reps are empty
// for exercises picked from the muscle-group catalogue.
type WorkoutEntry struct {
	ID       string `json:"id"`
	Exercise string `json:"exercise"`
	Sets     int    `json:"sets,omitempty"`
	Reps     int    `json:"reps,omitempty"`
}

// SavedWorkoutPlan is an immutable snapshot of a day's exercises.
type SavedWorkoutPlan struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Exercises []string `json:"exercises"`
}

// LoggedSet is a single set recorded during a tracking session.
type LoggedSet struct {
	Exercise string `json:"exercise"`
	Reps     string `json:"reps"`
	Weight   string `json:"weight,omitempty"`
}

// SetRecord is a set inside a saved session, grouped under its exercise.
type SetRecord struct {
	Reps   string `json:"reps"`
	Weight string `json:"weight,omitempty"`
}

// ExerciseSets groups the sets of one exercise in the order they were logged.
type ExerciseSets struct {
	Exercise string      `json:"exercise"`
	Sets     []SetRecord `json:"sets"`
}

// TrackedWorkoutSession is a committed tracking session for a date.
type TrackedWorkoutSession struct {
	Date      string         `json:"date"`
	Exercises []ExerciseSets `json:"exercises"`
}
