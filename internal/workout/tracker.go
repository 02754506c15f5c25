package workout

import (
	"sort"
	"strings"

	"gym-buddy-bot/internal/apperrors"
	"gym-buddy-bot/internal/models"
)

var (
	ErrMissingReps      = apperrors.NewValidationError("reps", "Enter reps")
	ErrNoActiveExercise = apperrors.NewPreconditionError("no_active_exercise", "Pick an exercise first.")
	ErrNoDateSelected   = apperrors.NewPreconditionError("no_date", "Select a Date")
	ErrEmptySession     = apperrors.NewPreconditionError("empty_session", "No Workout Logged")
)

// Tracker records sets as they are performed and commits them per date.
type Tracker struct {
	active  string
	pending []models.LoggedSet
	history map[string][]models.TrackedWorkoutSession
}

func NewTracker() *Tracker {
	return &Tracker{history: make(map[string][]models.TrackedWorkoutSession)}
}

// StartExercise makes exercise the target of the following sets.
func (t *Tracker) StartExercise(exercise string) error {
	exercise = strings.TrimSpace(exercise)
	if exercise == "" {
		return ErrMissingFields
	}
	t.active = exercise
	return nil
}

// Active returns the exercise sets are currently logged against.
func (t *Tracker) Active() string { return t.active }

// LogSet appends a set for the active exercise. Weight is optional.
func (t *Tracker) LogSet(reps, weight string) error {
	reps = strings.TrimSpace(reps)
	if reps == "" {
		return ErrMissingReps
	}
	if t.active == "" {
		return ErrNoActiveExercise
	}
	t.pending = append(t.pending, models.LoggedSet{
		Exercise: t.active,
		Reps:     reps,
		Weight:   strings.TrimSpace(weight),
	})
	return nil
}

func (t *Tracker) Pending() []models.LoggedSet {
	out := make([]models.LoggedSet, len(t.pending))
	copy(out, t.pending)
	return out
}

// EndSession groups the pending sets by exercise, in the order each exercise
// was first logged, and files them under date.
func (t *Tracker) EndSession(date string) (models.TrackedWorkoutSession, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return models.TrackedWorkoutSession{}, ErrNoDateSelected
	}
	if len(t.pending) == 0 {
		return models.TrackedWorkoutSession{}, ErrEmptySession
	}

	session := models.TrackedWorkoutSession{Date: date}
	index := make(map[string]int)
	for _, s := range t.pending {
		i, ok := index[s.Exercise]
		if !ok {
			i = len(session.Exercises)
			index[s.Exercise] = i
			session.Exercises = append(session.Exercises, models.ExerciseSets{Exercise: s.Exercise})
		}
		session.Exercises[i].Sets = append(session.Exercises[i].Sets, models.SetRecord{Reps: s.Reps, Weight: s.Weight})
	}

	t.history[date] = append(t.history[date], session)
	t.pending = nil
	t.active = ""
	return session, nil
}

// History returns the sessions committed for date, oldest first.
func (t *Tracker) History(date string) []models.TrackedWorkoutSession {
	sessions := t.history[strings.TrimSpace(date)]
	out := make([]models.TrackedWorkoutSession, len(sessions))
	copy(out, sessions)
	return out
}

// Dates lists the dates with at least one session, sorted.
func (t *Tracker) Dates() []string {
	dates := make([]string, 0, len(t.history))
	for d := range t.history {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
