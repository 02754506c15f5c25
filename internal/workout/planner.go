package workout

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"gym-buddy-bot/internal/apperrors"
	"gym-buddy-bot/internal/models"
)

var (
	ErrMissingFields = apperrors.NewValidationError("exercise", "Please fill in all fields.")
	ErrInvalidSets   = apperrors.NewValidationError("sets", "Sets must be a positive number.")
	ErrInvalidReps   = apperrors.NewValidationError("reps", "Reps must be a positive number.")
	ErrAlreadyAdded  = apperrors.NewConflictError("exercise_added", "Exercise already added for this day.")
	ErrEntryNotFound = apperrors.NewNotFoundError("exercise").WithMessage("That exercise is not on the plan.")
	ErrEmptyName     = apperrors.NewValidationError("plan_name", "Enter a name for the workout.")
	ErrEmptyPlan     = apperrors.NewPreconditionError("empty_plan", "Add at least one exercise before saving.")
	ErrPlanNotFound  = apperrors.NewNotFoundError("plan").WithMessage("That workout does not exist.")
)

// Planner keeps the exercises planned per weekday and the saved routines.
type Planner struct {
	days  map[string][]models.WorkoutEntry
	plans []models.SavedWorkoutPlan
	newID func() string
}

func NewPlanner(plans []models.SavedWorkoutPlan) *Planner {
	p := &Planner{
		days:  make(map[string][]models.WorkoutEntry),
		newID: uuid.NewString,
	}
	for _, plan := range plans {
		p.plans = append(p.plans, clonePlan(plan))
	}
	return p
}

// AddExercise plans an exercise with a set and rep scheme.
func (p *Planner) AddExercise(day, exercise, sets, reps string) (string, error) {
	exercise = strings.TrimSpace(exercise)
	sets = strings.TrimSpace(sets)
	reps = strings.TrimSpace(reps)
	if strings.TrimSpace(day) == "" || exercise == "" || sets == "" || reps == "" {
		return "", ErrMissingFields
	}
	name, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	n, err := strconv.Atoi(sets)
	if err != nil || n <= 0 {
		return "", ErrInvalidSets
	}
	r, err := strconv.Atoi(reps)
	if err != nil || r <= 0 {
		return "", ErrInvalidReps
	}

	entry := models.WorkoutEntry{ID: p.newID(), Exercise: exercise, Sets: n, Reps: r}
	p.days[name] = append(p.days[name], entry)
	return entry.ID, nil
}

// AddPlanned adds a catalogue exercise to a day. The same exercise can only
// appear once per day.
func (p *Planner) AddPlanned(day, exercise string) (string, error) {
	exercise = strings.TrimSpace(exercise)
	if exercise == "" {
		return "", ErrMissingFields
	}
	name, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	for _, e := range p.days[name] {
		if strings.EqualFold(e.Exercise, exercise) {
			return "", ErrAlreadyAdded
		}
	}

	entry := models.WorkoutEntry{ID: p.newID(), Exercise: exercise}
	p.days[name] = append(p.days[name], entry)
	return entry.ID, nil
}

func (p *Planner) RemoveExercise(day, id string) error {
	name, err := ParseDay(day)
	if err != nil {
		return err
	}
	entries := p.days[name]
	for i, e := range entries {
		if e.ID == id {
			p.days[name] = append(entries[:i:i], entries[i+1:]...)
			return nil
		}
	}
	return ErrEntryNotFound
}

// SavePlan snapshots a day's exercises as a named routine.
func (p *Planner) SavePlan(name, day string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	dayName, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	entries := p.days[dayName]
	if len(entries) == 0 {
		return "", ErrEmptyPlan
	}

	plan := models.SavedWorkoutPlan{ID: p.newID(), Name: name}
	for _, e := range entries {
		plan.Exercises = append(plan.Exercises, e.Exercise)
	}
	p.plans = append(p.plans, plan)
	return plan.ID, nil
}

// Day returns the exercises planned for a weekday.
func (p *Planner) Day(day string) ([]models.WorkoutEntry, error) {
	name, err := ParseDay(day)
	if err != nil {
		return nil, err
	}
	out := make([]models.WorkoutEntry, len(p.days[name]))
	copy(out, p.days[name])
	return out, nil
}

func (p *Planner) Plans() []models.SavedWorkoutPlan {
	out := make([]models.SavedWorkoutPlan, len(p.plans))
	for i, plan := range p.plans {
		out[i] = clonePlan(plan)
	}
	return out
}

func (p *Planner) Plan(id string) (models.SavedWorkoutPlan, error) {
	for _, plan := range p.plans {
		if plan.ID == id {
			return clonePlan(plan), nil
		}
	}
	return models.SavedWorkoutPlan{}, ErrPlanNotFound
}

func clonePlan(plan models.SavedWorkoutPlan) models.SavedWorkoutPlan {
	plan.Exercises = append([]string(nil), plan.Exercises...)
	return plan
}
