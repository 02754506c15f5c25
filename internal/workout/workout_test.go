package workout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym-buddy-bot/internal/apperrors"
	"gym-buddy-bot/internal/models"
)

func newTestPlanner() *Planner {
	p := NewPlanner(DefaultPlans())
	n := 0
	p.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return p
}

func TestParseDay(t *testing.T) {
	for _, in := range []string{"monday", "MONDAY", " Mon "} {
		day, err := ParseDay(in)
		require.NoError(t, err, in)
		assert.Equal(t, "Monday", day)
	}
	_, err := ParseDay("someday")
	assert.ErrorIs(t, err, ErrUnknownDay)
}

func TestExercisesCatalogue(t *testing.T) {
	ex, ok := Exercises("legs")
	require.True(t, ok)
	assert.Equal(t, []string{"Squats", "Lunges", "Leg Press"}, ex)

	ex[0] = "Changed"
	again, _ := Exercises("Legs")
	assert.Equal(t, "Squats", again[0])

	_, ok = Exercises("Neck")
	assert.False(t, ok)
}

func TestAddExerciseValidation(t *testing.T) {
	tests := []struct {
		name                string
		day, ex, sets, reps string
		want                error
	}{
		{"blank exercise", "Monday", " ", "3", "10", ErrMissingFields},
		{"blank sets", "Monday", "Squats", "", "10", ErrMissingFields},
		{"bad day", "Funday", "Squats", "3", "10", ErrUnknownDay},
		{"zero sets", "Monday", "Squats", "0", "10", ErrInvalidSets},
		{"text reps", "Monday", "Squats", "3", "ten", ErrInvalidReps},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlanner()
			_, err := p.AddExercise(tt.day, tt.ex, tt.sets, tt.reps)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
			day, _ := p.Day("Monday")
			assert.Empty(t, day)
		})
	}
}

func TestPlanAndSave(t *testing.T) {
	p := newTestPlanner()

	id, err := p.AddExercise("monday", "Squats", "3", "10")
	require.NoError(t, err)
	_, err = p.AddPlanned("Monday", "Lunges")
	require.NoError(t, err)

	_, err = p.AddPlanned("Mon", "lunges")
	assert.ErrorIs(t, err, ErrAlreadyAdded)

	day, err := p.Day("Monday")
	require.NoError(t, err)
	assert.Equal(t, []models.WorkoutEntry{
		{ID: id, Exercise: "Squats", Sets: 3, Reps: 10},
		{ID: "id-2", Exercise: "Lunges"},
	}, day)

	_, err = p.SavePlan("", "Monday")
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = p.SavePlan("Rest", "Tuesday")
	assert.ErrorIs(t, err, ErrEmptyPlan)

	planID, err := p.SavePlan("Leg Day", "Monday")
	require.NoError(t, err)
	assert.Len(t, p.Plans(), 3)

	// later edits do not reach the snapshot
	require.NoError(t, p.RemoveExercise("Monday", id))
	plan, err := p.Plan(planID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Squats", "Lunges"}, plan.Exercises)

	assert.ErrorIs(t, p.RemoveExercise("Monday", id), ErrEntryNotFound)
	_, err = p.Plan("missing")
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func TestSeededPlans(t *testing.T) {
	p := NewPlanner(DefaultPlans())
	plans := p.Plans()
	require.Len(t, plans, 2)
	assert.Equal(t, "Full Body Routine", plans[0].Name)

	plans[0].Exercises[0] = "Changed"
	plan, _ := p.Plan("1")
	assert.Equal(t, "Squats", plan.Exercises[0])
}

func TestTrackerGroupsByFirstSeen(t *testing.T) {
	tr := NewTracker()

	assert.ErrorIs(t, tr.LogSet("10", ""), ErrNoActiveExercise)

	require.NoError(t, tr.StartExercise("Squats"))
	assert.ErrorIs(t, tr.LogSet(" ", "100"), ErrMissingReps)
	require.NoError(t, tr.LogSet("10", "100"))
	require.NoError(t, tr.StartExercise("Bench Press"))
	require.NoError(t, tr.LogSet("8", ""))
	require.NoError(t, tr.StartExercise("Squats"))
	require.NoError(t, tr.LogSet("8", "110"))
	assert.Len(t, tr.Pending(), 3)

	_, err := tr.EndSession("")
	assert.ErrorIs(t, err, ErrNoDateSelected)
	assert.Len(t, tr.Pending(), 3)

	session, err := tr.EndSession("2025-03-14")
	require.NoError(t, err)
	assert.Equal(t, []models.ExerciseSets{
		{Exercise: "Squats", Sets: []models.SetRecord{{Reps: "10", Weight: "100"}, {Reps: "8", Weight: "110"}}},
		{Exercise: "Bench Press", Sets: []models.SetRecord{{Reps: "8"}}},
	}, session.Exercises)

	assert.Empty(t, tr.Pending())
	assert.Empty(t, tr.Active())
	assert.Len(t, tr.History("2025-03-14"), 1)

	_, err = tr.EndSession("2025-03-14")
	assert.ErrorIs(t, err, ErrEmptySession)
}

func TestTrackerDates(t *testing.T) {
	tr := NewTracker()
	for _, d := range []string{"2025-03-15", "2025-03-14", "2025-03-15"} {
		require.NoError(t, tr.StartExercise("Squats"))
		require.NoError(t, tr.LogSet("5", ""))
		_, err := tr.EndSession(d)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"2025-03-14", "2025-03-15"}, tr.Dates())
	assert.Len(t, tr.History("2025-03-15"), 2)
	assert.Empty(t, tr.History("2025-01-01"))
}
