package screens

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gym-buddy-bot/internal/apperrors"
	"gym-buddy-bot/internal/models"
	"gym-buddy-bot/internal/workout"
)

var (
	errUnknownGroup = apperrors.NewValidationError("muscle_group", "Pick one of: "+strings.Join(workout.MuscleGroups, ", ")+".")
	errInvalidDate  = apperrors.NewValidationError("date", "Dates look like 2025-03-14.")
)

const dateLayout = "2006-01-02"

func parseDate(s string) (string, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", errInvalidDate
	}
	return t.Format(dateLayout), nil
}

func groupButtons(command string) [][]Button {
	var row []Button
	for _, g := range workout.MuscleGroups {
		row = append(row, Button{Label: g, Command: command + " " + g})
	}
	return [][]Button{row}
}

// planner shows a weekday's plan and makes it the target of /addplanned and
// /saveplan.
func (r *Router) planner(_ context.Context, d *Device, args string) (Reply, error) {
	if args != "" {
		day, err := workout.ParseDay(args)
		if err != nil {
			return Reply{}, err
		}
		d.plannerDay = day
	}
	entries, err := d.Planner.Day(d.plannerDay)
	if err != nil {
		return Reply{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 %s", d.plannerDay)
	if len(entries) == 0 {
		b.WriteString("\nNothing planned yet. Pick a muscle group or use /addexercise.")
	}
	var buttons [][]Button
	for _, e := range entries {
		b.WriteString("\n• " + entryText(e))
		buttons = append(buttons, []Button{{Label: "Remove " + e.Exercise, Command: "/remove " + e.ID}})
	}
	buttons = append(buttons, groupButtons("/muscle")...)
	return Reply{Text: b.String(), Buttons: buttons}, nil
}

func entryText(e models.WorkoutEntry) string {
	if e.Sets == 0 {
		return e.Exercise
	}
	return fmt.Sprintf("%s: %d x %d", e.Exercise, e.Sets, e.Reps)
}

func (r *Router) addExercise(_ context.Context, d *Device, args string) (Reply, error) {
	f := splitArgs(args, 4)
	if _, err := d.Planner.AddExercise(f[0], f[1], f[2], f[3]); err != nil {
		return Reply{}, err
	}
	day, _ := workout.ParseDay(f[0])
	d.plannerDay = day
	return Reply{Text: fmt.Sprintf("Added %s to %s.", f[1], day)}, nil
}

func (r *Router) muscleGroup(_ context.Context, d *Device, args string) (Reply, error) {
	exercises, ok := workout.Exercises(args)
	if !ok {
		return Reply{}, errUnknownGroup
	}
	var buttons [][]Button
	for _, ex := range exercises {
		buttons = append(buttons, []Button{{Label: "Add " + ex, Command: "/addplanned " + ex}})
	}
	return Reply{Text: fmt.Sprintf("Add to %s:", d.plannerDay), Buttons: buttons}, nil
}

func (r *Router) addPlanned(_ context.Context, d *Device, args string) (Reply, error) {
	if _, err := d.Planner.AddPlanned(d.plannerDay, args); err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf("Added %s to %s.", args, d.plannerDay)}, nil
}

func (r *Router) removeExercise(_ context.Context, d *Device, args string) (Reply, error) {
	if err := d.Planner.RemoveExercise(d.plannerDay, args); err != nil {
		return Reply{}, err
	}
	return Reply{Text: "Removed."}, nil
}

func (r *Router) savePlan(_ context.Context, d *Device, args string) (Reply, error) {
	if _, err := d.Planner.SavePlan(args, d.plannerDay); err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf("Saved %q.", args)}, nil
}

func (r *Router) plans(_ context.Context, d *Device, _ string) (Reply, error) {
	var b strings.Builder
	b.WriteString("Saved workouts:")
	var buttons [][]Button
	for _, p := range d.Planner.Plans() {
		fmt.Fprintf(&b, "\n• %s: %s", p.Name, strings.Join(p.Exercises, ", "))
		buttons = append(buttons, []Button{{Label: "Start " + p.Name, Command: "/routine " + p.ID}})
	}
	return Reply{Text: b.String(), Buttons: buttons}, nil
}

func (r *Router) tracker(_ context.Context, d *Device, _ string) (Reply, error) {
	var b strings.Builder
	b.WriteString("🏋️ Workout Tracker")
	if d.trackerDate == "" {
		b.WriteString("\nDate: not selected (/date yyyy-mm-dd)")
	} else {
		b.WriteString("\nDate: " + d.trackerDate)
	}
	if active := d.Tracker.Active(); active != "" {
		b.WriteString("\nCurrent exercise: " + active)
	}
	b.WriteString(pendingText(d.Tracker.Pending()))

	buttons := [][]Button{
		{{Label: "Today", Command: "/date " + r.now().Format(dateLayout)}, {Label: "Saved workouts", Command: "/plans"}},
		{{Label: "End session", Command: "/endsession"}},
	}
	buttons = append(buttons, groupButtons("/routine")...)
	return Reply{Text: b.String(), Buttons: buttons}, nil
}

func pendingText(sets []models.LoggedSet) string {
	if len(sets) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\nThis session:")
	for _, s := range sets {
		fmt.Fprintf(&b, "\n• %s: %s reps", s.Exercise, s.Reps)
		if s.Weight != "" {
			fmt.Fprintf(&b, " @ %s", s.Weight)
		}
	}
	return b.String()
}

// routine lists exercises to track from a saved plan or a muscle group.
func (r *Router) routine(_ context.Context, d *Device, args string) (Reply, error) {
	title := args
	exercises, ok := workout.Exercises(args)
	if !ok {
		plan, err := d.Planner.Plan(args)
		if err != nil {
			return Reply{}, err
		}
		title, exercises = plan.Name, plan.Exercises
	}

	var buttons [][]Button
	for _, ex := range exercises {
		buttons = append(buttons, []Button{{Label: ex, Command: "/track " + ex}})
	}
	return Reply{Text: title + ": pick an exercise.", Buttons: buttons}, nil
}

func (r *Router) trackExercise(_ context.Context, d *Device, args string) (Reply, error) {
	if err := d.Tracker.StartExercise(args); err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf("Tracking %s. Log sets with /set <reps> [weight].", d.Tracker.Active())}, nil
}

func (r *Router) logSet(_ context.Context, d *Device, args string) (Reply, error) {
	reps, weight, _ := strings.Cut(args, " ")
	if err := d.Tracker.LogSet(reps, weight); err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf("Logged %s reps of %s.", reps, d.Tracker.Active())}, nil
}

func (r *Router) selectDate(_ context.Context, d *Device, args string) (Reply, error) {
	date, err := parseDate(args)
	if err != nil {
		return Reply{}, err
	}
	d.trackerDate = date
	return Reply{Text: "Workout date set to " + date + "."}, nil
}

func (r *Router) endSession(_ context.Context, d *Device, args string) (Reply, error) {
	date := d.trackerDate
	if args != "" {
		var err error
		if date, err = parseDate(args); err != nil {
			return Reply{}, err
		}
	}
	session, err := d.Tracker.EndSession(date)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: "Workout saved!\n" + sessionText(session)}, nil
}

func (r *Router) history(_ context.Context, d *Device, args string) (Reply, error) {
	if args == "" {
		dates := d.Tracker.Dates()
		if len(dates) == 0 {
			return Reply{Text: "No workouts logged yet."}, nil
		}
		var buttons [][]Button
		for _, date := range dates {
			buttons = append(buttons, []Button{{Label: date, Command: "/history " + date}})
		}
		return Reply{Text: "Logged workouts:", Buttons: buttons}, nil
	}

	date, err := parseDate(args)
	if err != nil {
		return Reply{}, err
	}
	sessions := d.Tracker.History(date)
	if len(sessions) == 0 {
		return Reply{Text: "No workouts logged on " + date + "."}, nil
	}
	parts := make([]string, 0, len(sessions))
	for _, s := range sessions {
		parts = append(parts, sessionText(s))
	}
	return Reply{Text: strings.Join(parts, "\n\n")}, nil
}

func sessionText(s models.TrackedWorkoutSession) string {
	var b strings.Builder
	b.WriteString("📅 " + s.Date)
	for _, ex := range s.Exercises {
		b.WriteString("\n" + ex.Exercise)
		for i, set := range ex.Sets {
			fmt.Fprintf(&b, "\n  Set %d: %s reps", i+1, set.Reps)
			if set.Weight != "" {
				fmt.Fprintf(&b, " @ %s", set.Weight)
			}
		}
	}
	return b.String()
}
