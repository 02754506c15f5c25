package screens

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gym-buddy-bot/internal/apperrors"
	"gym-buddy-bot/internal/workout"
)

var errCoachUnavailable = apperrors.NewPreconditionError("coach_unavailable", "The AI coach is not configured.")

func (r *Router) gymStatus(_ context.Context, d *Device, _ string) (Reply, error) {
	level := d.Gym.CurrentStatus()
	return Reply{
		Text: fmt.Sprintf("🏋️ Arc Status\n%s\nLast Updated: %s", level, d.Gym.LastUpdated().Format(time.Kitchen)),
		Buttons: [][]Button{{
			{Label: "Refresh Status", Command: "/gymstatus"},
			{Label: "Hourly traffic", Command: "/traffic"},
		}},
	}, nil
}

// traffic renders the hourly chart as text bars.
func (r *Router) traffic(_ context.Context, d *Device, args string) (Reply, error) {
	weekday := r.now().Weekday()
	if args != "" {
		day, err := workout.ParseDay(args)
		if err != nil {
			return Reply{}, err
		}
		for _, w := range workout.Weekdays {
			if w.String() == day {
				weekday = w
			}
		}
	}

	chart := d.Gym.HourlyTraffic(weekday)
	var b strings.Builder
	fmt.Fprintf(&b, "📊 %s traffic", chart.Weekday)
	for _, h := range chart.Hours {
		fmt.Fprintf(&b, "\n%5s %s %d%%", h.Label(), strings.Repeat("█", h.Load/10), h.Load)
	}
	return Reply{Text: b.String()}, nil
}

func (r *Router) suggestWorkout(ctx context.Context, _ *Device, args string) (Reply, error) {
	exercises, ok := workout.Exercises(args)
	if !ok {
		return Reply{Text: "Which muscle group?", Buttons: groupButtons("/coach")}, nil
	}
	if r.coach == nil {
		return Reply{}, errCoachUnavailable
	}
	suggestion, err := r.coach.SuggestWorkout(ctx, args, exercises)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to get workout suggestion: %w", err)
	}
	return Reply{Text: suggestion}, nil
}
