package screens

import (
	"context"
	"fmt"
	"strings"
)

func (r *Router) goals(_ context.Context, d *Device, _ string) (Reply, error) {
	var b strings.Builder
	b.WriteString("Today's goals:")
	var buttons [][]Button
	for _, g := range d.Board.Goals() {
		mark := "⬜"
		if g.Completed {
			mark = "✅"
		} else {
			buttons = append(buttons, []Button{{Label: "Complete: " + g.Text, Command: "/complete " + g.ID}})
		}
		fmt.Fprintf(&b, "\n%s %s (+%d)", mark, g.Text, g.Points)
	}
	fmt.Fprintf(&b, "\n\nYour points: %d", d.Board.Score())
	buttons = append(buttons, []Button{{Label: "Leaderboard", Command: "/leaderboard"}})
	return Reply{Text: b.String(), Buttons: buttons}, nil
}

func (r *Router) completeGoal(_ context.Context, d *Device, args string) (Reply, error) {
	awarded, err := d.Board.CompleteGoal(args)
	if err != nil {
		return Reply{}, err
	}
	return Reply{
		Text:    fmt.Sprintf("You earned %d points! Total: %d.", awarded, d.Board.Score()),
		Buttons: [][]Button{{{Label: "Goals", Command: "/goals"}, {Label: "Leaderboard", Command: "/leaderboard"}}},
	}, nil
}

func (r *Router) leaderboard(_ context.Context, d *Device, _ string) (Reply, error) {
	var b strings.Builder
	b.WriteString("🏆 Leaderboard")
	for i, e := range d.Board.Leaderboard() {
		fmt.Fprintf(&b, "\n%d. %s: %d", i+1, e.Name, e.Points)
	}
	return Reply{Text: b.String()}, nil
}
