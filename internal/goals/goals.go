// Package goals tracks the daily goals and the points leaderboard.
package goals

import (
	"sort"
	"strings"

	"gym-buddy-bot/internal/apperrors"
	"gym-buddy-bot/internal/models"
)

// SelfID is the leaderboard id of the user on this device.
const (
	SelfID          = "me"
	DefaultSelfName = "You"
)

var (
	ErrGoalNotFound     = apperrors.NewNotFoundError("goal").WithMessage("That goal does not exist.")
	ErrAlreadyCompleted = apperrors.NewConflictError("goal_completed", "Goal already completed.")
)

func DefaultGoals() []models.Goal {
	return []models.Goal{
		{ID: "1", Text: "Drink 2L of Water", Points: 10},
		{ID: "2", Text: "Eat Three Healthy Meals", Points: 15},
		{ID: "3", Text: "Exercise for 30 Minutes", Points: 20},
		{ID: "4", Text: "Sleep 8 Hours", Points: 10},
	}
}

// DefaultRivals are the other leaderboard entries, in insertion order.
func DefaultRivals() []models.LeaderboardEntry {
	return []models.LeaderboardEntry{
		{ID: "2", Name: "Alex", Points: 50},
		{ID: "3", Name: "Jamie", Points: 40},
		{ID: "4", Name: "Taylor", Points: 30},
	}
}

// Board holds a device's goals and leaderboard. The self entry is always
// first in insertion order so it wins ties on points.
type Board struct {
	goals   []models.Goal
	entries []models.LeaderboardEntry
}

func NewBoard(goals []models.Goal, rivals []models.LeaderboardEntry) *Board {
	b := &Board{
		goals:   make([]models.Goal, len(goals)),
		entries: make([]models.LeaderboardEntry, 0, len(rivals)+1),
	}
	copy(b.goals, goals)
	b.entries = append(b.entries, models.LeaderboardEntry{ID: SelfID, Name: DefaultSelfName})
	b.entries = append(b.entries, rivals...)
	return b
}

// NewDefaultBoard seeds the board with the mock goals and rivals.
func NewDefaultBoard() *Board {
	return NewBoard(DefaultGoals(), DefaultRivals())
}

// CompleteGoal marks the goal done and credits its points to the self entry.
// It returns the points awarded; Score reports the running total.
func (b *Board) CompleteGoal(id string) (int, error) {
	for i := range b.goals {
		if b.goals[i].ID != id {
			continue
		}
		if b.goals[i].Completed {
			return 0, ErrAlreadyCompleted
		}
		b.goals[i].Completed = true
		b.self().Points += b.goals[i].Points
		return b.goals[i].Points, nil
	}
	return 0, ErrGoalNotFound
}

// Rename sets the self entry's display name. Blank names reset it.
func (b *Board) Rename(designation string) {
	designation = strings.TrimSpace(designation)
	if designation == "" {
		designation = DefaultSelfName
	}
	b.self().Name = designation
}

func (b *Board) Goals() []models.Goal {
	out := make([]models.Goal, len(b.goals))
	copy(out, b.goals)
	return out
}

// Leaderboard returns the entries by points, highest first.
func (b *Board) Leaderboard() []models.LeaderboardEntry {
	out := make([]models.LeaderboardEntry, len(b.entries))
	copy(out, b.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Points > out[j].Points
	})
	return out
}

// Score returns the self entry's points.
func (b *Board) Score() int {
	return b.self().Points
}

func (b *Board) self() *models.LeaderboardEntry {
	return &b.entries[0]
}
