// Package buddy implements the find-a-buddy swipe flow and the chat with
// matched buddies.
package buddy

import (
	"strings"

	"gym-buddy-bot/internal/apperrors"
	"gym-buddy-bot/internal/models"
)

type Direction int

const (
	Left Direction = iota
	Right
)

// ParseDirection accepts "left"/"right" and the swipe shorthands "l"/"r".
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l", "pass":
		return Left, true
	case "right", "r", "match":
		return Right, true
	}
	return Left, false
}

var ErrNoMoreCandidates = apperrors.NewPreconditionError("no_more_candidates", "No more buddies to decide on.")

// Decision reports what a swipe did.
type Decision struct {
	Profile models.BuddyProfile
	Matched bool
	Done    bool
}

// DefaultCandidates returns the mock candidate list.
func DefaultCandidates() []models.BuddyProfile {
	return []models.BuddyProfile{
		{ID: "1", Name: "Alex", Location: "Arc", TrainingFocus: "Strength", Image: "https://placehold.co/300x300?text=Alex"},
		{ID: "2", Name: "Jamie", Location: "GoodLife Fitness", TrainingFocus: "Cardio", Image: "https://placehold.co/300x300?text=Jamie"},
		{ID: "3", Name: "Taylor", Location: "Arc", TrainingFocus: "Powerlifting", Image: "https://placehold.co/300x300?text=Taylor"},
		{ID: "4", Name: "Jordan", Location: "Arc", TrainingFocus: "Yoga", Image: "https://placehold.co/300x300?text=Jordan"},
	}
}

// Matcher walks the candidate list once. Not safe for concurrent use.
type Matcher struct {
	candidates []models.BuddyProfile
	matched    []models.BuddyProfile
	cursor     int
	done       bool
}

func NewMatcher(candidates []models.BuddyProfile) *Matcher {
	c := make([]models.BuddyProfile, len(candidates))
	copy(c, candidates)
	return &Matcher{candidates: c, done: len(c) == 0}
}

// Current returns the candidate under the cursor.
func (m *Matcher) Current() (models.BuddyProfile, bool) {
	if m.done {
		return models.BuddyProfile{}, false
	}
	return m.candidates[m.cursor], true
}

// Decide records a swipe on the current candidate and advances the cursor.
func (m *Matcher) Decide(d Direction) (Decision, error) {
	if m.done {
		return Decision{}, ErrNoMoreCandidates
	}

	profile := m.candidates[m.cursor]
	if d == Right {
		m.matched = append(m.matched, profile)
	}
	m.cursor++
	if m.cursor == len(m.candidates) {
		m.done = true
	}

	return Decision{Profile: profile, Matched: d == Right, Done: m.done}, nil
}

// Matched returns a copy of the matched profiles in swipe order.
func (m *Matcher) Matched() []models.BuddyProfile {
	out := make([]models.BuddyProfile, len(m.matched))
	copy(out, m.matched)
	return out
}

// FindMatched looks a matched buddy up by id.
func (m *Matcher) FindMatched(id string) (models.BuddyProfile, bool) {
	for _, p := range m.matched {
		if p.ID == id {
			return p, true
		}
	}
	return models.BuddyProfile{}, false
}

func (m *Matcher) Cursor() int { return m.cursor }

func (m *Matcher) Done() bool { return m.done }

func (m *Matcher) Remaining() int { return len(m.candidates) - m.cursor }
