package buddy

import (
	"strings"

	"gym-buddy-bot/internal/apperrors"
	"gym-buddy-bot/internal/models"
)

const selfSender = "You"

var (
	ErrEmptyMessage    = apperrors.NewValidationError("message", "Type a message first.")
	ErrBuddyNotMatched = apperrors.NewNotFoundError("buddy").WithMessage("You have not matched with that buddy.")
)

// Chat holds one thread per matched buddy. It reads the matched list straight
// from the matcher, so new matches show up without any hand-off.
type Chat struct {
	matcher *Matcher
	threads map[string][]models.ChatMessage
}

func NewChat(m *Matcher) *Chat {
	return &Chat{matcher: m, threads: make(map[string][]models.ChatMessage)}
}

// Buddies lists who can be messaged.
func (c *Chat) Buddies() []models.BuddyProfile {
	return c.matcher.Matched()
}

func (c *Chat) Send(buddyID, text string) (models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}
	if _, ok := c.matcher.FindMatched(buddyID); !ok {
		return models.ChatMessage{}, ErrBuddyNotMatched
	}

	msg := models.ChatMessage{Sender: selfSender, Text: text}
	c.threads[buddyID] = append(c.threads[buddyID], msg)
	return msg, nil
}

func (c *Chat) Thread(buddyID string) ([]models.ChatMessage, error) {
	if _, ok := c.matcher.FindMatched(buddyID); !ok {
		return nil, ErrBuddyNotMatched
	}
	out := make([]models.ChatMessage, len(c.threads[buddyID]))
	copy(out, c.threads[buddyID])
	return out, nil
}
