package screens

import (
	"context"
	"fmt"
	"strings"

	"gym-buddy-bot/internal/apperrors"
	"gym-buddy-bot/internal/buddy"
	"gym-buddy-bot/internal/models"
)

var (
	errBadDirection = apperrors.NewValidationError("direction", "Swipe left or right.")
	errNoChatOpen   = apperrors.NewPreconditionError("no_chat", "Open a chat first with /chat.")
)

func swipeButtons() [][]Button {
	return [][]Button{{
		{Label: "👈 Pass", Command: "/swipe left"},
		{Label: "Match 👉", Command: "/swipe right"},
	}}
}

func profileText(p models.BuddyProfile) string {
	return fmt.Sprintf("%s\n📍 %s\n🏋️ %s\n%s", p.Name, p.Location, p.TrainingFocus, p.Image)
}

func (r *Router) findBuddy(_ context.Context, d *Device, _ string) (Reply, error) {
	current, ok := d.Matcher.Current()
	if !ok {
		return r.matchesReply(d, "No more buddies nearby.")
	}
	return Reply{Text: profileText(current), Buttons: swipeButtons()}, nil
}

func (r *Router) swipe(_ context.Context, d *Device, args string) (Reply, error) {
	dir, ok := buddy.ParseDirection(args)
	if !ok {
		return Reply{}, errBadDirection
	}
	decision, err := d.Matcher.Decide(dir)
	if err != nil {
		return Reply{}, err
	}

	var b strings.Builder
	if decision.Matched {
		fmt.Fprintf(&b, "You matched with %s! 🎉\n\n", decision.Profile.Name)
	}
	if decision.Done {
		b.WriteString("That was everyone.")
		return r.matchesReply(d, b.String())
	}

	next, _ := d.Matcher.Current()
	b.WriteString(profileText(next))
	return Reply{Text: b.String(), Buttons: swipeButtons()}, nil
}

func (r *Router) matches(_ context.Context, d *Device, _ string) (Reply, error) {
	return r.matchesReply(d, "")
}

func (r *Router) matchesReply(d *Device, header string) (Reply, error) {
	matched := d.Matcher.Matched()

	var b strings.Builder
	if header != "" {
		b.WriteString(header + "\n\n")
	}
	if len(matched) == 0 {
		b.WriteString("No matches yet.")
		return Reply{Text: b.String()}, nil
	}

	b.WriteString("Your matches:")
	var buttons [][]Button
	for _, p := range matched {
		fmt.Fprintf(&b, "\n• %s (%s)", p.Name, p.Location)
		buttons = append(buttons, []Button{{Label: "Chat with " + p.Name, Command: "/chat " + p.ID}})
	}
	return Reply{Text: b.String(), Buttons: buttons}, nil
}

// chat opens a conversation with a matched buddy; without an id it lists
// who can be messaged.
func (r *Router) chat(_ context.Context, d *Device, args string) (Reply, error) {
	if args == "" {
		return r.matchesReply(d, "")
	}
	p, ok := d.Matcher.FindMatched(args)
	if !ok {
		return Reply{}, buddy.ErrBuddyNotMatched
	}
	d.chatWith = p.ID

	thread, err := d.Chat.Thread(p.ID)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: fmt.Sprintf("Chatting with %s. Type a message, or /leavechat.%s", p.Name, threadText(thread))}, nil
}

func (r *Router) sendMessage(d *Device, text string) (Reply, error) {
	if _, err := d.Chat.Send(d.chatWith, text); err != nil {
		return Reply{}, err
	}
	thread, err := d.Chat.Thread(d.chatWith)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: strings.TrimPrefix(threadText(thread), "\n\n")}, nil
}

func (r *Router) thread(_ context.Context, d *Device, _ string) (Reply, error) {
	if d.chatWith == "" {
		return Reply{}, errNoChatOpen
	}
	thread, err := d.Chat.Thread(d.chatWith)
	if err != nil {
		return Reply{}, err
	}
	if len(thread) == 0 {
		return Reply{Text: "No messages yet."}, nil
	}
	return Reply{Text: strings.TrimPrefix(threadText(thread), "\n\n")}, nil
}

func (r *Router) leaveChat(_ context.Context, d *Device, _ string) (Reply, error) {
	d.chatWith = ""
	return Reply{Text: "Left the chat."}, nil
}

func threadText(thread []models.ChatMessage) string {
	if len(thread) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	for _, m := range thread {
		fmt.Fprintf(&b, "\n%s: %s", m.Sender, m.Text)
	}
	return b.String()
}
