// Package screens turns chat input into operations on a device's screen
// state. It knows nothing about Telegram; the bot feeds it text and renders
// the replies.
package screens

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"gym-buddy-bot/internal/apperrors"
	"gym-buddy-bot/internal/db"
	"gym-buddy-bot/internal/metrics"
	"gym-buddy-bot/internal/session"
	"gym-buddy-bot/pkg/logger"
)

// Button is an inline action. Pressing it sends Command back as input.
type Button struct {
	Label   string
	Command string
}

type Reply struct {
	Text    string
	Buttons [][]Button
	// DeleteInput asks the transport to remove the user's message, which
	// carried a password.
	DeleteInput bool
}

// Coach suggests workouts. It is optional.
type Coach interface {
	SuggestWorkout(ctx context.Context, group string, exercises []string) (string, error)
}

type handler func(ctx context.Context, d *Device, args string) (Reply, error)

type Option func(*Router)

func WithCoach(c Coach) Option {
	return func(r *Router) { r.coach = c }
}

func WithClock(now func() time.Time) Option {
	return func(r *Router) { r.now = now }
}

func WithSessionOptions(opts ...session.Option) Option {
	return func(r *Router) { r.sessionOpts = append(r.sessionOpts, opts...) }
}

// WithGymRand gives every new device its own random source from newRand.
// A *rand.Rand is not safe for concurrent use, so the sources must not be
// shared between devices.
func WithGymRand(newRand func() *rand.Rand) Option {
	return func(r *Router) { r.gymRand = newRand }
}

type Router struct {
	store       db.Store
	emailSuffix string
	logger      *logger.Logger
	coach       Coach
	now         func() time.Time
	sessionOpts []session.Option
	gymRand     func() *rand.Rand

	commands map[string]handler

	mu      sync.RWMutex
	devices map[int64]*Device
}

func NewRouter(store db.Store, emailSuffix string, l *logger.Logger, opts ...Option) *Router {
	r := &Router{
		store:       store,
		emailSuffix: emailSuffix,
		logger:      l.Named("screens"),
		now:         time.Now,
		devices:     make(map[int64]*Device),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.commands = map[string]handler{
		"start": r.home,
		"home":  r.home,
		"help":  r.help,

		"register":      r.register,
		"login":         r.login,
		"logout":        r.logout,
		"whoami":        r.whoami,
		"deleteaccount": r.deleteAccount,
		"cancel":        r.cancel,

		"findabuddy": r.findBuddy,
		"swipe":      r.swipe,
		"matches":    r.matches,
		"chat":       r.chat,
		"thread":     r.thread,
		"leavechat":  r.leaveChat,

		"goals":       r.goals,
		"complete":    r.completeGoal,
		"leaderboard": r.leaderboard,

		"workoutplanner": r.planner,
		"plan":           r.planner,
		"addexercise":    r.addExercise,
		"muscle":         r.muscleGroup,
		"addplanned":     r.addPlanned,
		"remove":         r.removeExercise,
		"saveplan":       r.savePlan,
		"plans":          r.plans,

		"workouttracker": r.tracker,
		"routine":        r.routine,
		"track":          r.trackExercise,
		"set":            r.logSet,
		"date":           r.selectDate,
		"endsession":     r.endSession,
		"history":        r.history,

		"mealtrack": r.mealTrack,
		"addmeal":   r.addMeal,

		"gymstatus": r.gymStatus,
		"traffic":   r.traffic,

		"coach": r.suggestWorkout,
	}

	return r
}

// Handle runs one piece of input against the device's state. Input starting
// with "/" is a command; anything else continues the current conversation.
// During a password step every input except /cancel is the password.
func (r *Router) Handle(ctx context.Context, deviceID int64, input string) Reply {
	d := r.device(deviceID)
	d.mu.Lock()
	defer d.mu.Unlock()

	input = strings.TrimSpace(input)
	passwordStep := d.state == StateRegisterPassword || d.state == StateLoginPassword

	command, args := "text", input
	var h handler = r.text
	// A password may start with "/"; only /cancel leaves the password step.
	if name, rest := splitCommand(input); strings.HasPrefix(input, "/") && (!passwordStep || name == "cancel") {
		command, args = name, rest
		var ok bool
		if h, ok = r.commands[command]; !ok {
			command, h = "unknown", r.unknown
		}
		if command != "cancel" && d.state != StateIdle {
			d.resetForm()
		}
	}

	sensitive := command == "text" && passwordStep

	start := time.Now()
	reply, err := h(ctx, d, args)
	metrics.ObserveCommand(command, time.Since(start), err)

	if err != nil {
		kind := apperrors.KindOf(err)
		if kind == apperrors.KindInternal {
			r.logger.Error("Command failed", "command", command, "device_id", deviceID, "error", err)
		} else {
			r.logger.Info("Command rejected", "command", command, "device_id", deviceID, "kind", kind, "error", err)
		}
		return Reply{Text: apperrors.UserMessage(err), DeleteInput: sensitive}
	}

	r.logger.Debug("Handled command", "command", command, "device_id", deviceID)
	reply.DeleteInput = sensitive
	return reply
}

// splitCommand parses "/cmd@bot rest of line".
func splitCommand(input string) (string, string) {
	name, args, _ := strings.Cut(strings.TrimPrefix(input, "/"), " ")
	name, _, _ = strings.Cut(name, "@")
	return strings.ToLower(name), strings.TrimSpace(args)
}

// splitArgs splits "a | b | c" into trimmed fields.
func splitArgs(args string, n int) []string {
	parts := strings.SplitN(args, "|", n)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	for len(parts) < n {
		parts = append(parts, "")
	}
	return parts
}

func (r *Router) home(_ context.Context, _ *Device, _ string) (Reply, error) {
	return Reply{
		Text: "Welcome to Gym Buddy! Pick a screen.",
		Buttons: [][]Button{
			{{Label: "Login", Command: "/login"}, {Label: "Register", Command: "/register"}},
			{{Label: "Workout Planner", Command: "/workoutplanner"}, {Label: "Workout Tracker", Command: "/workouttracker"}},
			{{Label: "Find a Buddy", Command: "/findabuddy"}, {Label: "Chat", Command: "/chat"}},
			{{Label: "Goals", Command: "/goals"}, {Label: "Gym Status", Command: "/gymstatus"}},
			{{Label: "Meal Tracker", Command: "/mealtrack"}},
		},
	}, nil
}

const helpText = `Account: /register, /login, /logout, /whoami, /deleteaccount
Buddies: /findabuddy, /swipe left|right, /matches, /chat <id>, /thread, /leavechat
Goals: /goals, /complete <id>, /leaderboard
Planner: /plan <day>, /addexercise <day> | <exercise> | <sets> | <reps>, /muscle <group>, /addplanned <exercise>, /remove <id>, /saveplan <name>, /plans
Tracker: /workouttracker, /routine <plan id>, /track <exercise>, /set <reps> [weight], /date <yyyy-mm-dd>, /endsession, /history [date]
Meals: /mealtrack [date], /addmeal <type> | <food> | <calories> | <protein>
Gym: /gymstatus, /traffic [weekday], /coach <muscle group>`

func (r *Router) help(_ context.Context, _ *Device, _ string) (Reply, error) {
	return Reply{Text: helpText}, nil
}

func (r *Router) unknown(_ context.Context, _ *Device, _ string) (Reply, error) {
	return Reply{Text: "Unknown command. Send /help to see what I can do."}, nil
}

// text continues a form or, inside a chat, sends a message to the buddy.
func (r *Router) text(ctx context.Context, d *Device, input string) (Reply, error) {
	switch d.state {
	case StateRegisterEmail, StateRegisterName, StateRegisterPassword:
		return r.registerStep(ctx, d, input)
	case StateLoginEmail, StateLoginPassword:
		return r.loginStep(ctx, d, input)
	}
	if d.chatWith != "" {
		return r.sendMessage(d, input)
	}
	return Reply{Text: "Send /help to see what I can do."}, nil
}
