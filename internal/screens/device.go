package screens

import (
	"fmt"
	"sync"

	"gym-buddy-bot/internal/buddy"
	"gym-buddy-bot/internal/db"
	"gym-buddy-bot/internal/goals"
	"gym-buddy-bot/internal/gymstatus"
	"gym-buddy-bot/internal/meals"
	"gym-buddy-bot/internal/session"
	"gym-buddy-bot/internal/workout"
)

// Conversation states for the account flows.
const (
	StateIdle             = ""
	StateRegisterEmail    = "register_email"
	StateRegisterName     = "register_name"
	StateRegisterPassword = "register_password"
	StateLoginEmail       = "login_email"
	StateLoginPassword    = "login_password"
)

// Device is the state of every screen for one chat. Each chat behaves like
// its own phone: its own session, its own meal log and its own mock data.
type Device struct {
	mu sync.Mutex

	ID      int64
	Session *session.Manager
	Matcher *buddy.Matcher
	Chat    *buddy.Chat
	Board   *goals.Board
	Planner *workout.Planner
	Tracker *workout.Tracker
	Meals   *meals.Log
	Gym     *gymstatus.Generator

	state     string
	formEmail string
	formName  string

	chatWith    string
	plannerDay  string
	trackerDate string
	mealDate    string
}

func (r *Router) newDevice(id int64) *Device {
	store := db.Namespace(r.store, fmt.Sprintf("chat:%d:", id))
	matcher := buddy.NewMatcher(buddy.DefaultCandidates())

	gymOpts := []gymstatus.Option{gymstatus.WithClock(r.now)}
	if r.gymRand != nil {
		gymOpts = append(gymOpts, gymstatus.WithRand(r.gymRand()))
	}

	return &Device{
		ID:         id,
		Session:    session.NewManager(store, r.emailSuffix, r.sessionOpts...),
		Matcher:    matcher,
		Chat:       buddy.NewChat(matcher),
		Board:      goals.NewDefaultBoard(),
		Planner:    workout.NewPlanner(workout.DefaultPlans()),
		Tracker:    workout.NewTracker(),
		Meals:      meals.NewLog(store),
		Gym:        gymstatus.NewGenerator(gymOpts...),
		plannerDay: "Monday",
	}
}

// device returns the state for id, creating it on first use.
func (r *Router) device(id int64) *Device {
	r.mu.RLock()
	d, ok := r.devices[id]
	r.mu.RUnlock()
	if ok {
		return d
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.devices[id]; ok {
		return d
	}
	d = r.newDevice(id)
	r.devices[id] = d
	return d
}

// Devices returns how many chats have state in memory.
func (r *Router) Devices() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices)
}

func (d *Device) resetForm() {
	d.state = StateIdle
	d.formEmail = ""
	d.formName = ""
}
