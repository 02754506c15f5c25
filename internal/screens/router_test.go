package screens

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gym-buddy-bot/internal/db"
	"gym-buddy-bot/internal/session"
	"gym-buddy-bot/pkg/logger"
)

var testNow = time.Date(2025, 3, 14, 17, 30, 0, 0, time.UTC)

type fakeCoach struct {
	group     string
	exercises []string
	err       error
}

func (f *fakeCoach) SuggestWorkout(_ context.Context, group string, exercises []string) (string, error) {
	f.group, f.exercises = group, exercises
	if f.err != nil {
		return "", f.err
	}
	return "Do " + strings.Join(exercises, " then "), nil
}

func newTestRouter(t *testing.T, opts ...Option) (*Router, *db.MemoryStore) {
	t.Helper()
	store := db.NewMemoryStore()
	opts = append([]Option{
		WithClock(func() time.Time { return testNow }),
		WithSessionOptions(session.WithHashCost(bcrypt.MinCost)),
		WithGymRand(func() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }),
	}, opts...)
	return NewRouter(store, "@queensu.ca", logger.NewNop(), opts...), store
}

// run sends every input in order and returns the last reply.
func run(r *Router, device int64, inputs ...string) Reply {
	var reply Reply
	for _, in := range inputs {
		reply = r.Handle(context.Background(), device, in)
	}
	return reply
}

func commands(reply Reply) []string {
	var out []string
	for _, row := range reply.Buttons {
		for _, b := range row {
			out = append(out, b.Command)
		}
	}
	return out
}

func TestSplitCommand(t *testing.T) {
	name, args := splitCommand("/Swipe@GymBuddyBot  right ")
	assert.Equal(t, "swipe", name)
	assert.Equal(t, "right", args)

	name, args = splitCommand("/goals")
	assert.Equal(t, "goals", name)
	assert.Empty(t, args)
}

func TestSplitArgs(t *testing.T) {
	assert.Equal(t, []string{"Lunch", "Chicken wrap", "500", ""}, splitArgs("Lunch | Chicken wrap |500", 4))
}

func TestHomeListsScreens(t *testing.T) {
	r, _ := newTestRouter(t)
	reply := run(r, 1, "/start")
	assert.Subset(t, commands(reply), []string{
		"/login", "/register", "/workoutplanner", "/workouttracker",
		"/findabuddy", "/chat", "/goals", "/gymstatus", "/mealtrack",
	})

	assert.Contains(t, run(r, 1, "/nope").Text, "Unknown command")
	assert.Contains(t, run(r, 1, "hello").Text, "/help")
}

func TestRegisterConversation(t *testing.T) {
	r, store := newTestRouter(t)

	assert.Contains(t, run(r, 1, "/register").Text, "@queensu.ca")
	run(r, 1, "pat@queensu.ca", "Pat")
	reply := run(r, 1, "secret1")
	assert.Equal(t, "Account created. Welcome, Pat!", reply.Text)
	assert.True(t, reply.DeleteInput)

	assert.Equal(t, "Logged in as Pat (pat@queensu.ca).", run(r, 1, "/whoami").Text)
	assert.Contains(t, run(r, 1, "/leaderboard").Text, "Pat: 0")

	_, err := store.Get(context.Background(), "chat:1:pat@queensu.ca")
	assert.NoError(t, err)

	// another chat is another device
	assert.Contains(t, run(r, 2, "/whoami").Text, "not logged in")
}

func TestRegisterRejectsOtherDomains(t *testing.T) {
	r, store := newTestRouter(t)

	reply := run(r, 1, "/register", "pat@gmail.com", "Pat", "secret1")
	assert.Equal(t, "You must use a valid @queensu.ca email address.", reply.Text)
	assert.True(t, reply.DeleteInput)
	assert.Zero(t, store.Len())

	// the form is over; plain text no longer feeds it
	assert.Contains(t, run(r, 1, "secret1").Text, "/help")
}

func TestLoginConversation(t *testing.T) {
	r, _ := newTestRouter(t)
	run(r, 1, "/register", "pat@queensu.ca", "Pat", "secret1")
	assert.Equal(t, "Logged out.", run(r, 1, "/logout").Text)
	assert.Contains(t, run(r, 1, "/leaderboard").Text, "You: 0")

	assert.Equal(t, "Incorrect password. Try again.", run(r, 1, "/login", "pat@queensu.ca", "nope123").Text)
	assert.Equal(t, "User not found. Please register.", run(r, 1, "/login", "sam@queensu.ca", "secret1").Text)

	reply := run(r, 1, "/login", "pat@queensu.ca", "secret1")
	assert.Equal(t, "Welcome back, Pat!", reply.Text)
	assert.True(t, reply.DeleteInput)

	assert.Equal(t, "Your account has been deleted.", run(r, 1, "/deleteaccount").Text)
	assert.Contains(t, run(r, 1, "/deleteaccount").Text, "not logged in")
}

func TestCommandAbandonsForm(t *testing.T) {
	r, _ := newTestRouter(t)
	run(r, 1, "/login", "pat@queensu.ca")
	run(r, 1, "/goals")
	assert.Contains(t, run(r, 1, "secret1").Text, "/help")

	run(r, 1, "/register")
	assert.Equal(t, "Cancelled.", run(r, 1, "/cancel").Text)
}

func TestBuddyFlowAndChat(t *testing.T) {
	r, _ := newTestRouter(t)

	reply := run(r, 1, "/findabuddy")
	assert.Contains(t, reply.Text, "Alex")
	assert.Equal(t, []string{"/swipe left", "/swipe right"}, commands(reply))

	reply = run(r, 1, "/swipe right")
	assert.Contains(t, reply.Text, "You matched with Alex")
	assert.Contains(t, reply.Text, "Jamie")

	run(r, 1, "/swipe left", "/swipe right")
	reply = run(r, 1, "/swipe left")
	assert.Contains(t, reply.Text, "That was everyone.")
	assert.Equal(t, []string{"/chat 1", "/chat 3"}, commands(reply))

	assert.Equal(t, "No more buddies to decide on.", run(r, 1, "/swipe right").Text)
	assert.Equal(t, "Swipe left or right.", run(r, 1, "/swipe up").Text)

	assert.Equal(t, "You have not matched with that buddy.", run(r, 1, "/chat 2").Text)
	assert.Contains(t, run(r, 1, "/chat 3").Text, "Chatting with Taylor")
	assert.Equal(t, "You: leg day?", run(r, 1, "leg day?").Text)
	assert.Equal(t, "You: leg day?\nYou: 6pm", run(r, 1, "6pm").Text)

	run(r, 1, "/leavechat")
	assert.Equal(t, "Open a chat first with /chat.", run(r, 1, "/thread").Text)
	assert.Contains(t, run(r, 1, "/chat 3").Text, "You: 6pm")

	assert.Equal(t, "No matches yet.", run(r, 2, "/matches").Text)
}

func TestGoalsScreen(t *testing.T) {
	r, _ := newTestRouter(t)

	reply := run(r, 1, "/goals")
	assert.Contains(t, commands(reply), "/complete 3")

	assert.Equal(t, "You earned 20 points! Total: 20.", run(r, 1, "/complete 3").Text)
	assert.Equal(t, "You earned 10 points! Total: 30.", run(r, 1, "/complete 1").Text)
	assert.Equal(t, "Goal already completed.", run(r, 1, "/complete 3").Text)
	assert.Equal(t, "That goal does not exist.", run(r, 1, "/complete 9").Text)

	reply = run(r, 1, "/goals")
	assert.NotContains(t, commands(reply), "/complete 3")
	assert.Contains(t, reply.Text, "Your points: 30")
}

func TestPlannerScreen(t *testing.T) {
	r, _ := newTestRouter(t)

	reply := run(r, 1, "/plan tuesday")
	assert.Contains(t, reply.Text, "Tuesday")
	assert.Contains(t, commands(reply), "/muscle Legs")

	reply = run(r, 1, "/muscle legs")
	assert.Equal(t, []string{"/addplanned Squats", "/addplanned Lunges", "/addplanned Leg Press"}, commands(reply))

	assert.Equal(t, "Added Squats to Tuesday.", run(r, 1, "/addplanned Squats").Text)
	assert.Equal(t, "Exercise already added for this day.", run(r, 1, "/addplanned Squats").Text)
	assert.Equal(t, "Added Lunges to Tuesday.", run(r, 1, "/addexercise tue | Lunges | 3 | 12").Text)
	assert.Equal(t, "Sets must be a positive number.", run(r, 1, "/addexercise tue | Lunges | x | 12").Text)

	assert.Equal(t, "Enter a name for the workout.", run(r, 1, "/saveplan").Text)
	assert.Equal(t, `Saved "Leg Day".`, run(r, 1, "/saveplan Leg Day").Text)
	assert.Contains(t, run(r, 1, "/plans").Text, "Leg Day: Squats, Lunges")

	assert.Equal(t, "Add at least one exercise before saving.", run(r, 1, "/plan friday", "/saveplan Empty").Text)
	assert.Equal(t, "Pick a day of the week.", run(r, 1, "/plan someday").Text)
}

func TestTrackerScreen(t *testing.T) {
	r, _ := newTestRouter(t)

	reply := run(r, 1, "/workouttracker")
	assert.Contains(t, reply.Text, "not selected")
	assert.Contains(t, commands(reply), "/date 2025-03-14")

	assert.Equal(t, "Select a Date", run(r, 1, "/endsession").Text)
	run(r, 1, "/date 2025-03-14")
	assert.Equal(t, "No Workout Logged", run(r, 1, "/endsession").Text)
	assert.Equal(t, "Pick an exercise first.", run(r, 1, "/set 10").Text)

	reply = run(r, 1, "/routine 1")
	assert.Equal(t, []string{"/track Squats", "/track Push-ups", "/track Pull-ups"}, commands(reply))

	run(r, 1, "/track Squats")
	assert.Equal(t, "Enter reps", run(r, 1, "/set").Text)
	run(r, 1, "/set 10 100kg", "/track Push-ups", "/set 20", "/track Squats", "/set 8 110kg")

	reply = run(r, 1, "/endsession")
	assert.Equal(t, "Workout saved!\n📅 2025-03-14\nSquats\n  Set 1: 10 reps @ 100kg\n  Set 2: 8 reps @ 110kg\nPush-ups\n  Set 1: 20 reps", reply.Text)

	assert.Equal(t, []string{"/history 2025-03-14"}, commands(run(r, 1, "/history")))
	assert.Contains(t, run(r, 1, "/history 2025-03-14").Text, "Push-ups")
	assert.Equal(t, "Dates look like 2025-03-14.", run(r, 1, "/date tomorrow").Text)
}

func TestMealScreen(t *testing.T) {
	r, store := newTestRouter(t)

	assert.Contains(t, run(r, 1, "/mealtrack").Text, "No meals logged.")

	reply := run(r, 1, "/addmeal lunch | Chicken wrap | 500 | 40")
	assert.Equal(t, "Logged Chicken wrap for Lunch. Today so far: 500 kcal, 40 g protein.", reply.Text)
	run(r, 1, "/addmeal Snack | Yogurt | 150 | 15")

	reply = run(r, 1, "/mealtrack")
	assert.Contains(t, reply.Text, "Meals for 2025-03-14")
	assert.Contains(t, reply.Text, "Total Calories: 650 kcal")
	assert.Contains(t, reply.Text, "Total Protein: 55 g")

	_, err := store.Get(context.Background(), "chat:1:meals")
	assert.NoError(t, err)

	assert.Equal(t, "Fill in the food, calories and protein.", run(r, 1, "/addmeal Dinner | | 100 | 5").Text)
	assert.Contains(t, run(r, 1, "/mealtrack 2025-03-13").Text, "Total Calories: 0 kcal")
}

func TestGymScreens(t *testing.T) {
	r, _ := newTestRouter(t)

	reply := run(r, 1, "/gymstatus")
	assert.Contains(t, reply.Text, "Last Updated: 5:30PM")
	assert.Contains(t, commands(reply), "/gymstatus")

	reply = run(r, 1, "/traffic saturday")
	lines := strings.Split(reply.Text, "\n")
	assert.Equal(t, "📊 Saturday traffic", lines[0])
	assert.Len(t, lines, 18)

	assert.Contains(t, run(r, 1, "/traffic").Text, "Friday")
}

func TestCoach(t *testing.T) {
	r, _ := newTestRouter(t)
	assert.Equal(t, "The AI coach is not configured.", run(r, 1, "/coach Arms").Text)

	coach := &fakeCoach{}
	r, _ = newTestRouter(t, WithCoach(coach))

	assert.Len(t, commands(run(r, 1, "/coach")), 5)
	assert.Equal(t, "Do Squats then Lunges then Leg Press", run(r, 1, "/coach legs").Text)
	assert.Equal(t, "legs", coach.group)

	coach.err = errors.New("timeout")
	assert.Equal(t, "An error occurred. Please try again.", run(r, 1, "/coach legs").Text)
}

func TestConcurrentDevices(t *testing.T) {
	r, _ := newTestRouter(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			run(r, id%5, "/complete 1", "/addmeal Lunch | Rice | 100 | 3", "/plan monday")
		}(int64(i))
	}
	wg.Wait()

	require.Equal(t, 5, r.Devices())
	for id := int64(0); id < 5; id++ {
		assert.Contains(t, run(r, id, "/goals").Text, "Your points: 10")
		assert.Contains(t, run(r, id, "/mealtrack").Text, "Total Calories: 400 kcal")
	}
}

func TestPasswordMayStartWithSlash(t *testing.T) {
	r, _ := newTestRouter(t)

	reply := run(r, 1, "/register", "pat@queensu.ca", "Pat", "/goals123")
	assert.Equal(t, "Account created. Welcome, Pat!", reply.Text)
	assert.True(t, reply.DeleteInput)

	run(r, 1, "/logout")
	assert.Equal(t, "Incorrect password. Try again.", run(r, 1, "/login", "pat@queensu.ca", "goals123").Text)

	reply = run(r, 1, "/login", "pat@queensu.ca", "/goals123")
	assert.Equal(t, "Welcome back, Pat!", reply.Text)
	assert.True(t, reply.DeleteInput)
}

func TestCancelDuringPasswordStep(t *testing.T) {
	r, store := newTestRouter(t)

	assert.Equal(t, "Cancelled.", run(r, 1, "/register", "pat@queensu.ca", "Pat", "/cancel").Text)
	assert.Zero(t, store.Len())
	assert.Contains(t, run(r, 1, "secret1").Text, "/help")
}

func TestGymStatusPerDeviceRand(t *testing.T) {
	r, _ := newTestRouter(t)
	const devices = 8

	status := make([]string, devices)
	var wg sync.WaitGroup
	for i := 0; i < devices; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			status[id] = run(r, int64(id), "/traffic monday", "/gymstatus").Text
		}(i)
	}
	wg.Wait()

	// every device draws from its own identically seeded source
	for id := 1; id < devices; id++ {
		assert.Equal(t, status[0], status[id])
	}
}
