// Package gymstatus reports how busy the gym is. Both the live status and
// the hourly traffic chart are mock data.
package gymstatus

import (
	"fmt"
	"math/rand/v2"
	"time"
)

type Level int

const (
	Low Level = iota
	Moderate
	High
)

func (l Level) String() string {
	switch l {
	case Low:
		return "Not Busy"
	case Moderate:
		return "Moderate"
	case High:
		return "Busy"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

const (
	OpenHour  = 6
	CloseHour = 22

	peakStart = 2
	peakEnd   = 11
)

// HourlyLoad is one bar of the traffic chart, as a percentage of capacity.
type HourlyLoad struct {
	Hour int
	Load int
}

// Label renders the hour the way the chart axis does, e.g. "6AM" or "1PM".
func (h HourlyLoad) Label() string {
	return time.Date(0, 1, 1, h.Hour, 0, 0, 0, time.UTC).Format("3PM")
}

type Option func(*Generator)

// WithRand replaces the random source.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rand = r }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// Generator is not safe for concurrent use.
type Generator struct {
	rand        *rand.Rand
	now         func() time.Time
	lastUpdated time.Time
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rand: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CurrentStatus picks a level uniformly at random and stamps the time.
func (g *Generator) CurrentStatus() Level {
	g.lastUpdated = g.now()
	return Level(g.rand.IntN(3))
}

// LastUpdated is the time of the most recent CurrentStatus call, or the zero
// time if there was none.
func (g *Generator) LastUpdated() time.Time {
	return g.lastUpdated
}

// Chart is the traffic of one day.
type Chart struct {
	Weekday time.Weekday
	Hours   []HourlyLoad
}

// HourlyTraffic returns one load per open hour. Slots in the peak window are
// drawn from [60,100], the rest from [10,50]. Every call draws fresh numbers.
func (g *Generator) HourlyTraffic(weekday time.Weekday) Chart {
	chart := Chart{Weekday: weekday, Hours: make([]HourlyLoad, 0, CloseHour-OpenHour+1)}
	for i := 0; i <= CloseHour-OpenHour; i++ {
		load := 10 + g.rand.IntN(41)
		if i >= peakStart && i <= peakEnd {
			load = 60 + g.rand.IntN(41)
		}
		chart.Hours = append(chart.Hours, HourlyLoad{Hour: OpenHour + i, Load: load})
	}
	return chart
}
