package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gym-buddy-bot/internal/gymstatus"
	"gym-buddy-bot/internal/metrics"
	"gym-buddy-bot/internal/workout"
	"gym-buddy-bot/pkg/logger"
)

type Server struct {
	server *http.Server
	logger *logger.Logger

	mu  sync.Mutex
	gym *gymstatus.Generator
}

func NewServer(port string, gym *gymstatus.Generator, logger *logger.Logger) *Server {
	s := &Server{
		logger: logger.Named("http"),
		gym:    gym,
	}

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	s.server = httpServer

	return s
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.metricsMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/api/gym/status", s.gymStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/gym/traffic/{weekday}", s.gymTraffic).Methods(http.MethodGet)

	return r
}

type statusResponse struct {
	Status      string    `json:"status"`
	LastUpdated time.Time `json:"last_updated"`
}

type trafficResponse struct {
	Weekday string       `json:"weekday"`
	Hours   []hourlyLoad `json:"hours"`
}

type hourlyLoad struct {
	Hour string `json:"hour"`
	Load int    `json:"load"`
}

func (s *Server) gymStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	level := s.gym.CurrentStatus()
	updated := s.gym.LastUpdated()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, statusResponse{Status: level.String(), LastUpdated: updated})
}

func (s *Server) gymTraffic(w http.ResponseWriter, r *http.Request) {
	day, err := workout.ParseDay(mux.Vars(r)["weekday"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var weekday time.Weekday
	for _, wd := range workout.Weekdays {
		if wd.String() == day {
			weekday = wd
		}
	}

	s.mu.Lock()
	chart := s.gym.HourlyTraffic(weekday)
	s.mu.Unlock()

	resp := trafficResponse{Weekday: chart.Weekday.String()}
	for _, h := range chart.Hours {
		resp.Hours = append(resp.Hours, hourlyLoad{Hour: h.Label(), Load: h.Load})
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware counts requests by route template to keep label
// cardinality bounded.
func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				path = tpl
			}
		}
		metrics.ObserveHTTP(r.Method, path, strconv.Itoa(rec.status))
	})
}

func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	return s.server.Shutdown(ctx)
}
