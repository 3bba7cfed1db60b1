package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"casalimpia/internal/handler"
	"casalimpia/internal/middleware"
	"casalimpia/internal/store"
	ws "casalimpia/internal/websocket"
)

type Config struct {
	// AdminPINHash is a bcrypt hash guarding the destructive endpoints.
	// Empty leaves them open.
	AdminPINHash string
}

type Server struct {
	db          *sql.DB
	cfg         Config
	hub         *ws.Hub
	scheduleH   *handler.ScheduleHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, cfg Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))
	scheduleStore := store.NewScheduleStore(db)

	return &Server{
		db:          db,
		cfg:         cfg,
		hub:         hub,
		scheduleH:   handler.NewScheduleHandler(scheduleStore, hub, logger.With("component", "schedule")),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for periodic cleanup.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/{$}", s.scheduleH.Root)
	mux.HandleFunc("GET /api/current-week", s.scheduleH.CurrentWeek)
	mux.HandleFunc("POST /api/complete-task", s.scheduleH.CompleteTask)
	mux.HandleFunc("GET /api/schedules", s.scheduleH.List)

	// The destructive operations sit behind the optional PIN gate and a
	// per-IP rate limit.
	pinGate := middleware.RequirePIN(s.cfg.AdminPINHash)
	mux.Handle("POST /api/generate-schedules", s.rateLimited(pinGate(http.HandlerFunc(s.scheduleH.Generate))))
	mux.Handle("DELETE /api/schedules", s.rateLimited(pinGate(http.HandlerFunc(s.scheduleH.DeleteAll))))

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /ws", ws.Handle(s.hub, s.logger.With("component", "websocket")))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimited(h http.Handler) http.Handler {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	return middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)(h)
}
