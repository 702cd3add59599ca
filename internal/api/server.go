// Package api provides the HTTP server for the Murim engine. A local
// frontend talks to it over JSON; every game operation is exposed as a
// REST endpoint.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Puneet-Ratnu/murim/internal/app/forge"
	"github.com/Puneet-Ratnu/murim/internal/app/mentor"
	"github.com/Puneet-Ratnu/murim/internal/app/notify"
	"github.com/Puneet-Ratnu/murim/internal/app/pets"
	"github.com/Puneet-Ratnu/murim/internal/app/potion"
	"github.com/Puneet-Ratnu/murim/internal/app/progression"
	"github.com/Puneet-Ratnu/murim/internal/app/revision"
	"github.com/Puneet-Ratnu/murim/internal/app/shop"
	"github.com/Puneet-Ratnu/murim/internal/app/tasks"
	"github.com/Puneet-Ratnu/murim/internal/health"
	"github.com/Puneet-Ratnu/murim/internal/infra/narrative"
)

// Server is the Murim HTTP API server.
type Server struct {
	ledger     *progression.Ledger
	streak     *progression.StreakService
	dispatcher *progression.Dispatcher
	tasks      *tasks.Service
	revision   *revision.Service
	forge      *forge.Service
	pets       *pets.Service
	shop       *shop.Service
	potion     *potion.Tracker
	mentor     *mentor.Service
	narrative  *narrative.Client
	notify     *notify.Service
	health     *health.Checker

	corsOrigins    []string
	metricsEnabled bool
}

// NewServer creates a new API server with all services wired.
func NewServer(
	ledger *progression.Ledger,
	streak *progression.StreakService,
	dispatcher *progression.Dispatcher,
	taskSvc *tasks.Service,
	revisionSvc *revision.Service,
	forgeSvc *forge.Service,
	petSvc *pets.Service,
	shopSvc *shop.Service,
	potionTracker *potion.Tracker,
	mentorSvc *mentor.Service,
	narrativeClient *narrative.Client,
	notifySvc *notify.Service,
	healthChecker *health.Checker,
	corsOrigins []string,
) *Server {
	return &Server{
		ledger:      ledger,
		streak:      streak,
		dispatcher:  dispatcher,
		tasks:       taskSvc,
		revision:    revisionSvc,
		forge:       forgeSvc,
		pets:        petSvc,
		shop:        shopSvc,
		potion:      potionTracker,
		mentor:      mentorSvc,
		narrative:   narrativeClient,
		notify:      notifySvc,
		health:      healthChecker,
		corsOrigins: corsOrigins,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(s.corsMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/progress", s.handleProgress)
		r.Post("/session", s.handleSession)
		r.Post("/mastery", s.handleToggleMastery)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", s.handleListTasks)
			r.Post("/", s.handleCreateTask)
			r.Get("/{id}", s.handleGetTask)
			r.Post("/{id}/complete", s.handleCompleteTask)
			r.Post("/{id}/uncomplete", s.handleUncompleteTask)
			r.Delete("/{id}", s.handleDeleteTask)
		})

		r.Route("/revision", func(r chi.Router) {
			r.Get("/due", s.handleRevisionDue)
			r.Post("/{id}/checkin", s.handleRevisionCheckIn)
		})

		r.Route("/forge", func(r chi.Router) {
			r.Get("/materials", s.handleMaterials)
			r.Get("/items", s.handleItems)
			r.Post("/craft", s.handleForge)
			r.Post("/ascend", s.handleAscend)
		})

		r.Route("/pets", func(r chi.Router) {
			r.Get("/", s.handleListPets)
			r.Post("/", s.handleAdoptPet)
			r.Get("/active", s.handleActivePet)
			r.Post("/{id}/activate", s.handleActivatePet)
			r.Post("/{id}/feed", s.handleFeedPet)
		})

		r.Route("/shop", func(r chi.Router) {
			r.Post("/potion", s.handleBuyPotion)
			r.Post("/food", s.handleBuyFood)
			r.Post("/accessory", s.handleBuyAccessory)
		})

		r.Post("/essay", s.handleEssay)
		r.Post("/mains", s.handleMains)
		r.Post("/hobby", s.handleHobby)
		r.Get("/potion", s.handleActivePotion)

		r.Route("/boss", func(r chi.Router) {
			r.Get("/quest", s.handleBossQuest)
			r.Post("/submit", s.handleBossSubmit)
		})

		r.Route("/mentor", func(r chi.Router) {
			r.Post("/chat", s.handleMentorChat)
			r.Get("/history", s.handleMentorHistory)
			r.Post("/mood", s.handleMood)
		})

		r.Route("/story", func(r chi.Router) {
			r.Get("/chapter", s.handleStoryChapter)
			r.Get("/quote", s.handleQuote)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", s.handleNotifications)
			r.Post("/{id}/shown", s.handleNotificationShown)
		})
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for the local frontend.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	origin := "*"
	if len(s.corsOrigins) > 0 {
		origin = s.corsOrigins[0]
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
