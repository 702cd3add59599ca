package daemon

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Puneet-Ratnu/murim/internal/api"
	"github.com/Puneet-Ratnu/murim/internal/app/forge"
	"github.com/Puneet-Ratnu/murim/internal/app/mentor"
	"github.com/Puneet-Ratnu/murim/internal/app/notify"
	"github.com/Puneet-Ratnu/murim/internal/app/pets"
	"github.com/Puneet-Ratnu/murim/internal/app/potion"
	"github.com/Puneet-Ratnu/murim/internal/app/progression"
	"github.com/Puneet-Ratnu/murim/internal/app/revision"
	"github.com/Puneet-Ratnu/murim/internal/app/shop"
	"github.com/Puneet-Ratnu/murim/internal/app/tasks"
	"github.com/Puneet-Ratnu/murim/internal/domain"
	"github.com/Puneet-Ratnu/murim/internal/health"
	_ "github.com/Puneet-Ratnu/murim/internal/infra/metrics" // Register Prometheus metrics
	"github.com/Puneet-Ratnu/murim/internal/infra/narrative"
	"github.com/Puneet-Ratnu/murim/internal/infra/sqlite"
)

// Daemon is the core Murim runtime. It wires together all services.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Server *api.Server
	cancel context.CancelFunc

	Notify     *notify.Service
	Potion     *potion.Tracker
	Ledger     *progression.Ledger
	Streak     *progression.StreakService
	Dispatcher *progression.Dispatcher
	Tasks      *tasks.Service
	Revision   *revision.Service
	Forge      *forge.Service
	Pets       *pets.Service
	Shop       *shop.Service
	Mentor     *mentor.Service
	Narrative  *narrative.Client
	Health     *health.Checker
}

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	db, err := sqlite.Open(murimHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	d := &Daemon{Config: cfg, DB: db}

	d.Notify = notify.NewService(db)
	d.Potion = potion.NewTracker(d.Notify)
	d.Ledger = progression.NewLedger(db, d.Potion, d.Notify)
	d.Streak = progression.NewStreakService(db, d.Ledger, d.Notify)
	d.Pets = pets.NewService(db, d.Potion, d.Notify, cfg.Game.PetStageAtLeast)
	d.Dispatcher = progression.NewDispatcher(db, d.Ledger, d.Notify, d.Pets)
	d.Tasks = tasks.NewService(db, d.Dispatcher)
	d.Revision = revision.NewService(db, d.Ledger, d.Notify,
		rand.New(rand.NewSource(time.Now().UnixNano())))
	d.Forge = forge.NewService(db, d.Notify)
	d.Shop = shop.NewService(d.Ledger, d.Pets, d.Potion)
	d.Narrative = narrative.NewClient(cfg.Narrative.BaseURL, cfg.Narrative.APIKey,
		cfg.Narrative.Model, cfg.NarrativeTimeout())
	d.Mentor = mentor.NewService(db, d.Narrative, domain.MentorPersona(cfg.Game.MentorPersona))
	d.Health = health.NewChecker(db, 60*time.Second)

	srv := api.NewServer(d.Ledger, d.Streak, d.Dispatcher, d.Tasks, d.Revision,
		d.Forge, d.Pets, d.Shop, d.Potion, d.Mentor, d.Narrative, d.Notify, d.Health,
		cfg.API.CORSOrigins)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}
	d.Server = srv

	return d, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	go d.Health.Run(ctx)
	go d.Potion.Watch(ctx, d.Config.PotionPoll())

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("Murim serving on http://%s\n", addr)
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
