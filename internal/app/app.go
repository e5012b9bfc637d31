package app

import (
	"context"
	"net/http"
	"time"

	"github.com/digitalive/digitalive/internal/config"
	"github.com/digitalive/digitalive/internal/database"
	"github.com/digitalive/digitalive/internal/rollover"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, database, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	router *mux.Router
	srv    *http.Server
	poller *rollover.Poller
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	// DB + migrations
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	// db will be closed when server shuts down; defer not possible here, leave to process exit.
	if err := database.Migrate(cfg.Database); err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	// Build dependencies (services, handlers...)
	deps, err := BuildDependencies(db, cfg)
	if err != nil {
		return nil, err
	}

	// Middleware chain
	SetupMiddleware(r, deps, cfg)

	// Routes
	RegisterRoutes(r, deps, cfg)

	poller := rollover.NewPoller(deps.EventBus, deps.Clock, time.Duration(cfg.Rollover.CheckHours)*time.Hour)

	srv := &http.Server{
		Handler:      r,
		Addr:         ":8181",
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, router: r, srv: srv, poller: poller}, nil
}

// Run starts the rollover poller and the HTTP server and blocks.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.poller.Start(ctx)

	log.Infof("Starting server on %s", a.srv.Addr)
	return a.srv.ListenAndServe()
}
