package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"routekit/internal/health"
	"routekit/internal/inspect"
	"routekit/pkg/config"
	"routekit/pkg/middleware"
	"routekit/pkg/router"
	"syscall"

	"github.com/julienschmidt/httprouter"
)

type Application struct {
	cfg           *config.Config
	server        *http.Server
	registry      *router.Registry
	healthHandler *health.Handler
	handler       http.Handler
}

// NewApplication registers every controller and builds the HTTP server.
// Route registration errors are returned as a single aggregated error.
func NewApplication(cfg *config.Config) (*Application, error) {
	a := &Application{cfg: cfg}

	if err := a.setAppHandler(); err != nil {
		return nil, err
	}
	healthHTTPHandler, err := a.setHealthHandler()
	if err != nil {
		return nil, err
	}
	a.setAppServer(healthHTTPHandler)
	a.healthHandler.SetReady(true)
	return a, nil
}

func (a *Application) setHealthHandler() (http.Handler, error) {
	healthRegistry := router.New(httprouter.New(), router.WithLogger(a.cfg.Log))
	a.healthHandler = health.NewHandler(a.registry, a.cfg.Log)
	if err := healthRegistry.Register(a.healthHandler); err != nil {
		return nil, fmt.Errorf("register health routes: %w", err)
	}

	var healthHTTPHandler http.Handler = healthRegistry
	healthHTTPHandler = middleware.RequestLogging(a.cfg.Log)(healthHTTPHandler)
	healthHTTPHandler = middleware.Recovery(a.cfg.Log)(healthHTTPHandler)
	a.cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging only)")
	return healthHTTPHandler, nil
}

func (a *Application) setAppHandler() error {
	a.registry = router.New(httprouter.New(),
		router.WithGlobalPrefix(a.cfg.GlobalPrefix),
		router.WithLogger(a.cfg.Log),
	)
	if err := a.registry.Register(inspect.NewHandler(a.registry, a.cfg.Log)); err != nil {
		return fmt.Errorf("register application routes: %w", err)
	}

	// CanonicalPath (outside the mux) → Recovery → Logging → MaxSize → ContentType → Timeout → Router
	var appHTTPHandler http.Handler = a.registry
	appHTTPHandler = middleware.RequestTimeout(a.cfg.RequestTimeout)(appHTTPHandler)
	appHTTPHandler = middleware.ContentTypeValidation(a.cfg.Log)(appHTTPHandler)
	appHTTPHandler = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(appHTTPHandler)
	appHTTPHandler = middleware.RequestLogging(a.cfg.Log)(appHTTPHandler)
	appHTTPHandler = middleware.Recovery(a.cfg.Log)(appHTTPHandler)

	a.cfg.Log.Info("Application endpoints configured",
		"global_prefix", a.registry.Prefix(),
		"routes", len(a.registry.Routes()),
	)
	a.handler = appHTTPHandler
	return nil
}

func (a *Application) setAppServer(healthHTTPHandler http.Handler) {
	mux := http.NewServeMux()
	mux.Handle("/health", healthHTTPHandler)
	mux.Handle("/ready", healthHTTPHandler)
	mux.Handle("/", a.handler)

	// ServeMux answers non-clean paths with its own 301, so canonicalization
	// has to run before it.
	a.server = &http.Server{
		Addr:         a.cfg.Addr(),
		Handler:      middleware.CanonicalPath()(mux),
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

func (a *Application) Handler() http.Handler {
	return a.server.Handler
}

func (a *Application) Routes() []router.RouteInfo {
	return a.registry.Routes()
}

// Run serves until ctx is cancelled, SIGINT or SIGTERM arrives, or the
// server fails.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
		a.cfg.Log.Info("Shutdown signal received", "cause", context.Cause(ctx))
		return a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() error {
	a.cfg.Log.Info("Starting graceful shutdown...")
	a.healthHandler.SetReady(false)

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if closeErr := a.server.Close(); closeErr != nil {
			return fmt.Errorf("could not stop server gracefully: %w", closeErr)
		}
	}

	a.cfg.Log.Info("Server stopped gracefully")
	return nil
}
