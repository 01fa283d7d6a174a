package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/julienschmidt/httprouter"

	"photobox/pkg/config"
	"photobox/pkg/contracts"
	httputil "photobox/pkg/http"
	"photobox/pkg/middleware"
	"photobox/pkg/store"
)

// Application owns the HTTP server and the store watcher and ties their
// lifecycles to process signals.
type Application struct {
	cfg     *config.Config
	server  *http.Server
	watcher *store.Watcher
	closers []func() error
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

// SetWatcher registers the store watcher so Run starts and stops it with
// the server.
func (a *Application) SetWatcher(w *store.Watcher) {
	a.watcher = w
}

// AddCloser registers a resource closed during graceful shutdown, e.g. an
// event publisher.
func (a *Application) AddCloser(close func() error) {
	a.closers = append(a.closers, close)
}

// SetApp builds the router from the given handlers and wraps it in the
// middleware stack.
func (a *Application) SetApp(st *store.Store, handlers ...contracts.Handler) {
	router := httprouter.New()
	for _, h := range handlers {
		h.RegisterRoutes(router)
	}
	registerHealth(router, st)

	var h http.Handler = router
	h = middleware.ContentTypeValidation(a.cfg.Log)(h)
	h = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(h)
	h = middleware.RequestLogging(a.cfg.Log)(h)
	h = middleware.Recovery(a.cfg.Log)(h)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      h,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

func registerHealth(router *httprouter.Router, st *store.Store) {
	router.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		_ = httputil.WriteSuccess(w, map[string]string{
			"status":   "ok",
			"revision": st.Revision(),
		})
	})
}

func (a *Application) Run() {
	if a.watcher != nil {
		if err := a.watcher.Start(); err != nil {
			a.cfg.Log.Fatal("Failed to start store watcher", "error", err)
		}
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.cfg.Log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	if a.watcher != nil {
		a.watcher.Stop()
	}
	for _, close := range a.closers {
		if err := close(); err != nil {
			a.cfg.Log.Error("Failed to close resource", "error", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	a.cfg.Log.Info("Server stopped gracefully")
}
