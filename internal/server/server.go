// Package server exposes the duct calculators over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"Ducted/internal/calc/air"
	"Ducted/internal/calc/batch"
	"Ducted/internal/calc/fitting"
	"Ducted/internal/calc/importer"
	"Ducted/internal/calc/sizing"
	"Ducted/internal/calc/system"
	"Ducted/internal/calc/velocity"
	"Ducted/internal/httpjson"
	"Ducted/internal/standards"
)

const ShutdownTimeout = 5 * time.Second

type Options struct {
	Limits    *standards.Limits
	Logger    *log.Logger
	RateLimit float64
	RateBurst int
}

// NewHandler wires every calculator to its route. All calculators share
// the one standards table in opts.
func NewHandler(opts Options) http.Handler {
	limits := opts.Limits
	if limits == nil {
		limits = standards.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	sizer := sizing.New(limits)
	fittings := fitting.New(limits)
	aggregator := system.New(limits)

	airH := &air.Handler{Logger: logger}
	velocityH := &velocity.Handler{Logger: logger}
	sizingH := &sizing.Handler{Sizer: sizer, Logger: logger}
	batchH := &batch.Handler{Sizer: sizer, Logger: logger}
	fittingH := &fitting.Handler{Fittings: fittings, Logger: logger}
	systemH := &system.Handler{Aggregator: aggregator, Logger: logger}
	importH := &importer.Handler{Aggregator: aggregator, Logger: logger}

	m := newMetrics()
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	r.Use(recordRoute)
	r.Handle("/metrics", m.handler()).Methods("GET")
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httpjson.OK(w, map[string]string{"status": "ok", "standards_version": limits.Version()})
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.NotFoundHandler = r.NotFoundHandler
	api.MethodNotAllowedHandler = r.MethodNotAllowedHandler
	if opts.RateLimit > 0 {
		api.Use(NewIPRateLimiter(rate.Limit(opts.RateLimit), opts.RateBurst).LimitMiddleware)
	}

	api.HandleFunc("/air", airH.Calc).Methods("POST")
	api.HandleFunc("/velocity-pressure", velocityH.Calc).Methods("POST")
	api.HandleFunc("/size", sizingH.Calc).Methods("POST")
	api.HandleFunc("/size/batch", batchH.Size).Methods("POST")
	api.HandleFunc("/fitting", fittingH.Calc).Methods("POST")
	api.HandleFunc("/fittings", fittingH.List).Methods("GET")
	api.HandleFunc("/system", systemH.Calc).Methods("POST")
	api.HandleFunc("/system/import", importH.System).Methods("POST")
	api.HandleFunc("/standards", func(w http.ResponseWriter, r *http.Request) {
		httpjson.OK(w, limits.Spec())
	}).Methods("GET")

	return requestLogger(logger)(CORS(m.middleware(r)))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	httpjson.Error(w, http.StatusNotFound, "not_found", "no route for "+r.URL.Path)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	httpjson.Error(w, http.StatusMethodNotAllowed, "method_not_allowed", r.Method+" is not allowed on "+r.URL.Path)
}

// Run serves until ctx is cancelled, then drains connections for up to
// ShutdownTimeout. TLS is used when both certFile and keyFile are set.
func Run(ctx context.Context, srv *http.Server, certFile, keyFile string, logger *log.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		var err error
		if certFile != "" && keyFile != "" {
			logger.Info("listening", "addr", srv.Addr, "tls", true)
			err = srv.ListenAndServeTLS(certFile, keyFile)
		} else {
			logger.Info("listening", "addr", srv.Addr)
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, closing active connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return <-errCh
}
