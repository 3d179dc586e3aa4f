package router

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type HandlerFunc func(http.ResponseWriter, *http.Request)

// Router wraps a gorilla/mux router with request logging and graceful start/stop.
type Router struct {
	mux *mux.Router
	log *zap.Logger
}

func New(log *zap.Logger) *Router {
	if log == nil {
		log = zap.NewNop()
	}

	r := &Router{
		mux: mux.NewRouter(),
		log: log,
	}

	r.mux.NotFoundHandler = r.logRequests(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	}))
	r.mux.MethodNotAllowedHandler = r.logRequests(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}))
	r.mux.Use(r.logRequests)

	return r
}

// --- Register paths ---
func (r *Router) register(method, path string, handler HandlerFunc) *mux.Route {
	return r.mux.HandleFunc(path, handler).Methods(method)
}

func (r *Router) GET(path string, handler HandlerFunc) *mux.Route {
	return r.register(http.MethodGet, path, handler)
}
func (r *Router) POST(path string, handler HandlerFunc) *mux.Route {
	return r.register(http.MethodPost, path, handler)
}
func (r *Router) PUT(path string, handler HandlerFunc) *mux.Route {
	return r.register(http.MethodPut, path, handler)
}
func (r *Router) DELETE(path string, handler HandlerFunc) *mux.Route {
	return r.register(http.MethodDelete, path, handler)
}

// Handle mounts a plain handler on an exact path for every method.
func (r *Router) Handle(path string, h http.Handler) *mux.Route {
	return r.mux.Handle(path, h)
}

// Prefix mounts h on every path below prefix.
func (r *Router) Prefix(prefix string, h http.Handler) *mux.Route {
	return r.mux.PathPrefix(prefix).Handler(h)
}

// Use appends middleware run for matched routes.
func (r *Router) Use(mw ...mux.MiddlewareFunc) {
	r.mux.Use(mw...)
}

// Handler returns the root http.Handler.
func (r *Router) Handler() http.Handler {
	return r.mux
}

// Routes lists "METHOD path" for every registered route, sorted. Used by tests.
func (r *Router) Routes() []string {
	var routes []string
	_ = r.mux.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		tpl, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			routes = append(routes, "* "+tpl)
			return nil
		}
		for _, m := range methods {
			routes = append(routes, m+" "+tpl)
		}
		return nil
	})
	sort.Strings(routes)
	return routes
}

// RouteName returns the path template matched for req, or "unmatched".
func RouteName(req *http.Request) string {
	if route := mux.CurrentRoute(req); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

// --- Start server ---

// Start serves h on addr until ctx is done, then shuts down gracefully
// within shutdownTimeout.
func Start(ctx context.Context, addr string, h http.Handler, shutdownTimeout time.Duration, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// --- Logging response writer to capture status codes ---
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Flush() {
	if f, ok := lrw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *Router) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(lrw, req)

		level := levelFor(lrw.statusCode)
		if ce := r.log.Check(level, "request"); ce != nil {
			ce.Write(
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", lrw.statusCode),
				zap.Duration("duration", time.Since(start)),
			)
		}
	})
}

func levelFor(code int) zapcore.Level {
	switch {
	case code >= 500:
		return zapcore.ErrorLevel
	case code >= 400:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}
