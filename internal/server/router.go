package server

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
)

// BasicRouter is a simple HTTP router implementing the [Router] interface.
//
// Uses [http.ServeMux] internally for routing, so paths may contain {name} wildcards.
type BasicRouter struct {
	mux         *http.ServeMux
	middlewares []Middleware
	logger      *log.Logger
}

// NewBasicRouter creates a new [BasicRouter] instance. A nil logger selects [log.Default].
func NewBasicRouter(logger *log.Logger) *BasicRouter {
	if logger == nil {
		logger = log.Default()
	}
	return &BasicRouter{
		mux:         http.NewServeMux(),
		middlewares: []Middleware{},
		logger:      logger,
	}
}

// Use adds [Middleware] to the [Router] instance's middleware stack. The first added runs outermost.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers a handler for the specified HTTP method and path.
//
// Method filtering runs inside the middleware chain so rejected requests are still logged, counted
// and given CORS headers. Any other method gets a JSON 405.
func (r *BasicRouter) Handle(method, path string, handler http.Handler) {
	methodHandler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !strings.EqualFold(req.Method, method) {
			w.Header().Set("Allow", method)
			writeJSON(w, r.logger, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
			return
		}
		handler.ServeHTTP(w, req)
	})

	r.mux.Handle(path, r.Apply(methodHandler))
}

// Handler registers every route of a custom [Handler] implementation.
func (r *BasicRouter) Handler(handler Handler) {
	for _, route := range handler.Routes() {
		r.Handle(route.Method, route.Path, route.Handler)
	}
}

// Fallback registers the handler for requests no other pattern matches.
func (r *BasicRouter) Fallback(handler http.Handler) {
	r.mux.Handle("/", r.Apply(handler))
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Apply wraps a handler with all registered middleware.
//
// Middleware is applied in reverse order so the first added wraps all others.
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	wrapped := handler

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}

	return wrapped
}
