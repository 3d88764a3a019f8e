package respond

import (
	"strings"

	"github.com/Murilinho145SG/respond/httpio"
	"github.com/Murilinho145SG/respond/log"
)

type HandlersList map[string]Handler

// Router maps exact request paths to handlers. Routes must be registered
// before the router is served.
type Router struct {
	Routes HandlersList
}

func NewRouter() *Router {
	return &Router{
		Routes: make(HandlersList),
	}
}

func (r *Router) Route(route string, handler Handler) {
	log.Info("Registering " + route)
	r.Routes[route] = handler
}

// Redirect registers a route that redirects to target with code.
func (r *Router) Redirect(route, target string, code int) error {
	handler, err := RedirectHandler(target, code)
	if err != nil {
		return err
	}

	log.Info("Registering redirect", route, "->", target, code)
	r.Routes[route] = handler
	return nil
}

// ParseRoute returns the handler for the request path, ignoring the query
// string, or nil when no route matches.
func (r *Router) ParseRoute(req *httpio.Request) Handler {
	path, _, _ := strings.Cut(req.Path, "?")
	return r.Routes[path]
}
