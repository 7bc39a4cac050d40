package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar is implemented by HTTP handlers that mount their own
// endpoints onto the shared API group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router collects handler registrations and mounts them all under one
// versioned API prefix, so handlers never hardcode the /api/v1 segment.
type Router struct {
	engine   *gin.Engine
	version  string
	handlers []RouteRegistrar
}

// RouterOption customizes router construction
type RouterOption func(*Router)

// WithAPIVersion overrides the default "v1" path segment
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.version = version
	}
}

// NewRouter wraps a gin engine for versioned route registration
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, version: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues one or more handlers for mounting. Calls chain.
func (r *Router) Register(handlers ...RouteRegistrar) *Router {
	r.handlers = append(r.handlers, handlers...)
	return r
}

// Setup mounts every registered handler under /api/<version>
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.version)
	for _, h := range r.handlers {
		h.RegisterRoutes(api)
	}
}
