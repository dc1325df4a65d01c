// Package router wires handlers and middleware onto the gin engine.
package router

import (
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/infrastructure/logger"
	"github.com/GustavoFSCode/quadrinho-rei-monorepo-sub002/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// defaultBodyLimit caps request bodies; cart and checkout payloads are tiny.
const defaultBodyLimit = 1 << 20 // 1MB

// RouteRegistrar registers a handler's routes on a group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Config holds router configuration
type Config struct {
	CORS       middleware.CORSConfig
	Tracing    middleware.TracingConfig
	APIVersion string
}

// Router builds the HTTP routing tree
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// New creates a gin engine with the standard middleware chain and returns a
// Router for registering handlers on it.
func New(log *zap.Logger, cfg Config) *Router {
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(defaultBodyLimit))
	engine.Use(middleware.Tracing(cfg.Tracing))
	engine.Use(middleware.SpanEnricher())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = "v1"
	}

	return &Router{
		engine:     engine,
		apiVersion: apiVersion,
	}
}

// Register adds a RouteRegistrar to be mounted by Setup
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup mounts all registered routes under the versioned API prefix
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// Engine returns the underlying gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
