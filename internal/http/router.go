// Package httpapi wires the HTTP transport (Gin) to the error boundary and
// the demo item API. It centralizes middleware ordering so that every
// failure (handler panics, surfaced errors, unmatched routes, disallowed
// methods) funnels through the single interception point and leaves the
// process as a {"code","message"} envelope.
//
// Middleware order matters:
//  1. RequestID: generate/propagate correlation id
//  2. Logger: structured access logs, request-scoped logger
//  3. Metrics (outside the boundary so it observes the normalized status)
//  4. Body size limiter, gzip, CORS, security headers
//  5. Boundary: the error chokepoint, innermost so its response is written
//     while the compression writer is still active
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Harshit978/ErrorHandler/internal/config"
	"github.com/Harshit978/ErrorHandler/internal/errdef"
	"github.com/Harshit978/ErrorHandler/internal/fault"
	"github.com/Harshit978/ErrorHandler/internal/http/handlers"
	"github.com/Harshit978/ErrorHandler/internal/http/middleware"
)

// codeMethodNotAllowed extends the built-in descriptor set at wiring time;
// the method-not-allowed fallback is transport-specific, so the descriptor
// and its 405 mapping are registered here rather than in errdef.
const codeMethodNotAllowed = "ERR-005"

// RegisterRoutes attaches all middleware and endpoints to the given Gin
// engine. reg and b must share the same registry: the routes registered
// here extend it (ERR-005) through the same setup-time interface
// applications use.
func RegisterRoutes(r *gin.Engine, cfg config.Config, reg *errdef.Registry, b middleware.Boundary) error {
	r.HandleMethodNotAllowed = true

	// Setup-time registrations for transport-level fallbacks.
	mna, err := reg.Register(codeMethodNotAllowed, "Method not allowed: %s.")
	if err != nil {
		return err
	}
	if err := b.Status.Register(codeMethodNotAllowed, http.StatusMethodNotAllowed); err != nil {
		return err
	}

	// 1-2) Correlate requests and logs.
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// 3) Prometheus metrics and /metrics endpoint.
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 4) Transport niceties: body cap, compression, CORS, security headers.
	r.Use(limitBody(1 << 20))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(corsPolicy(cfg))
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS: cfg.Security.EnableHSTS,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
	}))

	// 5) The error chokepoint, innermost.
	r.Use(b.Handler())

	// Fallbacks surface failures like any handler would; the boundary
	// turns them into ERR-002/ERR-005 envelopes.
	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(&fault.NotFound{Detail: c.Request.URL.Path})
	})
	r.NoMethod(func(c *gin.Context) {
		_ = c.Error(fault.New(mna, c.Request.Method))
	})

	// Liveness.
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Demo item API.
	h := handlers.New()
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.POST("/items", h.CreateItem)
		api.GET("/items/:id", h.GetItem)
		api.DELETE("/items/:id", h.DeleteItem)
	}
	return nil
}

// corsPolicy allows everything when no origins are configured, otherwise
// restricts to the allowlist.
func corsPolicy(cfg config.Config) gin.HandlerFunc {
	base := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		base.AllowAllOrigins = true
	} else {
		base.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	return cors.New(base)
}

// limitBody caps the request body size for all endpoints using
// http.MaxBytesReader. Requests exceeding the cap cause downstream body
// reads to error, which surfaces through the boundary as a validation
// failure.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
