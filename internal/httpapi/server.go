// Package httpapi exposes the tree registry over HTTP.
//
// Routes live under /api/OrganizationTree. Documents are exchanged as XML;
// tree envelopes and errors are JSON.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/erraggy/orgtree/document"
	"github.com/erraggy/orgtree/internal/observability"
	"github.com/erraggy/orgtree/registry"
	"github.com/erraggy/orgtree/report"
)

// BasePath is the prefix of every tree route.
const BasePath = "/api/OrganizationTree"

// Server serves the HTTP API for a Registry.
type Server struct {
	reg           *registry.Registry
	metrics       *observability.Metrics
	logger        *slog.Logger
	limiter       *rate.Limiter
	maxBody       int64
	defaultFormat report.Format
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics enables Prometheus instrumentation and the /metrics route.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithLogger sets the access and error logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRateLimit enables a token bucket shared by all API requests. A
// non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(s *Server) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

// WithMaxBodyBytes limits request bodies.
// Default: document.MaxDocumentSize.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithDefaultFormat sets the report format used when a request names none.
func WithDefaultFormat(f report.Format) Option {
	return func(s *Server) { s.defaultFormat = f }
}

// New creates a Server for reg.
func New(reg *registry.Registry, opts ...Option) *Server {
	s := &Server{
		reg:           reg,
		logger:        slog.Default(),
		maxBody:       document.MaxDocumentSize,
		defaultFormat: report.FormatXML,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the gin engine with every route and middleware.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), s.accessLog())
	if s.metrics != nil {
		r.Use(s.instrument())
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
	r.GET("/health", s.health)

	api := r.Group(BasePath)
	if s.limiter != nil {
		api.Use(s.rateLimit())
	}
	api.GET("", s.listTrees)
	api.POST("", s.createTree)
	api.GET("/:id", s.getTree)
	api.PUT("/:id", s.updateTree)
	api.DELETE("/:id", s.deleteTree)
	api.PATCH("/:id/addnode", s.addNode)
	api.DELETE("/:id/removenode", s.removeNode)
	api.GET("/:id/report", s.treeReport)

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "trees": s.reg.Len()})
}
