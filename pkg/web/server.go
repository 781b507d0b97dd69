// Package web exposes the report generator over HTTP and provides a
// client for delegating conversions to a remote instance.
package web

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/user/reportsnap/pkg/convert"
	"github.com/user/reportsnap/pkg/ports"
	"github.com/user/reportsnap/pkg/report"
)

// ServiceName identifies the server in health responses.
const ServiceName = "reportsnap"

// Server is the HTTP front end over the report pipeline and converter.
type Server struct {
	pipeline  *report.Pipeline
	converter *convert.Converter
	templates ports.TemplateStore
	logger    ports.Logger
	version   string
	router    *gin.Engine
}

// NewServer wires the routes. The pipeline may be nil when the server
// only offers conversion, in which case /api/report returns 503.
func NewServer(pipeline *report.Pipeline, converter *convert.Converter, templates ports.TemplateStore, logger ports.Logger, version string) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		pipeline:  pipeline,
		converter: converter,
		templates: templates,
		logger:    logger,
		version:   version,
		router:    router,
	}

	router.Use(s.requestID())

	router.GET("/health", s.handleHealth)

	api := router.Group("/api")
	{
		api.POST("/convert", s.handleConvert)
		api.POST("/convert/file", s.handleConvertFile)
		api.POST("/report", s.handleReport)
		api.GET("/templates", s.handleListTemplates)
		api.GET("/templates/:name", s.handleGetTemplate)
		api.PUT("/templates/:name", s.handlePutTemplate)
		api.DELETE("/templates/:name", s.handleDeleteTemplate)
	}

	return s
}

// Run starts the server on addr.
func (s *Server) Run(addr string) error {
	s.logger.Info("listening on %s", addr)
	return s.router.Run(addr)
}

// requestID tags every request so log lines from one conversion can be
// correlated.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
