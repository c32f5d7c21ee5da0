package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"seo_content_writer/generator"
	"seo_content_writer/logger"
	"seo_content_writer/seo"
)

type Server struct {
	svc         *generator.Service
	thresholds  seo.Thresholds
	log         *logger.Logger
	environment string
	corsOrigins []string
}

type Options struct {
	Thresholds  seo.Thresholds
	Environment string
	// CORSAllowOrigins lists allowed origins; empty allows all.
	CORSAllowOrigins []string
}

func New(svc *generator.Service, log *logger.Logger, opts Options) (*Server, error) {
	if svc == nil {
		return nil, errors.New("generator service required")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		svc:         svc,
		thresholds:  opts.Thresholds,
		log:         log,
		environment: opts.Environment,
		corsOrigins: opts.CORSAllowOrigins,
	}, nil
}

func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(requestID())
	r.Use(requestLogger(s.log))
	r.Use(prometheusMiddleware())
	r.Use(recovery(s.log))
	r.Use(corsMiddleware(s.corsOrigins))

	r.GET("/", s.handleRoot)
	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	blog := r.Group("/api/v1/blog")
	{
		blog.POST("/title", s.handleTitle)
		blog.POST("/keywords", s.handleKeywords)
		blog.POST("/content", s.handleContent)
		blog.POST("/draft", s.handleDraft)
	}
	return r
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "SEO Blog Content Writer API",
		"environment": s.environment,
		"backend":     s.svc.BackendName(),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
