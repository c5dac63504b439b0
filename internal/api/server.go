// Package api implements the HTTP server that serves generated sitemap
// documents.
package api

import (
	"net/http"
	"path/filepath"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/gositemap/internal/config"
	"github.com/jonesrussell/gositemap/internal/job"
	"github.com/jonesrussell/gositemap/internal/logger"
)

// sitemapFilePattern matches the files the server is willing to serve:
// the index and rotated parts. Everything else in the output directory
// stays private.
var sitemapFilePattern = regexp.MustCompile(`^sitemap(_\d+)?\.xml$`)

// contentTypeXML is the content type for served sitemap documents.
const contentTypeXML = "application/xml; charset=utf-8"

// Server serves sitemap documents over HTTP.
type Server struct {
	cfg   *config.Config
	log   logger.Interface
	sched *job.Scheduler
}

// NewServer creates the API server. sched may be nil when generation is
// not scheduled; the health payload then omits scheduler state.
func NewServer(cfg *config.Config, log logger.Interface, sched *job.Scheduler) *Server {
	if log == nil {
		log = logger.NewNoOp()
	}

	return &Server{
		cfg:   cfg,
		log:   log.WithComponent("api"),
		sched: sched,
	}
}

// Router builds the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	if !s.cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), RequestID(), RequestLogger(s.log))

	engine.GET("/health", s.handleHealth)
	engine.GET("/sitemap.xml", s.handleSitemapIndex)
	engine.GET("/:name", s.handleSitemapFile)

	return engine
}

// HTTPServer wraps the router in an http.Server with the configured
// timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Server.Address,
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
}

// handleHealth reports service liveness and, when scheduled, the state
// of the last generation run.
func (s *Server) handleHealth(c *gin.Context) {
	payload := gin.H{"status": "ok"}
	if s.sched != nil {
		payload["scheduler"] = s.sched.Status()
	}

	c.JSON(http.StatusOK, payload)
}

// handleSitemapIndex serves the sitemap index document.
func (s *Server) handleSitemapIndex(c *gin.Context) {
	s.serveFile(c, "sitemap.xml")
}

// handleSitemapFile serves one rotated sitemap part.
func (s *Server) handleSitemapFile(c *gin.Context) {
	name := c.Param("name")
	if !sitemapFilePattern.MatchString(name) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	s.serveFile(c, name)
}

// serveFile serves one file from the output directory as XML.
func (s *Server) serveFile(c *gin.Context, name string) {
	path := filepath.Join(s.cfg.Sitemap.OutputDir, name)

	c.Header("Content-Type", contentTypeXML)
	c.File(path)
}
