package webui

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/L1nMay/vulnassess/internal/assessment"
	"github.com/L1nMay/vulnassess/internal/config"
	"github.com/L1nMay/vulnassess/internal/events"
	"github.com/L1nMay/vulnassess/internal/logger"
	"github.com/L1nMay/vulnassess/internal/notifier"
	"github.com/L1nMay/vulnassess/internal/storage"
)

type Server struct {
	cfg      *config.Config
	composer *assessment.Composer
	store    storage.HistoryStore
	hub      *events.Hub
	notify   notifier.Notifier
	router   *gin.Engine
}

// NewServer wires the API. store may be nil, in which case history endpoints
// return empty results and nothing is recorded.
func NewServer(cfg *config.Config, composer *assessment.Composer, store storage.HistoryStore, hub *events.Hub, notify notifier.Notifier) *Server {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if hub == nil {
		hub = events.NewHub()
	}
	if notify == nil {
		notify = notifier.Nop{}
	}

	s := &Server{
		cfg:      cfg,
		composer: composer,
		store:    store,
		hub:      hub,
		notify:   notify,
		router:   gin.New(),
	}
	s.router.HandleMethodNotAllowed = true
	s.router.MaxMultipartMemory = cfg.MaxUploadBytes

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(withLogging())

	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(s.cfg.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.cfg.AllowedOrigins
	}
	s.router.Use(cors.New(corsConfig))
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/assessment/stream", s.handleStream)

		slow := api.Group("", s.limitBody(), s.demoLatency())
		slow.POST("/assessment", s.handleAssessment)
		slow.POST("/vulnerabilities", s.handleVulnerabilities)
		slow.POST("/cpe-mapping", s.handleCPEMapping)
		slow.GET("/assessments", s.handleHistory)
		slow.GET("/stats", s.handleStats)
	}
}

// ---------- Middleware ----------
func withLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"client":  c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		logger.WithFields(fields).Info("webui request")
	}
}

// demoLatency imitates the dashboard's mock-mode delay when configured.
func (s *Server) demoLatency() gin.HandlerFunc {
	return func(c *gin.Context) {
		d := s.cfg.DemoLatency()
		if d <= 0 {
			c.Next()
			return
		}
		select {
		case <-time.After(d):
		case <-c.Request.Context().Done():
			c.Abort()
			return
		}
		c.Next()
	}
}

// limitBody caps the request body. Multipart framing and text fields get a
// little headroom over the file limit, which handleAssessment enforces on
// the file itself.
func (s *Server) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes+bodyOverhead)
		c.Next()
	}
}
