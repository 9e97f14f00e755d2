package webui

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/L1nMay/vulnassess/internal/events"
	"github.com/L1nMay/vulnassess/internal/logger"
	"github.com/L1nMay/vulnassess/internal/model"
	"github.com/L1nMay/vulnassess/internal/storage"
	"github.com/L1nMay/vulnassess/internal/target"
)

const notifyTimeout = 10 * time.Second

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleAssessment(c *gin.Context) {
	d, err := s.readDescriptor(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	summary, err := target.Resolve(d)
	if err != nil {
		s.fail(c, err)
		return
	}

	resp := s.composer.Compose(summary)
	s.record(c, summary)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleVulnerabilities(c *gin.Context) {
	types, err := readDeviceTypes(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	resp, err := s.composer.LookupVulnerabilities(types)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCPEMapping(c *gin.Context) {
	types, err := readDeviceTypes(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	resp, err := s.composer.LookupCPE(types)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHistory(c *gin.Context) {
	limit := s.cfg.HistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.fail(c, &target.ValidationError{Message: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	if s.store == nil {
		c.JSON(http.StatusOK, []model.AssessmentRecord{})
		return
	}
	records, err := s.store.ListAssessments(limit)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) handleStats(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusOK, storage.Stats{ByMode: map[string]int{}})
		return
	}
	st, err := s.store.GetStats()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// fail maps validation problems to 400, oversized bodies to 413 and anything
// else to a generic 500.
func (s *Server) fail(c *gin.Context, err error) {
	var ve *target.ValidationError
	switch {
	case errors.As(err, &ve):
		if c.FullPath() == "/api/assessment" {
			s.hub.Publish(events.Event{Type: events.TypeRejected, Message: ve.Message})
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": ve.Message})
	case errors.Is(err, errTooLarge):
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"message": "File too large"})
	default:
		_ = c.Error(err)
		logger.Errorf("webui %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

// record stores, broadcasts and announces a served assessment. None of it
// affects the response.
func (s *Server) record(c *gin.Context, summary *model.TargetSummary) {
	rec := &model.AssessmentRecord{
		Mode:         summary.Mode,
		Label:        summary.Label,
		TotalTargets: summary.TotalTargets,
		Preview:      append([]string(nil), summary.TargetsPreview...),
		RemoteAddr:   c.ClientIP(),
		CreatedAt:    time.Now().UTC(),
	}

	if s.store != nil {
		if err := s.store.SaveAssessment(rec); err != nil {
			logger.Errorf("history save error for %s: %v", rec.Label, err)
		} else {
			logger.Debugf("assessment %s recorded (%s, %d targets)", rec.ID, rec.Mode, rec.TotalTargets)
		}
	}

	s.hub.Publish(events.Event{
		Type:         events.TypeAssessment,
		Mode:         rec.Mode,
		Label:        rec.Label,
		TotalTargets: rec.TotalTargets,
		Message:      summary.Message,
		At:           rec.CreatedAt,
	})

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notify.NotifyAssessment(ctx, rec); err != nil {
			logger.Warnf("notify error for %s: %v", rec.Label, err)
		}
	}()
}
