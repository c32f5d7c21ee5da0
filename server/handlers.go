package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"seo_content_writer/generator"
	"seo_content_writer/metrics"
	"seo_content_writer/seo"
)

type topicReq struct {
	Topic string `json:"topic" binding:"required,max=500"`
}

type draftReq struct {
	Topic       string                `json:"topic" binding:"required,max=500"`
	ContentType generator.ContentType `json:"content_type" binding:"required,oneof=informational sales"`
}

// bindTopic binds a {topic} body. It responds 400 itself and returns false on failure.
func bindTopic(c *gin.Context) (string, bool) {
	var req topicReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest, err)
		return "", false
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		respondError(c, http.StatusBadRequest, codeBadRequest, errors.New("topic must not be blank"))
		return "", false
	}
	return topic, true
}

func (s *Server) handleTitle(c *gin.Context) {
	topic, ok := bindTopic(c)
	if !ok {
		return
	}
	respondOK(c, s.svc.GenerateTitle(c.Request.Context(), topic))
}

func (s *Server) handleKeywords(c *gin.Context) {
	topic, ok := bindTopic(c)
	if !ok {
		return
	}
	respondOK(c, s.svc.RecommendKeywords(c.Request.Context(), topic))
}

func (s *Server) handleContent(c *gin.Context) {
	var req generator.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest, err)
		return
	}
	res, err := s.svc.GenerateContent(c.Request.Context(), req)
	if err != nil {
		s.generationError(c, err)
		return
	}
	if !s.accept(c, res) {
		return
	}
	respondOK(c, res)
}

func (s *Server) handleDraft(c *gin.Context) {
	var req draftReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeBadRequest, err)
		return
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		respondError(c, http.StatusBadRequest, codeBadRequest, errors.New("topic must not be blank"))
		return
	}
	res, err := s.svc.Draft(c.Request.Context(), topic, req.ContentType)
	if err != nil {
		s.generationError(c, err)
		return
	}
	// The whole draft counts against the generation time limit.
	content := res.Content
	content.Elapsed = res.Elapsed
	if !s.accept(c, content) {
		return
	}
	respondOK(c, res)
}

func (s *Server) generationError(c *gin.Context, err error) {
	if errors.Is(err, generator.ErrInvalidRequest) {
		respondError(c, http.StatusBadRequest, codeBadRequest, err)
		return
	}
	s.log.Error("content generation failed", "error", err.Error(), "request_id", c.GetString(requestIDHeader))
	respondError(c, http.StatusInternalServerError, codeGenerationFailed, err)
}

// accept applies the acceptance thresholds and writes the 422 on rejection.
func (s *Server) accept(c *gin.Context, res generator.GenerationResult) bool {
	err := s.thresholds.Check(res.SEOMetrics, res.TotalCharCount, res.Elapsed)
	if err == nil {
		return true
	}
	var te *seo.ThresholdError
	if !errors.As(err, &te) {
		respondError(c, http.StatusInternalServerError, codeGenerationFailed, err)
		return false
	}
	for _, v := range te.Violations {
		metrics.ThresholdRejections.WithLabelValues(v.Metric).Inc()
	}
	s.log.Warn("content rejected by thresholds",
		"violations", len(te.Violations),
		"seo_score", res.SEOMetrics.SEOScore,
		"request_id", c.GetString(requestIDHeader),
	)
	respondRejected(c, te)
	return false
}
