package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seo_content_writer/seo"
)

// APIError is the body of every error response.
type APIError struct {
	Message    string          `json:"message"`
	Code       string          `json:"code,omitempty"`
	Violations []seo.Violation `json:"violations,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

const (
	codeBadRequest       = "bad_request"
	codeThresholdNotMet  = "threshold_not_met"
	codeGenerationFailed = "generation_failed"
)

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func respondRejected(c *gin.Context, te *seo.ThresholdError) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorEnvelope{
		Error: APIError{
			Message:    te.Error(),
			Code:       codeThresholdNotMet,
			Violations: te.Violations,
		},
	})
}

func respondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
