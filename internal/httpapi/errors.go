package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erraggy/orgtree/orgerrors"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"requestId,omitempty"`
}

// classify maps an error to its HTTP status and response code.
func classify(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE"
	case errors.Is(err, orgerrors.ErrParse):
		return http.StatusBadRequest, "PARSE_ERROR"
	case errors.Is(err, orgerrors.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, orgerrors.ErrConfig):
		return http.StatusBadRequest, "INVALID_ARGUMENT"
	case errors.Is(err, orgerrors.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, orgerrors.ErrConflict):
		return http.StatusConflict, "CONFLICT"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

// fail writes err as an ErrorResponse and records the operation outcome.
func (s *Server) fail(c *gin.Context, op string, err error) {
	status, code := classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", c.GetString(ctxRequestID), "operation", op, "error", err)
		msg = "internal error"
	}
	s.record(op, code)
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     msg,
		Code:      code,
		RequestID: c.GetString(ctxRequestID),
	})
}

func (s *Server) record(op, outcome string) {
	if s.metrics != nil {
		s.metrics.Operations.WithLabelValues(op, outcome).Inc()
	}
}
