package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"timesheet-assistant/internal/conversation"
	"timesheet-assistant/internal/conversation/repository"
	"timesheet-assistant/internal/submission"
	"timesheet-assistant/pkg/response"
)

// mapError translates use-case errors into response envelopes.
func (h *handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, conversation.ErrSessionNotFound):
		response.NotFound(c, err)
	case errors.Is(err, conversation.ErrSessionForbidden):
		response.Forbidden(c)
	case errors.Is(err, conversation.ErrWrongMode),
		errors.Is(err, conversation.ErrNothingToRetry):
		response.ErrorWithStatus(c, http.StatusConflict, response.ConflictCode, err)
	case errors.Is(err, conversation.ErrInvalidMode),
		errors.Is(err, conversation.ErrEmptyTranscript),
		errors.Is(err, repository.ErrInvalidID):
		response.Error(c, err, nil)
	case errors.Is(err, submission.ErrNotConfigured):
		response.ErrorWithStatus(c, http.StatusServiceUnavailable, response.ServiceUnavailableCode, err)
	case errors.Is(err, errMissingScope):
		response.Unauthorized(c)
	default:
		h.l.Errorf(c.Request.Context(), "conversation.delivery.http: unhandled error: %v", err)
		response.InternalError(c, err)
	}
}
