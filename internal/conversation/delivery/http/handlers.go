package http

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"timesheet-assistant/internal/submission"
	"timesheet-assistant/pkg/response"
)

// Start godoc
// @Summary     Start a session
// @Description Opens a guided or open-ended session. Reusing a session id resets its draft.
// @Tags        Sessions
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string   true "Caller user id"
// @Param       body      body   startReq true  "Session options"
// @Success     201 {object} replyResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     403 {object} response.Resp "Forbidden"
// @Router      /api/v1/sessions [POST]
func (h *handler) Start(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processStartReq(c)
	if err != nil {
		h.mapProcessError(c, err)
		return
	}

	reply, err := h.uc.Start(ctx, sc, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.Start: %v", err)
		h.mapError(c, err)
		return
	}

	response.Created(c, h.newReplyResp(reply))
}

// Detail godoc
// @Summary     Get a session
// @Description Returns the current step, draft entry and transcript of a session.
// @Tags        Sessions
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} sessionResp
// @Failure     403 {object} response.Resp "Forbidden"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/sessions/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	sc, id, err := h.processIDReq(c)
	if err != nil {
		h.mapProcessError(c, err)
		return
	}

	s, err := h.uc.GetSession(ctx, sc, id)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newSessionResp(s))
}

// Message godoc
// @Summary     Send a message
// @Description Applies one user utterance. Guided sessions advance the question sequence, open sessions chat.
// @Tags        Sessions
// @Accept      json
// @Produce     json
// @Param       id   path string     true "Session ID"
// @Param       body body messageReq true "Utterance"
// @Success     200 {object} replyResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/sessions/{id}/messages [POST]
func (h *handler) Message(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processMessageReq(c)
	if err != nil {
		h.mapProcessError(c, err)
		return
	}

	reply, err := h.uc.HandleMessage(ctx, sc, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.HandleMessage: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newReplyResp(reply))
}

// Chat godoc
// @Summary     Chat in open-ended mode
// @Description Sends one utterance to the text generator. The entry is extracted and submitted once the conversation signals completion.
// @Tags        Sessions
// @Accept      json
// @Produce     json
// @Param       id   path string     true "Session ID"
// @Param       body body messageReq true "Utterance"
// @Success     200 {object} replyResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Session is not open-ended"
// @Router      /api/v1/sessions/{id}/chat [POST]
func (h *handler) Chat(c *gin.Context) {
	ctx := c.Request.Context()

	sc, req, err := h.processMessageReq(c)
	if err != nil {
		h.mapProcessError(c, err)
		return
	}

	reply, err := h.uc.Chat(ctx, sc, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.Chat: %v", err)
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newReplyResp(reply))
}

// Restart godoc
// @Summary     Restart a session
// @Description Discards the current draft and greets again.
// @Tags        Sessions
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} replyResp
// @Failure     403 {object} response.Resp "Forbidden"
// @Router      /api/v1/sessions/{id}/restart [POST]
func (h *handler) Restart(c *gin.Context) {
	ctx := c.Request.Context()

	sc, id, err := h.processIDReq(c)
	if err != nil {
		h.mapProcessError(c, err)
		return
	}

	reply, err := h.uc.Restart(ctx, sc, id)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newReplyResp(reply))
}

// Retry godoc
// @Summary     Retry delivery
// @Description Re-sends the last confirmed entry of the session. The outcome arrives as a notification.
// @Tags        Sessions
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     202 {object} replyResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Nothing to retry"
// @Router      /api/v1/sessions/{id}/retry [POST]
func (h *handler) Retry(c *gin.Context) {
	ctx := c.Request.Context()

	sc, id, err := h.processIDReq(c)
	if err != nil {
		h.mapProcessError(c, err)
		return
	}

	reply, err := h.uc.RetryDelivery(ctx, sc, id)
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.Accepted(c, h.newReplyResp(reply))
}

// Notifications godoc
// @Summary     Drain delivery notifications
// @Description Returns and clears the delivery outcomes waiting for the caller.
// @Tags        Sessions
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {array} notificationResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/sessions/{id}/notifications [GET]
func (h *handler) Notifications(c *gin.Context) {
	ctx := c.Request.Context()

	sc, id, err := h.processIDReq(c)
	if err != nil {
		h.mapProcessError(c, err)
		return
	}

	// Ownership check only; the inbox is keyed by user.
	if _, err := h.uc.GetSession(ctx, sc, id); err != nil {
		h.mapError(c, err)
		return
	}

	list := h.newNotificationsResp(nil)
	if h.inbox != nil {
		list = h.newNotificationsResp(h.inbox.Drain(sc.UserID))
	}
	response.OK(c, list)
}

// Extract godoc
// @Summary     Extract an entry from a transcript
// @Description Runs the extractor and validator over a transcript without touching any session.
// @Tags        Extraction
// @Accept      json
// @Produce     json
// @Param       body body extractReq true "Transcript"
// @Success     200 {object} extractResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/extract [POST]
func (h *handler) Extract(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processExtractReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.Extract(ctx, req.toInput())
	if err != nil {
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newExtractResp(out))
}

// TestDelivery godoc
// @Summary     Test the delivery endpoint
// @Description Sends a single test ping to the configured webhook.
// @Tags        Delivery
// @Produce     json
// @Success     200 {object} pingResp
// @Failure     503 {object} response.Resp "Delivery not configured"
// @Router      /api/v1/delivery/test [POST]
func (h *handler) TestDelivery(c *gin.Context) {
	ctx := c.Request.Context()

	out, err := h.uc.TestDelivery(ctx)
	if err != nil && errors.Is(err, submission.ErrNotConfigured) {
		h.mapError(c, err)
		return
	}

	response.OK(c, h.newPingResp(out, time.Now()))
}

// mapProcessError answers a request that failed binding or validation.
func (h *handler) mapProcessError(c *gin.Context, err error) {
	if errors.Is(err, errMissingScope) {
		response.Unauthorized(c)
		return
	}
	response.Error(c, err, nil)
}
