package http

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"timesheet-assistant/internal/middleware"
	"timesheet-assistant/internal/model"
)

var errMissingScope = errors.New("missing caller identity")

// scope reads the caller identity placed on the context by middleware.Scope.
func (h *handler) scope(c *gin.Context) (model.Scope, error) {
	sc, ok := middleware.GetScope(c.Request.Context())
	if !ok {
		return model.Scope{}, errMissingScope
	}
	return sc, nil
}

// processStartReq binds the optional start body. An empty body starts a
// guided session with a generated id.
func (h *handler) processStartReq(c *gin.Context) (model.Scope, startReq, error) {
	var req startReq
	sc, err := h.scope(c)
	if err != nil {
		return sc, req, err
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return sc, req, err
	}
	return sc, req, req.validate()
}

// processMessageReq binds the message body and the session id path param.
func (h *handler) processMessageReq(c *gin.Context) (model.Scope, messageReq, error) {
	var req messageReq
	sc, err := h.scope(c)
	if err != nil {
		return sc, req, err
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return sc, req, err
	}
	req.ID = c.Param("id")
	return sc, req, req.validate()
}

func (h *handler) processIDReq(c *gin.Context) (model.Scope, string, error) {
	sc, err := h.scope(c)
	if err != nil {
		return sc, "", err
	}
	id := c.Param("id")
	if id == "" {
		return sc, "", errIDRequired
	}
	return sc, id, nil
}

func (h *handler) processExtractReq(c *gin.Context) (extractReq, error) {
	var req extractReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}
