package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"mockui/internal/domain"
	"mockui/internal/http/dto"
	"mockui/internal/http/resp"
)

type fetchOutcome struct {
	payload any
	err     error
}

func (h *Handler) Fetch(c *gin.Context) {
	var req dto.FetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "url is required"})
		return
	}

	if !req.Wait {
		handle := h.svc.FetchContext(c.Request.Context(), req.URL, nil)
		c.JSON(http.StatusAccepted, dto.FetchResponse{Code: resp.CodeAccepted, Handle: handle})
		return
	}

	done := make(chan fetchOutcome, 1)
	handle := h.svc.FetchContext(c.Request.Context(), req.URL, func(payload any, err error) {
		done <- fetchOutcome{payload: payload, err: err}
	})

	timeout := time.NewTimer(h.cfg.FetchWaitTimeout)
	defer timeout.Stop()

	select {
	case out := <-done:
		if out.err != nil {
			c.JSON(http.StatusBadGateway, dto.ErrorResponse{Code: resp.CodeRequestFailed, Message: out.err.Error()})
			return
		}
		c.JSON(http.StatusOK, dto.FetchResponse{Code: resp.CodeOK, Handle: handle, Payload: out.payload})
	case <-timeout.C:
		c.JSON(http.StatusGatewayTimeout, dto.ErrorResponse{Code: resp.CodeTimeout, Message: "fetch still in progress"})
	case <-c.Request.Context().Done():
		h.log.Debug("fetch waiter gone", zap.String("url", req.URL))
	}
}

func (h *Handler) Log(c *gin.Context) {
	var req dto.LogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "args is required"})
		return
	}
	handle := h.svc.Log(req.Args...)
	c.JSON(http.StatusCreated, dto.HandleResponse{Handle: handle})
}

func (h *Handler) Render(c *gin.Context) {
	blockType := c.Param("type")
	if !domain.IsValidBlockType(blockType) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: resp.CodeNotFound, Message: "type must be one of: avatar, article, comments, related, tags"})
		return
	}

	var req dto.RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "invalid json"})
		return
	}

	if err := h.svc.Render(blockType, req.Data); err != nil {
		if errors.Is(err, domain.ErrInvalidData) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeInvalidData, Message: err.Error()})
			return
		}
		h.log.Error("render failed", zap.String("type", blockType), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to render block"})
		return
	}
	c.JSON(http.StatusCreated, dto.StatusResponse{Code: resp.CodeOK, Message: "recorded"})
}

func (h *Handler) Snapshot(c *gin.Context) {
	snapshot, err := h.store.Snapshot(c.Param("list"))
	if err != nil {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: resp.CodeNotFound, Message: "list must be one of: requests, logs, blueprint"})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
