package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"mockui/internal/domain"
	"mockui/internal/http/dto"
	"mockui/internal/http/resp"
	"mockui/internal/model"
	"mockui/internal/sse"
)

// SSE streams change:<list> events. The first frame carries the current
// snapshot so a fresh subscriber never starts from an empty view.
func (h *Handler) SSE(c *gin.Context) {
	list := c.Param("list")
	if !domain.IsValidList(list) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: resp.CodeNotFound, Message: "list must be one of: requests, logs, blueprint"})
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		h.log.Error("streaming unsupported", zap.String("list", list))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "streaming unsupported"})
		return
	}

	client := &sse.Client{
		List: list,
		Ch:   make(chan model.Change, 16),
	}
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	snapshot, err := h.store.Current(list)
	if err != nil {
		h.log.Error("snapshot failed", zap.String("list", list), zap.Error(err))
		return
	}
	if err := writeChange(c.Writer, snapshot); err != nil {
		h.log.Error("write snapshot failed", zap.String("list", list), zap.Error(err))
		return
	}
	flusher.Flush()

	heartbeat := time.NewTicker(h.cfg.SSEHeartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(c.Writer, ": ping\n\n"); err != nil {
				h.log.Error("heartbeat write failed", zap.String("list", list), zap.Error(err))
				return
			}
			flusher.Flush()
		case change, ok := <-client.Ch:
			if !ok {
				return
			}
			// Queued before the client registered; the snapshot already has it.
			if change.Seq <= snapshot.Seq {
				continue
			}
			if err := writeChange(c.Writer, change); err != nil {
				h.log.Error("write change failed", zap.String("list", list), zap.Error(err))
				return
			}
			flusher.Flush()
		}
	}
}

func writeChange(w http.ResponseWriter, change model.Change) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return err
	}
	// id is the store sequence number; event is change:<list>, matching the
	// subscription name on the store.
	_, err = fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", change.Seq, change.Event, payload)
	return err
}
