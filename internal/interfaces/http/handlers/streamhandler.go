package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vigil/internal/infrastructure/pubsub"
	"vigil/internal/interfaces/http/middleware"
	"vigil/internal/shared/logger"
)

// StreamHandler serves the per-event change stream over SSE. Events carry
// only the changed entity's kind and number; subscribers re-fetch the
// entity themselves. The first frame is an `initial` event with the
// current cursor id. A client whose remembered Last-Event-ID does not
// match a fresh initial id must reload its working set.
type StreamHandler struct {
	notifier  *pubsub.Notifier
	keepalive time.Duration
	logger    logger.Interface
}

func NewStreamHandler(notifier *pubsub.Notifier, keepalive time.Duration, logger logger.Interface) *StreamHandler {
	if keepalive <= 0 {
		keepalive = 30 * time.Second
	}
	return &StreamHandler{
		notifier:  notifier,
		keepalive: keepalive,
		logger:    logger,
	}
}

type changePayload struct {
	Kind   string `json:"kind"`
	Number int    `json:"number"`
}

func (h *StreamHandler) Stream(c *gin.Context) {
	eventID := middleware.EventIDFromContext(c)

	sub := h.notifier.Subscribe(eventID)
	defer sub.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		h.logger.Errorw("response writer does not support streaming")
		return
	}

	if last := c.GetHeader("Last-Event-ID"); last != "" {
		h.logger.Debugw("stream resumed", "event_id", eventID, "last_event_id", last, "cursor", sub.Cursor)
	}

	// Change ids are process-local, so a resuming client compares its
	// remembered id against this one and full-resyncs on mismatch.
	fmt.Fprintf(c.Writer, "event: initial\nid: %d\ndata: {}\n\n", sub.Cursor)
	flusher.Flush()

	ticker := time.NewTicker(h.keepalive)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case change, open := <-sub.C:
			if !open {
				// Dropped as a slow subscriber or notifier shutdown.
				// Ending the stream forces a reconnect, which hands the
				// client a fresh initial id and a full resync.
				h.logger.Warnw("stream subscription closed", "event_id", eventID)
				return
			}
			payload, err := json.Marshal(changePayload{Kind: change.Kind, Number: change.Number})
			if err != nil {
				h.logger.Errorw("failed to marshal change payload", "error", err)
				continue
			}
			fmt.Fprintf(c.Writer, "event: change\nid: %d\ndata: %s\n\n", change.ID, payload)
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keepalive\n\n")
			flusher.Flush()
		}
	}
}
