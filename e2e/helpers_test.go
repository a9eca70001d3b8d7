package e2e

import (
	"bufio"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"mockui/internal/config"
	httpserver "mockui/internal/http"
	"mockui/internal/http/controller"
	"mockui/internal/service/helper"
	"mockui/internal/sse"
	"mockui/internal/store/memory"
	"mockui/internal/telemetry"
)

type sseFrame struct {
	event string
	data  string
}

type testEnv struct {
	server *httptest.Server
	store  *memory.Store
	svc    *helper.Service
	hub    *sse.Hub
}

func newTestEnv(t *testing.T, cfg *config.Config, opts ...helper.Option) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	metrics := telemetry.NewMetrics()
	store := memory.New(logger)
	svc := helper.New(store, logger, append([]helper.Option{helper.WithMetrics(metrics)}, opts...)...)
	hub := sse.NewHub()
	handler := controller.NewHandler(cfg, svc, hub, logger)
	router := httpserver.NewRouter(cfg, handler, metrics, logger)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	stop, err := hub.Follow(store)
	if err != nil {
		t.Fatalf("follow store: %v", err)
	}

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		stop()
		cancel()
	})
	return &testEnv{server: server, store: store, svc: svc, hub: hub}
}

func defaultConfig() *config.Config {
	return &config.Config{
		HTTPAddr:         ":0",
		SSEHeartbeat:     5 * time.Second,
		FetchWaitTimeout: 5 * time.Second,
		OTELServiceName:  "mockui-test",
	}
}

// sseReader yields complete SSE frames, skipping comments.
type sseReader struct {
	frames chan sseFrame
	errs   chan error
}

func newSSEReader(body io.Reader) *sseReader {
	r := &sseReader{frames: make(chan sseFrame, 16), errs: make(chan error, 1)}
	go func() {
		reader := bufio.NewReader(body)
		var frame sseFrame
		var dataLines []string
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				r.errs <- err
				return
			}
			line = strings.TrimRight(line, "\r\n")
			switch {
			case line == "":
				if len(dataLines) > 0 {
					frame.data = strings.Join(dataLines, "\n")
					r.frames <- frame
				}
				frame = sseFrame{}
				dataLines = nil
			case strings.HasPrefix(line, ":"):
			case strings.HasPrefix(line, "event:"):
				frame.event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
			case strings.HasPrefix(line, "data:"):
				dataLines = append(dataLines, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
			}
		}
	}()
	return r
}

func (r *sseReader) next(timeout time.Duration) (sseFrame, error) {
	select {
	case f := <-r.frames:
		return f, nil
	case err := <-r.errs:
		return sseFrame{}, err
	case <-time.After(timeout):
		return sseFrame{}, context.DeadlineExceeded
	}
}
