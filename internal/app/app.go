package app

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"mockui/internal/config"
	"mockui/internal/queue"
	"mockui/internal/repository"
	"mockui/internal/service/helper"
	"mockui/internal/service/mirror"
	"mockui/internal/sse"
)

type App struct {
	cfg       *config.Config
	store     repository.MetaStore
	hub       *sse.Hub
	mirror    *mirror.Mirror
	publisher queue.Publisher
	consumer  queue.Consumer
	svc       *helper.Service
	server    *http.Server
	logger    *zap.Logger
	wg        sync.WaitGroup

	mu          sync.Mutex
	unsubscribe []func()
}

func NewApp(
	cfg *config.Config,
	store repository.MetaStore,
	hub *sse.Hub,
	mirror *mirror.Mirror,
	publisher queue.Publisher,
	consumer queue.Consumer,
	svc *helper.Service,
	router *gin.Engine,
	logger *zap.Logger,
) *App {
	return &App{
		cfg:       cfg,
		store:     store,
		hub:       hub,
		mirror:    mirror,
		publisher: publisher,
		consumer:  consumer,
		svc:       svc,
		server: &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: router,
		},
		logger: logger,
	}
}

func (a *App) Run(ctx context.Context) error {
	stopHub, err := a.hub.Follow(a.store)
	if err != nil {
		return err
	}
	a.track(stopHub)
	stopMirror, err := a.mirror.Follow(a.store)
	if err != nil {
		return err
	}
	a.track(stopMirror)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.hub.Run(ctx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.mirror.Run(ctx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.consumer.Start(ctx); err != nil && ctx.Err() == nil {
			a.logger.Error("consumer stopped", zap.Error(err))
		}
	}()

	// Open event streams end with ctx so Shutdown is not held by them.
	a.server.BaseContext = func(net.Listener) context.Context { return ctx }

	a.logger.Info("http server listening", zap.String("addr", a.cfg.HTTPAddr))
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) track(stop func()) {
	a.mu.Lock()
	a.unsubscribe = append(a.unsubscribe, stop)
	a.mu.Unlock()
}

// Shutdown stops accepting requests, lets pending fetches complete so their
// final changes reach subscribers, then detaches the hub and the mirror.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("graceful shutdown started")
	shutdownErr := a.server.Shutdown(ctx)

	if err := a.svc.Drain(ctx); err != nil {
		a.logger.Warn("pending fetches not drained", zap.Error(err))
	}

	a.mu.Lock()
	for _, stop := range a.unsubscribe {
		stop()
	}
	a.unsubscribe = nil
	a.mu.Unlock()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if closer, ok := a.publisher.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				a.logger.Warn("publisher close failed", zap.Error(err))
			}
		}
		a.logger.Info("graceful shutdown completed")
		return shutdownErr
	case <-ctx.Done():
		if shutdownErr != nil {
			return shutdownErr
		}
		return ctx.Err()
	}
}

func (a *App) Logger() *zap.Logger {
	return a.logger
}
