//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"mockui/internal/app"
	"mockui/internal/config"
	"mockui/internal/http"
	"mockui/internal/http/controller"
	"mockui/internal/logging"
	"mockui/internal/queue/rabbitmq"
	"mockui/internal/service/helper"
	"mockui/internal/service/mirror"
	"mockui/internal/sse"
	"mockui/internal/store"
	"mockui/internal/telemetry"
)

func InitializeApp(cfg *config.Config) (*app.App, error) {
	wire.Build(
		logging.New,
		store.NewStore,
		sse.NewHub,
		telemetry.NewMetrics,
		helper.NewService,
		controller.NewHandler,
		http.NewRouter,
		rabbitmq.NewPublisher,
		rabbitmq.NewConsumer,
		mirror.New,
		app.NewApp,
	)
	return &app.App{}, nil
}
