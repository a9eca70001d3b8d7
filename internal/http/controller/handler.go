package controller

import (
	"go.uber.org/zap"
	"mockui/internal/config"
	"mockui/internal/repository"
	"mockui/internal/service/helper"
	"mockui/internal/sse"
)

type Handler struct {
	cfg   *config.Config
	svc   *helper.Service
	store repository.MetaStore
	hub   *sse.Hub
	log   *zap.Logger
}

func NewHandler(cfg *config.Config, svc *helper.Service, hub *sse.Hub, logger *zap.Logger) *Handler {
	return &Handler{cfg: cfg, svc: svc, store: svc.Meta(), hub: hub, log: logger}
}
