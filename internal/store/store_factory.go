package store

import (
	"go.uber.org/zap"
	"mockui/internal/domain"
	"mockui/internal/repository"
	"mockui/internal/store/memory"
)

// NewStore returns the metadata store backing one helper instance. Records
// only live for the lifetime of the process.
func NewStore(logger *zap.Logger) repository.MetaStore {
	logger.Debug("metadata store created", zap.Strings("lists", domain.Lists))
	return memory.New(logger)
}
