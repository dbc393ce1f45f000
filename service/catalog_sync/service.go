package catalog_sync

import (
	"context"

	"datastandard-service/service/catalog_store"
	"datastandard-service/service/history"
	"datastandard-service/service/models"
)

// Service 目录同步服务
type Service struct {
	store   *catalog_store.Store
	history *history.Service
}

// NewService 创建目录同步服务，history 可为 nil
func NewService(store *catalog_store.Store, history *history.Service) *Service {
	return &Service{store: store, history: history}
}

func (s *Service) recordSync(ctx context.Context, catalogType, filename string, updated int) {
	s.history.Record(ctx, models.HistoryLog{
		Action:      models.HistoryActionSync,
		CatalogType: catalogType,
		Filename:    filename,
		Details:     map[string]interface{}{"updated": updated},
	})
}
