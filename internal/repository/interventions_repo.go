package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"aicare-epro/internal/domain"
)

// InterventionsRepository 介入纪录仓库接口
type InterventionsRepository interface {
	CreateRecord(ctx context.Context, record *domain.InterventionRecord) error
	// ListRecords 按时间倒序（最近优先），展示用
	ListRecords(ctx context.Context) ([]*domain.InterventionRecord, error)
}

// MemoryInterventionsRepo 内存介入纪录仓库
type MemoryInterventionsRepo struct {
	mu      sync.RWMutex
	records []*domain.InterventionRecord
}

func NewMemoryInterventionsRepo() *MemoryInterventionsRepo {
	return &MemoryInterventionsRepo{}
}

func (r *MemoryInterventionsRepo) CreateRecord(_ context.Context, record *domain.InterventionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.RecordID == "" {
		record.RecordID = uuid.New().String()
	}
	copied := *record
	r.records = append(r.records, &copied)
	return nil
}

func (r *MemoryInterventionsRepo) ListRecords(_ context.Context) ([]*domain.InterventionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.InterventionRecord, 0, len(r.records))
	for _, record := range r.records {
		copied := *record
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}
