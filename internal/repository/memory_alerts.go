package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"aicare-epro/internal/domain"
)

// MemoryAlertsRepo 内存警示仓库（演示环境默认，无 DB 时使用）
// 所有状态转换在锁内检查并应用
type MemoryAlertsRepo struct {
	mu     sync.RWMutex
	alerts map[string]*domain.Alert // alertID -> Alert
}

func NewMemoryAlertsRepo() *MemoryAlertsRepo {
	return &MemoryAlertsRepo{
		alerts: map[string]*domain.Alert{},
	}
}

func (r *MemoryAlertsRepo) CreateAlert(_ context.Context, alert *domain.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if alert.AlertID == "" {
		alert.AlertID = uuid.New().String()
	}
	if alert.Status == "" {
		alert.Status = domain.StatusPending
	}

	copied := *alert
	r.alerts[alert.AlertID] = &copied
	return nil
}

func (r *MemoryAlertsRepo) GetAlert(_ context.Context, alertID string) (*domain.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	alert, ok := r.alerts[alertID]
	if !ok {
		return nil, ErrAlertNotFound
	}
	copied := *alert
	return &copied, nil
}

func (r *MemoryAlertsRepo) ListAlerts(_ context.Context, filters AlertFilters) ([]*domain.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Alert, 0, len(r.alerts))
	for _, alert := range r.alerts {
		if filters.Tier != nil && alert.Tier != *filters.Tier {
			continue
		}
		if filters.Status != nil && alert.Status != *filters.Status {
			continue
		}
		if filters.PatientID != nil && alert.PatientID != *filters.PatientID {
			continue
		}
		copied := *alert
		result = append(result, &copied)
	}

	// createdAt 升序；同刻按 alertID 保证顺序稳定
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].AlertID < result[j].AlertID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MemoryAlertsRepo) Contact(_ context.Context, alertID string, at time.Time) (*domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	alert, ok := r.alerts[alertID]
	if !ok {
		return nil, ErrAlertNotFound
	}

	// 幂等：重复标记已联系视为成功，不更新时间戳
	if alert.Status == domain.StatusContacted {
		copied := *alert
		return &copied, nil
	}
	if !domain.CanTransition(alert.Status, domain.StatusContacted) {
		return nil, ErrInvalidTransition
	}

	alert.Status = domain.StatusContacted
	contactedAt := at
	alert.ContactedAt = &contactedAt

	copied := *alert
	return &copied, nil
}

func (r *MemoryAlertsRepo) Resolve(_ context.Context, alertID string, at time.Time) (*domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	alert, ok := r.alerts[alertID]
	if !ok {
		return nil, ErrAlertNotFound
	}
	if !domain.CanTransition(alert.Status, domain.StatusResolved) {
		return nil, ErrInvalidTransition
	}

	alert.Status = domain.StatusResolved
	resolvedAt := at
	alert.ResolvedAt = &resolvedAt

	copied := *alert
	return &copied, nil
}
