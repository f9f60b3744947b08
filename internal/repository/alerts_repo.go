package repository

import (
	"context"
	"errors"
	"time"

	"aicare-epro/internal/domain"
)

// 警示操作的类型化失败，调用方（个管师端）据此区分 409 / 404
var (
	// ErrAlertNotFound 警示不存在
	ErrAlertNotFound = errors.New("alert not found")
	// ErrInvalidTransition 状态转换违反状态机（如对已处理警示再次操作）
	ErrInvalidTransition = errors.New("invalid alert status transition")
)

// AlertsRepository 警示仓库接口
// 状态转换必须在仓库内原子地检查并应用（check-and-apply），
// 避免并发的 Contact/Resolve 在同一警示上竞争。
type AlertsRepository interface {
	// 创建警示（初始状态 pending；tier 由调用方按严重度冻结）
	CreateAlert(ctx context.Context, alert *domain.Alert) error

	// 获取单个警示
	GetAlert(ctx context.Context, alertID string) (*domain.Alert, error)

	// 查询警示列表（createdAt 升序，最早未处理优先）
	ListAlerts(ctx context.Context, filters AlertFilters) ([]*domain.Alert, error)

	// 标记已联系（pending → contacted）
	// 对已是 contacted 的警示重复调用为幂等成功（不更新时间戳）；
	// 对 resolved 返回 ErrInvalidTransition。
	Contact(ctx context.Context, alertID string, at time.Time) (*domain.Alert, error)

	// 标记已处理（pending/contacted → resolved）
	// 对 resolved 返回 ErrInvalidTransition。
	Resolve(ctx context.Context, alertID string, at time.Time) (*domain.Alert, error)
}

// AlertFilters 警示过滤条件
type AlertFilters struct {
	Tier      *domain.AlertTier   // 分级过滤
	Status    *domain.AlertStatus // 状态过滤
	PatientID *string             // 病人过滤
}
