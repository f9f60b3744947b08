package notifier

import (
	"context"

	"aicare-epro/internal/domain"
)

// Notifier 警示通知发布接口
// 通知是 fire-and-forget：失败只记录日志，不影响分诊和警示创建；
// 真正的电话/消息触达由下游系统自行重试。
type Notifier interface {
	NotifyAlert(ctx context.Context, alert *domain.Alert) error
}

// NopNotifier 空实现（未配置通知通道时使用）
type NopNotifier struct{}

func NewNopNotifier() *NopNotifier { return &NopNotifier{} }

func (n *NopNotifier) NotifyAlert(_ context.Context, _ *domain.Alert) error { return nil }
