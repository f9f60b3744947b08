package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"aicare-epro/internal/domain"
)

// StreamNotifier 通过 Redis Streams 发布警示事件
// 个管师端/通知网关作为消费者独立消费，互不阻塞
type StreamNotifier struct {
	client *redis.Client
	stream string // 如 "epro:alerts"
	logger *zap.Logger
}

func NewStreamNotifier(client *redis.Client, stream string, logger *zap.Logger) *StreamNotifier {
	return &StreamNotifier{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (n *StreamNotifier) NotifyAlert(ctx context.Context, alert *domain.Alert) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	id, err := n.client.XAdd(ctx, &redis.XAddArgs{
		Stream: n.stream,
		Values: map[string]interface{}{
			"alert_id":  alert.AlertID,
			"tier":      string(alert.Tier),
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to publish alert to stream: %w", err)
	}

	n.logger.Debug("Published alert notification",
		zap.String("stream", n.stream),
		zap.String("message_id", id),
		zap.String("alert_id", alert.AlertID),
		zap.String("tier", string(alert.Tier)),
	)
	return nil
}
