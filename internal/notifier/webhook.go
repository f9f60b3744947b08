package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"aicare-epro/internal/domain"
)

// WebhookNotifier 通知外呼网关（个管师电联系统）的 HTTP 客户端
// 仅投递警示摘要；网关收到后自行排程外呼，这里不等待处理结果
type WebhookNotifier struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// webhookPayload 投递给外呼网关的请求体
type webhookPayload struct {
	AlertID   string `json:"alert_id"`
	PatientID string `json:"patient_id"`
	Tier      string `json:"tier"`
	Category  string `json:"category"`
	Severity  int    `json:"severity"`
	CreatedAt string `json:"created_at"`
}

func NewWebhookNotifier(baseURL string, logger *zap.Logger) *WebhookNotifier {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &WebhookNotifier{
		httpClient: client,
		logger:     logger,
	}
}

func (n *WebhookNotifier) NotifyAlert(ctx context.Context, alert *domain.Alert) error {
	payload := webhookPayload{
		AlertID:   alert.AlertID,
		PatientID: alert.PatientID,
		Tier:      string(alert.Tier),
		Category:  string(alert.SymptomCategory),
		Severity:  alert.Severity,
		CreatedAt: alert.CreatedAt.Format(time.RFC3339),
	}

	resp, err := n.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/callouts")
	if err != nil {
		return fmt.Errorf("failed to deliver alert webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("alert webhook rejected: status=%d body=%s", resp.StatusCode(), resp.String())
	}

	n.logger.Debug("Delivered alert webhook",
		zap.String("alert_id", alert.AlertID),
		zap.Int("status", resp.StatusCode()),
	)
	return nil
}

// MultiNotifier 依次投递到多个通知通道，任一失败不影响其余通道
type MultiNotifier struct {
	notifiers []Notifier
	logger    *zap.Logger
}

func NewMultiNotifier(logger *zap.Logger, notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{
		notifiers: notifiers,
		logger:    logger,
	}
}

func (n *MultiNotifier) NotifyAlert(ctx context.Context, alert *domain.Alert) error {
	var lastErr error
	for _, notifier := range n.notifiers {
		if err := notifier.NotifyAlert(ctx, alert); err != nil {
			n.logger.Warn("Alert notification channel failed",
				zap.String("alert_id", alert.AlertID),
				zap.Error(err),
			)
			lastErr = err
		}
	}
	return lastErr
}
