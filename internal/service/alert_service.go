package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"aicare-epro/internal/domain"
	"aicare-epro/internal/repository"
)

// AlertService 警示生命周期服务接口
// 分级在创建时按严重度冻结；状态只前进不回退（状态机见 domain.CanTransition）
type AlertService interface {
	// 创建警示（每条达到落点的症状回报都生成新警示，不做合并）
	CreateAlert(ctx context.Context, patientID string, category domain.SymptomCategory, severity int, createdAt time.Time) (*domain.Alert, error)

	// 标记已联系（重复调用幂等成功）
	Contact(ctx context.Context, alertID string) (*domain.Alert, error)

	// 标记已处理
	Resolve(ctx context.Context, alertID string) (*domain.Alert, error)

	// 指定分级的待处理队列（createdAt 升序，最早未处理优先）
	PendingByTier(ctx context.Context, tier domain.AlertTier) ([]*domain.Alert, error)

	// 警示列表（个管师工作台展示）
	ListAlerts(ctx context.Context, filters repository.AlertFilters) ([]*domain.Alert, error)

	// 工作台摘要（SLA 逾期为查询时计算，无后台定时任务）
	Summary(ctx context.Context) (*WorklistSummary, error)
}

// WorklistSummary 个管师工作台摘要
type WorklistSummary struct {
	RedPending    int `json:"red_pending"`
	YellowPending int `json:"yellow_pending"`
	Overdue       int `json:"overdue"` // 已过 SLA 期限仍未处理完的警示数
	Resolved      int `json:"resolved"`
}

type alertService struct {
	alertsRepo repository.AlertsRepository
	logger     *zap.Logger
}

func NewAlertService(alertsRepo repository.AlertsRepository, logger *zap.Logger) AlertService {
	return &alertService{
		alertsRepo: alertsRepo,
		logger:     logger,
	}
}

func (s *alertService) CreateAlert(ctx context.Context, patientID string, category domain.SymptomCategory, severity int, createdAt time.Time) (*domain.Alert, error) {
	alert := &domain.Alert{
		PatientID:       patientID,
		Tier:            domain.TierForSeverity(severity),
		Status:          domain.StatusPending,
		SymptomCategory: category,
		Severity:        severity,
		CreatedAt:       createdAt,
	}

	if err := s.alertsRepo.CreateAlert(ctx, alert); err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}

	s.logger.Info("Alert created",
		zap.String("alert_id", alert.AlertID),
		zap.String("patient_id", patientID),
		zap.String("tier", string(alert.Tier)),
		zap.Int("severity", severity),
	)
	return alert, nil
}

func (s *alertService) Contact(ctx context.Context, alertID string) (*domain.Alert, error) {
	alert, err := s.alertsRepo.Contact(ctx, alertID, time.Now())
	if err != nil {
		return nil, err
	}

	s.logger.Info("Alert contacted",
		zap.String("alert_id", alertID),
		zap.String("patient_id", alert.PatientID),
	)
	return alert, nil
}

func (s *alertService) Resolve(ctx context.Context, alertID string) (*domain.Alert, error) {
	alert, err := s.alertsRepo.Resolve(ctx, alertID, time.Now())
	if err != nil {
		return nil, err
	}

	s.logger.Info("Alert resolved",
		zap.String("alert_id", alertID),
		zap.String("patient_id", alert.PatientID),
	)
	return alert, nil
}

func (s *alertService) PendingByTier(ctx context.Context, tier domain.AlertTier) ([]*domain.Alert, error) {
	status := domain.StatusPending
	return s.alertsRepo.ListAlerts(ctx, repository.AlertFilters{
		Tier:   &tier,
		Status: &status,
	})
}

func (s *alertService) ListAlerts(ctx context.Context, filters repository.AlertFilters) ([]*domain.Alert, error) {
	return s.alertsRepo.ListAlerts(ctx, filters)
}

func (s *alertService) Summary(ctx context.Context) (*WorklistSummary, error) {
	alerts, err := s.alertsRepo.ListAlerts(ctx, repository.AlertFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load alerts for summary: %w", err)
	}

	now := time.Now()
	summary := &WorklistSummary{}
	for _, alert := range alerts {
		switch alert.Status {
		case domain.StatusResolved:
			summary.Resolved++
			continue
		case domain.StatusPending:
			switch alert.Tier {
			case domain.TierRed:
				summary.RedPending++
			case domain.TierYellow:
				summary.YellowPending++
			}
		}

		// pending/contacted 且已过期限均计入逾期
		if deadline, ok := alert.SLADeadline(); ok && now.After(deadline) {
			summary.Overdue++
		}
	}
	return summary, nil
}
