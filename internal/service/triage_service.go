package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"aicare-epro/internal/domain"
	"aicare-epro/internal/notifier"
	"aicare-epro/internal/repository"
	"aicare-epro/internal/session"
	"aicare-epro/internal/triage"
)

// TriageService 分诊服务接口
// 每条病人输入：分类 → 追加对话历史 → 有评分时落库回报并创建警示
type TriageService interface {
	SubmitReport(ctx context.Context, patientID, content string) (*SubmitResult, error)
	ChatHistory(ctx context.Context, patientID string) ([]domain.ChatTurn, error)
}

// SubmitResult 一次回报的处理结果
type SubmitResult struct {
	Reply    string                 `json:"reply"`
	Category domain.SymptomCategory `json:"category"`
	Severity *int                   `json:"severity,omitempty"`
	Alert    *domain.Alert          `json:"alert,omitempty"` // 本次回报触发创建的警示
}

type triageService struct {
	patientsRepo repository.PatientsRepository
	reportsRepo  repository.SymptomReportsRepository
	alertService AlertService
	history      session.HistoryStore
	notifier     notifier.Notifier
	logger       *zap.Logger
}

func NewTriageService(
	patientsRepo repository.PatientsRepository,
	reportsRepo repository.SymptomReportsRepository,
	alertService AlertService,
	history session.HistoryStore,
	alertNotifier notifier.Notifier,
	logger *zap.Logger,
) TriageService {
	return &triageService{
		patientsRepo: patientsRepo,
		reportsRepo:  reportsRepo,
		alertService: alertService,
		history:      history,
		notifier:     alertNotifier,
		logger:       logger,
	}
}

func (s *triageService) SubmitReport(ctx context.Context, patientID, content string) (*SubmitResult, error) {
	// 1. 名录校验（弱引用，仅确认病人存在）
	if _, err := s.patientsRepo.GetPatient(ctx, patientID); err != nil {
		return nil, err
	}

	// 2. 分类（纯函数，任何输入都有回复）
	classification := triage.Classify(content)
	now := time.Now()

	// 3. 追加对话历史（病人输入 + 助手回复）
	err := s.history.Append(ctx, patientID,
		domain.ChatTurn{Role: domain.RolePatient, Content: content, Timestamp: now},
		domain.ChatTurn{Role: domain.RoleAssistant, Content: classification.Reply, Timestamp: now},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append chat history: %w", err)
	}

	result := &SubmitResult{
		Reply:    classification.Reply,
		Category: classification.Category,
		Severity: classification.Severity,
	}

	// 4. 无评分（关键词命中或无法识别）：只记录对话，不产生回报/警示
	if classification.Severity == nil {
		return result, nil
	}

	// 5. 落库症状回报
	report := &domain.SymptomReport{
		PatientID: patientID,
		RawInput:  content,
		Category:  classification.Category,
		Severity:  classification.Severity,
		CreatedAt: now,
	}
	if err := s.reportsRepo.CreateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to persist symptom report: %w", err)
	}

	// 6. 创建警示（green 也创建，保留完整稽核轨迹）
	alert, err := s.alertService.CreateAlert(ctx, patientID, classification.Category, *classification.Severity, now)
	if err != nil {
		return nil, err
	}
	result.Alert = alert

	// 7. 红色警示通知外呼（fire-and-forget，失败只记日志）
	if alert.Tier == domain.TierRed {
		s.notifyAsync(alert)
	}

	return result, nil
}

func (s *triageService) ChatHistory(ctx context.Context, patientID string) ([]domain.ChatTurn, error) {
	if _, err := s.patientsRepo.GetPatient(ctx, patientID); err != nil {
		return nil, err
	}
	return s.history.History(ctx, patientID)
}

// notifyAsync 异步投递通知，不阻塞回报流程
func (s *triageService) notifyAsync(alert *domain.Alert) {
	copied := *alert
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := s.notifier.NotifyAlert(ctx, &copied); err != nil {
			s.logger.Warn("Failed to deliver alert notification",
				zap.String("alert_id", copied.AlertID),
				zap.String("tier", string(copied.Tier)),
				zap.Error(err),
			)
		}
	}()
}
