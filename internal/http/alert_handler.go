package httpapi

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"aicare-epro/internal/domain"
	"aicare-epro/internal/repository"
	"aicare-epro/internal/service"
)

// AlertHandler 个管师警示工作台接口
type AlertHandler struct {
	alerts   service.AlertService
	patients repository.PatientsRepository
	logger   *zap.Logger
}

func NewAlertHandler(alerts service.AlertService, patients repository.PatientsRepository, logger *zap.Logger) *AlertHandler {
	return &AlertHandler{
		alerts:   alerts,
		patients: patients,
		logger:   logger,
	}
}

// AlertDTO 警示展示数据（带病人信息与 SLA 期限）
type AlertDTO struct {
	*domain.Alert
	PatientName string     `json:"patient_name,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	SLADeadline *time.Time `json:"sla_deadline,omitempty"`
	Overdue     bool       `json:"overdue"`
}

func (h *AlertHandler) toDTO(r *http.Request, alert *domain.Alert) *AlertDTO {
	dto := &AlertDTO{Alert: alert}

	if deadline, ok := alert.SLADeadline(); ok {
		dto.SLADeadline = &deadline
		dto.Overdue = alert.Status != domain.StatusResolved && time.Now().After(deadline)
	}
	// 名录查不到时仅省略展示信息，不影响警示本身
	if patient, err := h.patients.GetPatient(r.Context(), alert.PatientID); err == nil {
		dto.PatientName = patient.Name
		dto.Phone = patient.Phone
	}
	return dto
}

// ListAlerts GET /manager/api/v1/alerts?tier=&status=
// 默认返回全部，createdAt 升序（最早未处理优先）
func (h *AlertHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	filters := repository.AlertFilters{}
	if tier := r.URL.Query().Get("tier"); tier != "" {
		t := domain.AlertTier(tier)
		filters.Tier = &t
	}
	if status := r.URL.Query().Get("status"); status != "" {
		s := domain.AlertStatus(status)
		filters.Status = &s
	}

	alerts, err := h.alerts.ListAlerts(r.Context(), filters)
	if err != nil {
		h.logger.Error("Failed to list alerts", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to list alerts"))
		return
	}

	items := make([]*AlertDTO, 0, len(alerts))
	for _, alert := range alerts {
		items = append(items, h.toDTO(r, alert))
	}
	writeJSON(w, http.StatusOK, Ok(items))
}

// Contact POST /manager/api/v1/alerts/{id}/contact
func (h *AlertHandler) Contact(w http.ResponseWriter, r *http.Request, alertID string) {
	alert, err := h.alerts.Contact(r.Context(), alertID)
	if err != nil {
		h.writeTransitionError(w, alertID, "contact", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(h.toDTO(r, alert)))
}

// Resolve POST /manager/api/v1/alerts/{id}/resolve
func (h *AlertHandler) Resolve(w http.ResponseWriter, r *http.Request, alertID string) {
	alert, err := h.alerts.Resolve(r.Context(), alertID)
	if err != nil {
		h.writeTransitionError(w, alertID, "resolve", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(h.toDTO(r, alert)))
}

// writeTransitionError 状态转换失败必须明确回报给个管师端，不允许静默吞掉
func (h *AlertHandler) writeTransitionError(w http.ResponseWriter, alertID, action string, err error) {
	switch {
	case errors.Is(err, repository.ErrAlertNotFound):
		writeJSON(w, http.StatusNotFound, Fail("alert not found"))
	case errors.Is(err, repository.ErrInvalidTransition):
		writeJSON(w, http.StatusConflict, Fail("invalid alert status transition"))
	default:
		h.logger.Error("Alert action failed",
			zap.String("alert_id", alertID),
			zap.String("action", action),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("alert action failed"))
	}
}

// Summary GET /manager/api/v1/summary
func (h *AlertHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.alerts.Summary(r.Context())
	if err != nil {
		h.logger.Error("Failed to build worklist summary", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to build summary"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(summary))
}
