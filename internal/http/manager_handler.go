package httpapi

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"aicare-epro/internal/domain"
	"aicare-epro/internal/repository"
)

// ManagerHandler 个管师端名单/纪录/排程接口
type ManagerHandler struct {
	patients      repository.PatientsRepository
	interventions repository.InterventionsRepository
	logger        *zap.Logger
}

func NewManagerHandler(
	patients repository.PatientsRepository,
	interventions repository.InterventionsRepository,
	logger *zap.Logger,
) *ManagerHandler {
	return &ManagerHandler{
		patients:      patients,
		interventions: interventions,
		logger:        logger,
	}
}

// ListPatients GET /manager/api/v1/patients?search=
func (h *ManagerHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	patients, err := h.patients.ListPatients(r.Context(), search)
	if err != nil {
		h.logger.Error("Failed to list patients", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to list patients"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(patients))
}

// ListInterventions GET /manager/api/v1/interventions
func (h *ManagerHandler) ListInterventions(w http.ResponseWriter, r *http.Request) {
	records, err := h.interventions.ListRecords(r.Context())
	if err != nil {
		h.logger.Error("Failed to list interventions", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to list interventions"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(records))
}

type createInterventionRequest struct {
	PatientID string  `json:"patient_id"`
	Channel   string  `json:"channel"`
	Content   string  `json:"content"`
	Duration  string  `json:"duration"`
	Referral  *string `json:"referral,omitempty"`
}

// CreateIntervention POST /manager/api/v1/interventions
func (h *ManagerHandler) CreateIntervention(w http.ResponseWriter, r *http.Request) {
	var req createInterventionRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if req.PatientID == "" || req.Content == "" {
		writeJSON(w, http.StatusBadRequest, Fail("patient_id and content are required"))
		return
	}

	record := &domain.InterventionRecord{
		PatientID: req.PatientID,
		Channel:   req.Channel,
		Content:   req.Content,
		Duration:  req.Duration,
		Referral:  req.Referral,
		CreatedAt: time.Now(),
	}
	if err := h.interventions.CreateRecord(r.Context(), record); err != nil {
		h.logger.Error("Failed to create intervention record",
			zap.String("patient_id", req.PatientID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("failed to create intervention record"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(record))
}

// Schedule GET /manager/api/v1/schedule
func (h *ManagerHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(repository.DemoSchedule()))
}
