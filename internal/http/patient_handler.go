package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"aicare-epro/internal/repository"
)

// PatientHandler 病人端历史纪录与卫教接口
type PatientHandler struct {
	patients repository.PatientsRepository
	reports  repository.SymptomReportsRepository
	logger   *zap.Logger
}

func NewPatientHandler(
	patients repository.PatientsRepository,
	reports repository.SymptomReportsRepository,
	logger *zap.Logger,
) *PatientHandler {
	return &PatientHandler{
		patients: patients,
		reports:  reports,
		logger:   logger,
	}
}

// ListReports GET /patient/api/v1/reports?patient_id=
// 症状回报历史（createdAt 升序）
func (h *PatientHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	patientID := r.URL.Query().Get("patient_id")
	if patientID == "" {
		writeJSON(w, http.StatusBadRequest, Fail("patient_id is required"))
		return
	}
	if _, err := h.patients.GetPatient(r.Context(), patientID); err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("patient not found"))
			return
		}
		h.logger.Error("Failed to look up patient", zap.String("patient_id", patientID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to look up patient"))
		return
	}

	reports, err := h.reports.ListReportsByPatient(r.Context(), patientID)
	if err != nil {
		h.logger.Error("Failed to list symptom reports",
			zap.String("patient_id", patientID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("failed to list symptom reports"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(reports))
}

// Education GET /patient/api/v1/education
func (h *PatientHandler) Education(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(repository.DemoEducation()))
}
