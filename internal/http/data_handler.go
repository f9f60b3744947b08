package httpapi

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"aicare-epro/internal/repository"
)

// DataHandler 研究数据看板接口（只读统计）
type DataHandler struct {
	patients repository.PatientsRepository
	logger   *zap.Logger
}

func NewDataHandler(patients repository.PatientsRepository, logger *zap.Logger) *DataHandler {
	return &DataHandler{patients: patients, logger: logger}
}

// Compliance GET /data/api/v1/compliance
// 每月顺从度统计（演示数据）
func (h *DataHandler) Compliance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(repository.DemoCompliance()))
}

// Trend GET /data/api/v1/trend?patient_id=
// 指定病人的近7日症状趋势（演示数据）
func (h *DataHandler) Trend(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, Ok(repository.DemoTrend(time.Now())))
}
