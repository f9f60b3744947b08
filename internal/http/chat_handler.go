package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"aicare-epro/internal/repository"
	"aicare-epro/internal/service"
)

// ChatHandler 病人端对话回报接口
type ChatHandler struct {
	triage service.TriageService
	logger *zap.Logger
}

func NewChatHandler(triage service.TriageService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		triage: triage,
		logger: logger,
	}
}

type postMessageRequest struct {
	PatientID string `json:"patient_id"`
	Content   string `json:"content"`
}

// PostMessage POST /patient/api/v1/chat/messages
// 任何输入都会收到回复；有评分时响应里带本次创建的警示
func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req postMessageRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if req.PatientID == "" {
		writeJSON(w, http.StatusBadRequest, Fail("patient_id is required"))
		return
	}

	result, err := h.triage.SubmitReport(r.Context(), req.PatientID, req.Content)
	if err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("patient not found"))
			return
		}
		h.logger.Error("Failed to submit report",
			zap.String("patient_id", req.PatientID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("failed to submit report"))
		return
	}

	writeJSON(w, http.StatusOK, Ok(result))
}

// GetHistory GET /patient/api/v1/chat/history?patient_id=
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	patientID := r.URL.Query().Get("patient_id")
	if patientID == "" {
		writeJSON(w, http.StatusBadRequest, Fail("patient_id is required"))
		return
	}

	turns, err := h.triage.ChatHistory(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("patient not found"))
			return
		}
		h.logger.Error("Failed to load chat history",
			zap.String("patient_id", patientID),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load chat history"))
		return
	}

	writeJSON(w, http.StatusOK, Ok(turns))
}
