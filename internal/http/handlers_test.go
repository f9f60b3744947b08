package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aicare-epro/internal/domain"
	"aicare-epro/internal/notifier"
	"aicare-epro/internal/repository"
	"aicare-epro/internal/service"
	"aicare-epro/internal/session"
)

type testServer struct {
	router   *Router
	alertSvc service.AlertService
}

func setupTestServer(t *testing.T) *testServer {
	logger := zap.NewNop()

	patients := repository.NewMemoryPatientsRepo()
	patients.SeedPatients(repository.DemoPatients())
	alertsRepo := repository.NewMemoryAlertsRepo()
	reports := repository.NewMemorySymptomReportsRepo()
	interventions := repository.NewMemoryInterventionsRepo()
	history := session.NewMemoryHistoryStore()

	alertSvc := service.NewAlertService(alertsRepo, logger)
	triageSvc := service.NewTriageService(patients, reports, alertSvc, history, notifier.NewNopNotifier(), logger)

	router := NewRouter(logger)
	router.RegisterPatientRoutes(
		NewChatHandler(triageSvc, logger),
		NewPatientHandler(patients, reports, logger),
	)
	router.RegisterManagerRoutes(
		NewAlertHandler(alertSvc, patients, logger),
		NewManagerHandler(patients, interventions, logger),
	)
	router.RegisterDataRoutes(NewDataHandler(patients, logger))

	return &testServer{router: router, alertSvc: alertSvc}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeResult[T any](t *testing.T, rec *httptest.ResponseRecorder) Result[T] {
	t.Helper()
	var result Result[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result
}

func TestPostMessage_HighScoreCreatesAlert(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(t, http.MethodPost, "/patient/api/v1/chat/messages",
		map[string]string{"patient_id": "P001", "content": "7"})

	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeResult[*service.SubmitResult](t, rec)
	assert.Equal(t, ResultSuccess, result.Code)
	require.NotNil(t, result.Result.Severity)
	assert.Equal(t, 7, *result.Result.Severity)
	assert.Contains(t, result.Result.Reply, "30 分鐘內")
	require.NotNil(t, result.Result.Alert)
	assert.Equal(t, domain.TierRed, result.Result.Alert.Tier)
	assert.Equal(t, domain.StatusPending, result.Result.Alert.Status)
}

func TestPostMessage_KeywordNoAlert(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(t, http.MethodPost, "/patient/api/v1/chat/messages",
		map[string]string{"patient_id": "P001", "content": "胸口悶悶的"})

	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeResult[*service.SubmitResult](t, rec)
	assert.Equal(t, domain.CategoryDyspnea, result.Result.Category)
	assert.Nil(t, result.Result.Severity)
	assert.Nil(t, result.Result.Alert)
}

func TestPostMessage_UnknownPatient(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(t, http.MethodPost, "/patient/api/v1/chat/messages",
		map[string]string{"patient_id": "P999", "content": "7"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostMessage_MissingPatientID(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(t, http.MethodPost, "/patient/api/v1/chat/messages",
		map[string]string{"content": "7"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatHistory_RoundTrip(t *testing.T) {
	s := setupTestServer(t)

	s.do(t, http.MethodPost, "/patient/api/v1/chat/messages",
		map[string]string{"patient_id": "P001", "content": "有點累"})

	rec := s.do(t, http.MethodGet, "/patient/api/v1/chat/history?patient_id=P001", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	result := decodeResult[[]domain.ChatTurn](t, rec)
	require.Len(t, result.Result, 2)
	assert.Equal(t, domain.RolePatient, result.Result[0].Role)
	assert.Equal(t, domain.RoleAssistant, result.Result[1].Role)
}

func TestAlertWorklist_FilterAndOrder(t *testing.T) {
	s := setupTestServer(t)
	ctx := context.Background()

	t1 := time.Now().Add(-time.Hour)
	t2 := time.Now().Add(-30 * time.Minute)
	first, err := s.alertSvc.CreateAlert(ctx, "P001", domain.CategoryDyspnea, 8, t1)
	require.NoError(t, err)
	second, err := s.alertSvc.CreateAlert(ctx, "P002", domain.CategoryDyspnea, 9, t2)
	require.NoError(t, err)
	_, err = s.alertSvc.CreateAlert(ctx, "P003", domain.CategoryFatigue, 5, time.Now())
	require.NoError(t, err)

	rec := s.do(t, http.MethodGet, "/manager/api/v1/alerts?tier=red&status=pending", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	result := decodeResult[[]*AlertDTO](t, rec)
	require.Len(t, result.Result, 2)
	assert.Equal(t, first.AlertID, result.Result[0].AlertID)
	assert.Equal(t, second.AlertID, result.Result[1].AlertID)
	assert.Equal(t, "王大明", result.Result[0].PatientName)
	require.NotNil(t, result.Result[0].SLADeadline)
	assert.True(t, result.Result[0].Overdue) // 红色创建已超过30分钟
	assert.False(t, result.Result[1].Overdue)
}

func TestAlertActions_ContactThenResolve(t *testing.T) {
	s := setupTestServer(t)

	alert, err := s.alertSvc.CreateAlert(context.Background(), "P001", domain.CategoryDyspnea, 8, time.Now())
	require.NoError(t, err)

	rec := s.do(t, http.MethodPost, fmt.Sprintf("/manager/api/v1/alerts/%s/contact", alert.AlertID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	contacted := decodeResult[*AlertDTO](t, rec)
	assert.Equal(t, domain.StatusContacted, contacted.Result.Status)

	rec = s.do(t, http.MethodPost, fmt.Sprintf("/manager/api/v1/alerts/%s/resolve", alert.AlertID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resolved := decodeResult[*AlertDTO](t, rec)
	assert.Equal(t, domain.StatusResolved, resolved.Result.Status)
}

func TestAlertActions_ResolveThenContactConflicts(t *testing.T) {
	s := setupTestServer(t)

	alert, err := s.alertSvc.CreateAlert(context.Background(), "P001", domain.CategoryDyspnea, 8, time.Now())
	require.NoError(t, err)

	rec := s.do(t, http.MethodPost, fmt.Sprintf("/manager/api/v1/alerts/%s/resolve", alert.AlertID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, fmt.Sprintf("/manager/api/v1/alerts/%s/contact", alert.AlertID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, fmt.Sprintf("/manager/api/v1/alerts/%s/resolve", alert.AlertID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAlertActions_UnknownAlert(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(t, http.MethodPost, "/manager/api/v1/alerts/missing/contact", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSummary(t *testing.T) {
	s := setupTestServer(t)
	ctx := context.Background()

	_, err := s.alertSvc.CreateAlert(ctx, "P001", domain.CategoryDyspnea, 8, time.Now())
	require.NoError(t, err)
	_, err = s.alertSvc.CreateAlert(ctx, "P002", domain.CategoryFatigue, 5, time.Now())
	require.NoError(t, err)

	rec := s.do(t, http.MethodGet, "/manager/api/v1/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	result := decodeResult[*service.WorklistSummary](t, rec)
	assert.Equal(t, 1, result.Result.RedPending)
	assert.Equal(t, 1, result.Result.YellowPending)
}

func TestListPatients_Search(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(t, http.MethodGet, "/manager/api/v1/patients", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decodeResult[[]*domain.Patient](t, rec)
	assert.Len(t, all.Result, 5)

	rec = s.do(t, http.MethodGet, "/manager/api/v1/patients?search=王", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	filtered := decodeResult[[]*domain.Patient](t, rec)
	require.Len(t, filtered.Result, 1)
	assert.Equal(t, "P001", filtered.Result[0].PatientID)
}

func TestInterventions_CreateAndList(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(t, http.MethodPost, "/manager/api/v1/interventions", map[string]string{
		"patient_id": "P001",
		"channel":    "電話",
		"content":    "呼吸困難症狀評估，已給予衛教。",
		"duration":   "8分鐘",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/manager/api/v1/interventions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeResult[[]*domain.InterventionRecord](t, rec)
	require.Len(t, result.Result, 1)
	assert.Equal(t, "P001", result.Result[0].PatientID)
}

func TestStaticDataEndpoints(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(t, http.MethodGet, "/patient/api/v1/education", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	education := decodeResult[[]*domain.EducationItem](t, rec)
	assert.NotEmpty(t, education.Result)

	rec = s.do(t, http.MethodGet, "/data/api/v1/compliance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	compliance := decodeResult[[]*domain.ComplianceStat](t, rec)
	assert.Len(t, compliance.Result, 6)

	rec = s.do(t, http.MethodGet, "/manager/api/v1/schedule", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestTrendRequiresKnownPatient(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(t, http.MethodGet, "/data/api/v1/trend?patient_id=P001", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	trend := decodeResult[[]*domain.TrendPoint](t, rec)
	assert.Len(t, trend.Result, 7)

	rec = s.do(t, http.MethodGet, "/data/api/v1/trend", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/data/api/v1/trend?patient_id=P999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(t, http.MethodGet, "/patient/api/v1/chat/messages", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = s.do(t, http.MethodDelete, "/manager/api/v1/alerts", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
