package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aicare-epro/internal/domain"
)

func setupMockAlertsDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresAlertsRepo) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger := zap.NewNop()
	repo := NewPostgresAlertsRepo(db, logger)

	return db, mock, repo
}

func alertRows(alertID, patientID string, tier domain.AlertTier, status domain.AlertStatus, severity int, createdAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"alert_id", "patient_id", "tier", "status", "symptom_category",
		"severity", "created_at", "contacted_at", "resolved_at",
	}).AddRow(
		alertID, patientID, string(tier), string(status), "dyspnea",
		severity, createdAt, nil, nil,
	)
}

func TestPostgresAlertsRepo_CreateAlert(t *testing.T) {
	db, mock, repo := setupMockAlertsDB(t)
	defer db.Close()

	alert := &domain.Alert{
		PatientID:       "P001",
		Tier:            domain.TierRed,
		Status:          domain.StatusPending,
		SymptomCategory: domain.CategoryDyspnea,
		Severity:        8,
		CreatedAt:       time.Now(),
	}

	mock.ExpectExec(`INSERT INTO alerts`).
		WithArgs(sqlmock.AnyArg(), "P001", "red", "pending", "dyspnea", 8, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateAlert(context.Background(), alert)

	require.NoError(t, err)
	assert.NotEmpty(t, alert.AlertID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAlertsRepo_GetAlert_NotFound(t *testing.T) {
	db, mock, repo := setupMockAlertsDB(t)
	defer db.Close()

	alertID := uuid.New().String()
	mock.ExpectQuery(`SELECT`).
		WithArgs(alertID).
		WillReturnError(sql.ErrNoRows)

	alert, err := repo.GetAlert(context.Background(), alertID)

	assert.ErrorIs(t, err, ErrAlertNotFound)
	assert.Nil(t, alert)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAlertsRepo_Contact_Success(t *testing.T) {
	db, mock, repo := setupMockAlertsDB(t)
	defer db.Close()

	alertID := uuid.New().String()
	createdAt := time.Now().Add(-10 * time.Minute)

	mock.ExpectExec(`UPDATE alerts`).
		WithArgs("contacted", sqlmock.AnyArg(), alertID, "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT`).
		WithArgs(alertID).
		WillReturnRows(alertRows(alertID, "P001", domain.TierRed, domain.StatusContacted, 8, createdAt))

	alert, err := repo.Contact(context.Background(), alertID, time.Now())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusContacted, alert.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAlertsRepo_Contact_IdempotentOnContacted(t *testing.T) {
	db, mock, repo := setupMockAlertsDB(t)
	defer db.Close()

	alertID := uuid.New().String()
	createdAt := time.Now().Add(-10 * time.Minute)

	// 条件 UPDATE 未命中（已是 contacted），回读后视为幂等成功
	mock.ExpectExec(`UPDATE alerts`).
		WithArgs("contacted", sqlmock.AnyArg(), alertID, "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT`).
		WithArgs(alertID).
		WillReturnRows(alertRows(alertID, "P001", domain.TierRed, domain.StatusContacted, 8, createdAt))

	alert, err := repo.Contact(context.Background(), alertID, time.Now())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusContacted, alert.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAlertsRepo_Contact_OnResolvedFails(t *testing.T) {
	db, mock, repo := setupMockAlertsDB(t)
	defer db.Close()

	alertID := uuid.New().String()
	createdAt := time.Now().Add(-2 * time.Hour)

	mock.ExpectExec(`UPDATE alerts`).
		WithArgs("contacted", sqlmock.AnyArg(), alertID, "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT`).
		WithArgs(alertID).
		WillReturnRows(alertRows(alertID, "P001", domain.TierGreen, domain.StatusResolved, 2, createdAt))

	alert, err := repo.Contact(context.Background(), alertID, time.Now())

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, alert)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAlertsRepo_Contact_NotFound(t *testing.T) {
	db, mock, repo := setupMockAlertsDB(t)
	defer db.Close()

	alertID := uuid.New().String()

	mock.ExpectExec(`UPDATE alerts`).
		WithArgs("contacted", sqlmock.AnyArg(), alertID, "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT`).
		WithArgs(alertID).
		WillReturnError(sql.ErrNoRows)

	alert, err := repo.Contact(context.Background(), alertID, time.Now())

	assert.ErrorIs(t, err, ErrAlertNotFound)
	assert.Nil(t, alert)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAlertsRepo_Resolve_Success(t *testing.T) {
	db, mock, repo := setupMockAlertsDB(t)
	defer db.Close()

	alertID := uuid.New().String()
	createdAt := time.Now().Add(-30 * time.Minute)

	mock.ExpectExec(`UPDATE alerts`).
		WithArgs("resolved", sqlmock.AnyArg(), alertID, "pending", "contacted").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT`).
		WithArgs(alertID).
		WillReturnRows(alertRows(alertID, "P002", domain.TierYellow, domain.StatusResolved, 5, createdAt))

	alert, err := repo.Resolve(context.Background(), alertID, time.Now())

	require.NoError(t, err)
	assert.Equal(t, domain.StatusResolved, alert.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAlertsRepo_Resolve_OnResolvedFails(t *testing.T) {
	db, mock, repo := setupMockAlertsDB(t)
	defer db.Close()

	alertID := uuid.New().String()
	createdAt := time.Now().Add(-2 * time.Hour)

	mock.ExpectExec(`UPDATE alerts`).
		WithArgs("resolved", sqlmock.AnyArg(), alertID, "pending", "contacted").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT`).
		WithArgs(alertID).
		WillReturnRows(alertRows(alertID, "P004", domain.TierGreen, domain.StatusResolved, 2, createdAt))

	alert, err := repo.Resolve(context.Background(), alertID, time.Now())

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, alert)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAlertsRepo_ListAlerts_Filters(t *testing.T) {
	db, mock, repo := setupMockAlertsDB(t)
	defer db.Close()

	createdAt := time.Now().Add(-10 * time.Minute)
	rows := alertRows(uuid.New().String(), "P001", domain.TierRed, domain.StatusPending, 8, createdAt)

	mock.ExpectQuery(`SELECT .+ FROM alerts WHERE 1=1 AND tier = \$1 AND status = \$2 ORDER BY created_at ASC`).
		WithArgs("red", "pending").
		WillReturnRows(rows)

	tier := domain.TierRed
	status := domain.StatusPending
	alerts, err := repo.ListAlerts(context.Background(), AlertFilters{Tier: &tier, Status: &status})

	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, domain.TierRed, alerts[0].Tier)
	require.NoError(t, mock.ExpectationsWereMet())
}
