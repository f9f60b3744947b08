package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aicare-epro/internal/domain"
)

// PostgresAlertsRepo 警示仓库 PostgreSQL 实现（对应 alerts 表）
// 状态转换使用条件 UPDATE 原子地检查并应用
type PostgresAlertsRepo struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresAlertsRepo(db *sql.DB, logger *zap.Logger) *PostgresAlertsRepo {
	return &PostgresAlertsRepo{
		db:     db,
		logger: logger,
	}
}

const alertColumns = `
	alert_id,
	patient_id,
	tier,
	status,
	symptom_category,
	severity,
	created_at,
	contacted_at,
	resolved_at
`

func (r *PostgresAlertsRepo) CreateAlert(ctx context.Context, alert *domain.Alert) error {
	if alert.AlertID == "" {
		alert.AlertID = uuid.New().String()
	}
	if alert.Status == "" {
		alert.Status = domain.StatusPending
	}

	query := `
		INSERT INTO alerts (alert_id, patient_id, tier, status, symptom_category, severity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		alert.AlertID,
		alert.PatientID,
		string(alert.Tier),
		string(alert.Status),
		string(alert.SymptomCategory),
		alert.Severity,
		alert.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

func (r *PostgresAlertsRepo) GetAlert(ctx context.Context, alertID string) (*domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE alert_id = $1`

	alert, err := scanAlert(r.db.QueryRowContext(ctx, query, alertID))
	if err == sql.ErrNoRows {
		return nil, ErrAlertNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}
	return alert, nil
}

func (r *PostgresAlertsRepo) ListAlerts(ctx context.Context, filters AlertFilters) ([]*domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filters.Tier != nil {
		query += fmt.Sprintf(" AND tier = $%d", argIdx)
		args = append(args, string(*filters.Tier))
		argIdx++
	}
	if filters.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, string(*filters.Status))
		argIdx++
	}
	if filters.PatientID != nil {
		query += fmt.Sprintf(" AND patient_id = $%d", argIdx)
		args = append(args, *filters.PatientID)
		argIdx++
	}

	// 最早未处理优先
	query += " ORDER BY created_at ASC, alert_id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*domain.Alert
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}

func (r *PostgresAlertsRepo) Contact(ctx context.Context, alertID string, at time.Time) (*domain.Alert, error) {
	// 仅 pending → contacted；0 行时再查当前状态区分幂等成功/非法转换/不存在
	query := `
		UPDATE alerts
		SET status = $1, contacted_at = $2
		WHERE alert_id = $3 AND status = $4
	`
	result, err := r.db.ExecContext(ctx, query,
		string(domain.StatusContacted), at, alertID, string(domain.StatusPending))
	if err != nil {
		return nil, fmt.Errorf("failed to contact alert: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to contact alert: %w", err)
	}
	if affected == 0 {
		alert, err := r.GetAlert(ctx, alertID)
		if err != nil {
			return nil, err
		}
		// 幂等：已是 contacted 视为成功
		if alert.Status == domain.StatusContacted {
			return alert, nil
		}
		return nil, ErrInvalidTransition
	}

	return r.GetAlert(ctx, alertID)
}

func (r *PostgresAlertsRepo) Resolve(ctx context.Context, alertID string, at time.Time) (*domain.Alert, error) {
	query := `
		UPDATE alerts
		SET status = $1, resolved_at = $2
		WHERE alert_id = $3 AND status IN ($4, $5)
	`
	result, err := r.db.ExecContext(ctx, query,
		string(domain.StatusResolved), at, alertID,
		string(domain.StatusPending), string(domain.StatusContacted))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve alert: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve alert: %w", err)
	}
	if affected == 0 {
		if _, err := r.GetAlert(ctx, alertID); err != nil {
			return nil, err
		}
		return nil, ErrInvalidTransition
	}

	return r.GetAlert(ctx, alertID)
}

// scanAlert 从单行扫描警示（rowScanner 同时覆盖 *sql.Row 和 *sql.Rows）
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAlert(row rowScanner) (*domain.Alert, error) {
	var alert domain.Alert
	var tier, status, category string
	var contactedAt, resolvedAt sql.NullTime

	err := row.Scan(
		&alert.AlertID,
		&alert.PatientID,
		&tier,
		&status,
		&category,
		&alert.Severity,
		&alert.CreatedAt,
		&contactedAt,
		&resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	alert.Tier = domain.AlertTier(tier)
	alert.Status = domain.AlertStatus(status)
	alert.SymptomCategory = domain.SymptomCategory(category)
	if contactedAt.Valid {
		alert.ContactedAt = &contactedAt.Time
	}
	if resolvedAt.Valid {
		alert.ResolvedAt = &resolvedAt.Time
	}
	return &alert, nil
}
