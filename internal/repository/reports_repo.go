package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aicare-epro/internal/domain"
)

// SymptomReportsRepository 症状回报仓库接口
// 回报只增不改，供病人端历史与研究数据读取
type SymptomReportsRepository interface {
	CreateReport(ctx context.Context, report *domain.SymptomReport) error
	ListReportsByPatient(ctx context.Context, patientID string) ([]*domain.SymptomReport, error)
}

// MemorySymptomReportsRepo 内存实现（演示环境默认）
type MemorySymptomReportsRepo struct {
	mu      sync.RWMutex
	reports []*domain.SymptomReport
}

func NewMemorySymptomReportsRepo() *MemorySymptomReportsRepo {
	return &MemorySymptomReportsRepo{}
}

func (r *MemorySymptomReportsRepo) CreateReport(_ context.Context, report *domain.SymptomReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if report.ReportID == "" {
		report.ReportID = uuid.New().String()
	}
	copied := *report
	r.reports = append(r.reports, &copied)
	return nil
}

func (r *MemorySymptomReportsRepo) ListReportsByPatient(_ context.Context, patientID string) ([]*domain.SymptomReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*domain.SymptomReport
	for _, report := range r.reports {
		if report.PatientID != patientID {
			continue
		}
		copied := *report
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// PostgresSymptomReportsRepo PostgreSQL 实现（对应 symptom_reports 表）
type PostgresSymptomReportsRepo struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresSymptomReportsRepo(db *sql.DB, logger *zap.Logger) *PostgresSymptomReportsRepo {
	return &PostgresSymptomReportsRepo{
		db:     db,
		logger: logger,
	}
}

func (r *PostgresSymptomReportsRepo) CreateReport(ctx context.Context, report *domain.SymptomReport) error {
	if report.ReportID == "" {
		report.ReportID = uuid.New().String()
	}

	query := `
		INSERT INTO symptom_reports (report_id, patient_id, raw_input, category, severity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	var severity sql.NullInt64
	if report.Severity != nil {
		severity = sql.NullInt64{Int64: int64(*report.Severity), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		report.ReportID,
		report.PatientID,
		report.RawInput,
		string(report.Category),
		severity,
		report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create symptom report: %w", err)
	}
	return nil
}

func (r *PostgresSymptomReportsRepo) ListReportsByPatient(ctx context.Context, patientID string) ([]*domain.SymptomReport, error) {
	query := `
		SELECT report_id, patient_id, raw_input, category, severity, created_at
		FROM symptom_reports
		WHERE patient_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list symptom reports: %w", err)
	}
	defer rows.Close()

	var reports []*domain.SymptomReport
	for rows.Next() {
		var report domain.SymptomReport
		var category string
		var severity sql.NullInt64

		if err := rows.Scan(
			&report.ReportID,
			&report.PatientID,
			&report.RawInput,
			&category,
			&severity,
			&report.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan symptom report: %w", err)
		}

		report.Category = domain.SymptomCategory(category)
		if severity.Valid {
			s := int(severity.Int64)
			report.Severity = &s
		}
		reports = append(reports, &report)
	}
	return reports, rows.Err()
}
