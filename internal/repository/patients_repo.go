package repository

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"aicare-epro/internal/domain"
)

// ErrPatientNotFound 病人不存在
var ErrPatientNotFound = errors.New("patient not found")

// PatientsRepository 病人名录接口（仅查询，不归属本服务管理）
type PatientsRepository interface {
	GetPatient(ctx context.Context, patientID string) (*domain.Patient, error)
	// ListPatients 支持按姓名/病历号模糊搜索，空串返回全部
	ListPatients(ctx context.Context, search string) ([]*domain.Patient, error)
}

// MemoryPatientsRepo 内存病人名录（演示环境由固定名单填充）
type MemoryPatientsRepo struct {
	mu       sync.RWMutex
	patients map[string]*domain.Patient // patientID -> Patient
}

func NewMemoryPatientsRepo() *MemoryPatientsRepo {
	return &MemoryPatientsRepo{
		patients: map[string]*domain.Patient{},
	}
}

// SeedPatients 填充演示名单（覆盖同 ID 记录）
func (r *MemoryPatientsRepo) SeedPatients(patients []domain.Patient) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range patients {
		copied := patients[i]
		r.patients[copied.PatientID] = &copied
	}
}

func (r *MemoryPatientsRepo) GetPatient(_ context.Context, patientID string) (*domain.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	patient, ok := r.patients[patientID]
	if !ok {
		return nil, ErrPatientNotFound
	}
	copied := *patient
	return &copied, nil
}

func (r *MemoryPatientsRepo) ListPatients(_ context.Context, search string) ([]*domain.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*domain.Patient
	for _, patient := range r.patients {
		if search != "" &&
			!strings.Contains(patient.Name, search) &&
			!strings.Contains(patient.PatientID, search) {
			continue
		}
		copied := *patient
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].PatientID < result[j].PatientID
	})
	return result, nil
}
