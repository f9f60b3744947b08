package domain

import (
	"time"
)

// SymptomCategory 症状分类（由分诊分类器推导，不存储原始输入以外的内容）
type SymptomCategory string

const (
	CategoryDyspnea      SymptomCategory = "dyspnea"      // 呼吸困难/胸闷
	CategoryFatigue      SymptomCategory = "fatigue"      // 疲劳
	CategoryPain         SymptomCategory = "pain"         // 疼痛
	CategoryCough        SymptomCategory = "cough"        // 咳嗽/咳痰
	CategoryWellbeing    SymptomCategory = "wellbeing"    // 自述状态良好
	CategoryUnclassified SymptomCategory = "unclassified" // 未分类（数字评分或无法识别）
)

// SymptomReport 症状回报领域模型（对应 symptom_reports 表）
// Severity 仅在输入被识别为数字评分时填入
type SymptomReport struct {
	ReportID  string          `json:"report_id" db:"report_id"` // UUID, PRIMARY KEY
	PatientID string          `json:"patient_id" db:"patient_id"`
	RawInput  string          `json:"raw_input" db:"raw_input"` // 原始输入，原样保存
	Category  SymptomCategory `json:"category" db:"category"`
	Severity  *int            `json:"severity,omitempty" db:"severity"` // 0-10, nullable
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
