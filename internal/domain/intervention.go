package domain

import (
	"time"
)

// InterventionRecord 介入纪录（个管师联系病人后留存）
type InterventionRecord struct {
	RecordID  string    `json:"record_id" db:"record_id"`
	PatientID string    `json:"patient_id" db:"patient_id"`
	Channel   string    `json:"channel" db:"channel"` // 電話 / LINE / 簡訊 / 門診
	Content   string    `json:"content" db:"content"`
	Duration  string    `json:"duration" db:"duration"` // 展示用文本，如 "8分鐘"
	Referral  *string   `json:"referral,omitempty" db:"referral"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
