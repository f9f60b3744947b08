package domain

import (
	"time"
)

// AlertTier 警示分级（严重度在创建时冻结为分级，之后不再变化）
type AlertTier string

const (
	TierRed    AlertTier = "red"    // 30分钟内电话联系
	TierYellow AlertTier = "yellow" // 当日处理
	TierGreen  AlertTier = "green"  // 无SLA，仅留存记录
)

// AlertStatus 警示处理状态
type AlertStatus string

const (
	StatusPending   AlertStatus = "pending"   // 待处理（初始状态）
	StatusContacted AlertStatus = "contacted" // 已联系
	StatusResolved  AlertStatus = "resolved"  // 已处理（终态）
)

// Alert 警示领域模型（对应 alerts 表）
type Alert struct {
	// 主键
	AlertID string `json:"alert_id" db:"alert_id"` // UUID, PRIMARY KEY

	// 病人关联（弱引用，仅用于查询展示）
	PatientID string `json:"patient_id" db:"patient_id"`

	// 分级和状态
	Tier   AlertTier   `json:"tier" db:"tier"`     // VARCHAR(10), CHECK IN ('red', 'yellow', 'green')
	Status AlertStatus `json:"status" db:"status"` // VARCHAR(20), DEFAULT 'pending'

	// 触发快照（来自 SymptomReport，创建后不变）
	SymptomCategory SymptomCategory `json:"symptom_category" db:"symptom_category"`
	Severity        int             `json:"severity" db:"severity"` // 0-10

	// 时间信息
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	ContactedAt *time.Time `json:"contacted_at,omitempty" db:"contacted_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty" db:"resolved_at"`
}

// TierForSeverity 严重度到分级的固定映射
// >=7 red, 4-6 yellow, <=3 green
func TierForSeverity(severity int) AlertTier {
	switch {
	case severity >= 7:
		return TierRed
	case severity >= 4:
		return TierYellow
	default:
		return TierGreen
	}
}

// CanTransition 状态机规则：pending → contacted → resolved
// resolved 为终态；resolved 可从 pending 直达（跳过 contacted）
func CanTransition(from, to AlertStatus) bool {
	switch to {
	case StatusContacted:
		return from == StatusPending
	case StatusResolved:
		return from == StatusPending || from == StatusContacted
	default:
		return false
	}
}

// SLADeadline 返回警示的处理期限
// red: 创建后30分钟；yellow: 创建当日工作日结束（17:00，创建时间晚于17:00则顺延次日）；
// green: 无期限（返回 false）
func (a *Alert) SLADeadline() (time.Time, bool) {
	switch a.Tier {
	case TierRed:
		return a.CreatedAt.Add(30 * time.Minute), true
	case TierYellow:
		endOfDay := time.Date(a.CreatedAt.Year(), a.CreatedAt.Month(), a.CreatedAt.Day(),
			17, 0, 0, 0, a.CreatedAt.Location())
		if !a.CreatedAt.Before(endOfDay) {
			endOfDay = endOfDay.AddDate(0, 0, 1)
		}
		return endOfDay, true
	default:
		return time.Time{}, false
	}
}
