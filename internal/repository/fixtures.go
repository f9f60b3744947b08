package repository

import (
	"time"

	"aicare-epro/internal/domain"
)

// 演示环境静态数据（与前端展示内容一致）
// 正式环境由医院系统同步，这里仅供 demo 启动时填充内存仓库。

// DemoPatients 病人名单
func DemoPatients() []domain.Patient {
	return []domain.Patient{
		{PatientID: "P001", Name: "王大明", Age: 68, Surgery: "右上肺葉切除", PostOpDay: 14, Compliance: 92, Status: "alert", LastReport: "10:30", Phone: "0912-345-678"},
		{PatientID: "P002", Name: "李小華", Age: 55, Surgery: "左下肺葉切除", PostOpDay: 21, Compliance: 85, Status: "warning", LastReport: "09:15", Phone: "0923-456-789"},
		{PatientID: "P003", Name: "陳美玲", Age: 72, Surgery: "右中肺葉切除", PostOpDay: 7, Compliance: 78, Status: "overdue", LastReport: "昨天", Phone: "0934-567-890"},
		{PatientID: "P004", Name: "張志明", Age: 61, Surgery: "肺節切除", PostOpDay: 30, Compliance: 95, Status: "normal", LastReport: "08:45", Phone: "0945-678-901"},
		{PatientID: "P005", Name: "林淑芬", Age: 58, Surgery: "左上肺葉切除", PostOpDay: 45, Compliance: 88, Status: "normal", LastReport: "昨天", Phone: "0956-789-012"},
	}
}

// DemoAlerts 启动时的警示队列（对应名单中的病人）
func DemoAlerts(now time.Time) []domain.Alert {
	contacted := now.Add(-50 * time.Minute)
	resolved := now.Add(-100 * time.Minute)
	return []domain.Alert{
		{AlertID: "demo-alert-1", PatientID: "P001", Tier: domain.TierRed, Status: domain.StatusPending, SymptomCategory: domain.CategoryDyspnea, Severity: 8, CreatedAt: now.Add(-10 * time.Minute)},
		{AlertID: "demo-alert-2", PatientID: "P002", Tier: domain.TierYellow, Status: domain.StatusPending, SymptomCategory: domain.CategoryFatigue, Severity: 5, CreatedAt: now.Add(-30 * time.Minute)},
		{AlertID: "demo-alert-3", PatientID: "P003", Tier: domain.TierYellow, Status: domain.StatusContacted, SymptomCategory: domain.CategoryPain, Severity: 4, CreatedAt: now.Add(-1 * time.Hour), ContactedAt: &contacted},
		{AlertID: "demo-alert-4", PatientID: "P004", Tier: domain.TierGreen, Status: domain.StatusResolved, SymptomCategory: domain.CategoryCough, Severity: 2, CreatedAt: now.Add(-2 * time.Hour), ResolvedAt: &resolved},
	}
}

// DemoInterventions 介入纪录
func DemoInterventions(now time.Time) []domain.InterventionRecord {
	referral := "營養諮詢"
	return []domain.InterventionRecord{
		{RecordID: "demo-rec-1", PatientID: "P001", Channel: "電話", Content: "呼吸困難症狀評估，建議使用噘嘴式呼吸，若持續加重需回診。病人表示了解。", Duration: "8分鐘", CreatedAt: now.Add(-1 * time.Hour)},
		{RecordID: "demo-rec-2", PatientID: "P002", Channel: "LINE", Content: "提醒今日回報，病人表示下午會填寫。", Duration: "2分鐘", CreatedAt: now.Add(-2 * time.Hour)},
		{RecordID: "demo-rec-3", PatientID: "P003", Channel: "電話", Content: "評估後轉介營養諮詢，體重持續下降。已預約營養師門診。", Duration: "12分鐘", Referral: &referral, CreatedAt: now.Add(-20 * time.Hour)},
	}
}

// DemoSchedule 个管师当日排程
func DemoSchedule() []domain.ScheduleItem {
	return []domain.ScheduleItem{
		{TimeRange: "08:00-10:00", Task: "檢視系統數據，主動聯繫未完成者", Status: "done", Detail: "已完成 12 位聯繫"},
		{TimeRange: "10:00-12:00", Task: "處理紅色/黃色警示患者", Status: "current", Detail: "進行中 - 待處理 4 件"},
		{TimeRange: "13:00-15:00", Task: "執行轉介、與醫療團隊溝通", Status: "upcoming", Detail: "營養 2 件、緩和 1 件"},
		{TimeRange: "15:00-17:00", Task: "數據輸入、個案管理日誌", Status: "upcoming", Detail: ""},
	}
}

// DemoEducation 卫教资源
func DemoEducation() []domain.EducationItem {
	return []domain.EducationItem{
		{Icon: "🫁", Title: "噘嘴式呼吸", Description: "改善呼吸困難的技巧", Tag: "呼吸訓練"},
		{Icon: "🚶", Title: "術後活動指引", Description: "循序漸進恢復活動", Tag: "運動"},
		{Icon: "🍽️", Title: "術後營養建議", Description: "高蛋白飲食促進復原", Tag: "營養"},
		{Icon: "💊", Title: "用藥注意事項", Description: "按時服藥與副作用觀察", Tag: "藥物"},
	}
}

// DemoCompliance 每月顺从度统计
func DemoCompliance() []domain.ComplianceStat {
	return []domain.ComplianceStat{
		{Month: "1月", AIEPro: 82, Traditional: 65},
		{Month: "2月", AIEPro: 85, Traditional: 62},
		{Month: "3月", AIEPro: 78, Traditional: 58},
		{Month: "4月", AIEPro: 88, Traditional: 55},
		{Month: "5月", AIEPro: 91, Traditional: 52},
		{Month: "6月", AIEPro: 86, Traditional: 48},
	}
}

// DemoTrend 近7日症状趋势（最旧在前）
func DemoTrend(now time.Time) []domain.TrendPoint {
	scores := []int{3, 2, 4, 3, 5, 3, 2}
	points := make([]domain.TrendPoint, 0, len(scores))
	for i, score := range scores {
		day := now.AddDate(0, 0, i-len(scores)+1)
		points = append(points, domain.TrendPoint{
			Date:  day.Format("01/02"),
			Score: score,
		})
	}
	return points
}
