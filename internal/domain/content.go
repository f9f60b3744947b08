package domain

// EducationItem 卫教资源条目（静态内容）
type EducationItem struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
}

// ScheduleItem 个管师当日排程条目（静态内容）
type ScheduleItem struct {
	TimeRange string `json:"time_range"` // 如 "08:00-10:00"
	Task      string `json:"task"`
	Status    string `json:"status"` // done / current / upcoming
	Detail    string `json:"detail"`
}

// ComplianceStat 每月顺从度统计（研究数据看板用）
type ComplianceStat struct {
	Month       string `json:"month"`
	AIEPro      int    `json:"ai_epro"`      // AI-ePRO 完成率（百分比）
	Traditional int    `json:"traditional"` // 传统 ePRO 完成率
}

// TrendPoint 病人近7日症状趋势点
type TrendPoint struct {
	Date  string `json:"date"` // MM/DD
	Score int    `json:"score"`
}
