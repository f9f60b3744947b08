package triage

import (
	"strconv"
	"strings"

	"aicare-epro/internal/domain"
)

// Result 分诊结果：症状分类 + 可选严重度 + 回复文本
// Severity 仅在输入被识别为 0-10 数字评分时填入
type Result struct {
	Category domain.SymptomCategory
	Severity *int
	Reply    string
}

// rule 关键词分诊规则（按固定顺序匹配，先命中先生效）
type rule struct {
	category domain.SymptomCategory
	keywords []string
	reply    string
}

// 规则顺序即策略：输入同时包含多类关键词时，只有排在前面的规则生效。
// 顺序调整会改变分诊结果，修改前必须同步更新测试。
var rules = []rule{
	{domain.CategoryDyspnea, []string{"悶", "喘", "呼吸"}, replyDyspnea},
	{domain.CategoryFatigue, []string{"累", "疲", "沒力"}, replyFatigue},
	{domain.CategoryPain, []string{"痛", "疼"}, replyPain},
	{domain.CategoryCough, []string{"咳", "痰"}, replyCough},
	{domain.CategoryWellbeing, []string{"不錯", "好", "還好", "👍"}, replyWellbeing},
}

// Classify 将一条病人输入映射为分诊结果
// 纯函数，无副作用；任何输入都会得到非空回复，不会返回错误。
// 警示的创建由调用方根据 Severity 决定。
func Classify(input string) Result {
	normalized := strings.ToLower(strings.TrimSpace(input))

	// 1. 关键词规则（子串匹配，首个命中即返回）
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(normalized, kw) {
				return Result{Category: r.category, Reply: r.reply}
			}
		}
	}

	// 2. 数字评分（如 "7"、"7分"、"3點5"；不支持中文数字）
	if score, ok := parseScore(normalized); ok {
		return Result{
			Category: domain.CategoryUnclassified,
			Severity: &score,
			Reply:    scoreReply(score),
		}
	}

	// 3. 无法识别（含空输入）：引导病人补充描述
	return Result{Category: domain.CategoryUnclassified, Reply: replyClarify}
}

// parseScore 解析数字评分
// 去掉 "分" 后缀和终止句号，"點" 映射为小数点，解析后截断为整数并收敛到 [0,10]。
// 只接受十进制数字字面量，指数/十六进制/inf/nan 一律视为无法识别。
// 解析失败返回 ok=false，由调用方落入引导回复。
func parseScore(normalized string) (int, bool) {
	s := normalized
	s = strings.ReplaceAll(s, "分", "")
	s = strings.ReplaceAll(s, "點", ".")
	s = strings.ReplaceAll(s, "。", "")
	s = strings.TrimSpace(s)
	if !isScoreLiteral(s) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	score := int(f)
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}
	return score, true
}

// isScoreLiteral 判断是否为纯十进制数字（可带一个符号和至多一个小数点）。
// strconv.ParseFloat 还接受 "1e3"、"0x1p10"、"inf" 等写法，这里提前挡掉。
func isScoreLiteral(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	digits, points := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			points++
		default:
			return false
		}
	}
	return digits > 0 && points <= 1
}

// scoreReply 按严重度分档生成回复
// >=7 升级处理（30分钟内电联）；4-6 自我照护建议；<=3 完成确认
func scoreReply(score int) string {
	switch {
	case score >= 7:
		return replyScoreHigh(score)
	case score >= 4:
		return replyScoreMid(score)
	default:
		return replyScoreLow(score)
	}
}
