package triage

import (
	"fmt"
)

// 回复文案（繁体中文，面向病人端展示）
// 文案与临床团队确认过措辞，调整时需同步个管师端说明。

const replyDyspnea = "了解，胸口悶悶的感覺。\n\n請問用 0-10 分來評估，0 分是完全不悶，10 分是非常悶，您覺得大概幾分呢？\n\n（可以用下方滑桿選擇）"

const replyFatigue = "謝謝您告訴我。疲勞感是術後常見的症狀。\n\n請問這個疲勞感，如果用 0-10 分來評估，您覺得大概幾分呢？"

const replyPain = "了解您有疼痛的感覺。\n\n請問：\n1. 疼痛的位置在哪裡？\n2. 用 0-10 分評估，大概幾分？\n3. 是持續痛還是間歇性的？"

const replyCough = "好的，關於咳嗽的問題。\n\n請問：\n1. 有沒有痰？\n2. 痰的顏色是？（白/黃/綠/帶血）\n3. 咳嗽嚴重程度 0-10 分？"

const replyWellbeing = "太好了！很高興聽到您感覺不錯 😊\n\n為了完整記錄，想再確認一下：\n• 有沒有任何疼痛感？\n• 呼吸是否順暢？\n• 睡眠品質如何？"

const replyClarify = "謝謝您的回覆。\n\n能否再詳細描述一下您的感受呢？例如：\n• 有沒有疼痛？\n• 呼吸是否順暢？\n• 有沒有咳嗽？"

func replyScoreHigh(score int) string {
	return fmt.Sprintf("收到，您評估為 %d 分，這個分數較高。\n\n⚠️ 我已經通知您的個案管理師，她會在 30 分鐘內與您電話聯繫。\n\n在等待期間，您可以：\n• 找個舒適的姿勢休息\n• 試著做噘嘴式呼吸\n• 如果感覺更不舒服，請直接撥打緊急電話", score)
}

func replyScoreMid(score int) string {
	return fmt.Sprintf("收到，您評估為 %d 分。\n\n💡 小建議：\n• 噘嘴式呼吸：鼻子吸氣 2 秒，噘嘴慢慢吐氣 4 秒\n• 姿勢調整：稍微前傾坐著可能會舒服一些\n• 適度活動：短距離散步有助於改善\n\n個管師會在今天稍後關心您的狀況。", score)
}

func replyScoreLow(score int) string {
	return fmt.Sprintf("收到，您評估為 %d 分，這是很好的狀況！\n\n✅ 今日症狀回報已完成\n\n繼續保持，記得：\n• 每天按時服藥\n• 適度活動\n• 充足休息\n\n明天見！🌟", score)
}
