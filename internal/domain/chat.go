package domain

import (
	"time"
)

// ChatRole 对话角色
type ChatRole string

const (
	RoleAssistant ChatRole = "assistant" // 健康小助手
	RolePatient   ChatRole = "patient"
)

// ChatTurn 一轮对话消息（按会话追加，只增不改）
type ChatTurn struct {
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
