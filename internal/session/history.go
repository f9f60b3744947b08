package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"aicare-epro/internal/domain"
)

// HistoryStore 会话对话历史存储
// 只增不改；历史仅用于病人端重放对话，分类器本身无会话状态。
type HistoryStore interface {
	Append(ctx context.Context, patientID string, turns ...domain.ChatTurn) error
	History(ctx context.Context, patientID string) ([]domain.ChatTurn, error)
}

// RedisHistoryStore Redis 实现（List 追加，带 TTL 的会话级存储）
type RedisHistoryStore struct {
	client    *redis.Client
	keyPrefix string // 如 "epro:chat:"
	ttl       time.Duration
}

func NewRedisHistoryStore(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisHistoryStore {
	return &RedisHistoryStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (s *RedisHistoryStore) key(patientID string) string {
	return s.keyPrefix + patientID
}

func (s *RedisHistoryStore) Append(ctx context.Context, patientID string, turns ...domain.ChatTurn) error {
	if len(turns) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(turns))
	for _, turn := range turns {
		data, err := json.Marshal(turn)
		if err != nil {
			return fmt.Errorf("failed to marshal chat turn: %w", err)
		}
		values = append(values, data)
	}

	key := s.key(patientID)
	if err := s.client.RPush(ctx, key, values...).Err(); err != nil {
		return fmt.Errorf("failed to append chat history: %w", err)
	}
	// 每次追加刷新 TTL，会话闲置后整段过期
	if s.ttl > 0 {
		if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
			return fmt.Errorf("failed to refresh chat history ttl: %w", err)
		}
	}
	return nil
}

func (s *RedisHistoryStore) History(ctx context.Context, patientID string) ([]domain.ChatTurn, error) {
	items, err := s.client.LRange(ctx, s.key(patientID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read chat history: %w", err)
	}

	turns := make([]domain.ChatTurn, 0, len(items))
	for _, item := range items {
		var turn domain.ChatTurn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			return nil, fmt.Errorf("failed to unmarshal chat turn: %w", err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// MemoryHistoryStore 内存实现（无 Redis 时的演示默认）
type MemoryHistoryStore struct {
	mu    sync.RWMutex
	turns map[string][]domain.ChatTurn // patientID -> turns
}

func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{
		turns: map[string][]domain.ChatTurn{},
	}
}

func (s *MemoryHistoryStore) Append(_ context.Context, patientID string, turns ...domain.ChatTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns[patientID] = append(s.turns[patientID], turns...)
	return nil
}

func (s *MemoryHistoryStore) History(_ context.Context, patientID string) ([]domain.ChatTurn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.turns[patientID]
	copied := make([]domain.ChatTurn, len(history))
	copy(copied, history)
	return copied, nil
}
