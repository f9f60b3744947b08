package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aicare-epro/internal/domain"
)

func setupRedisStore(t *testing.T) (*miniredis.Miniredis, *RedisHistoryStore) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	store := NewRedisHistoryStore(client, "epro:chat:", time.Hour)
	return mr, store
}

func TestRedisHistoryStore_AppendAndHistory(t *testing.T) {
	_, store := setupRedisStore(t)
	ctx := context.Background()

	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	err := store.Append(ctx, "P001",
		domain.ChatTurn{Role: domain.RolePatient, Content: "胸口悶悶的", Timestamp: now},
		domain.ChatTurn{Role: domain.RoleAssistant, Content: "請評估 0-10 分", Timestamp: now},
	)
	require.NoError(t, err)

	turns, err := store.History(ctx, "P001")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RolePatient, turns[0].Role)
	assert.Equal(t, "胸口悶悶的", turns[0].Content)
	assert.Equal(t, domain.RoleAssistant, turns[1].Role)
}

func TestRedisHistoryStore_AppendPreservesOrder(t *testing.T) {
	_, store := setupRedisStore(t)
	ctx := context.Background()

	for i, content := range []string{"第一句", "第二句", "第三句"} {
		err := store.Append(ctx, "P001", domain.ChatTurn{
			Role:      domain.RolePatient,
			Content:   content,
			Timestamp: time.Now().Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	turns, err := store.History(ctx, "P001")
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "第一句", turns[0].Content)
	assert.Equal(t, "第三句", turns[2].Content)
}

func TestRedisHistoryStore_SessionsIsolatedByPatient(t *testing.T) {
	_, store := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "P001", domain.ChatTurn{Role: domain.RolePatient, Content: "a"}))
	require.NoError(t, store.Append(ctx, "P002", domain.ChatTurn{Role: domain.RolePatient, Content: "b"}))

	turns, err := store.History(ctx, "P001")
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "a", turns[0].Content)
}

func TestRedisHistoryStore_TTLSet(t *testing.T) {
	mr, store := setupRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "P001", domain.ChatTurn{Role: domain.RolePatient, Content: "a"}))
	assert.Greater(t, mr.TTL("epro:chat:P001"), time.Duration(0))
}

func TestRedisHistoryStore_EmptyHistory(t *testing.T) {
	_, store := setupRedisStore(t)

	turns, err := store.History(context.Background(), "P999")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestMemoryHistoryStore_AppendAndHistory(t *testing.T) {
	store := NewMemoryHistoryStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "P001",
		domain.ChatTurn{Role: domain.RolePatient, Content: "有點累"},
		domain.ChatTurn{Role: domain.RoleAssistant, Content: "請評分"},
	))

	turns, err := store.History(ctx, "P001")
	require.NoError(t, err)
	require.Len(t, turns, 2)

	// 修改返回值不影响存储
	turns[0].Content = "changed"
	again, err := store.History(ctx, "P001")
	require.NoError(t, err)
	assert.Equal(t, "有點累", again[0].Content)
}
