package flash

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_PushPop(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	require.NoError(t, store.Push(ctx, "s1", Message{Level: LevelSuccess, Text: "第一条"}))
	require.NoError(t, store.Push(ctx, "s1", Message{Level: LevelWarning, Text: "第二条"}))
	require.NoError(t, store.Push(ctx, "s2", Message{Level: LevelSuccess, Text: "其他会话"}))

	msgs, err := store.Pop(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []Message{
		{Level: LevelSuccess, Text: "第一条"},
		{Level: LevelWarning, Text: "第二条"},
	}, msgs)

	// 读出后即清空
	msgs, err = store.Pop(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, msgs)

	msgs, err = store.Pop(ctx, "s2")
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestMemoryStore_Expired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Push(ctx, "s1", Message{Level: LevelSuccess, Text: "过期"}))

	now = now.Add(2 * time.Minute)
	msgs, err := store.Pop(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
