package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshelf/pkg/flash"
)

func TestDecodeMessages(t *testing.T) {
	msgs := decodeMessages([]string{
		`{"level":"success","text":"作者 Poe 添加成功！"}`,
		`not-json`,
		`{"level":"warning","text":"请输入搜索关键词"}`,
	})

	assert.Equal(t, []flash.Message{
		{Level: flash.LevelSuccess, Text: "作者 Poe 添加成功！"},
		{Level: flash.LevelWarning, Text: "请输入搜索关键词"},
	}, msgs)
}

// TestFlashStore_Redis 需要真实Redis：BOOKSHELF_TEST_REDIS_ADDR=localhost:6379
func TestFlashStore_Redis(t *testing.T) {
	addr := os.Getenv("BOOKSHELF_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("未设置BOOKSHELF_TEST_REDIS_ADDR，跳过Redis测试")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())

	store := NewFlashStore(client, time.Minute)
	sid := uuid.NewString()

	require.NoError(t, store.Push(ctx, sid, flash.Message{Level: flash.LevelSuccess, Text: "one"}))
	require.NoError(t, store.Push(ctx, sid, flash.Message{Level: flash.LevelSuccess, Text: "two"}))

	ttl, err := client.TTL(ctx, flashKey(sid)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	msgs, err := store.Pop(ctx, sid)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "one", msgs[0].Text)
	assert.Equal(t, "two", msgs[1].Text)

	msgs, err = store.Pop(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
