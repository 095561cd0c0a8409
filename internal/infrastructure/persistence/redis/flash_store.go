package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/flash"
)

// FlashStore 基于Redis的提示消息存储
// Key设计：flash:{sid}，List类型，按写入顺序RPUSH
// 多实例部署时重定向后可能落到另一台机器，消息必须放在共享存储
type FlashStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ flash.Store = (*FlashStore)(nil)

// NewFlashStore 创建提示消息存储
func NewFlashStore(client *redis.Client, ttl time.Duration) *FlashStore {
	return &FlashStore{client: client, ttl: ttl}
}

// Push 追加一条消息并刷新过期时间
func (s *FlashStore) Push(ctx context.Context, sid string, msg flash.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return apperrors.Wrap(err, "序列化提示消息失败")
	}

	key := flashKey(sid)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.WithCause(apperrors.ErrRedisError, err)
	}
	return nil
}

// Pop 读出全部消息并删除Key
// LRANGE和DEL放在同一个MULTI中，避免并发请求重复读到同一条消息
func (s *FlashStore) Pop(ctx context.Context, sid string) ([]flash.Message, error) {
	key := flashKey(sid)

	var values *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		values = pipe.LRange(ctx, key, 0, -1)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, apperrors.WithCause(apperrors.ErrRedisError, err)
	}

	return decodeMessages(values.Val()), nil
}

func flashKey(sid string) string {
	return "flash:" + sid
}

// decodeMessages 跳过无法解析的条目
func decodeMessages(values []string) []flash.Message {
	msgs := make([]flash.Message, 0, len(values))
	for _, v := range values {
		var msg flash.Message
		if err := json.Unmarshal([]byte(v), &msg); err != nil {
			continue
		}
		msgs = append(msgs, msg)
	}
	return msgs
}
