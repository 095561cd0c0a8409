// Package flash 一次性提示消息
// 消息在重定向前写入，在下一次页面渲染时读出并清空
package flash

import (
	"context"
	"sync"
	"time"
)

// Level 消息级别，对应页面上的样式
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "danger"
)

// Message 一条提示消息
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Store 消息存储
// sid是会话标识(浏览器cookie)，Pop读出消息后必须清空
type Store interface {
	Push(ctx context.Context, sid string, msg Message) error
	Pop(ctx context.Context, sid string) ([]Message, error)
}

// MemoryStore 进程内消息存储(未启用Redis时使用)
// 过期的会话在下一次Push时清理
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*bucket
	now      func() time.Time
}

type bucket struct {
	messages []Message
	expireAt time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore 创建进程内消息存储
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]*bucket),
		now:      time.Now,
	}
}

// Push 追加消息，并刷新会话过期时间
func (s *MemoryStore) Push(_ context.Context, sid string, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evict(now)

	b, ok := s.sessions[sid]
	if !ok {
		b = &bucket{}
		s.sessions[sid] = b
	}
	b.messages = append(b.messages, msg)
	b.expireAt = now.Add(s.ttl)
	return nil
}

// Pop 读出并清空消息，保持写入顺序
func (s *MemoryStore) Pop(_ context.Context, sid string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.sessions[sid]
	if !ok {
		return nil, nil
	}
	delete(s.sessions, sid)

	if s.now().After(b.expireAt) {
		return nil, nil
	}
	return b.messages, nil
}

func (s *MemoryStore) evict(now time.Time) {
	for sid, b := range s.sessions {
		if now.After(b.expireAt) {
			delete(s.sessions, sid)
		}
	}
}
