package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/pkg/flash"
	"github.com/xiebiao/bookshelf/pkg/logger"
)

const (
	sessionIDKey  = "session_id"
	flashStoreKey = "flash_store"
)

// SessionOptions 会话cookie配置
type SessionOptions struct {
	CookieName string
	MaxAge     time.Duration
	Secure     bool
}

// Session 会话中间件
// cookie中只保存随机会话ID，提示消息存放在flash.Store(内存或Redis)
func Session(store flash.Store, opts SessionOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(opts.CookieName)
		if err != nil || sid == "" {
			sid = uuid.New().String()
		}

		// 每次请求刷新过期时间
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(opts.CookieName, sid, int(opts.MaxAge.Seconds()), "/", "", opts.Secure, true)

		c.Set(sessionIDKey, sid)
		c.Set(flashStoreKey, store)
		c.Next()
	}
}

// AddFlash 写入一条提示消息，下一次页面渲染时展示
// 写入失败只记录日志，不影响本次操作结果
func AddFlash(c *gin.Context, level flash.Level, text string) {
	store, sid, ok := sessionFrom(c)
	if !ok {
		return
	}

	msg := flash.Message{Level: level, Text: text}
	if err := store.Push(c.Request.Context(), sid, msg); err != nil {
		logger.FromContext(c.Request.Context()).Warn("写入提示消息失败", zap.Error(err))
	}
}

// TakeFlashes 读出并清空当前会话的提示消息
func TakeFlashes(c *gin.Context) []flash.Message {
	store, sid, ok := sessionFrom(c)
	if !ok {
		return nil
	}

	messages, err := store.Pop(c.Request.Context(), sid)
	if err != nil {
		logger.FromContext(c.Request.Context()).Warn("读取提示消息失败", zap.Error(err))
		return nil
	}
	return messages
}

func sessionFrom(c *gin.Context) (flash.Store, string, bool) {
	sid := c.GetString(sessionIDKey)
	value, exists := c.Get(flashStoreKey)
	if !exists || sid == "" {
		return nil, "", false
	}
	store, ok := value.(flash.Store)
	return store, sid, ok
}
