package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/pkg/logger"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

const (
	// RequestIDHeader 请求ID响应头，上游传入时沿用
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"

	slowRequestThreshold = 3 * time.Second
)

// Logger 请求日志中间件
// 1. 生成请求ID，写入响应头
// 2. 把带request_id/trace_id的日志放入请求context，后续层通过logger.FromContext取用
// 3. 请求结束后输出一条访问日志，慢请求额外告警
func Logger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 步骤1: 请求ID
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		fields := []zap.Field{zap.String("request_id", requestID)}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}
		reqLog := base.With(fields...)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLog))

		// 步骤2: 处理请求
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		// 步骤3: 访问日志(不记录请求体)
		accessFields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			accessFields = append(accessFields, zap.String("errors", c.Errors.String()))
		}
		reqLog.Info("请求完成", accessFields...)

		if latency > slowRequestThreshold {
			reqLog.Warn("慢请求",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Duration("latency", latency),
			)
		}
	}
}

// GetRequestID 获取当前请求ID
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
