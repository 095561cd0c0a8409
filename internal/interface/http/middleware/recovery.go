package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/logger"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// Recovery panic恢复，记录堆栈并渲染500错误页
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.FromContext(c.Request.Context()).Error("panic recovered",
					zap.Any("panic", r),
					zap.Stack("stack"),
				)
				response.Error(c, apperrors.Wrap(fmt.Errorf("panic: %v", r), "系统内部错误"))
			}
		}()
		c.Next()
	}
}
