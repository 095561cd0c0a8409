package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/logger"
)

// ErrorTemplate 错误页模板名
const ErrorTemplate = "error.html"

// Response 统一JSON响应结构(健康检查等非页面接口)
// 1. Code是业务错误码（非HTTP状态码），0表示成功
// 2. Message是用户友好的提示信息
// 3. Data是业务数据，成功时返回，失败时为null
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorPage 错误页数据
type ErrorPage struct {
	Status  int
	Code    int
	Message string
}

// Success 成功响应（Code=0表示成功）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 渲染错误页（自动处理AppError）
// 状态码由错误码决定；5xx错误隐藏内部信息，只把原始错误写入日志
// 用法：
//
//	entry, err := h.getBook.Execute(ctx, req)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := appErr.HTTPStatus()
	message := appErr.Message

	log := logger.FromContext(c.Request.Context())
	switch {
	case status == http.StatusBadGateway:
		log.Warn("外部服务调用失败", zap.Int("code", appErr.Code), zap.Error(appErr))
	case status >= http.StatusInternalServerError:
		log.Error("请求处理失败", zap.Int("code", appErr.Code), zap.Error(appErr))
		message = apperrors.ErrInternal.Message
	default:
		log.Debug("请求被拒绝", zap.Int("code", appErr.Code), zap.String("message", appErr.Message))
	}

	_ = c.Error(appErr)
	c.HTML(status, ErrorTemplate, ErrorPage{
		Status:  status,
		Code:    appErr.Code,
		Message: message,
	})
	c.Abort()
}

// NotFound 渲染404页
func NotFound(c *gin.Context) {
	Error(c, apperrors.ErrNotFound)
}

// Redirect 操作成功后302跳转(Post/Redirect/Get)
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}
