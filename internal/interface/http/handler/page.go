package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	"github.com/xiebiao/bookshelf/internal/interface/http/view"
	"github.com/xiebiao/bookshelf/pkg/flash"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// render 取出会话中的提示消息，连同本次请求的消息一起渲染页面
// data需传指针，page指向data内嵌的view.Page
func render(c *gin.Context, name string, page *view.Page, data any, extra ...flash.Message) {
	page.Flashes = append(middleware.TakeFlashes(c), extra...)
	c.HTML(http.StatusOK, name, data)
}

// bindBookURI 路径中的图书ID不是正整数时按404处理
func bindBookURI(c *gin.Context) (uint, bool) {
	var uri dto.BookURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.NotFound(c)
		return 0, false
	}
	return uri.BookID, true
}
