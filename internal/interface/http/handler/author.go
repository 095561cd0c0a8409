package handler

import (
	"github.com/gin-gonic/gin"

	appauthor "github.com/xiebiao/bookshelf/internal/application/author"
	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	"github.com/xiebiao/bookshelf/internal/interface/http/view"
	"github.com/xiebiao/bookshelf/pkg/flash"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	addAuthorUseCase    *appauthor.AddAuthorUseCase
	deleteAuthorUseCase *appauthor.DeleteAuthorUseCase
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(
	addAuthorUseCase *appauthor.AddAuthorUseCase,
	deleteAuthorUseCase *appauthor.DeleteAuthorUseCase,
) *AuthorHandler {
	return &AuthorHandler{
		addAuthorUseCase:    addAuthorUseCase,
		deleteAuthorUseCase: deleteAuthorUseCase,
	}
}

// AddAuthorPage 新增作者表单页
// @Summary      新增作者页面
// @Tags         作者
// @Produce      html
// @Success      200 {string} string "add_author.html"
// @Router       /add_author [get]
func (h *AuthorHandler) AddAuthorPage(c *gin.Context) {
	page := &view.AddAuthorPage{Page: view.Page{Title: "新增作者"}}
	render(c, view.AddAuthorTemplate, &page.Page, page)
}

// AddAuthor 新增作者
// @Summary      新增作者
// @Description  出生日期格式YYYY-MM-DD；逝世日期可选，无法解析时视为空
// @Tags         作者
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        name          formData string true  "作者姓名(不超过100字符)"
// @Param        birthdate     formData string true  "出生日期"
// @Param        date_of_death formData string false "逝世日期"
// @Success      302 {string} string "跳转首页"
// @Failure      400 {string} string "参数错误"
// @Router       /add_author [post]
func (h *AuthorHandler) AddAuthor(c *gin.Context) {
	// 1. 绑定并验证表单
	var form dto.AddAuthorForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}

	req, err := form.ToRequest()
	if err != nil {
		response.Error(c, err)
		return
	}

	// 2. 调用应用层用例
	result, err := h.addAuthorUseCase.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 提示消息并跳转
	middleware.AddFlash(c, flash.LevelSuccess, "作者 "+result.Name+" 添加成功！")
	response.Redirect(c, "/")
}

// DeleteAuthor 删除作者及其全部图书、评分
// @Summary      删除作者
// @Description  同一事务内删除作者、作者的图书以及这些图书的评分
// @Tags         作者
// @Produce      html
// @Param        author_id path int true "作者ID"
// @Success      302 {string} string "跳转首页"
// @Failure      404 {string} string "作者不存在"
// @Router       /author/{author_id}/delete [get]
// @Router       /author/{author_id}/delete [delete]
func (h *AuthorHandler) DeleteAuthor(c *gin.Context) {
	var uri dto.AuthorURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.NotFound(c)
		return
	}

	result, err := h.deleteAuthorUseCase.Execute(c.Request.Context(), appauthor.DeleteAuthorRequest{
		AuthorID: uri.AuthorID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.AddFlash(c, flash.LevelSuccess, "作者 "+result.Name+" 删除成功！")
	response.Redirect(c, "/")
}
