package handler

import (
	"github.com/gin-gonic/gin"

	appauthor "github.com/xiebiao/bookshelf/internal/application/author"
	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	"github.com/xiebiao/bookshelf/internal/interface/http/view"
	"github.com/xiebiao/bookshelf/pkg/flash"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	listBooksUseCase   *appbook.ListBooksUseCase
	searchBooksUseCase *appbook.SearchBooksUseCase
	addBookUseCase     *appbook.AddBookUseCase
	getBookUseCase     *appbook.GetBookUseCase
	deleteBookUseCase  *appbook.DeleteBookUseCase
	listAuthorsUseCase *appauthor.ListAuthorsUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooksUseCase *appbook.ListBooksUseCase,
	searchBooksUseCase *appbook.SearchBooksUseCase,
	addBookUseCase *appbook.AddBookUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
	listAuthorsUseCase *appauthor.ListAuthorsUseCase,
) *BookHandler {
	return &BookHandler{
		listBooksUseCase:   listBooksUseCase,
		searchBooksUseCase: searchBooksUseCase,
		addBookUseCase:     addBookUseCase,
		getBookUseCase:     getBookUseCase,
		deleteBookUseCase:  deleteBookUseCase,
		listAuthorsUseCase: listAuthorsUseCase,
	}
}

// Home 图书列表(最新添加的在前)
// @Summary      图书列表
// @Tags         图书
// @Produce      html
// @Success      200 {string} string "home.html"
// @Router       / [get]
func (h *BookHandler) Home(c *gin.Context) {
	h.list(c, book.SortNewest, "全部图书")
}

// SortByTitle 按书名排序
// @Summary      按书名排序的图书列表
// @Tags         图书
// @Produce      html
// @Success      200 {string} string "home.html"
// @Router       /sort_by_title [get]
func (h *BookHandler) SortByTitle(c *gin.Context) {
	h.list(c, book.SortByTitle, "按书名排序")
}

// SortByAuthor 按作者排序
// @Summary      按作者排序的图书列表
// @Tags         图书
// @Produce      html
// @Success      200 {string} string "home.html"
// @Router       /sort_by_author [get]
func (h *BookHandler) SortByAuthor(c *gin.Context) {
	h.list(c, book.SortByAuthor, "按作者排序")
}

func (h *BookHandler) list(c *gin.Context, sort book.SortOrder, title string) {
	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{Sort: sort})
	if err != nil {
		response.Error(c, err)
		return
	}

	page := &view.HomePage{
		Page:  view.Page{Title: title},
		Books: result.Items,
		Sort:  result.Sort,
	}
	render(c, view.HomeTemplate, &page.Page, page)
}

// Search 按书名或作者名搜索(不区分大小写)
// @Summary      搜索图书
// @Description  关键词为空时返回空列表并提示
// @Tags         图书
// @Produce      html
// @Param        search query string false "关键词"
// @Success      200 {string} string "home.html"
// @Router       /search [get]
func (h *BookHandler) Search(c *gin.Context) {
	var query dto.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}

	result, err := h.searchBooksUseCase.Execute(c.Request.Context(), appbook.SearchBooksRequest{
		Keyword: query.Keyword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	page := &view.HomePage{
		Page:  view.Page{Title: "搜索结果", Keyword: result.Keyword},
		Books: result.Items,
	}

	var extra []flash.Message
	if result.Warning != "" {
		extra = append(extra, flash.Message{Level: flash.LevelWarning, Text: result.Warning})
	}
	render(c, view.HomeTemplate, &page.Page, page, extra...)
}

// AddBookPage 新增图书表单页(作者下拉框)
// @Summary      新增图书页面
// @Tags         图书
// @Produce      html
// @Success      200 {string} string "add_book.html"
// @Router       /add_book [get]
func (h *BookHandler) AddBookPage(c *gin.Context) {
	authors, err := h.listAuthorsUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	page := &view.AddBookPage{
		Page:    view.Page{Title: "新增图书"},
		Authors: authors,
	}
	render(c, view.AddBookTemplate, &page.Page, page)
}

// AddBook 新增图书
// @Summary      新增图书
// @Tags         图书
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        isbn             formData string true  "ISBN(不超过13字符)"
// @Param        title            formData string true  "书名(不超过250字符)"
// @Param        publication_year formData int    false "出版年份"
// @Param        author_id        formData int    true  "作者ID"
// @Success      302 {string} string "跳转首页"
// @Failure      400 {string} string "参数错误"
// @Failure      422 {string} string "作者不存在"
// @Router       /add_book [post]
func (h *BookHandler) AddBook(c *gin.Context) {
	// 1. 绑定并验证表单
	var form dto.AddBookForm
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
	result, err := h.addBookUseCase.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 提示消息并跳转
	middleware.AddFlash(c, flash.LevelSuccess, "图书 "+result.Title+" 添加成功！")
	response.Redirect(c, "/")
}

// BookDetails 图书详情(作者、平均评分、Open Library信息)
// @Summary      图书详情
// @Tags         图书
// @Produce      html
// @Param        book_id path int true "图书ID"
// @Success      200 {string} string "book_details.html"
// @Failure      404 {string} string "图书不存在"
// @Failure      502 {string} string "图书目录服务暂不可用"
// @Router       /book/{book_id} [get]
func (h *BookHandler) BookDetails(c *gin.Context) {
	bookID, ok := bindBookURI(c)
	if !ok {
		return
	}

	result, err := h.getBookUseCase.Execute(c.Request.Context(), appbook.GetBookRequest{BookID: bookID})
	if err != nil {
		response.Error(c, err)
		return
	}

	page := view.NewBookDetailsPage(result)
	render(c, view.BookDetailsTemplate, &page.Page, page)
}

// DeleteBook 删除图书及其评分
// @Summary      删除图书
// @Tags         图书
// @Produce      html
// @Param        book_id path int true "图书ID"
// @Success      302 {string} string "跳转首页"
// @Failure      404 {string} string "图书不存在"
// @Router       /book/{book_id}/delete [get]
// @Router       /book/{book_id}/delete [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	bookID, ok := bindBookURI(c)
	if !ok {
		return
	}

	result, err := h.deleteBookUseCase.Execute(c.Request.Context(), appbook.DeleteBookRequest{BookID: bookID})
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.AddFlash(c, flash.LevelSuccess, "图书 "+result.Title+" 删除成功！")
	response.Redirect(c, "/")
}
