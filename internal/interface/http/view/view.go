// Package view 页面模板与页面数据
//
// 模板文件通过embed打包进二进制，启动时由gin.SetHTMLTemplate安装
package view

import (
	"embed"
	"html/template"
	"strconv"

	appauthor "github.com/xiebiao/bookshelf/internal/application/author"
	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/domain/rating"
	"github.com/xiebiao/bookshelf/pkg/flash"
)

// 模板名(即文件名)
const (
	HomeTemplate        = "home.html"
	AddAuthorTemplate   = "add_author.html"
	AddBookTemplate     = "add_book.html"
	BookDetailsTemplate = "book_details.html"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates 解析全部模板
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
}

var funcMap = template.FuncMap{
	"year": func(year *int) string {
		if year == nil {
			return "-"
		}
		return strconv.Itoa(*year)
	},
}

// Page 各页面共用数据
// Keyword回填到导航栏搜索框
type Page struct {
	Title   string
	Keyword string
	Flashes []flash.Message
}

// HomePage 图书列表页(首页、排序、搜索共用)
type HomePage struct {
	Page
	Books []appbook.BookListItem
	Sort  string
}

// AddAuthorPage 新增作者页
type AddAuthorPage struct {
	Page
}

// AddBookPage 新增图书页
type AddBookPage struct {
	Page
	Authors []appauthor.AuthorOption
}

// BookDetailsPage 图书详情页
type BookDetailsPage struct {
	Page
	Detail *appbook.GetBookResponse
	Scores []int
}

// NewBookDetailsPage 详情页，评分选项1-5
func NewBookDetailsPage(detail *appbook.GetBookResponse) *BookDetailsPage {
	scores := make([]int, 0, rating.MaxScore-rating.MinScore+1)
	for s := rating.MinScore; s <= rating.MaxScore; s++ {
		scores = append(scores, s)
	}
	return &BookDetailsPage{
		Page:   Page{Title: detail.Book.Title},
		Detail: detail,
		Scores: scores,
	}
}
