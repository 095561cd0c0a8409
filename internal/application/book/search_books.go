package book

import (
	"context"
	"strings"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// BlankSearchWarning 空关键词提示
const BlankSearchWarning = "请输入搜索关键词"

// SearchBooksUseCase 按书名或作者姓名搜索
type SearchBooksUseCase struct {
	bookService book.Service
}

// NewSearchBooksUseCase 创建搜索用例
func NewSearchBooksUseCase(bookService book.Service) *SearchBooksUseCase {
	return &SearchBooksUseCase{bookService: bookService}
}

// SearchBooksRequest 搜索请求
type SearchBooksRequest struct {
	Keyword string
}

// SearchBooksResponse 搜索响应
// 关键词为空时Items为空、Warning非空，不是错误
type SearchBooksResponse struct {
	Keyword string         `json:"keyword"`
	Items   []BookListItem `json:"items"`
	Warning string         `json:"warning,omitempty"`
}

// Execute 执行搜索用例
func (uc *SearchBooksUseCase) Execute(ctx context.Context, req SearchBooksRequest) (*SearchBooksResponse, error) {
	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		return &SearchBooksResponse{
			Items:   []BookListItem{},
			Warning: BlankSearchWarning,
		}, nil
	}

	entries, err := uc.bookService.Search(ctx, keyword)
	if err != nil {
		return nil, err
	}

	return &SearchBooksResponse{
		Keyword: keyword,
		Items:   toListItems(entries),
	}, nil
}
