package book

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/pkg/metrics"
)

// AddBookUseCase 新增图书用例
// 设计说明:
// 1. 应用层负责用例编排,协调领域服务完成业务流程
// 2. 作者存在性校验在领域服务中完成，不存在时返回ReferentialFault
type AddBookUseCase struct {
	bookService book.Service
}

// NewAddBookUseCase 创建新增图书用例
func NewAddBookUseCase(bookService book.Service) *AddBookUseCase {
	return &AddBookUseCase{bookService: bookService}
}

// AddBookRequest 新增图书请求
type AddBookRequest struct {
	ISBN            string
	Title           string
	PublicationYear *int // 可选
	AuthorID        uint
}

// AddBookResponse 新增图书响应
type AddBookResponse struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// Execute 执行新增图书用例
func (uc *AddBookUseCase) Execute(ctx context.Context, req AddBookRequest) (*AddBookResponse, error) {
	b, err := uc.bookService.AddBook(ctx, req.ISBN, req.Title, req.PublicationYear, req.AuthorID)
	if err != nil {
		return nil, err
	}

	metrics.IncBooksCreated()

	return &AddBookResponse{
		ID:    b.ID,
		Title: b.Title,
	}, nil
}
