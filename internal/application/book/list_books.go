package book

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// ListBooksUseCase 首页图书列表
// 三种排序共用同一个联表查询，只有排序条件不同
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 列表查询请求
type ListBooksRequest struct {
	Sort book.SortOrder
}

// BookListItem 列表项(图书 + 作者)
type BookListItem struct {
	ID              uint   `json:"id"`
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	PublicationYear *int   `json:"publication_year,omitempty"`
	AuthorID        uint   `json:"author_id"`
	AuthorName      string `json:"author_name"`
}

// ListBooksResponse 列表查询响应
type ListBooksResponse struct {
	Items []BookListItem `json:"items"`
	Sort  string         `json:"sort"`
}

// Execute 执行列表查询用例
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	entries, err := uc.bookService.ListCatalog(ctx, req.Sort)
	if err != nil {
		return nil, err
	}

	return &ListBooksResponse{
		Items: toListItems(entries),
		Sort:  req.Sort.String(),
	}, nil
}

// toListItems 领域条目 → 列表项
func toListItems(entries []*book.Entry) []BookListItem {
	items := make([]BookListItem, len(entries))
	for i, e := range entries {
		items[i] = BookListItem{
			ID:              e.Book.ID,
			ISBN:            e.Book.ISBN,
			Title:           e.Book.Label(),
			PublicationYear: e.Book.PublicationYear,
			AuthorID:        e.Author.ID,
			AuthorName:      e.Author.Label(),
		}
	}
	return items
}
