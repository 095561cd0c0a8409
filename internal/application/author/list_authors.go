package author

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/author"
)

// ListAuthorsUseCase 作者列表(添加图书页面的下拉框)
type ListAuthorsUseCase struct {
	authorService author.Service
}

// NewListAuthorsUseCase 创建作者列表用例
func NewListAuthorsUseCase(authorService author.Service) *ListAuthorsUseCase {
	return &ListAuthorsUseCase{authorService: authorService}
}

// AuthorOption 下拉框选项
type AuthorOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Execute 按姓名升序返回全部作者
func (uc *ListAuthorsUseCase) Execute(ctx context.Context) ([]AuthorOption, error) {
	authors, err := uc.authorService.ListAuthors(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]AuthorOption, len(authors))
	for i, a := range authors {
		options[i] = AuthorOption{ID: a.ID, Name: a.Label()}
	}
	return options, nil
}
