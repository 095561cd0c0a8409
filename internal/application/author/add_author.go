package author

import (
	"context"
	"time"

	"github.com/xiebiao/bookshelf/internal/domain/author"
	"github.com/xiebiao/bookshelf/pkg/metrics"
)

// AddAuthorUseCase 新增作者用例
type AddAuthorUseCase struct {
	authorService author.Service
}

// NewAddAuthorUseCase 创建新增作者用例
func NewAddAuthorUseCase(authorService author.Service) *AddAuthorUseCase {
	return &AddAuthorUseCase{authorService: authorService}
}

// AddAuthorRequest 新增作者请求
// 日期已在HTTP层解析：出生日期必填，逝世日期无法解析时为nil
type AddAuthorRequest struct {
	Name        string
	BirthDate   time.Time
	DateOfDeath *time.Time
}

// AddAuthorResponse 新增作者响应
type AddAuthorResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Execute 执行新增作者用例
func (uc *AddAuthorUseCase) Execute(ctx context.Context, req AddAuthorRequest) (*AddAuthorResponse, error) {
	a, err := uc.authorService.AddAuthor(ctx, req.Name, req.BirthDate, req.DateOfDeath)
	if err != nil {
		return nil, err
	}

	metrics.IncAuthorsCreated()

	return &AddAuthorResponse{
		ID:   a.ID,
		Name: a.Name,
	}, nil
}
