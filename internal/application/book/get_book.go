package book

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/author"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/rating"
)

// GetBookUseCase 图书详情用例
// 设计说明:
// 1. 图书不存在 → NotFound(404)
// 2. 平均分没有评分时为"暂无评分"，不显示0
// 3. 外部目录查询失败 → ExternalServiceFault(502)，不降级、不重试
type GetBookUseCase struct {
	bookService   book.Service
	ratingService rating.Service
	metadata      book.MetadataProvider
}

// NewGetBookUseCase 创建图书详情用例
func NewGetBookUseCase(
	bookService book.Service,
	ratingService rating.Service,
	metadata book.MetadataProvider,
) *GetBookUseCase {
	return &GetBookUseCase{
		bookService:   bookService,
		ratingService: ratingService,
		metadata:      metadata,
	}
}

// GetBookRequest 详情请求
type GetBookRequest struct {
	BookID uint
}

// AuthorDetail 详情页作者信息
type AuthorDetail struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	BirthDate   string `json:"birth_date,omitempty"`
	DateOfDeath string `json:"date_of_death,omitempty"`
	Living      bool   `json:"living"`
}

// GetBookResponse 详情响应
type GetBookResponse struct {
	Book        BookListItem   `json:"book"`
	Author      AuthorDetail   `json:"author"`
	Average     rating.Average `json:"-"`
	AverageText string         `json:"average"`
	RatingCount int64          `json:"rating_count"`
	Metadata    *book.Metadata `json:"metadata"`
}

// Execute 执行详情用例
func (uc *GetBookUseCase) Execute(ctx context.Context, req GetBookRequest) (*GetBookResponse, error) {
	// 1. 图书 + 作者
	entry, err := uc.bookService.GetEntry(ctx, req.BookID)
	if err != nil {
		return nil, err
	}

	// 2. 平均分
	avg, err := uc.ratingService.AverageFor(ctx, entry.Book.ID)
	if err != nil {
		return nil, err
	}

	// 3. 外部元数据
	meta, err := uc.metadata.LookupByISBN(ctx, entry.Book.ISBN)
	if err != nil {
		return nil, err
	}

	return &GetBookResponse{
		Book:        toListItems([]*book.Entry{entry})[0],
		Author:      toAuthorDetail(entry.Author),
		Average:     avg,
		AverageText: avg.String(),
		RatingCount: avg.Count,
		Metadata:    meta,
	}, nil
}

func toAuthorDetail(a *author.Author) AuthorDetail {
	d := AuthorDetail{
		ID:     a.ID,
		Name:   a.Label(),
		Living: a.IsLiving(),
	}
	if a.BirthDate != nil {
		d.BirthDate = a.BirthDate.Format(author.DateLayout)
	}
	if a.DateOfDeath != nil {
		d.DateOfDeath = a.DateOfDeath.Format(author.DateLayout)
	}
	return d
}
