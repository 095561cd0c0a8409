package book

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/rating"
	"github.com/xiebiao/bookshelf/pkg/database"
	"github.com/xiebiao/bookshelf/pkg/metrics"
)

// DeleteBookUseCase 删除图书用例
// 图书的评分与图书在同一事务中删除，不留下孤立评分
type DeleteBookUseCase struct {
	bookRepo   book.Repository
	ratingRepo rating.Repository
	txManager  database.TxManager
}

// NewDeleteBookUseCase 创建删除图书用例
func NewDeleteBookUseCase(
	bookRepo book.Repository,
	ratingRepo rating.Repository,
	txManager database.TxManager,
) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookRepo:   bookRepo,
		ratingRepo: ratingRepo,
		txManager:  txManager,
	}
}

// DeleteBookRequest 删除图书请求
type DeleteBookRequest struct {
	BookID uint
}

// DeleteBookResponse 删除图书响应
type DeleteBookResponse struct {
	Title          string `json:"title"`
	RatingsDeleted int64  `json:"ratings_deleted"`
}

// Execute 执行删除图书用例
func (uc *DeleteBookUseCase) Execute(ctx context.Context, req DeleteBookRequest) (*DeleteBookResponse, error) {
	var resp DeleteBookResponse

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		b, err := uc.bookRepo.FindByID(txCtx, req.BookID)
		if err != nil {
			return err
		}
		resp.Title = b.Title

		if resp.RatingsDeleted, err = uc.ratingRepo.DeleteByBook(txCtx, b.ID); err != nil {
			return err
		}

		return uc.bookRepo.Delete(txCtx, b.ID)
	})
	if err != nil {
		return nil, err
	}

	metrics.AddDeleted("rating", resp.RatingsDeleted)
	metrics.AddDeleted("book", 1)

	return &resp, nil
}
