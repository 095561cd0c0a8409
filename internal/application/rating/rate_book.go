package rating

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/rating"
	"github.com/xiebiao/bookshelf/pkg/database"
	"github.com/xiebiao/bookshelf/pkg/metrics"
)

// RateBookUseCase 图书评分用例
// 图书存在性检查与写入评分在同一事务中，并发删除图书不会留下孤立评分
type RateBookUseCase struct {
	ratingService rating.Service
	txManager     database.TxManager
}

// NewRateBookUseCase 创建评分用例
func NewRateBookUseCase(ratingService rating.Service, txManager database.TxManager) *RateBookUseCase {
	return &RateBookUseCase{
		ratingService: ratingService,
		txManager:     txManager,
	}
}

// RateBookRequest 评分请求
type RateBookRequest struct {
	BookID uint
	Score  int
}

// RateBookResponse 评分响应
type RateBookResponse struct {
	ID     uint `json:"id"`
	BookID uint `json:"book_id"`
	Score  int  `json:"score"`
}

// Execute 执行评分用例
// 分数越界 → ValidationFault；图书不存在 → NotFound
func (uc *RateBookUseCase) Execute(ctx context.Context, req RateBookRequest) (*RateBookResponse, error) {
	var r *rating.Rating
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		r, err = uc.ratingService.Rate(txCtx, req.BookID, req.Score)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.IncRatingSubmitted(r.Score)

	return &RateBookResponse{
		ID:     r.ID,
		BookID: r.BookID,
		Score:  r.Score,
	}, nil
}
