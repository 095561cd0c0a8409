package rating

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// Service 评分领域服务接口
type Service interface {
	// Rate 为图书评分
	// 业务规则:
	// - 分值必须在1-5之间
	// - 图书必须存在，否则返回book.ErrBookNotFound
	Rate(ctx context.Context, bookID uint, score int) (*Rating, error)

	// AverageFor 查询图书平均分
	AverageFor(ctx context.Context, bookID uint) (Average, error)
}

type service struct {
	repo     Repository
	bookRepo book.Repository
}

// NewService 创建评分领域服务
func NewService(repo Repository, bookRepo book.Repository) Service {
	return &service{repo: repo, bookRepo: bookRepo}
}

// Rate 为图书评分
func (s *service) Rate(ctx context.Context, bookID uint, score int) (*Rating, error) {
	if err := ValidateScore(score); err != nil {
		return nil, err
	}

	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	r := NewRating(bookID, score)
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// AverageFor 查询图书平均分
func (s *service) AverageFor(ctx context.Context, bookID uint) (Average, error) {
	stats, err := s.repo.StatsByBook(ctx, bookID)
	if err != nil {
		return Unavailable, err
	}
	return NewAverage(stats), nil
}

// ValidateScore 校验评分范围
func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return ErrScoreOutOfRange
	}
	return nil
}
