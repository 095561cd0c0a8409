package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshelf/internal/domain/rating"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// ratingRepository 评分仓储实现(MySQL)
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository 创建评分仓储
func NewRatingRepository(db *gorm.DB) rating.Repository {
	return &ratingRepository{db: db}
}

// Create 新增一条评分
func (r *ratingRepository) Create(ctx context.Context, rt *rating.Rating) error {
	model := &RatingModel{
		BookID:    rt.BookID,
		Score:     rt.Score,
		CreatedAt: rt.CreatedAt,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "保存评分失败")
	}

	rt.ID = model.ID
	rt.CreatedAt = model.CreatedAt
	return nil
}

// StatsByBook 统计图书的评分条数与总分
// 平均分在领域层用decimal计算，这里只做聚合
func (r *ratingRepository) StatsByBook(ctx context.Context, bookID uint) (rating.Stats, error) {
	var row struct {
		Count int64 `gorm:"column:cnt"`
		Sum   int64 `gorm:"column:total"`
	}

	err := getDB(ctx, r.db).
		Model(&RatingModel{}).
		Select("COUNT(*) AS cnt, COALESCE(SUM(rating), 0) AS total").
		Where("book_id = ?", bookID).
		Scan(&row).Error
	if err != nil {
		return rating.Stats{}, apperrors.Wrap(err, "统计评分失败")
	}

	return rating.Stats{Count: row.Count, Sum: row.Sum}, nil
}

// DeleteByBook 删除图书的全部评分
func (r *ratingRepository) DeleteByBook(ctx context.Context, bookID uint) (int64, error) {
	result := getDB(ctx, r.db).Where("book_id = ?", bookID).Delete(&RatingModel{})
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "删除评分失败")
	}
	return result.RowsAffected, nil
}

// DeleteByBooks 批量删除多本图书的评分
func (r *ratingRepository) DeleteByBooks(ctx context.Context, bookIDs []uint) (int64, error) {
	if len(bookIDs) == 0 {
		return 0, nil
	}

	result := getDB(ctx, r.db).Where("book_id IN ?", bookIDs).Delete(&RatingModel{})
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "删除评分失败")
	}
	return result.RowsAffected, nil
}

