package rating

import (
	"context"
)

// Repository 评分仓储接口
type Repository interface {
	// Create 创建评分，成功后回填ID
	Create(ctx context.Context, rating *Rating) error

	// StatsByBook 统计某本书的评分数量与总分
	StatsByBook(ctx context.Context, bookID uint) (Stats, error)

	// DeleteByBook 删除某本书的全部评分(随图书删除)
	DeleteByBook(ctx context.Context, bookID uint) (int64, error)

	// DeleteByBooks 批量删除多本书的评分(随作者级联删除)
	DeleteByBooks(ctx context.Context, bookIDs []uint) (int64, error)
}
