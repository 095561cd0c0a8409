package author

import (
	"context"
)

// Repository 作者仓储接口(依赖倒置原则)
// 由domain层定义接口，infrastructure层(mysql/memory)实现
type Repository interface {
	// Create 创建作者，成功后回填ID
	Create(ctx context.Context, author *Author) error

	// FindByID 根据ID查找作者
	// 如果不存在，返回ErrAuthorNotFound
	FindByID(ctx context.Context, id uint) (*Author, error)

	// FindAll 查询全部作者(按姓名升序，用于添加图书表单)
	FindAll(ctx context.Context) ([]*Author, error)

	// Delete 删除作者
	// 如果不存在，返回ErrAuthorNotFound
	Delete(ctx context.Context, id uint) error
}
