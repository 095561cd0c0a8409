package database

import (
	"context"
)

// TxManager 事务管理器接口
// fn内通过ctx执行的所有Repository操作都在同一事务中：
// fn返回error时ROLLBACK，返回nil时COMMIT
//
// 使用示例:
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    if _, err := ratingRepo.DeleteByBook(ctx, bookID); err != nil {
//	        return err
//	    }
//	    return bookRepo.Delete(ctx, bookID)
//	})
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// TxFunc 适配普通函数为TxManager
type TxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

// Transaction 实现TxManager
func (f TxFunc) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return f(ctx, fn)
}
