package book

import (
	"context"
)

// SortOrder 目录排序方式
type SortOrder int

const (
	// SortNewest 按图书ID降序(首页默认)
	SortNewest SortOrder = iota
	// SortByTitle 按书名升序
	SortByTitle
	// SortByAuthor 按作者姓名升序
	SortByAuthor
)

// String 排序方式名称(用于模板与日志)
func (s SortOrder) String() string {
	switch s {
	case SortByTitle:
		return "title"
	case SortByAuthor:
		return "author"
	default:
		return "newest"
	}
}

// ListParams 目录查询参数
// 排序、搜索只改变谓词和排序，共用同一个联表查询
type ListParams struct {
	Sort    SortOrder // 排序方式
	Keyword string    // 搜索关键词(书名或作者姓名，大小写不敏感的子串匹配)
}

// Repository 图书仓储接口
type Repository interface {
	// Create 创建图书，成功后回填ID
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	// 如果不存在，返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindEntry 根据ID查找图书及其作者
	FindEntry(ctx context.Context, id uint) (*Entry, error)

	// ListEntries 查询目录(Book × Author)
	ListEntries(ctx context.Context, params ListParams) ([]*Entry, error)

	// ListByAuthor 查询某作者的全部图书
	ListByAuthor(ctx context.Context, authorID uint) ([]*Book, error)

	// Delete 删除图书
	// 如果不存在，返回ErrBookNotFound
	Delete(ctx context.Context, id uint) error

	// DeleteByAuthor 删除某作者的全部图书，返回删除数量
	DeleteByAuthor(ctx context.Context, authorID uint) (int64, error)
}

// MetadataProvider 外部图书元数据查询
// 由infrastructure/openlibrary实现
type MetadataProvider interface {
	LookupByISBN(ctx context.Context, isbn string) (*Metadata, error)
}
