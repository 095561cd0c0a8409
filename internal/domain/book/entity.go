package book

import (
	"github.com/xiebiao/bookshelf/internal/domain/author"
)

const (
	// MaxISBNLength ISBN最大长度(ISBN-13)
	MaxISBNLength = 13
	// MaxTitleLength 书名最大长度
	MaxTitleLength = 250
)

// Book 图书实体
// 设计说明:
// 1. 每本图书有且只有一个作者(AuthorID非空)
// 2. ISBN不做校验位和唯一性校验，只限制长度
// 3. 作者存在性由应用层保证，数据库不建外键约束
type Book struct {
	ID              uint
	ISBN            string // ISBN号
	Title           string // 书名
	PublicationYear *int   // 出版年份(可选)
	AuthorID        uint   // 作者ID
}

// NewBook 创建新图书(工厂方法)
func NewBook(isbn, title string, publicationYear *int, authorID uint) *Book {
	return &Book{
		ISBN:            isbn,
		Title:           title,
		PublicationYear: publicationYear,
		AuthorID:        authorID,
	}
}

// Label 展示名称
func (b *Book) Label() string {
	return b.Title
}

// Entry 图书目录条目(Book × Author)
// 所有列表页共用同一个联表结构，避免N+1查询
type Entry struct {
	Book   *Book
	Author *author.Author
}

// Metadata 外部目录服务返回的图书元数据
// Raw保留完整的原始结构，其余字段是展示用的常用字段
type Metadata struct {
	Raw              map[string]any
	NumFound         int64
	Title            string
	FirstPublishYear int64
	Publishers       []string
	CoverURL         string
}
