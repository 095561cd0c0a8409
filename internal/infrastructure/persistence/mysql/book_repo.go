package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshelf/internal/domain/author"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 列表和详情通过JOIN一次查出作者，避免N+1查询
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// entryRow 图书JOIN作者的查询结果
type entryRow struct {
	BookID          uint       `gorm:"column:book_id"`
	ISBN            string     `gorm:"column:isbn"`
	Title           string     `gorm:"column:title"`
	PublicationYear *int       `gorm:"column:publication_year"`
	AuthorID        uint       `gorm:"column:author_id"`
	AuthorName      string     `gorm:"column:author_name"`
	BirthDate       *time.Time `gorm:"column:birth_date"`
	DateOfDeath     *time.Time `gorm:"column:date_of_death"`
}

const entryColumns = "books.id AS book_id, books.isbn, books.title, books.publication_year, books.author_id, " +
	"authors.name AS author_name, authors.birth_date, authors.date_of_death"

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	// 1. 领域实体 → GORM模型
	model := &BookModel{
		ISBN:            b.ISBN,
		Title:           b.Title,
		PublicationYear: b.PublicationYear,
		AuthorID:        b.AuthorID,
	}

	// 2. 插入数据库
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 3. 回填自增ID
	b.ID = model.ID
	return nil
}

// FindByID 根据ID查找图书
// 事务中锁定该行，评分与删除图书互斥
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := lockingDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// FindEntry 查询图书及其作者
func (r *bookRepository) FindEntry(ctx context.Context, id uint) (*book.Entry, error) {
	var rows []entryRow
	err := r.entryQuery(ctx).
		Where("books.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	if len(rows) == 0 {
		return nil, book.ErrBookNotFound
	}

	return toEntry(&rows[0]), nil
}

// ListEntries 查询图书列表(带作者)
// 关键词为空时返回全部；非空时对书名和作者姓名做大小写不敏感的子串匹配
func (r *bookRepository) ListEntries(ctx context.Context, params book.ListParams) ([]*book.Entry, error) {
	query := r.entryQuery(ctx)

	if params.Keyword != "" {
		pattern := containsPattern(params.Keyword)
		query = query.Where("LOWER(books.title) LIKE ? OR LOWER(authors.name) LIKE ?", pattern, pattern)
	}

	// 排序(id作为第二排序键，保证结果稳定)
	switch params.Sort {
	case book.SortByTitle:
		query = query.Order("books.title ASC").Order("books.id ASC")
	case book.SortByAuthor:
		query = query.Order("authors.name ASC").Order("books.id ASC")
	default:
		query = query.Order("books.id DESC") // 默认最新录入在前
	}

	var rows []entryRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}

	entries := make([]*book.Entry, len(rows))
	for i := range rows {
		entries[i] = toEntry(&rows[i])
	}
	return entries, nil
}

// ListByAuthor 查询作者名下的图书(事务中锁定)
func (r *bookRepository) ListByAuthor(ctx context.Context, authorID uint) ([]*book.Book, error) {
	var models []BookModel
	err := lockingDB(ctx, r.db).
		Where("author_id = ?", authorID).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询作者图书失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, nil
}

// Delete 删除图书(物理删除)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&BookModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}

	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}

	return nil
}

// DeleteByAuthor 删除作者名下全部图书，返回删除条数
func (r *bookRepository) DeleteByAuthor(ctx context.Context, authorID uint) (int64, error) {
	result := getDB(ctx, r.db).Where("author_id = ?", authorID).Delete(&BookModel{})
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "删除作者图书失败")
	}
	return result.RowsAffected, nil
}

func (r *bookRepository) entryQuery(ctx context.Context) *gorm.DB {
	return getDB(ctx, r.db).
		Table("books").
		Select(entryColumns).
		Joins("JOIN authors ON authors.id = books.author_id")
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:              model.ID,
		ISBN:            model.ISBN,
		Title:           model.Title,
		PublicationYear: model.PublicationYear,
		AuthorID:        model.AuthorID,
	}
}

func toEntry(row *entryRow) *book.Entry {
	return &book.Entry{
		Book: &book.Book{
			ID:              row.BookID,
			ISBN:            row.ISBN,
			Title:           row.Title,
			PublicationYear: row.PublicationYear,
			AuthorID:        row.AuthorID,
		},
		Author: &author.Author{
			ID:          row.AuthorID,
			Name:        row.AuthorName,
			BirthDate:   row.BirthDate,
			DateOfDeath: row.DateOfDeath,
		},
	}
}
