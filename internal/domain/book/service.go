package book

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/xiebiao/bookshelf/internal/domain/author"
)

// Service 图书领域服务接口
type Service interface {
	// AddBook 添加图书
	// 业务规则:
	// - ISBN必填，最多13个字符
	// - 书名必填，最多250个字符
	// - 作者必须存在，否则返回ErrUnknownAuthor
	AddBook(ctx context.Context, isbn, title string, publicationYear *int, authorID uint) (*Book, error)

	// GetEntry 获取图书及作者
	GetEntry(ctx context.Context, id uint) (*Entry, error)

	// ListCatalog 按指定排序查询全部目录
	ListCatalog(ctx context.Context, sort SortOrder) ([]*Entry, error)

	// Search 按书名或作者姓名搜索，结果按图书ID降序
	// 关键词为空时返回空结果，由调用方提示用户
	Search(ctx context.Context, keyword string) ([]*Entry, error)
}

type service struct {
	repo       Repository
	authorRepo author.Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository, authorRepo author.Repository) Service {
	return &service{repo: repo, authorRepo: authorRepo}
}

// AddBook 添加图书
func (s *service) AddBook(ctx context.Context, isbn, title string, publicationYear *int, authorID uint) (*Book, error) {
	// 1. 字段校验
	isbn = strings.TrimSpace(isbn)
	title = strings.TrimSpace(title)
	if err := validateISBN(isbn); err != nil {
		return nil, err
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if authorID == 0 {
		return nil, ErrAuthorRequired
	}

	// 2. 引用校验：作者必须存在
	if _, err := s.authorRepo.FindByID(ctx, authorID); err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return nil, ErrUnknownAuthor
		}
		return nil, err
	}

	// 3. 持久化
	book := NewBook(isbn, title, publicationYear, authorID)
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// GetEntry 获取图书及作者
func (s *service) GetEntry(ctx context.Context, id uint) (*Entry, error) {
	return s.repo.FindEntry(ctx, id)
}

// ListCatalog 查询全部目录
func (s *service) ListCatalog(ctx context.Context, sort SortOrder) ([]*Entry, error) {
	return s.repo.ListEntries(ctx, ListParams{Sort: sort})
}

// Search 搜索目录
func (s *service) Search(ctx context.Context, keyword string) ([]*Entry, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []*Entry{}, nil
	}
	return s.repo.ListEntries(ctx, ListParams{Sort: SortNewest, Keyword: keyword})
}

// =========================================
// 辅助函数:业务规则校验
// =========================================

func validateISBN(isbn string) error {
	if isbn == "" {
		return ErrISBNRequired
	}
	if utf8.RuneCountInString(isbn) > MaxISBNLength {
		return ErrISBNTooLong
	}
	return nil
}

func validateTitle(title string) error {
	if title == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}
