// Package memory 进程内存储
// 用于database.driver=memory(本地开发、测试)，进程退出后数据丢失
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/xiebiao/bookshelf/internal/domain/author"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/rating"
	"github.com/xiebiao/bookshelf/pkg/database"
)

// Store 三张"表"及其自增序列
// 所有读写都在mu下进行；Transaction在txMu下串行执行，失败时恢复快照
// 事务外的写操作同样先取txMu，不会被其他事务的回滚覆盖
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	authors map[uint]author.Author
	books   map[uint]book.Book
	ratings map[uint]rating.Rating

	authorSeq uint
	bookSeq   uint
	ratingSeq uint
}

// NewStore 创建空存储
func NewStore() *Store {
	return &Store{
		authors: make(map[uint]author.Author),
		books:   make(map[uint]book.Book),
		ratings: make(map[uint]rating.Rating),
	}
}

var _ database.TxManager = (*Store)(nil)

type txKey struct{}

// Transaction 串行执行fn，fn返回错误时恢复执行前的数据
// 已在事务中时直接执行(与GORM嵌套事务的语义一致，由最外层决定提交或回滚)
func (s *Store) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	authors   map[uint]author.Author
	books     map[uint]book.Book
	ratings   map[uint]rating.Rating
	authorSeq uint
	bookSeq   uint
	ratingSeq uint
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		authors:   make(map[uint]author.Author, len(s.authors)),
		books:     make(map[uint]book.Book, len(s.books)),
		ratings:   make(map[uint]rating.Rating, len(s.ratings)),
		authorSeq: s.authorSeq,
		bookSeq:   s.bookSeq,
		ratingSeq: s.ratingSeq,
	}
	for k, v := range s.authors {
		snap.authors[k] = v
	}
	for k, v := range s.books {
		snap.books[k] = v
	}
	for k, v := range s.ratings {
		snap.ratings[k] = v
	}
	return snap
}

// lockWrite 获取写锁并返回解锁函数
// 事务内只取mu(txMu已由Transaction持有)，事务外先等待进行中的事务结束
func (s *Store) lockWrite(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		s.mu.Lock()
		return s.mu.Unlock
	}

	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authors = snap.authors
	s.books = snap.books
	s.ratings = snap.ratings
	s.authorSeq = snap.authorSeq
	s.bookSeq = snap.bookSeq
	s.ratingSeq = snap.ratingSeq
}

// Authors 作者仓储
func (s *Store) Authors() author.Repository { return authorRepository{s} }

// Books 图书仓储
func (s *Store) Books() book.Repository { return bookRepository{s} }

// Ratings 评分仓储
func (s *Store) Ratings() rating.Repository { return ratingRepository{s} }

// ---------------------------------------------------------------- authors

type authorRepository struct{ s *Store }

func (r authorRepository) Create(ctx context.Context, a *author.Author) error {
	defer r.s.lockWrite(ctx)()

	r.s.authorSeq++
	a.ID = r.s.authorSeq
	r.s.authors[a.ID] = *a
	return nil
}

func (r authorRepository) FindByID(_ context.Context, id uint) (*author.Author, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	return &a, nil
}

func (r authorRepository) FindAll(_ context.Context) ([]*author.Author, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	authors := make([]*author.Author, 0, len(r.s.authors))
	for _, a := range r.s.authors {
		a := a
		authors = append(authors, &a)
	}
	sort.Slice(authors, func(i, j int) bool {
		if authors[i].Name != authors[j].Name {
			return authors[i].Name < authors[j].Name
		}
		return authors[i].ID < authors[j].ID
	})
	return authors, nil
}

func (r authorRepository) Delete(ctx context.Context, id uint) error {
	defer r.s.lockWrite(ctx)()

	if _, ok := r.s.authors[id]; !ok {
		return author.ErrAuthorNotFound
	}
	delete(r.s.authors, id)
	return nil
}

// ---------------------------------------------------------------- books

type bookRepository struct{ s *Store }

func (r bookRepository) Create(ctx context.Context, b *book.Book) error {
	defer r.s.lockWrite(ctx)()

	r.s.bookSeq++
	b.ID = r.s.bookSeq
	r.s.books[b.ID] = *b
	return nil
}

func (r bookRepository) FindByID(_ context.Context, id uint) (*book.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return &b, nil
}

func (r bookRepository) FindEntry(_ context.Context, id uint) (*book.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	entry, ok := r.entry(b)
	if !ok {
		// 与INNER JOIN一致：作者缺失的图书查不到
		return nil, book.ErrBookNotFound
	}
	return entry, nil
}

func (r bookRepository) ListEntries(_ context.Context, params book.ListParams) ([]*book.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	keyword := strings.ToLower(params.Keyword)
	entries := make([]*book.Entry, 0, len(r.s.books))
	for _, b := range r.s.books {
		entry, ok := r.entry(b)
		if !ok {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(entry.Book.Title), keyword) &&
			!strings.Contains(strings.ToLower(entry.Author.Name), keyword) {
			continue
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch params.Sort {
		case book.SortByTitle:
			if a.Book.Title != b.Book.Title {
				return a.Book.Title < b.Book.Title
			}
		case book.SortByAuthor:
			if a.Author.Name != b.Author.Name {
				return a.Author.Name < b.Author.Name
			}
		default:
			return a.Book.ID > b.Book.ID
		}
		return a.Book.ID < b.Book.ID
	})
	return entries, nil
}

func (r bookRepository) ListByAuthor(_ context.Context, authorID uint) ([]*book.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	books := make([]*book.Book, 0)
	for _, b := range r.s.books {
		if b.AuthorID == authorID {
			b := b
			books = append(books, &b)
		}
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books, nil
}

func (r bookRepository) Delete(ctx context.Context, id uint) error {
	defer r.s.lockWrite(ctx)()

	if _, ok := r.s.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.s.books, id)
	return nil
}

func (r bookRepository) DeleteByAuthor(ctx context.Context, authorID uint) (int64, error) {
	defer r.s.lockWrite(ctx)()

	var n int64
	for id, b := range r.s.books {
		if b.AuthorID == authorID {
			delete(r.s.books, id)
			n++
		}
	}
	return n, nil
}

// entry 调用方需持有读锁
func (r bookRepository) entry(b book.Book) (*book.Entry, bool) {
	a, ok := r.s.authors[b.AuthorID]
	if !ok {
		return nil, false
	}
	return &book.Entry{Book: &b, Author: &a}, true
}

// ---------------------------------------------------------------- ratings

type ratingRepository struct{ s *Store }

func (r ratingRepository) Create(ctx context.Context, rt *rating.Rating) error {
	defer r.s.lockWrite(ctx)()

	r.s.ratingSeq++
	rt.ID = r.s.ratingSeq
	r.s.ratings[rt.ID] = *rt
	return nil
}

func (r ratingRepository) StatsByBook(_ context.Context, bookID uint) (rating.Stats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var stats rating.Stats
	for _, rt := range r.s.ratings {
		if rt.BookID == bookID {
			stats.Count++
			stats.Sum += int64(rt.Score)
		}
	}
	return stats, nil
}

func (r ratingRepository) DeleteByBook(ctx context.Context, bookID uint) (int64, error) {
	return r.deleteWhere(ctx, func(rt rating.Rating) bool { return rt.BookID == bookID }), nil
}

func (r ratingRepository) DeleteByBooks(ctx context.Context, bookIDs []uint) (int64, error) {
	if len(bookIDs) == 0 {
		return 0, nil
	}
	ids := make(map[uint]struct{}, len(bookIDs))
	for _, id := range bookIDs {
		ids[id] = struct{}{}
	}
	return r.deleteWhere(ctx, func(rt rating.Rating) bool {
		_, ok := ids[rt.BookID]
		return ok
	}), nil
}

func (r ratingRepository) deleteWhere(ctx context.Context, match func(rating.Rating) bool) int64 {
	defer r.s.lockWrite(ctx)()

	var n int64
	for id, rt := range r.s.ratings {
		if match(rt) {
			delete(r.s.ratings, id)
			n++
		}
	}
	return n
}
