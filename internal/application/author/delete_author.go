package author

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/author"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/rating"
	"github.com/xiebiao/bookshelf/pkg/database"
	"github.com/xiebiao/bookshelf/pkg/metrics"
)

// DeleteAuthorUseCase 删除作者用例(级联删除)
// 设计说明:
// 1. 删除顺序：评分 → 图书 → 作者，子记录先于父记录
// 2. 三步在同一个事务中完成，任何一步失败全部回滚，不会留下没有作者的图书
type DeleteAuthorUseCase struct {
	authorRepo author.Repository
	bookRepo   book.Repository
	ratingRepo rating.Repository
	txManager  database.TxManager
}

// NewDeleteAuthorUseCase 创建删除作者用例
func NewDeleteAuthorUseCase(
	authorRepo author.Repository,
	bookRepo book.Repository,
	ratingRepo rating.Repository,
	txManager database.TxManager,
) *DeleteAuthorUseCase {
	return &DeleteAuthorUseCase{
		authorRepo: authorRepo,
		bookRepo:   bookRepo,
		ratingRepo: ratingRepo,
		txManager:  txManager,
	}
}

// DeleteAuthorRequest 删除作者请求
type DeleteAuthorRequest struct {
	AuthorID uint
}

// DeleteAuthorResponse 删除作者响应
type DeleteAuthorResponse struct {
	Name           string `json:"name"`
	BooksDeleted   int64  `json:"books_deleted"`
	RatingsDeleted int64  `json:"ratings_deleted"`
}

// Execute 执行删除作者用例
func (uc *DeleteAuthorUseCase) Execute(ctx context.Context, req DeleteAuthorRequest) (*DeleteAuthorResponse, error) {
	var resp DeleteAuthorResponse

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 作者不存在直接返回NotFound
		a, err := uc.authorRepo.FindByID(txCtx, req.AuthorID)
		if err != nil {
			return err
		}
		resp.Name = a.Name

		// 2. 删除名下图书的全部评分
		books, err := uc.bookRepo.ListByAuthor(txCtx, a.ID)
		if err != nil {
			return err
		}
		bookIDs := make([]uint, len(books))
		for i, b := range books {
			bookIDs[i] = b.ID
		}
		if resp.RatingsDeleted, err = uc.ratingRepo.DeleteByBooks(txCtx, bookIDs); err != nil {
			return err
		}

		// 3. 删除图书
		if resp.BooksDeleted, err = uc.bookRepo.DeleteByAuthor(txCtx, a.ID); err != nil {
			return err
		}

		// 4. 删除作者
		return uc.authorRepo.Delete(txCtx, a.ID)
	})
	if err != nil {
		return nil, err
	}

	metrics.AddDeleted("rating", resp.RatingsDeleted)
	metrics.AddDeleted("book", resp.BooksDeleted)
	metrics.AddDeleted("author", 1)

	return &resp, nil
}
