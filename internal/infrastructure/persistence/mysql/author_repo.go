package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshelf/internal/domain/author"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// authorRepository 作者仓储实现(MySQL)
type authorRepository struct {
	db  *gorm.DB
	loc *time.Location
}

// NewAuthorRepository 创建作者仓储
// loc为连接的时区(DSN中的loc)，驱动写入time.Time前会转换到该时区
func NewAuthorRepository(db *gorm.DB, loc *time.Location) author.Repository {
	if loc == nil {
		loc = time.UTC
	}
	return &authorRepository{db: db, loc: loc}
}

// Create 创建作者
func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	model := &AuthorModel{
		Name:        a.Name,
		BirthDate:   dateIn(a.BirthDate, r.loc),
		DateOfDeath: dateIn(a.DateOfDeath, r.loc),
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建作者失败")
	}

	// 回填自增ID
	a.ID = model.ID
	return nil
}

// FindByID 根据ID查找作者
func (r *authorRepository) FindByID(ctx context.Context, id uint) (*author.Author, error) {
	var model AuthorModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}

	return toAuthorEntity(&model), nil
}

// FindAll 查询全部作者，按姓名升序(添加图书页面的下拉框)
func (r *authorRepository) FindAll(ctx context.Context) ([]*author.Author, error) {
	var models []AuthorModel
	if err := getDB(ctx, r.db).Order("name ASC").Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询作者列表失败")
	}

	authors := make([]*author.Author, len(models))
	for i := range models {
		authors[i] = toAuthorEntity(&models[i])
	}
	return authors, nil
}

// Delete 删除作者(物理删除)
// 名下图书和评分由调用方在同一事务中先行删除
func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&AuthorModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除作者失败")
	}

	if result.RowsAffected == 0 {
		return author.ErrAuthorNotFound
	}

	return nil
}

// toAuthorEntity GORM模型 → 领域实体
func toAuthorEntity(model *AuthorModel) *author.Author {
	return &author.Author{
		ID:          model.ID,
		Name:        model.Name,
		BirthDate:   model.BirthDate,
		DateOfDeath: model.DateOfDeath,
	}
}

// dateIn 保持年月日不变，换成loc时区的零点
// DATE列只保留日期，UTC零点在西半球时区会被驱动写成前一天
func dateIn(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	y, m, d := t.Date()
	v := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return &v
}
