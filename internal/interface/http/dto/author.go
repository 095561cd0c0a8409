package dto

import (
	appauthor "github.com/xiebiao/bookshelf/internal/application/author"
	"github.com/xiebiao/bookshelf/internal/domain/author"
)

// AddAuthorForm 新增作者表单
type AddAuthorForm struct {
	Name        string `form:"name" binding:"required,max=100" example:"Edgar Allan Poe"`
	BirthDate   string `form:"birthdate" binding:"required" example:"1809-01-19"`
	DateOfDeath string `form:"date_of_death" example:"1849-10-07"` // 可选，无法解析时视为空
}

// ToRequest 表单 → 用例请求
// 出生日期严格校验；逝世日期宽松处理
func (f AddAuthorForm) ToRequest() (appauthor.AddAuthorRequest, error) {
	birth, err := author.ParseBirthDate(f.BirthDate)
	if err != nil {
		return appauthor.AddAuthorRequest{}, err
	}

	return appauthor.AddAuthorRequest{
		Name:        f.Name,
		BirthDate:   birth,
		DateOfDeath: author.ParseDateOfDeath(f.DateOfDeath),
	}, nil
}

// AuthorURI 路径参数 /author/:author_id
type AuthorURI struct {
	AuthorID uint `uri:"author_id" binding:"required"`
}
