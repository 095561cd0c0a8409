package dto

import (
	"strconv"
	"strings"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// AddBookForm 新增图书表单
type AddBookForm struct {
	ISBN            string `form:"isbn" binding:"required,max=13" example:"1234567890123"`
	Title           string `form:"title" binding:"required,max=250" example:"The Raven"`
	PublicationYear string `form:"publication_year" example:"1845"` // 可选
	AuthorID        uint   `form:"author_id" binding:"required" example:"1"`
}

// ToRequest 表单 → 用例请求
func (f AddBookForm) ToRequest() (appbook.AddBookRequest, error) {
	year, err := parseYear(f.PublicationYear)
	if err != nil {
		return appbook.AddBookRequest{}, err
	}

	return appbook.AddBookRequest{
		ISBN:            f.ISBN,
		Title:           f.Title,
		PublicationYear: year,
		AuthorID:        f.AuthorID,
	}, nil
}

// parseYear 空字符串 → nil；非整数 → ValidationFault
func parseYear(value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	year, err := strconv.Atoi(value)
	if err != nil {
		return nil, book.ErrInvalidPublicationYear
	}
	return &year, nil
}

// SearchQuery 搜索参数 /search?search=
type SearchQuery struct {
	Keyword string `form:"search" example:"poe"`
}

// BookURI 路径参数 /book/:book_id
type BookURI struct {
	BookID uint `uri:"book_id" binding:"required"`
}

// RateForm 评分表单，1-5的整数
type RateForm struct {
	Rating int `form:"rating" binding:"required,min=1,max=5" example:"5"`
}
