package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	apprating "github.com/xiebiao/bookshelf/internal/application/rating"
	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	"github.com/xiebiao/bookshelf/pkg/flash"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// RatingHandler 评分HTTP处理器
type RatingHandler struct {
	rateBookUseCase *apprating.RateBookUseCase
}

// NewRatingHandler 创建评分处理器
func NewRatingHandler(rateBookUseCase *apprating.RateBookUseCase) *RatingHandler {
	return &RatingHandler{rateBookUseCase: rateBookUseCase}
}

// RateBook 提交评分
// @Summary      图书评分
// @Tags         评分
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        book_id path     int true "图书ID"
// @Param        rating  formData int true "评分(1-5)"
// @Success      302 {string} string "跳转图书详情"
// @Failure      400 {string} string "评分超出范围"
// @Failure      404 {string} string "图书不存在"
// @Router       /book/{book_id}/rate [post]
func (h *RatingHandler) RateBook(c *gin.Context) {
	bookID, ok := bindBookURI(c)
	if !ok {
		return
	}

	var form dto.RateForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, dto.BindError(err))
		return
	}

	_, err := h.rateBookUseCase.Execute(c.Request.Context(), apprating.RateBookRequest{
		BookID: bookID,
		Score:  form.Rating,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.AddFlash(c, flash.LevelSuccess, "评分提交成功！")
	response.Redirect(c, fmt.Sprintf("/book/%d", bookID))
}
