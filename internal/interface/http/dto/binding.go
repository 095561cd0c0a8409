package dto

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// fieldLabels 表单字段 → 页面提示名称
var fieldLabels = map[string]string{
	"Name":      "作者姓名",
	"BirthDate": "出生日期",
	"ISBN":      "ISBN",
	"Title":     "书名",
	"AuthorID":  "作者",
	"Rating":    "评分",
}

// BindError 把gin绑定错误转换为ValidationFault
// 只取第一个校验失败的字段生成提示
func BindError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.WithCause(apperrors.ErrBindError, err)
	}

	fe := verrs[0]
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	var msg string
	switch fe.Tag() {
	case "required":
		msg = label + "不能为空"
	case "max":
		msg = fmt.Sprintf("%s不能超过%s个字符", label, fe.Param())
	case "min", "gte", "lte":
		msg = label + "超出允许范围"
	default:
		msg = label + "格式错误"
	}

	return apperrors.WithCause(apperrors.InvalidParams(msg), err)
}
