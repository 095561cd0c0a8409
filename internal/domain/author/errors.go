package author

import (
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 作者领域错误定义
var (
	// ErrAuthorNotFound 作者不存在
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeAuthorNotFound, "作者不存在")

	// ErrNameRequired 姓名不能为空
	ErrNameRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "作者姓名不能为空")

	// ErrNameTooLong 姓名过长
	ErrNameTooLong = apperrors.New(apperrors.ErrCodeInvalidParams, "作者姓名不能超过100个字符")

	// ErrBirthDateRequired 出生日期必填
	ErrBirthDateRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "出生日期不能为空")

	// ErrInvalidBirthDate 出生日期格式错误
	ErrInvalidBirthDate = apperrors.New(apperrors.ErrCodeInvalidParams, "出生日期格式应为YYYY-MM-DD")
)
