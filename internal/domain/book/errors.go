package book

import (
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrISBNRequired ISBN必填
	ErrISBNRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN不能为空")

	// ErrISBNTooLong ISBN过长
	ErrISBNTooLong = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN不能超过13个字符")

	// ErrTitleRequired 书名必填
	ErrTitleRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空")

	// ErrTitleTooLong 书名过长
	ErrTitleTooLong = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能超过250个字符")

	// ErrAuthorRequired 未指定作者
	ErrAuthorRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "请选择作者")

	// ErrInvalidPublicationYear 出版年份格式错误
	ErrInvalidPublicationYear = apperrors.New(apperrors.ErrCodeInvalidParams, "出版年份必须是整数")

	// ErrUnknownAuthor 引用的作者不存在
	ErrUnknownAuthor = apperrors.New(apperrors.ErrCodeReferential, "所选作者不存在")

	// ErrMetadataUnavailable 外部图书目录服务不可用
	ErrMetadataUnavailable = apperrors.New(apperrors.ErrCodeExternalService, "图书目录服务暂不可用")
)
