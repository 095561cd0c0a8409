package rating

import (
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 评分领域错误定义
var (
	// ErrScoreOutOfRange 评分超出范围
	ErrScoreOutOfRange = apperrors.New(apperrors.ErrCodeInvalidParams, "评分必须是1到5之间的整数")
)
