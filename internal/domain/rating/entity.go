package rating

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// MinScore 最低评分
	MinScore = 1
	// MaxScore 最高评分
	MaxScore = 5
)

// Rating 评分实体
// 设计说明:
// 1. 评分创建后不可修改，没有更新和单独删除操作
// 2. 同一本书允许多条评分，展示时取平均值
// 3. 分值为1-5的整数
type Rating struct {
	ID        uint
	BookID    uint
	Score     int
	CreatedAt time.Time
}

// NewRating 创建评分(工厂方法)
func NewRating(bookID uint, score int) *Rating {
	return &Rating{
		BookID:    bookID,
		Score:     score,
		CreatedAt: time.Now(),
	}
}

// Stats 某本书的评分统计
type Stats struct {
	Count int64
	Sum   int64
}

// Average 平均评分
// Available为false表示还没有任何评分，与"评分为0"区分开
type Average struct {
	Value     decimal.Decimal
	Count     int64
	Available bool
}

// Unavailable 暂无评分
var Unavailable = Average{}

// NewAverage 由统计数据计算平均分(四舍五入保留2位小数)
func NewAverage(stats Stats) Average {
	if stats.Count <= 0 {
		return Unavailable
	}
	mean := decimal.NewFromInt(stats.Sum).
		DivRound(decimal.NewFromInt(stats.Count), 2)
	return Average{
		Value:     mean,
		Count:     stats.Count,
		Available: true,
	}
}

// Float 平均分的浮点表示，暂无评分时第二个返回值为false
func (a Average) Float() (float64, bool) {
	if !a.Available {
		return 0, false
	}
	return a.Value.InexactFloat64(), true
}

// String 展示文本
func (a Average) String() string {
	if !a.Available {
		return "暂无评分"
	}
	return a.Value.StringFixed(2)
}
