package author

import (
	"time"
)

// MaxNameLength 作者姓名最大长度
const MaxNameLength = 100

// DateLayout 日期格式（ISO 8601，YYYY-MM-DD）
const DateLayout = "2006-01-02"

// Author 作者实体(聚合根)
// 设计说明:
// 1. 一个作者拥有零到多本图书，图书通过AuthorID引用作者
// 2. 生卒日期都是可选的，DateOfDeath为空表示仍在世或未知
// 3. 领域实体不依赖GORM tag，映射由Repository负责
type Author struct {
	ID          uint
	Name        string     // 姓名
	BirthDate   *time.Time // 出生日期
	DateOfDeath *time.Time // 逝世日期
}

// NewAuthor 创建作者(工厂方法)
func NewAuthor(name string, birthDate, dateOfDeath *time.Time) *Author {
	return &Author{
		Name:        name,
		BirthDate:   birthDate,
		DateOfDeath: dateOfDeath,
	}
}

// Label 展示名称
func (a *Author) Label() string {
	return a.Name
}

// IsLiving 没有逝世日期即视为在世(或未知)
func (a *Author) IsLiving() bool {
	return a.DateOfDeath == nil
}
