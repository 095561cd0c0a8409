package author

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

// Service 作者领域服务接口
type Service interface {
	// AddAuthor 添加作者
	// 业务规则:
	// - 姓名必填，最多100个字符
	// - 出生日期必填
	AddAuthor(ctx context.Context, name string, birthDate time.Time, dateOfDeath *time.Time) (*Author, error)

	// GetAuthor 根据ID获取作者
	GetAuthor(ctx context.Context, id uint) (*Author, error)

	// ListAuthors 查询全部作者
	ListAuthors(ctx context.Context) ([]*Author, error)
}

type service struct {
	repo Repository
}

// NewService 创建作者领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddAuthor 添加作者
func (s *service) AddAuthor(ctx context.Context, name string, birthDate time.Time, dateOfDeath *time.Time) (*Author, error) {
	name = strings.TrimSpace(name)
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if birthDate.IsZero() {
		return nil, ErrBirthDateRequired
	}

	author := NewAuthor(name, &birthDate, dateOfDeath)
	if err := s.repo.Create(ctx, author); err != nil {
		return nil, err
	}

	return author, nil
}

// GetAuthor 根据ID获取作者
func (s *service) GetAuthor(ctx context.Context, id uint) (*Author, error) {
	return s.repo.FindByID(ctx, id)
}

// ListAuthors 查询全部作者
func (s *service) ListAuthors(ctx context.Context) ([]*Author, error) {
	return s.repo.FindAll(ctx)
}

// ValidateName 校验作者姓名
// 长度按字符数计算(中文姓名一个字算一个字符)
func ValidateName(name string) error {
	if name == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// ParseBirthDate 解析出生日期(严格)
// 空值或格式错误都会失败
func ParseBirthDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrBirthDateRequired
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidBirthDate
	}
	return t, nil
}

// ParseDateOfDeath 解析逝世日期(宽松)
// 空值或无法解析时返回nil，不视为错误
func ParseDateOfDeath(value string) *time.Time {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return nil
	}
	return &t
}
