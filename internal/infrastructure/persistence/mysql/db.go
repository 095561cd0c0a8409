package mysql

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 建表是单独的引导步骤(bookshelf migrate)，只有auto_migrate打开时才在启动时执行
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 2. 连接数据库
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:  logger.Default.LogMode(logLevel),
		NowFunc: time.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 3. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 4. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	// 5. 可选：启动时建表
	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	return db, nil
}

// AutoMigrate 创建表结构
// 只创建表、添加字段，不会删除或修改现有字段
// 模型里没有关联字段，所以不会生成外键约束，引用完整性由应用层的级联删除保证
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&AuthorModel{},
		&BookModel{},
		&RatingModel{},
	)
}

// AuthorModel GORM作者模型
type AuthorModel struct {
	ID          uint       `gorm:"primaryKey"`
	Name        string     `gorm:"size:100;not null;index;comment:姓名"`
	BirthDate   *time.Time `gorm:"type:date;comment:出生日期"`
	DateOfDeath *time.Time `gorm:"type:date;comment:逝世日期"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// BookModel GORM图书模型
// ISBN不建唯一索引(同一ISBN允许重复录入)
type BookModel struct {
	ID              uint   `gorm:"primaryKey"`
	ISBN            string `gorm:"column:isbn;size:13;not null;comment:ISBN号"`
	Title           string `gorm:"size:250;not null;index;comment:书名"`
	PublicationYear *int   `gorm:"comment:出版年份"`
	AuthorID        uint   `gorm:"index;not null;comment:作者ID"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// RatingModel GORM评分模型
type RatingModel struct {
	ID        uint      `gorm:"primaryKey"`
	BookID    uint      `gorm:"index;not null;comment:图书ID"`
	Score     int       `gorm:"column:rating;not null;comment:评分(1-5)"`
	CreatedAt time.Time `gorm:"comment:评分时间"`
}

// TableName 指定表名
func (RatingModel) TableName() string {
	return "ratings"
}
