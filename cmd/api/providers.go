package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/author"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/rating"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/openlibrary"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshelf/pkg/database"
	"github.com/xiebiao/bookshelf/pkg/flash"
	"github.com/xiebiao/bookshelf/pkg/logger"
)

// repositories 存储层依赖(MySQL或内存实现)
type repositories struct {
	Authors author.Repository
	Books   book.Repository
	Ratings rating.Repository
	Tx      database.TxManager
}

// provideLogger 从配置创建日志
func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
}

// provideRepositories 按database.driver选择存储实现
// memory驱动用于本地体验，进程退出后数据丢失
func provideRepositories(cfg *config.Config, log *zap.Logger) (*repositories, func(), error) {
	if cfg.Database.Driver == "memory" {
		log.Warn("使用内存存储，数据不会持久化")
		store := memory.NewStore()
		return &repositories{
			Authors: store.Authors(),
			Books:   store.Books(),
			Ratings: store.Ratings(),
			Tx:      store,
		}, func() {}, nil
	}

	loc, err := cfg.Database.Location()
	if err != nil {
		return nil, nil, err
	}

	db, err := mysql.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	log.Info("数据库连接成功",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName),
	)

	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	return &repositories{
		Authors: mysql.NewAuthorRepository(db, loc),
		Books:   mysql.NewBookRepository(db),
		Ratings: mysql.NewRatingRepository(db),
		Tx:      mysql.NewTxManager(db),
	}, cleanup, nil
}

// provideFlashStore 启用Redis时提示消息存放在Redis，否则放在进程内存
func provideFlashStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (flash.Store, func(), error) {
	if !cfg.Redis.Enabled {
		return flash.NewMemoryStore(cfg.Session.FlashTTL), func() {}, nil
	}

	client, err := redis.NewClient(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return redis.NewFlashStore(client, cfg.Session.FlashTTL), func() { _ = client.Close() }, nil
}

// provideMetadataProvider Open Library客户端
func provideMetadataProvider(cfg *config.Config, log *zap.Logger) book.MetadataProvider {
	return openlibrary.NewClient(cfg.Metadata, log)
}

// provideHTTPServer HTTP服务(读写超时来自配置)
func provideHTTPServer(cfg *config.Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

// runMigrate 创建表结构
func runMigrate(cfg *config.Config, log *zap.Logger) error {
	if cfg.Database.Driver != "mysql" {
		return errors.New("只有mysql驱动需要迁移")
	}

	db, err := mysql.NewDB(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	if err := mysql.AutoMigrate(db); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	log.Info("数据库迁移完成", zap.String("dbname", cfg.Database.DBName))
	return nil
}
