//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 运行 `wire gen ./cmd/api` 生成wire_gen.go，生成的InitializeServer与main.go中的buildServer等价

package main

import (
	"context"
	"net/http"

	"github.com/google/wire"
	"go.uber.org/zap"

	appauthor "github.com/xiebiao/bookshelf/internal/application/author"
	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	apprating "github.com/xiebiao/bookshelf/internal/application/rating"
	"github.com/xiebiao/bookshelf/internal/domain/author"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/rating"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/internal/interface/http/router"
)

// infrastructureSet 基础设施层：存储、提示消息、外部目录服务
var infrastructureSet = wire.NewSet(
	provideRepositories,
	wire.FieldsOf(new(*repositories), "Authors", "Books", "Ratings", "Tx"),
	provideFlashStore,
	provideMetadataProvider,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	author.NewService,
	book.NewService,
	rating.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appauthor.NewAddAuthorUseCase,
	appauthor.NewListAuthorsUseCase,
	appauthor.NewDeleteAuthorUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewSearchBooksUseCase,
	appbook.NewAddBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewDeleteBookUseCase,
	apprating.NewRateBookUseCase,
)

// interfaceSet 处理器与路由
var interfaceSet = wire.NewSet(
	handler.NewAuthorHandler,
	handler.NewBookHandler,
	handler.NewRatingHandler,
	router.NewHandlers,
	router.New,
	provideHTTPServer,
)

// InitializeServer 组装HTTP服务
// 返回的cleanup负责关闭数据库与Redis连接
func InitializeServer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*http.Server, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}
