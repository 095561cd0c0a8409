// @title        书架 图书目录
// @version      1.0
// @description  作者、图书、评分管理，图书详情附带Open Library信息
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
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
	"github.com/xiebiao/bookshelf/pkg/metrics"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

var flagEnv string

var rootCmd = &cobra.Command{
	Use:   "bookshelf",
	Short: "图书目录Web服务",
	Long: `bookshelf 管理作者、图书与评分。

不带子命令时等同于 bookshelf serve。`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动HTTP服务",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "创建数据库表结构",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		return runMigrate(cfg, log)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env", "", "配置环境，加载config/config.<env>.yaml(等同BOOKSHELF_ENV)")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// bootstrap 加载配置并初始化日志
func bootstrap() (*config.Config, *zap.Logger, error) {
	if flagEnv != "" {
		if err := os.Setenv(config.EnvPrefix+"_ENV", flagEnv); err != nil {
			return nil, nil, err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}

	log, err := provideLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("初始化日志失败: %w", err)
	}
	zap.ReplaceGlobals(log)

	return cfg, log, nil
}

// runServe 启动服务，收到SIGINT/SIGTERM后优雅退出
func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. 配置与日志
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("配置加载成功",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("database", cfg.Database.Driver),
		zap.Bool("redis", cfg.Redis.Enabled),
	)

	// 2. 链路追踪与指标
	shutdownTracer, err := tracing.InitTracer(ctx, cfg.Tracing.Enabled, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
	if err != nil {
		return fmt.Errorf("初始化链路追踪失败: %w", err)
	}
	metrics.InitMetrics()

	// 3. 依赖注入
	srv, cleanup, err := buildServer(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	// 4. 启动HTTP服务
	errCh := make(chan error, 1)
	go func() {
		log.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("服务启动失败: %w", err)
	case <-ctx.Done():
	}

	// 5. 优雅退出
	log.Info("正在关闭服务...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP服务关闭失败", zap.Error(err))
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Warn("链路追踪关闭失败", zap.Error(err))
	}
	log.Info("服务已退出")
	return nil
}

// buildServer 手动依赖注入
// Repository ← Service ← UseCase ← Handler ← Router
// 与wire.go中的InitializeServer保持一致
func buildServer(ctx context.Context, cfg *config.Config, log *zap.Logger) (*http.Server, func(), error) {
	// 基础设施层
	repos, closeRepos, err := provideRepositories(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	flashStore, closeFlash, err := provideFlashStore(ctx, cfg, log)
	if err != nil {
		closeRepos()
		return nil, nil, err
	}
	cleanup := func() {
		closeFlash()
		closeRepos()
	}
	metadata := provideMetadataProvider(cfg, log)

	// 领域层
	authorService := author.NewService(repos.Authors)
	bookService := book.NewService(repos.Books, repos.Authors)
	ratingService := rating.NewService(repos.Ratings, repos.Books)

	// 应用层
	addAuthorUseCase := appauthor.NewAddAuthorUseCase(authorService)
	listAuthorsUseCase := appauthor.NewListAuthorsUseCase(authorService)
	deleteAuthorUseCase := appauthor.NewDeleteAuthorUseCase(repos.Authors, repos.Books, repos.Ratings, repos.Tx)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)
	searchBooksUseCase := appbook.NewSearchBooksUseCase(bookService)
	addBookUseCase := appbook.NewAddBookUseCase(bookService)
	getBookUseCase := appbook.NewGetBookUseCase(bookService, ratingService, metadata)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(repos.Books, repos.Ratings, repos.Tx)
	rateBookUseCase := apprating.NewRateBookUseCase(ratingService, repos.Tx)

	// 接口层
	handlers := router.NewHandlers(
		handler.NewAuthorHandler(addAuthorUseCase, deleteAuthorUseCase),
		handler.NewBookHandler(listBooksUseCase, searchBooksUseCase, addBookUseCase, getBookUseCase, deleteBookUseCase, listAuthorsUseCase),
		handler.NewRatingHandler(rateBookUseCase),
	)

	engine, err := router.New(cfg, log, flashStore, handlers)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return provideHTTPServer(cfg, engine), cleanup, nil
}
