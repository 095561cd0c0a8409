// Package router 组装gin引擎：中间件、模板与全部路由
package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/xiebiao/bookshelf/docs" // swagger文档
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	"github.com/xiebiao/bookshelf/internal/interface/http/view"
	"github.com/xiebiao/bookshelf/pkg/flash"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// Handlers 全部HTTP处理器
type Handlers struct {
	Author *handler.AuthorHandler
	Book   *handler.BookHandler
	Rating *handler.RatingHandler
}

// NewHandlers 聚合处理器(供Wire注入)
func NewHandlers(author *handler.AuthorHandler, book *handler.BookHandler, rating *handler.RatingHandler) *Handlers {
	return &Handlers{Author: author, Book: book, Rating: rating}
}

// New 创建gin引擎
// 中间件顺序：Metrics → Tracing → Logger → Recovery → Session
// Tracing在Logger之前，访问日志才能带上trace_id
func New(cfg *config.Config, log *zap.Logger, flashStore flash.Store, h *Handlers) (*gin.Engine, error) {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	tmpl, err := view.Templates()
	if err != nil {
		return nil, fmt.Errorf("解析页面模板失败: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(
		middleware.Metrics(),
		middleware.Tracing(),
		middleware.Logger(log),
		middleware.Recovery(),
		middleware.Session(flashStore, middleware.SessionOptions{
			CookieName: cfg.Session.CookieName,
			MaxAge:     cfg.Session.FlashTTL,
			Secure:     cfg.Session.Secure,
		}),
	)

	registerRoutes(r, h)

	// 健康检查与监控
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档，访问 /swagger/index.html
	// 生产环境默认关闭
	if cfg.Server.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.NoRoute(response.NotFound)

	return r, nil
}

func registerRoutes(r *gin.Engine, h *Handlers) {
	// 图书列表
	r.GET("/", h.Book.Home)
	r.GET("/sort_by_title", h.Book.SortByTitle)
	r.GET("/sort_by_author", h.Book.SortByAuthor)
	r.GET("/search", h.Book.Search)

	// 作者
	r.GET("/add_author", h.Author.AddAuthorPage)
	r.POST("/add_author", h.Author.AddAuthor)
	r.GET("/author/:author_id/delete", h.Author.DeleteAuthor)
	r.DELETE("/author/:author_id/delete", h.Author.DeleteAuthor)

	// 图书
	r.GET("/add_book", h.Book.AddBookPage)
	r.POST("/add_book", h.Book.AddBook)
	book := r.Group("/book/:book_id")
	{
		book.GET("", h.Book.BookDetails)
		book.POST("/rate", h.Rating.RateBook)
		book.GET("/delete", h.Book.DeleteBook)
		book.DELETE("/delete", h.Book.DeleteBook)
	}
}
