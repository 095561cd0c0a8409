// Package openlibrary Open Library图书目录客户端
package openlibrary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/metrics"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

const (
	tracerName  = "bookshelf/openlibrary"
	breakerName = "openlibrary"

	// coverURLFormat 封面图地址(M=中等尺寸)
	coverURLFormat = "https://covers.openlibrary.org/b/id/%d-M.jpg"

	// maxBodySize 响应体上限
	maxBodySize = 4 << 20
)

// Client Open Library客户端
// 1. 每次查询都是一次HTTP GET，不重试、不缓存
// 2. 超时由http.Client.Timeout和请求context共同约束
// 3. 连续失败达到阈值后熔断，熔断期间直接返回错误
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
	log        *zap.Logger
}

var _ book.MetadataProvider = (*Client)(nil)

// NewClient 创建客户端
func NewClient(cfg config.MetadataConfig, log *zap.Logger) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log.Named("openlibrary"),
	}

	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = 5
	}

	c.breaker = circuitbreaker.New(breakerName, circuitbreaker.Config{
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: circuitbreaker.ConsecutiveFailures(failures),
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			c.log.Warn("熔断器状态变化",
				zap.String("name", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
			metrics.SetCircuitBreakerState(name, int(to))
		},
	})

	return c
}

// LookupByISBN 按ISBN查询图书元数据
// 查无此书不是错误：返回NumFound为0的Metadata
func (c *Client) LookupByISBN(ctx context.Context, isbn string) (*book.Metadata, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "openlibrary.LookupByISBN",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("book.isbn", isbn)),
	)
	defer span.End()

	start := time.Now()
	var meta *book.Metadata
	err := c.breaker.Execute(func() error {
		var err error
		meta, err = c.fetch(ctx, isbn)
		return err
	})
	elapsed := time.Since(start).Seconds()

	if err != nil {
		result := metrics.LookupError
		if errors.Is(err, circuitbreaker.ErrOpenState) {
			result = metrics.LookupRejected
		}
		metrics.ObserveMetadataLookup(result, elapsed)

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log.Warn("查询图书元数据失败", zap.String("isbn", isbn), zap.String("result", result), zap.Error(err))
		return nil, apperrors.WithCause(book.ErrMetadataUnavailable, err)
	}

	result := metrics.LookupFound
	if meta.NumFound == 0 {
		result = metrics.LookupNotFound
	}
	metrics.ObserveMetadataLookup(result, elapsed)
	span.SetAttributes(attribute.Int64("openlibrary.num_found", meta.NumFound))

	return meta, nil
}

// fetch GET {base}/search.json?isbn=
func (c *Client) fetch(ctx context.Context, isbn string) (*book.Metadata, error) {
	endpoint := c.baseURL + "/search.json?" + url.Values{"isbn": {isbn}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "bookshelf/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求Open Library失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("Open Library返回状态码%d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	return parseSearchResult(body)
}

// parseSearchResult 解析search.json响应
// 完整结构保存在Raw中，常用字段用gjson按路径读取
func parseSearchResult(body []byte) (*book.Metadata, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("响应不是合法的JSON")
	}

	result := gjson.ParseBytes(body)
	raw, ok := result.Value().(map[string]interface{})
	if !ok {
		return nil, errors.New("响应不是JSON对象")
	}

	meta := &book.Metadata{
		Raw:              raw,
		NumFound:         result.Get("numFound").Int(),
		Title:            result.Get("docs.0.title").String(),
		FirstPublishYear: result.Get("docs.0.first_publish_year").Int(),
	}

	for _, p := range result.Get("docs.0.publisher").Array() {
		meta.Publishers = append(meta.Publishers, p.String())
	}

	if cover := result.Get("docs.0.cover_i"); cover.Exists() && cover.Int() > 0 {
		meta.CoverURL = fmt.Sprintf(coverURLFormat, cover.Int())
	}

	return meta, nil
}
