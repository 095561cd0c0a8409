package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appauthor "github.com/xiebiao/bookshelf/internal/application/author"
	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	apprating "github.com/xiebiao/bookshelf/internal/application/rating"
	"github.com/xiebiao/bookshelf/internal/domain/author"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/rating"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/pkg/flash"
)

type stubMetadata struct {
	err error
}

func (s *stubMetadata) LookupByISBN(_ context.Context, _ string) (*book.Metadata, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &book.Metadata{NumFound: 1, Title: "The Raven", Publishers: []string{"Wiley and Putnam"}}, nil
}

// testClient 带cookie的测试客户端
type testClient struct {
	t       *testing.T
	handler http.Handler
	cookies []*http.Cookie
}

func newTestClient(t *testing.T, metadata book.MetadataProvider) *testClient {
	t.Helper()

	store := memory.NewStore()
	authorService := author.NewService(store.Authors())
	bookService := book.NewService(store.Books(), store.Authors())
	ratingService := rating.NewService(store.Ratings(), store.Books())

	handlers := NewHandlers(
		handler.NewAuthorHandler(
			appauthor.NewAddAuthorUseCase(authorService),
			appauthor.NewDeleteAuthorUseCase(store.Authors(), store.Books(), store.Ratings(), store),
		),
		handler.NewBookHandler(
			appbook.NewListBooksUseCase(bookService),
			appbook.NewSearchBooksUseCase(bookService),
			appbook.NewAddBookUseCase(bookService),
			appbook.NewGetBookUseCase(bookService, ratingService, metadata),
			appbook.NewDeleteBookUseCase(store.Books(), store.Ratings(), store),
			appauthor.NewListAuthorsUseCase(authorService),
		),
		handler.NewRatingHandler(apprating.NewRateBookUseCase(ratingService, store)),
	)

	cfg := &config.Config{
		Server:  config.ServerConfig{Mode: "test"},
		Session: config.SessionConfig{CookieName: "bookshelf_sid", FlashTTL: time.Minute},
	}
	engine, err := New(cfg, zap.NewNop(), flash.NewMemoryStore(time.Minute), handlers)
	require.NoError(t, err)

	return &testClient{t: t, handler: engine}
}

func (tc *testClient) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	tc.t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range tc.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	tc.handler.ServeHTTP(w, req)

	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		tc.cookies = cookies
	}
	return w
}

func (tc *testClient) get(target string) *httptest.ResponseRecorder {
	return tc.do(http.MethodGet, target, nil)
}

func (tc *testClient) post(target string, form url.Values) *httptest.ResponseRecorder {
	return tc.do(http.MethodPost, target, form)
}

func (tc *testClient) seed() {
	tc.t.Helper()
	w := tc.post("/add_author", url.Values{"name": {"Edgar Allan Poe"}, "birthdate": {"1809-01-19"}})
	require.Equal(tc.t, http.StatusFound, w.Code)
	w = tc.post("/add_book", url.Values{
		"isbn":             {"1234567890123"},
		"title":            {"The Raven"},
		"publication_year": {"1845"},
		"author_id":        {"1"},
	})
	require.Equal(tc.t, http.StatusFound, w.Code)
}

func TestCatalog_EndToEnd(t *testing.T) {
	tc := newTestClient(t, &stubMetadata{})

	// 1. 新增作者，提示消息只展示一次
	w := tc.post("/add_author", url.Values{
		"name":          {"Edgar Allan Poe"},
		"birthdate":     {"1809-01-19"},
		"date_of_death": {"1849-10-07"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = tc.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "作者 Edgar Allan Poe 添加成功！")
	assert.NotContains(t, tc.get("/").Body.String(), "添加成功")

	// 2. 新增图书
	assert.Contains(t, tc.get("/add_book").Body.String(), `<option value="1">Edgar Allan Poe</option>`)
	w = tc.post("/add_book", url.Values{
		"isbn":             {"1234567890123"},
		"title":            {"The Raven"},
		"publication_year": {"1845"},
		"author_id":        {"1"},
	})
	require.Equal(t, http.StatusFound, w.Code)

	home := tc.get("/").Body.String()
	assert.Contains(t, home, "图书 The Raven 添加成功！")
	assert.Contains(t, home, `<a href="/book/1">The Raven</a>`)
	assert.Contains(t, home, "1845")

	// 3. 评分前显示暂无评分
	assert.Contains(t, tc.get("/book/1").Body.String(), "暂无评分")

	for _, score := range []string{"4", "5"} {
		w = tc.post("/book/1/rate", url.Values{"rating": {score}})
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/book/1", w.Header().Get("Location"))
	}

	details := tc.get("/book/1").Body.String()
	assert.Contains(t, details, `<dd class="average">4.50</dd>`)
	assert.Contains(t, details, "评分提交成功！")
	assert.Contains(t, details, "Wiley and Putnam")

	// 4. 搜索(不区分大小写)
	assert.Contains(t, tc.get("/search?search=RAVEN").Body.String(), "The Raven")
	assert.Contains(t, tc.get("/search?search=poe").Body.String(), "The Raven")
	assert.NotContains(t, tc.get("/search?search=austen").Body.String(), "The Raven")
}

func TestCatalog_SortRoutes(t *testing.T) {
	tc := newTestClient(t, &stubMetadata{})
	tc.seed()
	tc.post("/add_book", url.Values{"isbn": {"2"}, "title": {"Annabel Lee"}, "author_id": {"1"}})
	tc.post("/add_author", url.Values{"name": {"Jane Austen"}, "birthdate": {"1775-12-16"}})
	tc.post("/add_book", url.Values{"isbn": {"3"}, "title": {"Emma"}, "author_id": {"2"}})

	newest := tc.get("/").Body.String()
	assert.Less(t, strings.Index(newest, "Annabel Lee"), strings.Index(newest, "The Raven"))

	byTitle := tc.get("/sort_by_title").Body.String()
	assert.Less(t, strings.Index(byTitle, "Annabel Lee"), strings.Index(byTitle, "The Raven"))

	// 按作者姓名排序，同一作者按图书ID
	w := tc.get("/sort_by_author")
	require.Equal(t, http.StatusOK, w.Code)
	byAuthor := w.Body.String()
	require.Contains(t, byAuthor, "Emma")
	assert.Less(t, strings.Index(byAuthor, "Emma"), strings.Index(byAuthor, "The Raven"))
	assert.Less(t, strings.Index(byAuthor, "The Raven"), strings.Index(byAuthor, "Annabel Lee"))
}

func TestCatalog_BlankSearchWarns(t *testing.T) {
	tc := newTestClient(t, &stubMetadata{})
	tc.seed()

	for _, target := range []string{"/search", "/search?search=", "/search?search=%20%20"} {
		w := tc.get(target)
		require.Equal(t, http.StatusOK, w.Code, target)
		body := w.Body.String()
		assert.Contains(t, body, appbook.BlankSearchWarning, target)
		assert.Contains(t, body, "flash-warning", target)
		assert.NotContains(t, body, "The Raven", target)
	}
}

func TestCatalog_ErrorStatus(t *testing.T) {
	tc := newTestClient(t, &stubMetadata{})
	tc.seed()

	cases := []struct {
		name   string
		method string
		target string
		form   url.Values
		want   int
	}{
		{"缺少出生日期", http.MethodPost, "/add_author", url.Values{"name": {"X"}}, http.StatusBadRequest},
		{"出生日期格式错误", http.MethodPost, "/add_author", url.Values{"name": {"X"}, "birthdate": {"19/01/1809"}}, http.StatusBadRequest},
		{"书名为空", http.MethodPost, "/add_book", url.Values{"isbn": {"1"}, "author_id": {"1"}}, http.StatusBadRequest},
		{"年份不是整数", http.MethodPost, "/add_book", url.Values{"isbn": {"1"}, "title": {"T"}, "publication_year": {"abc"}, "author_id": {"1"}}, http.StatusBadRequest},
		{"作者不存在", http.MethodPost, "/add_book", url.Values{"isbn": {"1"}, "title": {"T"}, "author_id": {"999"}}, http.StatusUnprocessableEntity},
		{"评分超出范围", http.MethodPost, "/book/1/rate", url.Values{"rating": {"6"}}, http.StatusBadRequest},
		{"评分缺失", http.MethodPost, "/book/1/rate", url.Values{}, http.StatusBadRequest},
		{"评分的图书不存在", http.MethodPost, "/book/999/rate", url.Values{"rating": {"3"}}, http.StatusNotFound},
		{"图书不存在", http.MethodGet, "/book/999", nil, http.StatusNotFound},
		{"图书ID不是数字", http.MethodGet, "/book/abc", nil, http.StatusNotFound},
		{"删除不存在的图书", http.MethodGet, "/book/999/delete", nil, http.StatusNotFound},
		{"删除不存在的作者", http.MethodDelete, "/author/999/delete", nil, http.StatusNotFound},
		{"未知路由", http.MethodGet, "/nope", nil, http.StatusNotFound},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := tc.do(c.method, c.target, c.form)
			assert.Equal(t, c.want, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		})
	}
}

func TestCatalog_MetadataUnavailable(t *testing.T) {
	tc := newTestClient(t, &stubMetadata{err: book.ErrMetadataUnavailable})
	tc.seed()

	w := tc.get("/book/1")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), book.ErrMetadataUnavailable.Message)
}

func TestCatalog_DeleteCascades(t *testing.T) {
	tc := newTestClient(t, &stubMetadata{})
	tc.seed()
	tc.post("/add_author", url.Values{"name": {"Jane Austen"}, "birthdate": {"1775-12-16"}})
	tc.post("/add_book", url.Values{"isbn": {"3"}, "title": {"Emma"}, "author_id": {"2"}})
	tc.post("/book/1/rate", url.Values{"rating": {"5"}})

	w := tc.do(http.MethodDelete, "/author/1/delete", nil)
	require.Equal(t, http.StatusFound, w.Code)

	home := tc.get("/").Body.String()
	assert.Contains(t, home, "作者 Edgar Allan Poe 删除成功！")
	assert.NotContains(t, home, "The Raven")
	assert.Contains(t, home, "Emma")
	assert.Equal(t, http.StatusNotFound, tc.get("/book/1").Code)

	w = tc.get("/book/2/delete")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, tc.get("/").Body.String(), "图书 Emma 删除成功！")
}

func TestPingAndMetrics(t *testing.T) {
	tc := newTestClient(t, &stubMetadata{})

	w := tc.get("/ping")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"code":0,"message":"success","data":{"message":"pong","status":"healthy"}}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = tc.get("/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
