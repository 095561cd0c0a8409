package book_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshelf/internal/domain/author"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/memory"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

func newService(t *testing.T) (book.Service, *author.Author) {
	t.Helper()
	store := memory.NewStore()

	birth := time.Date(1809, 1, 19, 0, 0, 0, 0, time.UTC)
	poe, err := author.NewService(store.Authors()).AddAuthor(context.Background(), "Edgar Allan Poe", birth, nil)
	require.NoError(t, err)

	return book.NewService(store.Books(), store.Authors()), poe
}

func TestService_AddBook(t *testing.T) {
	svc, poe := newService(t)
	year := 1845

	created, err := svc.AddBook(context.Background(), " 1234567890123 ", " The Raven ", &year, poe.ID)
	require.NoError(t, err)
	assert.Equal(t, "1234567890123", created.ISBN)
	assert.Equal(t, "The Raven", created.Label())

	entry, err := svc.GetEntry(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edgar Allan Poe", entry.Author.Name)
	assert.Equal(t, 1845, *entry.Book.PublicationYear)
}

func TestService_AddBook_Validation(t *testing.T) {
	svc, poe := newService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		isbn     string
		title    string
		authorID uint
		want     error
	}{
		{"缺少ISBN", "", "The Raven", poe.ID, book.ErrISBNRequired},
		{"ISBN过长", "12345678901234", "The Raven", poe.ID, book.ErrISBNTooLong},
		{"缺少书名", "1234567890123", "  ", poe.ID, book.ErrTitleRequired},
		{"书名过长", "1234567890123", strings.Repeat("x", book.MaxTitleLength+1), poe.ID, book.ErrTitleTooLong},
		{"缺少作者", "1234567890123", "The Raven", 0, book.ErrAuthorRequired},
		{"作者不存在", "1234567890123", "The Raven", 999, book.ErrUnknownAuthor},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddBook(ctx, tc.isbn, tc.title, nil, tc.authorID)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := svc.AddBook(ctx, "1234567890123", "The Raven", nil, 999)
	assert.Equal(t, 422, apperrors.GetAppError(err).HTTPStatus())
}

func TestService_Search(t *testing.T) {
	svc, poe := newService(t)
	ctx := context.Background()

	for _, title := range []string{"The Raven", "Annabel Lee", "100% Poe_try"} {
		_, err := svc.AddBook(ctx, "1234567890123", title, nil, poe.ID)
		require.NoError(t, err)
	}

	blank, err := svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.NotNil(t, blank)
	assert.Empty(t, blank, "空关键词不返回全部图书")

	byAuthor, err := svc.Search(ctx, "poe")
	require.NoError(t, err)
	assert.Len(t, byAuthor, 3)

	literal, err := svc.Search(ctx, "0%")
	require.NoError(t, err)
	require.Len(t, literal, 1)
	assert.Equal(t, "100% Poe_try", literal[0].Book.Title)

	none, err := svc.Search(ctx, "Austen")
	require.NoError(t, err)
	assert.Empty(t, none)
}
