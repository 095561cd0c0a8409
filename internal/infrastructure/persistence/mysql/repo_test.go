package mysql

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookshelf/internal/domain/author"
	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// newMockDB 基于sqlmock创建GORM连接
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestAuthorRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuthorRepository(db, time.UTC)

	mock.ExpectExec("INSERT INTO `authors`").
		WillReturnResult(sqlmock.NewResult(11, 1))

	birth := time.Date(1809, 1, 19, 0, 0, 0, 0, time.UTC)
	a := author.NewAuthor("Edgar Allan Poe", &birth, nil)
	require.NoError(t, repo.Create(context.Background(), a))

	assert.Equal(t, uint(11), a.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// dateArg 按驱动的写法(转换到连接时区)比较DATE参数
type dateArg struct {
	loc  *time.Location
	want string
}

func (a dateArg) Match(v driver.Value) bool {
	t, ok := v.(time.Time)
	return ok && t.In(a.loc).Format(author.DateLayout) == a.want
}

func TestAuthorRepository_DatesInConnectionLocation(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	newYork := time.FixedZone("UTC-5", -5*60*60)
	repo := NewAuthorRepository(db, newYork)

	birth, err := author.ParseBirthDate("1809-01-19")
	require.NoError(t, err)
	death := author.ParseDateOfDeath("1849-10-07")
	a := author.NewAuthor("Edgar Allan Poe", &birth, death)

	mock.ExpectExec("INSERT INTO `authors`").
		WithArgs("Edgar Allan Poe", dateArg{newYork, "1809-01-19"}, dateArg{newYork, "1849-10-07"}).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.Create(ctx, a))

	// 驱动按连接时区解析DATE列
	mock.ExpectQuery("SELECT \\* FROM `authors`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "birth_date", "date_of_death"}).
			AddRow(1, "Edgar Allan Poe",
				time.Date(1809, 1, 19, 0, 0, 0, 0, newYork),
				time.Date(1849, 10, 7, 0, 0, 0, 0, newYork)))

	got, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got.BirthDate)
	require.NotNil(t, got.DateOfDeath)
	assert.Equal(t, "1809-01-19", got.BirthDate.Format(author.DateLayout))
	assert.Equal(t, "1849-10-07", got.DateOfDeath.Format(author.DateLayout))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthorRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAuthorRepository(db, time.UTC)

	mock.ExpectQuery("SELECT \\* FROM `authors`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := repo.FindByID(context.Background(), 7)
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_Delete_NoRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectExec("DELETE FROM `books`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_ListEntries_SearchEscapesWildcards(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	columns := []string{"book_id", "isbn", "title", "publication_year", "author_id", "author_name", "birth_date", "date_of_death"}
	mock.ExpectQuery(regexp.QuoteMeta("LOWER(books.title) LIKE ? OR LOWER(authors.name) LIKE ?")).
		WithArgs("%ra\\_v%", "%ra\\_v%").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(3, "9780000000001", "The Ra_ven", 1845, 2, "Edgar Allan Poe", nil, nil))

	entries, err := repo.ListEntries(context.Background(), book.ListParams{Keyword: "RA_V"})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, uint(3), entries[0].Book.ID)
	assert.Equal(t, "The Ra_ven", entries[0].Book.Title)
	require.NotNil(t, entries[0].Book.PublicationYear)
	assert.Equal(t, 1845, *entries[0].Book.PublicationYear)
	assert.Equal(t, "Edgar Allan Poe", entries[0].Author.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_ListEntries_Order(t *testing.T) {
	cases := []struct {
		sort  book.SortOrder
		order string
	}{
		{book.SortNewest, "ORDER BY books.id DESC"},
		{book.SortByTitle, "ORDER BY books.title ASC"},
		{book.SortByAuthor, "ORDER BY authors.name ASC"},
	}

	for _, tc := range cases {
		t.Run(tc.sort.String(), func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewBookRepository(db)

			mock.ExpectQuery(regexp.QuoteMeta(tc.order)).
				WillReturnRows(sqlmock.NewRows([]string{"book_id"}))

			entries, err := repo.ListEntries(context.Background(), book.ListParams{Sort: tc.sort})
			require.NoError(t, err)
			assert.Empty(t, entries)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookRepository_FindEntry_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("JOIN authors ON authors.id = books.author_id")).
		WillReturnRows(sqlmock.NewRows([]string{"book_id"}))

	_, err := repo.FindEntry(context.Background(), 5)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestRatingRepository_StatsByBook(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRatingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) AS cnt, COALESCE(SUM(rating), 0) AS total")).
		WillReturnRows(sqlmock.NewRows([]string{"cnt", "total"}).AddRow(2, 9))

	stats, err := repo.StatsByBook(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Count)
	assert.Equal(t, int64(9), stats.Sum)
}

func TestRatingRepository_DeleteByBooks_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRatingRepository(db)

	n, err := repo.DeleteByBooks(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet(), "空列表不应访问数据库")
}

func TestTxManager_CommitAndRollback(t *testing.T) {
	t.Run("提交", func(t *testing.T) {
		db, mock := newMockDB(t)
		txm := NewTxManager(db)
		ratings := NewRatingRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM `ratings`").WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := txm.Transaction(context.Background(), func(ctx context.Context) error {
			n, err := ratings.DeleteByBook(ctx, 3)
			assert.Equal(t, int64(2), n)
			return err
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("回滚", func(t *testing.T) {
		db, mock := newMockDB(t)
		txm := NewTxManager(db)
		books := NewBookRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM `books`").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := txm.Transaction(context.Background(), func(ctx context.Context) error {
			return books.Delete(ctx, 3)
		})
		assert.True(t, errors.Is(err, book.ErrBookNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookRepository_FindByID_LocksInTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	txm := NewTxManager(db)
	books := NewBookRepository(db)
	columns := []string{"id", "isbn", "title", "author_id"}

	// 事务外不加锁
	mock.ExpectQuery("^SELECT \\* FROM `books` WHERE `books`.`id` = \\? ORDER BY `books`.`id` LIMIT \\S+$").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(3, "9780000000000", "The Raven", 1))
	_, err := books.FindByID(context.Background(), 3)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `books` .* FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(3, "9780000000000", "The Raven", 1))
	mock.ExpectQuery("SELECT \\* FROM `books` WHERE author_id = \\? .* FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(3, "9780000000000", "The Raven", 1))
	mock.ExpectCommit()

	err = txm.Transaction(context.Background(), func(ctx context.Context) error {
		if _, err := books.FindByID(ctx, 3); err != nil {
			return err
		}
		_, err := books.ListByAuthor(ctx, 1)
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%poe%", containsPattern("Poe"))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%a\\b%`, containsPattern(`a\b`))
}
