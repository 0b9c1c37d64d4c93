package review

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/store"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, store.EnsureSchema(context.Background(), db))
	return db
}

func addBook(t *testing.T, db *sql.DB, title string) int64 {
	t.Helper()
	res, err := db.Exec(`INSERT INTO books (title, author, summary, genre) VALUES (?, ?, ?, ?)`,
		title, "Test Author", "", "Test Genre")
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func TestSQLiteRepo_Create(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteRepo(db, time.Second)
	ctx := context.Background()

	bookID := addBook(t, db, "Test Book")

	t.Run("assigns id and persists", func(t *testing.T) {
		rev := Review{User: "Test User", Rating: 5, Comment: "Test Comment", BookID: bookID}
		require.NoError(t, repo.Create(ctx, &rev))
		assert.NotZero(t, rev.ID)

		reviews, err := repo.ListForBook(ctx, bookID)
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, 5, reviews[0].Rating)
		assert.Equal(t, "Test User", reviews[0].User)
		assert.Equal(t, bookID, reviews[0].BookID)
	})

	t.Run("unknown book", func(t *testing.T) {
		rev := Review{User: "u", Rating: 3, BookID: 999}
		assert.ErrorIs(t, repo.Create(ctx, &rev), ErrBookNotFound)

		var count int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM reviews WHERE book_id = 999`).Scan(&count))
		assert.Zero(t, count, "nothing may be committed for a missing book")
	})
}

func TestSQLiteRepo_ListAll(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteRepo(db, time.Second)
	ctx := context.Background()

	first := addBook(t, db, "First")
	second := addBook(t, db, "Second")

	for _, rev := range []Review{
		{User: "a", Rating: 1, BookID: first},
		{User: "b", Rating: 2, BookID: second},
		{User: "c", Rating: 3, BookID: first},
	} {
		r := rev
		require.NoError(t, repo.Create(ctx, &r))
	}

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	// Insertion order.
	assert.Equal(t, "a", all[0].User)
	assert.Equal(t, "b", all[1].User)
	assert.Equal(t, "c", all[2].User)
}

func TestSQLiteRepo_ListForBook(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteRepo(db, time.Second)
	ctx := context.Background()

	withReviews := addBook(t, db, "Reviewed")
	bare := addBook(t, db, "Bare")

	rev := Review{User: "a", Rating: 4, BookID: withReviews}
	require.NoError(t, repo.Create(ctx, &rev))

	t.Run("only the book's reviews", func(t *testing.T) {
		reviews, err := repo.ListForBook(ctx, withReviews)
		require.NoError(t, err)
		require.Len(t, reviews, 1)
		assert.Equal(t, withReviews, reviews[0].BookID)
	})

	t.Run("book without reviews", func(t *testing.T) {
		reviews, err := repo.ListForBook(ctx, bare)
		require.NoError(t, err)
		assert.Empty(t, reviews)
	})

	t.Run("unknown book", func(t *testing.T) {
		_, err := repo.ListForBook(ctx, 999)
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}
