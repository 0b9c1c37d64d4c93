package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog/internal/store"
	"bookcatalog/internal/testutil"
)

type fixedLookup struct{}

func (fixedLookup) PageSummary(_ context.Context, name string) (string, error) {
	return "Summary for " + name, nil
}

func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, store.EnsureSchema(context.Background(), db))
	return newRouter(db, fixedLookup{})
}

func do(router *http.ServeMux, method, path string, body interface{}) testutil.RecordResponse {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, testutil.NewRequest(method, path, body))
	return testutil.RecordHTTPResponse(w)
}

func TestRouting(t *testing.T) {
	router := newTestRouter(t)

	t.Run("health endpoints", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/healthz", nil).Code)
		assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/readyz", nil).Code)
	})

	t.Run("create books", func(t *testing.T) {
		res := do(router, http.MethodPost, "/books", map[string]interface{}{
			"books": []map[string]string{
				{"title": "Dune", "author": "Frank Herbert", "summary": "Desert planet", "genre": "Science Fiction"},
				{"title": "Emma", "author": "Jane Austen", "summary": "Comedy of manners", "genre": "Fiction"},
			},
		})
		assert.Equal(t, http.StatusCreated, res.Code)
		assert.Equal(t, "Books added successfully", res.Body["message"])
	})

	t.Run("list books", func(t *testing.T) {
		res := do(router, http.MethodGet, "/books", nil)
		assert.Equal(t, http.StatusOK, res.Code)
		books := res.Body["books"].([]interface{})
		require.Len(t, books, 2)
		first := books[0].(map[string]interface{})
		assert.Equal(t, "Dune", first["title"])
		assert.Equal(t, "Frank Herbert", first["author"])
	})

	t.Run("get book with reviews", func(t *testing.T) {
		res := do(router, http.MethodGet, "/books/1", nil)
		assert.Equal(t, http.StatusOK, res.Code)
		bk := res.Body["book"].(map[string]interface{})
		assert.Equal(t, "Dune", bk["title"])
		assert.Empty(t, res.Body["reviews"])
	})

	t.Run("add review", func(t *testing.T) {
		res := do(router, http.MethodPost, "/reviews", map[string]interface{}{
			"book_id": 1, "user": "alice", "rating": 5, "comment": "A masterpiece",
		})
		assert.Equal(t, http.StatusCreated, res.Code)
		assert.Equal(t, "Review added successfully", res.Body["message"])

		listed := do(router, http.MethodGet, "/reviews/1", nil)
		assert.Equal(t, http.StatusOK, listed.Code)
		reviews := listed.Body["reviews"].([]interface{})
		require.Len(t, reviews, 1)
		assert.Equal(t, float64(5), reviews[0].(map[string]interface{})["rating"])
	})

	t.Run("review for unknown book", func(t *testing.T) {
		res := do(router, http.MethodPost, "/reviews", map[string]interface{}{
			"book_id": 99, "user": "bob", "rating": 3,
		})
		assert.Equal(t, http.StatusNotFound, res.Code)
		assert.Equal(t, "Book not found", res.Body["error"])
	})

	t.Run("review missing fields", func(t *testing.T) {
		res := do(router, http.MethodPost, "/reviews", map[string]interface{}{
			"book_id": 1,
		})
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("top rated", func(t *testing.T) {
		res := do(router, http.MethodGet, "/books/top", nil)
		assert.Equal(t, http.StatusOK, res.Code)
		top := res.Body["top_books"].([]interface{})
		require.Len(t, top, 1)
		entry := top[0].(map[string]interface{})
		assert.Equal(t, "Dune", entry["title"])
		assert.Equal(t, float64(5), entry["average_rating"])
	})

	t.Run("update book", func(t *testing.T) {
		res := do(router, http.MethodPut, "/books/2", map[string]string{
			"summary": "A novel of manners",
		})
		assert.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "Book updated successfully", res.Body["message"])

		got := do(router, http.MethodGet, "/books/2", nil)
		bk := got.Body["book"].(map[string]interface{})
		assert.Equal(t, "A novel of manners", bk["summary"])
		assert.Equal(t, "Emma", bk["title"])
	})

	t.Run("delete book", func(t *testing.T) {
		res := do(router, http.MethodDelete, "/books/2", nil)
		assert.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "Book deleted successfully", res.Body["message"])

		got := do(router, http.MethodGet, "/books/2", nil)
		assert.Equal(t, http.StatusNotFound, got.Code)
		assert.Equal(t, "Book not found", got.Body["error"])
	})

	t.Run("author summary", func(t *testing.T) {
		res := do(router, http.MethodGet, "/author/Frank%20Herbert", nil)
		assert.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "Frank Herbert", res.Body["author"])
		assert.Equal(t, "Summary for Frank Herbert", res.Body["summary"])
	})
}
