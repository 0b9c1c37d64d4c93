package author

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"bookcatalog/internal/testutil"
)

type stubLookup struct {
	summary func(ctx context.Context, name string) (string, error)
}

func (s *stubLookup) PageSummary(ctx context.Context, name string) (string, error) {
	return s.summary(ctx, name)
}

func TestHTTPHandler_Get(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		lookup := &stubLookup{
			summary: func(_ context.Context, name string) (string, error) {
				return "An English novelist.", nil
			},
		}
		handler := NewHTTPHandler(NewService(lookup))

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/author/George%20Orwell", nil)
		r.SetPathValue("name", "George Orwell")
		handler.Get(w, r)

		res := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "George Orwell", res.Body["author"])
		assert.Equal(t, "An English novelist.", res.Body["summary"])
	})

	t.Run("lookup failure", func(t *testing.T) {
		lookup := &stubLookup{
			summary: func(context.Context, string) (string, error) {
				return "", errors.New("connection refused")
			},
		}
		handler := NewHTTPHandler(NewService(lookup))

		w := httptest.NewRecorder()
		r := testutil.NewRequest(http.MethodGet, "/author/Nobody", nil)
		r.SetPathValue("name", "Nobody")
		handler.Get(w, r)

		res := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusInternalServerError, res.Code)
		// Upstream failure detail stays out of the response.
		assert.Equal(t, "author lookup failed", res.Body["error"])
	})
}
