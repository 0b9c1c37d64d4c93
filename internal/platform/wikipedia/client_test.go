package wikipedia

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageSummary(t *testing.T) {
	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		json.NewEncoder(w).Encode(map[string]string{
			"title":   "George Orwell",
			"extract": "Eric Arthur Blair was an English novelist.",
		})
	}))
	defer srv.Close()

	c := NewClient("test-agent", 100, 0)
	c.baseURL = srv.URL

	summary, err := c.PageSummary(context.Background(), "George Orwell")
	require.NoError(t, err)

	assert.Equal(t, "Eric Arthur Blair was an English novelist.", summary)
	assert.Equal(t, "/api/rest_v1/page/summary/George_Orwell", gotPath, "spaces map to underscores")
	assert.Equal(t, "test-agent", gotUA)
}

func TestPageSummaryUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient("test-agent", 100, 0)
	c.baseURL = srv.URL

	_, err := c.PageSummary(context.Background(), "Nobody")
	assert.Error(t, err)
}

func TestPageSummaryRetriesServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient("test-agent", 100, 0)
	c.baseURL = srv.URL

	_, err := c.PageSummary(context.Background(), "Anyone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retries")
}
