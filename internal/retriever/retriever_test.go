package retriever

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	assert.Nil(t, Split("   ", 10, 2))
	assert.Equal(t, []string{"short"}, Split("short", 10, 2))

	parts := Split("abcdefghijklmnopqrstuvwxyz", 10, 3)
	assert.Equal(t, []string{"abcdefghij", "hijklmnopq", "opqrstuvwx", "vwxyz"}, parts)
	for _, p := range parts {
		assert.LessOrEqual(t, len([]rune(p)), 10)
	}
}

func TestKeywordIndex_Search(t *testing.T) {
	docs, err := LoadDocuments("")
	require.NoError(t, err)
	require.NotEmpty(t, docs)

	idx := NewKeywordIndex(docs...)
	ctx := context.Background()

	hits, err := idx.Search(ctx, "What's my overtime rate?", 4)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Contains(t, hits[0], "overtime")

	hits, err = idx.Search(ctx, "How's the weather?", 4)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = idx.Search(ctx, "overtime", 0)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestKeywordIndex_RanksByDistinctTerms(t *testing.T) {
	idx := NewKeywordIndex(
		"Travel policy: book economy fares.",
		"Overtime policy: overtime pay depends on tenure.",
		"Holiday calendar.",
	)

	hits, err := idx.Search(context.Background(), "overtime pay policy", 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.True(t, strings.HasPrefix(hits[0], "Overtime"))
	assert.True(t, strings.HasPrefix(hits[1], "Travel"))
}

func TestLoadDocuments_Dir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leave.txt"), []byte("Leave policy text"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.pdf"), []byte("%PDF"), 0o644))

	docs, err := LoadDocuments(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Leave policy text"}, docs)
}

func TestIndexClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "overtime", req.Query)
		assert.Equal(t, 2, req.K)
		w.Write([]byte(`{"snippets":["a","b","c"]}`))
	}))
	defer srv.Close()

	hits, err := NewIndexClient(srv.URL, time.Second).Search(context.Background(), "overtime", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, hits)
}

func TestIndexClient_Search_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "index rebuilding", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewIndexClient(srv.URL, time.Second).Search(context.Background(), "overtime", 2)
	require.Error(t, err)
}
