package enrichment

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"media-catalog/feature/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var _ validation.Finder = (*Client)(nil)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Config{
		Endpoint:       srv.URL,
		UserAgent:      "media-catalog-test",
		TimeoutSeconds: 5,
	}, zap.NewNop())
	return c, &calls
}

func bindings(rows ...string) string {
	return fmt.Sprintf(`{"head":{"vars":["item","number"]},"results":{"bindings":[%s]}}`, strings.Join(rows, ","))
}

func itemRow(id string) string {
	return fmt.Sprintf(`{"item":{"type":"uri","value":"http://www.wikidata.org/entity/%s"}}`, id)
}

func numberedRow(id string, n string) string {
	return fmt.Sprintf(`{"item":{"type":"uri","value":"http://www.wikidata.org/entity/%s"},"number":{"type":"literal","value":"%s"}}`, id, n)
}

func TestFindMovie(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "media-catalog-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		q := r.URL.Query().Get("query")
		assert.Contains(t, q, `"Alien"@en`)
		assert.Contains(t, q, "wd:Q11424")
		assert.Contains(t, q, "= 1979")
		w.Write([]byte(bindings(itemRow("Q103569"))))
	})

	id, err := c.FindMovie(context.Background(), "Alien", 1979)
	require.NoError(t, err)
	assert.Equal(t, "Q103569", id)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestFindShow_NotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("query"), "wd:Q5398426")
		w.Write([]byte(bindings()))
	})

	id, err := c.FindShow(context.Background(), "Nothing Like This", 2008)
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestFindTitle_EmptyTitleSkipsRequest(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(bindings()))
	})

	id, err := c.FindMovie(context.Background(), "  ", 1979)
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestFindSeasons(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("query")
		assert.Contains(t, q, "ps:P179 wd:Q1079")
		w.Write([]byte(bindings(
			numberedRow("Q100", "1"),
			numberedRow("Q200", "2"),
			numberedRow("Q300", "special"),
		)))
	})

	ids, err := c.FindSeasons(context.Background(), "Q1079")
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "Q100", 2: "Q200"}, ids)
}

func TestFindEpisodes_RejectsForeignIDs(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(bindings()))
	})

	ids, err := c.FindEpisodes(context.Background(), `Q1 } DROP`)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestQuery_Errors(t *testing.T) {
	t.Run("Status", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
		})
		_, err := c.FindMovie(context.Background(), "Alien", 1979)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("Malformed body", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>"))
		})
		_, err := c.FindEpisodes(context.Background(), "Q1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode")
	})

	t.Run("Cancelled context", func(t *testing.T) {
		c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(bindings()))
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := c.FindShow(ctx, "Show", 2008)
		assert.Error(t, err)
		assert.Equal(t, int32(0), atomic.LoadInt32(calls))
	})
}

func TestClient_ReusesHTTPClient(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(bindings()))
	})
	assert.Nil(t, c.httpClient)

	_, err := c.FindMovie(context.Background(), "A", 2000)
	require.NoError(t, err)
	first := c.httpClient
	require.NotNil(t, first)

	_, err = c.FindMovie(context.Background(), "B", 2000)
	require.NoError(t, err)
	assert.Same(t, first, c.httpClient)
}

func TestLiteralAndEntity(t *testing.T) {
	assert.Equal(t, `"Say \"Hi\""`, literal(`Say "Hi"`))
	assert.Equal(t, `"a\\b"`, literal(`a\b`))
	assert.Equal(t, "Q42", entity("http://www.wikidata.org/entity/Q42"))
	assert.Empty(t, entity("http://www.wikidata.org/entity/L42"))
}
