package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinhhuy2010/wdq-go/wdq"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	upstream := httptest.NewServer(handler)
	t.Cleanup(upstream.Close)

	return NewClient(ClientArgs{
		BaseURL:           upstream.URL,
		UserAgent:         "wdq-go-test",
		RequestsPerSecond: -1,
	})
}

func TestFetchEntity(t *testing.T) {
	t.Run("items endpoint and headers", func(t *testing.T) {
		var gotPath, gotUA string
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotUA = r.Header.Get("User-Agent")
			w.Write([]byte(`{"id": "Q42"}`))
		})

		body, err := c.FetchEntity(context.Background(), wdq.EntityKindItem, "Q42")
		require.NoError(t, err)
		assert.JSONEq(t, `{"id": "Q42"}`, string(body))
		assert.Equal(t, "/entities/items/Q42", gotPath)
		assert.Equal(t, "wdq-go-test", gotUA)
	})

	t.Run("properties endpoint", func(t *testing.T) {
		var gotPath string
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Write([]byte(`{"id": "P31", "data_type": "wikibase-item"}`))
		})

		_, err := c.FetchEntity(context.Background(), wdq.EntityKindProperty, "P31")
		require.NoError(t, err)
		assert.Equal(t, "/entities/properties/P31", gotPath)
	})

	t.Run("unknown kind", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
		_, err := c.FetchEntity(context.Background(), wdq.EntityKind("lexeme"), "L1")
		require.Error(t, err)
	})

	t.Run("non-2xx becomes a StatusError", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"code": "item-not-found"}`))
		})

		_, err := c.FetchEntity(context.Background(), wdq.EntityKindItem, "Q0")
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusNotFound, se.StatusCode)
		assert.Contains(t, string(se.Body), "item-not-found")
	})
}

func TestItem(t *testing.T) {
	requests := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		switch r.URL.Path {
		case "/entities/items/Q42":
			w.Write([]byte(`{"id": "Q42", "labels": {"en": "Douglas Adams"}, "statements": {"P31": [
				{"id": "Q42$a", "property": {"id": "P31", "data_type": "wikibase-item"}, "value": {"type": "value", "content": "Q5"}}
			]}}`))
		case "/entities/items/Q5":
			w.Write([]byte(`{"id": "Q5", "labels": {"en": "human"}}`))
		default:
			http.NotFound(w, r)
		}
	})

	item, err := c.Item(context.Background(), "Q42")
	require.NoError(t, err)
	assert.Equal(t, "Q42", item.ID())

	labels, err := item.Labels()
	require.NoError(t, err)
	text, err := labels.Get("en")
	require.NoError(t, err)
	assert.Equal(t, "Douglas Adams", text)

	t.Run("client is injected as the fetcher", func(t *testing.T) {
		statements, err := item.Statements()
		require.NoError(t, err)
		stmts, err := statements.ByProperty("P31")
		require.NoError(t, err)
		require.Len(t, stmts, 1)

		human, err := stmts[0].Value.(wdq.ItemValue).Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Q5", human.ID())
	})

	t.Run("resolution is uncached", func(t *testing.T) {
		statements, err := item.Statements()
		require.NoError(t, err)
		stmts, err := statements.ByProperty("P31")
		require.NoError(t, err)

		before := requests
		ref := stmts[0].Value.(wdq.ItemValue)
		_, err = ref.Resolve(context.Background())
		require.NoError(t, err)
		_, err = ref.Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, before+2, requests)
	})

	t.Run("status errors surface to the caller", func(t *testing.T) {
		_, err := c.Item(context.Background(), "Q404")
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusNotFound, se.StatusCode)
	})
}

func TestProperty(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"id": "P31", "data_type": "wikibase-item"}`))
	})

	prop, err := c.Property(context.Background(), "P31")
	require.NoError(t, err)
	assert.Equal(t, "/entities/properties/P31", gotPath)
	assert.Equal(t, "P31", prop.ID())

	dt, err := prop.Datatype()
	require.NoError(t, err)
	assert.Equal(t, "wikibase-item", dt)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(ClientArgs{})
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, defaultUserAgent, c.userAgent)
	assert.NotNil(t, c.httpc)
	assert.NotNil(t, c.limiter)

	t.Run("negative rps disables the limiter", func(t *testing.T) {
		c := NewClient(ClientArgs{RequestsPerSecond: -1})
		assert.Nil(t, c.limiter)
	})

	t.Run("errors package identity", func(t *testing.T) {
		// StatusError must stay recoverable through error wrapping layers.
		err := errors.Wrap(&StatusError{StatusCode: 502}, "while resolving")
		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 502, se.StatusCode)
	})
}
