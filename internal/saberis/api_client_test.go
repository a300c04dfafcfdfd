package saberis_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"s2j/internal/config"
	"s2j/internal/domain"
	"s2j/internal/saberis"
)

func newTestAPIClient(t *testing.T, handler http.Handler) *saberis.APIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return saberis.NewAPIClient(config.SaberisConfig{
		BaseURL:   srv.URL,
		AuthToken: "secret-auth",
		Timeout:   5 * time.Second,
	})
}

func TestAPIClientListUnexported(t *testing.T) {
	tokenCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		assert.Equal(t, "secret-auth", r.URL.Query().Get("authToken"))
		fmt.Fprint(w, `"session-token"`)
	})
	mux.HandleFunc("/api/v1/export", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `[
			{"guid": "abc-123", "filename": "export-1.json"},
			{"guid": "", "filename": "broken.json"},
			{"guid": "def-456", "filename": "export-2.json"}
		]`)
	})
	c := newTestAPIClient(t, mux)

	headers, err := c.ListUnexported(context.Background())
	assert.NoError(t, err)
	assert.Len(t, headers, 2)
	assert.Equal(t, "abc-123", headers[0].GUID)
	assert.Equal(t, "export-1.json", headers[0].Filename)

	// The session token is cached across calls.
	_, err = c.ListUnexported(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, tokenCalls)
}

func TestAPIClientFetchDocument(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/token", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `"session-token"`)
	})
	mux.HandleFunc("/api/v1/export/json/abc-123", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"SaberisOrderDocument": {}}`)
	})
	c := newTestAPIClient(t, mux)

	raw, err := c.FetchDocument(context.Background(), "abc-123")

	assert.NoError(t, err)
	assert.JSONEq(t, `{"SaberisOrderDocument": {}}`, string(raw))
}

func TestAPIClientUnauthorizedDropsToken(t *testing.T) {
	tokenCalls := 0
	exportCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		fmt.Fprintf(w, `"token-%d"`, tokenCalls)
	})
	mux.HandleFunc("/api/v1/export", func(w http.ResponseWriter, r *http.Request) {
		exportCalls++
		if exportCalls == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "Bearer token-2", r.Header.Get("Authorization"))
		fmt.Fprint(w, `[]`)
	})
	c := newTestAPIClient(t, mux)

	_, err := c.ListUnexported(context.Background())
	assert.ErrorIs(t, err, domain.ErrSourceUnreachable)

	// The stale token was dropped, so the retry re-authenticates.
	headers, err := c.ListUnexported(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, headers)
	assert.Equal(t, 2, tokenCalls)
}

func TestAPIClientFailuresWrapSourceUnreachable(t *testing.T) {
	t.Run("token endpoint down", func(t *testing.T) {
		c := saberis.NewAPIClient(config.SaberisConfig{
			BaseURL: "http://127.0.0.1:1",
			Timeout: time.Second,
		})
		_, err := c.ListUnexported(context.Background())
		assert.ErrorIs(t, err, domain.ErrSourceUnreachable)
	})

	t.Run("token endpoint errors", func(t *testing.T) {
		c := newTestAPIClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		_, err := c.ListUnexported(context.Background())
		assert.ErrorIs(t, err, domain.ErrSourceUnreachable)
	})

	t.Run("export endpoint errors", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v1/token", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `"session-token"`)
		})
		mux.HandleFunc("/api/v1/export", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		c := newTestAPIClient(t, mux)
		_, err := c.ListUnexported(context.Background())
		assert.ErrorIs(t, err, domain.ErrSourceUnreachable)
	})

	t.Run("empty token", func(t *testing.T) {
		c := newTestAPIClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `""`)
		}))
		_, err := c.ListUnexported(context.Background())
		assert.ErrorIs(t, err, domain.ErrSourceUnreachable)
	})
}
