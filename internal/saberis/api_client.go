package saberis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"s2j/internal/config"
	"s2j/internal/domain"
	"s2j/internal/port"
)

// APIClient talks to the Saberis export API. It implements
// port.ExportSource. Session tokens are fetched lazily and cached for
// the life of the client.
type APIClient struct {
	baseURL   string
	authToken string
	http      *http.Client

	mu    sync.Mutex
	token string
}

var _ port.ExportSource = (*APIClient)(nil)

func NewAPIClient(cfg config.SaberisConfig) *APIClient {
	return &APIClient{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		authToken: cfg.AuthToken,
		http:      &http.Client{Timeout: cfg.Timeout},
	}
}

// sessionToken exchanges the configured auth token for a session token.
// The token endpoint returns the token as a bare JSON string.
func (c *APIClient) sessionToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" {
		return c.token, nil
	}

	u := fmt.Sprintf("%s/api/v1/token?authToken=%s", c.baseURL, url.QueryEscape(c.authToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("saberis.sessionToken: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("saberis.sessionToken: %w: %v", domain.ErrSourceUnreachable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("saberis.sessionToken: %w: status %d", domain.ErrSourceUnreachable, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("saberis.sessionToken: %w: %v", domain.ErrSourceUnreachable, err)
	}
	token := strings.Trim(strings.TrimSpace(string(body)), `"`)
	if token == "" {
		return "", fmt.Errorf("saberis.sessionToken: %w: empty token response", domain.ErrSourceUnreachable)
	}
	c.token = token
	return token, nil
}

func (c *APIClient) get(ctx context.Context, path string) ([]byte, error) {
	token, err := c.sessionToken(ctx)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("saberis.get %s: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("saberis.get %s: %w: %v", path, domain.ErrSourceUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Session token expired; drop it so the next call re-auths.
		c.mu.Lock()
		c.token = ""
		c.mu.Unlock()
		return nil, fmt.Errorf("saberis.get %s: %w: status %d", path, domain.ErrSourceUnreachable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("saberis.get %s: %w: status %d", path, domain.ErrSourceUnreachable, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("saberis.get %s: %w: %v", path, domain.ErrSourceUnreachable, err)
	}
	return body, nil
}

// ListUnexported returns the headers of documents the export API still
// holds as unexported.
func (c *APIClient) ListUnexported(ctx context.Context) ([]port.ExportHeader, error) {
	body, err := c.get(ctx, "/api/v1/export")
	if err != nil {
		return nil, err
	}
	var raw []struct {
		GUID     string `json:"guid"`
		Filename string `json:"filename"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("saberis.ListUnexported: decode: %w", err)
	}
	headers := make([]port.ExportHeader, 0, len(raw))
	for _, h := range raw {
		if h.GUID == "" {
			continue
		}
		headers = append(headers, port.ExportHeader{GUID: h.GUID, Filename: h.Filename})
	}
	return headers, nil
}

// FetchDocument downloads the full JSON document for one export GUID.
func (c *APIClient) FetchDocument(ctx context.Context, guid string) ([]byte, error) {
	return c.get(ctx, "/api/v1/export/json/"+url.PathEscape(guid))
}
