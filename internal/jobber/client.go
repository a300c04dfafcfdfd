// Package jobber implements the field-service platform client over its
// GraphQL API.
package jobber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"s2j/internal/config"
	"s2j/internal/port"
)

// Client talks to the Jobber GraphQL API. It implements
// port.TargetClient.
type Client struct {
	url         string
	apiVersion  string
	accessToken string
	http        *http.Client
}

var _ port.TargetClient = (*Client)(nil)

func NewClient(cfg config.JobberConfig) *Client {
	return &Client{
		url:         cfg.GraphQLURL,
		apiVersion:  cfg.APIVersion,
		accessToken: cfg.AccessToken,
		http:        &http.Client{Timeout: cfg.Timeout},
	}
}

type gqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

type userError struct {
	Message string   `json:"message"`
	Path    []string `json:"path"`
}

func userErrorMessages(errs []userError) []string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

// post executes one GraphQL operation and decodes the data payload into
// out. Transport faults, 5xx responses, 429s and THROTTLED GraphQL
// errors come back as transient RequestErrors; other failures are final.
func (c *Client) post(ctx context.Context, op, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(map[string]any{"query": query, "variables": variables})
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("X-JOBBER-GRAPHQL-VERSION", c.apiVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestError{Op: op, Transient: true, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Op: op, StatusCode: resp.StatusCode, Transient: true, Err: err}
	}

	switch {
	case resp.StatusCode >= 500, resp.StatusCode == http.StatusTooManyRequests:
		return &RequestError{
			Op: op, StatusCode: resp.StatusCode, Transient: true,
			Err: fmt.Errorf("server error: %s", truncate(respBody, 200)),
		}
	case resp.StatusCode != http.StatusOK:
		return &RequestError{
			Op: op, StatusCode: resp.StatusCode,
			Err: fmt.Errorf("request rejected: %s", truncate(respBody, 200)),
		}
	}

	var gql gqlResponse
	if err := json.Unmarshal(respBody, &gql); err != nil {
		return &RequestError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(gql.Errors) > 0 {
		transient := false
		msgs := make([]string, 0, len(gql.Errors))
		for _, e := range gql.Errors {
			msgs = append(msgs, e.Message)
			if e.Extensions.Code == "THROTTLED" {
				transient = true
			}
		}
		return &RequestError{
			Op: op, StatusCode: resp.StatusCode, Transient: transient,
			Err: fmt.Errorf("graphql errors: %v", msgs),
		}
	}
	if gql.Data == nil {
		return &RequestError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("response missing data")}
	}
	if out != nil {
		if err := json.Unmarshal(gql.Data, out); err != nil {
			return &RequestError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode data: %w", err)}
		}
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
