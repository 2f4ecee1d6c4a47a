package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"fintrack/internal/common"
	"fintrack/internal/models"
)

// HTTPClient implements Client over net/http.
//
// The session token obtained from Login is stored on the client and sent as a
// bearer token with every record request.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the service at baseURL
// (e.g. "http://localhost:3001"). A zero timeout disables the client-side
// request timeout.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) authToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// errorBody is the JSON envelope the server uses for non-success responses.
type errorBody struct {
	Error string `json:"error"`
}

// do performs one round trip: marshals in (when non-nil) as the JSON body,
// issues the request, maps non-2xx statuses to sentinel errors, and decodes
// the response into out (when non-nil). A body that fails to decode is an
// error on every path, the list path included.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.authToken(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapStatus(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) mapStatus(resp *http.Response) error {
	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if eb.Error == common.ErrTokenExpired.Error() {
			return common.ErrTokenExpired
		}
		return common.ErrorUnauthorized
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusConflict:
		return common.ErrorAlreadyExists
	}
	if eb.Error != "" {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, eb.Error)
	}
	return fmt.Errorf("unexpected status %d", resp.StatusCode)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/register", credentials{Username: username, Password: password}, nil)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/auth/login", credentials{Username: username, Password: password}, &s)
	if err != nil {
		return Session{}, err
	}
	c.setToken(s.Token)
	return s, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", nil, nil)
}

func (c *HTTPClient) ListByUser(ctx context.Context, userID string) ([]models.Record, error) {
	var records []models.Record
	path := "/financial-records/getAllByUserId/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *HTTPClient) Create(ctx context.Context, draft models.Record) (models.Record, error) {
	var created models.Record
	if err := c.do(ctx, http.MethodPost, "/financial-records", draft, &created); err != nil {
		return models.Record{}, err
	}
	return created, nil
}

func (c *HTTPClient) Update(ctx context.Context, id string, rec models.Record) (models.Record, error) {
	var updated models.Record
	path := "/financial-records/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, path, rec, &updated); err != nil {
		return models.Record{}, err
	}
	return updated, nil
}

func (c *HTTPClient) Delete(ctx context.Context, id string) (models.Record, error) {
	var deleted models.Record
	path := "/financial-records/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodDelete, path, nil, &deleted); err != nil {
		return models.Record{}, err
	}
	return deleted, nil
}
