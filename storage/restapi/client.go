package restapi

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/schooladmin/core"
)

const (
	headerRequestID = "X-Request-ID"
	mimeJSON        = "application/json"
	mimeForm        = "application/x-www-form-urlencoded"
)

// TokenSource gives the bearer token to attach to requests; "" sends none.
type TokenSource interface {
	Token() string
}

type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	Tokens    TokenSource
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// Client talks JSON to the school records backend.
type Client struct {
	baseURL   string
	userAgent string
	tokens    TokenSource
	http      *http.Client
}

func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		userAgent: opts.UserAgent,
		tokens:    opts.Tokens,
		http:      hc,
	}
}

// SetTokenSource sets where bearer tokens come from.
func (c *Client) SetTokenSource(tokens TokenSource) { c.tokens = tokens }

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out interface{}) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var rdr io.Reader
	if body != nil {
		data, err := sonic.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		rdr = bytes.NewReader(data)
	}
	req, err := c.newRequest(ctx, method, path, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", mimeJSON)
	}
	return c.do(req, out)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mimeForm)
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrapf(err, "building %s %s", method, path)
	}
	req.Header.Set("Accept", mimeJSON)
	req.Header.Set(headerRequestID, uuid.New().String())
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "reading %s %s", req.Method, req.URL.Path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decoding %s %s", req.Method, req.URL.Path)
	}
	return nil
}

// errorBody covers the error shapes of the backend:
// {"detail": "msg"}, {"detail": [{"msg": "..."}]} and {"error": "msg"}.
type errorBody struct {
	Detail interface{} `json:"detail"`
	Error  string      `json:"error"`
}

func decodeError(status int, data []byte) error {
	apiErr := &core.APIError{Status: status}
	var body errorBody
	if err := sonic.Unmarshal(data, &body); err == nil {
		switch detail := body.Detail.(type) {
		case string:
			apiErr.Detail = detail
		case []interface{}:
			msgs := make([]string, 0, len(detail))
			for _, item := range detail {
				if m, ok := item.(map[string]interface{}); ok {
					if msg, ok := m["msg"].(string); ok {
						msgs = append(msgs, msg)
					}
				}
			}
			apiErr.Detail = strings.Join(msgs, "; ")
		}
		if apiErr.Detail == "" {
			apiErr.Detail = body.Error
		}
	}
	return apiErr
}
