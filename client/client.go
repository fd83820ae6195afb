package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/muhammadheryan/storefront/constant"
	"golang.org/x/net/publicsuffix"
)

// Client talks to the storefront API the way the browser app does: a cookie
// session plus the CSRF token echoed in a header on unsafe requests.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	base *url.URL
}

// APIError is a non 2xx answer from the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Fields     map[string][]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// New builds a client with its own cookie jar.
func New(baseURL string) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	return &Client{
		BaseURL: base.String(),
		HTTP:    &http.Client{Jar: jar, Timeout: 30 * time.Second},
		base:    base,
	}, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
}

type errorBody struct {
	Error      string              `json:"error"`
	Code       string              `json:"code"`
	Message    string              `json:"message"`
	StatusCode int                 `json:"status_code"`
	Errors     map[string][]string `json:"errors"`
}

// CSRFToken returns the token the server last handed out in the csrf_token
// cookie, or "" when there is none yet.
func (c *Client) CSRFToken() string {
	if c.HTTP.Jar == nil {
		return ""
	}
	for _, ck := range c.HTTP.Jar.Cookies(c.base) {
		if ck.Name == constant.CSRFCookieName {
			return ck.Value
		}
	}
	return ""
}

// EnsureCSRF fetches a token when the jar holds none.
func (c *Client) EnsureCSRF(ctx context.Context) (string, error) {
	if token := c.CSRFToken(); token != "" {
		return token, nil
	}
	var out struct {
		Token string `json:"csrf_token"`
	}
	if err := c.raw(ctx, http.MethodGet, "/api/csrf/token", nil, &out); err != nil {
		return "", err
	}
	if token := c.CSRFToken(); token != "" {
		return token, nil
	}
	return out.Token, nil
}

// call sends body as JSON and decodes the data (and meta) of the success
// envelope into out and meta.
func (c *Client) call(ctx context.Context, method, path string, body, out, meta interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}
	return c.send(ctx, method, path, reader, "application/json", out, meta)
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string, out, meta interface{}) error {
	resp, err := c.request(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil && meta == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	if meta != nil && len(env.Meta) > 0 {
		if err := json.Unmarshal(env.Meta, meta); err != nil {
			return fmt.Errorf("decode meta: %w", err)
		}
	}
	return nil
}

// raw decodes a body that is not wrapped in the envelope.
func (c *Client) raw(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}
	resp, err := c.request(ctx, method, path, reader, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) request(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if unsafeMethod(method) {
		token, err := c.EnsureCSRF(ctx)
		if err != nil {
			return nil, fmt.Errorf("csrf token: %w", err)
		}
		req.Header.Set(constant.CSRFHeader, token)
	}
	return c.HTTP.Do(req)
}

func decodeError(status int, raw []byte) error {
	apiErr := &APIError{StatusCode: status}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Error
		if apiErr.Message == "" {
			apiErr.Message = body.Message
		}
		apiErr.Fields = body.Errors
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}

func unsafeMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
