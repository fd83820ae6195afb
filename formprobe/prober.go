package formprobe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/muhammadheryan/storefront/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
)

var ErrNoForm = errors.New("no form found on page")

// LoginPaths are tried in order when the form page needs a session.
var LoginPaths = []string{"/login", "/signin", "/auth/login", "/users/sign_in", "/session/new", "/admin/login"}

const snippetSize = 500

// Prober drives a server rendered form over plain HTTP, keeping cookies
// between calls and never following redirects.
type Prober struct {
	BaseURL  string
	FormPath string
	Email    string
	Password string
	HTTP     *http.Client

	base  *url.URL
	token string
	log   *zap.Logger
	now   func() time.Time
}

// Result is the outcome of one submission.
type Result struct {
	Name       string `json:"name"`
	StatusCode int    `json:"status_code"`
	URL        string `json:"url"`
	Location   string `json:"location,omitempty"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Snippet    string `json:"snippet,omitempty"`
	Err        string `json:"error,omitempty"`
}

type Summary struct {
	Total           int      `json:"total"`
	Passed          int      `json:"passed"`
	Failed          int      `json:"failed"`
	Results         []Result `json:"results"`
	Recommendations []string `json:"recommendations"`
}

func New(baseURL, formPath, email, password string) (*Prober, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	if formPath == "" {
		formPath = "/products/new"
	}
	return &Prober{
		BaseURL:  base.String(),
		FormPath: formPath,
		Email:    email,
		Password: password,
		HTTP: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		base: base,
		log:  logger.Named("formprobe"),
		now:  time.Now,
	}, nil
}

// Token is the last CSRF token read from a page.
func (p *Prober) Token() string { return p.token }

func (p *Prober) resolve(ref string) string {
	u, err := p.base.Parse(ref)
	if err != nil {
		return p.BaseURL + ref
	}
	return u.String()
}

func (p *Prober) get(ctx context.Context, ref string) (*http.Response, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.resolve(ref), nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := p.HTTP.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return resp, string(body), nil
}

// TestConnection fetches the base URL and reports the framework it looks like.
func (p *Prober) TestConnection(ctx context.Context) (string, error) {
	resp, body, err := p.get(ctx, "/")
	if err != nil {
		p.log.Error("connection failed", zap.String("url", p.BaseURL), zap.Error(err))
		return "", err
	}
	framework := DetectFramework(body)
	p.log.Info("connection established", zap.Int("status", resp.StatusCode), zap.String("framework", framework))
	return framework, nil
}

// AutoLogin returns true when the form page is already reachable or one of
// LoginPaths accepted the credentials.
func (p *Prober) AutoLogin(ctx context.Context) (bool, error) {
	if resp, _, err := p.get(ctx, p.FormPath); err == nil && resp.StatusCode == http.StatusOK {
		p.log.Info("already logged in or no authentication required")
		return true, nil
	}

	var lastErr error
	for _, path := range LoginPaths {
		ok, err := p.tryLogin(ctx, path)
		if err != nil {
			p.log.Debug("login attempt failed", zap.String("path", path), zap.Error(err))
			lastErr = err
			continue
		}
		if ok {
			p.log.Info("login successful", zap.String("path", path))
			return true, nil
		}
	}
	p.log.Warn("all login attempts failed")
	return false, lastErr
}

func (p *Prober) tryLogin(ctx context.Context, path string) (bool, error) {
	resp, body, err := p.get(ctx, path)
	if err != nil {
		return false, err
	}
	if resp.StatusCode != http.StatusOK {
		return false, nil
	}
	p.token = ExtractCSRFToken(body)

	form := url.Values{}
	form.Set("email", p.Email)
	form.Set("identifier", p.Email)
	form.Set("username", p.Email)
	form.Set("password", p.Password)
	form.Set("user[email]", p.Email)
	form.Set("user[password]", p.Password)
	if p.token != "" {
		for _, name := range CSRFFieldNames {
			form.Set(name, p.token)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.resolve(path), strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	res, err := p.HTTP.Do(req)
	if err != nil {
		return false, err
	}
	_, _ = io.Copy(io.Discard, res.Body)
	res.Body.Close()

	if res.StatusCode < 300 || res.StatusCode >= 400 {
		return false, nil
	}
	location := strings.ToLower(res.Header.Get("Location"))
	for _, marker := range []string{"login", "signin", "sign_in"} {
		if strings.Contains(location, marker) {
			return false, nil
		}
	}
	return true, nil
}

// FetchForm reads the first form on path along with the page's CSRF token.
func (p *Prober) FetchForm(ctx context.Context, path string) (*Form, error) {
	resp, body, err := p.get(ctx, path)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot access form: status %d", resp.StatusCode)
	}
	p.token = ExtractCSRFToken(body)

	forms, err := ParseForms(strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	if len(forms) == 0 {
		return nil, ErrNoForm
	}
	form := forms[0]
	form.Page = p.resolve(path)
	p.log.Debug("form analyzed",
		zap.String("action", form.Action),
		zap.String("method", form.Method),
		zap.Int("fields", len(form.Fields)),
		zap.Bool("csrf", p.token != ""))
	return &form, nil
}

var (
	successWords = []string{"success", "created", "saved", "added"}
	errorWords   = []string{"error", "invalid", "failed", "required"}
)

// Submit sends values the way form would and classifies the answer.
func (p *Prober) Submit(ctx context.Context, form *Form, values url.Values, name string) Result {
	target := form.Page
	if form.Action != "" {
		base := p.base
		if page, err := url.Parse(form.Page); err == nil && form.Page != "" {
			base = page
		}
		if u, err := base.Parse(form.Action); err == nil {
			target = u.String()
		}
	}
	if target == "" {
		target = p.resolve("/products")
	}
	res := Result{Name: name, URL: target}

	req, err := p.buildRequest(ctx, form, target, values)
	if err != nil {
		res.Err, res.Message = err.Error(), "Exception occurred: "+err.Error()
		return res
	}
	resp, err := p.HTTP.Do(req)
	if err != nil {
		res.Err, res.Message = err.Error(), "Exception occurred: "+err.Error()
		p.log.Error("submit failed", zap.String("test", name), zap.Error(err))
		return res
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	res.StatusCode = resp.StatusCode
	res.Location = resp.Header.Get("Location")
	res.Snippet = string(body)
	if len(res.Snippet) > snippetSize {
		res.Snippet = res.Snippet[:snippetSize]
	}
	classify(&res, strings.ToLower(string(body)))

	p.log.Info("submitted",
		zap.String("test", name),
		zap.Int("status", res.StatusCode),
		zap.Bool("success", res.Success),
		zap.String("message", res.Message))
	return res
}

func classify(res *Result, body string) {
	switch {
	case res.StatusCode >= 200 && res.StatusCode < 300:
		switch {
		case containsAny(body, successWords):
			res.Success, res.Message = true, "Product created successfully"
		case containsAny(body, errorWords):
			res.Message = "Validation errors detected"
		default:
			res.Message = "Response unclear - check manually"
		}
	case res.StatusCode >= 300 && res.StatusCode < 400:
		res.Success, res.Message = true, "Redirect to: "+res.Location
	case res.StatusCode == http.StatusUnprocessableEntity:
		res.Message = "Validation failed"
	default:
		res.Message = fmt.Sprintf("HTTP %d error", res.StatusCode)
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func (p *Prober) buildRequest(ctx context.Context, form *Form, target string, values url.Values) (*http.Request, error) {
	method := form.Method
	if method == "" {
		method = http.MethodGet
	}

	if method == http.MethodGet {
		u, err := url.Parse(target)
		if err != nil {
			return nil, err
		}
		u.RawQuery = values.Encode()
		return http.NewRequestWithContext(ctx, method, u.String(), nil)
	}

	if strings.EqualFold(form.Enctype, "multipart/form-data") {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			for _, v := range values[k] {
				if err := w.WriteField(k, v); err != nil {
					return nil, err
				}
			}
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, method, target, &buf)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", w.FormDataContentType())
		return req, nil
	}

	req, err := http.NewRequestWithContext(ctx, method, target, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, nil
}

// RunScenarios submits form four times: complete data, only name and price,
// everything but the name, and non numeric price and quantity.
func (p *Prober) RunScenarios(ctx context.Context, form *Form, data map[string]string) []Result {
	now := p.now()
	var results []Result

	complete := mapFields(*form, data, p.token, now)
	results = append(results, p.Submit(ctx, form, complete, "Complete Data Test"))

	minimal := pick(data, "name", "price")
	results = append(results, p.Submit(ctx, form, mapFields(*form, minimal, p.token, now), "Minimal Data Test"))

	missing := mapFields(*form, omit(data, "name", "title"), p.token, now)
	for _, key := range []string{"name", "title"} {
		for _, field := range candidates(key) {
			missing.Del(field)
		}
	}
	results = append(results, p.Submit(ctx, form, missing, "Missing Required Field Test"))

	invalid := omit(data)
	invalid["price"] = "not-a-number"
	invalid["quantity"] = "not-an-integer"
	results = append(results, p.Submit(ctx, form, mapFields(*form, invalid, p.token, now), "Invalid Data Types Test"))

	return results
}

func pick(data map[string]string, keys ...string) map[string]string {
	out := map[string]string{}
	for _, k := range keys {
		if v, ok := data[k]; ok {
			out[k] = v
		}
	}
	return out
}

func omit(data map[string]string, keys ...string) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Summarize counts results and suggests where to look next.
func Summarize(baseURL, formPath string, results []Result) Summary {
	s := Summary{Total: len(results), Results: results}
	for _, r := range results {
		if r.Success {
			s.Passed++
		}
	}
	s.Failed = s.Total - s.Passed

	switch {
	case s.Passed == 0:
		s.Recommendations = []string{
			"Check that the server is running at " + baseURL,
			"Verify the " + formPath + " page exists",
			"Check authentication requirements",
			"Review server logs for errors",
		}
	case s.Passed < s.Total:
		s.Recommendations = []string{
			"Some tests failed - check validation logic",
			"Review required vs optional fields",
			"Check data type validations",
		}
	default:
		s.Recommendations = []string{"All tests passed"}
	}
	return s
}

// Summary summarizes results for this prober's target.
func (p *Prober) Summary(results []Result) Summary {
	return Summarize(p.BaseURL, p.FormPath, results)
}
