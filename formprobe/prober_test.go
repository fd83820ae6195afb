package formprobe_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/muhammadheryan/storefront/formprobe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const token = "tok-123"

// fakeShop is a tiny server rendered app with a login page and a product form
// behind a session cookie.
func fakeShop(t *testing.T) *httptest.Server {
	t.Helper()
	loggedIn := func(r *http.Request) bool {
		c, err := r.Cookie("sid")
		return err == nil && c.Value == "ok"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<html><head><meta name="csrf-token" content="`+token+`"></head><body>Shop</body></html>`)
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			fmt.Fprintf(w, `<form action="/login" method="post"><input type="hidden" name="csrf_token" value="%s"><input name="identifier"><input name="password" type="password"></form>`, token)
			return
		}
		_ = r.ParseForm()
		if r.PostForm.Get("csrf_token") != token || r.PostForm.Get("identifier") != "east@east.com" || r.PostForm.Get("password") != "password" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, "Invalid credentials")
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: "ok", Path: "/"})
		http.Redirect(w, r, "/products/new", http.StatusSeeOther)
	})
	mux.HandleFunc("/products/new", func(w http.ResponseWriter, r *http.Request) {
		if !loggedIn(r) {
			http.Redirect(w, r, "/login?next=/products/new", http.StatusSeeOther)
			return
		}
		fmt.Fprintf(w, `<form action="/products" method="post">
<input type="hidden" name="csrf_token" value="%s">
<input name="title" required>
<textarea name="description" required></textarea>
<input name="price" type="number" required>
<input name="cover_image_url" type="url">
</form>`, token)
	})
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		if !loggedIn(r) || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_ = r.ParseForm()
		if r.PostForm.Get("csrf_token") != token {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("title") == "" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			fmt.Fprint(w, "title is required")
			return
		}
		if _, err := strconv.ParseFloat(r.PostForm.Get("price"), 64); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			fmt.Fprint(w, "price must be a number")
			return
		}
		http.Redirect(w, r, "/products/1", http.StatusSeeOther)
	})
	mux.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("mode") {
		case "saved":
			fmt.Fprint(w, "Record saved")
		case "invalid":
			fmt.Fprint(w, "Something is invalid")
		default:
			fmt.Fprint(w, "ok")
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newProber(t *testing.T, url string) *formprobe.Prober {
	t.Helper()
	p, err := formprobe.New(url, "/products/new", "east@east.com", "password")
	require.NoError(t, err)
	return p
}

func TestProber_EndToEnd(t *testing.T) {
	srv := fakeShop(t)
	p := newProber(t, srv.URL)
	ctx := context.Background()

	framework, err := p.TestConnection(ctx)
	require.NoError(t, err)
	assert.Equal(t, formprobe.FrameworkRails, framework)

	_, err = p.FetchForm(ctx, "/products/new")
	require.Error(t, err)

	ok, err := p.AutoLogin(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, token, p.Token())

	form, err := p.FetchForm(ctx, "/products/new")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/products/new", form.Page)

	results := p.RunScenarios(ctx, form, formprobe.TestData(time.Now()))
	require.Len(t, results, 4)

	byName := map[string]formprobe.Result{}
	for _, r := range results {
		byName[r.Name] = r
		assert.Equal(t, srv.URL+"/products", r.URL)
	}

	assert.True(t, byName["Complete Data Test"].Success)
	assert.Equal(t, http.StatusSeeOther, byName["Complete Data Test"].StatusCode)
	assert.Equal(t, "Redirect to: /products/1", byName["Complete Data Test"].Message)

	assert.True(t, byName["Minimal Data Test"].Success)

	missing := byName["Missing Required Field Test"]
	assert.False(t, missing.Success)
	assert.Equal(t, "Validation failed", missing.Message)
	assert.Equal(t, "title is required", missing.Snippet)

	invalid := byName["Invalid Data Types Test"]
	assert.False(t, invalid.Success)
	assert.Equal(t, http.StatusUnprocessableEntity, invalid.StatusCode)

	summary := p.Summary(results)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Passed)
	assert.Equal(t, 2, summary.Failed)
	assert.Contains(t, summary.Recommendations, "Check data type validations")
}

func TestProber_AutoLoginFails(t *testing.T) {
	srv := fakeShop(t)
	p, err := formprobe.New(srv.URL, "", "east@east.com", "wrong")
	require.NoError(t, err)
	assert.Equal(t, "/products/new", p.FormPath)

	ok, err := p.AutoLogin(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProber_SubmitClassifies(t *testing.T) {
	srv := fakeShop(t)
	p := newProber(t, srv.URL)
	ctx := context.Background()

	tests := []struct {
		mode        string
		wantSuccess bool
		wantMessage string
	}{
		{mode: "saved", wantSuccess: true, wantMessage: "Product created successfully"},
		{mode: "invalid", wantMessage: "Validation errors detected"},
		{mode: "other", wantMessage: "Response unclear - check manually"},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			form := &formprobe.Form{Action: "/echo", Method: http.MethodGet, Page: srv.URL + "/"}
			res := p.Submit(ctx, form, map[string][]string{"mode": {tt.mode}}, tt.mode)
			assert.Equal(t, http.StatusOK, res.StatusCode)
			assert.Equal(t, tt.wantSuccess, res.Success)
			assert.Equal(t, tt.wantMessage, res.Message)
		})
	}

	res := p.Submit(ctx, &formprobe.Form{Action: "/products", Method: http.MethodPost}, nil, "forbidden")
	assert.False(t, res.Success)
	assert.Equal(t, "HTTP 403 error", res.Message)
}

func TestSummarize(t *testing.T) {
	none := formprobe.Summarize("http://shop", "/products/new", []formprobe.Result{{Name: "a"}})
	assert.Equal(t, 0, none.Passed)
	assert.True(t, strings.HasPrefix(none.Recommendations[0], "Check that the server is running at http://shop"))

	all := formprobe.Summarize("http://shop", "/products/new", []formprobe.Result{{Success: true}})
	assert.Equal(t, []string{"All tests passed"}, all.Recommendations)
}
