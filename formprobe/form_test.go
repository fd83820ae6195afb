package formprobe

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productPage = `<!DOCTYPE html>
<html><head>
<meta name="csrf-token" content="meta-token">
</head><body>
<form id="product-form" class="product-form" action="/products" method="post">
  <input type="hidden" name="csrf_token" value="form-token">
  <input id="title" name="title" type="text" required>
  <textarea id="description" name="description" required>old text</textarea>
  <input id="price" name="price" type="number" step="0.01" required>
  <select name="category">
    <option value="">Pick one</option>
    <optgroup label="Main">
      <option value="electronics">Electronics</option>
      <option selected>Garden</option>
    </optgroup>
  </select>
  <input name="launch" type="date" required>
  <input name="contact" type="email" required>
  <input name="cover" type="file">
  <button type="submit">Create</button>
</form>
<form action="/search"><input name="q" placeholder="Search"></form>
</body></html>`

func TestParseForms(t *testing.T) {
	forms, err := ParseForms(strings.NewReader(productPage))
	require.NoError(t, err)
	require.Len(t, forms, 2)

	f := forms[0]
	assert.Equal(t, "/products", f.Action)
	assert.Equal(t, "POST", f.Method)
	assert.Equal(t, "product-form", f.ID)
	assert.Equal(t, "product-form", f.Class)
	require.Len(t, f.Fields, 8)

	title, ok := f.Field("title")
	require.True(t, ok)
	assert.Equal(t, "text", title.Type)
	assert.True(t, title.Required)

	desc, _ := f.Field("description")
	assert.Equal(t, "textarea", desc.Type)
	assert.Equal(t, "old text", desc.Value)

	cat, _ := f.Field("category")
	assert.Equal(t, "select", cat.Type)
	require.Len(t, cat.Options, 3)
	assert.Equal(t, "Garden", cat.Options[2].Value)
	assert.Equal(t, "Garden", cat.Value)

	search := forms[1]
	assert.Equal(t, "GET", search.Method)
	require.Len(t, search.Fields, 1)
	assert.Equal(t, "Search", search.Fields[0].Placeholder)
}

func TestDetectFramework(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "django", doc: `<input name="csrfmiddlewaretoken" value="x">`, want: FrameworkDjango},
		{name: "rails meta", doc: `<meta name="csrf-token" content="x">`, want: FrameworkRails},
		{name: "rails wins over flask", doc: productPage, want: FrameworkRails},
		{name: "flask", doc: `<input name="csrf_token" value="x">`, want: FrameworkFlask},
		{name: "express", doc: `<input name="_csrf" value="x">`, want: FrameworkExpress},
		{name: "unknown", doc: `<p>hello</p>`, want: FrameworkUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFramework(tt.doc))
		})
	}
}

func TestExtractCSRFToken(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "hidden input after meta", doc: productPage, want: "form-token"},
		{name: "value before name", doc: `<input value="abc" type="hidden" name="authenticity_token">`, want: "abc"},
		{name: "django", doc: `<input type='hidden' name='csrfmiddlewaretoken' value='dj'>`, want: "dj"},
		{name: "meta only", doc: `<meta name="csrf-token" content="m1">`, want: "m1"},
		{name: "meta content first", doc: `<meta content="m2" name="_csrf">`, want: "m2"},
		{name: "script", doc: `<script>window.app = {csrfToken: "js1"}</script>`, want: "js1"},
		{name: "empty value", doc: `<input name="csrf_token" value="">`, want: ""},
		{name: "none", doc: `<form></form>`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCSRFToken(tt.doc))
		})
	}
}

func TestMapFields(t *testing.T) {
	forms, err := ParseForms(strings.NewReader(productPage))
	require.NoError(t, err)
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	data := TestData(now)

	values := mapFields(forms[0], data, "fresh-token", now)

	assert.Equal(t, data["name"], values.Get("title"))
	assert.Equal(t, data["description"], values.Get("description"))
	assert.Equal(t, "99.99", values.Get("price"))
	assert.Equal(t, "electronics", values.Get("category"))
	assert.Equal(t, "fresh-token", values.Get("csrf_token"))
	assert.Equal(t, "2026-10-18", values.Get("launch"))
	assert.Equal(t, "probe@example.com", values.Get("contact"))
	assert.False(t, values.Has("cover"))
	assert.False(t, values.Has("sku"))

	noToken := mapFields(forms[0], map[string]string{}, "", now)
	assert.Equal(t, "form-token", noToken.Get("csrf_token"))
	assert.Equal(t, "probe title", noToken.Get("title"))
	assert.Equal(t, "1", noToken.Get("price"))
}

func TestSynthesize(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	tests := []struct {
		field Field
		want  string
	}{
		{Field{Name: "e", Type: "email"}, "probe@example.com"},
		{Field{Name: "n", Type: "number"}, "1"},
		{Field{Name: "u", Type: "url"}, "https://example.com/probe.png"},
		{Field{Name: "p", Type: "tel"}, "555-0100"},
		{Field{Name: "d", Type: "date"}, "2026-10-18"},
		{Field{Name: "c", Type: "checkbox"}, "on"},
		{Field{Name: "c", Type: "checkbox", Value: "yes"}, "yes"},
		{Field{Name: "s", Type: "select", Options: []Option{{Value: ""}, {Value: "b"}}}, "b"},
		{Field{Name: "sku", Type: "text"}, "probe sku"},
	}
	for _, tt := range tests {
		t.Run(tt.field.Type, func(t *testing.T) {
			assert.Equal(t, tt.want, Synthesize(tt.field, now))
		})
	}
}

func TestPrimeScript(t *testing.T) {
	script, err := primeScript(map[string]string{"price": "1"}, "a@b.c", "pw")
	require.NoError(t, err)
	assert.Contains(t, script, `window.__formprobeData = {"price":"1"};`)
	assert.Contains(t, script, `window.__formprobeEmail = "a@b.c";`)
	assert.Contains(t, script, `window.__formprobeKeys = ["name",`)
	assert.True(t, strings.HasSuffix(script, "true;"))
	assert.Contains(t, panelJS, "window.__formprobe =")
}
