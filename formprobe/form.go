package formprobe

import (
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Field is one input, select or textarea of a form.
type Field struct {
	Tag         string   `json:"tag"`
	Name        string   `json:"name"`
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Required    bool     `json:"required"`
	Value       string   `json:"value"`
	Placeholder string   `json:"placeholder"`
	Options     []Option `json:"options,omitempty"`
}

type Form struct {
	Action  string  `json:"action"`
	Method  string  `json:"method"`
	Enctype string  `json:"enctype"`
	ID      string  `json:"id"`
	Class   string  `json:"class"`
	Fields  []Field `json:"fields"`

	// Page is the URL the form was read from.
	Page string `json:"page,omitempty"`
}

// Field returns the field called name.
func (f *Form) Field(name string) (Field, bool) {
	for _, fl := range f.Fields {
		if fl.Name == name {
			return fl, true
		}
	}
	return Field{}, false
}

// ParseForms returns every form in doc with the fields nested inside it.
func ParseForms(r io.Reader) ([]Form, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var forms []Form
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Form {
			forms = append(forms, readForm(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return forms, nil
}

func readForm(n *html.Node) Form {
	form := Form{
		Action:  attr(n, "action"),
		Method:  strings.ToUpper(attr(n, "method")),
		Enctype: attr(n, "enctype"),
		ID:      attr(n, "id"),
		Class:   attr(n, "class"),
	}
	if form.Method == "" {
		form.Method = "GET"
	}

	var walk func(c *html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.ElementNode {
			switch c.DataAtom {
			case atom.Input, atom.Select, atom.Textarea:
				form.Fields = append(form.Fields, readField(c))
				return
			}
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			walk(cc)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return form
}

func readField(n *html.Node) Field {
	f := Field{
		Tag:         n.Data,
		Name:        attr(n, "name"),
		ID:          attr(n, "id"),
		Required:    hasAttr(n, "required"),
		Value:       attr(n, "value"),
		Placeholder: attr(n, "placeholder"),
	}

	switch n.DataAtom {
	case atom.Input:
		f.Type = strings.ToLower(attr(n, "type"))
		if f.Type == "" {
			f.Type = "text"
		}
	case atom.Textarea:
		f.Type = "textarea"
		f.Value = text(n)
	case atom.Select:
		f.Type = "select"
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collectOptions(c, &f.Options)
		}
		for _, o := range f.Options {
			if o.Selected {
				f.Value = o.Value
				break
			}
		}
		if f.Value == "" && len(f.Options) > 0 {
			f.Value = f.Options[0].Value
		}
	}
	return f
}

func collectOptions(n *html.Node, out *[]Option) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Option {
		label := strings.TrimSpace(text(n))
		value := label
		if hasAttr(n, "value") {
			value = attr(n, "value")
		}
		*out = append(*out, Option{Value: value, Label: label, Selected: hasAttr(n, "selected")})
		return
	}
	// optgroup
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectOptions(c, out)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(c *html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		for cc := c.FirstChild; cc != nil; cc = cc.NextSibling {
			walk(cc)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return b.String()
}

const (
	FrameworkRails   = "rails"
	FrameworkDjango  = "django"
	FrameworkFlask   = "flask"
	FrameworkExpress = "express"
	FrameworkUnknown = "unknown"
)

// frameworkIndicators is checked in order; the first hit wins.
var frameworkIndicators = []struct {
	name       string
	indicators []string
}{
	{FrameworkDjango, []string{"csrfmiddlewaretoken", "django administration", "django.contrib"}},
	{FrameworkRails, []string{"authenticity_token", "csrf-token", "rails.application"}},
	{FrameworkFlask, []string{"csrf_token", "flask", "wtf"}},
	{FrameworkExpress, []string{"_csrf", "express-session"}},
}

// DetectFramework guesses the server framework from markers in a page.
func DetectFramework(doc string) string {
	lower := strings.ToLower(doc)
	for _, fw := range frameworkIndicators {
		for _, ind := range fw.indicators {
			if strings.Contains(lower, ind) {
				return fw.name
			}
		}
	}
	return FrameworkUnknown
}

var tokenNames = `(?:csrf[_-]?token|authenticity_token|csrfmiddlewaretoken|_csrf)`

var csrfPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)name=["']` + tokenNames + `["'][^>]*?value=["']([^"']+)["']`),
	regexp.MustCompile(`(?is)value=["']([^"']+)["'][^>]*?name=["']` + tokenNames + `["']`),
	regexp.MustCompile(`(?is)<meta[^>]*?name=["'](?:csrf-token|_csrf)["'][^>]*?content=["']([^"']+)["']`),
	regexp.MustCompile(`(?is)<meta[^>]*?content=["']([^"']+)["'][^>]*?name=["'](?:csrf-token|_csrf)["']`),
	regexp.MustCompile(`(?i)csrf[_-]?token["']?\s*[:=]\s*["']([^"']+)["']`),
}

// ExtractCSRFToken finds a CSRF token in hidden inputs, meta tags or inline
// script assignments. It returns "" when there is none.
func ExtractCSRFToken(doc string) string {
	for _, re := range csrfPatterns {
		if m := re.FindStringSubmatch(doc); m != nil {
			return m[1]
		}
	}
	return ""
}
