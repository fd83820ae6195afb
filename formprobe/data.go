package formprobe

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DataKeys is the order test values are mapped in.
var DataKeys = []string{
	"name", "title", "description", "price", "category", "sku", "quantity",
	"brand", "status", "weight", "dimensions", "color", "material",
}

// TestData is a complete product worth of values keyed by DataKeys.
func TestData(now time.Time) map[string]string {
	stamp := now.Unix()
	return map[string]string{
		"name":        fmt.Sprintf("Debug Test Product %d", stamp),
		"title":       fmt.Sprintf("Debug Test Product %d", stamp),
		"description": "This is a test product created by the form probe",
		"price":       "99.99",
		"category":    "Electronics",
		"sku":         fmt.Sprintf("TEST-%d", stamp),
		"quantity":    "10",
		"brand":       "TestBrand",
		"status":      "active",
		"weight":      "1.5",
		"dimensions":  "10x10x10",
		"color":       "Black",
		"material":    "Plastic",
	}
}

// Mappings lists the field names each data key may appear under, most
// likely first.
var Mappings = map[string][]string{
	"name":        {"name", "product_name", "title", "product_title", "product[name]", "product[title]"},
	"title":       {"title", "product_title", "product[title]"},
	"description": {"description", "desc", "product_description", "product[description]"},
	"price":       {"price", "cost", "amount", "product_price", "product[price]"},
	"category":    {"category", "category_id", "product_category", "product[category]"},
	"sku":         {"sku", "product_sku", "product[sku]"},
	"quantity":    {"quantity", "stock", "inventory", "product_quantity", "product[quantity]"},
	"brand":       {"brand", "manufacturer", "product_brand", "product[brand]"},
	"status":      {"status", "state", "product_status", "product[status]"},
}

// CSRFFieldNames are the hidden field names frameworks read the token from.
var CSRFFieldNames = []string{"authenticity_token", "csrfmiddlewaretoken", "_csrf", "csrf_token"}

func candidates(key string) []string {
	if names, ok := Mappings[key]; ok {
		return names
	}
	return []string{key, "product_" + key, "product[" + key + "]"}
}

func skipField(f Field) bool {
	if f.Name == "" {
		return true
	}
	switch f.Type {
	case "submit", "button", "reset", "image", "file":
		return true
	}
	return false
}

func isCSRFField(name string) bool {
	for _, n := range CSRFFieldNames {
		if n == name {
			return true
		}
	}
	return false
}

// MapFields builds the values to submit for form out of data. Keys are tried
// in DataKeys order and each field is filled once. Hidden fields keep their
// value, the token goes into the first CSRF field the form has, and required
// fields still empty get a value made up from their type.
func MapFields(form Form, data map[string]string, token string) url.Values {
	return mapFields(form, data, token, time.Now())
}

func mapFields(form Form, data map[string]string, token string, now time.Time) url.Values {
	values := url.Values{}
	present := map[string]Field{}
	for _, f := range form.Fields {
		if skipField(f) {
			continue
		}
		present[f.Name] = f
		if f.Type == "hidden" && f.Value != "" {
			values.Set(f.Name, f.Value)
		}
	}

	for _, key := range DataKeys {
		value, ok := data[key]
		if !ok {
			continue
		}
		for _, name := range candidates(key) {
			f, ok := present[name]
			if !ok || f.Type == "hidden" || values.Has(name) {
				continue
			}
			values.Set(name, pickValue(f, value))
			break
		}
	}

	if token != "" {
		for _, name := range CSRFFieldNames {
			if _, ok := present[name]; ok {
				values.Set(name, token)
				break
			}
		}
	}

	for _, f := range form.Fields {
		if skipField(f) || !f.Required || values.Get(f.Name) != "" {
			continue
		}
		values.Set(f.Name, Synthesize(f, now))
	}
	return values
}

// pickValue keeps select values inside their option list.
func pickValue(f Field, value string) string {
	if f.Type != "select" || len(f.Options) == 0 {
		return value
	}
	for _, o := range f.Options {
		if strings.EqualFold(o.Value, value) || strings.EqualFold(o.Label, value) {
			return o.Value
		}
	}
	return firstOption(f)
}

func firstOption(f Field) string {
	for _, o := range f.Options {
		if o.Value != "" {
			return o.Value
		}
	}
	return ""
}

// Synthesize makes up a plausible value for a field from its type.
func Synthesize(f Field, now time.Time) string {
	switch f.Type {
	case "email":
		return "probe@example.com"
	case "number", "range":
		return "1"
	case "url":
		return "https://example.com/probe.png"
	case "tel":
		return "555-0100"
	case "date":
		return now.Format("2006-01-02")
	case "datetime-local":
		return now.Format("2006-01-02T15:04")
	case "time":
		return now.Format("15:04")
	case "password":
		return "password123"
	case "checkbox", "radio":
		if f.Value != "" {
			return f.Value
		}
		return "on"
	case "select":
		return firstOption(f)
	}
	return "probe " + f.Name
}
