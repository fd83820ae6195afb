package transport

import (
	"embed"
	stderrors "errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/muhammadheryan/storefront/constant"
	"github.com/muhammadheryan/storefront/model"
	utilsContext "github.com/muhammadheryan/storefront/utils/context"
	"github.com/muhammadheryan/storefront/utils/errors"
	"github.com/muhammadheryan/storefront/utils/logger"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const defaultAfterLogin = "/products/new"

// loadTemplates parses the page templates from dir, or the embedded copies
// when dir is empty.
func loadTemplates(dir string) (*template.Template, error) {
	if dir == "" {
		return template.ParseFS(templateFS, "templates/*.html")
	}
	return template.ParseGlob(filepath.Join(dir, "*.html"))
}

type productFormValues struct {
	Title         string
	Description   string
	Price         string
	CoverImageURL string
}

type pageData struct {
	Title      string
	CSRFToken  string
	Error      string
	Next       string
	Identifier string
	Form       productFormValues
	Errors     map[string][]string
}

func (s *RestHandler) render(w http.ResponseWriter, status int, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.pages.ExecuteTemplate(w, name, data); err != nil {
		logger.Error("[render] err execute template", zap.String("template", name), zap.String("error", err.Error()))
	}
}

// LoginPage serves the HTML login form.
func (s *RestHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	next := safeNext(r.URL.Query().Get("next"))
	if _, ok := utilsContext.GetUserID(r.Context()); ok {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	s.render(w, http.StatusOK, "login.html", pageData{
		Title:     "Log in",
		CSRFToken: signedToken(r.Context()),
		Next:      next,
	})
}

// LoginSubmit handles the HTML login form.
func (s *RestHandler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	next := safeNext(r.FormValue("next"))
	req := &model.LoginRequest{
		Identifier: strings.TrimSpace(r.FormValue("identifier")),
		Password:   r.FormValue("password"),
	}

	fail := func(status int, message string) {
		s.render(w, status, "login.html", pageData{
			Title:      "Log in",
			CSRFToken:  signedToken(ctx),
			Next:       next,
			Identifier: req.Identifier,
			Error:      message,
		})
	}

	if req.Identifier == "" || req.Password == "" {
		fail(http.StatusBadRequest, "Email or username and password are required.")
		return
	}

	res, err := s.UserApp.Login(ctx, req)
	if err != nil {
		var ce errors.CustomError
		if stderrors.As(err, &ce) && ce.Type() == constant.ErrTooManyAttempts {
			fail(http.StatusTooManyRequests, "Too many failed attempts. Try again later.")
			return
		}
		if stderrors.As(err, &ce) && ce.Type() == constant.ErrInternal {
			fail(http.StatusInternalServerError, "Something went wrong. Please try again.")
			return
		}
		fail(http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	if err := s.startSession(w, r, res.SessionID); err != nil {
		fail(http.StatusInternalServerError, "Something went wrong. Please try again.")
		return
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// NewProductPage serves the HTML product form.
func (s *RestHandler) NewProductPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := utilsContext.GetUserID(r.Context()); !ok {
		redirectToLogin(w, r)
		return
	}
	s.render(w, http.StatusOK, "product_form.html", pageData{
		Title:     "New product",
		CSRFToken: signedToken(r.Context()),
	})
}

// CreateProductSubmit handles the HTML product form.
func (s *RestHandler) CreateProductSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		redirectToLogin(w, r)
		return
	}

	form := productFormValues{
		Title:         r.FormValue("title"),
		Description:   r.FormValue("description"),
		Price:         strings.TrimSpace(r.FormValue("price")),
		CoverImageURL: r.FormValue("cover_image_url"),
	}
	page := pageData{Title: "New product", CSRFToken: signedToken(ctx), Form: form}

	req := &model.ProductRequest{
		Title:         form.Title,
		Description:   form.Description,
		CoverImageURL: form.CoverImageURL,
	}
	if form.Price != "" {
		price, err := strconv.ParseFloat(form.Price, 64)
		if err != nil {
			page.Errors = map[string][]string{"price": {"Price must be a number"}}
			s.render(w, http.StatusUnprocessableEntity, "product_form.html", page)
			return
		}
		req.Price = &price
	}

	created, err := s.ProductApp.CreateProduct(ctx, userID, req)
	if err != nil {
		var ce errors.CustomError
		if stderrors.As(err, &ce) && ce.Fields() != nil {
			page.Errors = ce.Fields()
			s.render(w, http.StatusUnprocessableEntity, "product_form.html", page)
			return
		}
		page.Error = "The product could not be saved."
		s.render(w, http.StatusInternalServerError, "product_form.html", page)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/products/%d", created.ID), http.StatusSeeOther)
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.Path), http.StatusSeeOther)
}

// safeNext only allows local absolute paths.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return defaultAfterLogin
	}
	return next
}
