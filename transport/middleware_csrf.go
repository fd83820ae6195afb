package transport

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/muhammadheryan/storefront/constant"
	utilsContext "github.com/muhammadheryan/storefront/utils/context"
	"github.com/muhammadheryan/storefront/utils/csrf"
	"github.com/muhammadheryan/storefront/utils/errors"
	"github.com/muhammadheryan/storefront/utils/logger"
	"go.uber.org/zap"
)

type ctxKey int

const signedTokenKey ctxKey = iota

// CSRFMiddleware keeps a raw token in every browser session, hands the
// signed form out through the csrf_token cookie and checks it on unsafe
// methods.
func CSRFMiddleware(store sessions.Store, manager *csrf.Manager, production bool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if csrfExempt(r) {
				next.ServeHTTP(w, r)
				return
			}

			sess, _ := store.Get(r, constant.SessionCookieName)
			raw, _ := sess.Values[sessionCSRF].(string)
			if raw == "" {
				raw = csrf.NewToken()
				sess.Values[sessionCSRF] = raw
				if err := sess.Save(r, w); err != nil {
					logger.Error("[CSRFMiddleware] err save session", zap.String("error", err.Error()))
					writeError(w, errors.SetCustomError(constant.ErrInternal))
					return
				}
			}

			signed, err := manager.Sign(raw)
			if err != nil {
				logger.Error("[CSRFMiddleware] err sign token", zap.String("error", err.Error()))
				writeError(w, errors.SetCustomError(constant.ErrInternal))
				return
			}
			http.SetCookie(w, csrfCookie(signed, manager, production))

			if unsafeMethod(r.Method) && r.URL.Path != "/api/csrf/validate" {
				token, _ := submittedToken(w, r)
				if err := manager.Verify(token, raw); err != nil {
					if stderrors.Is(err, csrf.ErrMissing) {
						writeError(w, errors.SetCustomError(constant.ErrCSRFMissing))
						return
					}
					writeError(w, errors.SetCustomError(constant.ErrCSRFInvalid))
					return
				}
			}

			ctx := context.WithValue(r.Context(), signedTokenKey, signed)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// csrfExempt covers API key and Bearer callers, which carry no cookies.
func csrfExempt(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/internal/") {
		return true
	}
	return utilsContext.AuthVia(r.Context()) == constant.AuthViaBearer
}

func unsafeMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// submittedToken looks in both headers, then the form field. The body is
// only parsed when no header carries the token, and never past maxFormBody.
func submittedToken(w http.ResponseWriter, r *http.Request) (token, source string) {
	if v := r.Header.Get(constant.CSRFHeader); v != "" {
		return v, "header"
	}
	if v := r.Header.Get(constant.CSRFHeaderAlt); v != "" {
		return v, "header"
	}
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "application/x-www-form-urlencoded") && !strings.HasPrefix(ct, "multipart/form-data") {
		return "", ""
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)
	if v := r.FormValue(constant.CSRFFormField); v != "" {
		return v, "form"
	}
	return "", ""
}

func csrfCookie(signed string, manager *csrf.Manager, production bool) *http.Cookie {
	c := &http.Cookie{
		Name:     constant.CSRFCookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(manager.TimeLimit().Seconds()),
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	}
	if production {
		c.Secure = true
		c.SameSite = http.SameSiteStrictMode
	}
	return c
}

func signedToken(ctx context.Context) string {
	v, _ := ctx.Value(signedTokenKey).(string)
	return v
}

// sessionToken reads the raw token of the current browser session.
func (s *RestHandler) sessionToken(r *http.Request) string {
	sess, err := s.Sessions.Get(r, constant.SessionCookieName)
	if err != nil && sess == nil {
		return ""
	}
	raw, _ := sess.Values[sessionCSRF].(string)
	return raw
}
