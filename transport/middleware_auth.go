package transport

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/muhammadheryan/storefront/application/user"
	"github.com/muhammadheryan/storefront/constant"
	utilsContext "github.com/muhammadheryan/storefront/utils/context"
	"github.com/muhammadheryan/storefront/utils/errors"
	"github.com/muhammadheryan/storefront/utils/logger"
	"go.uber.org/zap"
)

// session value keys
const (
	sessionIDKey = "sid"
	sessionCSRF  = "csrf"
)

// AuthMiddleware resolves the caller from a Bearer token or the session
// cookie and stores the user id in the request context. Requests without
// valid credentials pass through anonymous; requireUser rejects them later.
func AuthMiddleware(userApp user.UserApp, store sessions.Store) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if token, ok := bearerToken(r); ok {
				if strings.HasPrefix(r.URL.Path, "/internal/") {
					next.ServeHTTP(w, r)
					return
				}
				userID, err := userApp.ValidateToken(ctx, token)
				if err != nil {
					writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
					return
				}
				next.ServeHTTP(w, r.WithContext(utilsContext.WithUser(ctx, userID, "", constant.AuthViaBearer)))
				return
			}

			sess, err := store.Get(r, constant.SessionCookieName)
			if err != nil {
				logger.Debug("[AuthMiddleware] unreadable session cookie", zap.String("error", err.Error()))
			}
			sid, _ := sess.Values[sessionIDKey].(string)
			if sid == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := userApp.ValidateSession(ctx, sid)
			if err != nil {
				// expired server side, forget it
				delete(sess.Values, sessionIDKey)
				if err := sess.Save(r, w); err != nil {
					logger.Warn("[AuthMiddleware] err save session", zap.String("error", err.Error()))
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(utilsContext.WithUser(ctx, userID, sid, constant.AuthViaSession)))
		})
	}
}

// requireUser answers 401 unless AuthMiddleware resolved a user.
func (s *RestHandler) requireUser(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utilsContext.GetUserID(r.Context()); !ok {
			writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
			return
		}
		h(w, r)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	return token, token != ""
}
