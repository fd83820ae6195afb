package transport

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/storefront/constant"
	utilsContext "github.com/muhammadheryan/storefront/utils/context"
)

const notPresent = "Not present"

// Health handler
// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (s *RestHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "Application is running",
	})
}

// APITest handler
// @Summary API smoke endpoint
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/test [get]
func (s *RestHandler) APITest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "API is working!",
		"status":  "success",
	})
}

// APIDocs handler
// @Summary Registered routes and their methods
// @Tags System
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/docs [get]
func (s *RestHandler) APIDocs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, routeList(s.router))
}

func routeList(router *mux.Router) map[string][]string {
	routes := map[string][]string{}
	if router == nil {
		return routes
	}
	_ = router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			return nil
		}
		routes[path] = append(routes[path], methods...)
		sort.Strings(routes[path])
		return nil
	})
	return routes
}

// CSRFToken handler
// @Summary Current CSRF token
// @Description Also sets the csrf_token cookie
// @Tags CSRF
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/csrf/token [get]
func (s *RestHandler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"csrf_token": signedToken(r.Context())})
}

// CSRFDebug handler
// @Summary CSRF troubleshooting report
// @Tags CSRF
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/csrf/debug [get]
func (s *RestHandler) CSRFDebug(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, authenticated := utilsContext.GetUserID(ctx)

	session := map[string]interface{}{
		"session_id":            "No session ID",
		"csrf_token_in_session": "No CSRF token in session",
		"user_authenticated":    authenticated,
		"user_id":               nil,
	}
	if sid, ok := utilsContext.GetSessionID(ctx); ok {
		session["session_id"] = mask(sid)
	}
	if raw := s.sessionToken(r); raw != "" {
		session["csrf_token_in_session"] = mask(raw)
	}
	if authenticated {
		session["user_id"] = userID
	}

	secretSet := "No"
	if s.Config.Auth.CSRFSecret != "" {
		secretSet = "Yes"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"message":    "CSRF Debug Information",
		"csrf_token": signedToken(ctx),
		"session":    session,
		"headers": map[string]string{
			constant.CSRFHeader:    headerOr(r, constant.CSRFHeader),
			constant.CSRFHeaderAlt: headerOr(r, constant.CSRFHeaderAlt),
			"XSRF-Token":           headerOr(r, "XSRF-Token"),
		},
		"cookies": map[string]string{
			constant.CSRFCookieName:    cookieOr(r, constant.CSRFCookieName),
			constant.SessionCookieName: presence(cookieOr(r, constant.SessionCookieName)),
		},
		"environment": map[string]interface{}{
			"APP_ENV":         s.Config.Environment,
			"CSRF_SECRET_SET": secretSet,
			"CSRF_TIME_LIMIT": int(s.CSRF.TimeLimit().Seconds()),
		},
		"request_method":  r.Method,
		"request_origin":  headerOr(r, "Origin"),
		"request_referer": headerOr(r, "Referer"),
	})
}

// CSRFValidate handler
// @Summary Check a CSRF token without failing the request
// @Tags CSRF
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/csrf/validate [post]
func (s *RestHandler) CSRFValidate(w http.ResponseWriter, r *http.Request) {
	token, source := submittedToken(w, r)
	if token == "" && strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Token string `json:"csrf_token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.Token != "" {
			token, source = body.Token, "json"
		}
	}

	if token == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"status":  "error",
			"message": "No CSRF token provided",
			"valid":   false,
		})
		return
	}

	valid := true
	message := "CSRF token is valid"
	if err := s.CSRF.Verify(token, s.sessionToken(r)); err != nil {
		valid = false
		message = "CSRF token validation failed: " + err.Error()
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "success",
		"message":        message,
		"valid":          valid,
		"token_source":   source,
		"token_provided": mask(token),
	})
}

// CSRFTestEndpoint handler
// @Summary CSRF protected echo
// @Tags CSRF
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /api/csrf/test-endpoint [post]
func (s *RestHandler) CSRFTestEndpoint(w http.ResponseWriter, r *http.Request) {
	received := map[string]interface{}{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		_ = json.NewDecoder(r.Body).Decode(&received)
	} else if err := r.ParseForm(); err == nil {
		for k := range r.PostForm {
			received[k] = r.PostForm.Get(k)
		}
	}
	_, authenticated := utilsContext.GetUserID(r.Context())

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":             "success",
		"message":            "CSRF test endpoint reached successfully",
		"data_received":      received,
		"user_authenticated": authenticated,
		"csrf_protection":    "Working correctly",
	})
}

func headerOr(r *http.Request, name string) string {
	if v := r.Header.Get(name); v != "" {
		return v
	}
	return notPresent
}

func cookieOr(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return notPresent
	}
	return c.Value
}

func presence(v string) string {
	if v == notPresent {
		return v
	}
	return "Present"
}

// mask keeps the first ten characters of a secret.
func mask(v string) string {
	if len(v) > 10 {
		return v[:10] + "..."
	}
	return v
}
