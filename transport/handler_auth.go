package transport

import (
	"net/http"

	"github.com/muhammadheryan/storefront/constant"
	"github.com/muhammadheryan/storefront/model"
	utilsContext "github.com/muhammadheryan/storefront/utils/context"
	"github.com/muhammadheryan/storefront/utils/errors"
	"github.com/muhammadheryan/storefront/utils/logger"
	"go.uber.org/zap"
)

// Signup handler
// @Summary Sign up
// @Description Create an account and start a session
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.SignupRequest true "Signup Request"
// @Success 201 {object} model.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/auth/signup [post]
func (s *RestHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validate(&req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.UserApp.Register(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.startSession(w, r, res.SessionID); err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, http.StatusCreated, "User created", res, nil)
}

// Login handler
// @Summary Log in
// @Description Log in with email or username. Sets the session cookie and returns a Bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /api/auth/login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validate(&req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.UserApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.startSession(w, r, res.SessionID); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// Logout handler
// @Summary Log out
// @Tags Auth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/auth/logout [post]
func (s *RestHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if sid, ok := utilsContext.GetSessionID(ctx); ok {
		if err := s.UserApp.Logout(ctx, sid); err != nil {
			writeError(w, err)
			return
		}
	}

	sess, _ := s.Sessions.Get(r, constant.SessionCookieName)
	if sess != nil {
		delete(sess.Values, sessionIDKey)
		if err := sess.Save(r, w); err != nil {
			logger.Warn("[Logout] err save session", zap.String("error", err.Error()))
		}
	}
	writeResult(w, http.StatusOK, "User logged out", nil, nil)
}

// Me handler
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} model.PublicUser
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/ [get]
func (s *RestHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utilsContext.GetUserID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.UserApp.Me(ctx, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// startSession binds the new session id to the browser session cookie.
func (s *RestHandler) startSession(w http.ResponseWriter, r *http.Request, sessionID string) error {
	sess, _ := s.Sessions.Get(r, constant.SessionCookieName)
	if sess == nil {
		return errors.SetCustomError(constant.ErrInternal)
	}
	sess.Values[sessionIDKey] = sessionID
	if err := sess.Save(r, w); err != nil {
		logger.Error("[startSession] err save session", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}
