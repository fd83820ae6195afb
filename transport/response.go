package transport

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/muhammadheryan/storefront/constant"
	"github.com/muhammadheryan/storefront/utils/errors"
	"github.com/muhammadheryan/storefront/utils/logger"
	"go.uber.org/zap"
)

// SuccessResponse is the envelope of every successful API answer.
type SuccessResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// ErrorResponse is the envelope of every failed API answer.
type ErrorResponse struct {
	Success    bool                `json:"success"`
	Error      string              `json:"error"`
	Code       string              `json:"code"`
	StatusCode int                 `json:"status_code"`
	Errors     map[string][]string `json:"errors,omitempty"`
	Timestamp  string              `json:"timestamp"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("[writeJSON] err encode", zap.String("error", err.Error()))
	}
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeResult(w, http.StatusOK, "Success", data, nil)
}

func writeResult(w http.ResponseWriter, status int, message string, data, meta interface{}) {
	writeJSON(w, status, SuccessResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
		Timestamp: now(),
	})
}

func writeError(w http.ResponseWriter, err error) {
	var ce errors.CustomError
	if !stderrors.As(err, &ce) {
		logger.Error("[writeError] unexpected error", zap.String("error", err.Error()))
		ce = errors.SetCustomError(constant.ErrInternal)
	}
	writeJSON(w, ce.ErrorHTTPCode(), ErrorResponse{
		Success:    false,
		Error:      ce.Error(),
		Code:       ce.ErrorCode(),
		StatusCode: ce.ErrorHTTPCode(),
		Errors:     ce.Fields(),
		Timestamp:  now(),
	})
}
