package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/PabloPavan/snipmark_api/internal/apperrors"
)

type errorBody struct {
	Error string         `json:"error"`
	Kind  apperrors.Kind `json:"kind"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBadRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error(), Kind: apperrors.KindInvalidInput})
}

func writeAppError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	kind := apperrors.KindOf(err)
	msg := "internal error"
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		msg = errorMessage(appErr)
		if kind == apperrors.KindRateLimited && appErr.RetryAfter > 0 {
			seconds := max(int(appErr.RetryAfter.Seconds()), 1)
			w.Header().Set("Retry-After", strconv.Itoa(seconds))
		}
	}
	writeJSON(w, statusFromKind(kind), errorBody{Error: msg, Kind: kind})
}

func statusFromKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindInvalidInput:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage hides wrapped causes of internal errors from clients.
func errorMessage(appErr *apperrors.Error) string {
	if appErr.Kind == apperrors.KindInternal {
		if appErr.Message != "" {
			return appErr.Message
		}
		return "internal error"
	}
	if appErr.Message != "" {
		return appErr.Message
	}
	switch appErr.Kind {
	case apperrors.KindUnauthorized:
		return "unauthorized"
	case apperrors.KindForbidden:
		return "forbidden"
	case apperrors.KindNotFound:
		return "not found"
	case apperrors.KindConflict:
		return "conflict"
	case apperrors.KindRateLimited:
		return "too many requests"
	default:
		return "invalid request"
	}
}
