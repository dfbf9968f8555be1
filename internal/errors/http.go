package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// StatusError carries the raw backend response that produced an AppError.
type StatusError struct {
	Status int
	Method string
	Path   string
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// HTTPStatus returns the backend status code carried by err, or 0.
func HTTPStatus(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// Detail returns the backend-provided message carried by err, or "".
func Detail(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Detail
	}
	return ""
}

// ParseDetail extracts the human-readable message from a backend error body.
// The backend reports errors as {"detail": "..."} or {"message": "..."};
// validation failures may carry a list of {"msg": "...", "loc": [...]}.
func ParseDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return strings.TrimSpace(string(body))
	}

	if len(payload.Detail) > 0 {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(payload.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if it.Msg != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			return strings.Join(msgs, "; ")
		}
	}
	return payload.Message
}

// MapHTTPError maps a failed backend exchange to an AppError.
// It handles:
// - Context timeouts/cancellations → Timeout/Canceled
// - 401 → SessionExpired
// - 403 → Forbidden
// - 404 → NotFound
// - 409 → Conflict
// - 400/422 → Validation
// - 429 → RateLimited
// - 5xx → Unavailable
//
// A nil status error and nil transport error returns nil.
func MapHTTPError(se *StatusError, transportErr error) error {
	if transportErr != nil {
		return mapTransportError(transportErr)
	}
	if se == nil || se.Status < http.StatusBadRequest {
		return nil
	}

	code, message := classifyStatus(se.Status)
	if se.Detail != "" {
		message = se.Detail
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   se,
	}
}

func mapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out. Please try again.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Request was canceled.",
			Cause:   err,
		}
	}
	return &AppError{
		Code:    ErrCodeUnavailable,
		Message: "The server could not be reached.",
		Cause:   err,
	}
}

func classifyStatus(status int) (ErrorCode, string) {
	switch {
	case status == http.StatusUnauthorized:
		return ErrCodeSessionExpired, "Your session has expired. Please log in again."
	case status == http.StatusForbidden:
		return ErrCodeForbidden, "You do not have permission to perform this action."
	case status == http.StatusNotFound:
		return ErrCodeNotFound, "Resource not found"
	case status == http.StatusConflict:
		return ErrCodeConflict, "This value already exists. Please choose a different one."
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return ErrCodeValidation, "Invalid data. Please check your input."
	case status == http.StatusTooManyRequests:
		return ErrCodeRateLimited, "Too many requests. Please wait and try again."
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		return ErrCodeTimeout, "Request timed out. Please try again."
	case status >= http.StatusInternalServerError:
		return ErrCodeUnavailable, "The server encountered an error. Please try again."
	default:
		return ErrCodeInternal, "Unexpected response from server."
	}
}
