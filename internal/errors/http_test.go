package errors

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func IsAppError(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

func TestMapHTTPError_Nil(t *testing.T) {
	if err := MapHTTPError(nil, nil); err != nil {
		t.Errorf("MapHTTPError(nil, nil) = %v, want nil", err)
	}
	if err := MapHTTPError(&StatusError{Status: http.StatusOK}, nil); err != nil {
		t.Errorf("MapHTTPError(200) = %v, want nil", err)
	}
}

func TestMapHTTPError_TransportErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
	}{
		{name: "deadline exceeded", err: context.DeadlineExceeded, wantCode: ErrCodeTimeout},
		{name: "canceled", err: context.Canceled, wantCode: ErrCodeCanceled},
		{name: "connection refused", err: errors.New("dial tcp: connection refused"), wantCode: ErrCodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapHTTPError(nil, tt.err)
			if !IsAppError(err, tt.wantCode) {
				t.Errorf("MapHTTPError() code = %v, want %v", GetCode(err), tt.wantCode)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("MapHTTPError() should preserve cause")
			}
		})
	}
}

func TestMapHTTPError_Statuses(t *testing.T) {
	tests := []struct {
		status   int
		wantCode ErrorCode
	}{
		{status: http.StatusUnauthorized, wantCode: ErrCodeSessionExpired},
		{status: http.StatusForbidden, wantCode: ErrCodeForbidden},
		{status: http.StatusNotFound, wantCode: ErrCodeNotFound},
		{status: http.StatusConflict, wantCode: ErrCodeConflict},
		{status: http.StatusBadRequest, wantCode: ErrCodeValidation},
		{status: http.StatusUnprocessableEntity, wantCode: ErrCodeValidation},
		{status: http.StatusTooManyRequests, wantCode: ErrCodeRateLimited},
		{status: http.StatusGatewayTimeout, wantCode: ErrCodeTimeout},
		{status: http.StatusInternalServerError, wantCode: ErrCodeUnavailable},
		{status: http.StatusTeapot, wantCode: ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := MapHTTPError(&StatusError{Status: tt.status, Method: http.MethodGet, Path: "/notes/"}, nil)
			if !IsAppError(err, tt.wantCode) {
				t.Errorf("MapHTTPError(%d) code = %v, want %v", tt.status, GetCode(err), tt.wantCode)
			}
			if got := HTTPStatus(err); got != tt.status {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.status)
			}
		})
	}
}

func TestMapHTTPError_DetailOverridesMessage(t *testing.T) {
	err := MapHTTPError(&StatusError{Status: http.StatusBadRequest, Detail: "Email already used"}, nil)

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Message != "Email already used" {
		t.Errorf("Message = %q, want backend detail", appErr.Message)
	}
	if Detail(err) != "Email already used" {
		t.Errorf("Detail() = %q", Detail(err))
	}
}

func TestParseDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "empty", body: "", want: ""},
		{name: "detail string", body: `{"detail":"Compte pas encore activé"}`, want: "Compte pas encore activé"},
		{name: "message", body: `{"message":"bad credentials"}`, want: "bad credentials"},
		{name: "validation list", body: `{"detail":[{"msg":"field required"},{"msg":"too short"}]}`, want: "field required; too short"},
		{name: "plain text", body: "Internal Server Error\n", want: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseDetail([]byte(tt.body)); got != tt.want {
				t.Errorf("ParseDetail() = %q, want %q", got, tt.want)
			}
		})
	}
}
