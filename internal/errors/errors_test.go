package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err:  &AppError{Code: ErrCodeForbidden, Message: "admins only"},
			want: "admins only",
		},
		{
			name: "error with cause",
			err:  Wrap(errors.New("connection refused"), ErrCodeUnavailable, "backend unreachable"),
			want: "backend unreachable: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(cause, ErrCodeStorageUnavailable, "persist session")

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if Wrap(nil, ErrCodeInternal, "noop") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestPredicates_ThroughWrapping(t *testing.T) {
	base := Wrap(errors.New("401"), ErrCodeSessionExpired, "session expired")
	wrapped := fmt.Errorf("list notes: %w", base)

	if !IsSessionExpired(wrapped) {
		t.Error("IsSessionExpired should see through fmt.Errorf wrapping")
	}
	if IsForbidden(wrapped) {
		t.Error("IsForbidden matched a session-expired error")
	}
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name  string
		code  ErrorCode
		check func(error) bool
	}{
		{"not found", ErrCodeNotFound, IsNotFound},
		{"conflict", ErrCodeConflict, IsConflict},
		{"validation", ErrCodeValidation, IsValidation},
		{"internal", ErrCodeInternal, IsInternal},
		{"timeout", ErrCodeTimeout, IsTimeout},
		{"canceled", ErrCodeCanceled, IsCanceled},
		{"unauthenticated", ErrCodeUnauthenticated, IsUnauthenticated},
		{"forbidden", ErrCodeForbidden, IsForbidden},
		{"session expired", ErrCodeSessionExpired, IsSessionExpired},
		{"storage unavailable", ErrCodeStorageUnavailable, IsStorageUnavailable},
		{"rate limited", ErrCodeRateLimited, IsRateLimited},
		{"unavailable", ErrCodeUnavailable, IsUnavailable},
	}

	other := errors.New("plain")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(&AppError{Code: tt.code, Message: "m"}) {
				t.Errorf("predicate returned false for code %s", tt.code)
			}
			if tt.check(other) {
				t.Error("predicate matched a non-AppError")
			}
			if tt.check(nil) {
				t.Error("predicate matched nil")
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	if err := RateLimited("slow down"); !IsRateLimited(err) || err.Message != "slow down" {
		t.Errorf("RateLimited() = %+v", err)
	}
	if err := Internal("boom"); !IsInternal(err) {
		t.Errorf("Internal() = %+v", err)
	}
}

func TestGetField(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "validation field", err: ValidationField("email", "email is required"), want: "email"},
		{name: "wrapped", err: fmt.Errorf("login: %w", ValidationField("password", "too short")), want: "password"},
		{name: "no field", err: Internal("boom"), want: ""},
		{name: "plain error", err: errors.New("x"), want: ""},
		{name: "nil", err: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetField(tt.err); got != tt.want {
				t.Errorf("GetField() = %q, want %q", got, tt.want)
			}
		})
	}
}
