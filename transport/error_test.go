package transport

import (
	"errors"
	"fmt"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		wantMsg  string
	}{
		{
			name:     "code and message",
			status:   409,
			body:     `{"errorCode":"TASK_CONFLICT","message":"task already exists"}`,
			wantCode: "TASK_CONFLICT",
			wantMsg:  "task already exists",
		},
		{
			name:     "missing code normalizes to unknown",
			status:   500,
			body:     `{"message":"boom"}`,
			wantCode: CodeUnknown,
			wantMsg:  "boom",
		},
		{
			name:     "empty code normalizes to unknown",
			status:   400,
			body:     `{"errorCode":"","message":"bad"}`,
			wantCode: CodeUnknown,
			wantMsg:  "bad",
		},
		{
			name:     "non-JSON body",
			status:   502,
			body:     "Bad Gateway",
			wantCode: CodeUnknown,
			wantMsg:  "Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := Normalize(tt.status, []byte(tt.body))
			if apiErr.ErrorCode != tt.wantCode {
				t.Errorf("ErrorCode = %q, want %q", apiErr.ErrorCode, tt.wantCode)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
			if apiErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.status)
			}
		})
	}
}

func TestNormalize_KeepsExtraPayloadFields(t *testing.T) {
	apiErr := Normalize(400, []byte(`{"errorCode":"VALIDATION_ERROR","message":"invalid","field":"emoji"}`))
	if apiErr.Details["field"] != "emoji" {
		t.Errorf("Details[field] = %v, want emoji", apiErr.Details["field"])
	}
	if _, ok := apiErr.Details["errorCode"]; ok {
		t.Error("errorCode duplicated into Details")
	}
}

func TestIsUnauthorized(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "session invalid sentinel", err: ErrSessionInvalid, want: true},
		{name: "wrapped sentinel", err: fmt.Errorf("fetch: %w", ErrSessionInvalid), want: true},
		{name: "unauthorized payload", err: &APIError{ErrorCode: CodeUnauthorized}, want: true},
		{name: "other payload", err: &APIError{ErrorCode: "NOT_FOUND"}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUnauthorized(tt.err); got != tt.want {
				t.Errorf("IsUnauthorized() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNetworkError(t *testing.T) {
	apiErr := NetworkError(errors.New("dial tcp: connection refused"))
	if apiErr.ErrorCode != CodeUnknown {
		t.Errorf("ErrorCode = %q, want %q", apiErr.ErrorCode, CodeUnknown)
	}
	if apiErr.Status != 0 {
		t.Errorf("Status = %d, want 0", apiErr.Status)
	}
}
