package tool

import (
	"errors"
	"fmt"
	"testing"

	"seeker/internal/domain"
)

func TestClassifyToolErrorNil(t *testing.T) {
	if classifyToolError(nil) {
		t.Error("nil error classified as retryable")
	}
}

func TestClassifyToolErrorSentinels(t *testing.T) {
	retryable := []error{
		domain.ErrTimeout,
		domain.ErrProviderError,
		domain.ErrRateLimit,
		fmt.Errorf("wrapped: %w", domain.ErrTimeout),
		domain.NewDomainError("Backend.Search", domain.ErrRateLimit, "429"),
	}
	for _, err := range retryable {
		if !classifyToolError(err) {
			t.Errorf("%v should be retryable", err)
		}
	}

	permanent := []error{
		domain.ErrInvalidInput,
		domain.ErrAuthInvalid,
		errors.New("no such tool"),
	}
	for _, err := range permanent {
		if classifyToolError(err) {
			t.Errorf("%v should not be retryable", err)
		}
	}
}

func TestClassifyToolErrorPatterns(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"dial tcp: connection refused", true},
		{"read: connection reset by peer", true},
		{"lookup api.example: no such host", true},
		{"context deadline exceeded", true},
		{"503 Service Unavailable", true},
		{"Too Many Requests", true},
		{"invalid request body", false},
		{"unauthorized", false},
	}
	for _, tt := range tests {
		if got := classifyToolError(errors.New(tt.msg)); got != tt.want {
			t.Errorf("classifyToolError(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}
