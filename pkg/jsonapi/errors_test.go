package jsonapi

import (
	"testing"
)

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        Error
		wantStatus int
		wantCode   string
	}{
		{"bad request", ErrBadRequest("x"), 400, "bad_request"},
		{"invalid parameter", ErrInvalidParameter("from", "x"), 400, "invalid_parameter"},
		{"invalid attribute", ErrInvalidAttribute("status", "x"), 400, "invalid_attribute"},
		{"unauthorized", ErrUnauthorized(""), 401, "unauthorized"},
		{"not found", ErrNotFoundWithID("event", "42"), 404, "not_found"},
		{"internal", ErrInternal(""), 500, "internal_error"},
		{"unavailable", ErrServiceUnavailable(""), 503, "service_unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("StatusCode() = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.wantCode)
			}
			if tt.err.Detail == "" {
				t.Error("Detail is empty")
			}
		})
	}
}

func TestErrInvalidParameter_Source(t *testing.T) {
	err := ErrInvalidParameter("status", "unknown status")

	if err.Source == nil || err.Source.Parameter != "status" {
		t.Errorf("Source = %+v, want parameter status", err.Source)
	}
	if err.Source.Pointer != "" {
		t.Errorf("Pointer = %q, want empty", err.Source.Pointer)
	}
}

func TestErrorBuilder(t *testing.T) {
	err := NewError(418, "teapot", "I'm a teapot").
		Detailf("brewing %d cups", 3).
		ID("req-1").
		Header("Accept").
		Meta("retry", true).
		Build()

	if err.Status != "418" || err.Detail != "brewing 3 cups" || err.ID != "req-1" {
		t.Errorf("Build() = %+v", err)
	}
	if err.Source.Header != "Accept" {
		t.Errorf("Source.Header = %q, want Accept", err.Source.Header)
	}
	if err.Meta["retry"] != true {
		t.Errorf("Meta[retry] = %v, want true", err.Meta["retry"])
	}
}

func TestStatusCode_Malformed(t *testing.T) {
	if got := (Error{Status: "abc"}).StatusCode(); got != 0 {
		t.Errorf("StatusCode() = %d, want 0", got)
	}
}
