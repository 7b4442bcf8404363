package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/football-dashboard/internal/usecase"
)

func TestWriteSuccess_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatalf("expected data key in success response")
	}
	if _, ok := body["error"]; ok {
		t.Fatalf("did not expect error key in success response")
	}
}

func TestWriteError_GoogleEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("expected apiVersion=2.0, got %v", body["apiVersion"])
	}
	errorObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response")
	}
	if got, _ := errorObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected error status INVALID_ARGUMENT, got %v", errorObj["status"])
	}
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantReason  string
		wantMessage string
	}{
		{
			name:        "invalid input drops sentinel prefix",
			err:         fmt.Errorf("%w: Email and password are required", usecase.ErrInvalidInput),
			wantStatus:  http.StatusBadRequest,
			wantReason:  "invalidInput",
			wantMessage: "Email and password are required",
		},
		{
			name:        "already exists is a bad request",
			err:         fmt.Errorf("%w: User already exists", usecase.ErrAlreadyExists),
			wantStatus:  http.StatusBadRequest,
			wantReason:  "alreadyExists",
			wantMessage: "User already exists",
		},
		{
			name:        "wrapped dependency failure",
			err:         fmt.Errorf("aggregate teams: %w", fmt.Errorf("%w: every teams source failed (PL)", usecase.ErrDependencyUnavailable)),
			wantStatus:  http.StatusServiceUnavailable,
			wantReason:  "dependencyUnavailable",
			wantMessage: "aggregate teams: dependency unavailable: every teams source failed (PL)",
		},
		{
			name:        "upstream bad request passes through",
			err:         fmt.Errorf("list matches: %w", &usecase.UpstreamError{Provider: "football-data", StatusCode: http.StatusBadRequest, Body: "bad filter"}),
			wantStatus:  http.StatusBadRequest,
			wantReason:  "upstreamRejected",
			wantMessage: "list matches: football-data error: status 400: bad filter",
		},
		{
			name:        "upstream outage is a bad gateway",
			err:         &usecase.UpstreamError{Provider: "api-football", StatusCode: http.StatusServiceUnavailable},
			wantStatus:  http.StatusBadGateway,
			wantReason:  "upstreamError",
			wantMessage: "api-football error: status 503",
		},
		{
			name:        "unknown errors stay generic",
			err:         fmt.Errorf("dial tcp 10.0.0.5:5432: connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantReason:  "internalError",
			wantMessage: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(context.Background(), tt.err)
			if got.HTTPStatus != tt.wantStatus {
				t.Fatalf("status=%d want=%d", got.HTTPStatus, tt.wantStatus)
			}
			if got.Reason != tt.wantReason {
				t.Fatalf("reason=%q want=%q", got.Reason, tt.wantReason)
			}
			if got.Message != tt.wantMessage {
				t.Fatalf("message=%q want=%q", got.Message, tt.wantMessage)
			}
		})
	}
}
