package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("no log output")
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	return entry
}

func TestLogger_StructuredOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "workspace fetched", Field{Key: "workspace_id", Value: "w1"})

	entry := decodeLine(t, &buf)
	if entry["msg"] != "workspace fetched" {
		t.Errorf("msg = %v, want workspace fetched", entry["msg"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
	if entry["workspace_id"] != "w1" {
		t.Errorf("workspace_id = %v, want w1", entry["workspace_id"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", &buf)

	logger.Info(context.Background(), "below threshold")
	if buf.Len() != 0 {
		t.Error("info entry written at warn level")
	}

	logger.Error(context.Background(), "above threshold")
	if buf.Len() == 0 {
		t.Error("error entry dropped at warn level")
	}
}

func TestLogger_RedactsCredentials(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("debug", &buf)

	logger.Info(context.Background(), "session started",
		Field{Key: "token", Value: "abc123"},
		Field{Key: "authorization", Value: "Bearer abc123"},
		Field{Key: "subject", Value: "u1"},
	)

	entry := decodeLine(t, &buf)
	if entry["token"] != "[REDACTED]" {
		t.Errorf("token = %v, want [REDACTED]", entry["token"])
	}
	if entry["authorization"] != "[REDACTED]" {
		t.Errorf("authorization = %v, want [REDACTED]", entry["authorization"])
	}
	if entry["subject"] != "u1" {
		t.Errorf("subject = %v, want u1", entry["subject"])
	}
}

func TestLogger_WithRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("debug", &buf)

	reqLogger := logger.WithRequest(RequestMeta{Method: "GET", Path: "/user/current", RequestID: "r1"})
	reqLogger.Debug(context.Background(), "request completed")

	entry := decodeLine(t, &buf)
	if entry["http.method"] != "GET" {
		t.Errorf("http.method = %v, want GET", entry["http.method"])
	}
	if entry["http.path"] != "/user/current" {
		t.Errorf("http.path = %v, want /user/current", entry["http.path"])
	}
	if entry["http.request_id"] != "r1" {
		t.Errorf("http.request_id = %v, want r1", entry["http.request_id"])
	}
}

func TestRequestMeta_SpanName(t *testing.T) {
	meta := RequestMeta{Method: "POST", Path: "/auth/logout"}
	if got := meta.SpanName(); got != "session.http.POST /auth/logout" {
		t.Errorf("SpanName() = %q", got)
	}
}
