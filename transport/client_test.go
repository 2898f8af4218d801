package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/teamsync/sessioncore/navigate"
	"github.com/teamsync/sessioncore/token"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *token.MemoryStore, *navigate.Recorder) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := token.NewMemoryStore()
	rec := &navigate.Recorder{}

	client, err := NewClient(Config{BaseURL: srv.URL}, tokens, navigate.NewOnce(rec))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client, tokens, rec
}

func TestClient_BearerHeaderRoundTrip(t *testing.T) {
	var gotAuth string
	client, tokens, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))

	tokens.Set("abc123")
	if err := client.Get(context.Background(), "/user/current", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if gotAuth != "Bearer abc123" {
		t.Errorf("Authorization = %q, want Bearer abc123", gotAuth)
	}

	tokens.Clear()
	if err := client.Get(context.Background(), "/user/current", nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization after Clear = %q, want no header", gotAuth)
	}
}

func TestClient_DecodesResponse(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"id":"u1","name":"Ada"}}`))
	}))

	var out struct {
		User struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"user"`
	}
	if err := client.Get(context.Background(), "/user/current", &out); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if out.User.ID != "u1" || out.User.Name != "Ada" {
		t.Errorf("decoded user = %+v", out.User)
	}
}

func TestClient_UnauthorizedRedirects(t *testing.T) {
	client, tokens, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errorCode":"ACCESS_UNAUTHORIZED","message":"session expired"}`))
	}))
	tokens.Set("stale")

	err := client.Get(context.Background(), "/user/current", nil)
	if !errors.Is(err, ErrSessionInvalid) {
		t.Fatalf("Get() error = %v, want ErrSessionInvalid", err)
	}
	if rec.Homes() != 1 {
		t.Errorf("Homes() = %d, want 1", rec.Homes())
	}
	if got := tokens.Get(); got != "" {
		t.Errorf("token after unauthorized = %q, want cleared", got)
	}
}

func TestClient_ConcurrentUnauthorizedSingleRedirect(t *testing.T) {
	client, _, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errorCode":"ACCESS_UNAUTHORIZED","message":"session expired"}`))
	}))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			client.Get(context.Background(), "/user/current", nil)
		}()
	}
	wg.Wait()

	if rec.Homes() != 1 {
		t.Errorf("Homes() = %d, want exactly 1 effective redirect", rec.Homes())
	}
}

func TestClient_NormalizesOtherErrors(t *testing.T) {
	client, _, rec := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errorCode":"TASK_NOT_FOUND","message":"no such task"}`))
	}))

	err := client.Get(context.Background(), "/task/t1", nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Get() error = %T, want *APIError", err)
	}
	if apiErr.ErrorCode != "TASK_NOT_FOUND" {
		t.Errorf("ErrorCode = %q, want TASK_NOT_FOUND", apiErr.ErrorCode)
	}
	if rec.Homes() != 0 {
		t.Error("transient error triggered a redirect")
	}
}

func TestClient_MissingCodeNormalizesToUnknown(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	}))

	err := client.Get(context.Background(), "/task", nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Get() error = %T, want *APIError", err)
	}
	if apiErr.ErrorCode != CodeUnknown {
		t.Errorf("ErrorCode = %q, want %q", apiErr.ErrorCode, CodeUnknown)
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	tokens := token.NewMemoryStore()
	client, err := NewClient(Config{BaseURL: "http://127.0.0.1:1"}, tokens, &navigate.Recorder{})
	if err != nil {
		t.Fatal(err)
	}

	err = client.Get(context.Background(), "/user/current", nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Get() error = %T, want *APIError", err)
	}
	if apiErr.ErrorCode != CodeUnknown {
		t.Errorf("ErrorCode = %q, want %q", apiErr.ErrorCode, CodeUnknown)
	}
	if apiErr.Status != 0 {
		t.Errorf("Status = %d, want 0 for network failure", apiErr.Status)
	}
}

func TestClient_RequestIDAttached(t *testing.T) {
	var gotID string
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	}))

	if err := client.Get(context.Background(), "/user/current", nil); err != nil {
		t.Fatal(err)
	}
	if gotID == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{}, token.NewMemoryStore(), &navigate.Recorder{})
	if !errors.Is(err, ErrMissingBaseURL) {
		t.Errorf("NewClient() error = %v, want %v", err, ErrMissingBaseURL)
	}
}
