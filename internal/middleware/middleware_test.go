package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"meeting-scheduler-api/internal/middleware"
)

func ok(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusNoContent)
}

func hit(h httprouter.Handle, remote string) int {
	req := httptest.NewRequest(http.MethodPost, "/meetings", nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h(rec, req, nil)
	return rec.Code
}

func TestRateLimitBurst(t *testing.T) {
	rl := middleware.NewRateLimiter(0.001, 2)
	h := middleware.RateLimit(rl, ok)

	for i := 0; i < 2; i++ {
		if code := hit(h, "10.0.0.1:1234"); code != http.StatusNoContent {
			t.Fatalf("request %d: expected 204, got %d", i, code)
		}
	}
	if code := hit(h, "10.0.0.1:5678"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", code)
	}

	// buckets are per client ip, not per connection
	if code := hit(h, "10.0.0.2:1234"); code != http.StatusNoContent {
		t.Errorf("other client: expected 204, got %d", code)
	}
}

func TestRateLimitNil(t *testing.T) {
	h := middleware.RateLimit(nil, ok)
	for i := 0; i < 50; i++ {
		if code := hit(h, "10.0.0.1:1"); code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", code)
		}
	}
}

func TestSweepEvictsIdleClients(t *testing.T) {
	rl := middleware.NewRateLimiter(1, 1)
	h := middleware.RateLimit(rl, ok)
	hit(h, "10.0.0.1:1")
	hit(h, "10.0.0.2:1")
	if rl.Len() != 2 {
		t.Fatalf("expected 2 clients, got %d", rl.Len())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rl.Sweep(ctx, 5*time.Millisecond, time.Nanosecond)
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for rl.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if rl.Len() != 0 {
		t.Errorf("expected idle clients evicted, %d left", rl.Len())
	}
}

func TestLoggingAssignsRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	var seen string
	h := middleware.Logging(zap.New(core), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.RequestID(r.Context())
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/meetings", nil))

	if seen == "" {
		t.Fatal("request id not set in context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != seen {
		t.Errorf("header %q != context %q", got, seen)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusCreated) {
		t.Errorf("expected status 201 logged, got %v", fields["status"])
	}
	if fields["request_id"] != seen {
		t.Errorf("expected request_id %s, got %v", seen, fields["request_id"])
	}
}

func TestLoggingKeepsClientRequestID(t *testing.T) {
	h := middleware.Logging(zap.NewNop(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/meetings", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("expected client id echoed, got %q", got)
	}
}

func TestLoggingLevels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	h := middleware.Logging(zap.New(core), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	if n := logs.FilterLevelExact(zap.WarnLevel).Len(); n != 1 {
		t.Errorf("expected 4xx logged at warn, got %d warn entries", n)
	}
}
