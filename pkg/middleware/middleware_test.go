package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	apperrors "smartgym/pkg/errors"
	httputil "smartgym/pkg/http"
	"smartgym/pkg/logger"
)

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apperrors.ErrorResponse {
	t.Helper()
	var resp apperrors.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode error body %q: %v", w.Body.String(), err)
	}
	return resp
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRecovery(t *testing.T) {
	h := Recovery(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if resp := decodeError(t, w); resp.Code != apperrors.CodeInternal {
		t.Errorf("code = %s, want %s", resp.Code, apperrors.CodeInternal)
	}
}

func TestRequestLogging_RequestID(t *testing.T) {
	const incoming = "0f8fad5b-d9cb-469f-a165-70867728950e"

	tests := []struct {
		name   string
		header string
		reused bool
	}{
		{name: "generated when absent", header: "", reused: false},
		{name: "reused when valid", header: incoming, reused: true},
		{name: "replaced when malformed", header: "not-an-id", reused: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := RequestLogging(logger.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = RequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(RequestIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if seen == "" {
				t.Fatal("request id missing from context")
			}
			if got := w.Header().Get(RequestIDHeader); got != seen {
				t.Errorf("response header = %q, context = %q", got, seen)
			}
			if (seen == incoming) != tt.reused {
				t.Errorf("request id = %q, reused = %v", seen, tt.reused)
			}
		})
	}
}

func TestContentTypeValidation(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		contentType string
		wantStatus  int
	}{
		{name: "json post", method: http.MethodPost, contentType: "application/json", wantStatus: http.StatusOK},
		{name: "json with charset", method: http.MethodPost, contentType: "application/json; charset=utf-8", wantStatus: http.StatusOK},
		{name: "missing on post", method: http.MethodPost, contentType: "", wantStatus: http.StatusUnsupportedMediaType},
		{name: "form post", method: http.MethodPost, contentType: "application/x-www-form-urlencoded", wantStatus: http.StatusUnsupportedMediaType},
		{name: "get without header", method: http.MethodGet, contentType: "", wantStatus: http.StatusOK},
		{name: "delete without header", method: http.MethodDelete, contentType: "", wantStatus: http.StatusOK},
	}

	h := ContentTypeValidation(logger.Discard())(okHandler())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/bookings", strings.NewReader("{}"))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				if resp := decodeError(t, w); resp.Code != apperrors.CodeUnsupportedMedia {
					t.Errorf("code = %s, want %s", resp.Code, apperrors.CodeUnsupportedMedia)
				}
			}
		})
	}
}

func TestMaxRequestSize(t *testing.T) {
	decoding := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var v map[string]any
		if err := httputil.DecodeJSON(r, &v); err != nil {
			_ = httputil.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	h := MaxRequestSize(16)(decoding)

	t.Run("within limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`)))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
	})

	t.Run("declared length too large", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"note":"far too long for the limit"}`)))
		if w.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("status = %d, want 413", w.Code)
		}
	})

	t.Run("unknown length cut off while decoding", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"note":"far too long for the limit"}`))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("status = %d, want 413", w.Code)
		}
		if resp := decodeError(t, w); resp.Code != apperrors.CodePayloadTooLarge {
			t.Errorf("code = %s, want %s", resp.Code, apperrors.CodePayloadTooLarge)
		}
	})
}

func TestClientRateLimiter_Allow(t *testing.T) {
	limiter := NewClientRateLimiter(2, time.Minute, nil, logger.Discard())
	defer limiter.Stop()

	now := time.Date(2030, 1, 10, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	if !limiter.Allow("customer:alice") || !limiter.Allow("customer:alice") {
		t.Fatal("first two requests should be allowed")
	}
	if limiter.Allow("customer:alice") {
		t.Fatal("third request within the window should be rejected")
	}
	if !limiter.Allow("customer:bob") {
		t.Fatal("other clients are counted separately")
	}
	if !limiter.Allow("") {
		t.Fatal("empty key is never limited")
	}

	now = now.Add(time.Minute)
	if !limiter.Allow("customer:alice") {
		t.Fatal("request after the window should be allowed")
	}
}

func TestClientRateLimit_Rejects(t *testing.T) {
	limiter := NewClientRateLimiter(1, 30*time.Second, nil, logger.Discard())
	defer limiter.Stop()
	h := ClientRateLimit(limiter)(okHandler())

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
		req.Header.Set(CustomerIDHeader, " Alice ")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	if w := send(); w.Code != http.StatusOK {
		t.Fatalf("first status = %d, want 200", w.Code)
	}
	w := send()
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d, want 429", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "30" {
		t.Errorf("Retry-After = %q, want 30", got)
	}
	if resp := decodeError(t, w); resp.Code != apperrors.CodeRateLimited {
		t.Errorf("code = %s, want %s", resp.Code, apperrors.CodeRateLimited)
	}
}

func TestDefaultClientKeyExtractor(t *testing.T) {
	tests := []struct {
		name       string
		customer   string
		remoteAddr string
		want       string
	}{
		{name: "customer header wins", customer: " Alice@Gym.com ", remoteAddr: "10.0.0.1:5555", want: "customer:alice@gym.com"},
		{name: "remote host", customer: "", remoteAddr: "10.0.0.1:5555", want: "addr:10.0.0.1"},
		{name: "remote without port", customer: "", remoteAddr: "10.0.0.2", want: "addr:10.0.0.2"},
		{name: "nothing to key on", customer: "", remoteAddr: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.customer != "" {
				req.Header.Set(CustomerIDHeader, tt.customer)
			}
			if got := DefaultClientKeyExtractor(req); got != tt.want {
				t.Errorf("key = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIdempotency(t *testing.T) {
	var calls atomic.Int32
	created := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":` + strconv.Itoa(int(n)) + `}}`))
	})

	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()
	h := Idempotency(store, "")(created)

	send := func(method, path, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	first := send(http.MethodPost, "/api/v1/bookings", "k1")
	second := send(http.MethodPost, "/api/v1/bookings", "k1")

	if calls.Load() != 1 {
		t.Fatalf("handler called %d times, want 1", calls.Load())
	}
	if second.Code != http.StatusCreated || second.Body.String() != first.Body.String() {
		t.Errorf("replay = %d %q, want %d %q", second.Code, second.Body.String(), first.Code, first.Body.String())
	}
	if second.Header().Get("Idempotent-Replayed") != "true" {
		t.Error("replayed response should be marked")
	}

	send(http.MethodPost, "/api/v1/customers", "k1")
	if calls.Load() != 2 {
		t.Errorf("same key on another path should not replay, calls = %d", calls.Load())
	}

	send(http.MethodPost, "/api/v1/bookings", "")
	send(http.MethodGet, "/api/v1/bookings", "k1")
	if calls.Load() != 4 {
		t.Errorf("requests without key or with safe methods bypass the store, calls = %d", calls.Load())
	}
}

func TestIdempotency_KeyReusedWithDifferentBody(t *testing.T) {
	var calls atomic.Int32
	var seen []string
	created := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		body, _ := io.ReadAll(r.Body)
		seen = append(seen, string(body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":` + string(body) + `}`))
	})

	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()
	h := Idempotency(store, IdempotencyKeyHeader)(created)

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
		req.Header.Set(IdempotencyKeyHeader, "k1")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	first := send(`{"time":"10:00"}`)
	if first.Code != http.StatusCreated {
		t.Fatalf("first status = %d, want 201", first.Code)
	}
	if len(seen) != 1 || seen[0] != `{"time":"10:00"}` {
		t.Fatalf("handler should receive the full body, got %q", seen)
	}

	conflicting := send(`{"time":"11:00"}`)
	if conflicting.Code != http.StatusUnprocessableEntity {
		t.Fatalf("reused key status = %d, want 422", conflicting.Code)
	}
	if resp := decodeError(t, conflicting); resp.Code != apperrors.CodeIdempotencyReuse {
		t.Errorf("code = %s, want %s", resp.Code, apperrors.CodeIdempotencyReuse)
	}
	if conflicting.Header().Get("Idempotent-Replayed") != "" {
		t.Error("rejected request must not be marked as replayed")
	}

	replay := send(`{"time":"10:00"}`)
	if replay.Code != http.StatusCreated || replay.Body.String() != first.Body.String() {
		t.Errorf("replay = %d %q, want 201 %q", replay.Code, replay.Body.String(), first.Body.String())
	}
	if calls.Load() != 1 {
		t.Errorf("handler called %d times, want 1", calls.Load())
	}
}

func TestIdempotency_OversizedBody(t *testing.T) {
	var calls atomic.Int32
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()
	h := MaxRequestSize(8)(Idempotency(store, "")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{"time":"10:00"}`))
	req.ContentLength = -1
	req.Header.Set(IdempotencyKeyHeader, "k3")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", w.Code)
	}
	if calls.Load() != 0 {
		t.Errorf("handler should not run, calls = %d", calls.Load())
	}
}

func TestIdempotency_ErrorsAreNotCached(t *testing.T) {
	var calls atomic.Int32
	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = apperrors.WriteError(w, apperrors.TrainerBusy("mike", "2030-01-10 10:00"))
	})

	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()
	h := Idempotency(store, IdempotencyKeyHeader)(failing)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", nil)
		req.Header.Set(IdempotencyKeyHeader, "k2")
		h.ServeHTTP(httptest.NewRecorder(), req)
	}
	if calls.Load() != 2 {
		t.Errorf("handler called %d times, want 2", calls.Load())
	}
}

func TestInMemoryIdempotencyStore_Expiry(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	now := time.Date(2030, 1, 10, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	store.Set("k", &CachedResponse{StatusCode: http.StatusCreated})
	if _, ok := store.Get("k"); !ok {
		t.Fatal("fresh entry should be found")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := store.Get("k"); ok {
		t.Fatal("expired entry should be dropped")
	}
}

func TestRequestTimeout(t *testing.T) {
	t.Run("slow handler", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)
		slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
			<-release
			w.WriteHeader(http.StatusOK)
		})

		w := httptest.NewRecorder()
		RequestTimeout(20*time.Millisecond)(slow).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		if w.Code != http.StatusGatewayTimeout {
			t.Fatalf("status = %d, want 504", w.Code)
		}
		if resp := decodeError(t, w); resp.Code != apperrors.CodeTimeout {
			t.Errorf("code = %s, want %s", resp.Code, apperrors.CodeTimeout)
		}
	})

	t.Run("fast handler keeps its headers", func(t *testing.T) {
		fast := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{}`))
		})

		w := httptest.NewRecorder()
		RequestTimeout(time.Second)(fast).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", w.Code)
		}
		if got := w.Header().Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
	})
}
