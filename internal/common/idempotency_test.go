package common

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
)

func idemHandler(t *testing.T) (http.Handler, *int) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	var hits int
	idem := Idem{R: client, TTL: time.Minute}
	return idem.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusCreated)
	})), &hits
}

func TestIdempotencyReplayRejected(t *testing.T) {
	h, hits := idemHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
	req.Header.Set("Idempotency-Key", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/bookings", nil)
	req.Header.Set("Idempotency-Key", "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on replay, got %d", rec.Code)
	}
	if *hits != 1 {
		t.Fatalf("handler must run once, ran %d times", *hits)
	}
}

func TestIdempotencyDistinctKeys(t *testing.T) {
	h, hits := idemHandler(t)
	for _, key := range []string{"key-a", "key-b"} {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		req.Header.Set("Idempotency-Key", key)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 for %s, got %d", key, rec.Code)
		}
	}
	if *hits != 2 {
		t.Fatalf("expected 2 handler runs, got %d", *hits)
	}
}

func TestIdempotencyWithoutHeaderPassesThrough(t *testing.T) {
	h, hits := idemHandler(t)
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bookings", nil))
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
	}
	if *hits != 2 {
		t.Fatalf("expected pass-through without key, got %d runs", *hits)
	}
}
