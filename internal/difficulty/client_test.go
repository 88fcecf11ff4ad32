package difficulty

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestLookupSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("postalCode"); got != "1000" {
			t.Errorf("postalCode = %q, want 1000", got)
		}
		if got := r.URL.Query().Get("streetName"); got != "Rue de la Loi" {
			t.Errorf("streetName = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":1.91343466063764,"error":null,"code":"SUCCESS"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	env, err := client.Lookup(context.Background(), 1000, "Rue de la Loi", "16")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	if !env.Success {
		t.Error("Success = false")
	}
	if env.Code != CodeSuccess {
		t.Errorf("Code = %q, want SUCCESS", env.Code)
	}
	if env.Data == nil || *env.Data != 1.91343466063764 {
		t.Errorf("Data = %v", env.Data)
	}
}

func TestLookupNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"data":null,"error":"address not found","code":"NOT_FOUND"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	env, err := client.Lookup(context.Background(), 1000, "Nowhere Street", "1")
	if err != nil {
		t.Fatalf("service-level failure should not be a transport error: %v", err)
	}

	if env.Success {
		t.Error("Success = true for a NOT_FOUND response")
	}
	if env.Code != CodeNotFound {
		t.Errorf("Code = %q, want NOT_FOUND", env.Code)
	}
	if env.Error == nil || *env.Error != "address not found" {
		t.Errorf("Error = %v", env.Error)
	}
}

func TestLookupInsufficientQueryIsLocal(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	cases := []struct {
		postalCode   int
		streetName   string
		streetNumber string
	}{
		{0, "Rue de la Loi", "16"},
		{1000, "", "16"},
		{1000, "Rue de la Loi", ""},
		{1000, "   ", "16"},
	}

	for _, tc := range cases {
		env, err := client.Lookup(context.Background(), tc.postalCode, tc.streetName, tc.streetNumber)
		if err != nil {
			t.Fatalf("Lookup(%+v) error = %v", tc, err)
		}
		if env.Code != CodeInsufficientQuery {
			t.Errorf("Lookup(%+v) Code = %q, want INSUFFICIENT_QUERY", tc, env.Code)
		}
	}

	if got := requests.Load(); got != 0 {
		t.Errorf("incomplete addresses hit the network %d times", got)
	}
}

func TestLookupRetriesTransportFailures(t *testing.T) {
	var attempts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			// Kill the connection without a response
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Fatal("hijacking unsupported")
			}
			conn, _, _ := hj.Hijack()
			_ = conn.Close()
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":0.5,"error":null,"code":"SUCCESS"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.RetryDelay = 10 * time.Millisecond

	env, err := client.Lookup(context.Background(), 1000, "Rue Haute", "5")
	if err != nil {
		t.Fatalf("Lookup() after retries error = %v", err)
	}
	if env.Code != CodeSuccess {
		t.Errorf("Code = %q, want SUCCESS", env.Code)
	}
	if got := attempts.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestLookupGivesUpAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Fatal("hijacking unsupported")
		}
		conn, _, _ := hj.Hijack()
		_ = conn.Close()
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.MaxRetries = 1
	client.RetryDelay = 5 * time.Millisecond

	if _, err := client.Lookup(context.Background(), 1000, "Rue Haute", "5"); err == nil {
		t.Error("persistent transport failure should surface as an error")
	}
}

func TestLookupMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway timeout</html>`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.MaxRetries = 0

	if _, err := client.Lookup(context.Background(), 1000, "Rue Haute", "5"); err == nil {
		t.Error("malformed body should surface as an error")
	}
}

func TestLookupDefaultsUnknownCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"data":null,"error":"??"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	env, err := client.Lookup(context.Background(), 1000, "Rue Haute", "5")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if env.Code != CodeUnknownError {
		t.Errorf("Code = %q, want UNKNOWN_ERROR fallback", env.Code)
	}
}
