package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestExecutor_CapturesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Test", "1")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	exec := NewExecutor()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}

	resp, err := exec.Do(context.Background(), req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	if resp.Status != http.StatusAccepted {
		t.Fatalf("status = %d", resp.Status)
	}
	if string(resp.BodyBytes) != "hello" {
		t.Fatalf("body = %q", resp.BodyBytes)
	}
	if resp.Headers.Get("X-Test") != "1" {
		t.Fatalf("headers = %v", resp.Headers)
	}
	if resp.Duration <= 0 {
		t.Fatalf("duration = %v", resp.Duration)
	}
}

func TestExecutor_TimeoutCancelsRequest(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	exec := NewExecutor(WithTimeout(50 * time.Millisecond))

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}

	if _, err := exec.Do(context.Background(), req); err == nil {
		t.Fatal("expected timeout error")
	}
}
