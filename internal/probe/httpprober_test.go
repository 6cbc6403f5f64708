package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPProber_StatusOK(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("OK"))
	}))
	defer s.Close()

	p := NewHTTPProber(2*time.Second, "")
	out := p.Probe(context.Background(), s.URL)
	if !out.Success {
		t.Fatalf("want success, got %+v", out)
	}
	if out.StatusCode == nil || *out.StatusCode != 200 {
		t.Fatalf("want status 200, got %v", out.StatusCode)
	}
	if out.Error != nil {
		t.Fatalf("want nil error on success, got %q", *out.Error)
	}
	if out.LatencyMS < 0 {
		t.Fatalf("latency should be >= 0, got %f", out.LatencyMS)
	}
	if out.Timestamp.IsZero() {
		t.Fatalf("timestamp should be set")
	}
}

func TestHTTPProber_ExpectedBodyMatch(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}))
	defer s.Close()

	p := NewHTTPProber(2*time.Second, "OK")
	out := p.Probe(context.Background(), s.URL)
	if !out.Success {
		t.Fatalf("want success on exact match, got %+v", out)
	}
}

func TestHTTPProber_ExpectedBodyMismatch(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("degraded"))
	}))
	defer s.Close()

	p := NewHTTPProber(2*time.Second, "OK")
	out := p.Probe(context.Background(), s.URL)
	if out.Success {
		t.Fatalf("want failure on mismatch, got %+v", out)
	}
	if out.Error == nil || *out.Error != ErrUnexpectedResponse {
		t.Fatalf("want %q, got %v", ErrUnexpectedResponse, out.Error)
	}
	if out.StatusCode == nil || *out.StatusCode != 200 {
		t.Fatalf("status should still be recorded, got %v", out.StatusCode)
	}
}

func TestHTTPProber_Server500WithoutExpectedIsSuccess(t *testing.T) {
	// Without an expected marker, any received response counts as reachable.
	// Pass/fail policy lives in the marker and the availability threshold.
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", 500)
	}))
	defer s.Close()

	p := NewHTTPProber(2*time.Second, "")
	out := p.Probe(context.Background(), s.URL)
	if !out.Success {
		t.Fatalf("want success, got %+v", out)
	}
	if out.StatusCode == nil || *out.StatusCode != 500 {
		t.Fatalf("want status 500 recorded, got %v", out.StatusCode)
	}
}

func TestHTTPProber_Timeout(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(200)
	}))
	defer s.Close()

	p := NewHTTPProber(50*time.Millisecond, "")
	out := p.Probe(context.Background(), s.URL)
	if out.Success {
		t.Fatalf("want failure due to timeout, got %+v", out)
	}
	if out.Error == nil || *out.Error != ErrTimeout {
		t.Fatalf("want %q, got %v", ErrTimeout, out.Error)
	}
	if out.StatusCode != nil {
		t.Fatalf("want nil status on transport failure, got %d", *out.StatusCode)
	}
}

func TestHTTPProber_ConnectionRefused(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := s.URL
	s.Close()

	p := NewHTTPProber(2*time.Second, "")
	out := p.Probe(context.Background(), url)
	if out.Success {
		t.Fatalf("want failure, got %+v", out)
	}
	if out.Error == nil || *out.Error != ErrConnection {
		t.Fatalf("want %q, got %v", ErrConnection, out.Error)
	}
	if out.StatusCode != nil {
		t.Fatalf("want nil status, got %d", *out.StatusCode)
	}
}

func TestHostOf(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"https://example.com/health", "example.com"},
		{"http://localhost:8000", "localhost"},
		{"not a url", "not a url"},
	}
	for _, c := range cases {
		if got := HostOf(c.in); got != c.want {
			t.Fatalf("HostOf(%q)=%q want %q", c.in, got, c.want)
		}
	}
}
