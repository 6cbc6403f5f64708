package probe

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

// HTTPProber issues one GET per probe and classifies the result. Expected,
// when non-empty, is the exact body the target must return for the probe to
// count as successful.
type HTTPProber struct {
	Client   *http.Client
	Expected string
}

func NewHTTPProber(timeout time.Duration, expected string) *HTTPProber {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProber{
		Client:   &http.Client{Timeout: timeout},
		Expected: expected,
	}
}

func (p *HTTPProber) Probe(ctx context.Context, target string) Outcome {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return failed(start, ErrOther)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return failed(start, classify(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	latency := time.Since(start).Seconds() * 1000 // ms
	sc := resp.StatusCode

	out := Outcome{
		Timestamp:  start.UTC(),
		StatusCode: &sc,
		LatencyMS:  latency,
	}
	if err != nil {
		class := classify(err)
		out.Error = &class
		return out
	}
	if p.Expected != "" && string(body) != p.Expected {
		class := ErrUnexpectedResponse
		out.Error = &class
		return out
	}
	out.Success = true
	return out
}

func failed(start time.Time, class string) Outcome {
	return Outcome{
		Timestamp: start.UTC(),
		LatencyMS: time.Since(start).Seconds() * 1000,
		Error:     &class,
	}
}

// classify maps a transport error to one of the outcome error classes.
// Timeouts are checked before the generic url.Error case because the
// client wraps them in one.
func classify(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ErrTimeout
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return ErrConnection
	}
	return ErrOther
}
