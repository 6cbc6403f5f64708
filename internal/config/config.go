package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// RunConfig is immutable for the duration of one run. It is built once from
// flags and environment, validated, and then only read.
type RunConfig struct {
	URL      string        // target to probe
	Duration time.Duration // total observation window
	Interval time.Duration // probe cadence
	Expected string        // exact-match body marker; empty disables the check
	Timeout  time.Duration // per-probe timeout

	OutPath         string  // report destination; empty writes to stdout
	Container       string  // docker container for log capture; empty disables
	LogDir          string  // directory for run logs
	MinAvailability float64 // pass threshold in percent; negative disables
}

// Defaults returns a RunConfig seeded from STABPROBE_* environment
// variables. Unset values stay zero and are expected to be filled by flags
// before Normalize/Validate.
func Defaults() RunConfig {
	cfg := RunConfig{
		URL:             os.Getenv("STABPROBE_URL"),
		Expected:        os.Getenv("STABPROBE_EXPECTED"),
		OutPath:         os.Getenv("STABPROBE_OUT"),
		Container:       os.Getenv("STABPROBE_CONTAINER"),
		LogDir:          os.Getenv("STABPROBE_LOG_DIR"),
		MinAvailability: -1,
	}
	if v := os.Getenv("STABPROBE_DURATION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Duration = d
		}
	}
	if v := os.Getenv("STABPROBE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Interval = d
		}
	}
	if v := os.Getenv("STABPROBE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("STABPROBE_MIN_AVAILABILITY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.MinAvailability = f
		}
	}
	return cfg
}

// Normalize fills derived defaults. The per-probe timeout defaults to the
// interval, capped at 10s, so one slow probe cannot eat more than roughly
// one tick unless the operator asks for it.
func (c *RunConfig) Normalize() {
	if c.Timeout <= 0 {
		c.Timeout = c.Interval
		if c.Timeout > 10*time.Second {
			c.Timeout = 10 * time.Second
		}
	}
	if c.LogDir == "" {
		c.LogDir = "logs"
	}
}

// Validate is the single gatekeeper for the configuration-error exit path.
// Nothing probes until it passes.
func (c RunConfig) Validate() error {
	u, err := url.ParseRequestURI(c.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid url %q (need http:// or https://)", c.URL)
	}
	if c.Duration <= 0 {
		return errors.New("duration must be > 0")
	}
	if c.Interval <= 0 {
		return errors.New("interval must be > 0")
	}
	if c.Interval > c.Duration {
		return fmt.Errorf("interval %s must not exceed duration %s", c.Interval, c.Duration)
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be > 0")
	}
	return nil
}
