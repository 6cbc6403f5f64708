package scheduler

import (
	"context"

	"go.uber.org/zap"

	"github.com/stevqa/stabprobe/internal/config"
	"github.com/stevqa/stabprobe/internal/probe"
)

// Runner drives the prober at a fixed cadence over a fixed window. One probe
// is in flight at a time; a failing probe is recorded and the loop continues.
type Runner struct {
	Logger *zap.Logger
	Prober probe.Prober
	Clock  Clock

	// Diagnose, when set, classifies the target's DNS the first time a probe
	// fails with a connection error. Log-side only; outcomes are unchanged.
	Diagnose func(host string) string
}

func NewRunner(logger *zap.Logger, p probe.Prober, clk Clock) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clk == nil {
		clk = SystemClock{}
	}
	return &Runner{Logger: logger, Prober: p, Clock: clk}
}

// Run executes the probe loop and returns the outcomes in probe order.
// It returns an error only on misconfiguration, before any probe runs.
// Only expiry of cfg.Duration or ctx cancellation ends the loop, and a
// cancelled run still returns everything collected so far.
//
// Ticks are anchored to wall clock: each sleep subtracts the time the probe
// spent, so cadence does not drift with probe latency. A probe slower than
// the interval makes the next tick fire immediately, with no catch-up burst.
func (r *Runner) Run(ctx context.Context, cfg config.RunConfig) ([]probe.Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := r.Clock.Now()
	outcomes := make([]probe.Outcome, 0, int(cfg.Duration/cfg.Interval)+1)
	diagnosed := false

	r.Logger.Info("run_started",
		zap.String("url", cfg.URL),
		zap.Duration("duration", cfg.Duration),
		zap.Duration("interval", cfg.Interval),
	)

	for {
		tick := r.Clock.Now()
		out := r.Prober.Probe(ctx, cfg.URL)
		outcomes = append(outcomes, out)
		r.logOutcome(out)

		if !diagnosed && r.Diagnose != nil && out.Error != nil && *out.Error == probe.ErrConnection {
			diagnosed = true
			r.Logger.Info("dns_diagnosis",
				zap.String("url", cfg.URL),
				zap.String("class", r.Diagnose(probe.HostOf(cfg.URL))),
			)
		}

		if ctx.Err() != nil {
			r.Logger.Info("run_cancelled", zap.Int("probes", len(outcomes)))
			return outcomes, nil
		}

		// Stop once no further full interval fits in the window.
		if r.Clock.Now().Sub(start)+cfg.Interval > cfg.Duration {
			break
		}

		busy := r.Clock.Now().Sub(tick)
		r.Clock.Sleep(ctx, cfg.Interval-busy)

		if ctx.Err() != nil {
			r.Logger.Info("run_cancelled", zap.Int("probes", len(outcomes)))
			return outcomes, nil
		}
	}

	r.Logger.Info("run_completed",
		zap.Int("probes", len(outcomes)),
		zap.Duration("elapsed", r.Clock.Now().Sub(start)),
	)
	return outcomes, nil
}

func (r *Runner) logOutcome(out probe.Outcome) {
	fields := []zap.Field{
		zap.Bool("success", out.Success),
		zap.Float64("latency_ms", out.LatencyMS),
		zap.Time("at", out.Timestamp),
	}
	if out.StatusCode != nil {
		fields = append(fields, zap.Int("status", *out.StatusCode))
	}
	if out.Error != nil {
		fields = append(fields, zap.String("error", *out.Error))
	}
	if out.Success {
		r.Logger.Debug("probe_done", fields...)
	} else {
		r.Logger.Warn("probe_failed", fields...)
	}
}
