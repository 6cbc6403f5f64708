package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/stevqa/stabprobe/internal/config"
	"github.com/stevqa/stabprobe/internal/dockerlog"
	"github.com/stevqa/stabprobe/internal/logging"
	"github.com/stevqa/stabprobe/internal/notify"
	"github.com/stevqa/stabprobe/internal/probe"
	"github.com/stevqa/stabprobe/internal/report"
	"github.com/stevqa/stabprobe/internal/scheduler"
	"github.com/stevqa/stabprobe/internal/stats"
)

const (
	exitOK     = 0
	exitFailed = 1 // threshold missed or report lost
	exitConfig = 2 // misconfiguration, nothing probed
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()

	def := config.Defaults()
	var (
		urlFlag = flag.String("url", def.URL, "target URL to probe (required)")
		durFlag = flag.Duration("duration", def.Duration, "total observation window, e.g. 60s")
		intFlag = flag.Duration("interval", def.Interval, "probe cadence, e.g. 2s")
		expFlag = flag.String("expected", def.Expected, "exact response body required for success")
		toFlag  = flag.Duration("timeout", def.Timeout, "per-probe timeout (default: interval, capped at 10s)")
		outFlag = flag.String("out", def.OutPath, "report path (empty writes to stdout)")
		ctrFlag = flag.String("container", def.Container, "docker container to capture logs from")
		minFlag = flag.Float64("min-availability", def.MinAvailability, "fail (exit 1) below this availability percent; negative disables")
		logFlag = flag.String("log-dir", def.LogDir, "directory for run logs")
	)
	flag.Parse()

	cfg := config.RunConfig{
		URL:             *urlFlag,
		Duration:        *durFlag,
		Interval:        *intFlag,
		Expected:        *expFlag,
		Timeout:         *toFlag,
		OutPath:         *outFlag,
		Container:       *ctrFlag,
		MinAvailability: *minFlag,
		LogDir:          *logFlag,
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		return exitConfig
	}

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		return exitConfig
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prober := probe.NewHTTPProber(cfg.Timeout, cfg.Expected)
	runner := scheduler.NewRunner(logger, prober, scheduler.SystemClock{})
	runner.Diagnose = probe.ClassifyDNS

	outcomes, err := runner.Run(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		return exitConfig
	}

	st := stats.Aggregate(outcomes)
	logger.Info("run_aggregated",
		zap.Int("total_probes", st.TotalProbes),
		zap.Int("successful_probes", st.SuccessfulProbes),
		zap.Float64("availability_pct", st.AvailabilityPct),
	)

	// Post-run work uses a fresh context: a SIGINT that ended the loop must
	// not also kill log capture or the report, partial-run evidence counts.
	postCtx := context.Background()

	var logs *string
	if cfg.Container != "" {
		text, err := dockerlog.NewCLI(0).Collect(postCtx, cfg.Container)
		if err != nil {
			logger.Warn("log_collection_failed",
				zap.String("container", cfg.Container),
				zap.Error(err),
			)
		} else {
			logs = &text
		}
	}

	rep := report.Build(cfg, outcomes, st, logs)

	if cfg.OutPath == "" {
		if err := rep.Write(os.Stdout); err != nil {
			logger.Error("report_write_failed", zap.Error(err))
			return exitFailed
		}
	} else if err := rep.SaveOrDump(cfg.OutPath, os.Stdout); err != nil {
		logger.Error("report_write_failed",
			zap.String("path", cfg.OutPath),
			zap.Error(err),
		)
		return exitFailed
	} else {
		logger.Info("report_written", zap.String("path", cfg.OutPath))
	}

	if cfg.MinAvailability >= 0 && st.AvailabilityPct < cfg.MinAvailability {
		logger.Warn("threshold_missed",
			zap.Float64("availability_pct", st.AvailabilityPct),
			zap.Float64("threshold_pct", cfg.MinAvailability),
		)
		if s := notify.NewSlack(os.Getenv("SLACK_WEBHOOK")); s != nil {
			text := fmt.Sprintf("URL: %s\nAvailability: %.2f%% (threshold %.2f%%)\nProbes: %d/%d successful",
				cfg.URL, st.AvailabilityPct, cfg.MinAvailability, st.SuccessfulProbes, st.TotalProbes)
			if err := s.Send(postCtx, "🔴 Stability run below threshold", text); err != nil {
				logger.Warn("notify_failed", zap.Error(err))
			}
		}
		return exitFailed
	}
	return exitOK
}
