package report

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"go.uber.org/multierr"

	"github.com/stevqa/stabprobe/internal/config"
	"github.com/stevqa/stabprobe/internal/probe"
	"github.com/stevqa/stabprobe/internal/stats"
)

// ConfigSnapshot is the run configuration as recorded in the report.
// Durations are flattened to seconds so the artifact reads the same from
// any tooling.
type ConfigSnapshot struct {
	URL             string  `json:"url"`
	DurationSeconds float64 `json:"duration_seconds"`
	IntervalSeconds float64 `json:"interval_seconds"`
	Expected        *string `json:"expected"`
}

// Report is the final artifact of one run, suitable for archival as QA
// evidence. Write-once: built after the loop reaches a terminal state.
type Report struct {
	Config        ConfigSnapshot      `json:"config"`
	Statistics    stats.RunStatistics `json:"statistics"`
	Outcomes      []probe.Outcome     `json:"outcomes"`
	CollectedLogs *string             `json:"collected_logs"`
	GeneratedAt   time.Time           `json:"generated_at"`
}

// Build assembles the report. Pure assembly apart from the generated_at
// timestamp; no network or filesystem access.
func Build(cfg config.RunConfig, outcomes []probe.Outcome, st stats.RunStatistics, logs *string) *Report {
	snap := ConfigSnapshot{
		URL:             cfg.URL,
		DurationSeconds: cfg.Duration.Seconds(),
		IntervalSeconds: cfg.Interval.Seconds(),
	}
	if cfg.Expected != "" {
		expected := cfg.Expected
		snap.Expected = &expected
	}
	if outcomes == nil {
		outcomes = []probe.Outcome{}
	}
	return &Report{
		Config:        snap,
		Statistics:    st,
		Outcomes:      outcomes,
		CollectedLogs: logs,
		GeneratedAt:   time.Now().UTC(),
	}
}

// Write serializes the report as indented JSON.
func (r *Report) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (r *Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = r.Write(f)
	return multierr.Append(err, f.Close())
}

// SaveOrDump writes the report to path, dumping it to fallback when the
// sink fails so the evidence is not silently lost. The sink error is always
// returned; a dump error is appended to it.
func (r *Report) SaveOrDump(path string, fallback io.Writer) error {
	err := r.WriteFile(path)
	if err == nil {
		return nil
	}
	return multierr.Append(err, r.Write(fallback))
}
