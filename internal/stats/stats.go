package stats

import (
	"math"
	"sort"

	"github.com/stevqa/stabprobe/internal/probe"
)

// RunStatistics is derived once from an ordered outcome sequence and never
// mutated afterwards. Percentile fields are pointers so a run with no
// successful probe serializes them as JSON null.
type RunStatistics struct {
	TotalProbes      int      `json:"total_probes"`
	SuccessfulProbes int      `json:"successful_probes"`
	AvailabilityPct  float64  `json:"availability_pct"`
	P50LatencyMS     *float64 `json:"p50_latency_ms"`
	P95LatencyMS     *float64 `json:"p95_latency_ms"`
}

// Aggregate computes availability and latency percentiles over one run.
// Pure function: same outcomes in, same statistics out.
//
// Percentiles cover successful probes only and use the nearest-rank method
// (index ceil(p/100*n)-1 over the ascending-sorted latencies), the common
// monitoring convention for p50/p95. No interpolation.
func Aggregate(outcomes []probe.Outcome) RunStatistics {
	st := RunStatistics{TotalProbes: len(outcomes)}

	latencies := make([]float64, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Success {
			st.SuccessfulProbes++
			latencies = append(latencies, o.LatencyMS)
		}
	}

	// Empty input is a valid run with zero availability, not an error.
	if st.TotalProbes > 0 {
		st.AvailabilityPct = float64(st.SuccessfulProbes) / float64(st.TotalProbes) * 100
	}

	if len(latencies) > 0 {
		sort.Float64s(latencies)
		p50 := nearestRank(latencies, 50)
		p95 := nearestRank(latencies, 95)
		st.P50LatencyMS = &p50
		st.P95LatencyMS = &p95
	}
	return st
}

func nearestRank(sorted []float64, p float64) float64 {
	idx := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
