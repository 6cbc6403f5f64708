package stats

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/stevqa/stabprobe/internal/probe"
)

func outcomesFrom(samples []sample) []probe.Outcome {
	out := make([]probe.Outcome, 0, len(samples))
	for _, s := range samples {
		o := probe.Outcome{
			Timestamp: time.Now().UTC(),
			Success:   s.up,
			LatencyMS: s.latencyMS,
		}
		if s.up {
			sc := 200
			o.StatusCode = &sc
		} else {
			class := probe.ErrConnection
			o.Error = &class
		}
		out = append(out, o)
	}
	return out
}

type sample struct {
	up        bool
	latencyMS float64
}

func genSamples() gopter.Gen {
	return gen.SliceOf(gopter.CombineGens(
		gen.Bool(),
		gen.Float64Range(0, 60000),
	).Map(func(vals []interface{}) sample {
		return sample{up: vals[0].(bool), latencyMS: vals[1].(float64)}
	}))
}

func TestPropertyAggregate(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 100
	props := gopter.NewProperties(params)

	props.Property("availability stays within [0,100] and is 0 without successes", prop.ForAll(
		func(samples []sample) bool {
			st := Aggregate(outcomesFrom(samples))
			if st.AvailabilityPct < 0 || st.AvailabilityPct > 100 {
				return false
			}
			if st.SuccessfulProbes == 0 && st.AvailabilityPct != 0 {
				return false
			}
			return true
		},
		genSamples(),
	))

	props.Property("p50 never exceeds p95", prop.ForAll(
		func(samples []sample) bool {
			st := Aggregate(outcomesFrom(samples))
			if st.P50LatencyMS == nil || st.P95LatencyMS == nil {
				return st.SuccessfulProbes == 0
			}
			return *st.P50LatencyMS <= *st.P95LatencyMS
		},
		genSamples(),
	))

	props.Property("aggregation is idempotent", prop.ForAll(
		func(samples []sample) bool {
			outcomes := outcomesFrom(samples)
			a := Aggregate(outcomes)
			b := Aggregate(outcomes)
			if a.TotalProbes != b.TotalProbes ||
				a.SuccessfulProbes != b.SuccessfulProbes ||
				a.AvailabilityPct != b.AvailabilityPct {
				return false
			}
			if (a.P50LatencyMS == nil) != (b.P50LatencyMS == nil) ||
				(a.P95LatencyMS == nil) != (b.P95LatencyMS == nil) {
				return false
			}
			if a.P50LatencyMS != nil && (*a.P50LatencyMS != *b.P50LatencyMS || *a.P95LatencyMS != *b.P95LatencyMS) {
				return false
			}
			return true
		},
		genSamples(),
	))

	props.TestingRun(t)
}
