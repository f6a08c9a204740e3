package engine

import (
	"math"
	"sort"

	"github.com/fleetops/fleet-risk-service/pkg/common"
	"github.com/fleetops/fleet-risk-service/pkg/models"
)

// Minimum sample counts before a statistic is considered usable.
const (
	MinSamplesBasic = 3
	MinSamplesSpike = 7
	MinSamplesIQR   = 10
)

// MetricStats is the rolling summary of one metric over the baseline
// window. OK is false when the window held fewer than MinSamplesBasic
// values; callers must treat that as "insufficient data", not a fault.
//
// Std is the sample standard deviation (n-1 denominator). All samples
// in the window weigh equally; no decay is applied to older ones.
type MetricStats struct {
	Mean float64
	Std  float64
	Q1   float64
	Q3   float64
	IQR  float64
	N    int
	OK   bool
}

// OutlierBound is the upper IQR fence. Only meaningful when N >= MinSamplesIQR.
func (s MetricStats) OutlierBound() float64 {
	return s.Q3 + 1.5*s.IQR
}

// Baseline holds the per-metric statistics for one asset, computed
// from daily usage history strictly older than the sample under
// evaluation. The current sample must never leak into its own baseline.
type Baseline struct {
	FuelUsed MetricStats // fuel_used_liters per day
	FuelEff  MetricStats // fuel_eff_lph, days with a positive reading only
	IdlePct  MetricStats // idle share of total hours, percent
	N        int         // records in the window
}

// NewBaseline computes an asset's baseline from its usage history,
// keeping only the trailing windowDays most recent records. History is
// expected oldest-first; it is not mutated.
func NewBaseline(history []models.UsageDaily, windowDays int) Baseline {
	window := history
	if windowDays > 0 && len(window) > windowDays {
		window = window[len(window)-windowDays:]
	}

	fuel := common.Mapper(window, func(r models.UsageDaily) float64 { return r.FuelUsedLiters })

	withEff := common.Filter(window, func(r models.UsageDaily) bool { return r.FuelEffLph > 0 })
	eff := common.Mapper(withEff, func(r models.UsageDaily) float64 { return r.FuelEffLph })

	withHours := common.Filter(window, func(r models.UsageDaily) bool {
		return r.RuntimeHours+r.IdleHours > 0
	})
	idlePct := common.Mapper(withHours, func(r models.UsageDaily) float64 {
		return r.IdleHours / (r.RuntimeHours + r.IdleHours) * 100
	})

	return Baseline{
		FuelUsed: computeStats(fuel),
		FuelEff:  computeStats(eff),
		IdlePct:  computeStats(idlePct),
		N:        len(window),
	}
}

func computeStats(values []float64) MetricStats {
	n := len(values)
	if n < MinSamplesBasic {
		return MetricStats{N: n}
	}

	mean := common.Reducer(values, func(acc, v float64) float64 { return acc + v }, 0.0) / float64(n)

	ss := common.Reducer(values, func(acc, v float64) float64 {
		d := v - mean
		return acc + d*d
	}, 0.0)
	std := math.Sqrt(ss / float64(n-1))

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)

	return MetricStats{
		Mean: mean,
		Std:  std,
		Q1:   q1,
		Q3:   q3,
		IQR:  q3 - q1,
		N:    n,
		OK:   true,
	}
}

// quantile interpolates linearly between the closest ranks of an
// ascending-sorted slice.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
