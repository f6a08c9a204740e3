package engine

import (
	"math"
	"sort"
	"time"

	"github.com/fleetops/fleet-risk-service/pkg/models"
)

// ComponentRisk is a deterministic per-component failure estimate. It
// is a pure function of the observed metrics, so the same history
// always yields the same risks.
type ComponentRisk struct {
	Component            string          `json:"component"`
	FailureRisk          float64         `json:"failure_risk"`
	RiskLevel            models.Severity `json:"risk_level"`
	EstimatedFailureDays int             `json:"estimated_failure_days"` // 0 when risk is below the reporting bar
}

// HealthScore is the full health assessment for one asset, recomputed
// on demand from its trailing usage window.
type HealthScore struct {
	EquipmentID         string          `json:"equipment_id"`
	HealthScore         float64         `json:"health_score"`
	FailureProbability  float64         `json:"failure_probability"`
	RiskLevel           models.Severity `json:"risk_level"`
	MaintenancePriority string          `json:"maintenance_priority"`
	BreakdownHoursTotal float64         `json:"breakdown_hours_total"`
	BreakdownTrend      float64         `json:"breakdown_trend"`
	AvgUtilization      float64         `json:"avg_utilization"`
	FuelEfficiencyTrend float64         `json:"fuel_efficiency_trend"`
	EquipmentAge        int             `json:"equipment_age"`
	Predictions         []string        `json:"predictions"`
	ComponentRisks      []ComponentRisk `json:"component_risks"`
	NextMaintenanceDays int             `json:"next_maintenance_days"`
}

// Base failure risks per component, scaled by the asset's condition.
// Replaces per-request randomness so scores are reproducible.
var componentBaseRisks = []struct {
	name string
	risk float64
}{
	{"Engine", 0.50},
	{"Hydraulic System", 0.45},
	{"Transmission", 0.40},
	{"Cooling System", 0.35},
	{"Electrical System", 0.30},
}

// ScoreHealth computes the bounded health score for one asset from at
// least MinSamplesBasic days of usage. With fewer records it returns
// (nil, false): insufficient data, not a fault. now supplies the
// reference year for the age penalty.
func ScoreHealth(meta EquipmentMeta, history []models.UsageDaily, now time.Time) (*HealthScore, bool) {
	if len(history) < MinSamplesBasic {
		return nil, false
	}

	records := make([]models.UsageDaily, len(history))
	copy(records, history)
	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })

	var totalRuntime, totalBreakdown, utilSum float64
	for _, r := range records {
		totalRuntime += r.RuntimeHours
		totalBreakdown += r.BreakdownHours
		utilSum += r.UtilizationPct
	}
	avgUtilization := utilSum / float64(len(records))

	// Trends compare the most recent three days against the earliest three.
	recent := records[len(records)-3:]
	early := records[:3]

	var recentBreakdown, earlyBreakdown float64
	for _, r := range recent {
		recentBreakdown += r.BreakdownHours
	}
	for _, r := range early {
		earlyBreakdown += r.BreakdownHours
	}
	breakdownTrend := recentBreakdown - earlyBreakdown

	fuelEffTrend := effTrend(recent, early)

	score := 100.0

	// Runtime guard: an asset with no runtime still divides by one.
	breakdownRatio := totalBreakdown / math.Max(1, totalRuntime) * 100
	score -= breakdownRatio * 10

	if avgUtilization < 30 {
		score -= (30 - avgUtilization) * 0.5
	}
	if breakdownTrend > 0 {
		score -= breakdownTrend * 5
	}
	if fuelEffTrend < -0.5 {
		score -= math.Abs(fuelEffTrend) * 10
	}

	age := now.Year() - meta.Year
	if age > 10 {
		score -= float64(age-10) * 2
	}

	score = math.Max(0, math.Min(100, score))

	risk, priority, maintenanceDays := healthTier(score)

	var predictions []string
	if breakdownTrend > 2 {
		predictions = append(predictions, "Increasing breakdown frequency detected - inspect mechanical systems")
	}
	if fuelEffTrend < -1 {
		predictions = append(predictions, "Declining fuel efficiency - check engine performance and filters")
	}
	if breakdownRatio > 5 {
		predictions = append(predictions, "High breakdown ratio - comprehensive maintenance required")
	}
	if age > 15 {
		predictions = append(predictions, "Equipment age exceeds 15 years - consider replacement planning")
	}

	return &HealthScore{
		EquipmentID:         meta.EquipmentID,
		HealthScore:         score,
		FailureProbability:  (100 - score) / 100,
		RiskLevel:           risk,
		MaintenancePriority: priority,
		BreakdownHoursTotal: totalBreakdown,
		BreakdownTrend:      breakdownTrend,
		AvgUtilization:      avgUtilization,
		FuelEfficiencyTrend: fuelEffTrend,
		EquipmentAge:        age,
		Predictions:         predictions,
		ComponentRisks:      componentRisks(score),
		NextMaintenanceDays: maintenanceDays,
	}, true
}

// effTrend is the recent-vs-early average fuel efficiency delta,
// considering only days with a positive reading. Zero when either side
// has no usable readings.
func effTrend(recent, early []models.UsageDaily) float64 {
	avg := func(rs []models.UsageDaily) (float64, bool) {
		var sum float64
		var n int
		for _, r := range rs {
			if r.FuelEffLph > 0 {
				sum += r.FuelEffLph
				n++
			}
		}
		if n == 0 {
			return 0, false
		}
		return sum / float64(n), true
	}

	recentAvg, rok := avg(recent)
	earlyAvg, eok := avg(early)
	if !rok || !eok {
		return 0
	}
	return recentAvg - earlyAvg
}

func healthTier(score float64) (models.Severity, string, int) {
	switch {
	case score >= 80:
		return models.SeverityLow, "ROUTINE", 30
	case score >= 60:
		return models.SeverityMedium, "SCHEDULED", 14
	case score >= 40:
		return models.SeverityHigh, "URGENT", 7
	default:
		return models.SeverityCritical, "IMMEDIATE", 1
	}
}

func componentRisks(score float64) []ComponentRisk {
	healthFactor := (100 - score) / 100

	out := make([]ComponentRisk, 0, len(componentBaseRisks))
	for _, c := range componentBaseRisks {
		adjusted := math.Min(0.95, c.risk*(1+healthFactor))

		var level models.Severity
		switch {
		case adjusted > 0.8:
			level = models.SeverityCritical
		case adjusted > 0.6:
			level = models.SeverityHigh
		case adjusted > 0.4:
			level = models.SeverityMedium
		default:
			level = models.SeverityLow
		}

		days := 0
		if adjusted > 0.7 {
			days = int(30 * (1 - adjusted))
		}

		out = append(out, ComponentRisk{
			Component:            c.name,
			FailureRisk:          adjusted,
			RiskLevel:            level,
			EstimatedFailureDays: days,
		})
	}
	return out
}
