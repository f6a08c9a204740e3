package engine

import (
	"time"

	"github.com/fleetops/fleet-risk-service/pkg/models"
)

// EvaluateSample is the real-time path: baseline from history strictly
// older than the sample, then the single-sample rules, then
// aggregation into events plus an overall risk level.
func (e *Engine) EvaluateSample(sample TelemetrySample, history []models.UsageDaily, meta EquipmentMeta) ([]models.Event, models.Severity, error) {
	base := NewBaseline(e.olderThanSample(sample, history), e.WindowDays)

	candidates, err := e.DetectSample(sample, base, meta)
	if err != nil {
		return nil, "", err
	}

	events, risk := Aggregate(candidates)
	return events, risk, nil
}

// EvaluateHistory is the batch path over stored daily records: the
// aggregate rules, deduplicated and shaped into events.
func (e *Engine) EvaluateHistory(records []TypedUsage) ([]models.Event, error) {
	candidates, err := e.DetectHistory(records)
	if err != nil {
		return nil, err
	}
	return ToEvents(Dedupe(candidates)), nil
}

// EvaluateTamper turns a tamper report into security events plus the
// 0-10 risk score and its recommendation. Indicators are not
// deduplicated: two long gaps on the same day are two events.
func (e *Engine) EvaluateTamper(equipmentID string, report TamperReport, now time.Time) ([]models.Event, int, string, error) {
	candidates, err := e.DetectTamper(equipmentID, report, now)
	if err != nil {
		return nil, 0, "", err
	}
	score := TamperRiskScore(candidates)
	return ToEvents(candidates), score, TamperRecommendation(score), nil
}

// olderThanSample drops records from the sample's own day or later, so
// the sample can never leak into its own baseline.
func (e *Engine) olderThanSample(sample TelemetrySample, history []models.UsageDaily) []models.UsageDaily {
	local := sample.Timestamp.In(e.Loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, e.Loc)

	out := make([]models.UsageDaily, 0, len(history))
	for _, r := range history {
		if r.Date.Before(dayStart) {
			out = append(out, r)
		}
	}
	return out
}
