package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/fleetops/fleet-risk-service/pkg/models"
)

// Tampering subtypes map to SECURITY events, everything else to ANOMALY.
var securitySubtypes = map[string]bool{
	SubtypeTelemetryGap:       true,
	SubtypeSensorTampering:    true,
	SubtypeUnauthorizedAccess: true,
}

// Dedupe collapses candidates that share equipment, subtype and day
// bucket, keeping the first occurrence. Input order is preserved, so
// aggregation over the same candidate set is idempotent in content.
func Dedupe(candidates []AnomalyCandidate) []AnomalyCandidate {
	type key struct {
		equipmentID string
		subtype     string
		day         string
	}
	seen := make(map[key]bool, len(candidates))
	out := make([]AnomalyCandidate, 0, len(candidates))
	for _, c := range candidates {
		k := key{c.EquipmentID, c.Subtype, dayBucket(c.Ts)}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}

// RiskLevel derives the overall risk for one evaluation pass:
// CRITICAL with two or more HIGH candidates, HIGH with one HIGH or
// three MEDIUM, MEDIUM with any MEDIUM, LOW otherwise.
func RiskLevel(candidates []AnomalyCandidate) models.Severity {
	var high, medium int
	for _, c := range candidates {
		switch c.Severity {
		case models.SeverityHigh, models.SeverityCritical:
			high++
		case models.SeverityMedium:
			medium++
		}
	}
	switch {
	case high >= 2:
		return models.SeverityCritical
	case high >= 1 || medium >= 3:
		return models.SeverityHigh
	case medium >= 1:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

// ToEvents shapes surviving candidates into persistable events with
// fresh ids. The caller owns persistence; concurrent writers for the
// same equipment must de-duplicate by (equipment id, subtype, day)
// because ids differ across invocations.
func ToEvents(candidates []AnomalyCandidate) []models.Event {
	events := make([]models.Event, 0, len(candidates))
	for _, c := range candidates {
		et := models.EventTypeAnomaly
		if securitySubtypes[c.Subtype] {
			et = models.EventTypeSecurity
		}
		events = append(events, models.Event{
			EventID:     uuid.NewString(),
			EquipmentID: c.EquipmentID,
			Ts:          c.Ts,
			EventType:   et,
			Subtype:     c.Subtype,
			Severity:    c.Severity,
			Value:       c.Value,
			Details:     c.Details,
		})
	}
	return events
}

// TamperRiskScore sums severity weights over tampering indicators,
// capped at 10.
func TamperRiskScore(candidates []AnomalyCandidate) int {
	score := 0
	for _, c := range candidates {
		switch c.Severity {
		case models.SeverityHigh, models.SeverityCritical:
			score += 3
		case models.SeverityMedium:
			score += 2
		default:
			score++
		}
	}
	if score > 10 {
		score = 10
	}
	return score
}

func TamperRecommendation(score int) string {
	switch {
	case score >= 8:
		return "IMMEDIATE ACTION REQUIRED: High risk of tampering detected. Investigate immediately."
	case score >= 5:
		return "CAUTION: Moderate tampering risk. Schedule inspection within 24 hours."
	case score >= 2:
		return "MONITOR: Low tampering risk detected. Continue monitoring."
	default:
		return "NORMAL: No significant tampering indicators detected."
	}
}

// Aggregate is the full pass: dedupe, then risk level, then events.
func Aggregate(candidates []AnomalyCandidate) ([]models.Event, models.Severity) {
	deduped := Dedupe(candidates)
	return ToEvents(deduped), RiskLevel(deduped)
}

// dayBucket is the business-key day used by callers persisting events
// concurrently.
func dayBucket(ts time.Time) string {
	return ts.UTC().Format("2006-01-02")
}
