// Package engine is the fleet risk core: anomaly rules, baseline
// statistics, health scoring and overdue-fee assessment. Everything in
// this package is pure computation over in-memory values, with no
// storage, network, or clock access. Callers load the inputs and persist the
// outputs; "now" and the evaluation timezone are always passed in.
package engine

import (
	"time"

	"github.com/fleetops/fleet-risk-service/pkg/models"
)

// TelemetrySample is one real-time reading from an asset.
type TelemetrySample struct {
	EquipmentID       string    `json:"equipment_id"`
	Timestamp         time.Time `json:"timestamp"`
	FuelLevel         float64   `json:"fuel_level"`
	EngineHours       float64   `json:"engine_hours"`
	GpsLat            float64   `json:"gps_lat"`
	GpsLon            float64   `json:"gps_lon"`
	EngineTemp        float64   `json:"engine_temp"`
	HydraulicPressure float64   `json:"hydraulic_pressure"`
	IsEngineOn        bool      `json:"is_engine_on"`
	OperatorID        string    `json:"operator_id"`
}

// EquipmentMeta is the static asset metadata the rules and the health
// scorer need alongside telemetry; it never changes within one pass.
type EquipmentMeta struct {
	EquipmentID   string `json:"equipment_id"`
	EquipmentType string `json:"equipment_type"`
	Year          int    `json:"year"`
}

// TelemetryGap is a reported period without telemetry.
type TelemetryGap struct {
	Start           time.Time `json:"start_time"`
	DurationMinutes float64   `json:"duration_minutes"`
}

// SensorAnomaly is a reported sensor reading deviating from its normal band.
type SensorAnomaly struct {
	SensorType   string    `json:"sensor_type"`
	DeviationPct float64   `json:"deviation_percentage"`
	Timestamp    time.Time `json:"timestamp"`
}

// AccessAttempt is a reported unauthorized access to an asset.
type AccessAttempt struct {
	AccessType string    `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
}

// TamperReport bundles the reported tampering indicators for one asset.
type TamperReport struct {
	Gaps            []TelemetryGap  `json:"telemetry_gaps"`
	SensorAnomalies []SensorAnomaly `json:"sensor_anomalies"`
	AccessAttempts  []AccessAttempt `json:"unauthorized_access"`
}

// TamperAssessment is the combined outcome of a tamper report: the
// security events plus the 0-10 risk score and its recommendation.
type TamperAssessment struct {
	Events         []models.Event `json:"events"`
	RiskScore      int            `json:"risk_score"`
	Recommendation string         `json:"recommendation"`
}

// Anomaly subtypes emitted by the rules.
const (
	SubtypeFuelTheftSpike           = "FUEL_THEFT_SPIKE"
	SubtypeFuelEfficiencyAnomaly    = "FUEL_EFFICIENCY_ANOMALY"
	SubtypeFuelWithoutWork          = "FUEL_WITHOUT_WORK"
	SubtypeExcessiveIdle            = "EXCESSIVE_IDLE"
	SubtypeIdlePatternAnomaly       = "IDLE_PATTERN_ANOMALY"
	SubtypeHighEngineTemp           = "HIGH_ENGINE_TEMP"
	SubtypeLowHydraulicPressure     = "LOW_HYDRAULIC_PRESSURE"
	SubtypeNightOperation           = "NIGHT_OPERATION"
	SubtypeWeekendOperation         = "WEEKEND_OPERATION"
	SubtypeLocationWithoutOperation = "LOCATION_WITHOUT_OPERATION"

	SubtypeTelemetryGap       = "TELEMETRY_GAP"
	SubtypeSensorTampering    = "SENSOR_TAMPERING"
	SubtypeUnauthorizedAccess = "UNAUTHORIZED_ACCESS"

	SubtypeFuelSpike           = "FUEL_SPIKE"
	SubtypeExcessIdle          = "EXCESS_IDLE"
	SubtypePoorFuelEfficiency  = "POOR_FUEL_EFFICIENCY"
	SubtypeExcessBreakdown     = "EXCESS_BREAKDOWN"
)

// AnomalyCandidate is the transient outcome of one rule firing. It is
// produced and consumed within a single evaluation pass; the aggregator
// turns surviving candidates into persistable events.
type AnomalyCandidate struct {
	EquipmentID string          `json:"equipment_id"`
	Ts          time.Time       `json:"ts"`
	Subtype     string          `json:"subtype"`
	Severity    models.Severity `json:"severity"`
	Value       float64         `json:"value"`
	Details     string          `json:"details"`
	// Confidence is 0 for reported indicators (gaps, tampering,
	// unauthorized access) which carry no statistical confidence.
	Confidence float64 `json:"confidence"`
}

// TypedUsage pairs one daily usage record with the asset's equipment
// type, the grouping key for the aggregate-history rules.
type TypedUsage struct {
	Record        models.UsageDaily
	EquipmentType string
}
