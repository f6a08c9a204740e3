package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/fleetops/fleet-risk-service/pkg/models"
)

// Fixed rule thresholds.
const (
	fuelWithoutWorkLiters = 10.0
	highTempC             = 100.0
	criticalTempC         = 120.0
	lowHydraulicPSI       = 50.0
	nightStartHour        = 22
	nightEndHour          = 5
	idleEstimateRatio     = 0.8

	gapSuspiciousMinutes = 30.0
	gapCriticalMinutes   = 120.0
	sensorDeviationPct   = 50.0

	excessIdlePct        = 70.0
	excessBreakdownHours = 4.0
)

// Engine evaluates telemetry and usage history against the anomaly
// rules. It holds only configuration, never per-asset state, so one
// Engine serves any number of assets concurrently.
type Engine struct {
	// Loc is the timezone used for the night/weekend operation rules.
	Loc *time.Location
	// WindowDays bounds the baseline window, in trailing records.
	WindowDays int
}

func New(loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{Loc: loc, WindowDays: 30}
}

// DetectSample evaluates one telemetry sample against the asset's
// baseline and the fixed thresholds. Rules are independent; no rule
// suppresses another. The returned order is fixed, which makes
// repeated evaluation of identical inputs yield identical candidates.
func (e *Engine) DetectSample(sample TelemetrySample, base Baseline, meta EquipmentMeta) ([]AnomalyCandidate, error) {
	if err := validateSample(sample); err != nil {
		return nil, err
	}

	var out []AnomalyCandidate
	add := func(subtype string, sev models.Severity, value float64, details string, confidence float64) {
		out = append(out, AnomalyCandidate{
			EquipmentID: sample.EquipmentID,
			Ts:          sample.Timestamp,
			Subtype:     subtype,
			Severity:    sev,
			Value:       value,
			Details:     details,
			Confidence:  confidence,
		})
	}

	// Fuel theft spike against the asset's own consumption baseline.
	if base.FuelUsed.N >= MinSamplesSpike && sample.FuelLevel > base.FuelUsed.Mean+3*base.FuelUsed.Std {
		add(SubtypeFuelTheftSpike, models.SeverityHigh, sample.FuelLevel,
			fmt.Sprintf("Abnormal fuel consumption: %.2fL vs avg %.2fL", sample.FuelLevel, base.FuelUsed.Mean),
			0.90)
	}

	// Fuel efficiency anomaly. Runtime of zero is handled by the
	// fuel-without-work rule below; the ratio is undefined there.
	if sample.EngineHours > 0 && base.FuelEff.OK {
		eff := sample.FuelLevel / sample.EngineHours
		if eff > base.FuelEff.Mean+2.5*base.FuelEff.Std {
			add(SubtypeFuelEfficiencyAnomaly, models.SeverityMedium, eff,
				fmt.Sprintf("Poor fuel efficiency: %.2fL/h vs avg %.2fL/h", eff, base.FuelEff.Mean),
				0.80)
		}
	}

	// Fuel consumption without corresponding work.
	if sample.FuelLevel > fuelWithoutWorkLiters && sample.EngineHours < 1 {
		add(SubtypeFuelWithoutWork, models.SeverityHigh, sample.FuelLevel,
			fmt.Sprintf("High fuel consumption (%.2fL) with minimal runtime (%.2fh)", sample.FuelLevel, sample.EngineHours),
			0.95)
	}

	// Engine off but hours accumulated.
	if !sample.IsEngineOn && sample.EngineHours > 0 {
		add(SubtypeExcessiveIdle, models.SeverityMedium, sample.EngineHours,
			fmt.Sprintf("Engine off with accumulated hours: %.2fh", sample.EngineHours),
			0.70)
	}

	// Long-shift idle estimate against the asset's idle-share baseline.
	if sample.EngineHours > 8 && base.IdlePct.OK {
		estimatedIdle := sample.EngineHours * idleEstimateRatio
		if estimatedIdle > base.IdlePct.Mean+2*base.IdlePct.Std {
			add(SubtypeIdlePatternAnomaly, models.SeverityMedium, estimatedIdle,
				"Unusual idle pattern detected based on engine hours",
				0.75)
		}
	}

	if sample.EngineTemp > highTempC {
		sev := models.SeverityMedium
		if sample.EngineTemp > criticalTempC {
			sev = models.SeverityHigh
		}
		add(SubtypeHighEngineTemp, sev, sample.EngineTemp,
			fmt.Sprintf("High engine temperature: %.1f°C", sample.EngineTemp),
			0.90)
	}

	if sample.HydraulicPressure < lowHydraulicPSI {
		add(SubtypeLowHydraulicPressure, models.SeverityMedium, sample.HydraulicPressure,
			fmt.Sprintf("Low hydraulic pressure: %.1f PSI", sample.HydraulicPressure),
			0.85)
	}

	local := sample.Timestamp.In(e.Loc)
	hour := local.Hour()

	if (hour >= nightStartHour || hour <= nightEndHour) && sample.IsEngineOn && sample.EngineHours > 2 {
		add(SubtypeNightOperation, models.SeverityMedium, sample.EngineHours,
			fmt.Sprintf("Unusual night operation: %.2fh at %d:00", sample.EngineHours, hour),
			0.60)
	}

	if wd := local.Weekday(); (wd == time.Saturday || wd == time.Sunday) && sample.IsEngineOn && sample.EngineHours > 4 {
		add(SubtypeWeekendOperation, models.SeverityLow, sample.EngineHours,
			fmt.Sprintf("Weekend operation detected: %.2fh", sample.EngineHours),
			0.50)
	}

	// GPS position reported while the asset shows no operation at all.
	if sample.GpsLat != 0 && sample.GpsLon != 0 && !sample.IsEngineOn && sample.EngineHours == 0 {
		add(SubtypeLocationWithoutOperation, models.SeverityHigh, 1,
			fmt.Sprintf("Equipment location changed without operation at %.6f, %.6f", sample.GpsLat, sample.GpsLon),
			0.80)
	}

	return out, nil
}

// DetectTamper evaluates reported tampering indicators. These come
// pre-classified from the telemetry pipeline, so candidates carry no
// statistical confidence.
func (e *Engine) DetectTamper(equipmentID string, report TamperReport, now time.Time) ([]AnomalyCandidate, error) {
	var out []AnomalyCandidate

	for _, gap := range report.Gaps {
		if gap.DurationMinutes < 0 {
			return nil, invalidInput("duration_minutes", "must not be negative")
		}
		if gap.Start.IsZero() {
			return nil, invalidInput("start_time", "is required")
		}
		if gap.DurationMinutes <= gapSuspiciousMinutes {
			continue
		}
		sev := models.SeverityMedium
		if gap.DurationMinutes > gapCriticalMinutes {
			sev = models.SeverityHigh
		}
		out = append(out, AnomalyCandidate{
			EquipmentID: equipmentID,
			Ts:          gap.Start,
			Subtype:     SubtypeTelemetryGap,
			Severity:    sev,
			Value:       gap.DurationMinutes,
			Details:     fmt.Sprintf("Telemetry gap of %.0f minutes at %s", gap.DurationMinutes, gap.Start.Format(time.RFC3339)),
		})
	}

	for _, sa := range report.SensorAnomalies {
		if sa.DeviationPct < 0 {
			return nil, invalidInput("deviation_percentage", "must not be negative")
		}
		if sa.SensorType == "" {
			return nil, invalidInput("sensor_type", "is required")
		}
		if sa.DeviationPct <= sensorDeviationPct {
			continue
		}
		ts := sa.Timestamp
		if ts.IsZero() {
			ts = now
		}
		out = append(out, AnomalyCandidate{
			EquipmentID: equipmentID,
			Ts:          ts,
			Subtype:     SubtypeSensorTampering,
			Severity:    models.SeverityHigh,
			Value:       sa.DeviationPct,
			Details:     fmt.Sprintf("%s sensor showing %.1f%% deviation from normal", sa.SensorType, sa.DeviationPct),
		})
	}

	for _, a := range report.AccessAttempts {
		if a.Timestamp.IsZero() {
			return nil, invalidInput("timestamp", "is required")
		}
		out = append(out, AnomalyCandidate{
			EquipmentID: equipmentID,
			Ts:          a.Timestamp,
			Subtype:     SubtypeUnauthorizedAccess,
			Severity:    models.SeverityHigh,
			Value:       1,
			Details:     fmt.Sprintf("Unauthorized %s access detected at %s", a.AccessType, a.Timestamp.Format(time.RFC3339)),
		})
	}

	return out, nil
}

// DetectHistory runs the aggregate rules over a batch of daily usage
// records, typically a whole fleet's trailing week. Per-type statistics
// need more than three same-type records before the spike rules apply.
func (e *Engine) DetectHistory(records []TypedUsage) ([]AnomalyCandidate, error) {
	for _, tu := range records {
		if err := validateUsage(tu.Record); err != nil {
			return nil, err
		}
	}

	var out []AnomalyCandidate

	byType := make(map[string][]TypedUsage)
	typeOrder := make([]string, 0)
	for _, tu := range records {
		if _, seen := byType[tu.EquipmentType]; !seen {
			typeOrder = append(typeOrder, tu.EquipmentType)
		}
		byType[tu.EquipmentType] = append(byType[tu.EquipmentType], tu)
	}

	// Per-type fuel consumption spikes.
	for _, et := range typeOrder {
		group := byType[et]
		if len(group) <= MinSamplesBasic {
			continue
		}
		values := make([]float64, len(group))
		for i, tu := range group {
			values[i] = tu.Record.FuelUsedLiters
		}
		stats := computeStats(values)
		threshold := stats.Mean + 2*stats.Std
		for _, tu := range group {
			if tu.Record.FuelUsedLiters > threshold {
				out = append(out, AnomalyCandidate{
					EquipmentID: tu.Record.EquipmentID,
					Ts:          tu.Record.Date,
					Subtype:     SubtypeFuelSpike,
					Severity:    models.SeverityHigh,
					Value:       tu.Record.FuelUsedLiters,
					Details: fmt.Sprintf("Fuel consumption %.1fL exceeds normal by %.1fL",
						tu.Record.FuelUsedLiters, tu.Record.FuelUsedLiters-stats.Mean),
				})
			}
		}
	}

	// Excessive idle share, per record.
	for _, tu := range records {
		total := tu.Record.RuntimeHours + tu.Record.IdleHours
		if total == 0 {
			continue
		}
		idlePct := tu.Record.IdleHours / total * 100
		if idlePct > excessIdlePct {
			out = append(out, AnomalyCandidate{
				EquipmentID: tu.Record.EquipmentID,
				Ts:          tu.Record.Date,
				Subtype:     SubtypeExcessIdle,
				Severity:    models.SeverityMedium,
				Value:       idlePct,
				Details: fmt.Sprintf("Equipment idle %.1f%% of operational time (%.1fh idle, %.1fh runtime)",
					idlePct, tu.Record.IdleHours, tu.Record.RuntimeHours),
			})
		}
	}

	// Per-type poor fuel efficiency.
	for _, et := range typeOrder {
		group := make([]TypedUsage, 0, len(byType[et]))
		for _, tu := range byType[et] {
			if tu.Record.FuelEffLph > 0 {
				group = append(group, tu)
			}
		}
		if len(group) <= MinSamplesBasic {
			continue
		}
		values := make([]float64, len(group))
		for i, tu := range group {
			values[i] = tu.Record.FuelEffLph
		}
		stats := computeStats(values)
		threshold := stats.Mean + 2*stats.Std
		for _, tu := range group {
			if tu.Record.FuelEffLph > threshold {
				out = append(out, AnomalyCandidate{
					EquipmentID: tu.Record.EquipmentID,
					Ts:          tu.Record.Date,
					Subtype:     SubtypePoorFuelEfficiency,
					Severity:    models.SeverityMedium,
					Value:       tu.Record.FuelEffLph,
					Details: fmt.Sprintf("Fuel efficiency %.2f L/h is %.2f L/h above average",
						tu.Record.FuelEffLph, tu.Record.FuelEffLph-stats.Mean),
				})
			}
		}
	}

	// Excessive breakdown hours in one day.
	for _, tu := range records {
		if tu.Record.BreakdownHours > excessBreakdownHours {
			out = append(out, AnomalyCandidate{
				EquipmentID: tu.Record.EquipmentID,
				Ts:          tu.Record.Date,
				Subtype:     SubtypeExcessBreakdown,
				Severity:    models.SeverityHigh,
				Value:       tu.Record.BreakdownHours,
				Details: fmt.Sprintf("Equipment breakdown time %.1fh exceeds threshold of %.0fh",
					tu.Record.BreakdownHours, excessBreakdownHours),
			})
		}
	}

	return out, nil
}

func validateSample(sample TelemetrySample) error {
	if sample.EquipmentID == "" {
		return invalidInput("equipment_id", "is required")
	}
	if sample.Timestamp.IsZero() {
		return invalidInput("timestamp", "is required")
	}
	if sample.EngineHours < 0 {
		return invalidInput("engine_hours", "must not be negative")
	}
	if sample.FuelLevel < 0 {
		return invalidInput("fuel_level", "must not be negative")
	}
	if sample.HydraulicPressure < 0 {
		return invalidInput("hydraulic_pressure", "must not be negative")
	}
	finite := []struct {
		field string
		v     float64
	}{
		{"fuel_level", sample.FuelLevel},
		{"engine_hours", sample.EngineHours},
		{"engine_temp", sample.EngineTemp},
		{"hydraulic_pressure", sample.HydraulicPressure},
		{"gps_lat", sample.GpsLat},
		{"gps_lon", sample.GpsLon},
	}
	for _, f := range finite {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return invalidInput(f.field, "must be finite")
		}
	}
	return nil
}

// ValidateUsage checks a daily usage record before it is stored or
// analyzed.
func ValidateUsage(r models.UsageDaily) error {
	return validateUsage(r)
}

func validateUsage(r models.UsageDaily) error {
	if r.EquipmentID == "" {
		return invalidInput("equipment_id", "is required")
	}
	if r.Date.IsZero() {
		return invalidInput("date", "is required")
	}
	if r.RuntimeHours < 0 || r.IdleHours < 0 || r.BreakdownHours < 0 {
		return invalidInput("hours", "must not be negative")
	}
	if r.FuelUsedLiters < 0 {
		return invalidInput("fuel_used_liters", "must not be negative")
	}
	return nil
}
