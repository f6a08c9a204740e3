package engine

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fleet-risk-service/pkg/models"
	_ "github.com/fleetops/fleet-risk-service/pkg/testing"
)

func TestEvaluateSampleExcludesSameDayHistory(t *testing.T) {
	e := New(time.UTC)

	// Seven quiet days establish a fuel baseline; an eighth record on
	// the sample's own day carries the spike itself. If that record
	// leaked into the baseline the spike would mask itself.
	history := make([]models.UsageDaily, 0, 8)
	for day := 1; day <= 7; day++ {
		history = append(history, usageOn(day, 10, 0, 8, 0))
	}
	history = append(history, usageOn(13, 50, 0, 8, 0))

	sample := TelemetrySample{
		EquipmentID:       "EQ-1",
		Timestamp:         wednesdayNoon, // 2024-03-13
		FuelLevel:         50,
		EngineHours:       5,
		EngineTemp:        80,
		HydraulicPressure: 150,
		IsEngineOn:        true,
	}

	events, risk, err := e.EvaluateSample(sample, history, testMeta())
	require.NoError(t, err)

	subtypes := make([]string, 0, len(events))
	for _, ev := range events {
		subtypes = append(subtypes, ev.Subtype)
	}
	assert.Contains(t, subtypes, SubtypeFuelTheftSpike)
	assert.Equal(t, models.SeverityHigh, risk)
}

func TestEvaluateSampleStableBusinessContent(t *testing.T) {
	e := New(time.UTC)

	history := []models.UsageDaily{
		usageOn(1, 10, 2, 8, 2),
		usageOn(2, 11, 2, 8, 2),
		usageOn(3, 12, 2, 8, 2),
	}
	sample := TelemetrySample{
		EquipmentID:       "EQ-1",
		Timestamp:         wednesdayNoon,
		FuelLevel:         40,
		EngineHours:       8,
		EngineTemp:        125,
		HydraulicPressure: 40,
		IsEngineOn:        true,
	}

	first, firstRisk, err := e.EvaluateSample(sample, history, testMeta())
	require.NoError(t, err)
	second, secondRisk, err := e.EvaluateSample(sample, history, testMeta())
	require.NoError(t, err)

	assert.Equal(t, firstRisk, secondRisk)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.NotEqual(t, first[i].EventID, second[i].EventID)
		assert.Equal(t, first[i].Subtype, second[i].Subtype)
		assert.Equal(t, first[i].Severity, second[i].Severity)
		assert.Equal(t, first[i].Details, second[i].Details)
	}
}

func TestEvaluateSamplePropagatesValidation(t *testing.T) {
	e := New(time.UTC)

	sample := TelemetrySample{
		EquipmentID: "EQ-1",
		Timestamp:   wednesdayNoon,
		FuelLevel:   -10,
	}

	_, _, err := e.EvaluateSample(sample, nil, testMeta())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "fuel_level", verr.Field)
}

func TestEvaluateHistoryDedupes(t *testing.T) {
	e := New(time.UTC)

	// Two high-idle records on the same day produce one event.
	dup := usageOn(5, 10, 2, 2, 8)
	records := []TypedUsage{
		{Record: dup, EquipmentType: "Excavator"},
		{Record: dup, EquipmentType: "Excavator"},
	}

	events, err := e.EvaluateHistory(records)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, SubtypeExcessIdle, events[0].Subtype)
	assert.Equal(t, models.EventTypeAnomaly, events[0].EventType)
}

func TestEvaluateTamper(t *testing.T) {
	e := New(time.UTC)
	now := wednesdayNoon

	report := TamperReport{
		Gaps: []TelemetryGap{
			{Start: now.Add(-2 * time.Hour), DurationMinutes: 150},
			{Start: now.Add(-5 * time.Hour), DurationMinutes: 150},
		},
		AccessAttempts: []AccessAttempt{
			{AccessType: "keypad", Timestamp: now.Add(-time.Hour)},
		},
	}

	events, score, recommendation, err := e.EvaluateTamper("EQ-1", report, now)
	require.NoError(t, err)

	// Same-day indicators are not collapsed.
	assert.Len(t, events, 3)
	for _, ev := range events {
		assert.Equal(t, models.EventTypeSecurity, ev.EventType)
	}
	assert.Equal(t, 9, score)
	assert.Contains(t, recommendation, "IMMEDIATE ACTION REQUIRED")
}

func TestEvaluateBatchKeepsInputOrder(t *testing.T) {
	e := New(time.UTC)

	inputs := make([]BatchInput, 10)
	for i := range inputs {
		inputs[i] = BatchInput{
			Sample: TelemetrySample{
				EquipmentID:       fmt.Sprintf("EQ-%d", i),
				Timestamp:         wednesdayNoon,
				FuelLevel:         40,
				EngineHours:       8,
				EngineTemp:        80,
				HydraulicPressure: 150,
				IsEngineOn:        true,
			},
			Meta: EquipmentMeta{EquipmentID: fmt.Sprintf("EQ-%d", i), EquipmentType: "Excavator", Year: 2019},
		}
	}
	// One hot engine in the middle.
	inputs[4].Sample.EngineTemp = 125

	results := e.EvaluateBatch(inputs, 3)
	require.Len(t, results, 10)

	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("EQ-%d", i), r.EquipmentID)
		assert.NoError(t, r.Err)
	}
	assert.Equal(t, models.SeverityHigh, results[4].RiskLevel)
	assert.Empty(t, results[3].Events)
}

func TestEvaluateBatchPerItemErrors(t *testing.T) {
	e := New(time.UTC)

	good := BatchInput{
		Sample: TelemetrySample{
			EquipmentID:       "EQ-GOOD",
			Timestamp:         wednesdayNoon,
			FuelLevel:         40,
			EngineHours:       8,
			EngineTemp:        80,
			HydraulicPressure: 150,
			IsEngineOn:        true,
		},
		Meta: testMeta(),
	}
	bad := good
	bad.Sample.EquipmentID = "EQ-BAD"
	bad.Sample.EngineHours = -1

	results := e.EvaluateBatch([]BatchInput{good, bad, good}, 2)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.NoError(t, results[2].Err)

	var verr *ValidationError
	require.True(t, errors.As(results[1].Err, &verr))
	assert.Equal(t, "EQ-BAD", results[1].EquipmentID)
}

func TestEvaluateBatchWorkerFloor(t *testing.T) {
	e := New(time.UTC)

	inputs := []BatchInput{{
		Sample: TelemetrySample{
			EquipmentID:       "EQ-1",
			Timestamp:         wednesdayNoon,
			FuelLevel:         40,
			EngineHours:       8,
			EngineTemp:        80,
			HydraulicPressure: 150,
			IsEngineOn:        true,
		},
		Meta: testMeta(),
	}}

	// Zero and negative worker counts degrade to a single worker.
	results := e.EvaluateBatch(inputs, 0)
	require.Len(t, results, 1)
	assert.NoError(t, results[0].Err)
}
