package fleet

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/fleetops/fleet-risk-service/pkg/common"
	"github.com/fleetops/fleet-risk-service/pkg/engine"
	"github.com/fleetops/fleet-risk-service/pkg/models"
	_ "github.com/fleetops/fleet-risk-service/pkg/testing"
)

// A mid-week working-hours timestamp that keeps the time-of-day rules
// quiet.
var sampleTs = time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)

func seedEquipment(t *testing.T, fleetObj *FLEET) string {
	equipmentID := uuid.NewString()
	err := fleetObj.Db.Conn.Create(&models.Equipment{
		EquipmentID:   equipmentID,
		EquipmentType: "Excavator",
		Year:          2019,
		Status:        models.EquipmentStatusRented,
	}).Error
	require.NoError(t, err)
	return equipmentID
}

func hotSample(ts time.Time) *engine.TelemetrySample {
	return &engine.TelemetrySample{
		Timestamp:         ts,
		FuelLevel:         40,
		EngineHours:       8,
		EngineTemp:        125,
		HydraulicPressure: 150,
		IsEngineOn:        true,
	}
}

func TestIngestSampleStoresEvents(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	equipmentID := seedEquipment(t, fleetObj)

	events, risk, err := fleetObj.Telemetry.IngestSample(equipmentID, hotSample(sampleTs))
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, engine.SubtypeHighEngineTemp, events[0].Subtype)
	assert.Equal(t, models.SeverityHigh, risk)

	stored, err := fleetObj.Anomaly.GetEquipmentEvents(equipmentID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestIngestSampleUnknownEquipment(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	_, _, err := fleetObj.Telemetry.IngestSample(uuid.NewString(), hotSample(sampleTs))
	assert.Error(t, err)
}

func TestIngestSampleSameDayOnce(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	equipmentID := seedEquipment(t, fleetObj)

	first, _, err := fleetObj.Telemetry.IngestSample(equipmentID, hotSample(sampleTs))
	require.NoError(t, err)
	require.Len(t, first, 1)

	// The same anomaly later the same day is recognized, not re-saved.
	second, risk, err := fleetObj.Telemetry.IngestSample(equipmentID, hotSample(sampleTs.Add(2*time.Hour)))
	require.NoError(t, err)
	assert.Len(t, second, 0)
	assert.Equal(t, models.SeverityHigh, risk)

	stored, err := fleetObj.Anomaly.GetEquipmentEvents(equipmentID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestIngestSample_WithLog(t *testing.T) {
	var buf = &bytes.Buffer{}
	common.SetTestCaptureLogger(buf, zapcore.InfoLevel)

	ctrl, fleetObj, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	equipmentID := seedEquipment(t, fleetObj)

	events, _, err := fleetObj.Telemetry.IngestSample(equipmentID, hotSample(sampleTs))
	require.NoError(t, err)
	require.Len(t, events, 1)

	logs := ParseLogs(buf)

	{
		found := false
		for _, log := range logs {
			lobj := log.(map[string]any)
			if lobj["category"] == "telemetry" &&
				lobj["logger"] == "fleet_core" &&
				lobj["msg"] == "Event found" &&
				lobj["event"].(map[string]any)["equipment_id"] == equipmentID &&
				lobj["event"].(map[string]any)["subtype"] == engine.SubtypeHighEngineTemp {
				found = true
			}
		}
		assert.True(t, found)
	}

	{
		found := false
		for _, log := range logs {
			lobj := log.(map[string]any)
			if lobj["category"] == "telemetry" &&
				lobj["logger"] == "fleet_core" &&
				lobj["msg"] == "Event saved" &&
				lobj["event"].(map[string]any)["equipment_id"] == equipmentID &&
				lobj["event"].(map[string]any)["subtype"] == engine.SubtypeHighEngineTemp {
				found = true
			}
		}
		assert.True(t, found)
	}
}

func TestReportTamper(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	equipmentID := seedEquipment(t, fleetObj)

	assessment, err := fleetObj.Telemetry.ReportTamper(equipmentID, &engine.TamperReport{
		Gaps: []engine.TelemetryGap{
			{Start: sampleTs.Add(-3 * time.Hour), DurationMinutes: 150},
			{Start: sampleTs.Add(-6 * time.Hour), DurationMinutes: 150},
		},
		AccessAttempts: []engine.AccessAttempt{
			{AccessType: "keypad", Timestamp: sampleTs.Add(-time.Hour)},
		},
	})
	require.NoError(t, err)

	assert.Len(t, assessment.Events, 3)
	assert.Equal(t, 9, assessment.RiskScore)
	assert.Contains(t, assessment.Recommendation, "IMMEDIATE ACTION REQUIRED")

	stored, err := fleetObj.Anomaly.GetEquipmentEvents(equipmentID)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	for _, ev := range stored {
		assert.Equal(t, models.EventTypeSecurity, ev.EventType)
	}
}

func TestReportTamperUnknownEquipment(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	_, err := fleetObj.Telemetry.ReportTamper(uuid.NewString(), &engine.TamperReport{})
	assert.Error(t, err)
}
