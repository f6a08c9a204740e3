package fleet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fleet-risk-service/pkg/common"
	"github.com/fleetops/fleet-risk-service/pkg/engine"
	"github.com/fleetops/fleet-risk-service/pkg/models"
	_ "github.com/fleetops/fleet-risk-service/pkg/testing"
)

func TestRecordUsageRunsAggregateRules(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	equipmentID := seedEquipment(t, fleetObj)

	// 80% idle share trips the excess idle rule.
	events, err := fleetObj.Usage.RecordUsage(equipmentID, &models.UsageDaily{
		Date:         sampleTs.Truncate(24 * time.Hour),
		RuntimeHours: 2,
		IdleHours:    8,
		FuelEffLph:   2,
	})
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, engine.SubtypeExcessIdle, events[0].Subtype)

	var count int64
	err = fleetObj.Db.Conn.Model(&models.UsageDaily{}).
		Where("equipment_id = ?", equipmentID).Count(&count).Error
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRecordUsageSameAnomalyOnce(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	equipmentID := seedEquipment(t, fleetObj)

	record := &models.UsageDaily{
		Date:         sampleTs.Truncate(24 * time.Hour),
		RuntimeHours: 2,
		IdleHours:    8,
		FuelEffLph:   2,
	}

	first, err := fleetObj.Usage.RecordUsage(equipmentID, record)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A corrected record for the same day re-detects the anomaly but
	// does not duplicate the event.
	second, err := fleetObj.Usage.RecordUsage(equipmentID, record)
	require.NoError(t, err)
	assert.Len(t, second, 0)

	stored, err := fleetObj.Anomaly.GetEquipmentEvents(equipmentID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestRecordUsageUnknownEquipment(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	_, err := fleetObj.Usage.RecordUsage("no-such-equipment", &models.UsageDaily{
		Date:         sampleTs,
		RuntimeHours: 8,
	})
	assert.Error(t, err)
}

func TestRecordUsageInvalidRecord(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	equipmentID := seedEquipment(t, fleetObj)

	_, err := fleetObj.Usage.RecordUsage(equipmentID, &models.UsageDaily{
		Date:         sampleTs,
		RuntimeHours: -1,
	})
	var verr *engine.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "hours", verr.Field)

	var count int64
	err = fleetObj.Db.Conn.Model(&models.UsageDaily{}).
		Where("equipment_id = ?", equipmentID).Count(&count).Error
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
