package fleet

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fleet-risk-service/pkg/common"
	"github.com/fleetops/fleet-risk-service/pkg/engine"
	"github.com/fleetops/fleet-risk-service/pkg/models"
	_ "github.com/fleetops/fleet-risk-service/pkg/testing"
)

// seedRental creates an open rental whose grace deadline passed
// overdueHours ago (negative for a rental still within contract).
func seedRental(t *testing.T, fleetObj *FLEET, equipmentID string, overdueHours float64, status models.PaymentStatus) string {
	rentalID := uuid.NewString()
	planned := time.Now().Add(-time.Duration(overdueHours * float64(time.Hour)))
	err := fleetObj.Db.Conn.Create(&models.Rental{
		RentalID:             rentalID,
		EquipmentID:          equipmentID,
		CustomerID:           uuid.NewString(),
		CustomerName:         "Acme Construction",
		ContractStartTs:      planned.AddDate(0, 0, -7),
		ContractEndTsPlanned: planned,
		RateDay:              5000,
		PaymentStatus:        status,
	}).Error
	require.NoError(t, err)
	return rentalID
}

func TestAssessRental(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	equipmentID := seedEquipment(t, fleetObj)
	rentalID := seedRental(t, fleetObj, equipmentID, 80, models.PaymentStatusPaid)

	fa, err := fleetObj.Rental.AssessRental(rentalID)
	require.NoError(t, err)

	assert.True(t, fa.IsOverdue)
	assert.InDelta(t, 80, fa.OverdueHours, 0.1)
	assert.Equal(t, 4, fa.DaysForFee)
	assert.Equal(t, 2000.0, fa.CalculatedLateFee)
	assert.Equal(t, models.SeverityCritical, fa.Severity)
	assert.Equal(t, engine.EscalationSupervisor, fa.EscalationLevel)
}

func TestAssessRentalUnknown(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	_, err := fleetObj.Rental.AssessRental(uuid.NewString())
	assert.Error(t, err)
}

func TestSweepOverdue(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	equipmentID := seedEquipment(t, fleetObj)
	lateID := seedRental(t, fleetObj, equipmentID, 30, models.PaymentStatusDue)
	laterID := seedRental(t, fleetObj, equipmentID, 90, models.PaymentStatusDue)
	seedRental(t, fleetObj, equipmentID, -24, models.PaymentStatusPaid) // still in contract

	overdue, err := fleetObj.Rental.SweepOverdue()
	require.NoError(t, err)

	ids := make(map[string]bool, len(overdue))
	for _, fa := range overdue {
		ids[fa.RentalID] = true
	}
	assert.True(t, ids[lateID])
	assert.True(t, ids[laterID])

	// Most urgent first.
	for i := 1; i < len(overdue); i++ {
		assert.GreaterOrEqual(t, overdue[i-1].PriorityScore, overdue[i].PriorityScore)
	}
}

func TestUpdateFeesPersistsSweep(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	equipmentID := seedEquipment(t, fleetObj)
	rentalID := seedRental(t, fleetObj, equipmentID, 80, models.PaymentStatusPaid)

	result, err := fleetObj.Rental.UpdateFees()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.OverdueCount, 1)

	var rental models.Rental
	err = fleetObj.Db.Conn.First(&rental, "rental_id = ?", rentalID).Error
	require.NoError(t, err)

	assert.InDelta(t, 80, rental.LateHours, 0.1)
	assert.Equal(t, 4, rental.LateDays)
	assert.Equal(t, 2000.0, rental.LateFee)
	// Three days overdue forces OVERDUE regardless of prior status.
	assert.Equal(t, models.PaymentStatusOverdue, rental.PaymentStatus)

	var events []models.Event
	err = fleetObj.Db.Conn.
		Where("equipment_id = ? AND event_type = ?", equipmentID, models.EventTypeOverdue).
		Find(&events).Error
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.SeverityCritical, events[0].Severity)

	// A second sweep the same day updates fees but adds no new event.
	_, err = fleetObj.Rental.UpdateFees()
	require.NoError(t, err)

	err = fleetObj.Db.Conn.
		Where("equipment_id = ? AND event_type = ?", equipmentID, models.EventTypeOverdue).
		Find(&events).Error
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestUpdateFeesPaidBecomesDue(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	equipmentID := seedEquipment(t, fleetObj)
	rentalID := seedRental(t, fleetObj, equipmentID, 30, models.PaymentStatusPaid)

	_, err := fleetObj.Rental.UpdateFees()
	require.NoError(t, err)

	var rental models.Rental
	err = fleetObj.Db.Conn.First(&rental, "rental_id = ?", rentalID).Error
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusDue, rental.PaymentStatus)
}

func TestEscalationReport(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, _ := GetMockFleetWithMemorySqliteDialector(t, false, false)
	defer ctrl.Finish()

	equipmentID := seedEquipment(t, fleetObj)
	mediumID := seedRental(t, fleetObj, equipmentID, 10, models.PaymentStatusDue)
	criticalID := seedRental(t, fleetObj, equipmentID, 130, models.PaymentStatusDue)

	report, err := fleetObj.Rental.EscalationReport()
	require.NoError(t, err)

	ids := make(map[string]engine.EscalationLevel, len(report))
	for _, fa := range report {
		ids[fa.RentalID] = fa.EscalationLevel
	}
	assert.Equal(t, engine.EscalationManagement, ids[criticalID])
	assert.NotContains(t, ids, mediumID)
}

func TestRentalServiceMockable(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, fleetObj, _, mockIRental := GetMockFleetWithMemorySqliteDialector(t, false, true)
	defer ctrl.Finish()

	mockIRental.EXPECT().AssessRental("R-42").Return(&engine.FeeAssessment{
		RentalID:  "R-42",
		IsOverdue: true,
	}, nil)

	fa, err := fleetObj.Rental.AssessRental("R-42")
	require.NoError(t, err)
	assert.True(t, fa.IsOverdue)
}
