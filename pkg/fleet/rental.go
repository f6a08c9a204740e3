package fleet

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fleetops/fleet-risk-service/pkg/common"
	"github.com/fleetops/fleet-risk-service/pkg/engine"
	"github.com/fleetops/fleet-risk-service/pkg/models"
)

func (f *FLEET) assessRental(rentalID string) (*engine.FeeAssessment, error) {
	var rental models.Rental
	if err := f.Db.Conn.First(&rental, "rental_id = ?", rentalID).Error; err != nil {
		return nil, err
	}

	fa, err := engine.AssessFee(rental, time.Now())
	if err != nil {
		return nil, err
	}
	return &fa, nil
}

// sweepOverdue assesses every rental without persisting anything,
// returning only the overdue ones most urgent first.
func (f *FLEET) sweepOverdue() ([]engine.FeeAssessment, error) {
	assessments, err := f.assessAll()
	if err != nil {
		return nil, err
	}

	overdue := make([]engine.FeeAssessment, 0, len(assessments))
	for _, fa := range assessments {
		if fa.IsOverdue {
			overdue = append(overdue, fa)
		}
	}
	engine.SortByPriority(overdue)
	return overdue, nil
}

// updateFees persists the sweep: late hours, days and fee go onto each
// overdue rental, payment status degrades as lateness grows, and every
// overdue rental gets one OVERDUE event per day.
func (f *FLEET) updateFees() (*engine.FeeSweepResult, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryRental),
	)

	var rentals []models.Rental
	if err := f.Db.Conn.Find(&rentals).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	result := &engine.FeeSweepResult{RentalsChecked: len(rentals)}

	for _, rental := range rentals {
		fa, err := engine.AssessFee(rental, now)
		if err != nil {
			logger.Warn("Skipping rental with invalid contract",
				zap.String("rental_id", rental.RentalID), zap.Error(err))
			continue
		}
		if !fa.IsOverdue {
			continue
		}

		updates := map[string]interface{}{
			"late_hours": fa.OverdueHours,
			"late_days":  fa.DaysForFee,
			"late_fee":   fa.FinalLateFee,
		}
		if status := nextPaymentStatus(rental, fa); status != rental.PaymentStatus {
			updates["payment_status"] = status
		}

		err = f.Db.Conn.Model(&models.Rental{}).
			Where("rental_id = ?", rental.RentalID).
			Updates(updates).Error
		if err != nil {
			return nil, err
		}

		logger.Info("Rental fees updated",
			zap.String("rental_id", rental.RentalID),
			zap.Float64("late_fee", fa.FinalLateFee),
			zap.String("severity", string(fa.Severity)))

		event := models.Event{
			EventID:     uuid.NewString(),
			EquipmentID: rental.EquipmentID,
			Ts:          now,
			EventType:   models.EventTypeOverdue,
			Subtype:     "RENTAL_OVERDUE",
			Severity:    fa.Severity,
			Value:       fa.OverdueHours,
			Details:     "Rental " + rental.RentalID + " overdue",
		}
		if _, err := f.saveEvents(logger, []models.Event{event}); err != nil {
			return nil, err
		}

		result.OverdueCount++
		result.TotalLateFees += fa.FinalLateFee
		result.Updated = append(result.Updated, fa)
	}

	engine.SortByPriority(result.Updated)
	return result, nil
}

// escalationReport returns the overdue rentals that have reached an
// escalation tier, most urgent first.
func (f *FLEET) escalationReport() ([]engine.FeeAssessment, error) {
	assessments, err := f.assessAll()
	if err != nil {
		return nil, err
	}

	escalated := make([]engine.FeeAssessment, 0, len(assessments))
	for _, fa := range assessments {
		if fa.EscalationLevel != engine.EscalationNone {
			escalated = append(escalated, fa)
		}
	}
	engine.SortByPriority(escalated)
	return escalated, nil
}

func (f *FLEET) assessAll() ([]engine.FeeAssessment, error) {
	var rentals []models.Rental
	if err := f.Db.Conn.Find(&rentals).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	assessments := make([]engine.FeeAssessment, 0, len(rentals))
	for _, rental := range rentals {
		fa, err := engine.AssessFee(rental, now)
		if err != nil {
			continue
		}
		assessments = append(assessments, fa)
	}
	return assessments, nil
}

// nextPaymentStatus degrades, never upgrades: a PAID rental that
// accrues a fee becomes DUE, and three days overdue forces OVERDUE.
func nextPaymentStatus(rental models.Rental, fa engine.FeeAssessment) models.PaymentStatus {
	status := rental.PaymentStatus
	if fa.FinalLateFee > rental.LateFee && status == models.PaymentStatusPaid {
		status = models.PaymentStatusDue
	}
	if fa.OverdueHours >= 72 {
		status = models.PaymentStatusOverdue
	}
	return status
}

type IRentalImpl struct {
	fleet *FLEET
}

func (ir *IRentalImpl) AssessRental(rentalID string) (*engine.FeeAssessment, error) {
	return ir.fleet.assessRental(rentalID)
}

func (ir *IRentalImpl) SweepOverdue() ([]engine.FeeAssessment, error) {
	return ir.fleet.sweepOverdue()
}

func (ir *IRentalImpl) UpdateFees() (*engine.FeeSweepResult, error) {
	return ir.fleet.updateFees()
}

func (ir *IRentalImpl) EscalationReport() ([]engine.FeeAssessment, error) {
	return ir.fleet.escalationReport()
}

func (f *FLEET) GetIRental() IRental {
	return &IRentalImpl{fleet: f}
}
