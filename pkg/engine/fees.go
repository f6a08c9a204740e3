package engine

import (
	"math"
	"sort"
	"time"

	"github.com/fleetops/fleet-risk-service/pkg/models"
)

// EscalationLevel is the organizational response tier for an overdue
// rental, driven purely by overdue duration.
type EscalationLevel string

const (
	EscalationNone       EscalationLevel = ""
	EscalationFollowup   EscalationLevel = "IMMEDIATE_FOLLOWUP"
	EscalationSupervisor EscalationLevel = "SUPERVISOR_ESCALATION"
	EscalationManagement EscalationLevel = "MANAGEMENT_ESCALATION"
	EscalationLegal      EscalationLevel = "LEGAL_ACTION"
)

// Late fee is 10% of the daily rate per started overdue day.
const lateFeeRate = 0.10

// FeeAssessment is the derived, non-persistent result of assessing one
// rental at a reference time.
type FeeAssessment struct {
	RentalID          string          `json:"rental_id"`
	EquipmentID       string          `json:"equipment_id"`
	IsOverdue         bool            `json:"is_overdue"`
	OverdueHours      float64         `json:"overdue_hours"`
	OverdueDays       float64         `json:"overdue_days"`
	DaysForFee        int             `json:"days_for_fee"`
	CalculatedLateFee float64         `json:"calculated_late_fee"`
	RecordedLateFee   float64         `json:"recorded_late_fee"`
	FinalLateFee      float64         `json:"final_late_fee"`
	OverdueSince      *time.Time      `json:"overdue_since"`
	Severity          models.Severity `json:"severity"` // empty when not overdue
	EscalationLevel   EscalationLevel `json:"escalation_level"`
	RecommendedAction string          `json:"recommended_action"`
	PriorityScore     float64         `json:"priority_score"`
}

// FeeSweepResult summarizes applying the overdue policy across a whole
// rental book.
type FeeSweepResult struct {
	RentalsChecked int             `json:"rentals_checked"`
	OverdueCount   int             `json:"overdue_count"`
	TotalLateFees  float64         `json:"total_late_fees"`
	Updated        []FeeAssessment `json:"updated"`
}

// AssessFee applies the overdue policy to one rental contract at the
// reference time now. An open contract (no actual end) is measured
// against now; a closed one against its actual end. A contract ending
// on or before planned end plus grace is never overdue.
func AssessFee(rental models.Rental, now time.Time) (FeeAssessment, error) {
	if rental.RentalID == "" {
		return FeeAssessment{}, invalidInput("rental_id", "is required")
	}
	if rental.ContractEndTsPlanned.IsZero() {
		return FeeAssessment{}, invalidInput("contract_end_ts_planned", "is required")
	}
	if now.IsZero() {
		return FeeAssessment{}, invalidInput("now", "is required")
	}
	if rental.RateDay < 0 {
		return FeeAssessment{}, invalidInput("rate_day", "must not be negative")
	}
	if rental.GraceMinutes < 0 {
		return FeeAssessment{}, invalidInput("grace_minutes", "must not be negative")
	}

	endTime := now
	if rental.ActualEndTs != nil {
		endTime = *rental.ActualEndTs
	}

	deadline := rental.ContractEndTsPlanned.Add(time.Duration(rental.GraceMinutes) * time.Minute)

	if !endTime.After(deadline) {
		return FeeAssessment{
			RentalID:        rental.RentalID,
			EquipmentID:     rental.EquipmentID,
			RecordedLateFee: rental.LateFee,
			FinalLateFee:    rental.LateFee,
		}, nil
	}

	overdueHours := endTime.Sub(deadline).Hours()
	overdueDays := overdueHours / 24

	// Every started overdue day is billed: ceiling with a floor of one.
	daysForFee := int(math.Ceil(overdueDays))
	if daysForFee < 1 {
		daysForFee = 1
	}

	calculated := rental.RateDay * lateFeeRate * float64(daysForFee)

	// A manually recorded fee is an override and is never replaced.
	final := calculated
	if rental.LateFee > 0 {
		final = rental.LateFee
	}

	severity := overdueSeverity(overdueHours)
	escalation, action := escalationFor(severity, overdueHours)

	since := deadline
	return FeeAssessment{
		RentalID:          rental.RentalID,
		EquipmentID:       rental.EquipmentID,
		IsOverdue:         true,
		OverdueHours:      overdueHours,
		OverdueDays:       overdueDays,
		DaysForFee:        daysForFee,
		CalculatedLateFee: calculated,
		RecordedLateFee:   rental.LateFee,
		FinalLateFee:      final,
		OverdueSince:      &since,
		Severity:          severity,
		EscalationLevel:   escalation,
		RecommendedAction: action,
		PriorityScore:     overdueHours + calculated/1000,
	}, nil
}

func overdueSeverity(overdueHours float64) models.Severity {
	switch {
	case overdueHours >= 72:
		return models.SeverityCritical
	case overdueHours >= 24:
		return models.SeverityHigh
	case overdueHours >= 4:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

// escalationFor maps overdue duration to a response tier. Only
// CRITICAL and HIGH severities escalate at all.
func escalationFor(severity models.Severity, overdueHours float64) (EscalationLevel, string) {
	if severity != models.SeverityCritical && severity != models.SeverityHigh {
		return EscalationNone, ""
	}
	switch {
	case overdueHours >= 168:
		return EscalationLegal, "Initiate legal proceedings for equipment recovery"
	case overdueHours >= 120:
		return EscalationManagement, "Escalate to senior management and consider equipment recovery"
	case overdueHours >= 72:
		return EscalationSupervisor, "Escalate to supervisor for immediate customer contact"
	default:
		return EscalationFollowup, "Immediate phone call and site visit required"
	}
}

// SortByPriority orders assessments most urgent first.
func SortByPriority(assessments []FeeAssessment) {
	sort.Slice(assessments, func(i, j int) bool {
		return assessments[i].PriorityScore > assessments[j].PriorityScore
	})
}
