package models

import "time"

type EquipmentStatus string

const (
	EquipmentStatusAvailable    EquipmentStatus = "AVAILABLE"
	EquipmentStatusRented       EquipmentStatus = "RENTED"
	EquipmentStatusMaintenance  EquipmentStatus = "MAINTENANCE"
	EquipmentStatusOutOfService EquipmentStatus = "OUT_OF_SERVICE"
)

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusDue     PaymentStatus = "DUE"
	PaymentStatusOverdue PaymentStatus = "OVERDUE"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
)

type EventType string

const (
	EventTypeAnomaly    EventType = "ANOMALY"
	EventTypeSecurity   EventType = "SECURITY"
	EventTypeOverdue    EventType = "OVERDUE"
	EventTypePredictive EventType = "PREDICTIVE"
)

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

type Equipment struct {
	EquipmentID   string          `gorm:"primaryKey" json:"equipment_id"`
	EquipmentType string          `gorm:"index" json:"equipment_type"`
	Make          string          `json:"make"`
	Model         string          `json:"model"`
	Year          int             `json:"year"`
	Capacity      float64         `json:"capacity"`
	FuelType      string          `json:"fuel_type"`
	BranchID      string          `gorm:"index" json:"branch_id"`
	BranchName    string          `json:"branch_name"`
	SiteID        string          `gorm:"index" json:"site_id"`
	SiteName      string          `json:"site_name"`
	Status        EquipmentStatus `gorm:"type:varchar(20)" json:"status"`

	Rentals      []Rental     `gorm:"foreignKey:EquipmentID;references:EquipmentID" json:"-"`
	UsageRecords []UsageDaily `gorm:"foreignKey:EquipmentID;references:EquipmentID" json:"-"`
	Events       []Event      `gorm:"foreignKey:EquipmentID;references:EquipmentID" json:"-"`
}

type Rental struct {
	RentalID             string        `gorm:"primaryKey" json:"rental_id"`
	EquipmentID          string        `gorm:"index" json:"equipment_id"`
	CustomerID           string        `gorm:"index" json:"customer_id"`
	CustomerName         string        `json:"customer_name"`
	ContractStartTs      time.Time     `json:"contract_start_ts"`
	ContractEndTsPlanned time.Time     `json:"contract_end_ts_planned"`
	ActualEndTs          *time.Time    `json:"actual_end_ts"`
	RateDay              float64       `json:"rate_day"`
	GraceMinutes         int           `json:"grace_minutes"`
	LateHours            float64       `json:"late_hours"`
	LateDays             int           `json:"late_days"`
	LateFee              float64       `json:"late_fee"`
	PaymentStatus        PaymentStatus `gorm:"type:varchar(10)" json:"payment_status"`
}

// UsageDaily is one asset-day of usage, the canonical unit the
// risk engine analyzes in aggregate. Append-only.
type UsageDaily struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	EquipmentID    string    `gorm:"index" json:"equipment_id"`
	Date           time.Time `gorm:"index" json:"date"`
	RuntimeHours   float64   `json:"runtime_hours"`
	IdleHours      float64   `json:"idle_hours"`
	FuelUsedLiters float64   `json:"fuel_used_liters"`
	FuelEffLph     float64   `json:"fuel_eff_lph"`
	BreakdownHours float64   `json:"breakdown_hours"`
	UtilizationPct float64   `json:"utilization_pct"`
	LastGpsLat     *float64  `json:"last_gps_lat"`
	LastGpsLon     *float64  `json:"last_gps_lon"`
}

// Event is an append-only log record; prior events are never mutated,
// the engine only emits new ones.
type Event struct {
	EventID     string    `gorm:"primaryKey" json:"event_id"`
	EquipmentID string    `gorm:"index" json:"equipment_id"`
	Ts          time.Time `gorm:"index" json:"ts"`
	EventType   EventType `gorm:"type:varchar(20);index" json:"event_type"`
	Subtype     string    `json:"subtype"`
	Severity    Severity  `gorm:"type:varchar(10)" json:"severity"`
	Value       float64   `json:"value"`
	Details     string    `json:"details"`
	Resolved    bool      `json:"resolved"`
}

type HealthSnapshot struct {
	ID                  uint      `gorm:"primaryKey" json:"-"`
	EquipmentID         string    `gorm:"index" json:"equipment_id"`
	PredictionDate      time.Time `gorm:"index" json:"prediction_date"`
	HealthScore         float64   `json:"health_score"`
	FailureProbability  float64   `json:"failure_probability"`
	RiskLevel           Severity  `gorm:"type:varchar(10)" json:"risk_level"`
	NextMaintenanceDays int       `json:"next_maintenance_days"`
}
