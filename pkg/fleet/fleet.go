package fleet

import (
	"errors"

	"github.com/fleetops/fleet-risk-service/pkg/db"
	"github.com/fleetops/fleet-risk-service/pkg/engine"
	"github.com/fleetops/fleet-risk-service/pkg/models"
)

// ErrInsufficientHistory marks an asset that does not yet have enough
// usage records for statistical assessment.
var ErrInsufficientHistory = errors.New("insufficient usage history")

type ITelemetry interface {
	IngestSample(equipmentID string, input *engine.TelemetrySample) ([]models.Event, models.Severity, error)
	ReportTamper(equipmentID string, report *engine.TamperReport) (*engine.TamperAssessment, error)
}

type IUsage interface {
	RecordUsage(equipmentID string, input *models.UsageDaily) ([]models.Event, error)
}

type IAnomaly interface {
	GetEquipmentEvents(equipmentID string) ([]models.Event, error)
	DetectBatch(samples []engine.TelemetrySample, workers int) ([]engine.BatchResult, error)
}

type IHealth interface {
	ScoreEquipment(equipmentID string) (*engine.HealthScore, error)
}

type IRental interface {
	AssessRental(rentalID string) (*engine.FeeAssessment, error)
	SweepOverdue() ([]engine.FeeAssessment, error)
	UpdateFees() (*engine.FeeSweepResult, error)
	EscalationReport() ([]engine.FeeAssessment, error)
}

type IEquipment interface {
	UpsertEquipment(equipmentID string, input *models.Equipment) error
}

type FLEET struct {
	Db     db.DB
	Engine *engine.Engine

	Telemetry ITelemetry
	Usage     IUsage
	Anomaly   IAnomaly
	Health    IHealth
	Rental    IRental
	Equipment IEquipment
}

type ServiceOpts struct {
	Telemetry ITelemetry
	Usage     IUsage
	Anomaly   IAnomaly
	Health    IHealth
	Rental    IRental
	Equipment IEquipment
}

func (f *FLEET) WithServices(opts ServiceOpts) *FLEET {
	if opts.Telemetry != nil {
		f.Telemetry = opts.Telemetry
	}
	if opts.Usage != nil {
		f.Usage = opts.Usage
	}
	if opts.Anomaly != nil {
		f.Anomaly = opts.Anomaly
	}
	if opts.Health != nil {
		f.Health = opts.Health
	}
	if opts.Rental != nil {
		f.Rental = opts.Rental
	}
	if opts.Equipment != nil {
		f.Equipment = opts.Equipment
	}
	return f
}
