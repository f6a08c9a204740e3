package fleet

import (
	"time"

	"go.uber.org/zap"

	"github.com/fleetops/fleet-risk-service/pkg/common"
	"github.com/fleetops/fleet-risk-service/pkg/engine"
	"github.com/fleetops/fleet-risk-service/pkg/models"
)

func (f *FLEET) ingestSample(equipmentID string, input *engine.TelemetrySample) ([]models.Event, models.Severity, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryTelemetry),
	)

	sample := *input
	sample.EquipmentID = equipmentID

	logger.Info("Received sample for equipment", zap.Reflect("sample", sample))

	meta, err := f.loadMeta(equipmentID)
	if err != nil {
		return nil, "", err
	}

	history, err := f.loadUsageWindow(equipmentID, sample.Timestamp)
	if err != nil {
		return nil, "", err
	}

	events, risk, err := f.Engine.EvaluateSample(sample, history, meta)
	if err != nil {
		return nil, "", err
	}

	saved, err := f.saveEvents(logger, events)
	if err != nil {
		return saved, risk, err
	}

	logger.Info("Evaluated sample for equipment",
		zap.String("equipment_id", equipmentID),
		zap.Int("events", len(saved)),
		zap.String("risk_level", string(risk)))

	return saved, risk, nil
}

func (f *FLEET) reportTamper(equipmentID string, report *engine.TamperReport) (*engine.TamperAssessment, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryTelemetry),
	)

	if _, err := f.loadMeta(equipmentID); err != nil {
		return nil, err
	}

	events, score, recommendation, err := f.Engine.EvaluateTamper(equipmentID, *report, time.Now())
	if err != nil {
		return nil, err
	}

	// Tamper indicators are individually reported incidents; each one
	// is persisted even when several share a day.
	for i := range events {
		logger.Info("Event found", zap.Reflect("event", events[i]))
		if err := f.Db.Conn.Create(&events[i]).Error; err != nil {
			return nil, err
		}
		logger.Info("Event saved", zap.Reflect("event", events[i]))
	}

	return &engine.TamperAssessment{
		Events:         events,
		RiskScore:      score,
		Recommendation: recommendation,
	}, nil
}

type ITelemetryImpl struct {
	fleet *FLEET
}

func (it *ITelemetryImpl) IngestSample(equipmentID string, input *engine.TelemetrySample) ([]models.Event, models.Severity, error) {
	return it.fleet.ingestSample(equipmentID, input)
}

func (it *ITelemetryImpl) ReportTamper(equipmentID string, report *engine.TamperReport) (*engine.TamperAssessment, error) {
	return it.fleet.reportTamper(equipmentID, report)
}

func (f *FLEET) GetITelemetry() ITelemetry {
	return &ITelemetryImpl{fleet: f}
}
