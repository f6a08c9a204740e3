package fleet

import (
	"go.uber.org/zap"

	"github.com/fleetops/fleet-risk-service/pkg/common"
	"github.com/fleetops/fleet-risk-service/pkg/engine"
	"github.com/fleetops/fleet-risk-service/pkg/models"
)

func (f *FLEET) recordUsage(equipmentID string, input *models.UsageDaily) ([]models.Event, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryUsage),
	)

	meta, err := f.loadMeta(equipmentID)
	if err != nil {
		return nil, err
	}

	record := *input
	record.ID = 0
	record.EquipmentID = equipmentID

	if err := engine.ValidateUsage(record); err != nil {
		return nil, err
	}

	logger.Info("Received usage for equipment", zap.Reflect("usage", record))

	if err := f.Db.Conn.Create(&record).Error; err != nil {
		return nil, err
	}

	logger.Info("Saved usage for equipment", zap.Reflect("usage", record))

	// Re-run the aggregate rules over the trailing window including
	// the new record.
	history, err := f.loadUsageWindow(equipmentID, record.Date)
	if err != nil {
		return nil, err
	}

	typed := make([]engine.TypedUsage, 0, len(history))
	for _, r := range history {
		typed = append(typed, engine.TypedUsage{Record: r, EquipmentType: meta.EquipmentType})
	}

	events, err := f.Engine.EvaluateHistory(typed)
	if err != nil {
		return nil, err
	}

	return f.saveEvents(logger, events)
}

type IUsageImpl struct {
	fleet *FLEET
}

func (iu *IUsageImpl) RecordUsage(equipmentID string, input *models.UsageDaily) ([]models.Event, error) {
	return iu.fleet.recordUsage(equipmentID, input)
}

func (f *FLEET) GetIUsage() IUsage {
	return &IUsageImpl{fleet: f}
}
