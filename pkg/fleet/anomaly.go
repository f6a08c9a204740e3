package fleet

import (
	"go.uber.org/zap"

	"github.com/fleetops/fleet-risk-service/pkg/common"
	"github.com/fleetops/fleet-risk-service/pkg/engine"
	"github.com/fleetops/fleet-risk-service/pkg/models"
)

func (f *FLEET) getEquipmentEvents(equipmentID string) ([]models.Event, error) {
	var events []models.Event
	err := f.Db.Conn.
		Where("equipment_id = ?", equipmentID).
		Order("ts desc").
		Find(&events).Error
	return events, err
}

// detectBatch evaluates one sample per asset concurrently and persists
// whatever each evaluation produced. A sample that fails to load its
// asset or validate is reported in its result, not fatal to the batch.
func (f *FLEET) detectBatch(samples []engine.TelemetrySample, workers int) ([]engine.BatchResult, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryAnomaly),
	)

	logger.Info("Batch detection started",
		zap.Int("samples", len(samples)), zap.Int("workers", workers))

	inputs := make([]engine.BatchInput, 0, len(samples))
	loadErrs := make(map[string]error, len(samples))
	for _, sample := range samples {
		meta, err := f.loadMeta(sample.EquipmentID)
		if err != nil {
			loadErrs[sample.EquipmentID] = err
			inputs = append(inputs, engine.BatchInput{Sample: sample})
			continue
		}
		history, err := f.loadUsageWindow(sample.EquipmentID, sample.Timestamp)
		if err != nil {
			loadErrs[sample.EquipmentID] = err
			inputs = append(inputs, engine.BatchInput{Sample: sample})
			continue
		}
		inputs = append(inputs, engine.BatchInput{Sample: sample, History: history, Meta: meta})
	}

	results := f.Engine.EvaluateBatch(inputs, workers)

	for i := range results {
		if err, failed := loadErrs[results[i].EquipmentID]; failed {
			results[i] = engine.BatchResult{EquipmentID: results[i].EquipmentID, Err: err}
			continue
		}
		if results[i].Err != nil {
			continue
		}
		saved, err := f.saveEvents(logger, results[i].Events)
		if err != nil {
			return nil, err
		}
		results[i].Events = saved
	}

	logger.Info("Batch detection finished", zap.Int("samples", len(samples)))

	return results, nil
}

type IAnomalyImpl struct {
	fleet *FLEET
}

func (ia *IAnomalyImpl) GetEquipmentEvents(equipmentID string) ([]models.Event, error) {
	return ia.fleet.getEquipmentEvents(equipmentID)
}

func (ia *IAnomalyImpl) DetectBatch(samples []engine.TelemetrySample, workers int) ([]engine.BatchResult, error) {
	return ia.fleet.detectBatch(samples, workers)
}

func (f *FLEET) GetIAnomaly() IAnomaly {
	return &IAnomalyImpl{fleet: f}
}
