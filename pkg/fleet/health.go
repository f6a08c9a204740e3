package fleet

import (
	"time"

	"go.uber.org/zap"

	"github.com/fleetops/fleet-risk-service/pkg/common"
	"github.com/fleetops/fleet-risk-service/pkg/engine"
	"github.com/fleetops/fleet-risk-service/pkg/models"
)

func (f *FLEET) scoreEquipment(equipmentID string) (*engine.HealthScore, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryHealth),
	)

	meta, err := f.loadMeta(equipmentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	history, err := f.loadUsageWindow(equipmentID, now)
	if err != nil {
		return nil, err
	}

	score, ok := engine.ScoreHealth(meta, history, now)
	if !ok {
		return nil, ErrInsufficientHistory
	}

	snapshot := models.HealthSnapshot{
		EquipmentID:         equipmentID,
		PredictionDate:      now,
		HealthScore:         score.HealthScore,
		FailureProbability:  score.FailureProbability,
		RiskLevel:           score.RiskLevel,
		NextMaintenanceDays: score.NextMaintenanceDays,
	}

	logger.Info("Health scored for equipment", zap.Reflect("snapshot", snapshot))

	if err := f.Db.Conn.Create(&snapshot).Error; err != nil {
		return nil, err
	}

	logger.Info("Health snapshot saved", zap.Reflect("snapshot", snapshot))

	return score, nil
}

type IHealthImpl struct {
	fleet *FLEET
}

func (ih *IHealthImpl) ScoreEquipment(equipmentID string) (*engine.HealthScore, error) {
	return ih.fleet.scoreEquipment(equipmentID)
}

func (f *FLEET) GetIHealth() IHealth {
	return &IHealthImpl{fleet: f}
}
