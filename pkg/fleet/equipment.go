package fleet

import (
	"go.uber.org/zap"
	"gorm.io/gorm/clause"

	"github.com/fleetops/fleet-risk-service/pkg/common"
	"github.com/fleetops/fleet-risk-service/pkg/models"
)

func (f *FLEET) upsertEquipment(equipmentID string, input *models.Equipment) error {
	logger := common.GetLoggerWith(
		common.LoggerNameFleetCore,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryEquipment),
	)

	equipment := *input
	equipment.EquipmentID = equipmentID
	if equipment.Status == "" {
		equipment.Status = models.EquipmentStatusAvailable
	}

	logger.Info("Received equipment", zap.Reflect("equipment", equipment))

	err := f.Db.Conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "equipment_id"}},
		UpdateAll: true,
	}).Create(&equipment).Error

	if err == nil {
		logger.Info("Upserted equipment", zap.Reflect("equipment", equipment))
	}

	return err
}

type IEquipmentImpl struct {
	fleet *FLEET
}

func (ie *IEquipmentImpl) UpsertEquipment(equipmentID string, input *models.Equipment) error {
	return ie.fleet.upsertEquipment(equipmentID, input)
}

func (f *FLEET) GetIEquipment() IEquipment {
	return &IEquipmentImpl{fleet: f}
}
