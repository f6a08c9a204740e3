package fleet

import (
	"time"

	"go.uber.org/zap"

	"github.com/fleetops/fleet-risk-service/pkg/engine"
	"github.com/fleetops/fleet-risk-service/pkg/models"
)

// usageWindowDays bounds how far back the loaders reach for baseline
// and health history.
const usageWindowDays = 30

func (f *FLEET) loadMeta(equipmentID string) (engine.EquipmentMeta, error) {
	var equipment models.Equipment
	if err := f.Db.Conn.First(&equipment, "equipment_id = ?", equipmentID).Error; err != nil {
		return engine.EquipmentMeta{}, err
	}
	return engine.EquipmentMeta{
		EquipmentID:   equipment.EquipmentID,
		EquipmentType: equipment.EquipmentType,
		Year:          equipment.Year,
	}, nil
}

func (f *FLEET) loadUsageWindow(equipmentID string, until time.Time) ([]models.UsageDaily, error) {
	since := until.AddDate(0, 0, -usageWindowDays)

	var records []models.UsageDaily
	err := f.Db.Conn.
		Where("equipment_id = ? AND date >= ? AND date <= ?", equipmentID, since, until).
		Order("date asc").
		Find(&records).Error
	return records, err
}

// saveEvents persists events that are new by business key. Engine event
// ids are fresh on every evaluation, so (equipment, subtype, UTC day)
// decides whether an event already exists.
func (f *FLEET) saveEvents(logger *zap.Logger, events []models.Event) ([]models.Event, error) {
	saved := make([]models.Event, 0, len(events))
	for _, event := range events {
		dayStart := event.Ts.UTC().Truncate(24 * time.Hour)
		dayEnd := dayStart.Add(24 * time.Hour)

		var count int64
		err := f.Db.Conn.Model(&models.Event{}).
			Where("equipment_id = ? AND subtype = ? AND ts >= ? AND ts < ?",
				event.EquipmentID, event.Subtype, dayStart, dayEnd).
			Count(&count).Error
		if err != nil {
			return saved, err
		}
		if count > 0 {
			continue
		}

		logger.Info("Event found", zap.Reflect("event", event))

		if err := f.Db.Conn.Create(&event).Error; err != nil {
			return saved, err
		}

		logger.Info("Event saved", zap.Reflect("event", event))
		saved = append(saved, event)
	}
	return saved, nil
}
