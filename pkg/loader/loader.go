package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm/clause"

	"github.com/fleetops/fleet-risk-service/pkg/common"
	"github.com/fleetops/fleet-risk-service/pkg/db"
	"github.com/fleetops/fleet-risk-service/pkg/engine"
	"github.com/fleetops/fleet-risk-service/pkg/models"
)

// Loader bulk-imports fleet CSV fixtures. Bad rows are logged and
// skipped so one malformed line never aborts a whole file.
type Loader struct {
	Db db.DB
}

type LoadResult struct {
	Loaded  int `json:"loaded"`
	Skipped int `json:"skipped"`
}

type row struct {
	index  map[string]int
	fields []string
}

func (r row) str(name string) string {
	i, ok := r.index[name]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func (r row) float(name string) (float64, error) {
	s := r.str(name)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func (r row) int(name string) (int, error) {
	s := r.str(name)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// parseTimestamp accepts the datetime shapes seen in fixture exports:
// RFC 3339, a bare date, and DD-MM-YYYY.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02", "02-01-2006"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp: %q", s)
}

func (r row) time(name string) (time.Time, error) {
	s := r.str(name)
	if s == "" {
		return time.Time{}, fmt.Errorf("missing %v", name)
	}
	return parseTimestamp(s)
}

// forEachRow streams a CSV file row by row. rowFn returns an error to
// mark the row bad; the walk continues either way.
func forEachRow(path string, logger *zap.Logger, rowFn func(r row) error) (LoadResult, error) {
	var result LoadResult

	f, err := os.Open(path)
	if err != nil {
		return result, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return result, fmt.Errorf("read header of %v: %w", path, err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	line := 1
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logger.Warn("Row skipped", zap.Int("line", line), zap.Error(err))
			result.Skipped++
			continue
		}
		if err := rowFn(row{index: index, fields: fields}); err != nil {
			logger.Warn("Row skipped", zap.Int("line", line), zap.Error(err))
			result.Skipped++
			continue
		}
		result.Loaded++
	}

	logger.Info("CSV file loaded",
		zap.String("path", path),
		zap.Int("loaded", result.Loaded),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

func (l *Loader) LoadEquipmentCSV(path string) (LoadResult, error) {
	logger := common.GetLoggerWith(common.LoggerNameCsvLoader,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryEquipment))

	return forEachRow(path, logger, func(r row) error {
		if r.str("equipment_id") == "" {
			return fmt.Errorf("missing equipment_id")
		}
		year, err := r.int("year")
		if err != nil {
			return err
		}
		capacity, err := r.float("capacity")
		if err != nil {
			return err
		}
		equipment := models.Equipment{
			EquipmentID:   r.str("equipment_id"),
			EquipmentType: r.str("equipment_type"),
			Make:          r.str("make"),
			Model:         r.str("model"),
			Year:          year,
			Capacity:      capacity,
			FuelType:      r.str("fuel_type"),
			BranchID:      r.str("branch_id"),
			BranchName:    r.str("branch_name"),
			SiteID:        r.str("site_id"),
			SiteName:      r.str("site_name"),
			Status:        models.EquipmentStatus(r.str("status")),
		}
		if equipment.Status == "" {
			equipment.Status = models.EquipmentStatusAvailable
		}
		return l.Db.Conn.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "equipment_id"}},
			UpdateAll: true,
		}).Create(&equipment).Error
	})
}

func (l *Loader) LoadRentalsCSV(path string) (LoadResult, error) {
	logger := common.GetLoggerWith(common.LoggerNameCsvLoader,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryRental))

	return forEachRow(path, logger, func(r row) error {
		if r.str("rental_id") == "" || r.str("equipment_id") == "" {
			return fmt.Errorf("missing rental_id or equipment_id")
		}
		start, err := r.time("contract_start_ts")
		if err != nil {
			return err
		}
		plannedEnd, err := r.time("contract_end_ts_planned")
		if err != nil {
			return err
		}
		var actualEnd *time.Time
		if r.str("actual_end_ts") != "" {
			ts, err := parseTimestamp(r.str("actual_end_ts"))
			if err != nil {
				return err
			}
			actualEnd = &ts
		}
		rateDay, err := r.float("rate_day")
		if err != nil {
			return err
		}
		graceMinutes, err := r.int("grace_minutes")
		if err != nil {
			return err
		}
		lateHours, err := r.float("late_hours")
		if err != nil {
			return err
		}
		lateDays, err := r.int("late_days")
		if err != nil {
			return err
		}
		lateFee, err := r.float("late_fee")
		if err != nil {
			return err
		}
		rental := models.Rental{
			RentalID:             r.str("rental_id"),
			EquipmentID:          r.str("equipment_id"),
			CustomerID:           r.str("customer_id"),
			CustomerName:         r.str("customer_name"),
			ContractStartTs:      start,
			ContractEndTsPlanned: plannedEnd,
			ActualEndTs:          actualEnd,
			RateDay:              rateDay,
			GraceMinutes:         graceMinutes,
			LateHours:            lateHours,
			LateDays:             lateDays,
			LateFee:              lateFee,
			PaymentStatus:        models.PaymentStatus(r.str("payment_status")),
		}
		if rental.PaymentStatus == "" {
			rental.PaymentStatus = models.PaymentStatusDue
		}
		return l.Db.Conn.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "rental_id"}},
			UpdateAll: true,
		}).Create(&rental).Error
	})
}

func (l *Loader) LoadUsageCSV(path string) (LoadResult, error) {
	logger := common.GetLoggerWith(common.LoggerNameCsvLoader,
		zap.String(common.LoggerFieldFleetCategory, common.LoggerCategoryUsage))

	return forEachRow(path, logger, func(r row) error {
		date, err := r.time("date")
		if err != nil {
			return err
		}
		runtimeHours, err := r.float("runtime_hours")
		if err != nil {
			return err
		}
		idleHours, err := r.float("idle_hours")
		if err != nil {
			return err
		}
		fuelUsed, err := r.float("fuel_used_liters")
		if err != nil {
			return err
		}
		fuelEff, err := r.float("fuel_eff_lph")
		if err != nil {
			return err
		}
		breakdownHours, err := r.float("breakdown_hours")
		if err != nil {
			return err
		}
		utilizationPct, err := r.float("utilization_pct")
		if err != nil {
			return err
		}
		var lat, lon *float64
		if r.str("last_gps_lat") != "" && r.str("last_gps_lon") != "" {
			latVal, err := r.float("last_gps_lat")
			if err != nil {
				return err
			}
			lonVal, err := r.float("last_gps_lon")
			if err != nil {
				return err
			}
			lat, lon = &latVal, &lonVal
		}
		record := models.UsageDaily{
			EquipmentID:    r.str("equipment_id"),
			Date:           date,
			RuntimeHours:   runtimeHours,
			IdleHours:      idleHours,
			FuelUsedLiters: fuelUsed,
			FuelEffLph:     fuelEff,
			BreakdownHours: breakdownHours,
			UtilizationPct: utilizationPct,
			LastGpsLat:     lat,
			LastGpsLon:     lon,
		}
		if err := engine.ValidateUsage(record); err != nil {
			return err
		}
		return l.Db.Conn.Create(&record).Error
	})
}
