package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"github.com/fleetops/fleet-risk-service/pkg/engine"
	"github.com/fleetops/fleet-risk-service/pkg/fleet"
	"github.com/fleetops/fleet-risk-service/pkg/models"
)

// serviceError maps service failures onto status codes: unknown
// records are 404, rejected input is 400, the rest is 500.
func serviceError(c *gin.Context, err error) {
	var verr *engine.ValidationError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, fleet.ErrInsufficientHistory):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, err)
	}
}

type EquipmentRequest struct {
	EquipmentType string  `json:"equipment_type"`
	Make          string  `json:"make"`
	Model         string  `json:"model"`
	Year          int     `json:"year"`
	Capacity      float64 `json:"capacity"`
	FuelType      string  `json:"fuel_type"`
	BranchID      string  `json:"branch_id"`
	BranchName    string  `json:"branch_name"`
	SiteID        string  `json:"site_id"`
	SiteName      string  `json:"site_name"`
	Status        string  `json:"status"`
}

var equipmentRequestSchema = z.Struct(z.Shape{
	"EquipmentType": z.String().Required(),
	"Make":          z.String(),
	"Model":         z.String(),
	"Year":          z.Int().Required(),
	"Capacity":      z.Float64(),
	"FuelType":      z.String(),
	"BranchID":      z.String(),
	"BranchName":    z.String(),
	"SiteID":        z.String(),
	"SiteName":      z.String(),
	"Status":        z.String(),
})

func (rs *RestfulServer) PostEquipment(c *gin.Context) {
	equipmentID := c.Param("equipment_id")

	if !rs.CheckEquipmentLimiter(equipmentID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req EquipmentRequest
	if err := equipmentRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if err := rs.Fleet.Equipment.UpsertEquipment(equipmentID, &models.Equipment{
		EquipmentType: req.EquipmentType,
		Make:          req.Make,
		Model:         req.Model,
		Year:          req.Year,
		Capacity:      req.Capacity,
		FuelType:      req.FuelType,
		BranchID:      req.BranchID,
		BranchName:    req.BranchName,
		SiteID:        req.SiteID,
		SiteName:      req.SiteName,
		Status:        models.EquipmentStatus(req.Status),
	}); err != nil {
		serviceError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

type TelemetryRequest struct {
	Timestamp         time.Time `json:"timestamp"`
	FuelLevel         float64   `json:"fuel_level"`
	EngineHours       float64   `json:"engine_hours"`
	GpsLat            float64   `json:"gps_lat"`
	GpsLon            float64   `json:"gps_lon"`
	EngineTemp        float64   `json:"engine_temp"`
	HydraulicPressure float64   `json:"hydraulic_pressure"`
	IsEngineOn        bool      `json:"is_engine_on"`
	OperatorID        string    `json:"operator_id"`
}

var telemetryRequestSchema = z.Struct(z.Shape{
	"Timestamp":         z.Time().Required(),
	"FuelLevel":         z.Float64(),
	"EngineHours":       z.Float64(),
	"GpsLat":            z.Float64(),
	"GpsLon":            z.Float64(),
	"EngineTemp":        z.Float64(),
	"HydraulicPressure": z.Float64(),
	"IsEngineOn":        z.Bool(),
	"OperatorID":        z.String(),
})

func (rs *RestfulServer) PostTelemetry(c *gin.Context) {
	equipmentID := c.Param("equipment_id")

	if !rs.CheckEquipmentLimiter(equipmentID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req TelemetryRequest
	if err := telemetryRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	events, risk, err := rs.Fleet.Telemetry.IngestSample(equipmentID, &engine.TelemetrySample{
		Timestamp:         req.Timestamp,
		FuelLevel:         req.FuelLevel,
		EngineHours:       req.EngineHours,
		GpsLat:            req.GpsLat,
		GpsLon:            req.GpsLon,
		EngineTemp:        req.EngineTemp,
		HydraulicPressure: req.HydraulicPressure,
		IsEngineOn:        req.IsEngineOn,
		OperatorID:        req.OperatorID,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events, "risk_level": risk})
}

func (rs *RestfulServer) PostTamper(c *gin.Context) {
	equipmentID := c.Param("equipment_id")

	if !rs.CheckEquipmentLimiter(equipmentID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var report engine.TamperReport
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assessment, err := rs.Fleet.Telemetry.ReportTamper(equipmentID, &report)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assessment)
}

type UsageRequest struct {
	Date           time.Time `json:"date"`
	RuntimeHours   float64   `json:"runtime_hours"`
	IdleHours      float64   `json:"idle_hours"`
	FuelUsedLiters float64   `json:"fuel_used_liters"`
	FuelEffLph     float64   `json:"fuel_eff_lph"`
	BreakdownHours float64   `json:"breakdown_hours"`
	UtilizationPct float64   `json:"utilization_pct"`
	LastGpsLat     *float64  `json:"last_gps_lat"`
	LastGpsLon     *float64  `json:"last_gps_lon"`
}

var usageRequestSchema = z.Struct(z.Shape{
	"Date":           z.Time().Required(),
	"RuntimeHours":   z.Float64(),
	"IdleHours":      z.Float64(),
	"FuelUsedLiters": z.Float64(),
	"FuelEffLph":     z.Float64(),
	"BreakdownHours": z.Float64(),
	"UtilizationPct": z.Float64(),
	"LastGpsLat":     z.Ptr(z.Float64()),
	"LastGpsLon":     z.Ptr(z.Float64()),
})

func (rs *RestfulServer) PostUsage(c *gin.Context) {
	equipmentID := c.Param("equipment_id")

	if !rs.CheckEquipmentLimiter(equipmentID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req UsageRequest
	if err := usageRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	events, err := rs.Fleet.Usage.RecordUsage(equipmentID, &models.UsageDaily{
		Date:           req.Date,
		RuntimeHours:   req.RuntimeHours,
		IdleHours:      req.IdleHours,
		FuelUsedLiters: req.FuelUsedLiters,
		FuelEffLph:     req.FuelEffLph,
		BreakdownHours: req.BreakdownHours,
		UtilizationPct: req.UtilizationPct,
		LastGpsLat:     req.LastGpsLat,
		LastGpsLon:     req.LastGpsLon,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (rs *RestfulServer) GetAnomalies(c *gin.Context) {
	equipmentID := c.Param("equipment_id")

	if !rs.CheckEquipmentLimiter(equipmentID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var events []models.Event
	var err error
	if events, err = rs.Fleet.Anomaly.GetEquipmentEvents(equipmentID); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

func (rs *RestfulServer) GetHealth(c *gin.Context) {
	equipmentID := c.Param("equipment_id")

	if !rs.CheckEquipmentLimiter(equipmentID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	score, err := rs.Fleet.Health.ScoreEquipment(equipmentID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, score)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	equipmentID := c.Param("equipment_id")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(equipmentID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

type BatchDetectRequest struct {
	Samples []engine.TelemetrySample `json:"samples"`
	Workers int                      `json:"workers"`
}

func (rs *RestfulServer) PostBatchDetect(c *gin.Context) {
	var req BatchDetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Workers == 0 {
		req.Workers = 4
	}

	results, err := rs.Fleet.Anomaly.DetectBatch(req.Samples, req.Workers)
	if err != nil {
		serviceError(c, err)
		return
	}

	out := make([]gin.H, 0, len(results))
	for _, r := range results {
		item := gin.H{
			"equipment_id": r.EquipmentID,
			"events":       r.Events,
			"risk_level":   r.RiskLevel,
		}
		if r.Err != nil {
			item["error"] = r.Err.Error()
		}
		out = append(out, item)
	}

	c.JSON(http.StatusOK, gin.H{"results": out})
}

func (rs *RestfulServer) GetOverdueRentals(c *gin.Context) {
	overdue, err := rs.Fleet.Rental.SweepOverdue()
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(overdue), "rentals": overdue})
}

func (rs *RestfulServer) PostUpdateFees(c *gin.Context) {
	result, err := rs.Fleet.Rental.UpdateFees()
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (rs *RestfulServer) GetEscalationReport(c *gin.Context) {
	report, err := rs.Fleet.Rental.EscalationReport()
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(report), "escalations": report})
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
