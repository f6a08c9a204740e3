package http

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/fleetops/fleet-risk-service/pkg/fleet"
)

type RestfulServer struct {
	Server           *gin.Engine
	Fleet            *fleet.FLEET
	RateLimiterStore *fleet.RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(equipmentID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(equipmentID)
	}
}

func (rs *RestfulServer) CheckEquipmentLimiter(equipmentID string) bool {
	limiter := rs.GetLimiter(equipmentID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(equipmentID string, equipmentRate float64, equipmentBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(equipmentID, rate.Limit(equipmentRate), equipmentBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	equipment := rs.Server.Group("/equipment/:equipment_id")
	{
		equipment.POST("", rs.PostEquipment)
		equipment.POST("/telemetry", rs.PostTelemetry)
		equipment.POST("/tamper", rs.PostTamper)
		equipment.POST("/usage", rs.PostUsage)
		equipment.GET("/anomalies", rs.GetAnomalies)
		equipment.GET("/health", rs.GetHealth)
		equipment.POST("/limiter", rs.PostLimiter)
	}

	anomalies := rs.Server.Group("/anomalies")
	{
		anomalies.POST("/batch-detect", rs.PostBatchDetect)
	}

	rentals := rs.Server.Group("/rentals")
	{
		rentals.GET("/overdue", rs.GetOverdueRentals)
		rentals.POST("/update-fees", rs.PostUpdateFees)
		rentals.GET("/escalation-report", rs.GetEscalationReport)
	}
}
