package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fleetops/fleet-risk-service/pkg/common"
	"github.com/fleetops/fleet-risk-service/pkg/db"
	"github.com/fleetops/fleet-risk-service/pkg/engine"
	"github.com/fleetops/fleet-risk-service/pkg/fleet"
	fleetHttp "github.com/fleetops/fleet-risk-service/pkg/http"
	"github.com/fleetops/fleet-risk-service/pkg/loader"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	fleetDbType := os.Getenv(common.EnvKeyFleetDBType)
	switch fleetDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown FLEET_DB_TYPE: " + fleetDbType)
	}

	if csvDir := strings.TrimSpace(os.Getenv(common.EnvKeyFleetCsvDir)); csvDir != "" {
		l := loader.Loader{Db: *dbInstance}
		loads := []struct {
			file string
			load func(string) (loader.LoadResult, error)
		}{
			{"master_equipment.csv", l.LoadEquipmentCSV},
			{"rentals.csv", l.LoadRentalsCSV},
			{"usage_daily.csv", l.LoadUsageCSV},
		}
		for _, entry := range loads {
			path := filepath.Join(csvDir, entry.file)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if _, err := entry.load(path); err != nil {
				log.Fatalf("failed to load %v: %v", path, err)
			}
		}
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyFleetHttpHostPort))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyFleetDefaultRate), 64); err != nil {
		log.Fatal("Invalid FLEET_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyFleetDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid FLEET_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	timezone := strings.TrimSpace(os.Getenv(common.EnvKeyFleetTimezone))
	if timezone == "" {
		timezone = "UTC"
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.Fatal("Invalid FLEET_TIMEZONE: " + timezone)
	}

	logger := common.GetLogger()

	fleetCore := fleet.FLEET{
		Db:     *dbInstance,
		Engine: engine.New(loc),
	}
	fleetCore.WithServices(fleet.ServiceOpts{
		Telemetry: fleetCore.GetITelemetry(),
		Usage:     fleetCore.GetIUsage(),
		Anomaly:   fleetCore.GetIAnomaly(),
		Health:    fleetCore.GetIHealth(),
		Rental:    fleetCore.GetIRental(),
		Equipment: fleetCore.GetIEquipment(),
	})

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	logger.Info("Starting HTTP server on port " + httpHostPort)
	rs := &fleetHttp.RestfulServer{
		Server:           gin.Default(),
		Fleet:            &fleetCore,
		RateLimiterStore: fleet.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
