package fleet

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/fleetops/fleet-risk-service/pkg/db"
	"github.com/fleetops/fleet-risk-service/pkg/engine"
	"github.com/fleetops/fleet-risk-service/pkg/fleet/mocks"
)

func GetMockFleetWithMemorySqliteDialector(t *testing.T, useMockTelemetry, useMockRental bool) (
	*gomock.Controller,
	*FLEET,
	*mocks.MockITelemetry,
	*mocks.MockIRental,
) {
	ctrl := gomock.NewController(t)

	mockITelemetry := mocks.NewMockITelemetry(ctrl)
	mockIRental := mocks.NewMockIRental(ctrl)
	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations
	fleetInstance := &FLEET{Db: *dbInstance, Engine: engine.New(time.UTC)}

	telemetryService := fleetInstance.GetITelemetry()
	if useMockTelemetry {
		telemetryService = mockITelemetry
	}

	rentalService := fleetInstance.GetIRental()
	if useMockRental {
		rentalService = mockIRental
	}

	fleetInstance.WithServices(ServiceOpts{
		Telemetry: telemetryService,
		Usage:     fleetInstance.GetIUsage(),
		Anomaly:   fleetInstance.GetIAnomaly(),
		Health:    fleetInstance.GetIHealth(),
		Rental:    rentalService,
		Equipment: fleetInstance.GetIEquipment(),
	})

	return ctrl, fleetInstance, mockITelemetry, mockIRental
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
