package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyFleetDBType string = "FLEET_DB_TYPE"
	EnvKeyFleetDbPath string = "FLEET_DB_PATH"

	EnvKeyFleetHttpHostPort string = "FLEET_HTTP_HOST_PORT"

	EnvKeyFleetDefaultRate  string = "FLEET_DEFAULT_RATE"
	EnvKeyFleetDefaultBurst string = "FLEET_DEFAULT_BURST"

	EnvKeyFleetTimezone string = "FLEET_TIMEZONE"

	EnvKeyFleetCsvDir string = "FLEET_CSV_DIR"

	LoggerNameFleetCore     string = "fleet_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameCsvLoader     string = "csv_loader"

	LoggerFieldFleetCategory string = "category"
	LoggerCategoryTelemetry  string = "telemetry"
	LoggerCategoryUsage      string = "usage"
	LoggerCategoryAnomaly    string = "anomaly"
	LoggerCategoryHealth     string = "health"
	LoggerCategoryRental     string = "rental"
	LoggerCategoryEquipment  string = "equipment"
)
