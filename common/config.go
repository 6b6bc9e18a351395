package common

import (
	log "github.com/sirupsen/logrus"

	"github.com/fortimon/fortimon/util"
)

// AppName - Application name.
const AppName = "Fortimon"

// AppVersion - Application version.
const AppVersion = "0.2.0"

// AppAuthor - Application author.
const AppAuthor = "The Fortimon authors"

// PrometheusNamespace - Prometheus metrics namespace.
const PrometheusNamespace = "fortimon"

// Config - The config.
type Config struct {
	HTTPEndpoint          string  `json:"http_endpoint"`
	CredentialsPath       string  `json:"credentials_path"`
	DevicesPath           string  `json:"devices_path"`
	ScrapeIntervalSeconds float64 `json:"scrape_interval"`
	InfluxDBURL           string  `json:"influxdb_url"`
	InfluxDBToken         string  `json:"influxdb_token"`
	InfluxDBOrg           string  `json:"influxdb_org"`
}

// LoadConfig - Load configuration file. Keeps defaults if the path is empty.
func LoadConfig(configPath string) bool {
	if configPath == "" {
		// Allow no config
		return true
	}

	log.WithFields(log.Fields{
		"config_path": configPath,
	}).Info("Loading config")

	// Load
	if !util.ParseJSONFile(&GlobalConfig, configPath) {
		return false
	}

	// Validate
	if GlobalConfig.ScrapeIntervalSeconds <= 0 {
		log.Error("Non-positive scrape interval not allowed")
		return false
	}

	return true
}
