package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Data source kinds
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceDemo     = "demo"
)

// Config holds the server settings read from the environment
type Config struct {
	Port             string `mapstructure:"PORT" validate:"required,numeric"`
	Env              string `mapstructure:"APP_ENV" validate:"oneof=development production"`
	LogLevel         string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	DataSource       string `mapstructure:"DATA_SOURCE" validate:"oneof=csv postgres demo"`
	DataPath         string `mapstructure:"DATA_PATH" validate:"required_if=DataSource csv"`
	CSVDelimiter     string `mapstructure:"CSV_DELIMITER" validate:"len=1"`
	GeoJSONPath      string `mapstructure:"GEOJSON_PATH"`
	DatabaseURL      string `mapstructure:"DATABASE_URL" validate:"required_if=DataSource postgres"`
	PlantsTable      string `mapstructure:"PLANTS_TABLE" validate:"required_if=DataSource postgres"`
	DBConnectRetries uint64 `mapstructure:"DB_CONNECT_RETRIES" validate:"lte=20"`
	PreviewRows      int    `mapstructure:"PREVIEW_ROWS" validate:"min=1,max=100"`
	CORSAllowOrigins string `mapstructure:"CORS_ALLOW_ORIGINS"`
}

var defaults = map[string]interface{}{
	"PORT":               "8080",
	"APP_ENV":            "development",
	"LOG_LEVEL":          "info",
	"DATA_SOURCE":        SourceCSV,
	"DATA_PATH":          "./data/renewable_power_plants_CH.csv",
	"CSV_DELIMITER":      ",",
	"GEOJSON_PATH":       "./data/georef-switzerland-kanton.geojson",
	"DATABASE_URL":       "",
	"PLANTS_TABLE":       "renewable_power_plants",
	"DB_CONNECT_RETRIES": 5,
	"PREVIEW_ROWS":       5,
	"CORS_ALLOW_ORIGINS": "*",
}

// LoadDotEnv loads a .env file into the process environment if one exists
func LoadDotEnv(filenames ...string) bool {
	return godotenv.Load(filenames...) == nil
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode: %w", err)
	}

	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.DataSource = strings.ToLower(strings.TrimSpace(cfg.DataSource))

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: invalid: %w", err)
	}

	return &cfg, nil
}

// DataKey returns the loader key of the configured plant dataset
func (c *Config) DataKey() string {
	switch c.DataSource {
	case SourcePostgres:
		return c.PlantsTable
	case SourceDemo:
		return SourceDemo
	default:
		return c.DataPath
	}
}

// Comma returns the CSV field delimiter
func (c *Config) Comma() rune {
	return []rune(c.CSVDelimiter)[0]
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return ":" + c.Port
}
