package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration loaded from environment variables.
// It is read once at startup and passed by value to every component.
type Config struct {
	BotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`

	DBDriver string `envconfig:"DB_DRIVER" default:"sqlite"` // sqlite|postgres
	DBPath   string `envconfig:"DB_PATH" default:"./data/business_processes.db"`
	DBDSN    string `envconfig:"DB_DSN"`

	GoogleCredentialsFile string        `envconfig:"GOOGLE_CREDENTIALS_FILE" default:"credentials.json"`
	SpreadsheetID         string        `envconfig:"GOOGLE_SPREADSHEET_ID"` // empty: create a new spreadsheet on export
	SheetName             string        `envconfig:"GOOGLE_SHEET_NAME" default:"Лист1"`
	ShareWith             []string      `envconfig:"GOOGLE_SHARE_WITH"`
	ExportTimeout         time.Duration `envconfig:"EXPORT_TIMEOUT" default:"0s"` // 0 disables

	SeedSampleData bool   `envconfig:"SEED_SAMPLE_DATA" default:"true"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	HTTPAddr       string `envconfig:"HTTP_ADDR" default:":8080"`
	SentryDSN      string `envconfig:"SENTRY_DSN"`
	AppEnv         string `envconfig:"APP_ENV" default:"development"`
}

// Load reads an optional .env file and then environment variables into Config.
// Variables already present in the environment take precedence over .env.
func Load() (Config, error) {
	var cfg Config
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("read .env: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("DB_PATH is required for sqlite")
		}
	case DriverPostgres:
		if c.DBDSN == "" {
			return errors.New("DB_DSN is required for postgres")
		}
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	if c.ExportTimeout < 0 {
		return errors.New("EXPORT_TIMEOUT must not be negative")
	}
	return nil
}
