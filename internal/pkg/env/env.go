// Package env is used to load enviroment variables with proper validation
package env

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/spf13/viper"
)

// Env contains the configuration of the dispatch service
type Env struct {
	Env  string `mapstructure:"ENV" validate:"required,oneof=dev stg prd"`
	Port int    `mapstructure:"PORT" validate:"required"`

	RedisDBURL string `mapstructure:"REDIS_DB_URL" validate:"required"`

	DBHost     string `mapstructure:"DB_HOST" validate:"required"`
	DBPort     int    `mapstructure:"DB_PORT" validate:"required"`
	DBUser     string `mapstructure:"DB_USER" validate:"required"`
	DBPassword string `mapstructure:"DB_PASSWORD" validate:"required"`
	DBDatabase string `mapstructure:"DB_DATABASE" validate:"required"`

	KafkaBroker   string `mapstructure:"KAFKA_BROKER" validate:"required"`
	KafkaUsername string `mapstructure:"KAFKA_USERNAME" validate:"required"`
	KafkaPassword string `mapstructure:"KAFKA_PASSWORD" validate:"required"`
	MarkerTopic   string `mapstructure:"MARKER_TOPIC" validate:"required"`
	LogTopic      string `mapstructure:"LOG_TOPIC" validate:"required"`

	BucketName   string `mapstructure:"BUCKET_NAME" validate:"required"`
	GcloudAPIKey string `mapstructure:"GCLOUD_API_KEY" validate:"required"`

	AdminTokenSecret string `mapstructure:"ADMIN_TOKEN_SECRET" validate:"required,min=32"`

	PreferencesKey   string        `mapstructure:"PREFERENCES_KEY" validate:"required"`
	ActiveDriversKey string        `mapstructure:"ACTIVE_DRIVERS_KEY" validate:"required"`
	TelemetrySource  string        `mapstructure:"TELEMETRY_SOURCE" validate:"required,oneof=sql redis"`
	SimTick          time.Duration `mapstructure:"SIM_TICK" validate:"required"`
	PollInterval     time.Duration `mapstructure:"POLL_INTERVAL" validate:"required"`
}

func init() {
	viper.SetDefault("ENV", "dev")
	viper.SetDefault("PORT", 8080)
	viper.SetDefault("DB_PORT", 1433)
	viper.SetDefault("MARKER_TOPIC", "markers")
	viper.SetDefault("LOG_TOPIC", "log")
	viper.SetDefault("PREFERENCES_KEY", "dispatch:preferences")
	viper.SetDefault("ACTIVE_DRIVERS_KEY", "dispatch:drivers")
	viper.SetDefault("TELEMETRY_SOURCE", "sql")
	viper.SetDefault("SIM_TICK", "3s")
	viper.SetDefault("POLL_INTERVAL", "5s")
}

// Load is a function that is used to load the enviroment variables from the .env file
// (if present) and the process enviroment
func (e *Env) Load(path ...string) {
	configPath := "."
	configFile := ".env"

	if len(path) > 2 {
		logger.Errorf(fmt.Errorf("invalid set of parameters are provided"))
	}

	if len(path) > 0 {
		if len(path) == 2 {
			configFile = path[1]
		}
		configPath = path[0]

		if strings.HasSuffix(path[0], "/") {
			configFile = fmt.Sprintf("%s%s", configPath, configFile)
		} else {
			configFile = fmt.Sprintf("%s/%s", configPath, configFile)
		}
	}

	_, err := os.Stat(configFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logFatal(err)
		}
	} else {
		viper.AddConfigPath(configPath)
		viper.SetConfigFile(configFile)
		logFatal(viper.ReadInConfig())
	}

	viper.AutomaticEnv()
	for _, key := range keys {
		logFatal(viper.BindEnv(key))
	}

	logFatal(viper.Unmarshal(e))

	logger.Validatef(e)
}

// keys has to be bound explicitly, AutomaticEnv alone is not visible to Unmarshal
var keys = []string{
	"ENV", "PORT", "REDIS_DB_URL",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_DATABASE",
	"KAFKA_BROKER", "KAFKA_USERNAME", "KAFKA_PASSWORD", "MARKER_TOPIC", "LOG_TOPIC",
	"BUCKET_NAME", "GCLOUD_API_KEY", "ADMIN_TOKEN_SECRET",
	"PREFERENCES_KEY", "ACTIVE_DRIVERS_KEY", "TELEMETRY_SOURCE", "SIM_TICK", "POLL_INTERVAL",
}

func logFatal(err error) {
	if err != nil {
		logger.Errorf(err)
	}
}
