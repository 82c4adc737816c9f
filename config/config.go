package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

/* Config é um pacote auxiliar. Poderia ser uma lib externa
 * Values come from the environment, optionally overridden by a .env file (TOML)
 * in the working directory
 */

// Bus drivers
const (
	DriverEventBridge = "eventbridge"
	DriverRedis       = "redis"
	DriverNATS        = "nats"
	DriverKafka       = "kafka"
)

// Secret sources
const (
	SourceSecretsManager = "secretsmanager"
	SourceFile           = "file"
)

var (
	// ErrNegativeMaxLen is returned when REDIS_STREAM_MAXLEN is below zero
	ErrNegativeMaxLen = errors.New("REDIS_STREAM_MAXLEN must not be negative")

	// ErrMissingBusName is returned when EVENT_BUS_NAME is not set
	ErrMissingBusName = errors.New("EVENT_BUS_NAME is required")

	// ErrUnknownDriver is returned for an unsupported BUS_DRIVER
	ErrUnknownDriver = errors.New("unknown bus driver")

	// ErrUnknownSecretSource is returned for an unsupported SECRET_SOURCE
	ErrUnknownSecretSource = errors.New("unknown secret source")
)

type Config struct {
	Port          string `mapstructure:"PORT"`
	EventBusName  string `mapstructure:"EVENT_BUS_NAME"`
	SecretID      string `mapstructure:"SECRET_ID"`
	SecretSource  string `mapstructure:"SECRET_SOURCE"`
	SecretsFile   string `mapstructure:"SECRETS_FILE"`
	BusDriver     string `mapstructure:"BUS_DRIVER"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`
	RedisMaxLen   int64  `mapstructure:"REDIS_STREAM_MAXLEN"`
	NATSURL       string `mapstructure:"NATS_URL"`
	KafkaBrokers  string `mapstructure:"KAFKA_BROKERS"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
}

var defaults = map[string]any{
	"PORT":                "8080",
	"EVENT_BUS_NAME":      "",
	"SECRET_ID":           "MomentoWebhookSecretKey",
	"SECRET_SOURCE":       SourceSecretsManager,
	"SECRETS_FILE":        "secrets.yaml",
	"BUS_DRIVER":          DriverEventBridge,
	"REDIS_ADDR":          "localhost:6379",
	"REDIS_PASSWORD":      "",
	"REDIS_DB":            0,
	"REDIS_STREAM_MAXLEN": 0,
	"NATS_URL":            "nats://127.0.0.1:4222",
	"KAFKA_BROKERS":       "localhost:9092",
	"LOG_LEVEL":           "info",
}

// GetConfig reads the configuration from the environment and ./.env
func GetConfig() (*Config, error) {
	return Load(viper.New(), ".")
}

// Load reads the configuration using v, looking for an optional .env file in dir
func Load(v *viper.Viper, dir string) (*Config, error) {
	v.SetConfigName(".env")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Config
	err = v.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	config.BusDriver = strings.ToLower(strings.TrimSpace(config.BusDriver))
	config.SecretSource = strings.ToLower(strings.TrimSpace(config.SecretSource))

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks required values and enumerations
func (c *Config) Validate() error {
	if strings.TrimSpace(c.EventBusName) == "" {
		return ErrMissingBusName
	}
	switch c.BusDriver {
	case DriverEventBridge, DriverRedis, DriverNATS, DriverKafka:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.BusDriver)
	}
	if c.RedisMaxLen < 0 {
		return ErrNegativeMaxLen
	}
	switch c.SecretSource {
	case SourceSecretsManager, SourceFile:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSecretSource, c.SecretSource)
	}
	return nil
}

// Brokers splits KAFKA_BROKERS on commas
func (c *Config) Brokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
