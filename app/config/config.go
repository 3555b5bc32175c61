package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config app configuration
type Config struct {
	JWTKey         string         `mapstructure:"jwtKey"`
	ContextTimeout time.Duration  `mapstructure:"contextTimeout"`
	Reminder       ReminderConfig `mapstructure:"reminder"`
	Trigger        TriggerConfig  `mapstructure:"trigger"`
	ESign          ESignConfig    `mapstructure:"esign"`
}

// ReminderConfig rent reminder sweep configuration
type ReminderConfig struct {
	Schedule string `mapstructure:"schedule"`
	Timezone string `mapstructure:"timezone"`
	PageSize int32  `mapstructure:"pageSize"`
}

// TriggerConfig change-triggered notifier configuration
type TriggerConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	DedupeTTL time.Duration `mapstructure:"dedupeTTL"`
}

// ESignConfig lease signature configuration
type ESignConfig struct {
	FallbackAgreementURL string        `mapstructure:"fallbackAgreementUrl"`
	PublicBaseURL        string        `mapstructure:"publicBaseUrl"`
	TestMode             bool          `mapstructure:"testMode"`
	SignedURLExpiry      time.Duration `mapstructure:"signedUrlExpiry"`
}

// Default returns the configuration used for keys missing from the config file.
func Default() *Config {
	return &Config{
		ContextTimeout: 10 * time.Second,
		Reminder: ReminderConfig{
			Schedule: "0 9 1 * *",
			Timezone: "UTC",
			PageSize: 500,
		},
		Trigger: TriggerConfig{
			Enabled:   true,
			DedupeTTL: 24 * time.Hour,
		},
		ESign: ESignConfig{
			TestMode:        true,
			SignedURLExpiry: 15 * time.Minute,
		},
	}
}

// InitConfig initialize app configuration
func InitConfig() (*Config, error) {
	config := Default()
	subv := viper.Sub("app")
	if subv == nil {
		return nil, errors.New("missing app configuration")
	}
	err := subv.Unmarshal(&config)
	return config, err
}
