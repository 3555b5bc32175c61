package common

import (
	"time"

	"github.com/spf13/viper"
)

// Config api configuration
type Config struct {
	Port           int           `mapstructure:"port"`
	ProxyCount     int           `mapstructure:"proxyCount"`
	MaxContentSize int64         `mapstructure:"maxContentSize"`
	ReadTimeout    time.Duration `mapstructure:"readTimeout"`
	WriteTimeout   time.Duration `mapstructure:"writeTimeout"`
	CloseTimeout   time.Duration `mapstructure:"closeTimeout"`
	AuthCookieName string        `mapstructure:"authCookieName"`
	AllowedOrigins []string      `mapstructure:"allowedOrigins"`
	LogToFile      bool          `mapstructure:"logToFile"`
}

// Default returns the api configuration used for keys missing from the config file
func Default() *Config {
	return &Config{
		Port:           8080,
		MaxContentSize: 10,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		CloseTimeout:   15 * time.Second,
		AuthCookieName: "Authorization",
		AllowedOrigins: []string{"*"},
	}
}

// InitConfig initialize api configuration
func InitConfig() (*Config, error) {
	config := Default()
	subv := viper.Sub("api")
	if subv == nil {
		return config, nil
	}
	err := subv.Unmarshal(&config)
	return config, err
}
