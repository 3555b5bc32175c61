package cache

import (
	"github.com/spf13/viper"
)

// Config redis cache configuration
type Config struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// InitConfig initialize cache configuration
func InitConfig() (*Config, error) {
	config := &Config{Host: "localhost", Port: "6379", Prefix: "easylease"}
	subv := viper.Sub("cache")
	if subv == nil {
		return config, nil
	}
	err := subv.Unmarshal(&config)
	return config, err
}
