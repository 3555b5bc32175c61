package storage

import (
	"github.com/spf13/viper"
)

// Config file storage configuration
type Config struct {
	Type            string `mapstructure:"type"`
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"accessKeyId"`
	SecretAccessKey string `mapstructure:"secretAccessKey"`
	Path            string `mapstructure:"path"`
	BaseURL         string `mapstructure:"baseUrl"`
}

// InitConfig initialize storage configuration
func InitConfig() (*Config, error) {
	config := &Config{Type: "local", Path: "./storage/files"}
	subv := viper.Sub("storage")
	if subv == nil {
		return config, nil
	}
	err := subv.Unmarshal(&config)
	return config, err
}
