package hellosign

import (
	"time"

	"github.com/spf13/viper"
)

// Config HelloSign API configuration
type Config struct {
	APIKey          string        `mapstructure:"apiKey"`
	ClientID        string        `mapstructure:"clientId"`
	BaseURL         string        `mapstructure:"baseUrl"`
	Timeout         time.Duration `mapstructure:"timeout"`
	VerifyEventHash bool          `mapstructure:"verifyEventHash"`
}

// InitConfig initialize HelloSign configuration
func InitConfig() (*Config, error) {
	config := &Config{
		BaseURL: "https://api.hellosign.com",
		Timeout: 30 * time.Second,
	}
	subv := viper.Sub("hellosign")
	if subv == nil {
		return config, nil
	}
	err := subv.Unmarshal(&config)
	return config, err
}
