package push

import (
	"time"

	"github.com/spf13/viper"
)

// Config push provider configuration
type Config struct {
	Type        string        `mapstructure:"type"`
	Concurrency int           `mapstructure:"concurrency"`
	Timeout     time.Duration `mapstructure:"timeout"`
	APNs        APNsConfig    `mapstructure:"apns"`
	WebPush     WebPushConfig `mapstructure:"webpush"`
}

// APNsConfig apple push configuration
type APNsConfig struct {
	CertFile     string `mapstructure:"certFile"`
	CertPassword string `mapstructure:"certPassword"`
	Topic        string `mapstructure:"topic"`
	Production   bool   `mapstructure:"production"`
}

// WebPushConfig web push configuration
type WebPushConfig struct {
	VapidPublicKey  string `mapstructure:"vapidPublicKey"`
	VapidPrivateKey string `mapstructure:"vapidPrivateKey"`
	Subscriber      string `mapstructure:"subscriber"`
	TTL             int    `mapstructure:"ttl"`
}

// InitConfig initialize push configuration
func InitConfig() (*Config, error) {
	config := &Config{
		Type:        "log",
		Concurrency: 8,
		Timeout:     10 * time.Second,
		WebPush:     WebPushConfig{TTL: 30},
	}
	subv := viper.Sub("push")
	if subv == nil {
		return config, nil
	}
	err := subv.Unmarshal(&config)
	return config, err
}
