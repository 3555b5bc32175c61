package mongodatabase

import (
	"time"

	"github.com/spf13/viper"
)

// DBConfig configuration for db
type DBConfig struct {
	Host          string        `mapstructure:"host"`
	DBName        string        `mapstructure:"dbName"`
	MaxAttempts   int           `mapstructure:"maxAttempts"`
	RetryInterval time.Duration `mapstructure:"retryInterval"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// InitConfig initialize database configuration
func InitConfig() (*DBConfig, error) {
	dbconfig := &DBConfig{
		Host:          "mongodb://localhost:27017/?replicaSet=rs0",
		DBName:        "easylease",
		MaxAttempts:   5,
		RetryInterval: 3 * time.Second,
		Timeout:       10 * time.Second,
	}
	subv := viper.Sub("mongodatabase")
	if subv == nil {
		return dbconfig, nil
	}
	err := subv.Unmarshal(&dbconfig)
	return dbconfig, err
}
