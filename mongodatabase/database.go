package mongodatabase

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Database mongo client and the easylease database
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// New connects to MongoDB, retrying until MaxAttempts is reached
func New(ctx context.Context, config *DBConfig) (*Database, error) {
	attempts := config.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		client, err := connect(ctx, config)
		if err == nil {
			logrus.WithField("db", config.DBName).Info("Mongo connection success")
			return &Database{Client: client, DB: client.Database(config.DBName)}, nil
		}
		lastErr = err
		logrus.Warnf("Attempt %d to connect to MongoDB failed: %v", attempt, err)
		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(config.RetryInterval):
		}
	}

	return nil, fmt.Errorf("failed to connect to MongoDB after %d attempts: %w", attempts, lastErr)
}

func connect(ctx context.Context, config *DBConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(config.Host).
		SetRetryReads(true).
		SetRetryWrites(true).
		SetConnectTimeout(config.Timeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, config.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// Close DB
func (d *Database) Close() error {
	return d.Client.Disconnect(context.Background())
}
