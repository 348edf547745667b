package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"service-market/internal/config"

	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InitDB opens the Postgres pool and verifies the connection.
func InitDB(cfg config.Config) (*sql.DB, error) {
	if cfg.PostgresConn == "" {
		return nil, fmt.Errorf("POSTGRES_CONN is not set")
	}

	pool, err := sql.Open("postgres", cfg.PostgresConn)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}
	if err := pool.Ping(); err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	return pool, nil
}

// InitMongo connects the status-history client. Returns nil when no URI
// is configured; the history log is then disabled.
func InitMongo(cfg config.Config) (*mongo.Client, error) {
	if cfg.MongoURI == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("unable to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("unable to reach mongo: %w", err)
	}
	return client, nil
}
