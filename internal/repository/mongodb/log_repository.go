package mongodb

import (
	"context"
	"fmt"
	"time"

	entity "service-market/internal/domain"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	DatabaseName     = "service_market"
	CollectionStatus = "history_status"
)

// LogRepository records order status transitions.
type LogRepository interface {
	SaveHistoryStatus(doc *entity.StatusHistory) error
}

type logRepository struct {
	collection *mongo.Collection
}

func NewLogRepository(client *mongo.Client) LogRepository {
	db := client.Database(DatabaseName)
	return &logRepository{
		collection: db.Collection(CollectionStatus),
	}
}

func (r *logRepository) SaveHistoryStatus(doc *entity.StatusHistory) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to insert history status: %w", err)
	}
	return nil
}
