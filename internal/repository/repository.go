package repository

import (
	"context"
	"log/slog"

	"github.com/UnknownOlympus/beacon/internal/models"
)

// MaxRouteAttempts is the number of failed routing attempts after which an order is skipped.
const MaxRouteAttempts = 5

type Repository struct {
	db  Database
	log *slog.Logger
}

type Interface interface {
	FetchActiveOrders(ctx context.Context, limit int) ([]models.Order, error)
	CompleteOrder(ctx context.Context, trackingID string) error
	IncrementRouteFailures(ctx context.Context, trackingID, errMsg string) error
}

// NewRepository creates a new instance of Repository with the provided Database.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
