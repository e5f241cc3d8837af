package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/beacon/internal/models"
)

// ErrOrderNotFound is returned when an update matches no order.
var ErrOrderNotFound = errors.New("order not found")

// FetchActiveOrders retrieves in-progress orders that still deserve a routing attempt,
// oldest first.
func (r *Repository) FetchActiveOrders(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	query := `
		SELECT tracking_id, client_name, client_phone, driver_name, driver_phone,
			start_coordinates, end_coordinates, destination,
			COALESCE(details, ''), COALESCE(comments, ''),
			status, created_at, completed_at, route_attempts
		FROM public.tracking_orders
		WHERE
			status = $1
			AND route_attempts < $2
		ORDER BY created_at ASC
		LIMIT $3;
	`

	rows, err := r.db.Query(ctx, query, models.OrderInProgress, MaxRouteAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query active orders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var order models.Order
		if errScan := rows.Scan(
			&order.TrackingID, &order.ClientName, &order.ClientPhone, &order.DriverName, &order.DriverPhone,
			&order.StartCoordinates, &order.EndCoordinates, &order.Destination,
			&order.Details, &order.Comments,
			&order.Status, &order.CreatedAt, &order.CompletedAt, &order.RouteAttempts,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan active order: %w", errScan)
		}
		r.log.DebugContext(ctx, "Active order received", "tracking_id", order.TrackingID, "driver", order.DriverPhone)
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return orders, nil
}

// CompleteOrder marks an in-progress order as delivered.
func (r *Repository) CompleteOrder(ctx context.Context, trackingID string) error {
	query := `
		UPDATE tracking_orders
		SET
			status = $1,
			completed_at = NOW()
		WHERE
			tracking_id = $2
			AND status = $3;
	`

	tag, err := r.db.Exec(ctx, query, models.OrderCompleted, trackingID, models.OrderInProgress)
	if err != nil {
		return fmt.Errorf("failed to complete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w or not in progress: %s", ErrOrderNotFound, trackingID)
	}

	return nil
}

// IncrementRouteFailures bumps the routing attempt counter and stores the last error.
func (r *Repository) IncrementRouteFailures(ctx context.Context, trackingID, errMsg string) error {
	query := `
		UPDATE tracking_orders
		SET
			route_attempts = route_attempts + 1,
			route_error = $1
		WHERE tracking_id = $2;
	`

	tag, err := r.db.Exec(ctx, query, errMsg, trackingID)
	if err != nil {
		return fmt.Errorf("failed to update route error and number of attempts: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, trackingID)
	}

	return nil
}
