package repository

import (
	"context"

	"github.com/yjpark/sns-service/internal/domain"
)

// AlarmRepository defines the interface for alarm record data access
type AlarmRepository interface {
	// Create persists a new alarm record and fills in its generated fields
	Create(ctx context.Context, alarm *domain.Alarm) error
	// ListByUser retrieves a recipient's alarms newest first, with the total count
	ListByUser(ctx context.Context, userID int64, page, size int) ([]*domain.Alarm, int64, error)
}
