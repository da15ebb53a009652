package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yjpark/sns-service/internal/domain"
)

// PostgresAlarmRepository implements AlarmRepository using PostgreSQL.
// Alarm args are stored as JSONB.
type PostgresAlarmRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAlarmRepository creates a new PostgresAlarmRepository
func NewPostgresAlarmRepository(pool *pgxpool.Pool) *PostgresAlarmRepository {
	return &PostgresAlarmRepository{pool: pool}
}

// Create persists a new alarm record
func (r *PostgresAlarmRepository) Create(ctx context.Context, alarm *domain.Alarm) error {
	args, err := json.Marshal(alarm.Args)
	if err != nil {
		return fmt.Errorf("failed to encode alarm args: %w", err)
	}

	query := `
		INSERT INTO alarms (user_id, alarm_type, args)
		VALUES ($1, $2, $3)
		RETURNING id, registered_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		alarm.UserID,
		alarm.Type,
		args,
	).Scan(&alarm.ID, &alarm.RegisteredAt, &alarm.UpdatedAt)
}

// ListByUser retrieves a recipient's alarms newest first
func (r *PostgresAlarmRepository) ListByUser(ctx context.Context, userID int64, page, size int) ([]*domain.Alarm, int64, error) {
	query := `
		SELECT id, user_id, alarm_type, args, registered_at, updated_at,
		       COUNT(*) OVER() AS total
		FROM alarms
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY registered_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, userID, size, page*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var alarms []*domain.Alarm
	var total int64
	for rows.Next() {
		alarm := &domain.Alarm{}
		var args []byte
		if err := rows.Scan(
			&alarm.ID,
			&alarm.UserID,
			&alarm.Type,
			&args,
			&alarm.RegisteredAt,
			&alarm.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal(args, &alarm.Args); err != nil {
			return nil, 0, fmt.Errorf("failed to decode alarm args: %w", err)
		}
		alarms = append(alarms, alarm)
	}
	return alarms, total, rows.Err()
}
