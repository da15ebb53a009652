package dto

import (
	"time"

	"github.com/yjpark/sns-service/internal/domain"
)

// AlarmResponse is the public view of an alarm record
type AlarmResponse struct {
	ID           int64     `json:"id"`
	Type         string    `json:"type"`
	Text         string    `json:"text"`
	FromUserID   int64     `json:"from_user_id"`
	TargetID     int64     `json:"target_id"`
	RegisteredAt time.Time `json:"registered_at"`
}

// NewAlarmResponse builds an AlarmResponse from an alarm
func NewAlarmResponse(alarm *domain.Alarm) *AlarmResponse {
	return &AlarmResponse{
		ID:           alarm.ID,
		Type:         string(alarm.Type),
		Text:         alarm.Type.Text(),
		FromUserID:   alarm.Args.FromUserID,
		TargetID:     alarm.Args.TargetID,
		RegisteredAt: alarm.RegisteredAt,
	}
}

// NewAlarmResponses builds AlarmResponses from alarms
func NewAlarmResponses(alarms []*domain.Alarm) []*AlarmResponse {
	out := make([]*AlarmResponse, 0, len(alarms))
	for _, a := range alarms {
		out = append(out, NewAlarmResponse(a))
	}
	return out
}
