package domain

import (
	"time"
)

// AlarmType classifies what triggered an alarm
type AlarmType string

const (
	AlarmTypeNewComment AlarmType = "NEW_COMMENT_ON_POST"
	AlarmTypeNewLike    AlarmType = "NEW_LIKE_ON_POST"
)

// Text returns the human-readable alarm text
func (t AlarmType) Text() string {
	switch t {
	case AlarmTypeNewComment:
		return "new comment"
	case AlarmTypeNewLike:
		return "new like"
	default:
		return string(t)
	}
}

// AlarmArgs carries the provenance of an alarm: who caused it and on what.
type AlarmArgs struct {
	// FromUserID is the user whose action produced the alarm.
	FromUserID int64 `json:"from_user_id"`
	// TargetID is the entity the action happened on (the post id for
	// comments and likes).
	TargetID int64 `json:"target_id"`
}

// Alarm is the durable record of a notification-worthy event. It is
// persisted before any delivery attempt and never mutated afterwards.
type Alarm struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"user_id"` // recipient
	Type         AlarmType  `json:"type"`
	Args         AlarmArgs  `json:"args"`
	RegisteredAt time.Time  `json:"registered_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}
