package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/yjpark/sns-service/internal/domain"
	"github.com/yjpark/sns-service/internal/realtime"
	"github.com/yjpark/sns-service/internal/repository"
	"github.com/yjpark/sns-service/pkg/logger"
	"go.uber.org/zap"
)

var (
	// ErrAlarmConnect means the connection-established handshake could
	// not be delivered on a freshly opened channel.
	ErrAlarmConnect = errors.New("alarm connect failed")
	// ErrAlarmDeliver means a push on a registered channel failed; the
	// channel has been evicted and the client must reconnect.
	ErrAlarmDeliver = errors.New("alarm delivery failed")
)

const (
	alarmEventName = "alarm"
	connectData    = "connect complete"
	newAlarmData   = "new alarm"
)

// AlarmPublisher is the interface the domain flows (comment, like) use
// to record an alarm and attempt its delivery.
type AlarmPublisher interface {
	// Publish persists an alarm record and then attempts best-effort
	// delivery. Only the persistence step can fail the call.
	Publish(ctx context.Context, recipientID int64, alarmType domain.AlarmType, args domain.AlarmArgs) error
}

// AlarmService manages live alarm subscriptions and delivery
type AlarmService interface {
	AlarmPublisher
	// Connect opens a push channel for userID, replacing any previous
	// one, and delivers the connection-established event.
	Connect(userID int64) (*realtime.Channel, error)
	// Disconnect tears down ch if it is still userID's live channel.
	// Called by the streaming handler on completion, timeout or error.
	Disconnect(userID int64, ch *realtime.Channel)
	// Dispatch attempts to push an already-persisted alarm to its
	// recipient. A recipient without a live channel is a silent no-op.
	Dispatch(alarm *domain.Alarm) error
	// List retrieves a recipient's alarm records, the durable fallback
	// for clients without a live channel.
	List(ctx context.Context, userID int64, page, size int) ([]*domain.Alarm, int64, error)
	// ChannelTimeout is the maximum lifetime of one subscription stream.
	ChannelTimeout() time.Duration
}

// AlarmServiceConfig holds configuration for AlarmService
type AlarmServiceConfig struct {
	ChannelTimeout time.Duration
	ChannelBuffer  int
}

type alarmService struct {
	registry *realtime.Registry
	alarms   repository.AlarmRepository
	config   *AlarmServiceConfig
	log      *logger.Logger
}

// NewAlarmService creates a new AlarmService
func NewAlarmService(
	registry *realtime.Registry,
	alarms repository.AlarmRepository,
	config *AlarmServiceConfig,
	log *logger.Logger,
) AlarmService {
	if config.ChannelTimeout == 0 {
		config.ChannelTimeout = time.Hour
	}
	return &alarmService{
		registry: registry,
		alarms:   alarms,
		config:   config,
		log:      log,
	}
}

// Connect opens a push channel for userID
func (s *alarmService) Connect(userID int64) (*realtime.Channel, error) {
	ch := realtime.NewChannel(s.config.ChannelBuffer)

	// Last write wins: a reconnect displaces the previous channel,
	// whose handler unblocks as soon as we close it.
	if prev := s.registry.Register(userID, ch); prev != nil {
		prev.Close()
	}

	if err := ch.Send(realtime.Event{Name: alarmEventName, Data: connectData}); err != nil {
		s.registry.EvictChannel(userID, ch)
		ch.Close()
		return nil, ErrAlarmConnect
	}

	s.log.Info("alarm channel connected", zap.Int64("user_id", userID))
	return ch, nil
}

// Disconnect tears down a channel
func (s *alarmService) Disconnect(userID int64, ch *realtime.Channel) {
	s.registry.EvictChannel(userID, ch)
	ch.Close()
	s.log.Info("alarm channel disconnected", zap.Int64("user_id", userID))
}

// Dispatch attempts to push an already-persisted alarm
func (s *alarmService) Dispatch(alarm *domain.Alarm) error {
	ch, ok := s.registry.Lookup(alarm.UserID)
	if !ok {
		// Not connected. The alarm row is the durable record and can
		// be listed later; nothing to deliver.
		return nil
	}

	ev := realtime.Event{
		ID:   strconv.FormatInt(alarm.ID, 10),
		Name: alarmEventName,
		Data: newAlarmData,
	}
	if err := ch.Send(ev); err != nil {
		// Broken transport: shed the dead channel instead of retrying.
		s.registry.EvictChannel(alarm.UserID, ch)
		return ErrAlarmDeliver
	}
	return nil
}

// Publish persists an alarm record and then attempts delivery
func (s *alarmService) Publish(ctx context.Context, recipientID int64, alarmType domain.AlarmType, args domain.AlarmArgs) error {
	alarm := &domain.Alarm{
		UserID: recipientID,
		Type:   alarmType,
		Args:   args,
	}

	// Durability precedes delivery: if this fails the triggering
	// operation fails and nothing is dispatched.
	if err := s.alarms.Create(ctx, alarm); err != nil {
		return err
	}

	if err := s.Dispatch(alarm); err != nil {
		// Best-effort only. The record is already durable, so the
		// triggering operation must not fail here.
		s.log.Warn("alarm delivery failed",
			zap.Int64("alarm_id", alarm.ID),
			zap.Int64("user_id", recipientID),
			zap.Error(err),
		)
	}
	return nil
}

// List retrieves a recipient's alarm records
func (s *alarmService) List(ctx context.Context, userID int64, page, size int) ([]*domain.Alarm, int64, error) {
	return s.alarms.ListByUser(ctx, userID, page, size)
}

// ChannelTimeout returns the maximum lifetime of one stream
func (s *alarmService) ChannelTimeout() time.Duration {
	return s.config.ChannelTimeout
}
