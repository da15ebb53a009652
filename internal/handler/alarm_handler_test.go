package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yjpark/sns-service/internal/domain"
	"github.com/yjpark/sns-service/internal/middleware"
	"github.com/yjpark/sns-service/internal/realtime"
	"github.com/yjpark/sns-service/internal/service"
	"github.com/yjpark/sns-service/internal/token"
	"github.com/yjpark/sns-service/pkg/logger"
)

const testSecret = "test-secret"

type stubUserResolver struct {
	user *domain.User
}

func (r *stubUserResolver) LoadByUsername(ctx context.Context, username string) (*domain.User, error) {
	if r.user != nil && r.user.Username == username {
		return r.user, nil
	}
	return nil, nil
}

type memoryAlarmRepository struct {
	mu     sync.Mutex
	alarms []*domain.Alarm
}

func (r *memoryAlarmRepository) Create(ctx context.Context, alarm *domain.Alarm) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	alarm.ID = int64(len(r.alarms) + 1)
	r.alarms = append(r.alarms, alarm)
	return nil
}

func (r *memoryAlarmRepository) ListByUser(ctx context.Context, userID int64, page, size int) ([]*domain.Alarm, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.alarms, int64(len(r.alarms)), nil
}

type alarmStreamFixture struct {
	server   *httptest.Server
	alarms   service.AlarmService
	registry *realtime.Registry
	token    string
}

func newAlarmStreamFixture(t *testing.T, channelTimeout time.Duration) *alarmStreamFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := realtime.NewRegistry()
	alarms := service.NewAlarmService(registry, &memoryAlarmRepository{}, &service.AlarmServiceConfig{
		ChannelTimeout: channelTimeout,
		ChannelBuffer:  4,
	}, logger.Get())

	resolver := &stubUserResolver{user: &domain.User{ID: 1, Username: "alice", Role: domain.RoleUser}}
	h := NewAlarmHandler(alarms, logger.Get())

	router := gin.New()
	router.Use(middleware.Authenticate(resolver, testSecret, logger.Get()))
	router.GET("/subscribe", h.Subscribe)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	tok, err := token.Mint("alice", testSecret, time.Minute)
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}

	return &alarmStreamFixture{server: server, alarms: alarms, registry: registry, token: tok}
}

func (f *alarmStreamFixture) subscribe(t *testing.T, ctx context.Context) *http.Response {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.server.URL+"/subscribe", nil)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+f.token)

	resp, err := f.server.Client().Do(req)
	if err != nil {
		t.Fatalf("subscribe request error = %v", err)
	}
	return resp
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestAlarmSubscribeStream(t *testing.T) {
	f := newAlarmStreamFixture(t, 500*time.Millisecond)

	resp := f.subscribe(t, context.Background())
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	waitFor(t, func() bool { return f.registry.Len() == 1 }, "channel never registered")

	err := f.alarms.Publish(context.Background(), 1, domain.AlarmTypeNewComment, domain.AlarmArgs{FromUserID: 2, TargetID: 3})
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	// The stream ends when the channel timeout elapses.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading stream: %v", err)
	}

	got := string(body)
	handshake := "event: alarm\ndata: connect complete\n\n"
	alarm := "id: 1\nevent: alarm\ndata: new alarm\n\n"
	if !strings.Contains(got, handshake) {
		t.Errorf("stream missing handshake frame:\n%s", got)
	}
	if !strings.Contains(got, alarm) {
		t.Errorf("stream missing alarm frame:\n%s", got)
	}
	if strings.Index(got, handshake) > strings.Index(got, alarm) {
		t.Errorf("handshake frame after alarm frame:\n%s", got)
	}
}

func TestAlarmSubscribeUnauthenticated(t *testing.T) {
	f := newAlarmStreamFixture(t, time.Minute)

	resp, err := http.Get(f.server.URL + "/subscribe")
	if err != nil {
		t.Fatalf("request error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestAlarmSubscribeClientDisconnect(t *testing.T) {
	f := newAlarmStreamFixture(t, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	resp := f.subscribe(t, ctx)
	defer resp.Body.Close()

	waitFor(t, func() bool { return f.registry.Len() == 1 }, "channel never registered")

	cancel()

	waitFor(t, func() bool { return f.registry.Len() == 0 }, "channel not evicted after client disconnect")
}

func TestAlarmSubscribeReconnectDisplacesStream(t *testing.T) {
	f := newAlarmStreamFixture(t, time.Minute)

	first := f.subscribe(t, context.Background())
	defer first.Body.Close()
	waitFor(t, func() bool { return f.registry.Len() == 1 }, "first channel never registered")

	second := f.subscribe(t, context.Background())
	defer second.Body.Close()
	waitFor(t, func() bool { return f.registry.Len() == 1 }, "second channel never registered")

	// The displaced stream terminates; reading it drains to EOF.
	done := make(chan struct{})
	go func() {
		_, _ = io.ReadAll(first.Body)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Error("first stream did not terminate after reconnect")
	}
}
