package di

import (
	"github.com/yjpark/sns-service/internal/handler"
	"github.com/yjpark/sns-service/internal/realtime"
	"github.com/yjpark/sns-service/internal/repository"
	"github.com/yjpark/sns-service/internal/service"
	"github.com/yjpark/sns-service/pkg/config"
	"github.com/yjpark/sns-service/pkg/database"
	"github.com/yjpark/sns-service/pkg/logger"
	redisclient "github.com/yjpark/sns-service/pkg/redis"
)

// Container holds all dependencies for the service
type Container struct {
	// Infrastructure
	DB       *database.PostgresDB
	Redis    *redisclient.Client
	Registry *realtime.Registry

	// Repositories
	UserRepo    repository.UserRepository
	PostRepo    repository.PostRepository
	CommentRepo repository.CommentRepository
	LikeRepo    repository.LikeRepository
	AlarmRepo   repository.AlarmRepository

	// Services
	UserService  service.UserService
	PostService  service.PostService
	AlarmService service.AlarmService

	// Handlers
	HealthHandler *handler.HealthHandler
	UserHandler   *handler.UserHandler
	PostHandler   *handler.PostHandler
	AlarmHandler  *handler.AlarmHandler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, db *database.PostgresDB, rdb *redisclient.Client, log *logger.Logger) *Container {
	c := &Container{
		DB:       db,
		Redis:    rdb,
		Registry: realtime.NewRegistry(),
	}

	// Repositories; username lookups go through the Redis cache
	pool := db.Pool()
	c.UserRepo = repository.NewRedisUserCache(
		repository.NewPostgresUserRepository(pool),
		rdb.Redis(),
		cfg.Redis.UserTTL,
	)
	c.PostRepo = repository.NewPostgresPostRepository(pool)
	c.CommentRepo = repository.NewPostgresCommentRepository(pool)
	c.LikeRepo = repository.NewPostgresLikeRepository(pool)
	c.AlarmRepo = repository.NewPostgresAlarmRepository(pool)

	// Services
	c.UserService = service.NewUserService(c.UserRepo, &service.UserServiceConfig{
		JWTSecret: cfg.JWT.Secret,
		TokenTTL:  cfg.JWT.TokenTTL,
	})
	c.AlarmService = service.NewAlarmService(c.Registry, c.AlarmRepo, &service.AlarmServiceConfig{
		ChannelTimeout: cfg.Alarm.ChannelTimeout,
		ChannelBuffer:  cfg.Alarm.ChannelBuffer,
	}, log)
	c.PostService = service.NewPostService(c.PostRepo, c.CommentRepo, c.LikeRepo, c.UserRepo, c.AlarmService)

	// Handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis)
	c.UserHandler = handler.NewUserHandler(c.UserService, c.AlarmService, log)
	c.PostHandler = handler.NewPostHandler(c.PostService, log)
	c.AlarmHandler = handler.NewAlarmHandler(c.AlarmService, log)

	return c
}
