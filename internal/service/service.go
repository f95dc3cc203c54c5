package service

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"griya-properti/internal/config"
	"griya-properti/internal/repository"
	"griya-properti/internal/service/auth"
	"griya-properti/internal/service/email"
	"griya-properti/internal/service/notification"
	"griya-properti/internal/service/property"
	"griya-properti/internal/service/push"
	"griya-properti/internal/service/watermark"
)

type Services struct {
	Auth         auth.Service
	Email        email.Service
	Push         push.Service
	Notification notification.Service
	Property     property.Service
	Watermark    watermark.Service
}

func NewServices(ctx context.Context, repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	pushService := push.NewService(ctx, cfg)

	notificationService := notification.NewService(
		repos.Notification,
		repos.UserNotification,
		repos.User,
		repos.Property,
		emailService,
		pushService,
	)

	authService := auth.NewService(repos.User, repos.Session, cfg)
	authService.SetNotificationService(notificationService)

	propertyService := property.NewService(repos.Property, minioClient, cfg)
	propertyService.SetNotificationService(notificationService)

	watermarkService := watermark.NewService(repos.Settings, minioClient, redis, cfg)

	return &Services{
		Auth:         authService,
		Email:        emailService,
		Push:         pushService,
		Notification: notificationService,
		Property:     propertyService,
		Watermark:    watermarkService,
	}
}
