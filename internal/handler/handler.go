package handler

import "griya-properti/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	Notification *NotificationHandler
	Property     *PropertyHandler
	Watermark    *WatermarkHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		Notification: NewNotificationHandler(services.Notification),
		Property:     NewPropertyHandler(services.Property),
		Watermark:    NewWatermarkHandler(services.Watermark),
	}
}
