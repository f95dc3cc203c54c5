package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User             UserRepository
	Notification     NotificationRepository
	UserNotification UserNotificationRepository
	Settings         SettingsRepository
	Property         PropertyRepository
	Session          SessionRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:             NewUserRepository(db),
		Notification:     NewNotificationRepository(db),
		UserNotification: NewUserNotificationRepository(db),
		Settings:         NewSettingsRepository(db),
		Property:         NewPropertyRepository(db),
		Session:          NewSessionRepository(db),
	}
}
