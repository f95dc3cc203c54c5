package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"griya-properti/internal/domain"
	"griya-properti/internal/repository"
	"griya-properti/internal/service/email"
	"griya-properti/internal/service/push"
)

var (
	ErrMissingFields  = errors.New("title and message are required")
	ErrInvalidChannel = errors.New("channel must be email, push or both")
	ErrNoRecipients   = errors.New("no recipients match the requested audience")
	ErrNotFound       = errors.New("notification not found")
)

type Service interface {
	Send(ctx context.Context, createdBy uuid.UUID, input domain.SendNotificationInput) (*domain.Notification, error)
	List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, []domain.UserNotification, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Recipients(ctx context.Context, audience domain.NotificationAudience, specific []uuid.UUID) ([]domain.User, error)
	DispatchDue(ctx context.Context) error

	ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.UserNotification], error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)

	SendWelcome(ctx context.Context, userID uuid.UUID) bool
	SendListingApproved(ctx context.Context, propertyID uuid.UUID) bool
	SendListingRejected(ctx context.Context, propertyID uuid.UUID, reason string) bool
}

type service struct {
	notifRepo     repository.NotificationRepository
	userNotifRepo repository.UserNotificationRepository
	userRepo      repository.UserRepository
	propertyRepo  repository.PropertyRepository
	emailSvc      email.Service
	pushSvc       push.Service
}

func NewService(
	notifRepo repository.NotificationRepository,
	userNotifRepo repository.UserNotificationRepository,
	userRepo repository.UserRepository,
	propertyRepo repository.PropertyRepository,
	emailSvc email.Service,
	pushSvc push.Service,
) Service {
	return &service{
		notifRepo:     notifRepo,
		userNotifRepo: userNotifRepo,
		userRepo:      userRepo,
		propertyRepo:  propertyRepo,
		emailSvc:      emailSvc,
		pushSvc:       pushSvc,
	}
}

// Send resolves the audience, records the broadcast and runs the
// delivery loop. The audience is resolved before anything is written so
// an empty recipient set never leaves a notification row behind.
func (s *service) Send(ctx context.Context, createdBy uuid.UUID, input domain.SendNotificationInput) (*domain.Notification, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Message) == "" {
		return nil, ErrMissingFields
	}
	if input.Channel == "" {
		input.Channel = domain.ChannelBoth
	}
	if !input.Channel.IsValid() {
		return nil, ErrInvalidChannel
	}
	if input.Audience == "" {
		input.Audience = domain.AudienceAll
	}

	recipients, err := s.resolveAudience(ctx, input.Audience, input.SpecificUsers)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	notif := &domain.Notification{
		ID:             uuid.New(),
		Title:          input.Title,
		Message:        input.Message,
		Channel:        input.Channel,
		Audience:       input.Audience,
		Status:         domain.StatusPending,
		RecipientCount: len(recipients),
		CreatedBy:      createdBy,
		ScheduledAt:    input.ScheduledAt,
	}
	if input.Audience == domain.AudienceSpecific {
		notif.SpecificUsers = domain.UUIDList(input.SpecificUsers)
	}

	if input.ScheduledAt != nil && input.ScheduledAt.After(time.Now()) {
		notif.Status = domain.StatusScheduled
		if err := s.notifRepo.Create(ctx, notif); err != nil {
			return nil, err
		}
		return notif, nil
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, err
	}

	if err := s.deliver(ctx, notif, recipients); err != nil {
		_ = s.notifRepo.MarkFailed(ctx, notif.ID, err.Error())
		notif.Status = domain.StatusFailed
		notif.DeliveredCount = 0
		return notif, nil
	}
	return notif, nil
}

// deliver runs the per-recipient send loop. Individual failures are
// recorded and never abort the loop; every recipient gets one attempt.
func (s *service) deliver(ctx context.Context, notif *domain.Notification, recipients []domain.User) error {
	meta := domain.DeliveryMeta{}
	delivered := 0

	for _, user := range recipients {
		if err := s.deliverTo(ctx, notif, user, &meta); err != nil {
			meta.Failed++
			meta.Errors = append(meta.Errors, fmt.Sprintf("%s: %v", user.Email, err))
			continue
		}
		delivered++
	}

	now := time.Now()
	notif.Status = domain.StatusSent
	if len(recipients) > 0 && delivered == 0 {
		notif.Status = domain.StatusFailed
	}
	notif.RecipientCount = len(recipients)
	notif.DeliveredCount = delivered
	notif.Delivery = meta
	notif.SentAt = &now

	return s.notifRepo.UpdateDeliveryResult(ctx, notif)
}

func (s *service) deliverTo(ctx context.Context, notif *domain.Notification, user domain.User, meta *domain.DeliveryMeta) error {
	un := &domain.UserNotification{
		ID:             uuid.New(),
		NotificationID: notif.ID,
		UserID:         user.ID,
		Title:          notif.Title,
		Message:        notif.Message,
		Type:           domain.UserNotifBroadcast,
	}
	if _, err := s.userNotifRepo.Create(ctx, un); err != nil {
		return err
	}

	var sendErr error
	if notif.Channel.IncludesEmail() {
		if err := s.emailSvc.SendNotificationEmail(ctx, user.Email, user.FullName, notif.Title, notif.Message); err != nil {
			sendErr = err
		} else {
			meta.EmailSent++
		}
	}
	if notif.Channel.IncludesPush() {
		if err := s.pushSvc.SendPush(ctx, user.ID, notif.Title, notif.Message); err != nil {
			if sendErr == nil {
				sendErr = err
			}
		} else {
			meta.PushSent++
		}
	}
	if sendErr != nil {
		return sendErr
	}

	return s.userNotifRepo.MarkDelivered(ctx, un.ID)
}

// DispatchDue claims scheduled notifications whose send time has passed
// and runs the normal delivery loop for each. The audience is
// re-resolved at send time, so recipient_count reflects the set the
// loop actually targeted.
func (s *service) DispatchDue(ctx context.Context) error {
	claimed, err := s.notifRepo.ClaimDueScheduled(ctx, 20)
	if err != nil {
		return err
	}

	for i := range claimed {
		notif := &claimed[i]

		recipients, err := s.resolveAudience(ctx, notif.Audience, notif.SpecificUsers)
		if err == nil && len(recipients) == 0 {
			err = ErrNoRecipients
		}
		if err != nil {
			_ = s.notifRepo.MarkFailed(ctx, notif.ID, err.Error())
			continue
		}

		if err := s.deliver(ctx, notif, recipients); err != nil {
			_ = s.notifRepo.MarkFailed(ctx, notif.ID, err.Error())
		}
	}
	return nil
}

func (s *service) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Notification], error) {
	params.Validate()

	notifications, total, err := s.notifRepo.List(ctx, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Notification]{}, err
	}

	return domain.NewPaginatedResponse(notifications, params.Page, params.PageSize, total), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, []domain.UserNotification, error) {
	notif, err := s.notifRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if notif == nil {
		return nil, nil, ErrNotFound
	}

	deliveries, err := s.userNotifRepo.ListByNotification(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return notif, deliveries, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userNotifRepo.DeleteByNotification(ctx, id); err != nil {
		return err
	}

	rows, err := s.notifRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *service) Recipients(ctx context.Context, audience domain.NotificationAudience, specific []uuid.UUID) ([]domain.User, error) {
	return s.resolveAudience(ctx, audience, specific)
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, params domain.PaginationParams) (domain.PaginatedResponse[domain.UserNotification], error) {
	params.Validate()

	records, total, err := s.userNotifRepo.ListByUser(ctx, userID, unreadOnly, params)
	if err != nil {
		return domain.PaginatedResponse[domain.UserNotification]{}, err
	}

	return domain.NewPaginatedResponse(records, params.Page, params.PageSize, total), nil
}

func (s *service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.userNotifRepo.MarkAsRead(ctx, id, userID)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.userNotifRepo.MarkAllAsRead(ctx, userID)
}

func (s *service) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.userNotifRepo.CountUnread(ctx, userID)
}
