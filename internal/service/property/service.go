package property

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"griya-properti/internal/config"
	"griya-properti/internal/domain"
	"griya-properti/internal/repository"
	"griya-properti/internal/service/notification"
)

var (
	ErrNotFound         = errors.New("property not found")
	ErrMissingFields    = errors.New("title, description, price, address and city are required")
	ErrInvalidPrice     = errors.New("price must be greater than zero")
	ErrNotPending       = errors.New("property is not awaiting moderation")
	ErrNotOwner         = errors.New("property belongs to another user")
	ErrInvalidPhotoType = errors.New("photo must be an image (png, jpg, jpeg or webp)")
	ErrPhotoTooLarge    = errors.New("photo must be smaller than 10MB")
)

const maxPhotoSize = 10 * 1024 * 1024

var allowedPhotoExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, input domain.CreatePropertyInput) (*domain.Property, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)
	ListApproved(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Property], error)
	ListPending(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Property], error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Property], error)
	Approve(ctx context.Context, id uuid.UUID) (*domain.Property, error)
	Reject(ctx context.Context, id uuid.UUID, reason string) (*domain.Property, error)
	UploadPhoto(ctx context.Context, id, ownerID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error)

	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	propertyRepo repository.PropertyRepository
	minioClient  *minio.Client
	cfg          *config.Config
	notifSvc     notification.Service
}

func NewService(propertyRepo repository.PropertyRepository, minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		propertyRepo: propertyRepo,
		minioClient:  minioClient,
		cfg:          cfg,
	}
}

// SetNotificationService wires the notification service after both are
// constructed. Moderation decisions notify the listing owner.
func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, input domain.CreatePropertyInput) (*domain.Property, error) {
	if strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Description) == "" ||
		strings.TrimSpace(input.Address) == "" ||
		strings.TrimSpace(input.City) == "" {
		return nil, ErrMissingFields
	}
	if input.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	property := &domain.Property{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Address:     strings.TrimSpace(input.Address),
		City:        strings.TrimSpace(input.City),
		Status:      domain.PropertyPending,
	}

	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}
	return property, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, ErrNotFound
	}
	return property, nil
}

func (s *service) ListApproved(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Property], error) {
	return s.listByStatus(ctx, domain.PropertyApproved, params)
}

func (s *service) ListPending(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Property], error) {
	return s.listByStatus(ctx, domain.PropertyPending, params)
}

func (s *service) listByStatus(ctx context.Context, status domain.PropertyStatus, params domain.PaginationParams) (domain.PaginatedResponse[domain.Property], error) {
	params.Validate()

	properties, total, err := s.propertyRepo.ListByStatus(ctx, status, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Property]{}, err
	}
	return domain.NewPaginatedResponse(properties, params.Page, params.PageSize, total), nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Property], error) {
	params.Validate()

	properties, total, err := s.propertyRepo.ListByOwner(ctx, ownerID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Property]{}, err
	}
	return domain.NewPaginatedResponse(properties, params.Page, params.PageSize, total), nil
}

func (s *service) Approve(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	property, err := s.moderatable(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.propertyRepo.UpdateStatus(ctx, id, domain.PropertyApproved, nil); err != nil {
		return nil, err
	}
	property.Status = domain.PropertyApproved
	property.RejectionReason = nil

	if s.notifSvc != nil {
		if ok := s.notifSvc.SendListingApproved(ctx, id); !ok {
			log.Printf("Failed to notify owner about approval of property %s", id)
		}
	}
	return property, nil
}

func (s *service) Reject(ctx context.Context, id uuid.UUID, reason string) (*domain.Property, error) {
	property, err := s.moderatable(ctx, id)
	if err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}

	if err := s.propertyRepo.UpdateStatus(ctx, id, domain.PropertyRejected, reasonPtr); err != nil {
		return nil, err
	}
	property.Status = domain.PropertyRejected
	property.RejectionReason = reasonPtr

	if s.notifSvc != nil {
		if ok := s.notifSvc.SendListingRejected(ctx, id, reason); !ok {
			log.Printf("Failed to notify owner about rejection of property %s", id)
		}
	}
	return property, nil
}

func (s *service) moderatable(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, ErrNotFound
	}
	if property.Status != domain.PropertyPending {
		return nil, ErrNotPending
	}
	return property, nil
}

func (s *service) UploadPhoto(ctx context.Context, id, ownerID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error) {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if property == nil {
		return "", ErrNotFound
	}
	if property.OwnerID != ownerID {
		return "", ErrNotOwner
	}

	if fileSize > maxPhotoSize {
		return "", ErrPhotoTooLarge
	}

	dotIdx := strings.LastIndex(fileName, ".")
	ext := ""
	if dotIdx >= 0 {
		ext = strings.ToLower(fileName[dotIdx:])
	}
	if !allowedPhotoExtensions[ext] {
		return "", ErrInvalidPhotoType
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return "", ErrInvalidPhotoType
	}

	objectKey := fmt.Sprintf("properties/%s/%d%s", id, time.Now().Unix(), ext)
	_, err = s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, objectKey, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	photoURL := s.publicURL(objectKey)
	if err := s.propertyRepo.SetPhotoURL(ctx, id, photoURL); err != nil {
		return "", err
	}
	return photoURL, nil
}

func (s *service) publicURL(objectKey string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, objectKey)
}
