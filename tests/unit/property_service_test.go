package unit_test

import (
	"bytes"
	"context"
	"testing"

	"griya-properti/internal/config"
	"griya-properti/internal/domain"
	"griya-properti/internal/service/property"
	"griya-properti/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newPropertyService() (property.Service, *mocks.PropertyRepository, *mocks.NotificationService) {
	propertyRepo := new(mocks.PropertyRepository)
	notifSvc := new(mocks.NotificationService)

	svc := property.NewService(propertyRepo, nil, &config.Config{MinIOBucket: "griya-media"})
	svc.SetNotificationService(notifSvc)
	return svc, propertyRepo, notifSvc
}

func TestPropertyService_Create(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("Success Starts Pending", func(t *testing.T) {
		svc, propertyRepo, _ := newPropertyService()

		propertyRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Property) bool {
			return p.OwnerID == ownerID && p.Status == domain.PropertyPending
		})).Return(nil).Once()

		prop, err := svc.Create(ctx, ownerID, domain.CreatePropertyInput{
			Title:       "Rumah Minimalis Bandung",
			Description: "Dekat pusat kota",
			Price:       850_000_000,
			Address:     "Jl. Dago No. 5",
			City:        "Bandung",
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.PropertyPending, prop.Status)
		propertyRepo.AssertExpectations(t)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		svc, propertyRepo, _ := newPropertyService()

		_, err := svc.Create(ctx, ownerID, domain.CreatePropertyInput{Title: "Rumah", Price: 100})

		assert.ErrorIs(t, err, property.ErrMissingFields)
		propertyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Invalid Price", func(t *testing.T) {
		svc, _, _ := newPropertyService()

		_, err := svc.Create(ctx, ownerID, domain.CreatePropertyInput{
			Title:       "Rumah Minimalis",
			Description: "Bagus",
			Price:       0,
			Address:     "Jl. Dago",
			City:        "Bandung",
		})

		assert.ErrorIs(t, err, property.ErrInvalidPrice)
	})
}

func TestPropertyService_Approve(t *testing.T) {
	ctx := context.Background()

	pending := &domain.Property{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		Title:   "Rumah Minimalis",
		Status:  domain.PropertyPending,
	}

	t.Run("Approves And Notifies Owner", func(t *testing.T) {
		svc, propertyRepo, notifSvc := newPropertyService()

		propertyRepo.On("GetByID", ctx, pending.ID).Return(pending, nil).Once()
		propertyRepo.On("UpdateStatus", ctx, pending.ID, domain.PropertyApproved, (*string)(nil)).Return(nil).Once()
		notifSvc.On("SendListingApproved", ctx, pending.ID).Return(true).Once()

		prop, err := svc.Approve(ctx, pending.ID)

		assert.NoError(t, err)
		assert.Equal(t, domain.PropertyApproved, prop.Status)
		notifSvc.AssertExpectations(t)
	})

	t.Run("Already Moderated", func(t *testing.T) {
		svc, propertyRepo, notifSvc := newPropertyService()

		approved := &domain.Property{ID: uuid.New(), Status: domain.PropertyApproved}
		propertyRepo.On("GetByID", ctx, approved.ID).Return(approved, nil).Once()

		_, err := svc.Approve(ctx, approved.ID)

		assert.ErrorIs(t, err, property.ErrNotPending)
		notifSvc.AssertNotCalled(t, "SendListingApproved", mock.Anything, mock.Anything)
	})

	t.Run("Not Found", func(t *testing.T) {
		svc, propertyRepo, _ := newPropertyService()

		id := uuid.New()
		propertyRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		_, err := svc.Approve(ctx, id)

		assert.ErrorIs(t, err, property.ErrNotFound)
	})
}

func TestPropertyService_Reject(t *testing.T) {
	ctx := context.Background()

	pending := &domain.Property{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		Title:   "Rumah Minimalis",
		Status:  domain.PropertyPending,
	}

	t.Run("Rejects With Reason And Notifies", func(t *testing.T) {
		svc, propertyRepo, notifSvc := newPropertyService()

		propertyRepo.On("GetByID", ctx, pending.ID).Return(pending, nil).Once()
		propertyRepo.On("UpdateStatus", ctx, pending.ID, domain.PropertyRejected, mock.MatchedBy(func(r *string) bool {
			return r != nil && *r == "Foto tidak jelas"
		})).Return(nil).Once()
		notifSvc.On("SendListingRejected", ctx, pending.ID, "Foto tidak jelas").Return(true).Once()

		prop, err := svc.Reject(ctx, pending.ID, "Foto tidak jelas")

		assert.NoError(t, err)
		assert.Equal(t, domain.PropertyRejected, prop.Status)
		assert.Equal(t, "Foto tidak jelas", *prop.RejectionReason)
		notifSvc.AssertExpectations(t)
	})

	t.Run("Empty Reason Stored As Null", func(t *testing.T) {
		svc, propertyRepo, notifSvc := newPropertyService()

		pending := &domain.Property{
			ID:      uuid.New(),
			OwnerID: uuid.New(),
			Title:   "Rumah Minimalis",
			Status:  domain.PropertyPending,
		}
		propertyRepo.On("GetByID", ctx, pending.ID).Return(pending, nil).Once()
		propertyRepo.On("UpdateStatus", ctx, pending.ID, domain.PropertyRejected, (*string)(nil)).Return(nil).Once()
		notifSvc.On("SendListingRejected", ctx, pending.ID, "").Return(true).Once()

		prop, err := svc.Reject(ctx, pending.ID, "   ")

		assert.NoError(t, err)
		assert.Nil(t, prop.RejectionReason)
	})
}

func TestPropertyService_UploadPhoto(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	prop := &domain.Property{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Status:  domain.PropertyApproved,
	}

	t.Run("Rejects Other Users", func(t *testing.T) {
		svc, propertyRepo, _ := newPropertyService()

		propertyRepo.On("GetByID", ctx, prop.ID).Return(prop, nil).Once()

		_, err := svc.UploadPhoto(ctx, prop.ID, uuid.New(), "rumah.jpg", 1024, "image/jpeg", bytes.NewReader(nil))

		assert.ErrorIs(t, err, property.ErrNotOwner)
	})

	t.Run("Rejects Bad Extension", func(t *testing.T) {
		svc, propertyRepo, _ := newPropertyService()

		propertyRepo.On("GetByID", ctx, prop.ID).Return(prop, nil).Once()

		_, err := svc.UploadPhoto(ctx, prop.ID, ownerID, "rumah.exe", 1024, "image/jpeg", bytes.NewReader(nil))

		assert.ErrorIs(t, err, property.ErrInvalidPhotoType)
	})

	t.Run("Rejects Oversized File", func(t *testing.T) {
		svc, propertyRepo, _ := newPropertyService()

		propertyRepo.On("GetByID", ctx, prop.ID).Return(prop, nil).Once()

		_, err := svc.UploadPhoto(ctx, prop.ID, ownerID, "rumah.jpg", 11*1024*1024, "image/jpeg", bytes.NewReader(nil))

		assert.ErrorIs(t, err, property.ErrPhotoTooLarge)
	})
}
