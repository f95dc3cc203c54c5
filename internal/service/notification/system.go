package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"griya-properti/internal/domain"
)

// System-triggered notifications: single recipient, fixed copy, marked
// delivered on both channels immediately. Duplicates are suppressed two
// ways: a recency lookup on the recipient's type tag, and a unique
// dedupe key on the insert itself so concurrent triggers cannot slip a
// second record past the lookup.

func (s *service) SendWelcome(ctx context.Context, userID uuid.UUID) bool {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || user == nil {
		log.Printf("welcome notification: user %s not found: %v", userID, err)
		return false
	}

	exists, err := s.userNotifRepo.ExistsRecent(ctx, userID, domain.UserNotifWelcome, nil)
	if err != nil {
		log.Printf("welcome notification: lookup failed for %s: %v", userID, err)
		return false
	}
	if !exists {
		key := fmt.Sprintf("welcome:%s", userID)
		if _, err := s.systemNotify(ctx, user, domain.UserNotifWelcome, key,
			"Selamat Datang di Griya Properti",
			fmt.Sprintf("Halo %s, selamat datang! Lengkapi profil Anda untuk mulai menjelajah properti.", user.FullName),
		); err != nil {
			log.Printf("welcome notification failed for %s: %v", userID, err)
			return false
		}
	}

	exists, err = s.userNotifRepo.ExistsRecent(ctx, userID, domain.UserNotifOnboarding, nil)
	if err != nil {
		log.Printf("onboarding notification: lookup failed for %s: %v", userID, err)
		return false
	}
	if !exists {
		tip := "Simpan pencarian dan tandai properti favorit Anda agar tidak ketinggalan harga terbaru."
		if user.UserType == domain.TypeSeller || user.UserType == domain.TypeAgent {
			tip = "Pasang iklan properti pertama Anda dan jangkau ribuan calon pembeli."
		}

		key := fmt.Sprintf("onboarding:%s", userID)
		if _, err := s.systemNotify(ctx, user, domain.UserNotifOnboarding, key, "Tips Memulai", tip); err != nil {
			log.Printf("onboarding notification failed for %s: %v", userID, err)
			return false
		}
	}

	return true
}

func (s *service) SendListingApproved(ctx context.Context, propertyID uuid.UUID) bool {
	property, owner, ok := s.lookupListing(ctx, propertyID)
	if !ok {
		return false
	}

	since := time.Now().Add(-time.Hour)
	exists, err := s.userNotifRepo.ExistsRecent(ctx, owner.ID, domain.UserNotifPostCreated, &since)
	if err != nil {
		log.Printf("listing approved notification: lookup failed for %s: %v", owner.ID, err)
		return false
	}
	if exists {
		return true
	}

	key := fmt.Sprintf("post_created:%s:%s:%s", owner.ID, property.ID, time.Now().Format("2006010215"))
	if _, err := s.systemNotify(ctx, owner, domain.UserNotifPostCreated, key,
		"Iklan Anda Telah Tayang",
		fmt.Sprintf("Properti %q telah disetujui dan kini tayang di Griya Properti.", property.Title),
	); err != nil {
		log.Printf("listing approved notification failed for %s: %v", owner.ID, err)
		return false
	}
	return true
}

func (s *service) SendListingRejected(ctx context.Context, propertyID uuid.UUID, reason string) bool {
	property, owner, ok := s.lookupListing(ctx, propertyID)
	if !ok {
		return false
	}

	since := time.Now().Add(-24 * time.Hour)
	exists, err := s.userNotifRepo.ExistsRecent(ctx, owner.ID, domain.UserNotifPostRejected, &since)
	if err != nil {
		log.Printf("listing rejected notification: lookup failed for %s: %v", owner.ID, err)
		return false
	}
	if exists {
		return true
	}

	message := fmt.Sprintf("Properti %q ditolak oleh moderator.", property.Title)
	if reason != "" {
		message = fmt.Sprintf("%s Alasan: %s", message, reason)
	}

	key := fmt.Sprintf("post_rejected:%s:%s:%s", owner.ID, property.ID, time.Now().Format("20060102"))
	if _, err := s.systemNotify(ctx, owner, domain.UserNotifPostRejected, key, "Iklan Anda Ditolak", message); err != nil {
		log.Printf("listing rejected notification failed for %s: %v", owner.ID, err)
		return false
	}
	return true
}

func (s *service) lookupListing(ctx context.Context, propertyID uuid.UUID) (*domain.Property, *domain.User, bool) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil || property == nil {
		log.Printf("listing notification: property %s not found: %v", propertyID, err)
		return nil, nil, false
	}

	owner, err := s.userRepo.GetByID(ctx, property.OwnerID)
	if err != nil || owner == nil {
		log.Printf("listing notification: owner %s not found: %v", property.OwnerID, err)
		return nil, nil, false
	}
	return property, owner, true
}

// systemNotify writes the broadcast record plus its single per-user
// record and marks both channels delivered. No real send happens here.
// Losing the dedupe race to a concurrent trigger is treated as success.
func (s *service) systemNotify(ctx context.Context, user *domain.User, typ domain.UserNotificationType, dedupeKey, title, message string) (bool, error) {
	now := time.Now()

	notif := &domain.Notification{
		ID:             uuid.New(),
		Title:          title,
		Message:        message,
		Channel:        domain.ChannelBoth,
		Audience:       domain.AudienceSpecific,
		SpecificUsers:  domain.UUIDList{user.ID},
		Status:         domain.StatusPending,
		RecipientCount: 1,
		CreatedBy:      user.ID,
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return false, err
	}

	un := &domain.UserNotification{
		ID:             uuid.New(),
		NotificationID: notif.ID,
		UserID:         user.ID,
		Title:          title,
		Message:        message,
		Type:           typ,
		DedupeKey:      &dedupeKey,
		DeliveredAt:    &now,
	}
	created, err := s.userNotifRepo.Create(ctx, un)
	if err != nil {
		_, _ = s.notifRepo.Delete(ctx, notif.ID)
		return false, err
	}
	if !created {
		_, _ = s.notifRepo.Delete(ctx, notif.ID)
		return false, nil
	}

	notif.Status = domain.StatusSent
	notif.DeliveredCount = 1
	notif.Delivery = domain.DeliveryMeta{EmailSent: 1, PushSent: 1}
	notif.SentAt = &now
	if err := s.notifRepo.UpdateDeliveryResult(ctx, notif); err != nil {
		return false, err
	}
	return true, nil
}
