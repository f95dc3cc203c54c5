package notification

import (
	"context"

	"github.com/google/uuid"

	"griya-properti/internal/domain"
)

// resolveAudience maps an audience tag to the concrete recipient set.
// specific takes the literal ID list; buyers/sellers/agents map 1:1 to
// a user-type filter; all and anything unrecognized fan out to every
// targetable type.
func (s *service) resolveAudience(ctx context.Context, audience domain.NotificationAudience, specific []uuid.UUID) ([]domain.User, error) {
	switch audience {
	case domain.AudienceSpecific:
		if len(specific) == 0 {
			return nil, ErrNoRecipients
		}
		return s.userRepo.GetByIDs(ctx, specific)
	case domain.AudienceBuyers:
		return s.userRepo.GetByTypes(ctx, []domain.UserType{domain.TypeBuyer})
	case domain.AudienceSellers:
		return s.userRepo.GetByTypes(ctx, []domain.UserType{domain.TypeSeller})
	case domain.AudienceAgents:
		return s.userRepo.GetByTypes(ctx, []domain.UserType{domain.TypeAgent})
	default:
		return s.userRepo.GetByTypes(ctx, []domain.UserType{domain.TypeBuyer, domain.TypeSeller, domain.TypeAgent})
	}
}
