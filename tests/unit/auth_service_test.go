package unit_test

import (
	"context"
	"testing"
	"time"

	"griya-properti/internal/config"
	"griya-properti/internal/domain"
	"griya-properti/internal/repository"
	"griya-properti/internal/service/auth"
	"griya-properti/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService() (auth.Service, *mocks.UserRepository, *mocks.SessionRepository) {
	userRepo := new(mocks.UserRepository)
	sessionRepo := new(mocks.SessionRepository)

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
	return auth.NewService(userRepo, sessionRepo, cfg), userRepo, sessionRepo
}

func registerInput() domain.CreateUserInput {
	return domain.CreateUserInput{
		Email:    "andi@example.com",
		Password: "rahasia-123",
		FullName: "Andi Wijaya",
		UserType: domain.TypeBuyer,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, userRepo, sessionRepo := newAuthService()

		userRepo.On("ExistsByEmail", ctx, "andi@example.com").Return(false, nil).Once()
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == "andi@example.com" && u.IsActive && u.UserType == domain.TypeBuyer
		})).Return(nil).Once()
		sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		user, tokens, err := svc.Register(ctx, registerInput())

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		userRepo.AssertExpectations(t)
	})

	t.Run("Email Taken", func(t *testing.T) {
		svc, userRepo, _ := newAuthService()

		userRepo.On("ExistsByEmail", ctx, "andi@example.com").Return(true, nil).Once()

		_, _, err := svc.Register(ctx, registerInput())

		assert.ErrorIs(t, err, auth.ErrEmailTaken)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Weak Password", func(t *testing.T) {
		svc, _, _ := newAuthService()

		input := registerInput()
		input.Password = "1234"

		_, _, err := svc.Register(ctx, input)

		assert.ErrorIs(t, err, auth.ErrWeakPassword)
	})

	t.Run("Cannot Self Register As Admin", func(t *testing.T) {
		svc, _, _ := newAuthService()

		input := registerInput()
		input.UserType = domain.TypeAdmin

		_, _, err := svc.Register(ctx, input)

		assert.ErrorIs(t, err, auth.ErrInvalidUserType)
	})

	t.Run("Triggers Welcome Notification", func(t *testing.T) {
		svc, userRepo, sessionRepo := newAuthService()
		notifSvc := new(mocks.NotificationService)
		svc.SetNotificationService(notifSvc)

		userRepo.On("ExistsByEmail", ctx, "andi@example.com").Return(false, nil).Once()
		userRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		notifSvc.On("SendWelcome", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(true).Maybe()

		_, _, err := svc.Register(ctx, registerInput())

		assert.NoError(t, err)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("rahasia-123"), bcrypt.MinCost)
	activeUser := &domain.User{
		ID:           uuid.New(),
		Email:        "andi@example.com",
		PasswordHash: string(hashed),
		FullName:     "Andi Wijaya",
		UserType:     domain.TypeBuyer,
		IsActive:     true,
	}

	t.Run("Success", func(t *testing.T) {
		svc, userRepo, sessionRepo := newAuthService()

		userRepo.On("GetByEmail", ctx, "andi@example.com").Return(activeUser, nil).Once()
		sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		user, tokens, err := svc.Login(ctx, domain.LoginInput{Email: "Andi@Example.com", Password: "rahasia-123"})

		assert.NoError(t, err)
		assert.Equal(t, activeUser.ID, user.ID)
		assert.NotEmpty(t, tokens.AccessToken)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		svc, userRepo, _ := newAuthService()

		userRepo.On("GetByEmail", ctx, "andi@example.com").Return(activeUser, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "andi@example.com", Password: "salah"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		svc, userRepo, _ := newAuthService()

		userRepo.On("GetByEmail", ctx, "tidakada@example.com").Return(nil, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "tidakada@example.com", Password: "rahasia-123"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Inactive Account", func(t *testing.T) {
		svc, userRepo, _ := newAuthService()

		inactive := *activeUser
		inactive.IsActive = false
		userRepo.On("GetByEmail", ctx, "andi@example.com").Return(&inactive, nil).Once()

		_, _, err := svc.Login(ctx, domain.LoginInput{Email: "andi@example.com", Password: "rahasia-123"})

		assert.ErrorIs(t, err, auth.ErrUserInactive)
	})
}

func TestAuthService_AccessToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Round Trip", func(t *testing.T) {
		svc, userRepo, sessionRepo := newAuthService()

		hashed, _ := bcrypt.GenerateFromPassword([]byte("rahasia-123"), bcrypt.MinCost)
		user := &domain.User{
			ID:           uuid.New(),
			Email:        "andi@example.com",
			PasswordHash: string(hashed),
			IsActive:     true,
		}
		userRepo.On("GetByEmail", ctx, "andi@example.com").Return(user, nil).Once()
		sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		_, tokens, err := svc.Login(ctx, domain.LoginInput{Email: "andi@example.com", Password: "rahasia-123"})
		assert.NoError(t, err)

		parsedID, err := svc.ValidateAccessToken(tokens.AccessToken)

		assert.NoError(t, err)
		assert.Equal(t, user.ID, parsedID)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		svc, _, _ := newAuthService()

		_, err := svc.ValidateAccessToken("bukan.token.jwt")

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown Token", func(t *testing.T) {
		svc, _, sessionRepo := newAuthService()

		sessionRepo.On("GetByTokenHash", ctx, mock.Anything).Return(nil, nil).Once()

		_, err := svc.RefreshToken(ctx, "token-kedaluwarsa")

		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Rotates Session", func(t *testing.T) {
		svc, userRepo, sessionRepo := newAuthService()

		user := &domain.User{ID: uuid.New(), Email: "andi@example.com", IsActive: true}
		session := &repository.Session{
			ID:        uuid.New(),
			UserID:    user.ID,
			TokenHash: "hash-lama",
			ExpiresAt: time.Now().Add(time.Hour),
		}
		sessionRepo.On("GetByTokenHash", ctx, mock.Anything).Return(session, nil).Once()
		userRepo.On("GetByID", ctx, user.ID).Return(user, nil).Once()
		sessionRepo.On("Revoke", ctx, session.ID).Return(nil).Once()
		sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		tokens, err := svc.RefreshToken(ctx, "token-lama")

		assert.NoError(t, err)
		assert.NotEmpty(t, tokens.RefreshToken)
		sessionRepo.AssertExpectations(t)
	})
}
