package unit_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"griya-properti/internal/config"
	"griya-properti/internal/domain"
	"griya-properti/internal/service/watermark"
	"griya-properti/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newWatermarkService(settingsRepo *mocks.SettingsRepository) watermark.Service {
	cfg := &config.Config{
		MinIOBucket:         "griya-media",
		MinIOPublicEndpoint: "cdn.example.com",
		MinIOPublicUseSSL:   true,
	}
	return watermark.NewService(settingsRepo, nil, nil, cfg)
}

func TestWatermarkService_GetSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults When Nothing Persisted", func(t *testing.T) {
		settingsRepo := new(mocks.SettingsRepository)
		svc := newWatermarkService(settingsRepo)

		settingsRepo.On("GetWatermark", ctx).Return(nil, nil).Once()

		settings, err := svc.GetSettings(ctx)

		assert.NoError(t, err)
		assert.False(t, settings.Enabled)
		assert.Equal(t, "bottom-right", settings.Position)
		assert.Equal(t, 0.5, settings.Opacity)
		assert.Equal(t, "Griya Properti", settings.Text)
	})

	t.Run("Persisted Overrides Merge With Defaults", func(t *testing.T) {
		settingsRepo := new(mocks.SettingsRepository)
		svc := newWatermarkService(settingsRepo)

		settingsRepo.On("GetWatermark", ctx).Return(&domain.WatermarkSettings{
			Enabled:  true,
			Position: "center",
		}, nil).Once()

		settings, err := svc.GetSettings(ctx)

		assert.NoError(t, err)
		assert.True(t, settings.Enabled)
		assert.Equal(t, "center", settings.Position)
		assert.Equal(t, 0.5, settings.Opacity)
		assert.Equal(t, "Griya Properti", settings.Text)
	})
}

func TestWatermarkService_UpdateSettings(t *testing.T) {
	ctx := context.Background()

	boolPtr := func(b bool) *bool { return &b }
	strPtr := func(s string) *string { return &s }
	floatPtr := func(f float64) *float64 { return &f }

	t.Run("Invalid Position", func(t *testing.T) {
		settingsRepo := new(mocks.SettingsRepository)
		svc := newWatermarkService(settingsRepo)

		settingsRepo.On("GetWatermark", ctx).Return(nil, nil).Once()

		_, err := svc.UpdateSettings(ctx, domain.UpdateWatermarkInput{Position: strPtr("middle")})

		assert.ErrorIs(t, err, watermark.ErrInvalidPosition)
		settingsRepo.AssertNotCalled(t, "UpsertWatermark", mock.Anything, mock.Anything)
	})

	t.Run("Opacity Out Of Range", func(t *testing.T) {
		settingsRepo := new(mocks.SettingsRepository)
		svc := newWatermarkService(settingsRepo)

		settingsRepo.On("GetWatermark", ctx).Return(nil, nil).Once()

		_, err := svc.UpdateSettings(ctx, domain.UpdateWatermarkInput{Opacity: floatPtr(1.5)})

		assert.ErrorIs(t, err, watermark.ErrInvalidOpacity)
	})

	t.Run("Partial Update Keeps Other Fields", func(t *testing.T) {
		settingsRepo := new(mocks.SettingsRepository)
		svc := newWatermarkService(settingsRepo)

		settingsRepo.On("GetWatermark", ctx).Return(&domain.WatermarkSettings{
			Enabled:  false,
			Position: "top-left",
			Opacity:  0.8,
			Text:     "Lama",
		}, nil).Once()
		settingsRepo.On("UpsertWatermark", ctx, mock.MatchedBy(func(s *domain.WatermarkSettings) bool {
			return s.Enabled && s.Position == "top-left" && s.Opacity == 0.8 && s.Text == "Lama"
		})).Return(nil).Once()

		settings, err := svc.UpdateSettings(ctx, domain.UpdateWatermarkInput{Enabled: boolPtr(true)})

		assert.NoError(t, err)
		assert.True(t, settings.Enabled)
		settingsRepo.AssertExpectations(t)
	})
}

func TestWatermarkService_UploadLogo(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejects Oversized File", func(t *testing.T) {
		settingsRepo := new(mocks.SettingsRepository)
		svc := newWatermarkService(settingsRepo)

		_, err := svc.UploadLogo(ctx, "logo.png", 6*1024*1024, "image/png", bytes.NewReader(nil))

		assert.ErrorIs(t, err, watermark.ErrFileTooLarge)
	})

	t.Run("Rejects Bad Extension", func(t *testing.T) {
		settingsRepo := new(mocks.SettingsRepository)
		svc := newWatermarkService(settingsRepo)

		_, err := svc.UploadLogo(ctx, "logo.pdf", 1024, "application/pdf", bytes.NewReader(nil))

		assert.ErrorIs(t, err, watermark.ErrInvalidFileType)
	})

	t.Run("Rejects Non Image MIME", func(t *testing.T) {
		settingsRepo := new(mocks.SettingsRepository)
		svc := newWatermarkService(settingsRepo)

		_, err := svc.UploadLogo(ctx, "logo.png", 1024, "text/html", bytes.NewReader(nil))

		assert.ErrorIs(t, err, watermark.ErrInvalidFileType)
	})
}

func TestWatermarkService_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("Invalid URL", func(t *testing.T) {
		settingsRepo := new(mocks.SettingsRepository)
		svc := newWatermarkService(settingsRepo)

		_, err := svc.Apply(ctx, "ftp://example.com/foto.jpg")

		assert.ErrorIs(t, err, watermark.ErrInvalidImageURL)
	})

	t.Run("Passes Image Through Untouched", func(t *testing.T) {
		imageBytes := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write(imageBytes)
		}))
		defer server.Close()

		settingsRepo := new(mocks.SettingsRepository)
		svc := newWatermarkService(settingsRepo)
		settingsRepo.On("GetWatermark", ctx).Return(&domain.WatermarkSettings{
			Enabled:  true,
			Position: "center",
			Opacity:  0.3,
			Text:     "Griya",
		}, nil).Once()

		result, err := svc.Apply(ctx, server.URL+"/foto.jpg")

		assert.NoError(t, err)
		assert.Equal(t, imageBytes, result.Data)
		assert.Equal(t, "image/jpeg", result.ContentType)
		assert.Equal(t, "foto.jpg", result.FileName)
		assert.True(t, result.Settings.Enabled)
		assert.Equal(t, "center", result.Settings.Position)
	})

	t.Run("Upstream Failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		settingsRepo := new(mocks.SettingsRepository)
		svc := newWatermarkService(settingsRepo)
		settingsRepo.On("GetWatermark", ctx).Return(nil, nil).Once()

		_, err := svc.Apply(ctx, server.URL+"/hilang.jpg")

		assert.ErrorIs(t, err, watermark.ErrFetchFailed)
	})
}
