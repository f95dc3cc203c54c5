package watermark

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"griya-properti/internal/config"
	"griya-properti/internal/domain"
	"griya-properti/internal/repository"
)

var (
	ErrInvalidFileType = errors.New("logo must be an image (png, jpg, jpeg, gif, webp or svg)")
	ErrFileTooLarge    = errors.New("logo must be smaller than 5MB")
	ErrInvalidPosition = errors.New("position must be one of top-left, top-right, bottom-left, bottom-right, center")
	ErrInvalidOpacity  = errors.New("opacity must be between 0 and 1")
	ErrInvalidImageURL = errors.New("image URL must be an absolute http or https URL")
	ErrFetchFailed     = errors.New("failed to fetch source image")
)

const (
	settingsCacheKey = "watermark:settings"
	settingsCacheTTL = 5 * time.Minute
	maxLogoSize      = 5 * 1024 * 1024
	maxImageSize     = 20 * 1024 * 1024
)

var allowedLogoExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// FetchedImage is the result of the apply endpoint: the source bytes
// plus the settings a client-side overlay needs. Server-side pixel
// compositing is deliberately not performed; the image is passed
// through untouched.
type FetchedImage struct {
	Data        []byte
	ContentType string
	FileName    string
	Settings    domain.WatermarkSettings
}

type Service interface {
	GetSettings(ctx context.Context) (*domain.WatermarkSettings, error)
	UpdateSettings(ctx context.Context, input domain.UpdateWatermarkInput) (*domain.WatermarkSettings, error)
	UploadLogo(ctx context.Context, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error)
	Apply(ctx context.Context, imageURL string) (*FetchedImage, error)
}

type service struct {
	settingsRepo repository.SettingsRepository
	minioClient  *minio.Client
	redis        *redis.Client
	cfg          *config.Config
	httpClient   *http.Client
}

func NewService(settingsRepo repository.SettingsRepository, minioClient *minio.Client, redisClient *redis.Client, cfg *config.Config) Service {
	return &service{
		settingsRepo: settingsRepo,
		minioClient:  minioClient,
		redis:        redisClient,
		cfg:          cfg,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

// GetSettings merges the fixed defaults with any persisted override.
func (s *service) GetSettings(ctx context.Context) (*domain.WatermarkSettings, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, settingsCacheKey).Result(); err == nil {
			var settings domain.WatermarkSettings
			if json.Unmarshal([]byte(cached), &settings) == nil {
				return &settings, nil
			}
		}
	}

	settings, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(settings); err == nil {
			_ = s.redis.Set(ctx, settingsCacheKey, data, settingsCacheTTL).Err()
		}
	}
	return settings, nil
}

func (s *service) loadSettings(ctx context.Context) (*domain.WatermarkSettings, error) {
	persisted, err := s.settingsRepo.GetWatermark(ctx)
	if err != nil {
		return nil, err
	}

	defaults := domain.DefaultWatermarkSettings()
	if persisted == nil {
		return &defaults, nil
	}

	if persisted.Position == "" {
		persisted.Position = defaults.Position
	}
	if persisted.Opacity == 0 {
		persisted.Opacity = defaults.Opacity
	}
	if persisted.Text == "" {
		persisted.Text = defaults.Text
	}
	return persisted, nil
}

func (s *service) UpdateSettings(ctx context.Context, input domain.UpdateWatermarkInput) (*domain.WatermarkSettings, error) {
	settings, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	if input.Enabled != nil {
		settings.Enabled = *input.Enabled
	}
	if input.Position != nil {
		if !domain.WatermarkPositions[*input.Position] {
			return nil, ErrInvalidPosition
		}
		settings.Position = *input.Position
	}
	if input.Opacity != nil {
		if *input.Opacity < 0 || *input.Opacity > 1 {
			return nil, ErrInvalidOpacity
		}
		settings.Opacity = *input.Opacity
	}
	if input.Text != nil {
		settings.Text = *input.Text
	}

	if err := s.settingsRepo.UpsertWatermark(ctx, settings); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return settings, nil
}

func (s *service) UploadLogo(ctx context.Context, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error) {
	if fileSize > maxLogoSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedLogoExtensions[ext] {
		return "", ErrInvalidFileType
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return "", ErrInvalidFileType
	}

	objectKey := fmt.Sprintf("watermark/%d-%s", time.Now().Unix(), sanitizeFileName(fileName))
	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, objectKey, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload logo: %w", err)
	}

	logoURL := s.publicURL(objectKey)

	settings, err := s.loadSettings(ctx)
	if err != nil {
		return "", err
	}
	settings.LogoURL = &logoURL
	if err := s.settingsRepo.UpsertWatermark(ctx, settings); err != nil {
		return "", err
	}
	s.invalidateCache(ctx)

	return logoURL, nil
}

// Apply fetches the source image and returns it unmodified alongside
// the active watermark settings. Compositing stays client-side until a
// server-side image pipeline exists.
func (s *service) Apply(ctx context.Context, imageURL string) (*FetchedImage, error) {
	parsed, err := url.Parse(imageURL)
	if err != nil || !parsed.IsAbs() || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, ErrInvalidImageURL
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, ErrInvalidImageURL
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	fileName := path.Base(parsed.Path)
	if fileName == "." || fileName == "/" || fileName == "" {
		fileName = "image"
	}

	return &FetchedImage{
		Data:        data,
		ContentType: contentType,
		FileName:    fileName,
		Settings:    *settings,
	}, nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, settingsCacheKey).Err()
	}
}

func (s *service) publicURL(objectKey string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(objectKey))
}

func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
}
