package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"griya-properti/internal/domain"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)
	ListByStatus(ctx context.Context, status domain.PropertyStatus, params domain.PaginationParams) ([]domain.Property, int64, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, params domain.PaginationParams) ([]domain.Property, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PropertyStatus, rejectionReason *string) error
	SetPhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error
}

type propertyRepository struct {
	db *sqlx.DB
}

func NewPropertyRepository(db *sqlx.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	query := `
		INSERT INTO properties (id, owner_id, title, description, price, address, city, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		property.ID, property.OwnerID, property.Title, property.Description,
		property.Price, property.Address, property.City, property.Status,
	).Scan(&property.CreatedAt, &property.UpdatedAt)
}

func (r *propertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	var property domain.Property
	query := `SELECT * FROM properties WHERE id = $1`

	err := r.db.GetContext(ctx, &property, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) ListByStatus(ctx context.Context, status domain.PropertyStatus, params domain.PaginationParams) ([]domain.Property, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM properties WHERE status = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, status); err != nil {
		return nil, 0, err
	}

	var properties []domain.Property
	query := `
		SELECT * FROM properties
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &properties, query, status, params.PageSize, params.Offset())
	return properties, total, err
}

func (r *propertyRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, params domain.PaginationParams) ([]domain.Property, int64, error) {
	params.Validate()

	var total int64
	countQuery := `SELECT COUNT(*) FROM properties WHERE owner_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, ownerID); err != nil {
		return nil, 0, err
	}

	var properties []domain.Property
	query := `
		SELECT * FROM properties
		WHERE owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &properties, query, ownerID, params.PageSize, params.Offset())
	return properties, total, err
}

func (r *propertyRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PropertyStatus, rejectionReason *string) error {
	query := `
		UPDATE properties
		SET status = $2, rejection_reason = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	var updatedAt sql.NullTime
	err := r.db.QueryRowxContext(ctx, query, id, status, rejectionReason).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.New("property not found")
	}
	return err
}

func (r *propertyRepository) SetPhotoURL(ctx context.Context, id uuid.UUID, photoURL string) error {
	query := `UPDATE properties SET photo_url = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, photoURL)
	return err
}
