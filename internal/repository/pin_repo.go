package repository

import (
	"context"

	"github.com/timmy/fidghost/internal/domain"
	"gorm.io/gorm"
)

const maxListLimit = 100

// PinRepository handles pin ledger operations.
type PinRepository struct {
	db *gorm.DB
}

// NewPinRepository creates a new PinRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *PinRepository: repository instance bound to db.
func NewPinRepository(db *gorm.DB) *PinRepository {
	return &PinRepository{db: db}
}

// Create inserts a new pin record.
func (r *PinRepository) Create(ctx context.Context, pin *domain.PinRecord) error {
	return r.db.WithContext(ctx).Create(pin).Error
}

// ListByFID returns the most recent pins for a fid, newest first.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - fid: Farcaster id to filter on.
//   - limit: page size; values outside 1..100 are clamped.
// Returns:
//   - []domain.PinRecord: matching records.
//   - error: non-nil if the query fails.
func (r *PinRepository) ListByFID(ctx context.Context, fid string, limit int) ([]domain.PinRecord, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	var pins []domain.PinRecord
	err := r.db.WithContext(ctx).
		Where("fid = ?", fid).
		Order("created_at DESC").
		Limit(limit).
		Find(&pins).Error
	return pins, err
}

// GetByMetadataCID returns the pin whose metadata has the given content id.
// gorm.ErrRecordNotFound is returned when there is none.
func (r *PinRepository) GetByMetadataCID(ctx context.Context, cid string) (*domain.PinRecord, error) {
	var pin domain.PinRecord
	if err := r.db.WithContext(ctx).Where("metadata_cid = ?", cid).First(&pin).Error; err != nil {
		return nil, err
	}
	return &pin, nil
}
