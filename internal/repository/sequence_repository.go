package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/draperly/atelier-api/internal/domain"
)

// SequenceRepository handles database operations for document sequences.
// One sequence row exists per prefix (entity prefix plus year and month), so
// project and bill numbers restart each month independently.
type SequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new SequenceRepository
func NewSequenceRepository(db *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// Next atomically retrieves and increments the sequence for a prefix.
// Uses SELECT FOR UPDATE so concurrent creations in the same month cannot
// receive the same number. If no sequence exists for the prefix, one is
// created starting at 1.
func (r *SequenceRepository) Next(ctx context.Context, prefix string) (int, error) {
	var seq domain.DocumentSequence
	var next int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("prefix = ?", prefix).
			First(&seq)

		if result.Error == gorm.ErrRecordNotFound {
			seq = domain.DocumentSequence{
				Prefix:       prefix,
				LastSequence: 1,
				CreatedAt:    time.Now(),
				UpdatedAt:    time.Now(),
			}
			if err := tx.Create(&seq).Error; err != nil {
				return fmt.Errorf("failed to create document sequence: %w", err)
			}
			next = 1
		} else if result.Error != nil {
			return fmt.Errorf("failed to get document sequence: %w", result.Error)
		} else {
			next = seq.LastSequence + 1
			if err := tx.Model(&seq).Updates(map[string]interface{}{
				"last_sequence": next,
				"updated_at":    time.Now(),
			}).Error; err != nil {
				return fmt.Errorf("failed to update document sequence: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		return 0, err
	}

	return next, nil
}

// Current retrieves the current sequence value without incrementing.
// Returns 0 if no sequence exists for the prefix.
func (r *SequenceRepository) Current(ctx context.Context, prefix string) (int, error) {
	var seq domain.DocumentSequence
	result := r.db.WithContext(ctx).
		Where("prefix = ?", prefix).
		First(&seq)

	if result.Error == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if result.Error != nil {
		return 0, fmt.Errorf("failed to get document sequence: %w", result.Error)
	}

	return seq.LastSequence, nil
}
