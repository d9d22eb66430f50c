package repository

import (
	"context"
	"errors"

	"github.com/sangkips/clockshop-api/internal/domain/entity"
	"github.com/sangkips/clockshop-api/internal/domain/ledger"
	domainRepo "github.com/sangkips/clockshop-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new document sequence repository
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next draws the following value for (prefix, day).
//
// A missing counter is inserted with the seed value and ON CONFLICT DO NOTHING,
// so two transactions racing to create it both end up locking the same row
// and are served one after the other.
func (r *sequenceRepository) Next(ctx context.Context, prefix ledger.Prefix, day string, seed func(ctx context.Context) (int, error)) (int, error) {
	db := r.db.WithContext(ctx)
	key := entity.DocumentSequence{Prefix: string(prefix), Day: day}

	var existing int64
	if err := db.Model(&entity.DocumentSequence{}).Where(&key).Count(&existing).Error; err != nil {
		return 0, err
	}
	if existing == 0 {
		start := 0
		if seed != nil {
			var err error
			if start, err = seed(ctx); err != nil {
				return 0, err
			}
		}
		row := key
		row.LastValue = start
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return 0, err
		}
	}

	var seq entity.DocumentSequence
	err := db.Scopes(ForUpdate).Where(&key).First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, errors.New("document sequence row vanished after insert")
	}
	if err != nil {
		return 0, err
	}

	seq.LastValue++
	err = db.Model(&entity.DocumentSequence{}).
		Where(&key).
		Update("last_value", seq.LastValue).Error
	if err != nil {
		return 0, err
	}
	return seq.LastValue, nil
}
