package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vigil/internal/infrastructure/persistence/models"
	db "vigil/internal/shared/db"
)

// Sequence kinds. Each event carries one independent counter per kind.
const (
	SequenceIncident    = "incident"
	SequenceFieldReport = "field_report"
)

// NumberAllocator hands out event-scoped numbers. Next must run inside the
// same transaction as the insert consuming the number: the sequence row is
// locked FOR UPDATE, so concurrent creates serialize per (event, kind) and
// a rolled-back create leaves at most a gap, never a duplicate.
type NumberAllocator struct {
	db *gorm.DB
}

func NewNumberAllocator(database *gorm.DB) *NumberAllocator {
	return &NumberAllocator{db: database}
}

func (a *NumberAllocator) Next(ctx context.Context, eventID uint, kind string) (int, error) {
	tx := db.GetTxFromContext(ctx, a.db)

	var seq models.NumberSequenceModel
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("event_id = ? AND kind = ?", eventID, kind).
		First(&seq).Error
	if err == gorm.ErrRecordNotFound {
		seq = models.NumberSequenceModel{EventID: eventID, Kind: kind, Value: 0}
		if err := tx.Create(&seq).Error; err != nil {
			return 0, fmt.Errorf("failed to create number sequence: %w", err)
		}
	} else if err != nil {
		return 0, fmt.Errorf("failed to lock number sequence: %w", err)
	}

	seq.Value++
	if err := tx.
		Model(&models.NumberSequenceModel{}).
		Where("id = ?", seq.ID).
		Update("value", seq.Value).Error; err != nil {
		return 0, fmt.Errorf("failed to advance number sequence: %w", err)
	}

	return seq.Value, nil
}
