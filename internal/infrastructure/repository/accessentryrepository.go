package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vigil/internal/domain/access"
	"vigil/internal/infrastructure/persistence/mappers"
	"vigil/internal/infrastructure/persistence/models"
	db "vigil/internal/shared/db"
)

type AccessEntryRepository struct {
	db     *gorm.DB
	mapper mappers.AccessEntryMapper
}

func NewAccessEntryRepository(database *gorm.DB) *AccessEntryRepository {
	return &AccessEntryRepository{
		db:     database,
		mapper: mappers.NewAccessEntryMapper(),
	}
}

func (r *AccessEntryRepository) ListEntries(ctx context.Context, eventID uint, mode access.Mode) ([]access.AccessEntry, error) {
	var rows []models.AccessEntryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("event_id = ? AND mode = ?", eventID, mode.String()).
		Order("expression").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list access entries: %w", err)
	}

	entries := make([]access.AccessEntry, 0, len(rows))
	for i := range rows {
		entry, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ReplaceEntry upserts on the (event, mode, expression) unique index, so
// re-setting an expression replaces its validity atomically.
func (r *AccessEntryRepository) ReplaceEntry(ctx context.Context, eventID uint, mode access.Mode, entry access.AccessEntry) error {
	model := r.mapper.ToModel(eventID, mode, entry)
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "mode"}, {Name: "expression"}},
			DoUpdates: clause.AssignmentColumns([]string{"validity"}),
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to replace access entry: %w", err)
	}

	return nil
}

func (r *AccessEntryRepository) RemoveEntry(ctx context.Context, eventID uint, mode access.Mode, expression access.Expression) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Where("event_id = ? AND mode = ? AND expression = ?", eventID, mode.String(), expression.String()).
		Delete(&models.AccessEntryModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove access entry: %w", result.Error)
	}

	// Removing an absent expression is a no-op, not an error.
	return nil
}
