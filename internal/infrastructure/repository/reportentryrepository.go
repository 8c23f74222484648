package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"vigil/internal/domain/report"
	"vigil/internal/infrastructure/persistence/mappers"
	"vigil/internal/infrastructure/persistence/models"
	db "vigil/internal/shared/db"
	"vigil/internal/shared/errors"
)

type ReportEntryRepository struct {
	db     *gorm.DB
	mapper mappers.ReportEntryMapper
}

func NewReportEntryRepository(database *gorm.DB) *ReportEntryRepository {
	return &ReportEntryRepository{
		db:     database,
		mapper: mappers.NewReportEntryMapper(),
	}
}

func (r *ReportEntryRepository) Append(ctx context.Context, eventID uint, kind report.ParentKind, parentID uint, entry *report.Entry) error {
	model := r.mapper.ToModel(eventID, kind, parentID, entry)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to append report entry: %w", err)
	}

	return entry.SetID(model.ID)
}

func (r *ReportEntryRepository) ListForParent(ctx context.Context, eventID uint, kind report.ParentKind, parentID uint) ([]*report.Entry, error) {
	var rows []models.ReportEntryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("event_id = ? AND parent_kind = ? AND parent_id = ?", eventID, string(kind), parentID).
		Order("created_at").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list report entries: %w", err)
	}

	entries := make([]*report.Entry, 0, len(rows))
	for i := range rows {
		entry, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *ReportEntryRepository) FindByID(ctx context.Context, eventID uint, entryID uint) (*report.Entry, error) {
	var model models.ReportEntryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("event_id = ? AND id = ?", eventID, entryID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("report entry not found")
		}
		return nil, fmt.Errorf("failed to find report entry: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

// ParentRef resolves an entry to its parent aggregate's kind and
// event-scoped number.
func (r *ReportEntryRepository) ParentRef(ctx context.Context, eventID uint, entryID uint) (report.ParentKind, int, error) {
	var model models.ReportEntryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("event_id = ? AND id = ?", eventID, entryID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", 0, errors.NewNotFoundError("report entry not found")
		}
		return "", 0, fmt.Errorf("failed to find report entry: %w", err)
	}

	kind := report.ParentKind(model.ParentKind)
	var number int
	var err error
	switch kind {
	case report.ParentIncident:
		err = tx.
			Model(&models.IncidentModel{}).
			Where("id = ?", model.ParentID).
			Pluck("number", &number).Error
	case report.ParentFieldReport:
		err = tx.
			Model(&models.FieldReportModel{}).
			Where("id = ?", model.ParentID).
			Pluck("number", &number).Error
	default:
		return "", 0, fmt.Errorf("unknown parent kind: %q", model.ParentKind)
	}
	if err != nil {
		return "", 0, fmt.Errorf("failed to resolve entry parent: %w", err)
	}
	if number == 0 {
		return "", 0, errors.NewNotFoundError("entry parent not found")
	}

	return kind, number, nil
}

func (r *ReportEntryRepository) SetStricken(ctx context.Context, eventID uint, entryID uint, stricken bool) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.ReportEntryModel{}).
		Where("event_id = ? AND id = ?", eventID, entryID).
		Update("stricken", stricken)
	if result.Error != nil {
		return fmt.Errorf("failed to update report entry: %w", result.Error)
	}

	// Note: RowsAffected may be 0 when the flag already held the requested
	// value; existence is checked by the caller via ParentRef.

	return nil
}
