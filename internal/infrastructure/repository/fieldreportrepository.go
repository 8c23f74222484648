package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"vigil/internal/domain/fieldreport"
	"vigil/internal/domain/report"
	"vigil/internal/infrastructure/persistence/mappers"
	"vigil/internal/infrastructure/persistence/models"
	db "vigil/internal/shared/db"
	"vigil/internal/shared/errors"
)

type FieldReportRepository struct {
	db          *gorm.DB
	mapper      mappers.FieldReportMapper
	entryMapper mappers.ReportEntryMapper
	allocator   *NumberAllocator
}

func NewFieldReportRepository(database *gorm.DB) *FieldReportRepository {
	return &FieldReportRepository{
		db:          database,
		mapper:      mappers.NewFieldReportMapper(),
		entryMapper: mappers.NewReportEntryMapper(),
		allocator:   NewNumberAllocator(database),
	}
}

// Save inserts a new field report, assigning its number from the field
// report sequence. Must run inside a transaction.
func (r *FieldReportRepository) Save(ctx context.Context, fr *fieldreport.FieldReport) error {
	number, err := r.allocator.Next(ctx, fr.EventID(), SequenceFieldReport)
	if err != nil {
		return err
	}
	if err := fr.SetNumber(number); err != nil {
		return err
	}

	model := r.mapper.ToModel(fr)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save field report: %w", err)
	}

	return fr.SetID(model.ID)
}

func (r *FieldReportRepository) Update(ctx context.Context, fr *fieldreport.FieldReport) error {
	model := r.mapper.ToModel(fr)
	tx := db.GetTxFromContext(ctx, r.db)

	// Select forces clearing of AttachedIncident on detach.
	result := tx.
		Model(&models.FieldReportModel{}).
		Where("id = ?", model.ID).
		Select("Summary", "AttachedIncident", "UpdatedAt").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update field report: %w", result.Error)
	}

	return nil
}

func (r *FieldReportRepository) FindByNumber(ctx context.Context, eventID uint, number int) (*fieldreport.FieldReport, error) {
	var model models.FieldReportModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("event_id = ? AND number = ?", eventID, number).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("field report not found")
		}
		return nil, fmt.Errorf("failed to find field report: %w", err)
	}

	fr, err := r.mapper.ToDomain(&model)
	if err != nil {
		return nil, err
	}

	entries, err := r.loadEntries(ctx, eventID, []uint{model.ID})
	if err != nil {
		return nil, err
	}
	fr.SetEntries(entries[model.ID])

	return fr, nil
}

func (r *FieldReportRepository) List(ctx context.Context, eventID uint) ([]*fieldreport.FieldReport, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	return r.list(ctx, eventID, tx.Where("event_id = ?", eventID))
}

func (r *FieldReportRepository) ListAttachedTo(ctx context.Context, eventID uint, incidentNumber int) ([]*fieldreport.FieldReport, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	return r.list(ctx, eventID, tx.Where("event_id = ? AND attached_incident = ?", eventID, incidentNumber))
}

func (r *FieldReportRepository) list(ctx context.Context, eventID uint, query *gorm.DB) ([]*fieldreport.FieldReport, error) {
	var rows []models.FieldReportModel
	if err := query.Order("number").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list field reports: %w", err)
	}

	ids := make([]uint, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
	}
	entries, err := r.loadEntries(ctx, eventID, ids)
	if err != nil {
		return nil, err
	}

	reports := make([]*fieldreport.FieldReport, 0, len(rows))
	for i := range rows {
		fr, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		fr.SetEntries(entries[rows[i].ID])
		reports = append(reports, fr)
	}
	return reports, nil
}

func (r *FieldReportRepository) loadEntries(ctx context.Context, eventID uint, parentIDs []uint) (map[uint][]*report.Entry, error) {
	out := make(map[uint][]*report.Entry, len(parentIDs))
	if len(parentIDs) == 0 {
		return out, nil
	}

	var rows []models.ReportEntryModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Where("event_id = ? AND parent_kind = ? AND parent_id IN ?", eventID, string(report.ParentFieldReport), parentIDs).
		Order("created_at").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load field report entries: %w", err)
	}

	for i := range rows {
		entry, err := r.entryMapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		out[rows[i].ParentID] = append(out[rows[i].ParentID], entry)
	}
	return out, nil
}
