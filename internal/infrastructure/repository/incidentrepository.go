package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"vigil/internal/domain/incident"
	"vigil/internal/domain/report"
	"vigil/internal/infrastructure/persistence/mappers"
	"vigil/internal/infrastructure/persistence/models"
	db "vigil/internal/shared/db"
	"vigil/internal/shared/errors"
)

type IncidentRepository struct {
	db          *gorm.DB
	mapper      mappers.IncidentMapper
	entryMapper mappers.ReportEntryMapper
	allocator   *NumberAllocator
}

func NewIncidentRepository(database *gorm.DB) *IncidentRepository {
	return &IncidentRepository{
		db:          database,
		mapper:      mappers.NewIncidentMapper(),
		entryMapper: mappers.NewReportEntryMapper(),
		allocator:   NewNumberAllocator(database),
	}
}

// Save inserts a new incident, assigning its event-scoped number from the
// incident sequence. Must run inside a transaction.
func (r *IncidentRepository) Save(ctx context.Context, inc *incident.Incident) error {
	number, err := r.allocator.Next(ctx, inc.EventID(), SequenceIncident)
	if err != nil {
		return err
	}
	if err := inc.SetNumber(number); err != nil {
		return err
	}

	model, err := r.mapper.ToModel(inc)
	if err != nil {
		return err
	}
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save incident: %w", err)
	}

	return inc.SetID(model.ID)
}

func (r *IncidentRepository) Update(ctx context.Context, inc *incident.Incident) error {
	model, err := r.mapper.ToModel(inc)
	if err != nil {
		return err
	}
	tx := db.GetTxFromContext(ctx, r.db)

	// Select forces clearing of nil location pointers and emptied summaries;
	// gorm's default Updates skips zero values.
	result := tx.
		Model(&models.IncidentModel{}).
		Where("id = ?", model.ID).
		Select("Summary", "State", "Priority",
			"LocationName", "LocationDescription", "RadialHour", "RadialMinute", "Concentric",
			"Rangers", "IncidentTypes", "UpdatedAt").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update incident: %w", result.Error)
	}

	return nil
}

func (r *IncidentRepository) FindByNumber(ctx context.Context, eventID uint, number int) (*incident.Incident, error) {
	var model models.IncidentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("event_id = ? AND number = ?", eventID, number).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("incident not found")
		}
		return nil, fmt.Errorf("failed to find incident: %w", err)
	}

	inc, err := r.mapper.ToDomain(&model)
	if err != nil {
		return nil, err
	}

	entries, err := r.loadEntries(ctx, eventID, []uint{model.ID})
	if err != nil {
		return nil, err
	}
	inc.SetEntries(entries[model.ID])

	return inc, nil
}

func (r *IncidentRepository) List(ctx context.Context, eventID uint) ([]*incident.Incident, error) {
	var rows []models.IncidentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("event_id = ?", eventID).
		Order("number").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}

	ids := make([]uint, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
	}
	entries, err := r.loadEntries(ctx, eventID, ids)
	if err != nil {
		return nil, err
	}

	incidents := make([]*incident.Incident, 0, len(rows))
	for i := range rows {
		inc, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		inc.SetEntries(entries[rows[i].ID])
		incidents = append(incidents, inc)
	}
	return incidents, nil
}

// loadEntries fetches entry logs for a set of incidents in one query.
func (r *IncidentRepository) loadEntries(ctx context.Context, eventID uint, parentIDs []uint) (map[uint][]*report.Entry, error) {
	out := make(map[uint][]*report.Entry, len(parentIDs))
	if len(parentIDs) == 0 {
		return out, nil
	}

	var rows []models.ReportEntryModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.
		Where("event_id = ? AND parent_kind = ? AND parent_id IN ?", eventID, string(report.ParentIncident), parentIDs).
		Order("created_at").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load incident entries: %w", err)
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
