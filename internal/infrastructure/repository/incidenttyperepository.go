package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"vigil/internal/domain/incidenttype"
	"vigil/internal/infrastructure/persistence/mappers"
	"vigil/internal/infrastructure/persistence/models"
	db "vigil/internal/shared/db"
	"vigil/internal/shared/errors"
)

type IncidentTypeRepository struct {
	db     *gorm.DB
	mapper mappers.IncidentTypeMapper
}

func NewIncidentTypeRepository(database *gorm.DB) *IncidentTypeRepository {
	return &IncidentTypeRepository{
		db:     database,
		mapper: mappers.NewIncidentTypeMapper(),
	}
}

func (r *IncidentTypeRepository) Save(ctx context.Context, it *incidenttype.IncidentType) error {
	model := r.mapper.ToModel(it)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save incident type: %w", err)
	}

	return it.SetID(model.ID)
}

func (r *IncidentTypeRepository) Update(ctx context.Context, it *incidenttype.IncidentType) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.IncidentTypeModel{}).
		Where("id = ?", it.ID()).
		Update("hidden", it.IsHidden())
	if result.Error != nil {
		return fmt.Errorf("failed to update incident type: %w", result.Error)
	}

	return nil
}

func (r *IncidentTypeRepository) FindByName(ctx context.Context, eventID uint, name string) (*incidenttype.IncidentType, error) {
	var model models.IncidentTypeModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("event_id = ? AND name = ?", eventID, name).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("incident type not found")
		}
		return nil, fmt.Errorf("failed to find incident type: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *IncidentTypeRepository) List(ctx context.Context, eventID uint, visibleOnly bool) ([]*incidenttype.IncidentType, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Where("event_id = ?", eventID)
	if visibleOnly {
		query = query.Where("hidden = ?", false)
	}

	var rows []models.IncidentTypeModel
	if err := query.Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list incident types: %w", err)
	}

	types := make([]*incidenttype.IncidentType, 0, len(rows))
	for i := range rows {
		it, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		types = append(types, it)
	}
	return types, nil
}
