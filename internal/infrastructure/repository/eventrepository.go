package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"vigil/internal/domain/event"
	"vigil/internal/infrastructure/persistence/mappers"
	"vigil/internal/infrastructure/persistence/models"
	db "vigil/internal/shared/db"
	"vigil/internal/shared/errors"
)

type EventRepository struct {
	db     *gorm.DB
	mapper mappers.EventMapper
}

func NewEventRepository(database *gorm.DB) *EventRepository {
	return &EventRepository{
		db:     database,
		mapper: mappers.NewEventMapper(),
	}
}

func (r *EventRepository) Save(ctx context.Context, e *event.Event) error {
	model := r.mapper.ToModel(e)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}

	return e.SetID(model.ID)
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (*event.Event, error) {
	var model models.EventModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("event not found")
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *EventRepository) FindByName(ctx context.Context, name string) (*event.Event, error) {
	var model models.EventModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("name = ?", name).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("event not found")
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *EventRepository) List(ctx context.Context) ([]*event.Event, error) {
	var rows []models.EventModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]*event.Event, 0, len(rows))
	for i := range rows {
		e, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
