package mappers

import (
	"time"

	"vigil/internal/domain/event"
	"vigil/internal/infrastructure/persistence/models"
)

// EventMapper handles the conversion between Event domain entities and
// persistence models.
type EventMapper interface {
	ToModel(e *event.Event) *models.EventModel
	ToDomain(model *models.EventModel) (*event.Event, error)
}

type EventMapperImpl struct{}

func NewEventMapper() EventMapper {
	return &EventMapperImpl{}
}

func (m *EventMapperImpl) ToModel(e *event.Event) *models.EventModel {
	return &models.EventModel{
		ID:        e.ID(),
		Name:      e.Name(),
		CreatedAt: e.CreatedAt().UnixMilli(),
	}
}

func (m *EventMapperImpl) ToDomain(model *models.EventModel) (*event.Event, error) {
	return event.ReconstructEvent(model.ID, model.Name, time.UnixMilli(model.CreatedAt))
}
