package usecases

import (
	"context"

	"vigil/internal/application/event/dto"
	"vigil/internal/domain/event"
	"vigil/internal/shared/errors"
	"vigil/internal/shared/logger"
)

type CreateEventCommand struct {
	Name string
}

type CreateEventUseCase struct {
	eventRepo event.Repository
	logger    logger.Interface
}

func NewCreateEventUseCase(eventRepo event.Repository, log logger.Interface) *CreateEventUseCase {
	return &CreateEventUseCase{
		eventRepo: eventRepo,
		logger:    log,
	}
}

// Execute creates a new event. Event names are unique across the service.
func (uc *CreateEventUseCase) Execute(ctx context.Context, cmd CreateEventCommand) (*dto.EventDTO, error) {
	existing, err := uc.eventRepo.FindByName(ctx, cmd.Name)
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, errors.NewConflictError("event name already exists")
	}

	e, err := event.NewEvent(cmd.Name)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.eventRepo.Save(ctx, e); err != nil {
		uc.logger.Errorw("failed to create event", "name", cmd.Name, "error", err)
		return nil, err
	}

	uc.logger.Infow("event created", "event_id", e.ID(), "name", e.Name())
	return dto.FromEvent(e), nil
}
