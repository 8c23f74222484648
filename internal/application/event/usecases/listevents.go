package usecases

import (
	"context"

	"vigil/internal/application/event/dto"
	"vigil/internal/domain/event"
	"vigil/internal/shared/logger"
)

type ListEventsResult struct {
	Events []*dto.EventDTO
	Total  int64
}

type ListEventsUseCase struct {
	eventRepo event.Repository
	logger    logger.Interface
}

func NewListEventsUseCase(eventRepo event.Repository, log logger.Interface) *ListEventsUseCase {
	return &ListEventsUseCase{
		eventRepo: eventRepo,
		logger:    log,
	}
}

func (uc *ListEventsUseCase) Execute(ctx context.Context) (*ListEventsResult, error) {
	events, err := uc.eventRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := &ListEventsResult{
		Events: make([]*dto.EventDTO, 0, len(events)),
		Total:  int64(len(events)),
	}
	for _, e := range events {
		result.Events = append(result.Events, dto.FromEvent(e))
	}
	return result, nil
}
