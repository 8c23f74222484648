// Package usecases implements the incident type catalogue operations.
package usecases

import (
	"context"
	"time"

	"vigil/internal/domain/incidenttype"
	"vigil/internal/shared/errors"
	"vigil/internal/shared/logger"
)

type IncidentTypeDTO struct {
	Name      string    `json:"name"`
	Hidden    bool      `json:"hidden"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateIncidentTypeCommand struct {
	EventID uint
	Name    string
}

type CreateIncidentTypeExecutor interface {
	Execute(ctx context.Context, cmd CreateIncidentTypeCommand) (*IncidentTypeDTO, error)
}

type CreateIncidentTypeUseCase struct {
	typeRepo incidenttype.Repository
	logger   logger.Interface
}

func NewCreateIncidentTypeUseCase(typeRepo incidenttype.Repository, log logger.Interface) *CreateIncidentTypeUseCase {
	return &CreateIncidentTypeUseCase{
		typeRepo: typeRepo,
		logger:   log,
	}
}

// Execute adds a type to the event's catalogue. Names are unique per event,
// hidden types included.
func (uc *CreateIncidentTypeUseCase) Execute(ctx context.Context, cmd CreateIncidentTypeCommand) (*IncidentTypeDTO, error) {
	existing, err := uc.typeRepo.FindByName(ctx, cmd.EventID, cmd.Name)
	if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, errors.NewConflictError("incident type already exists")
	}

	it, err := incidenttype.NewIncidentType(cmd.EventID, cmd.Name)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.typeRepo.Save(ctx, it); err != nil {
		uc.logger.Errorw("failed to create incident type", "event_id", cmd.EventID, "name", cmd.Name, "error", err)
		return nil, err
	}

	uc.logger.Infow("incident type created", "event_id", cmd.EventID, "name", it.Name())
	return &IncidentTypeDTO{Name: it.Name(), Hidden: it.IsHidden(), CreatedAt: it.CreatedAt()}, nil
}

type SetIncidentTypeHiddenCommand struct {
	EventID uint
	Name    string
	Hidden  bool
}

type SetIncidentTypeHiddenExecutor interface {
	Execute(ctx context.Context, cmd SetIncidentTypeHiddenCommand) error
}

type SetIncidentTypeHiddenUseCase struct {
	typeRepo incidenttype.Repository
	logger   logger.Interface
}

func NewSetIncidentTypeHiddenUseCase(typeRepo incidenttype.Repository, log logger.Interface) *SetIncidentTypeHiddenUseCase {
	return &SetIncidentTypeHiddenUseCase{
		typeRepo: typeRepo,
		logger:   log,
	}
}

// Execute toggles a type's hidden flag. Hiding never touches incidents
// already carrying the type.
func (uc *SetIncidentTypeHiddenUseCase) Execute(ctx context.Context, cmd SetIncidentTypeHiddenCommand) error {
	it, err := uc.typeRepo.FindByName(ctx, cmd.EventID, cmd.Name)
	if err != nil {
		return err
	}

	if it.IsHidden() == cmd.Hidden {
		return nil
	}
	it.SetHidden(cmd.Hidden)
	if err := uc.typeRepo.Update(ctx, it); err != nil {
		uc.logger.Errorw("failed to update incident type", "event_id", cmd.EventID, "name", cmd.Name, "error", err)
		return err
	}

	uc.logger.Infow("incident type visibility changed", "event_id", cmd.EventID, "name", cmd.Name, "hidden", cmd.Hidden)
	return nil
}

type ListIncidentTypesQuery struct {
	EventID uint
	// IncludeHidden returns hidden types as well. Suggestion lists leave
	// it false.
	IncludeHidden bool
}

type ListIncidentTypesResult struct {
	Types []IncidentTypeDTO
}

type ListIncidentTypesExecutor interface {
	Execute(ctx context.Context, query ListIncidentTypesQuery) (*ListIncidentTypesResult, error)
}

type ListIncidentTypesUseCase struct {
	typeRepo incidenttype.Repository
	logger   logger.Interface
}

func NewListIncidentTypesUseCase(typeRepo incidenttype.Repository, log logger.Interface) *ListIncidentTypesUseCase {
	return &ListIncidentTypesUseCase{
		typeRepo: typeRepo,
		logger:   log,
	}
}

func (uc *ListIncidentTypesUseCase) Execute(ctx context.Context, query ListIncidentTypesQuery) (*ListIncidentTypesResult, error) {
	types, err := uc.typeRepo.List(ctx, query.EventID, !query.IncludeHidden)
	if err != nil {
		return nil, err
	}

	result := &ListIncidentTypesResult{Types: make([]IncidentTypeDTO, 0, len(types))}
	for _, it := range types {
		result.Types = append(result.Types, IncidentTypeDTO{
			Name:      it.Name(),
			Hidden:    it.IsHidden(),
			CreatedAt: it.CreatedAt(),
		})
	}
	return result, nil
}
