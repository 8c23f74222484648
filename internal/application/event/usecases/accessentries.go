package usecases

import (
	"context"

	"vigil/internal/application/event/dto"
	"vigil/internal/domain/access"
	"vigil/internal/shared/errors"
	"vigil/internal/shared/logger"
)

type SetAccessEntryCommand struct {
	EventID    uint
	Mode       string
	Expression string
	Validity   string
}

type SetAccessEntryUseCase struct {
	accessRepo access.Repository
	logger     logger.Interface
}

func NewSetAccessEntryUseCase(accessRepo access.Repository, log logger.Interface) *SetAccessEntryUseCase {
	return &SetAccessEntryUseCase{
		accessRepo: accessRepo,
		logger:     log,
	}
}

// Execute stores an access entry for (event, mode). Setting an expression
// that already exists replaces its validity. The inert `**` expression is
// stored like any other but matches no principal.
func (uc *SetAccessEntryUseCase) Execute(ctx context.Context, cmd SetAccessEntryCommand) error {
	mode, err := access.NewMode(cmd.Mode)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}
	entry, err := access.NewAccessEntry(cmd.Expression, cmd.Validity)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := uc.accessRepo.ReplaceEntry(ctx, cmd.EventID, mode, entry); err != nil {
		uc.logger.Errorw("failed to set access entry",
			"event_id", cmd.EventID, "mode", cmd.Mode, "expression", cmd.Expression, "error", err)
		return err
	}

	uc.logger.Infow("access entry set",
		"event_id", cmd.EventID, "mode", cmd.Mode, "expression", cmd.Expression, "validity", cmd.Validity)
	return nil
}

type RemoveAccessEntryCommand struct {
	EventID    uint
	Mode       string
	Expression string
}

type RemoveAccessEntryUseCase struct {
	accessRepo access.Repository
	logger     logger.Interface
}

func NewRemoveAccessEntryUseCase(accessRepo access.Repository, log logger.Interface) *RemoveAccessEntryUseCase {
	return &RemoveAccessEntryUseCase{
		accessRepo: accessRepo,
		logger:     log,
	}
}

// Execute deletes the entry with the given expression. Removing an
// expression that is not present succeeds without effect.
func (uc *RemoveAccessEntryUseCase) Execute(ctx context.Context, cmd RemoveAccessEntryCommand) error {
	mode, err := access.NewMode(cmd.Mode)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}
	expr, err := access.ParseExpression(cmd.Expression)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}

	if err := uc.accessRepo.RemoveEntry(ctx, cmd.EventID, mode, expr); err != nil {
		uc.logger.Errorw("failed to remove access entry",
			"event_id", cmd.EventID, "mode", cmd.Mode, "expression", cmd.Expression, "error", err)
		return err
	}

	uc.logger.Infow("access entry removed",
		"event_id", cmd.EventID, "mode", cmd.Mode, "expression", cmd.Expression)
	return nil
}

type ListAccessEntriesQuery struct {
	EventID uint
	Mode    string
}

type ListAccessEntriesResult struct {
	Entries []dto.AccessEntryDTO
}

type ListAccessEntriesUseCase struct {
	accessRepo access.Repository
	logger     logger.Interface
}

func NewListAccessEntriesUseCase(accessRepo access.Repository, log logger.Interface) *ListAccessEntriesUseCase {
	return &ListAccessEntriesUseCase{
		accessRepo: accessRepo,
		logger:     log,
	}
}

func (uc *ListAccessEntriesUseCase) Execute(ctx context.Context, query ListAccessEntriesQuery) (*ListAccessEntriesResult, error) {
	mode, err := access.NewMode(query.Mode)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	entries, err := uc.accessRepo.ListEntries(ctx, query.EventID, mode)
	if err != nil {
		return nil, err
	}

	result := &ListAccessEntriesResult{Entries: make([]dto.AccessEntryDTO, 0, len(entries))}
	for _, e := range entries {
		result.Entries = append(result.Entries, dto.FromAccessEntry(e))
	}
	return result, nil
}
