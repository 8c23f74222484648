package usecases

import (
	"context"

	"vigil/internal/domain/report"
	"vigil/internal/shared/logger"
)

type SetStrickenCommand struct {
	EventID  uint
	EntryID  uint
	Stricken bool
	Author   string
}

// SetStrickenUseCase toggles the reversible stricken flag on a report
// entry. The entry row is never removed; unstriking restores visibility
// with no data loss.
type SetStrickenUseCase struct {
	entryRepo report.Repository
	tx        TransactionRunner
	notifier  ChangePublisher
	logger    logger.Interface
}

func NewSetStrickenUseCase(
	entryRepo report.Repository,
	tx TransactionRunner,
	notifier ChangePublisher,
	log logger.Interface,
) *SetStrickenUseCase {
	return &SetStrickenUseCase{
		entryRepo: entryRepo,
		tx:        tx,
		notifier:  notifier,
		logger:    log,
	}
}

func (uc *SetStrickenUseCase) Execute(ctx context.Context, cmd SetStrickenCommand) error {
	var parentKind report.ParentKind
	var parentNumber int

	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		parentKind, parentNumber, err = uc.entryRepo.ParentRef(ctx, cmd.EventID, cmd.EntryID)
		if err != nil {
			return err
		}
		return uc.entryRepo.SetStricken(ctx, cmd.EventID, cmd.EntryID, cmd.Stricken)
	})
	if err != nil {
		uc.logger.Errorw("failed to set stricken flag",
			"event_id", cmd.EventID,
			"entry_id", cmd.EntryID,
			"stricken", cmd.Stricken,
			"error", err,
		)
		return err
	}

	uc.notifier.Publish(cmd.EventID, string(parentKind), parentNumber)
	uc.logger.Debugw("entry stricken flag set",
		"event_id", cmd.EventID,
		"entry_id", cmd.EntryID,
		"stricken", cmd.Stricken,
	)
	return nil
}
