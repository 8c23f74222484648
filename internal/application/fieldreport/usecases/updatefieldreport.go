package usecases

import (
	"context"

	"vigil/internal/application/fieldreport/dto"
	"vigil/internal/domain/fieldreport"
	"vigil/internal/domain/report"
	"vigil/internal/shared/errors"
	"vigil/internal/shared/logger"
)

type UpdateFieldReportCommand struct {
	EventID uint
	Number  int
	Author  string

	Summary *string
}

// UpdateFieldReportUseCase edits a field report's own fields. The incident
// attachment is managed separately by attach/detach and is untouched here.
type UpdateFieldReportUseCase struct {
	fieldReportRepo fieldreport.Repository
	entryRepo       report.Repository
	tx              TransactionRunner
	notifier        ChangePublisher
	logger          logger.Interface
}

func NewUpdateFieldReportUseCase(
	fieldReportRepo fieldreport.Repository,
	entryRepo report.Repository,
	tx TransactionRunner,
	notifier ChangePublisher,
	log logger.Interface,
) *UpdateFieldReportUseCase {
	return &UpdateFieldReportUseCase{
		fieldReportRepo: fieldReportRepo,
		entryRepo:       entryRepo,
		tx:              tx,
		notifier:        notifier,
		logger:          log,
	}
}

func (uc *UpdateFieldReportUseCase) Execute(ctx context.Context, cmd UpdateFieldReportCommand) (*dto.FieldReportDTO, error) {
	if cmd.Author == "" {
		return nil, errors.NewValidationError("author is required")
	}

	var fr *fieldreport.FieldReport
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		fr, err = uc.fieldReportRepo.FindByNumber(ctx, cmd.EventID, cmd.Number)
		if err != nil {
			return err
		}

		if cmd.Summary == nil || *cmd.Summary == fr.Summary() {
			return nil
		}
		fr.SetSummary(*cmd.Summary)

		if err := uc.fieldReportRepo.Update(ctx, fr); err != nil {
			return err
		}

		entry, err := report.NewSystemEntry(cmd.Author, "Changed summary: "+*cmd.Summary)
		if err != nil {
			return err
		}
		return uc.entryRepo.Append(ctx, cmd.EventID, report.ParentFieldReport, fr.ID(), entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to update field report",
			"event_id", cmd.EventID,
			"number", cmd.Number,
			"error", err,
		)
		return nil, err
	}

	uc.notifier.Publish(cmd.EventID, "field_report", cmd.Number)

	entries, err := uc.entryRepo.ListForParent(ctx, cmd.EventID, report.ParentFieldReport, fr.ID())
	if err != nil {
		return nil, err
	}
	fr.SetEntries(entries)

	return dto.FromFieldReport(fr, entries), nil
}
