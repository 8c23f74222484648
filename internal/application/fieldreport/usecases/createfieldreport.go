package usecases

import (
	"context"

	"vigil/internal/application/fieldreport/dto"
	"vigil/internal/domain/fieldreport"
	"vigil/internal/domain/report"
	"vigil/internal/shared/errors"
	"vigil/internal/shared/logger"
)

type CreateFieldReportCommand struct {
	EventID uint
	Author  string
	Summary string
	// InitialReport is appended as the first user entry when non-empty.
	InitialReport string
}

type CreateFieldReportUseCase struct {
	fieldReportRepo fieldreport.Repository
	entryRepo       report.Repository
	tx              TransactionRunner
	notifier        ChangePublisher
	logger          logger.Interface
}

func NewCreateFieldReportUseCase(
	fieldReportRepo fieldreport.Repository,
	entryRepo report.Repository,
	tx TransactionRunner,
	notifier ChangePublisher,
	log logger.Interface,
) *CreateFieldReportUseCase {
	return &CreateFieldReportUseCase{
		fieldReportRepo: fieldReportRepo,
		entryRepo:       entryRepo,
		tx:              tx,
		notifier:        notifier,
		logger:          log,
	}
}

// Execute creates a standalone field report. Its number comes from the
// event's field report sequence, independent of the incident sequence. The
// full created state, number included, is returned synchronously.
func (uc *CreateFieldReportUseCase) Execute(ctx context.Context, cmd CreateFieldReportCommand) (*dto.FieldReportDTO, error) {
	if cmd.Author == "" {
		return nil, errors.NewValidationError("author is required")
	}

	fr, err := fieldreport.NewFieldReport(cmd.EventID, cmd.Summary)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	var entries []*report.Entry
	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.fieldReportRepo.Save(ctx, fr); err != nil {
			return err
		}

		created, err := report.NewSystemEntry(cmd.Author, "Created field report")
		if err != nil {
			return err
		}
		if err := uc.entryRepo.Append(ctx, cmd.EventID, report.ParentFieldReport, fr.ID(), created); err != nil {
			return err
		}
		entries = append(entries, created)

		if cmd.InitialReport != "" {
			entry, err := report.NewEntry(cmd.Author, cmd.InitialReport, false)
			if err != nil {
				return err
			}
			if err := uc.entryRepo.Append(ctx, cmd.EventID, report.ParentFieldReport, fr.ID(), entry); err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create field report", "event_id", cmd.EventID, "error", err)
		return nil, err
	}

	uc.notifier.Publish(cmd.EventID, "field_report", fr.Number())
	uc.logger.Infow("field report created", "event_id", cmd.EventID, "number", fr.Number())

	fr.SetEntries(entries)
	return dto.FromFieldReport(fr, report.MergeTimelines(entries)), nil
}
