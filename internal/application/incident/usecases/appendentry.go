package usecases

import (
	"context"
	"time"

	"vigil/internal/domain/fieldreport"
	"vigil/internal/domain/incident"
	"vigil/internal/domain/report"
	"vigil/internal/shared/errors"
	"vigil/internal/shared/logger"
)

type AppendEntryCommand struct {
	EventID      uint
	ParentKind   string
	ParentNumber int
	Author       string
	Text         string
	// Attachment is the opaque reference id of an uploaded attachment.
	Attachment string
}

type AppendEntryResult struct {
	EntryID   uint
	CreatedAt time.Time
}

// AppendEntryUseCase appends a user entry to an incident or a field report.
// The parent must exist; entries are immutable once written.
type AppendEntryUseCase struct {
	incidentRepo    incident.Repository
	fieldReportRepo fieldreport.Repository
	entryRepo       report.Repository
	tx              TransactionRunner
	notifier        ChangePublisher
	logger          logger.Interface
}

func NewAppendEntryUseCase(
	incidentRepo incident.Repository,
	fieldReportRepo fieldreport.Repository,
	entryRepo report.Repository,
	tx TransactionRunner,
	notifier ChangePublisher,
	log logger.Interface,
) *AppendEntryUseCase {
	return &AppendEntryUseCase{
		incidentRepo:    incidentRepo,
		fieldReportRepo: fieldReportRepo,
		entryRepo:       entryRepo,
		tx:              tx,
		notifier:        notifier,
		logger:          log,
	}
}

func (uc *AppendEntryUseCase) Execute(ctx context.Context, cmd AppendEntryCommand) (*AppendEntryResult, error) {
	kind, err := report.NewParentKind(cmd.ParentKind)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	entry, err := report.NewEntry(cmd.Author, cmd.Text, false)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Attachment != "" {
		entry.SetAttachment(cmd.Attachment)
	}

	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		parentID, err := uc.resolveParent(ctx, kind, cmd.EventID, cmd.ParentNumber)
		if err != nil {
			return err
		}
		return uc.entryRepo.Append(ctx, cmd.EventID, kind, parentID, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to append report entry",
			"event_id", cmd.EventID,
			"parent_kind", kind,
			"parent_number", cmd.ParentNumber,
			"error", err,
		)
		return nil, err
	}

	uc.notifier.Publish(cmd.EventID, string(kind), cmd.ParentNumber)

	return &AppendEntryResult{
		EntryID:   entry.ID(),
		CreatedAt: entry.CreatedAt(),
	}, nil
}

func (uc *AppendEntryUseCase) resolveParent(ctx context.Context, kind report.ParentKind, eventID uint, number int) (uint, error) {
	switch kind {
	case report.ParentIncident:
		inc, err := uc.incidentRepo.FindByNumber(ctx, eventID, number)
		if err != nil {
			return 0, err
		}
		return inc.ID(), nil
	case report.ParentFieldReport:
		fr, err := uc.fieldReportRepo.FindByNumber(ctx, eventID, number)
		if err != nil {
			return 0, err
		}
		return fr.ID(), nil
	}
	return 0, errors.NewValidationError("invalid parent kind")
}
