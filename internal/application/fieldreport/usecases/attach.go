package usecases

import (
	"context"
	"fmt"

	"vigil/internal/domain/fieldreport"
	"vigil/internal/domain/incident"
	"vigil/internal/domain/report"
	"vigil/internal/shared/errors"
	"vigil/internal/shared/logger"
)

type AttachFieldReportCommand struct {
	EventID        uint
	Number         int
	IncidentNumber int
	Author         string
}

type AttachFieldReportUseCase struct {
	fieldReportRepo fieldreport.Repository
	incidentRepo    incident.Repository
	entryRepo       report.Repository
	tx              TransactionRunner
	notifier        ChangePublisher
	logger          logger.Interface
}

func NewAttachFieldReportUseCase(
	fieldReportRepo fieldreport.Repository,
	incidentRepo incident.Repository,
	entryRepo report.Repository,
	tx TransactionRunner,
	notifier ChangePublisher,
	log logger.Interface,
) *AttachFieldReportUseCase {
	return &AttachFieldReportUseCase{
		fieldReportRepo: fieldReportRepo,
		incidentRepo:    incidentRepo,
		entryRepo:       entryRepo,
		tx:              tx,
		notifier:        notifier,
		logger:          log,
	}
}

// Execute attaches a field report to an incident in the same event. Repeating
// an existing attachment is a no-op; attaching while attached to another
// incident supersedes the prior attachment. Both sides of a changed
// attachment get a system entry, and both aggregates are announced.
func (uc *AttachFieldReportUseCase) Execute(ctx context.Context, cmd AttachFieldReportCommand) error {
	if cmd.Author == "" {
		return errors.NewValidationError("author is required")
	}

	var (
		changed  bool
		previous *int
	)
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		fr, err := uc.fieldReportRepo.FindByNumber(ctx, cmd.EventID, cmd.Number)
		if err != nil {
			return err
		}
		inc, err := uc.incidentRepo.FindByNumber(ctx, cmd.EventID, cmd.IncidentNumber)
		if err != nil {
			return err
		}

		previous = fr.AttachedIncident()
		changed, err = fr.AttachTo(cmd.IncidentNumber)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if !changed {
			return nil
		}
		if err := uc.fieldReportRepo.Update(ctx, fr); err != nil {
			return err
		}

		onReport, err := report.NewSystemEntry(cmd.Author, fmt.Sprintf("Attached to incident: %d", cmd.IncidentNumber))
		if err != nil {
			return err
		}
		if err := uc.entryRepo.Append(ctx, cmd.EventID, report.ParentFieldReport, fr.ID(), onReport); err != nil {
			return err
		}

		onIncident, err := report.NewSystemEntry(cmd.Author, fmt.Sprintf("Attached field report: %d", cmd.Number))
		if err != nil {
			return err
		}
		return uc.entryRepo.Append(ctx, cmd.EventID, report.ParentIncident, inc.ID(), onIncident)
	})
	if err != nil {
		uc.logger.Errorw("failed to attach field report",
			"event_id", cmd.EventID, "number", cmd.Number, "incident", cmd.IncidentNumber, "error", err)
		return err
	}

	if changed {
		uc.notifier.Publish(cmd.EventID, "field_report", cmd.Number)
		uc.notifier.Publish(cmd.EventID, "incident", cmd.IncidentNumber)
		if previous != nil {
			// The superseded incident's timeline shrank as well.
			uc.notifier.Publish(cmd.EventID, "incident", *previous)
		}
		uc.logger.Infow("field report attached",
			"event_id", cmd.EventID, "number", cmd.Number, "incident", cmd.IncidentNumber)
	}
	return nil
}
