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

type DetachFieldReportCommand struct {
	EventID        uint
	Number         int
	IncidentNumber int
	Author         string
}

type DetachFieldReportUseCase struct {
	fieldReportRepo fieldreport.Repository
	incidentRepo    incident.Repository
	entryRepo       report.Repository
	tx              TransactionRunner
	notifier        ChangePublisher
	logger          logger.Interface
}

func NewDetachFieldReportUseCase(
	fieldReportRepo fieldreport.Repository,
	incidentRepo incident.Repository,
	entryRepo report.Repository,
	tx TransactionRunner,
	notifier ChangePublisher,
	log logger.Interface,
) *DetachFieldReportUseCase {
	return &DetachFieldReportUseCase{
		fieldReportRepo: fieldReportRepo,
		incidentRepo:    incidentRepo,
		entryRepo:       entryRepo,
		tx:              tx,
		notifier:        notifier,
		logger:          log,
	}
}

// Execute detaches a field report from the given incident. Detaching a
// report that is not attached to that incident succeeds without effect.
func (uc *DetachFieldReportUseCase) Execute(ctx context.Context, cmd DetachFieldReportCommand) error {
	if cmd.Author == "" {
		return errors.NewValidationError("author is required")
	}

	var changed bool
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		fr, err := uc.fieldReportRepo.FindByNumber(ctx, cmd.EventID, cmd.Number)
		if err != nil {
			return err
		}

		changed = fr.Detach(cmd.IncidentNumber)
		if !changed {
			return nil
		}
		if err := uc.fieldReportRepo.Update(ctx, fr); err != nil {
			return err
		}

		onReport, err := report.NewSystemEntry(cmd.Author, fmt.Sprintf("Detached from incident: %d", cmd.IncidentNumber))
		if err != nil {
			return err
		}
		if err := uc.entryRepo.Append(ctx, cmd.EventID, report.ParentFieldReport, fr.ID(), onReport); err != nil {
			return err
		}

		inc, err := uc.incidentRepo.FindByNumber(ctx, cmd.EventID, cmd.IncidentNumber)
		if err != nil {
			return err
		}
		onIncident, err := report.NewSystemEntry(cmd.Author, fmt.Sprintf("Detached field report: %d", cmd.Number))
		if err != nil {
			return err
		}
		return uc.entryRepo.Append(ctx, cmd.EventID, report.ParentIncident, inc.ID(), onIncident)
	})
	if err != nil {
		uc.logger.Errorw("failed to detach field report",
			"event_id", cmd.EventID, "number", cmd.Number, "incident", cmd.IncidentNumber, "error", err)
		return err
	}

	if changed {
		uc.notifier.Publish(cmd.EventID, "field_report", cmd.Number)
		uc.notifier.Publish(cmd.EventID, "incident", cmd.IncidentNumber)
		uc.logger.Infow("field report detached",
			"event_id", cmd.EventID, "number", cmd.Number, "incident", cmd.IncidentNumber)
	}
	return nil
}
