package usecases

import (
	"context"
	"fmt"

	"vigil/internal/application/incident/dto"
	"vigil/internal/domain/incident"
	"vigil/internal/domain/report"
	"vigil/internal/shared/errors"
	"vigil/internal/shared/logger"
)

type UpdateIncidentCommand struct {
	EventID   uint
	EventName string
	Number    int
	Author    string

	State               *string
	Priority            *int
	Summary             *string
	LocationName        *string
	LocationDescription *string
	RadialHour          *int
	RadialMinute        *int
	Concentric          *string
	Rangers             []string
	IncidentTypes       []string
}

type UpdateIncidentUseCase struct {
	incidentRepo incident.Repository
	entryRepo    report.Repository
	tx           TransactionRunner
	notifier     ChangePublisher
	streets      StreetValidator
	logger       logger.Interface
}

func NewUpdateIncidentUseCase(
	incidentRepo incident.Repository,
	entryRepo report.Repository,
	tx TransactionRunner,
	notifier ChangePublisher,
	streets StreetValidator,
	log logger.Interface,
) *UpdateIncidentUseCase {
	return &UpdateIncidentUseCase{
		incidentRepo: incidentRepo,
		entryRepo:    entryRepo,
		tx:           tx,
		notifier:     notifier,
		streets:      streets,
		logger:       log,
	}
}

// Execute applies a partial-field edit. The read-modify-write runs in one
// transaction, so each commit is consistent field-by-field; conflicting
// concurrent edits resolve last-write-wins per submitted field set. Every
// changed field is recorded as a system audit entry.
func (uc *UpdateIncidentUseCase) Execute(ctx context.Context, cmd UpdateIncidentCommand) (*dto.IncidentDTO, error) {
	if cmd.Author == "" {
		return nil, errors.NewValidationError("author is required")
	}
	if cmd.Concentric != nil && !uc.streets.ValidStreet(cmd.EventName, *cmd.Concentric) {
		return nil, errors.NewValidationError("unknown concentric street", *cmd.Concentric)
	}

	update := incident.Update{
		Priority:            cmd.Priority,
		Summary:             cmd.Summary,
		LocationName:        cmd.LocationName,
		LocationDescription: cmd.LocationDescription,
		RadialHour:          cmd.RadialHour,
		RadialMinute:        cmd.RadialMinute,
		Concentric:          cmd.Concentric,
		Rangers:             cmd.Rangers,
		IncidentTypes:       cmd.IncidentTypes,
	}
	if cmd.State != nil {
		state, err := incident.NewState(*cmd.State)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		update.State = &state
	}

	var inc *incident.Incident
	err := uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		inc, err = uc.incidentRepo.FindByNumber(ctx, cmd.EventID, cmd.Number)
		if err != nil {
			return err
		}

		changes, err := inc.Apply(update)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if len(changes) == 0 {
			return nil
		}

		if err := uc.incidentRepo.Update(ctx, inc); err != nil {
			return err
		}

		for _, change := range changes {
			entry, err := report.NewSystemEntry(cmd.Author, change)
			if err != nil {
				return err
			}
			if err := uc.entryRepo.Append(ctx, cmd.EventID, report.ParentIncident, inc.ID(), entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to update incident",
			"event_id", cmd.EventID,
			"number", cmd.Number,
			"error", err,
		)
		return nil, err
	}

	uc.notifier.Publish(cmd.EventID, "incident", cmd.Number)
	uc.logger.Debugw("incident updated", "event_id", cmd.EventID, "number", cmd.Number)

	entries, err := uc.entryRepo.ListForParent(ctx, cmd.EventID, report.ParentIncident, inc.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to reload incident entries: %w", err)
	}
	inc.SetEntries(entries)

	return dto.FromIncident(inc, report.MergeTimelines(entries)), nil
}
