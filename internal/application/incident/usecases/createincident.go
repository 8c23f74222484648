package usecases

import (
	"context"

	"vigil/internal/application/incident/dto"
	"vigil/internal/domain/incident"
	"vigil/internal/domain/report"
	"vigil/internal/shared/errors"
	"vigil/internal/shared/logger"
)

type CreateIncidentCommand struct {
	EventID   uint
	EventName string
	Author    string

	Priority int
	Summary  string
	State    *string

	LocationName        *string
	LocationDescription *string
	RadialHour          *int
	RadialMinute        *int
	Concentric          *string

	Rangers       []string
	IncidentTypes []string

	// InitialReport is appended as the first user entry when non-empty.
	InitialReport string
}

type CreateIncidentUseCase struct {
	incidentRepo incident.Repository
	entryRepo    report.Repository
	tx           TransactionRunner
	notifier     ChangePublisher
	streets      StreetValidator
	logger       logger.Interface
}

func NewCreateIncidentUseCase(
	incidentRepo incident.Repository,
	entryRepo report.Repository,
	tx TransactionRunner,
	notifier ChangePublisher,
	streets StreetValidator,
	log logger.Interface,
) *CreateIncidentUseCase {
	return &CreateIncidentUseCase{
		incidentRepo: incidentRepo,
		entryRepo:    entryRepo,
		tx:           tx,
		notifier:     notifier,
		streets:      streets,
		logger:       log,
	}
}

// Execute creates an incident, assigns its number atomically with the
// insert, and appends the creation audit entry in the same transaction.
// The full created state, number included, is returned synchronously.
func (uc *CreateIncidentUseCase) Execute(ctx context.Context, cmd CreateIncidentCommand) (*dto.IncidentDTO, error) {
	if cmd.Author == "" {
		return nil, errors.NewValidationError("author is required")
	}
	if cmd.Concentric != nil && !uc.streets.ValidStreet(cmd.EventName, *cmd.Concentric) {
		return nil, errors.NewValidationError("unknown concentric street", *cmd.Concentric)
	}

	inc, err := incident.NewIncident(cmd.EventID, cmd.Priority, cmd.Summary)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	update := incident.Update{
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
	if _, err := inc.Apply(update); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	var entries []*report.Entry
	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.incidentRepo.Save(ctx, inc); err != nil {
			return err
		}

		created, err := report.NewSystemEntry(cmd.Author, "Created incident")
		if err != nil {
			return err
		}
		if err := uc.entryRepo.Append(ctx, cmd.EventID, report.ParentIncident, inc.ID(), created); err != nil {
			return err
		}
		entries = append(entries, created)

		if cmd.InitialReport != "" {
			entry, err := report.NewEntry(cmd.Author, cmd.InitialReport, false)
			if err != nil {
				return err
			}
			if err := uc.entryRepo.Append(ctx, cmd.EventID, report.ParentIncident, inc.ID(), entry); err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create incident", "event_id", cmd.EventID, "error", err)
		return nil, err
	}

	uc.notifier.Publish(cmd.EventID, "incident", inc.Number())
	uc.logger.Infow("incident created", "event_id", cmd.EventID, "number", inc.Number())

	inc.SetEntries(entries)
	return dto.FromIncident(inc, report.MergeTimelines(entries)), nil
}
