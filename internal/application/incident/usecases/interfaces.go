package usecases

import (
	"context"

	"vigil/internal/application/incident/dto"
)

// TransactionRunner executes a function inside one storage transaction.
// Satisfied by db.TransactionManager.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ChangePublisher emits a change event after a committed mutation. Publish
// must never fail the mutation; delivery is decoupled from the transaction.
type ChangePublisher interface {
	Publish(eventID uint, kind string, number int)
}

// StreetValidator checks a concentric street id against the event's
// read-only street directory.
type StreetValidator interface {
	ValidStreet(eventName, id string) bool
}

type CreateIncidentExecutor interface {
	Execute(ctx context.Context, cmd CreateIncidentCommand) (*dto.IncidentDTO, error)
}

type UpdateIncidentExecutor interface {
	Execute(ctx context.Context, cmd UpdateIncidentCommand) (*dto.IncidentDTO, error)
}

type GetIncidentExecutor interface {
	Execute(ctx context.Context, query GetIncidentQuery) (*dto.IncidentDTO, error)
}

type ListIncidentsExecutor interface {
	Execute(ctx context.Context, query ListIncidentsQuery) (*ListIncidentsResult, error)
}

type AppendEntryExecutor interface {
	Execute(ctx context.Context, cmd AppendEntryCommand) (*AppendEntryResult, error)
}

type SetStrickenExecutor interface {
	Execute(ctx context.Context, cmd SetStrickenCommand) error
}
