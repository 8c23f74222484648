package usecases

import (
	"context"

	"vigil/internal/application/event/dto"
)

// TransactionRunner executes a function inside one storage transaction.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type CreateEventExecutor interface {
	Execute(ctx context.Context, cmd CreateEventCommand) (*dto.EventDTO, error)
}

type ListEventsExecutor interface {
	Execute(ctx context.Context) (*ListEventsResult, error)
}

type SetAccessEntryExecutor interface {
	Execute(ctx context.Context, cmd SetAccessEntryCommand) error
}

type RemoveAccessEntryExecutor interface {
	Execute(ctx context.Context, cmd RemoveAccessEntryCommand) error
}

type ListAccessEntriesExecutor interface {
	Execute(ctx context.Context, query ListAccessEntriesQuery) (*ListAccessEntriesResult, error)
}
