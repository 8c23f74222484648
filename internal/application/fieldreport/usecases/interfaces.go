package usecases

import (
	"context"

	"vigil/internal/application/fieldreport/dto"
)

// TransactionRunner executes a function inside one storage transaction.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ChangePublisher emits a change event after a committed mutation.
type ChangePublisher interface {
	Publish(eventID uint, kind string, number int)
}

type CreateFieldReportExecutor interface {
	Execute(ctx context.Context, cmd CreateFieldReportCommand) (*dto.FieldReportDTO, error)
}

type UpdateFieldReportExecutor interface {
	Execute(ctx context.Context, cmd UpdateFieldReportCommand) (*dto.FieldReportDTO, error)
}

type GetFieldReportExecutor interface {
	Execute(ctx context.Context, query GetFieldReportQuery) (*dto.FieldReportDTO, error)
}

type ListFieldReportsExecutor interface {
	Execute(ctx context.Context, query ListFieldReportsQuery) (*ListFieldReportsResult, error)
}

type AttachFieldReportExecutor interface {
	Execute(ctx context.Context, cmd AttachFieldReportCommand) error
}

type DetachFieldReportExecutor interface {
	Execute(ctx context.Context, cmd DetachFieldReportCommand) error
}
