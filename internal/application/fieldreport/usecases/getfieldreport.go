package usecases

import (
	"context"

	"vigil/internal/application/fieldreport/dto"
	"vigil/internal/domain/fieldreport"
	"vigil/internal/domain/report"
	"vigil/internal/shared/logger"
)

type GetFieldReportQuery struct {
	EventID uint
	Number  int
	// ShowHistory keeps stricken entries in the entry list.
	ShowHistory bool
}

type GetFieldReportUseCase struct {
	fieldReportRepo fieldreport.Repository
	logger          logger.Interface
}

func NewGetFieldReportUseCase(fieldReportRepo fieldreport.Repository, log logger.Interface) *GetFieldReportUseCase {
	return &GetFieldReportUseCase{
		fieldReportRepo: fieldReportRepo,
		logger:          log,
	}
}

// Execute loads a field report with its own entries. Entries remain
// retrievable here regardless of the report's attachment state.
func (uc *GetFieldReportUseCase) Execute(ctx context.Context, query GetFieldReportQuery) (*dto.FieldReportDTO, error) {
	fr, err := uc.fieldReportRepo.FindByNumber(ctx, query.EventID, query.Number)
	if err != nil {
		return nil, err
	}

	entries := report.VisibleEntries(fr.Entries(), query.ShowHistory)
	return dto.FromFieldReport(fr, entries), nil
}
