package usecases

import (
	"context"

	"vigil/internal/application/fieldreport/dto"
	"vigil/internal/domain/fieldreport"
	"vigil/internal/shared/logger"
)

type ListFieldReportsQuery struct {
	EventID uint
}

type ListFieldReportsResult struct {
	FieldReports []*dto.FieldReportDTO
	Total        int64
}

type ListFieldReportsUseCase struct {
	fieldReportRepo fieldreport.Repository
	logger          logger.Interface
}

func NewListFieldReportsUseCase(fieldReportRepo fieldreport.Repository, log logger.Interface) *ListFieldReportsUseCase {
	return &ListFieldReportsUseCase{
		fieldReportRepo: fieldReportRepo,
		logger:          log,
	}
}

func (uc *ListFieldReportsUseCase) Execute(ctx context.Context, query ListFieldReportsQuery) (*ListFieldReportsResult, error) {
	reports, err := uc.fieldReportRepo.List(ctx, query.EventID)
	if err != nil {
		return nil, err
	}

	result := &ListFieldReportsResult{
		FieldReports: make([]*dto.FieldReportDTO, 0, len(reports)),
		Total:        int64(len(reports)),
	}
	for _, fr := range reports {
		result.FieldReports = append(result.FieldReports, dto.FromFieldReport(fr, nil))
	}
	return result, nil
}
