package mappers

import (
	"time"

	"vigil/internal/domain/report"
	"vigil/internal/infrastructure/persistence/models"
)

// ReportEntryMapper handles the conversion between report entries and
// persistence models.
type ReportEntryMapper interface {
	ToModel(eventID uint, kind report.ParentKind, parentID uint, e *report.Entry) *models.ReportEntryModel
	ToDomain(model *models.ReportEntryModel) (*report.Entry, error)
}

type ReportEntryMapperImpl struct{}

func NewReportEntryMapper() ReportEntryMapper {
	return &ReportEntryMapperImpl{}
}

func (m *ReportEntryMapperImpl) ToModel(eventID uint, kind report.ParentKind, parentID uint, e *report.Entry) *models.ReportEntryModel {
	return &models.ReportEntryModel{
		ID:         e.ID(),
		EventID:    eventID,
		ParentKind: string(kind),
		ParentID:   parentID,
		Author:     e.Author(),
		Text:       e.Text(),
		System:     e.IsSystem(),
		Stricken:   e.IsStricken(),
		Attachment: e.Attachment(),
		CreatedAt:  e.CreatedAt().UnixMilli(),
	}
}

func (m *ReportEntryMapperImpl) ToDomain(model *models.ReportEntryModel) (*report.Entry, error) {
	return report.ReconstructEntry(
		model.ID,
		model.Author,
		model.Text,
		model.System,
		model.Stricken,
		model.Attachment,
		time.UnixMilli(model.CreatedAt),
	)
}
