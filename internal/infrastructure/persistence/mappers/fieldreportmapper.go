package mappers

import (
	"time"

	"vigil/internal/domain/fieldreport"
	"vigil/internal/infrastructure/persistence/models"
)

// FieldReportMapper handles the conversion between FieldReport domain
// entities and persistence models.
type FieldReportMapper interface {
	ToModel(fr *fieldreport.FieldReport) *models.FieldReportModel
	ToDomain(model *models.FieldReportModel) (*fieldreport.FieldReport, error)
}

type FieldReportMapperImpl struct{}

func NewFieldReportMapper() FieldReportMapper {
	return &FieldReportMapperImpl{}
}

func (m *FieldReportMapperImpl) ToModel(fr *fieldreport.FieldReport) *models.FieldReportModel {
	return &models.FieldReportModel{
		ID:               fr.ID(),
		EventID:          fr.EventID(),
		Number:           fr.Number(),
		Summary:          fr.Summary(),
		AttachedIncident: fr.AttachedIncident(),
		CreatedAt:        fr.CreatedAt().UnixMilli(),
		UpdatedAt:        fr.UpdatedAt().UnixMilli(),
	}
}

func (m *FieldReportMapperImpl) ToDomain(model *models.FieldReportModel) (*fieldreport.FieldReport, error) {
	return fieldreport.ReconstructFieldReport(
		model.ID,
		model.EventID,
		model.Number,
		model.Summary,
		model.AttachedIncident,
		time.UnixMilli(model.CreatedAt),
		time.UnixMilli(model.UpdatedAt),
	)
}
