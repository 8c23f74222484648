package mappers

import (
	"time"

	"vigil/internal/domain/incidenttype"
	"vigil/internal/infrastructure/persistence/models"
)

// IncidentTypeMapper handles the conversion between incident types and
// persistence models.
type IncidentTypeMapper interface {
	ToModel(it *incidenttype.IncidentType) *models.IncidentTypeModel
	ToDomain(model *models.IncidentTypeModel) (*incidenttype.IncidentType, error)
}

type IncidentTypeMapperImpl struct{}

func NewIncidentTypeMapper() IncidentTypeMapper {
	return &IncidentTypeMapperImpl{}
}

func (m *IncidentTypeMapperImpl) ToModel(it *incidenttype.IncidentType) *models.IncidentTypeModel {
	return &models.IncidentTypeModel{
		ID:        it.ID(),
		EventID:   it.EventID(),
		Name:      it.Name(),
		Hidden:    it.IsHidden(),
		CreatedAt: it.CreatedAt().UnixMilli(),
	}
}

func (m *IncidentTypeMapperImpl) ToDomain(model *models.IncidentTypeModel) (*incidenttype.IncidentType, error) {
	return incidenttype.ReconstructIncidentType(
		model.ID,
		model.EventID,
		model.Name,
		model.Hidden,
		time.UnixMilli(model.CreatedAt),
	)
}
