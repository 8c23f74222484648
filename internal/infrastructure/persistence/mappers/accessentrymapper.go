package mappers

import (
	"vigil/internal/domain/access"
	"vigil/internal/infrastructure/persistence/models"
)

// AccessEntryMapper handles the conversion between access entries and
// persistence models.
type AccessEntryMapper interface {
	ToModel(eventID uint, mode access.Mode, entry access.AccessEntry) *models.AccessEntryModel
	ToDomain(model *models.AccessEntryModel) (access.AccessEntry, error)
}

type AccessEntryMapperImpl struct{}

func NewAccessEntryMapper() AccessEntryMapper {
	return &AccessEntryMapperImpl{}
}

func (m *AccessEntryMapperImpl) ToModel(eventID uint, mode access.Mode, entry access.AccessEntry) *models.AccessEntryModel {
	return &models.AccessEntryModel{
		EventID:    eventID,
		Mode:       mode.String(),
		Expression: entry.Expression.String(),
		Validity:   entry.Validity.String(),
	}
}

func (m *AccessEntryMapperImpl) ToDomain(model *models.AccessEntryModel) (access.AccessEntry, error) {
	return access.NewAccessEntry(model.Expression, model.Validity)
}
