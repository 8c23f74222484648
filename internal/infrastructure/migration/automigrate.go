package migration

import (
	"vigil/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.EventModel{},
		&models.IncidentModel{},
		&models.FieldReportModel{},
		&models.ReportEntryModel{},
		&models.IncidentTypeModel{},
		&models.AccessEntryModel{},
		&models.NumberSequenceModel{},
	}
}
