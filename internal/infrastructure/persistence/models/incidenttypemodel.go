package models

type IncidentTypeModel struct {
	ID        uint   `gorm:"primaryKey"`
	EventID   uint   `gorm:"not null;uniqueIndex:idx_incident_type_event_name,priority:1"`
	Name      string `gorm:"size:100;not null;uniqueIndex:idx_incident_type_event_name,priority:2"`
	Hidden    bool   `gorm:"not null;default:false"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
}

func (IncidentTypeModel) TableName() string {
	return "incident_types"
}
