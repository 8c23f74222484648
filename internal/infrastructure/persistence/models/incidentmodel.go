package models

import "gorm.io/datatypes"

type IncidentModel struct {
	ID      uint `gorm:"primaryKey"`
	EventID uint `gorm:"not null;uniqueIndex:idx_incident_event_number,priority:1"`
	// Number is scoped to the event; uniqueness holds per event only.
	Number   int    `gorm:"not null;uniqueIndex:idx_incident_event_number,priority:2"`
	Summary  string `gorm:"type:text"`
	State    string `gorm:"size:20;not null;index"`
	Priority int    `gorm:"not null"`

	LocationName        string `gorm:"size:200"`
	LocationDescription string `gorm:"type:text"`
	RadialHour          *int
	RadialMinute        *int
	Concentric          *string `gorm:"size:100"`

	Rangers       datatypes.JSON
	IncidentTypes datatypes.JSON

	CreatedAt int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64 `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (IncidentModel) TableName() string {
	return "incidents"
}
