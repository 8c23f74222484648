package models

type FieldReportModel struct {
	ID      uint `gorm:"primaryKey"`
	EventID uint `gorm:"not null;uniqueIndex:idx_field_report_event_number,priority:1"`
	Number  int  `gorm:"not null;uniqueIndex:idx_field_report_event_number,priority:2"`
	Summary string `gorm:"type:text"`
	// AttachedIncident holds the incident number, not its row ID, so the
	// reference survives export and re-import of an event.
	AttachedIncident *int  `gorm:"index"`
	CreatedAt        int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt        int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (FieldReportModel) TableName() string {
	return "field_reports"
}
