package models

type ReportEntryModel struct {
	ID         uint   `gorm:"primaryKey"`
	EventID    uint   `gorm:"not null;index"`
	ParentKind string `gorm:"size:20;not null;index:idx_entry_parent,priority:1"`
	ParentID   uint   `gorm:"not null;index:idx_entry_parent,priority:2"`
	Author     string `gorm:"size:100;not null"`
	Text       string `gorm:"type:text;not null"`
	System     bool   `gorm:"not null;default:false"`
	Stricken   bool   `gorm:"not null;default:false"`
	Attachment string `gorm:"size:255"`
	CreatedAt  int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (ReportEntryModel) TableName() string {
	return "report_entries"
}
