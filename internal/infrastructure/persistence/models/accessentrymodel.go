package models

type AccessEntryModel struct {
	ID      uint   `gorm:"primaryKey"`
	EventID uint   `gorm:"not null;uniqueIndex:idx_access_entry,priority:1"`
	Mode    string `gorm:"size:10;not null;uniqueIndex:idx_access_entry,priority:2"`
	// Expression is stored in canonical wire form; the unique index gives
	// set semantics per (event, mode).
	Expression string `gorm:"size:200;not null;uniqueIndex:idx_access_entry,priority:3"`
	Validity   string `gorm:"size:10;not null"`
	CreatedAt  int64  `gorm:"autoCreateTime:milli;not null"`
}

func (AccessEntryModel) TableName() string {
	return "access_entries"
}
