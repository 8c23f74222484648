package models

// NumberSequenceModel backs the per-event number allocators. One row per
// (event, kind); the row is locked FOR UPDATE while a number is assigned.
type NumberSequenceModel struct {
	ID      uint   `gorm:"primaryKey"`
	EventID uint   `gorm:"not null;uniqueIndex:idx_sequence_event_kind,priority:1"`
	Kind    string `gorm:"size:20;not null;uniqueIndex:idx_sequence_event_kind,priority:2"`
	Value   int    `gorm:"not null;default:0"`
}

func (NumberSequenceModel) TableName() string {
	return "number_sequences"
}
