package entity

import "time"

// DocumentSequence holds the last number issued for a prefix on a given day.
// The row is locked while a number is drawn from it.
type DocumentSequence struct {
	Prefix    string `gorm:"primaryKey;size:10"`
	Day       string `gorm:"primaryKey;size:8"`
	LastValue int    `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for the DocumentSequence model
func (DocumentSequence) TableName() string {
	return "document_sequences"
}
