package models

// Estimation is a single user's mark for an event they attended.
// The composite primary key enforces one mark per (user, event) pair.
type Estimation struct {
	UserID  string `gorm:"type:uuid;primaryKey"`
	EventID string `gorm:"type:uuid;primaryKey"`
	Mark    int16  `gorm:"not null;check:mark >= 0 AND mark <= 10"`
}
