package models

import "time"

// Location is exclusively owned by its event and cascades with it.
type Location struct {
	BaseModel
	EventID string  `gorm:"index;not null"`
	Lat     float64 `gorm:"not null"`
	Lon     float64 `gorm:"not null"`
}

type Event struct {
	BaseModel
	Title             string `gorm:"size:120;not null"`
	Annotation        string `gorm:"size:2000"`
	Description       string `gorm:"size:7000"`
	CategoryID        string `gorm:"index;not null"`
	InitiatorID       string `gorm:"index;not null"`
	EventDate         time.Time
	PublishedOn       *time.Time
	Paid              bool
	ParticipantLimit  int `gorm:"default:0"` // 0 = unlimited
	RequestModeration bool
	ConfirmedRequests int        `gorm:"default:0"`
	State             EventState `gorm:"size:10;index"`
	Views             int        `gorm:"default:0"`

	// Relations
	Category  Category `gorm:"foreignKey:CategoryID"`
	Initiator User     `gorm:"foreignKey:InitiatorID"`
	Location  Location `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}
