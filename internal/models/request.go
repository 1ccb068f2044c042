package models

type Request struct {
	BaseModel
	EventID     string        `gorm:"index;not null;uniqueIndex:idx_requests_event_requester"`
	RequesterID string        `gorm:"index;not null;uniqueIndex:idx_requests_event_requester"`
	Status      RequestStatus `gorm:"size:10;index"`

	// Relations
	Event     Event `gorm:"foreignKey:EventID"`
	Requester User  `gorm:"foreignKey:RequesterID"`
}
