package models

type Compilation struct {
	BaseModel
	Title  string `gorm:"size:50;uniqueIndex;not null"`
	Pinned bool   `gorm:"default:false;index"`

	Events []Event `gorm:"many2many:compilation_events"`
}
