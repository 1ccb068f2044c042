package dto

import (
	"afisha_backend/internal/models"
	"afisha_backend/internal/utils"
)

type LocationDto struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type NewEventRequest struct {
	Title             string         `json:"title" validate:"required,min=3,max=120"`
	Annotation        string         `json:"annotation" validate:"required,min=20,max=2000"`
	Description       string         `json:"description" validate:"required,min=20,max=7000"`
	Category          string         `json:"category" validate:"required"`
	EventDate         utils.DateTime `json:"eventDate" validate:"required"`
	Location          *LocationDto   `json:"location" validate:"required"`
	Paid              bool           `json:"paid"`
	ParticipantLimit  int            `json:"participantLimit" validate:"min=0"`
	RequestModeration *bool          `json:"requestModeration"`
}

type UpdateEventRequest struct {
	Title             *string         `json:"title" validate:"omitempty,min=3,max=120"`
	Annotation        *string         `json:"annotation" validate:"omitempty,min=20,max=2000"`
	Description       *string         `json:"description" validate:"omitempty,min=20,max=7000"`
	Category          *string         `json:"category"`
	EventDate         *utils.DateTime `json:"eventDate"`
	Location          *LocationDto    `json:"location"`
	Paid              *bool           `json:"paid"`
	ParticipantLimit  *int            `json:"participantLimit" validate:"omitempty,min=0"`
	RequestModeration *bool           `json:"requestModeration"`
	StateAction       *string         `json:"stateAction" validate:"omitempty,is-state-action"`
}

// EventSearchParams collects every optional filter of the admin and public
// event searches. Handlers fill only the fields their endpoint exposes.
type EventSearchParams struct {
	Users         []string
	States        []string
	Categories    []string
	RangeStart    utils.DateTime
	RangeEnd      utils.DateTime
	Text          string
	Paid          *bool
	OnlyAvailable bool
	PublicOnly    bool
	From          int
	Size          int
	SortBy        string
	Direction     string
}

type EventFullResponse struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	Annotation        string            `json:"annotation"`
	Description       string            `json:"description"`
	Category          *CategoryResponse `json:"category"`
	Initiator         *UserShort        `json:"initiator"`
	Location          *LocationDto      `json:"location"`
	ConfirmedRequests int               `json:"confirmedRequests"`
	CreatedOn         utils.DateTime    `json:"createdOn"`
	EventDate         utils.DateTime    `json:"eventDate"`
	PublishedOn       *utils.DateTime   `json:"publishedOn,omitempty"`
	Paid              bool              `json:"paid"`
	ParticipantLimit  int               `json:"participantLimit"`
	RequestModeration bool              `json:"requestModeration"`
	State             models.EventState `json:"state"`
	Views             int               `json:"views"`
	Rating            float64           `json:"rating"`
}

type EventShortResponse struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	Annotation        string            `json:"annotation"`
	Category          *CategoryResponse `json:"category"`
	Initiator         *UserShort        `json:"initiator"`
	ConfirmedRequests int               `json:"confirmedRequests"`
	EventDate         utils.DateTime    `json:"eventDate"`
	Paid              bool              `json:"paid"`
	Views             int               `json:"views"`
	Rating            float64           `json:"rating"`
}
