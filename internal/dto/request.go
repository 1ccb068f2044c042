package dto

import (
	"afisha_backend/internal/models"
	"afisha_backend/internal/utils"
)

type RequestResponse struct {
	ID        string               `json:"id"`
	Event     string               `json:"event"`
	Requester string               `json:"requester"`
	Status    models.RequestStatus `json:"status"`
	Created   utils.DateTime       `json:"created"`
}

type RequestStatusUpdate struct {
	RequestIDs []string `json:"requestIds" validate:"required,min=1"`
	Status     string   `json:"status" validate:"required,is-decision-status"`
}

type RequestStatusUpdateResult struct {
	ConfirmedRequests []RequestResponse `json:"confirmedRequests"`
	RejectedRequests  []RequestResponse `json:"rejectedRequests"`
}
