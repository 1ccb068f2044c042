package services

import (
	"afisha_backend/internal/dto"
	"afisha_backend/internal/models"
	"afisha_backend/internal/utils"
)

// ---------------- Response mappers ----------------

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{ID: user.ID, Email: user.Email, Name: user.Name}
}

func toUserShort(user models.User) *dto.UserShort {
	if user.ID == "" {
		return nil
	}
	return &dto.UserShort{ID: user.ID, Name: user.Name}
}

func toCategoryResponse(category models.Category) *dto.CategoryResponse {
	if category.ID == "" {
		return nil
	}
	return &dto.CategoryResponse{ID: category.ID, Name: category.Name}
}

func toLocationDto(location models.Location) *dto.LocationDto {
	if location.ID == "" {
		return nil
	}
	return &dto.LocationDto{Lat: location.Lat, Lon: location.Lon}
}

func toEventFull(event *models.Event, rating float64) dto.EventFullResponse {
	resp := dto.EventFullResponse{
		ID:                event.ID,
		Title:             event.Title,
		Annotation:        event.Annotation,
		Description:       event.Description,
		Category:          toCategoryResponse(event.Category),
		Initiator:         toUserShort(event.Initiator),
		Location:          toLocationDto(event.Location),
		ConfirmedRequests: event.ConfirmedRequests,
		CreatedOn:         utils.NewDateTime(event.CreatedAt),
		EventDate:         utils.NewDateTime(event.EventDate),
		Paid:              event.Paid,
		ParticipantLimit:  event.ParticipantLimit,
		RequestModeration: event.RequestModeration,
		State:             event.State,
		Views:             event.Views,
		Rating:            rating,
	}
	if event.PublishedOn != nil {
		published := utils.NewDateTime(*event.PublishedOn)
		resp.PublishedOn = &published
	}
	return resp
}

func toEventShort(event *models.Event, rating float64) dto.EventShortResponse {
	return dto.EventShortResponse{
		ID:                event.ID,
		Title:             event.Title,
		Annotation:        event.Annotation,
		Category:          toCategoryResponse(event.Category),
		Initiator:         toUserShort(event.Initiator),
		ConfirmedRequests: event.ConfirmedRequests,
		EventDate:         utils.NewDateTime(event.EventDate),
		Paid:              event.Paid,
		Views:             event.Views,
		Rating:            rating,
	}
}

func toRequestResponse(request *models.Request) dto.RequestResponse {
	return dto.RequestResponse{
		ID:        request.ID,
		Event:     request.EventID,
		Requester: request.RequesterID,
		Status:    request.Status,
		Created:   utils.NewDateTime(request.CreatedAt),
	}
}

func toRequestResponses(requests []models.Request) []dto.RequestResponse {
	responses := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, toRequestResponse(&requests[i]))
	}
	return responses
}

func toCompilationResponse(compilation *models.Compilation, ratings map[string]float64) dto.CompilationResponse {
	events := make([]dto.EventShortResponse, 0, len(compilation.Events))
	for i := range compilation.Events {
		event := &compilation.Events[i]
		events = append(events, toEventShort(event, ratings[event.ID]))
	}
	return dto.CompilationResponse{
		ID:     compilation.ID,
		Title:  compilation.Title,
		Pinned: compilation.Pinned,
		Events: events,
	}
}
