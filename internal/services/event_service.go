package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"afisha_backend/internal/dto"
	"afisha_backend/internal/logger"
	"afisha_backend/internal/models"
	"afisha_backend/internal/repositories"
	"afisha_backend/internal/statsclient"
	"afisha_backend/internal/utils"
	"afisha_backend/pkg/apperrors"
)

type EventService interface {
	Create(ctx context.Context, userID string, req dto.NewEventRequest) (*dto.EventFullResponse, error)
	GetOwn(ctx context.Context, userID string, from, size int, sortBy, direction string) ([]dto.EventShortResponse, error)
	GetOwnByID(ctx context.Context, userID, eventID string) (*dto.EventFullResponse, error)
	UpdateOwn(ctx context.Context, userID, eventID string, req dto.UpdateEventRequest) (*dto.EventFullResponse, error)
	SearchAdmin(ctx context.Context, params dto.EventSearchParams) ([]dto.EventFullResponse, error)
	UpdateAdmin(ctx context.Context, eventID string, req dto.UpdateEventRequest) (*dto.EventFullResponse, error)
	SearchPublic(ctx context.Context, params dto.EventSearchParams, uri, ip string) ([]dto.EventShortResponse, error)
	GetPublished(ctx context.Context, eventID, uri, ip string) (*dto.EventFullResponse, error)
}

type eventService struct {
	events      repositories.EventRepository
	categories  repositories.CategoryRepository
	users       repositories.UserRepository
	estimations repositories.EstimationRepository
	stats       statsclient.Client
}

func NewEventService(
	events repositories.EventRepository,
	categories repositories.CategoryRepository,
	users repositories.UserRepository,
	estimations repositories.EstimationRepository,
	stats statsclient.Client,
) EventService {
	return &eventService{
		events:      events,
		categories:  categories,
		users:       users,
		estimations: estimations,
		stats:       stats,
	}
}

// ---------------- Owner API ----------------

func (s *eventService) Create(ctx context.Context, userID string, req dto.NewEventRequest) (*dto.EventFullResponse, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err, "user with id="+userID+" was not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if _, err := s.categories.FindByID(ctx, req.Category); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err, "category with id="+req.Category+" was not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if err := utils.CheckPeriodBeforeStartDate(req.EventDate.Time, false); err != nil {
		return nil, apperrors.ErrInvalidDateTime(err.Error())
	}

	moderation := true
	if req.RequestModeration != nil {
		moderation = *req.RequestModeration
	}
	event := &models.Event{
		Title:             req.Title,
		Annotation:        req.Annotation,
		Description:       req.Description,
		CategoryID:        req.Category,
		InitiatorID:       userID,
		EventDate:         req.EventDate.Time,
		Paid:              req.Paid,
		ParticipantLimit:  req.ParticipantLimit,
		RequestModeration: moderation,
		State:             models.EventStatePending,
		Location:          models.Location{Lat: req.Location.Lat, Lon: req.Location.Lon},
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "event created", "event_id", event.ID, "initiator_id", userID)

	return s.fullResponse(ctx, event)
}

func (s *eventService) GetOwn(ctx context.Context, userID string, from, size int, sortBy, direction string) ([]dto.EventShortResponse, error) {
	events, err := s.events.FindAllByInitiator(ctx, userID, from, size)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	responses, err := s.shortResponses(ctx, events)
	if err != nil {
		return nil, err
	}
	sortShortResponses(responses, sortBy, direction)
	return responses, nil
}

func (s *eventService) GetOwnByID(ctx context.Context, userID, eventID string) (*dto.EventFullResponse, error) {
	event, err := s.events.FindByIDAndInitiator(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err, "event with id="+eventID+" was not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return s.fullResponse(ctx, event)
}

func (s *eventService) UpdateOwn(ctx context.Context, userID, eventID string, req dto.UpdateEventRequest) (*dto.EventFullResponse, error) {
	event, err := s.events.FindByIDAndInitiator(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err, "event with id="+eventID+" was not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if event.State == models.EventStatePublished {
		return nil, apperrors.ErrConflict("only pending or canceled events can be changed")
	}

	if err := s.applyUpdate(ctx, event, req, false); err != nil {
		return nil, err
	}

	if req.StateAction != nil {
		switch models.StateAction(*req.StateAction) {
		case models.StateActionSendToReview:
			event.State = models.EventStatePending
		case models.StateActionCancelReview:
			event.State = models.EventStateCanceled
		default:
			return nil, apperrors.ErrConflict("state action " + *req.StateAction + " is not allowed for the initiator")
		}
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.fullResponse(ctx, event)
}

// ---------------- Admin API ----------------

func (s *eventService) SearchAdmin(ctx context.Context, params dto.EventSearchParams) ([]dto.EventFullResponse, error) {
	events, err := s.events.Search(ctx, params)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	ratings, err := s.ratingsByEvent(ctx, events)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.EventFullResponse, 0, len(events))
	for i := range events {
		responses = append(responses, toEventFull(&events[i], ratings[events[i].ID]))
	}
	if params.SortBy == "RATING" {
		ascending := strings.EqualFold(params.Direction, "ASC")
		sort.SliceStable(responses, func(i, j int) bool {
			if ascending {
				return responses[i].Rating < responses[j].Rating
			}
			return responses[i].Rating > responses[j].Rating
		})
	}
	return responses, nil
}

func (s *eventService) UpdateAdmin(ctx context.Context, eventID string, req dto.UpdateEventRequest) (*dto.EventFullResponse, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err, "event with id="+eventID+" was not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.applyUpdate(ctx, event, req, true); err != nil {
		return nil, err
	}

	if req.StateAction != nil {
		switch models.StateAction(*req.StateAction) {
		case models.StateActionPublishEvent:
			if event.State != models.EventStatePending {
				return nil, apperrors.ErrConflict("cannot publish the event because it's not in the right state: " + string(event.State))
			}
			now := time.Now()
			if err := utils.CheckPeriodBeforeStartDate(event.EventDate, true); err != nil {
				return nil, apperrors.ErrConflict(err.Error())
			}
			event.State = models.EventStatePublished
			event.PublishedOn = &now
		case models.StateActionRejectEvent:
			if event.State == models.EventStatePublished {
				return nil, apperrors.ErrConflict("cannot reject the event because it's not in the right state: " + string(event.State))
			}
			event.State = models.EventStateCanceled
		default:
			return nil, apperrors.ErrConflict("state action " + *req.StateAction + " is not allowed for the admin")
		}
	}

	if err := s.events.Update(ctx, event); err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "event moderated", "event_id", event.ID, "state", event.State)
	return s.fullResponse(ctx, event)
}

// ---------------- Public API ----------------

func (s *eventService) SearchPublic(ctx context.Context, params dto.EventSearchParams, uri, ip string) ([]dto.EventShortResponse, error) {
	if err := utils.CheckEndAfterStart(params.RangeStart.Time, params.RangeEnd.Time); err != nil {
		return nil, apperrors.ErrInvalidDateTime(err.Error())
	}
	params.PublicOnly = true

	events, err := s.events.Search(ctx, params)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.recordHit(ctx, uri, ip)
	s.refreshViewsBatch(ctx, events)

	responses, err := s.shortResponses(ctx, events)
	if err != nil {
		return nil, err
	}
	if params.SortBy == "RATING" {
		ascending := strings.EqualFold(params.Direction, "ASC")
		sort.SliceStable(responses, func(i, j int) bool {
			if ascending {
				return responses[i].Rating < responses[j].Rating
			}
			return responses[i].Rating > responses[j].Rating
		})
	}
	return responses, nil
}

func (s *eventService) GetPublished(ctx context.Context, eventID, uri, ip string) (*dto.EventFullResponse, error) {
	event, err := s.events.FindByIDAndState(ctx, eventID, models.EventStatePublished)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err, "event with id="+eventID+" was not found")
		}
		return nil, apperrors.InternalError(err)
	}

	s.recordHit(ctx, uri, ip)
	s.refreshViews(ctx, event, uri)

	return s.fullResponse(ctx, event)
}

// ---------------- helpers ----------------

// recordHit is best effort: the statistics service being down must never
// fail a read of the events themselves.
func (s *eventService) recordHit(ctx context.Context, uri, ip string) {
	if err := s.stats.RecordHit(ctx, uri, ip); err != nil {
		logger.CtxWithError(ctx, "failed to record hit", err, "uri", uri)
	}
}

// refreshViews pulls the unique hit count for the event page and persists
// it when it moved forward. Stats failures leave the stored count as is.
func (s *eventService) refreshViews(ctx context.Context, event *models.Event, uri string) {
	since := event.CreatedAt
	if event.PublishedOn != nil {
		since = *event.PublishedOn
	}
	stats, err := s.stats.GetStats(ctx, since, time.Now(), []string{uri}, true)
	if err != nil {
		logger.CtxWithError(ctx, "failed to fetch view stats", err, "event_id", event.ID)
		return
	}

	var views int
	for _, stat := range stats {
		if stat.URI == uri {
			views = int(stat.Hits)
			break
		}
	}
	if views <= event.Views {
		return
	}
	if err := s.events.UpdateViews(ctx, event.ID, views); err != nil {
		logger.CtxWithError(ctx, "failed to persist views", err, "event_id", event.ID)
		return
	}
	event.Views = views
}

// refreshViewsBatch pulls unique hit counts for all listed event pages in
// one stats call and persists the ones that moved forward.
func (s *eventService) refreshViewsBatch(ctx context.Context, events []models.Event) {
	if len(events) == 0 {
		return
	}

	since := time.Now()
	uris := make([]string, 0, len(events))
	byURI := make(map[string]*models.Event, len(events))
	for i := range events {
		event := &events[i]
		if event.CreatedAt.Before(since) {
			since = event.CreatedAt
		}
		uri := "/events/" + event.ID
		uris = append(uris, uri)
		byURI[uri] = event
	}

	stats, err := s.stats.GetStats(ctx, since, time.Now(), uris, true)
	if err != nil {
		logger.CtxWithError(ctx, "failed to fetch view stats", err)
		return
	}
	for _, stat := range stats {
		event, ok := byURI[stat.URI]
		if !ok || int(stat.Hits) <= event.Views {
			continue
		}
		if err := s.events.UpdateViews(ctx, event.ID, int(stat.Hits)); err != nil {
			logger.CtxWithError(ctx, "failed to persist views", err, "event_id", event.ID)
			continue
		}
		event.Views = int(stat.Hits)
	}
}

func sortShortResponses(responses []dto.EventShortResponse, sortBy, direction string) {
	var less func(i, j int) bool
	switch sortBy {
	case "EVENT_DATE":
		less = func(i, j int) bool { return responses[i].EventDate.Before(responses[j].EventDate.Time) }
	case "VIEWS":
		less = func(i, j int) bool { return responses[i].Views < responses[j].Views }
	case "RATING":
		less = func(i, j int) bool { return responses[i].Rating < responses[j].Rating }
	default:
		return
	}
	if strings.EqualFold(direction, "DESC") {
		inner := less
		less = func(i, j int) bool { return inner(j, i) }
	}
	sort.SliceStable(responses, less)
}

func (s *eventService) applyUpdate(ctx context.Context, event *models.Event, req dto.UpdateEventRequest, isAdmin bool) error {
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Annotation != nil {
		event.Annotation = *req.Annotation
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Category != nil {
		category, err := s.categories.FindByID(ctx, *req.Category)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound(err, "category with id="+*req.Category+" was not found")
			}
			return apperrors.InternalError(err)
		}
		event.CategoryID = category.ID
		event.Category = *category
	}
	if req.EventDate != nil {
		if err := utils.CheckPeriodBeforeStartDate(req.EventDate.Time, isAdmin); err != nil {
			return apperrors.ErrInvalidDateTime(err.Error())
		}
		event.EventDate = req.EventDate.Time
	}
	if req.Location != nil {
		event.Location.Lat = req.Location.Lat
		event.Location.Lon = req.Location.Lon
	}
	if req.Paid != nil {
		event.Paid = *req.Paid
	}
	if req.ParticipantLimit != nil {
		event.ParticipantLimit = *req.ParticipantLimit
	}
	if req.RequestModeration != nil {
		event.RequestModeration = *req.RequestModeration
	}
	return nil
}

func (s *eventService) fullResponse(ctx context.Context, event *models.Event) (*dto.EventFullResponse, error) {
	rating, err := s.estimations.RatingFor(ctx, event.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := toEventFull(event, rating)
	return &resp, nil
}

func (s *eventService) shortResponses(ctx context.Context, events []models.Event) ([]dto.EventShortResponse, error) {
	ratings, err := s.ratingsByEvent(ctx, events)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.EventShortResponse, 0, len(events))
	for i := range events {
		responses = append(responses, toEventShort(&events[i], ratings[events[i].ID]))
	}
	return responses, nil
}

func (s *eventService) ratingsByEvent(ctx context.Context, events []models.Event) (map[string]float64, error) {
	ids := make([]string, 0, len(events))
	for i := range events {
		ids = append(ids, events[i].ID)
	}
	ratings, err := s.estimations.RatingsFor(ctx, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return ratings, nil
}
