package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"afisha_backend/internal/dto"
	"afisha_backend/internal/models"
	"afisha_backend/internal/repositories"
)

// In-memory repository fakes. They reproduce the behavior the services
// rely on (duplicate keys, not-found rows, atomic slot claiming) without
// a database connection.

// ---------------- users ----------------

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, ids []string, offset, limit int) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []models.User
	for _, user := range r.users {
		if len(ids) > 0 && !contains(ids, user.ID) {
			continue
		}
		users = append(users, *user)
	}
	return paginate(users, offset, limit), nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, id)
	return nil
}

// ---------------- categories ----------------

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*models.Category
	withEvents map[string]bool
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories: make(map[string]*models.Category),
		withEvents: make(map[string]bool),
	}
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if existing.Name == category.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	category.ID = uuid.NewString()
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if existing.Name == category.Name && existing.ID != category.ID {
			return gorm.ErrDuplicatedKey
		}
	}
	stored := *category
	r.categories[category.ID] = &stored
	return nil
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id string) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	category, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *category
	return &copied, nil
}

func (r *fakeCategoryRepo) FindAll(_ context.Context, offset, limit int) ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var categories []models.Category
	for _, category := range r.categories {
		categories = append(categories, *category)
	}
	return paginate(categories, offset, limit), nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) HasEvents(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.withEvents[id], nil
}

// ---------------- events ----------------

type fakeEventRepo struct {
	mu         sync.Mutex
	events     map[string]*models.Event
	lastSearch dto.EventSearchParams
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[string]*models.Event)}
}

func (r *fakeEventRepo) Create(_ context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = uuid.NewString()
	event.CreatedAt = time.Now()
	stored := *event
	r.events[event.ID] = &stored
	return nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[event.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *event
	r.events[event.ID] = &stored
	return nil
}

func (r *fakeEventRepo) FindByID(_ context.Context, id string) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *event
	return &copied, nil
}

func (r *fakeEventRepo) FindByIDAndState(_ context.Context, id string, state models.EventState) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok || event.State != state {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *event
	return &copied, nil
}

func (r *fakeEventRepo) FindByIDAndInitiator(_ context.Context, id, initiatorID string) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok || event.InitiatorID != initiatorID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *event
	return &copied, nil
}

func (r *fakeEventRepo) FindAllByInitiator(_ context.Context, initiatorID string, offset, limit int) ([]models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var events []models.Event
	for _, event := range r.events {
		if event.InitiatorID == initiatorID {
			events = append(events, *event)
		}
	}
	return paginate(events, offset, limit), nil
}

func (r *fakeEventRepo) FindAllByIDIn(_ context.Context, ids []string) ([]models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var events []models.Event
	for _, id := range ids {
		if event, ok := r.events[id]; ok {
			events = append(events, *event)
		}
	}
	return events, nil
}

func (r *fakeEventRepo) Search(_ context.Context, params dto.EventSearchParams) ([]models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastSearch = params
	var events []models.Event
	for _, event := range r.events {
		if params.PublicOnly && event.State != models.EventStatePublished {
			continue
		}
		events = append(events, *event)
	}
	return events, nil
}

func (r *fakeEventRepo) UpdateViews(_ context.Context, eventID string, views int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[eventID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	event.Views = views
	return nil
}

// occupySlot mirrors the conditional increment of the real repository.
func (r *fakeEventRepo) occupySlot(eventID string) error {
	event, ok := r.events[eventID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if event.ParticipantLimit > 0 && event.ConfirmedRequests >= event.ParticipantLimit {
		return repositories.ErrNoFreeSlots
	}
	event.ConfirmedRequests++
	return nil
}

// ---------------- requests ----------------

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*models.Request
	events   *fakeEventRepo
}

func newFakeRequestRepo(events *fakeEventRepo) *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*models.Request), events: events}
}

func (r *fakeRequestRepo) insert(request *models.Request) error {
	for _, existing := range r.requests {
		if existing.EventID == request.EventID && existing.RequesterID == request.RequesterID {
			return gorm.ErrDuplicatedKey
		}
	}
	request.ID = uuid.NewString()
	request.CreatedAt = time.Now()
	stored := *request
	r.requests[request.ID] = &stored
	return nil
}

func (r *fakeRequestRepo) CreatePending(_ context.Context, request *models.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request.Status = models.RequestStatusPending
	return r.insert(request)
}

func (r *fakeRequestRepo) CreateConfirmed(_ context.Context, request *models.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events.mu.Lock()
	defer r.events.mu.Unlock()
	if err := r.events.occupySlot(request.EventID); err != nil {
		return err
	}
	request.Status = models.RequestStatusConfirmed
	if err := r.insert(request); err != nil {
		r.events.events[request.EventID].ConfirmedRequests--
		return err
	}
	return nil
}

func (r *fakeRequestRepo) ConfirmRequest(_ context.Context, requestID, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events.mu.Lock()
	defer r.events.mu.Unlock()
	if err := r.events.occupySlot(eventID); err != nil {
		return err
	}
	request, ok := r.requests[requestID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	request.Status = models.RequestStatusConfirmed
	return nil
}

func (r *fakeRequestRepo) UpdateStatus(_ context.Context, requestID string, status models.RequestStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[requestID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	request.Status = status
	return nil
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id string) (*models.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *request
	return &copied, nil
}

func (r *fakeRequestRepo) FindByIDAndRequester(_ context.Context, id, requesterID string) (*models.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok || request.RequesterID != requesterID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *request
	return &copied, nil
}

func (r *fakeRequestRepo) FindAllByRequester(_ context.Context, requesterID string) ([]models.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var requests []models.Request
	for _, request := range r.requests {
		if request.RequesterID == requesterID {
			requests = append(requests, *request)
		}
	}
	return requests, nil
}

func (r *fakeRequestRepo) FindAllByEvent(_ context.Context, eventID string) ([]models.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var requests []models.Request
	for _, request := range r.requests {
		if request.EventID == eventID {
			requests = append(requests, *request)
		}
	}
	return requests, nil
}

func (r *fakeRequestRepo) FindAllByIDInForEvent(_ context.Context, ids []string, eventID string) ([]models.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var requests []models.Request
	for _, id := range ids {
		if request, ok := r.requests[id]; ok && request.EventID == eventID {
			requests = append(requests, *request)
		}
	}
	return requests, nil
}

func (r *fakeRequestRepo) IsConfirmedParticipant(_ context.Context, userID, eventID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, request := range r.requests {
		if request.RequesterID == userID && request.EventID == eventID &&
			request.Status == models.RequestStatusConfirmed {
			return true, nil
		}
	}
	return false, nil
}

// ---------------- estimations ----------------

type fakeEstimationRepo struct {
	mu    sync.Mutex
	marks map[string]map[string]int16 // eventID -> userID -> mark
}

func newFakeEstimationRepo() *fakeEstimationRepo {
	return &fakeEstimationRepo{marks: make(map[string]map[string]int16)}
}

func (r *fakeEstimationRepo) Create(_ context.Context, estimation *models.Estimation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	byUser, ok := r.marks[estimation.EventID]
	if !ok {
		byUser = make(map[string]int16)
		r.marks[estimation.EventID] = byUser
	}
	if _, exists := byUser[estimation.UserID]; exists {
		return gorm.ErrDuplicatedKey
	}
	byUser[estimation.UserID] = estimation.Mark
	return nil
}

func (r *fakeEstimationRepo) Delete(_ context.Context, userID, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	byUser := r.marks[eventID]
	if _, ok := byUser[userID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(byUser, userID)
	return nil
}

func (r *fakeEstimationRepo) RatingFor(_ context.Context, eventID string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return mean(r.marks[eventID]), nil
}

func (r *fakeEstimationRepo) RatingsFor(_ context.Context, eventIDs []string) (map[string]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ratings := make(map[string]float64, len(eventIDs))
	for _, id := range eventIDs {
		if byUser := r.marks[id]; len(byUser) > 0 {
			ratings[id] = mean(byUser)
		}
	}
	return ratings, nil
}

func mean(marks map[string]int16) float64 {
	if len(marks) == 0 {
		return 0
	}
	var sum int
	for _, mark := range marks {
		sum += int(mark)
	}
	return float64(sum) / float64(len(marks))
}

// ---------------- stats client ----------------

type recordedHit struct {
	URI string
	IP  string
}

type fakeStatsClient struct {
	mu        sync.Mutex
	hits      []recordedHit
	stats     []dto.ViewStats
	recordErr error
	statsErr  error
}

func (c *fakeStatsClient) RecordHit(_ context.Context, uri, ip string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.recordErr != nil {
		return c.recordErr
	}
	c.hits = append(c.hits, recordedHit{URI: uri, IP: ip})
	return nil
}

func (c *fakeStatsClient) GetStats(_ context.Context, _, _ time.Time, _ []string, _ bool) ([]dto.ViewStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.statsErr != nil {
		return nil, c.statsErr
	}
	return c.stats, nil
}

// ---------------- helpers ----------------

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
