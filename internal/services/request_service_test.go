package services

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"afisha_backend/internal/dto"
	"afisha_backend/internal/models"
	"afisha_backend/pkg/apperrors"
)

type admissionFixture struct {
	users    *fakeUserRepo
	events   *fakeEventRepo
	requests *fakeRequestRepo
	service  RequestService
}

func newAdmissionFixture(t *testing.T) *admissionFixture {
	t.Helper()
	users := newFakeUserRepo()
	events := newFakeEventRepo()
	requests := newFakeRequestRepo(events)
	return &admissionFixture{
		users:    users,
		events:   events,
		requests: requests,
		service:  NewRequestService(requests, events, users),
	}
}

func (f *admissionFixture) seedUser(t *testing.T, email string) string {
	t.Helper()
	user := &models.User{Email: email, Name: "user " + email}
	require.NoError(t, f.users.Create(context.Background(), user))
	return user.ID
}

func (f *admissionFixture) seedEvent(t *testing.T, initiatorID string, limit int, moderation bool, state models.EventState) string {
	t.Helper()
	event := &models.Event{
		Title:             "test event",
		InitiatorID:       initiatorID,
		EventDate:         time.Now().Add(72 * time.Hour),
		ParticipantLimit:  limit,
		RequestModeration: moderation,
		State:             state,
	}
	require.NoError(t, f.events.Create(context.Background(), event))
	return event.ID
}

func requireAppError(t *testing.T, err error, httpCode int) *apperrors.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected an application error, got %v", err)
	require.Equal(t, httpCode, appErr.HTTPCode)
	return appErr
}

func TestCreateRequest_AutoConfirmedWithoutLimit(t *testing.T) {
	f := newAdmissionFixture(t)
	initiator := f.seedUser(t, "initiator@example.com")
	visitor := f.seedUser(t, "visitor@example.com")
	eventID := f.seedEvent(t, initiator, 0, true, models.EventStatePublished)

	resp, err := f.service.Create(context.Background(), visitor, eventID)

	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusConfirmed, resp.Status)

	event, _ := f.events.FindByID(context.Background(), eventID)
	assert.Equal(t, 1, event.ConfirmedRequests)
}

func TestCreateRequest_AutoConfirmedWithoutModeration(t *testing.T) {
	f := newAdmissionFixture(t)
	initiator := f.seedUser(t, "initiator@example.com")
	visitor := f.seedUser(t, "visitor@example.com")
	eventID := f.seedEvent(t, initiator, 10, false, models.EventStatePublished)

	resp, err := f.service.Create(context.Background(), visitor, eventID)

	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusConfirmed, resp.Status)
}

func TestCreateRequest_PendingUnderModeration(t *testing.T) {
	f := newAdmissionFixture(t)
	initiator := f.seedUser(t, "initiator@example.com")
	visitor := f.seedUser(t, "visitor@example.com")
	eventID := f.seedEvent(t, initiator, 10, true, models.EventStatePublished)

	resp, err := f.service.Create(context.Background(), visitor, eventID)

	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, resp.Status)

	event, _ := f.events.FindByID(context.Background(), eventID)
	assert.Equal(t, 0, event.ConfirmedRequests, "a pending request must not claim a slot")
}

func TestCreateRequest_InitiatorRejected(t *testing.T) {
	f := newAdmissionFixture(t)
	initiator := f.seedUser(t, "initiator@example.com")
	eventID := f.seedEvent(t, initiator, 0, true, models.EventStatePublished)

	_, err := f.service.Create(context.Background(), initiator, eventID)

	requireAppError(t, err, http.StatusConflict)
}

func TestCreateRequest_UnpublishedRejected(t *testing.T) {
	f := newAdmissionFixture(t)
	initiator := f.seedUser(t, "initiator@example.com")
	visitor := f.seedUser(t, "visitor@example.com")
	eventID := f.seedEvent(t, initiator, 0, true, models.EventStatePending)

	_, err := f.service.Create(context.Background(), visitor, eventID)

	requireAppError(t, err, http.StatusConflict)
}

func TestCreateRequest_DuplicateRejected(t *testing.T) {
	f := newAdmissionFixture(t)
	initiator := f.seedUser(t, "initiator@example.com")
	visitor := f.seedUser(t, "visitor@example.com")
	eventID := f.seedEvent(t, initiator, 0, true, models.EventStatePublished)

	_, err := f.service.Create(context.Background(), visitor, eventID)
	require.NoError(t, err)

	_, err = f.service.Create(context.Background(), visitor, eventID)
	requireAppError(t, err, http.StatusConflict)
}

func TestCreateRequest_CapacityReached(t *testing.T) {
	f := newAdmissionFixture(t)
	initiator := f.seedUser(t, "initiator@example.com")
	first := f.seedUser(t, "first@example.com")
	second := f.seedUser(t, "second@example.com")
	eventID := f.seedEvent(t, initiator, 1, false, models.EventStatePublished)

	_, err := f.service.Create(context.Background(), first, eventID)
	require.NoError(t, err)

	_, err = f.service.Create(context.Background(), second, eventID)
	requireAppError(t, err, http.StatusConflict)
}

func TestCreateRequest_FullModeratedEventRejected(t *testing.T) {
	f := newAdmissionFixture(t)
	initiator := f.seedUser(t, "initiator@example.com")
	first := f.seedUser(t, "first@example.com")
	second := f.seedUser(t, "second@example.com")
	eventID := f.seedEvent(t, initiator, 1, true, models.EventStatePublished)

	created, err := f.service.Create(context.Background(), first, eventID)
	require.NoError(t, err)

	_, err = f.service.DecideForEvent(context.Background(), initiator, eventID, dto.RequestStatusUpdate{
		RequestIDs: []string{created.ID},
		Status:     string(models.RequestStatusConfirmed),
	})
	require.NoError(t, err)

	_, err = f.service.Create(context.Background(), second, eventID)
	requireAppError(t, err, http.StatusConflict)
}

func TestCreateRequest_ConcurrentNeverOversellsSlots(t *testing.T) {
	const limit = 5
	const contenders = 20

	f := newAdmissionFixture(t)
	initiator := f.seedUser(t, "initiator@example.com")
	eventID := f.seedEvent(t, initiator, limit, false, models.EventStatePublished)

	visitors := make([]string, contenders)
	for i := range visitors {
		visitors[i] = f.seedUser(t, fmt.Sprintf("visitor%d@example.com", i))
	}

	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.Create(context.Background(), visitors[i], eventID)
		}(i)
	}
	wg.Wait()

	var confirmed, rejected int
	for _, err := range errs {
		if err == nil {
			confirmed++
		} else {
			requireAppError(t, err, http.StatusConflict)
			rejected++
		}
	}
	assert.Equal(t, limit, confirmed)
	assert.Equal(t, contenders-limit, rejected)

	event, _ := f.events.FindByID(context.Background(), eventID)
	assert.Equal(t, limit, event.ConfirmedRequests)
}

func TestCancelRequest_PendingBecomesCanceled(t *testing.T) {
	f := newAdmissionFixture(t)
	initiator := f.seedUser(t, "initiator@example.com")
	visitor := f.seedUser(t, "visitor@example.com")
	eventID := f.seedEvent(t, initiator, 10, true, models.EventStatePublished)

	created, err := f.service.Create(context.Background(), visitor, eventID)
	require.NoError(t, err)

	canceled, err := f.service.Cancel(context.Background(), visitor, created.ID)

	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusCanceled, canceled.Status)
}

func TestCancelRequest_ForeignRequestNotFound(t *testing.T) {
	f := newAdmissionFixture(t)
	initiator := f.seedUser(t, "initiator@example.com")
	visitor := f.seedUser(t, "visitor@example.com")
	stranger := f.seedUser(t, "stranger@example.com")
	eventID := f.seedEvent(t, initiator, 10, true, models.EventStatePublished)

	created, err := f.service.Create(context.Background(), visitor, eventID)
	require.NoError(t, err)

	_, err = f.service.Cancel(context.Background(), stranger, created.ID)

	requireAppError(t, err, http.StatusNotFound)
}

func TestCancelRequest_TerminalStatusRejected(t *testing.T) {
	f := newAdmissionFixture(t)
	initiator := f.seedUser(t, "initiator@example.com")
	visitor := f.seedUser(t, "visitor@example.com")
	eventID := f.seedEvent(t, initiator, 10, true, models.EventStatePublished)

	created, err := f.service.Create(context.Background(), visitor, eventID)
	require.NoError(t, err)
	require.NoError(t, f.requests.UpdateStatus(context.Background(), created.ID, models.RequestStatusRejected))

	_, err = f.service.Cancel(context.Background(), visitor, created.ID)

	requireAppError(t, err, http.StatusConflict)
}

func TestCancelRequest_ConfirmedKeepsSlot(t *testing.T) {
	f := newAdmissionFixture(t)
	initiator := f.seedUser(t, "initiator@example.com")
	visitor := f.seedUser(t, "visitor@example.com")
	eventID := f.seedEvent(t, initiator, 10, false, models.EventStatePublished)

	created, err := f.service.Create(context.Background(), visitor, eventID)
	require.NoError(t, err)
	require.Equal(t, models.RequestStatusConfirmed, created.Status)

	canceled, err := f.service.Cancel(context.Background(), visitor, created.ID)

	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusCanceled, canceled.Status)

	event, _ := f.events.FindByID(context.Background(), eventID)
	assert.Equal(t, 1, event.ConfirmedRequests, "cancel must not free an occupied slot")
}

func TestDecide_ConfirmsInOrderAndRejectsOverflow(t *testing.T) {
	f := newAdmissionFixture(t)
	initiator := f.seedUser(t, "initiator@example.com")
	eventID := f.seedEvent(t, initiator, 2, true, models.EventStatePublished)

	var requestIDs []string
	for i := 0; i < 3; i++ {
		visitor := f.seedUser(t, fmt.Sprintf("visitor%d@example.com", i))
		created, err := f.service.Create(context.Background(), visitor, eventID)
		require.NoError(t, err)
		requestIDs = append(requestIDs, created.ID)
	}

	result, err := f.service.DecideForEvent(context.Background(), initiator, eventID, dto.RequestStatusUpdate{
		RequestIDs: requestIDs,
		Status:     string(models.RequestStatusConfirmed),
	})

	require.NoError(t, err)
	require.Len(t, result.ConfirmedRequests, 2)
	require.Len(t, result.RejectedRequests, 1)
	assert.Equal(t, requestIDs[0], result.ConfirmedRequests[0].ID)
	assert.Equal(t, requestIDs[1], result.ConfirmedRequests[1].ID)
	assert.Equal(t, requestIDs[2], result.RejectedRequests[0].ID)

	event, _ := f.events.FindByID(context.Background(), eventID)
	assert.Equal(t, 2, event.ConfirmedRequests)
}

func TestDecide_RejectBatch(t *testing.T) {
	f := newAdmissionFixture(t)
	initiator := f.seedUser(t, "initiator@example.com")
	visitor := f.seedUser(t, "visitor@example.com")
	eventID := f.seedEvent(t, initiator, 10, true, models.EventStatePublished)

	created, err := f.service.Create(context.Background(), visitor, eventID)
	require.NoError(t, err)

	result, err := f.service.DecideForEvent(context.Background(), initiator, eventID, dto.RequestStatusUpdate{
		RequestIDs: []string{created.ID},
		Status:     string(models.RequestStatusRejected),
	})

	require.NoError(t, err)
	assert.Empty(t, result.ConfirmedRequests)
	require.Len(t, result.RejectedRequests, 1)
	assert.Equal(t, models.RequestStatusRejected, result.RejectedRequests[0].Status)
}

func TestDecide_NonPendingFailsWholeBatch(t *testing.T) {
	f := newAdmissionFixture(t)
	initiator := f.seedUser(t, "initiator@example.com")
	first := f.seedUser(t, "first@example.com")
	second := f.seedUser(t, "second@example.com")
	eventID := f.seedEvent(t, initiator, 10, true, models.EventStatePublished)

	firstReq, err := f.service.Create(context.Background(), first, eventID)
	require.NoError(t, err)
	secondReq, err := f.service.Create(context.Background(), second, eventID)
	require.NoError(t, err)
	require.NoError(t, f.requests.UpdateStatus(context.Background(), secondReq.ID, models.RequestStatusCanceled))

	_, err = f.service.DecideForEvent(context.Background(), initiator, eventID, dto.RequestStatusUpdate{
		RequestIDs: []string{firstReq.ID, secondReq.ID},
		Status:     string(models.RequestStatusConfirmed),
	})

	requireAppError(t, err, http.StatusConflict)

	request, findErr := f.requests.FindByID(context.Background(), firstReq.ID)
	require.NoError(t, findErr)
	assert.Equal(t, models.RequestStatusPending, request.Status, "a failed batch must not change any request")
}

func TestDecide_FullEventRejectedUpfront(t *testing.T) {
	f := newAdmissionFixture(t)
	initiator := f.seedUser(t, "initiator@example.com")
	eventID := f.seedEvent(t, initiator, 1, false, models.EventStatePublished)

	occupant := f.seedUser(t, "occupant@example.com")
	_, err := f.service.Create(context.Background(), occupant, eventID)
	require.NoError(t, err)

	_, err = f.service.DecideForEvent(context.Background(), initiator, eventID, dto.RequestStatusUpdate{
		RequestIDs: []string{"irrelevant"},
		Status:     string(models.RequestStatusConfirmed),
	})

	requireAppError(t, err, http.StatusConflict)
}

func TestDecide_FullEventRejectsRejectBatchToo(t *testing.T) {
	f := newAdmissionFixture(t)
	initiator := f.seedUser(t, "initiator@example.com")
	first := f.seedUser(t, "first@example.com")
	second := f.seedUser(t, "second@example.com")
	eventID := f.seedEvent(t, initiator, 1, true, models.EventStatePublished)

	firstReq, err := f.service.Create(context.Background(), first, eventID)
	require.NoError(t, err)
	secondReq, err := f.service.Create(context.Background(), second, eventID)
	require.NoError(t, err)

	_, err = f.service.DecideForEvent(context.Background(), initiator, eventID, dto.RequestStatusUpdate{
		RequestIDs: []string{firstReq.ID},
		Status:     string(models.RequestStatusConfirmed),
	})
	require.NoError(t, err)

	_, err = f.service.DecideForEvent(context.Background(), initiator, eventID, dto.RequestStatusUpdate{
		RequestIDs: []string{secondReq.ID},
		Status:     string(models.RequestStatusRejected),
	})

	requireAppError(t, err, http.StatusConflict)
}

func TestDecide_ForeignEventNotFound(t *testing.T) {
	f := newAdmissionFixture(t)
	initiator := f.seedUser(t, "initiator@example.com")
	stranger := f.seedUser(t, "stranger@example.com")
	eventID := f.seedEvent(t, initiator, 10, true, models.EventStatePublished)

	_, err := f.service.DecideForEvent(context.Background(), stranger, eventID, dto.RequestStatusUpdate{
		RequestIDs: []string{"irrelevant"},
		Status:     string(models.RequestStatusConfirmed),
	})

	requireAppError(t, err, http.StatusNotFound)
}
