package models

// EventState is the moderation lifecycle of an event.
type EventState string

const (
	EventStatePending   EventState = "PENDING"
	EventStatePublished EventState = "PUBLISHED"
	EventStateCanceled  EventState = "CANCELED"
)

// RequestStatus is the lifecycle of a participation request.
// PENDING is the only state a moderation transition can start from;
// CONFIRMED, REJECTED and CANCELED are terminal.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusConfirmed RequestStatus = "CONFIRMED"
	RequestStatusRejected  RequestStatus = "REJECTED"
	RequestStatusCanceled  RequestStatus = "CANCELED"
)

// StateAction is the requested lifecycle transition carried in update payloads.
type StateAction string

const (
	StateActionPublishEvent StateAction = "PUBLISH_EVENT"
	StateActionRejectEvent  StateAction = "REJECT_EVENT"
	StateActionSendToReview StateAction = "SEND_TO_REVIEW"
	StateActionCancelReview StateAction = "CANCEL_REVIEW"
)
