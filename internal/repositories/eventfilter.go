package repositories

import (
	"time"

	"gorm.io/gorm"

	"afisha_backend/internal/dto"
	"afisha_backend/internal/models"
)

// EventPredicate is one named WHERE clause of an event search. Keeping the
// name next to the apply func lets tests assert which clauses a set of
// search params produces without opening a database connection.
type EventPredicate struct {
	Name  string
	Apply func(*gorm.DB) *gorm.DB
}

// BuildEventPredicates translates search params into an ordered predicate
// list. Public searches always get a published-only clause, and when no
// rangeStart is given they are restricted to upcoming events.
func BuildEventPredicates(params dto.EventSearchParams, now time.Time) []EventPredicate {
	var predicates []EventPredicate

	if len(params.Users) > 0 {
		users := params.Users
		predicates = append(predicates, EventPredicate{
			Name:  "initiator-in",
			Apply: func(db *gorm.DB) *gorm.DB { return db.Where("initiator_id IN ?", users) },
		})
	}
	if len(params.States) > 0 {
		states := params.States
		predicates = append(predicates, EventPredicate{
			Name:  "state-in",
			Apply: func(db *gorm.DB) *gorm.DB { return db.Where("state IN ?", states) },
		})
	}
	if params.PublicOnly {
		predicates = append(predicates, EventPredicate{
			Name: "published-only",
			Apply: func(db *gorm.DB) *gorm.DB {
				return db.Where("state = ?", models.EventStatePublished)
			},
		})
	}
	if len(params.Categories) > 0 {
		categories := params.Categories
		predicates = append(predicates, EventPredicate{
			Name:  "category-in",
			Apply: func(db *gorm.DB) *gorm.DB { return db.Where("category_id IN ?", categories) },
		})
	}
	if params.Text != "" {
		pattern := "%" + params.Text + "%"
		predicates = append(predicates, EventPredicate{
			Name: "text-search",
			Apply: func(db *gorm.DB) *gorm.DB {
				return db.Where("annotation ILIKE ? OR description ILIKE ?", pattern, pattern)
			},
		})
	}
	if params.Paid != nil {
		paid := *params.Paid
		predicates = append(predicates, EventPredicate{
			Name:  "paid",
			Apply: func(db *gorm.DB) *gorm.DB { return db.Where("paid = ?", paid) },
		})
	}

	rangeStart := params.RangeStart.Time
	if rangeStart.IsZero() && params.PublicOnly {
		rangeStart = now
	}
	if !rangeStart.IsZero() {
		start := rangeStart
		predicates = append(predicates, EventPredicate{
			Name:  "date-from",
			Apply: func(db *gorm.DB) *gorm.DB { return db.Where("event_date >= ?", start) },
		})
	}
	if !params.RangeEnd.Time.IsZero() {
		end := params.RangeEnd.Time
		predicates = append(predicates, EventPredicate{
			Name:  "date-to",
			Apply: func(db *gorm.DB) *gorm.DB { return db.Where("event_date <= ?", end) },
		})
	}
	if params.OnlyAvailable {
		predicates = append(predicates, EventPredicate{
			Name: "only-available",
			Apply: func(db *gorm.DB) *gorm.DB {
				return db.Where("participant_limit = 0 OR confirmed_requests < participant_limit")
			},
		})
	}

	return predicates
}

// PredicateNames returns the names of the given predicates in order.
func PredicateNames(predicates []EventPredicate) []string {
	names := make([]string, 0, len(predicates))
	for _, p := range predicates {
		names = append(names, p.Name)
	}
	return names
}
