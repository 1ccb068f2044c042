package handlers

import "afisha_backend/internal/services"

// AppHandlers bundles every handler of the main service for route wiring.
type AppHandlers struct {
	Users        *UserHandler
	Categories   *CategoryHandler
	Events       *EventHandler
	Requests     *RequestHandler
	Estimations  *EstimationHandler
	Compilations *CompilationHandler
}

func NewAppHandlers(
	users services.UserService,
	categories services.CategoryService,
	events services.EventService,
	requests services.RequestService,
	estimations services.EstimationService,
	compilations services.CompilationService,
) *AppHandlers {
	return &AppHandlers{
		Users:        NewUserHandler(users),
		Categories:   NewCategoryHandler(categories),
		Events:       NewEventHandler(events),
		Requests:     NewRequestHandler(requests),
		Estimations:  NewEstimationHandler(estimations),
		Compilations: NewCompilationHandler(compilations),
	}
}
