package dto

import "afisha_backend/internal/utils"

// Hit is a single endpoint visit recorded by the statistics service.
type Hit struct {
	App       string         `json:"app" validate:"required"`
	URI       string         `json:"uri" validate:"required"`
	IP        string         `json:"ip" validate:"required"`
	Timestamp utils.DateTime `json:"timestamp" validate:"required"`
}

// ViewStats is an aggregated hit count for one app/uri pair.
type ViewStats struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}
