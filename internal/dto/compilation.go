package dto

type NewCompilationRequest struct {
	Title  string   `json:"title" validate:"required,min=1,max=50"`
	Pinned bool     `json:"pinned"`
	Events []string `json:"events"`
}

type UpdateCompilationRequest struct {
	Title  *string   `json:"title" validate:"omitempty,min=1,max=50"`
	Pinned *bool     `json:"pinned"`
	Events *[]string `json:"events"`
}

type CompilationResponse struct {
	ID     string               `json:"id"`
	Title  string               `json:"title"`
	Pinned bool                 `json:"pinned"`
	Events []EventShortResponse `json:"events"`
}
