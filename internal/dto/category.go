package dto

type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
