package dto

type NewUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,min=2,max=250"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserShort is the initiator block embedded in event responses.
type UserShort struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
