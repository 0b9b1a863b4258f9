package dto

// ===== Request =====
type CreatePostRequest struct {
	Content    string `json:"content"    validate:"required,min=1,max=2000"`
	Visibility string `json:"visibility" validate:"omitempty,oneof=public private"`
}

// ===== Error Response =====
type ErrorResponse struct {
	Message string `json:"message" example:"invalid body"`
}
