package dto

type SendMessageRequest struct {
	Text string `json:"text" binding:"required,min=1"`
	// Type defaults to "text"; "interview" marks a scheduling payload.
	Type string `json:"type" binding:"omitempty,oneof=text interview"`
}
