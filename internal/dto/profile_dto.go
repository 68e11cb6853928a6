package dto

type UpdateProfileRequest struct {
	Name     string   `json:"name" binding:"required,min=2,max=255"`
	Skills   []string `json:"skills"`
	Province string   `json:"province" binding:"omitempty,max=100"`
}
