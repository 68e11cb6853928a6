package dto

import (
	"anoa.com/magangmatch/internal/model"
	"anoa.com/magangmatch/internal/scoring"
	"anoa.com/magangmatch/internal/status"
)

type CreatePostingRequest struct {
	Title           string   `json:"title" binding:"required,min=3,max=255"`
	Category        string   `json:"category" binding:"omitempty,max=100"`
	WorkMode        string   `json:"work_mode" binding:"omitempty,oneof=onsite remote hybrid"`
	Province        string   `json:"province" binding:"omitempty,max=100"`
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	Description     string   `json:"description"`
}

type UpdatePostingRequest struct {
	Title           string   `json:"title" binding:"required,min=3,max=255"`
	Category        string   `json:"category" binding:"omitempty,max=100"`
	WorkMode        string   `json:"work_mode" binding:"omitempty,oneof=onsite remote hybrid"`
	Province        string   `json:"province" binding:"omitempty,max=100"`
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	Description     string   `json:"description"`
}

type PostingLifecycleRequest struct {
	Status string `json:"status" binding:"required,oneof=active paused archived"`
}

// RankedCandidate is one row of a company's applicant list, scored.
type RankedCandidate struct {
	CandidateEmail string             `json:"candidate_email"`
	Name           string             `json:"name"`
	HasResume      bool               `json:"has_resume"`
	Status         status.Status      `json:"status"`
	Score          scoring.Result     `json:"score"`
	Application    *model.Application `json:"application,omitempty"`
}
