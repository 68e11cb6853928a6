package dto

type ApplyRequest struct {
	PostingID string `json:"posting_id" binding:"required,uuid"`
}

type SetStatusRequest struct {
	CandidateEmail string `json:"candidate_email" binding:"required,email"`
	PostingID      string `json:"posting_id" binding:"required,uuid"`
	Status         string `json:"status" binding:"required"`
}

type WithdrawRequest struct {
	PostingID string `json:"posting_id" binding:"required,uuid"`
}
