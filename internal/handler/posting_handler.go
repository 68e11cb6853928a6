package handler

import (
	"net/http"

	"anoa.com/magangmatch/internal/dto"
	"anoa.com/magangmatch/internal/model"
	"anoa.com/magangmatch/internal/service"
	"anoa.com/magangmatch/pkg/response"
	"anoa.com/magangmatch/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PostingHandler struct {
	postings     service.PostingService
	applications service.ApplicationService
}

func NewPostingHandler(postings service.PostingService, applications service.ApplicationService) *PostingHandler {
	return &PostingHandler{postings: postings, applications: applications}
}

func (h *PostingHandler) CreatePosting(c *gin.Context) {
	identity, err := response.GetIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	posting, err := h.postings.Create(c.Request.Context(), identity.Email, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": posting})
}

func (h *PostingHandler) GetAllPostings(c *gin.Context) {
	postings, err := h.postings.ListActive(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": postings})
}

func (h *PostingHandler) GetMyPostings(c *gin.Context) {
	identity, err := response.GetIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	postings, err := h.postings.ListByCompany(c.Request.Context(), identity.Email)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": postings})
}

func (h *PostingHandler) GetPosting(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid posting ID"})
		return
	}

	posting, err := h.postings.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": posting})
}

func (h *PostingHandler) UpdatePosting(c *gin.Context) {
	identity, err := response.GetIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid posting ID"})
		return
	}

	var req dto.UpdatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	posting, err := h.postings.Update(c.Request.Context(), identity.Email, id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": posting})
}

func (h *PostingHandler) SetLifecycle(c *gin.Context) {
	identity, err := response.GetIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid posting ID"})
		return
	}

	var req dto.PostingLifecycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	st, ok := model.ParsePostingStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lifecycle status"})
		return
	}

	posting, err := h.postings.SetLifecycle(c.Request.Context(), identity.Email, id, st)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": posting})
}

// GetCandidates lists a posting's applicants ranked by compatibility score.
func (h *PostingHandler) GetCandidates(c *gin.Context) {
	identity, err := response.GetIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid posting ID"})
		return
	}

	ranked, err := h.applications.RankCandidates(c.Request.Context(), identity.Email, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ranked})
}

// GetScore returns the caller's own compatibility score for a posting.
func (h *PostingHandler) GetScore(c *gin.Context) {
	identity, err := response.GetIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid posting ID"})
		return
	}

	score, err := h.applications.ScoreFor(c.Request.Context(), identity.Email, id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": score})
}
