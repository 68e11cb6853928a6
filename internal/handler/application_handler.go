package handler

import (
	"net/http"

	"anoa.com/magangmatch/internal/dto"
	"anoa.com/magangmatch/internal/service"
	"anoa.com/magangmatch/internal/status"
	"anoa.com/magangmatch/pkg/response"
	"anoa.com/magangmatch/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	applications service.ApplicationService
}

func NewApplicationHandler(applications service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	identity, err := response.GetIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}
	postingID, err := uuid.Parse(req.PostingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid posting ID"})
		return
	}

	app, err := h.applications.Apply(c.Request.Context(), identity.Email, postingID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": app})
}

func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	identity, err := response.GetIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	apps, err := h.applications.ListByCandidate(c.Request.Context(), identity.Email)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": apps})
}

func (h *ApplicationHandler) SetStatus(c *gin.Context) {
	identity, err := response.GetIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}
	postingID, err := uuid.Parse(req.PostingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid posting ID"})
		return
	}
	st, err := status.Parse(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	app, err := h.applications.SetStatus(c.Request.Context(), identity.Email, req.CandidateEmail, postingID, st)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": app})
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	identity, err := response.GetIdentity(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}
	postingID, err := uuid.Parse(req.PostingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid posting ID"})
		return
	}

	if err := h.applications.Withdraw(c.Request.Context(), identity.Email, postingID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application withdrawn"})
}
