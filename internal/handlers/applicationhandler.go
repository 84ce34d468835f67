package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/jobportal/internal/auth"
	"github.com/justsurfingit/jobportal/internal/dtos"
	"github.com/justsurfingit/jobportal/internal/services"
)

type ApplicationHandler struct {
	ApplicationService *services.ApplicationService
	Log                logrus.FieldLogger
}

func NewApplicationHandler(a *services.ApplicationService, log logrus.FieldLogger) *ApplicationHandler {
	return &ApplicationHandler{
		ApplicationService: a,
		Log:                log,
	}
}

// ListMine is GET /jobApplications?email=, behind the guard.
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)
	apps, err := h.ApplicationService.ListApplicationsByApplicant(c.Request.Context(), c.Query("email"), identity)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	apps, err := h.ApplicationService.ListApplicationsForJob(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) Create(c *gin.Context) {
	var req dtos.ApplicationCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.Log, err)
		return
	}
	app, err := h.ApplicationService.CreateApplication(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.InsertResult{
		Acknowledged: true,
		InsertedID:   app.ID.String(),
	})
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req dtos.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.Log, err)
		return
	}
	res, err := h.ApplicationService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, dtos.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	})
}

func (h *ApplicationHandler) Delete(c *gin.Context) {
	n, err := h.ApplicationService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, dtos.DeleteResult{Acknowledged: true, DeletedCount: n})
}
