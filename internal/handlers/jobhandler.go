package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/jobportal/internal/dtos"
	"github.com/justsurfingit/jobportal/internal/services"
)

type JobHandler struct {
	JobService *services.JobService
	Log        logrus.FieldLogger
}

// NewJobHandler creates the handler with dependencies
func NewJobHandler(j *services.JobService, log logrus.FieldLogger) *JobHandler {
	return &JobHandler{
		JobService: j,
		Log:        log,
	}
}

// ListJobs is GET /jobs, optionally filtered by ?email=
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.JobService.ListJobs(c.Request.Context(), c.Query("email"))
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.JobService.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// creating the job
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.Log, err)
		return
	}
	job, err := h.JobService.CreateJob(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.InsertResult{
		Acknowledged: true,
		InsertedID:   job.ID.String(),
	})
}
