package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/jobportal/internal/apperrors"
)

func respondError(c *gin.Context, log logrus.FieldLogger, err error) {
	appErr := apperrors.From(err)
	status := appErr.HTTPStatus()
	entry := log.WithError(err).WithFields(logrus.Fields{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
		"status": status,
	})
	if status >= http.StatusInternalServerError {
		entry.Error("Request failed")
	} else {
		entry.Warn("Request rejected")
	}
	c.JSON(status, gin.H{"message": appErr.Message})
}

func respondBindError(c *gin.Context, log logrus.FieldLogger, err error) {
	respondError(c, log, apperrors.Validation("Invalid JSON format: "+err.Error(), err))
}
