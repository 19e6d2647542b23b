package controllers

import (
	"net/http"
	"strconv"

	"travelex-backend/services"
	"travelex-backend/utils"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	Logs services.ActivityLogStore
}

func NewActivityController(logs services.ActivityLogStore) *ActivityController {
	return &ActivityController{Logs: logs}
}

// GetActivityLogs lists recent audit entries, newest first. ?limit= caps
// the page; anything unparseable falls back to the default of 50.
func (ac *ActivityController) GetActivityLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	logs, err := ac.Logs.GetActivityLogs(limit)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, logs)
}
