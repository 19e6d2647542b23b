package controllers

import (
	"net/http"

	"travelex-backend/services"
	"travelex-backend/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Analytics services.AnalyticsStore
}

func NewAnalyticsController(analytics services.AnalyticsStore) *AnalyticsController {
	return &AnalyticsController{Analytics: analytics}
}

func (ac *AnalyticsController) GetRevenue(c *gin.Context) {
	summary, err := ac.Analytics.GetRevenue()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}

func (ac *AnalyticsController) GetBookingStats(c *gin.Context) {
	summary, err := ac.Analytics.GetBookingStats()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}

func (ac *AnalyticsController) GetUserStats(c *gin.Context) {
	summary, err := ac.Analytics.GetUserStats()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}
