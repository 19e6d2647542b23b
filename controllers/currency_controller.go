package controllers

import (
	"net/http"

	"travelex-backend/services"
	"travelex-backend/utils"

	"github.com/gin-gonic/gin"
)

type CurrencyController struct {
	Preferences services.PreferenceStore
}

func NewCurrencyController(preferences services.PreferenceStore) *CurrencyController {
	return &CurrencyController{Preferences: preferences}
}

func (cc *CurrencyController) GetCurrencies(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"currencies": utils.SupportedCurrencies,
		"default":    utils.DefaultCurrency,
	})
}

// GetPreference resolves the caller's preferred currency, applying the
// stale-default migration.
func (cc *CurrencyController) GetPreference(c *gin.Context) {
	code, err := services.ResolvePreferredCurrency(c.Request.Context(), cc.Preferences, c.GetString("userId"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"code":   code,
		"symbol": utils.CurrencySymbol(code),
		"name":   utils.CurrencyName(code),
	})
}

type setPreferencePayload struct {
	Code string `json:"code" binding:"required"`
}

func (cc *CurrencyController) SetPreference(c *gin.Context) {
	var payload setPreferencePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "code required")
		return
	}
	if !utils.IsSupportedCurrency(payload.Code) {
		utils.JSONError(c, http.StatusBadRequest, "unsupported currency code")
		return
	}
	err := services.SetPreferredCurrency(c.Request.Context(), cc.Preferences, c.GetString("userId"), payload.Code)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"code": payload.Code})
}
