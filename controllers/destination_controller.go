package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"travelex-backend/models"
	"travelex-backend/services"
	"travelex-backend/utils"

	"github.com/gin-gonic/gin"
)

type DestinationController struct {
	Destinations services.DestinationStore
	Logs         services.ActivityLogStore
}

func NewDestinationController(destinations services.DestinationStore, logs services.ActivityLogStore) *DestinationController {
	return &DestinationController{Destinations: destinations, Logs: logs}
}

func (dc *DestinationController) recordActivity(c *gin.Context, action string, id uint) {
	actor := c.GetString("userId")
	_, err := dc.Logs.CreateActivityLog(&models.ActivityLog{
		UserID:     actor,
		Action:     action,
		EntityType: "destination",
		EntityID:   strconv.FormatUint(uint64(id), 10),
	})
	if err != nil {
		log.Printf("warning: failed to write activity log: %v", err)
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// GetDestinations serves the public catalog. Search, category filters and
// sort order come from query parameters; with none given, the full active
// catalog is returned sorted by name.
func (dc *DestinationController) GetDestinations(c *gin.Context) {
	list, err := dc.Destinations.GetAllDestinations()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	query := services.CatalogQuery{
		Search:   c.Query("search"),
		Region:   c.Query("region"),
		Budget:   c.Query("budget"),
		Duration: c.Query("duration"),
		Deals:    c.Query("deals"),
		Sort:     c.Query("sort"),
	}
	utils.JSONSuccess(c, http.StatusOK, services.BrowseDestinations(list, query))
}

func (dc *DestinationController) GetDestination(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	d, err := dc.Destinations.GetDestination(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "destination not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, d)
}

func (dc *DestinationController) CreateDestination(c *gin.Context) {
	var d models.Destination
	if err := c.ShouldBindJSON(&d); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := dc.Destinations.CreateDestination(&d); err != nil {
		var conflict *services.ImageURLConflictError
		if errors.As(err, &conflict) {
			utils.JSONError(c, http.StatusConflict, conflict.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	dc.recordActivity(c, "destination.create", d.ID)
	utils.JSONSuccess(c, http.StatusCreated, d)
}

func (dc *DestinationController) UpdateDestination(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch services.DestinationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	updated, err := dc.Destinations.UpdateDestination(id, &patch)
	if err != nil {
		var conflict *services.ImageURLConflictError
		switch {
		case errors.As(err, &conflict):
			utils.JSONError(c, http.StatusConflict, conflict.Error())
		case errors.Is(err, services.ErrNotFound):
			utils.JSONError(c, http.StatusNotFound, "destination not found")
		default:
			utils.JSONError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	dc.recordActivity(c, "destination.update", id)
	utils.JSONSuccess(c, http.StatusOK, updated)
}

func (dc *DestinationController) DeleteDestination(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := dc.Destinations.DeleteDestination(id); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	dc.recordActivity(c, "destination.delete", id)
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

func (dc *DestinationController) GetDestinationsWithStats(c *gin.Context) {
	stats, err := dc.Destinations.GetDestinationsWithStats()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}
