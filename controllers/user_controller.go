package controllers

import (
	"errors"
	"log"
	"net/http"

	"travelex-backend/models"
	"travelex-backend/services"
	"travelex-backend/utils"

	"github.com/gin-gonic/gin"
)

// UserController covers the admin-facing user management surface.
type UserController struct {
	Users services.UserStore
	Logs  services.ActivityLogStore
}

func NewUserController(users services.UserStore, logs services.ActivityLogStore) *UserController {
	return &UserController{Users: users, Logs: logs}
}

func (uc *UserController) recordActivity(c *gin.Context, action, entityID string) {
	actor := c.GetString("userId")
	_, err := uc.Logs.CreateActivityLog(&models.ActivityLog{
		UserID:     actor,
		Action:     action,
		EntityType: "user",
		EntityID:   entityID,
	})
	if err != nil {
		log.Printf("warning: failed to write activity log: %v", err)
	}
}

func (uc *UserController) GetUsers(c *gin.Context) {
	users, err := uc.Users.GetAllUsers()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, users)
}

func (uc *UserController) GetUser(c *gin.Context) {
	user, err := uc.Users.GetUser(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "user not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

func (uc *UserController) CreateUser(c *gin.Context) {
	var input services.UpsertUser
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	user, err := uc.Users.CreateUser(&input)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	uc.recordActivity(c, "user.create", user.ID)
	utils.JSONSuccess(c, http.StatusCreated, user)
}

// UpsertUser inserts or updates keyed by the id in the path.
func (uc *UserController) UpsertUser(c *gin.Context) {
	var input services.UpsertUser
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	input.ID = c.Param("id")
	user, err := uc.Users.UpsertUser(&input)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	uc.recordActivity(c, "user.upsert", user.ID)
	utils.JSONSuccess(c, http.StatusOK, user)
}

func (uc *UserController) UpdateUser(c *gin.Context) {
	var input services.UpsertUser
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	user, err := uc.Users.UpdateUser(c.Param("id"), &input)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "user not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	uc.recordActivity(c, "user.update", user.ID)
	utils.JSONSuccess(c, http.StatusOK, user)
}

func (uc *UserController) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if err := uc.Users.DeleteUser(id); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	uc.recordActivity(c, "user.delete", id)
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
