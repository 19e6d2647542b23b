package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"travelex-backend/middleware"
	"travelex-backend/models"
	"travelex-backend/services"
	"travelex-backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Users services.UserStore
	Logs  services.ActivityLogStore
}

func NewAuthController(users services.UserStore, logs services.ActivityLogStore) *AuthController {
	return &AuthController{Users: users, Logs: logs}
}

type registerPayload struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) recordActivity(userID, action, entityType, entityID, details string) {
	_, err := ac.Logs.CreateActivityLog(&models.ActivityLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	})
	if err != nil {
		log.Printf("warning: failed to write activity log: %v", err)
	}
}

func (ac *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "username and password required")
		return
	}

	username := strings.TrimSpace(payload.Username)
	if _, err := ac.Users.GetUserByUsername(username); err == nil {
		utils.JSONError(c, http.StatusConflict, "username already taken")
		return
	} else if !errors.Is(err, services.ErrNotFound) {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	user, err := ac.Users.CreateUser(&services.UpsertUser{
		Username:  username,
		Password:  payload.Password,
		Email:     payload.Email,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Role:      "user",
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	token, err := middleware.IssueToken(user)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	ac.recordActivity(user.ID, "user.register", "user", user.ID, "")
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"user": user, "token": token})
}

// Login authenticates and returns a token. A bad password and an unknown
// username produce the same response.
func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "username and password required")
		return
	}

	user, err := ac.Users.AuthenticateUser(strings.TrimSpace(payload.Username), payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	token, err := middleware.IssueToken(user)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	ac.recordActivity(user.ID, "user.login", "user", user.ID, "")
	utils.JSONSuccess(c, http.StatusOK, gin.H{"user": user, "token": token})
}
