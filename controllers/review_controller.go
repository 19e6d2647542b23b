package controllers

import (
	"net/http"
	"time"

	"travelex-backend/models"
	"travelex-backend/services"
	"travelex-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Reviews services.ReviewStore
}

func NewReviewController(reviews services.ReviewStore) *ReviewController {
	return &ReviewController{Reviews: reviews}
}

type createReviewPayload struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Title    string `json:"title"`
	Comment  string `json:"comment"`
	TripDate string `json:"tripDate"`
}

func (rc *ReviewController) GetDestinationReviews(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	reviews, err := rc.Reviews.GetDestinationReviews(id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reviews)
}

func (rc *ReviewController) CreateReview(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var payload createReviewPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "rating between 1 and 5 required")
		return
	}

	review := models.Review{
		DestinationID: id,
		UserID:        c.GetString("userId"),
		Rating:        payload.Rating,
		Title:         payload.Title,
		Comment:       payload.Comment,
	}
	if payload.TripDate != "" {
		t, err := time.Parse("2006-01-02", payload.TripDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "tripDate must be YYYY-MM-DD")
			return
		}
		review.TripDate = &t
	}

	if err := rc.Reviews.CreateReview(&review); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, review)
}

func (rc *ReviewController) GetReviewStats(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	stats, err := rc.Reviews.GetReviewStats(id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}
