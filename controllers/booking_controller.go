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
	"gorm.io/datatypes"
)

type BookingController struct {
	Bookings services.BookingStore
	Logs     services.ActivityLogStore
	Payments services.PaymentProvider
}

func NewBookingController(bookings services.BookingStore, logs services.ActivityLogStore, payments services.PaymentProvider) *BookingController {
	return &BookingController{Bookings: bookings, Logs: logs, Payments: payments}
}

type createBookingPayload struct {
	DestinationID     uint           `json:"destinationId" binding:"required"`
	CheckIn           string         `json:"checkIn" binding:"required"`
	CheckOut          string         `json:"checkOut" binding:"required"`
	Guests            int            `json:"guests"`
	TravelClass       string         `json:"travelClass"`
	Upgrades          datatypes.JSON `json:"upgrades"`
	TotalAmount       string         `json:"totalAmount" binding:"required"`
	OriginalAmount    string         `json:"originalAmount"`
	AppliedCouponCode string         `json:"appliedCouponCode"`
	CouponDiscount    string         `json:"couponDiscount"`
	Currency          string         `json:"currency"`
}

func (bc *BookingController) recordActivity(c *gin.Context, action string, id uint) {
	actor := c.GetString("userId")
	_, err := bc.Logs.CreateActivityLog(&models.ActivityLog{
		UserID:     actor,
		Action:     action,
		EntityType: "booking",
		EntityID:   strconv.FormatUint(uint64(id), 10),
	})
	if err != nil {
		log.Printf("warning: failed to write activity log: %v", err)
	}
}

// CreateBooking stores the booking as submitted (amounts are not
// recomputed) and registers a payment intent when a gateway is configured.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var payload createBookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	booking := models.Booking{
		UserID:            c.GetString("userId"),
		DestinationID:     payload.DestinationID,
		CheckIn:           payload.CheckIn,
		CheckOut:          payload.CheckOut,
		Guests:            payload.Guests,
		TravelClass:       payload.TravelClass,
		Upgrades:          payload.Upgrades,
		TotalAmount:       payload.TotalAmount,
		OriginalAmount:    payload.OriginalAmount,
		AppliedCouponCode: payload.AppliedCouponCode,
		CouponDiscount:    payload.CouponDiscount,
	}
	if booking.Guests == 0 {
		booking.Guests = 1
	}

	currency := payload.Currency
	if currency == "" {
		currency = utils.DefaultCurrency
	}
	intent, err := bc.Payments.CreatePaymentIntent(c.Request.Context(),
		payload.TotalAmount, currency,
		"travelex booking for destination "+strconv.FormatUint(uint64(payload.DestinationID), 10))
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "payment gateway error: "+err.Error())
		return
	}
	if intent != nil {
		booking.StripePaymentIntentID = intent.ID
	}

	if err := bc.Bookings.CreateBooking(&booking); err != nil {
		if errors.Is(err, services.ErrDuplicateBooking) {
			utils.JSONError(c, http.StatusConflict, "you already have an active booking for these dates")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	bc.recordActivity(c, "booking.create", booking.ID)
	response := gin.H{"booking": booking}
	if intent != nil {
		response["paymentClientSecret"] = intent.ClientSecret
	}
	utils.JSONSuccess(c, http.StatusCreated, response)
}

// GetMyBookings lists the caller's bookings, newest first.
func (bc *BookingController) GetMyBookings(c *gin.Context) {
	bookings, err := bc.Bookings.GetUserBookings(c.GetString("userId"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (bc *BookingController) GetAllBookings(c *gin.Context) {
	bookings, err := bc.Bookings.GetAllBookings()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (bc *BookingController) GetBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	booking, err := bc.Bookings.GetBooking(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if booking.Booking.UserID != c.GetString("userId") && c.GetString("role") != "admin" {
		utils.JSONError(c, http.StatusForbidden, "not your booking")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (bc *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var patch models.Booking
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	updated, err := bc.Bookings.UpdateBooking(id, &patch)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	bc.recordActivity(c, "booking.update", id)
	utils.JSONSuccess(c, http.StatusOK, updated)
}

// CancelBooking transitions the booking to cancelled; rows are never
// removed.
func (bc *BookingController) CancelBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	booking, err := bc.Bookings.GetBooking(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if booking.Booking.UserID != c.GetString("userId") && c.GetString("role") != "admin" {
		utils.JSONError(c, http.StatusForbidden, "not your booking")
		return
	}
	if err := bc.Bookings.CancelBooking(id); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	bc.recordActivity(c, "booking.cancel", id)
	utils.JSONSuccess(c, http.StatusOK, gin.H{"cancelled": id})
}
