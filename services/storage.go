package services

import (
	"errors"
	"fmt"
	"time"

	"travelex-backend/models"
)

// ErrNotFound is returned when a requested record does not exist. Failed
// authentication returns it too, so a wrong password is indistinguishable
// from an unknown username.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateBooking is returned when an active booking already exists for
// the same user, destination and stay dates.
var ErrDuplicateBooking = errors.New("duplicate booking for these dates")

// ImageURLConflictError names the destination that already holds an image
// URL. It is meant to be surfaced to the caller verbatim.
type ImageURLConflictError struct {
	Name string
}

func (e *ImageURLConflictError) Error() string {
	return fmt.Sprintf("image URL already in use by destination: %s", e.Name)
}

// UpsertUser is the write shape for user records. Password, when set, is
// plaintext and gets hashed before it touches the database. Empty fields
// are left unchanged on update.
type UpsertUser struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	Email           string `json:"email"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	ProfileImageURL string `json:"profileImageUrl"`
	Role            string `json:"role"`
}

// DestinationPatch is the partial-update shape for destinations. Nil means
// "leave unchanged", so false and zero survive as real values — deactivating
// a destination is isActive: false, not a delete.
type DestinationPatch struct {
	Name               *string    `json:"name"`
	Country            *string    `json:"country"`
	Description        *string    `json:"description"`
	Price              *string    `json:"price"`
	OriginalPrice      *string    `json:"originalPrice"`
	Duration           *int       `json:"duration"`
	MaxGuests          *int       `json:"maxGuests"`
	Rating             *string    `json:"rating"`
	ImageURL           *string    `json:"imageUrl"`
	IsActive           *bool      `json:"isActive"`
	PromoTag           *string    `json:"promoTag"`
	DiscountPercentage *int       `json:"discountPercentage"`
	PromoExpiry        *time.Time `json:"promoExpiry"`
	SeasonalTag        *string    `json:"seasonalTag"`
	FlashSale          *bool      `json:"flashSale"`
	FlashSaleEnd       *time.Time `json:"flashSaleEnd"`
	CouponCode         *string    `json:"couponCode"`
	DiscountType       *string    `json:"discountType"`
	GroupDiscountMin   *int       `json:"groupDiscountMin"`
	LoyaltyDiscount    *int       `json:"loyaltyDiscount"`
	BundleDeal         *string    `json:"bundleDeal"`
}

type RevenueSummary struct {
	Total  string `json:"total"`
	Period string `json:"period"`
}

type BookingStatsSummary struct {
	Total     int `json:"total"`
	ThisMonth int `json:"thisMonth"`
	Growth    int `json:"growth"`
}

type UserStatsSummary struct {
	Total  int `json:"total"`
	Active int `json:"active"`
	Growth int `json:"growth"`
}

// UserStore is the user family of storage operations.
type UserStore interface {
	GetUser(id string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	AuthenticateUser(username, password string) (*models.User, error)
	CreateUser(input *UpsertUser) (*models.User, error)
	UpdateUser(id string, input *UpsertUser) (*models.User, error)
	UpsertUser(input *UpsertUser) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	UpdateUserLastLogin(id string) error
	DeleteUser(id string) error
}

// DestinationStore is the destination family of storage operations.
type DestinationStore interface {
	GetAllDestinations() ([]models.Destination, error)
	GetDestination(id uint) (*models.Destination, error)
	CreateDestination(d *models.Destination) error
	UpdateDestination(id uint, patch *DestinationPatch) (*models.Destination, error)
	DeleteDestination(id uint) error
	CheckImageURLExists(imageURL string, excludeID uint) (*models.Destination, error)
	GetDestinationsWithStats() ([]models.DestinationWithStats, error)
}

// BookingStore is the booking family of storage operations. Bookings are
// never physically deleted; cancellation is a status transition.
type BookingStore interface {
	CreateBooking(b *models.Booking) error
	GetUserBookings(userID string) ([]models.BookingWithDetails, error)
	GetAllBookings() ([]models.BookingWithDetails, error)
	GetBooking(id uint) (*models.BookingWithDetails, error)
	UpdateBooking(id uint, patch *models.Booking) (*models.Booking, error)
	CancelBooking(id uint) error
	CheckDuplicateBooking(userID string, destinationID uint, checkIn, checkOut string) (bool, error)
}

// ActivityLogStore appends and lists audit records.
type ActivityLogStore interface {
	CreateActivityLog(entry *models.ActivityLog) (*models.ActivityLog, error)
	GetActivityLogs(limit int) ([]models.ActivityLog, error)
}

// ReviewStore is the review family of storage operations.
type ReviewStore interface {
	GetDestinationReviews(destinationID uint) ([]models.ReviewWithUser, error)
	CreateReview(r *models.Review) error
	GetReviewStats(destinationID uint) (models.ReviewStats, error)
}

// AnalyticsStore computes the admin dashboard summaries.
type AnalyticsStore interface {
	GetRevenue() (RevenueSummary, error)
	GetBookingStats() (BookingStatsSummary, error)
	GetUserStats() (UserStatsSummary, error)
}
