package services

import (
	"errors"
	"time"

	"travelex-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService is the gorm-backed BookingStore.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// CreateBooking inserts the booking as given; amounts are trusted from the
// caller. The duplicate re-check and the insert run in one transaction with
// the matching rows locked, so two concurrent checkouts for the same stay
// cannot both pass.
func (s *BookingService) CreateBooking(b *models.Booking) error {
	if b.Status == "" {
		b.Status = models.BookingStatusActive
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = models.PaymentStatusPending
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var existing []models.Booking
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND destination_id = ? AND check_in = ? AND check_out = ?",
				b.UserID, b.DestinationID, b.CheckIn, b.CheckOut).
			Find(&existing).Error
		if err != nil {
			return err
		}
		for _, row := range existing {
			if row.Status != models.BookingStatusCancelled {
				return ErrDuplicateBooking
			}
		}
		return tx.Create(b).Error
	})
}

func (s *BookingService) withDetails(rows []models.Booking) []models.BookingWithDetails {
	out := make([]models.BookingWithDetails, 0, len(rows))
	for _, row := range rows {
		detail := models.BookingWithDetails{
			Booking:     row,
			Destination: row.Destination,
			User:        row.User,
		}
		out = append(out, detail)
	}
	return out
}

func (s *BookingService) GetUserBookings(userID string) ([]models.BookingWithDetails, error) {
	var rows []models.Booking
	err := s.DB.
		InnerJoins("Destination").
		InnerJoins("User").
		Where("bookings.user_id = ?", userID).
		Order("bookings.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return s.withDetails(rows), nil
}

func (s *BookingService) GetAllBookings() ([]models.BookingWithDetails, error) {
	var rows []models.Booking
	err := s.DB.
		InnerJoins("Destination").
		InnerJoins("User").
		Order("bookings.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return s.withDetails(rows), nil
}

func (s *BookingService) GetBooking(id uint) (*models.BookingWithDetails, error) {
	var row models.Booking
	err := s.DB.
		InnerJoins("Destination").
		InnerJoins("User").
		First(&row, "bookings.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	detail := models.BookingWithDetails{
		Booking:     row,
		Destination: row.Destination,
		User:        row.User,
	}
	return &detail, nil
}

// UpdateBooking merges the non-zero fields of patch onto the stored row.
func (s *BookingService) UpdateBooking(id uint, patch *models.Booking) (*models.Booking, error) {
	patch.ID = 0
	patch.UpdatedAt = time.Now()
	res := s.DB.Model(&models.Booking{}).Where("id = ?", id).Updates(patch)
	if res.Error != nil {
		return nil, res.Error
	}

	var row models.Booking
	if err := s.DB.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// CancelBooking is the only "delete": a transition to cancelled.
func (s *BookingService) CancelBooking(id uint) error {
	return s.DB.Model(&models.Booking{}).Where("id = ?", id).
		Updates(map[string]any{
			"status":     models.BookingStatusCancelled,
			"updated_at": time.Now(),
		}).Error
}

// CheckDuplicateBooking reports whether a non-cancelled booking already
// exists for the exact (user, destination, check-in, check-out) tuple.
func (s *BookingService) CheckDuplicateBooking(userID string, destinationID uint, checkIn, checkOut string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Booking{}).
		Where("user_id = ? AND destination_id = ? AND check_in = ? AND check_out = ?",
			userID, destinationID, checkIn, checkOut).
		Where("status <> ?", models.BookingStatusCancelled).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
