package services

import (
	"errors"
	"time"

	"travelex-backend/models"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// DestinationService is the gorm-backed DestinationStore.
type DestinationService struct {
	DB *gorm.DB
}

func NewDestinationService(db *gorm.DB) *DestinationService {
	return &DestinationService{DB: db}
}

func isDuplicateEntryError(err error) bool {
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1062
	}
	return false
}

// GetAllDestinations lists the public catalog: active rows only, best-rated
// first.
func (s *DestinationService) GetAllDestinations() ([]models.Destination, error) {
	var list []models.Destination
	err := s.DB.Where("is_active = ?", true).Order("rating DESC").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *DestinationService) GetDestination(id uint) (*models.Destination, error) {
	var d models.Destination
	if err := s.DB.First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// imageConflict resolves the holder of imageURL so the error can name it.
func (s *DestinationService) imageConflict(imageURL string, excludeID uint) error {
	holder, err := s.CheckImageURLExists(imageURL, excludeID)
	if err != nil {
		return err
	}
	if holder != nil {
		return &ImageURLConflictError{Name: holder.Name}
	}
	return nil
}

// CreateDestination inserts a catalog entry. The image_url unique index is
// the authority on uniqueness; a duplicate-entry error from the driver is
// translated into a conflict naming the holder.
func (s *DestinationService) CreateDestination(d *models.Destination) error {
	if d.ImageURL != "" {
		if err := s.imageConflict(d.ImageURL, 0); err != nil {
			return err
		}
	}
	if err := s.DB.Create(d).Error; err != nil {
		if isDuplicateEntryError(err) && d.ImageURL != "" {
			if cerr := s.imageConflict(d.ImageURL, 0); cerr != nil {
				return cerr
			}
		}
		return err
	}
	return nil
}

// destinationUpdates builds the column map from the set fields of patch.
// Nil fields are absent, so false and zero get written like any other value.
func destinationUpdates(patch *DestinationPatch) map[string]any {
	updates := map[string]any{"updated_at": time.Now()}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Country != nil {
		updates["country"] = *patch.Country
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.OriginalPrice != nil {
		updates["original_price"] = *patch.OriginalPrice
	}
	if patch.Duration != nil {
		updates["duration"] = *patch.Duration
	}
	if patch.MaxGuests != nil {
		updates["max_guests"] = *patch.MaxGuests
	}
	if patch.Rating != nil {
		updates["rating"] = *patch.Rating
	}
	if patch.ImageURL != nil {
		updates["image_url"] = *patch.ImageURL
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}
	if patch.PromoTag != nil {
		updates["promo_tag"] = *patch.PromoTag
	}
	if patch.DiscountPercentage != nil {
		updates["discount_percentage"] = *patch.DiscountPercentage
	}
	if patch.PromoExpiry != nil {
		updates["promo_expiry"] = *patch.PromoExpiry
	}
	if patch.SeasonalTag != nil {
		updates["seasonal_tag"] = *patch.SeasonalTag
	}
	if patch.FlashSale != nil {
		updates["flash_sale"] = *patch.FlashSale
	}
	if patch.FlashSaleEnd != nil {
		updates["flash_sale_end"] = *patch.FlashSaleEnd
	}
	if patch.CouponCode != nil {
		updates["coupon_code"] = *patch.CouponCode
	}
	if patch.DiscountType != nil {
		updates["discount_type"] = *patch.DiscountType
	}
	if patch.GroupDiscountMin != nil {
		updates["group_discount_min"] = *patch.GroupDiscountMin
	}
	if patch.LoyaltyDiscount != nil {
		updates["loyalty_discount"] = *patch.LoyaltyDiscount
	}
	if patch.BundleDeal != nil {
		updates["bundle_deal"] = *patch.BundleDeal
	}
	return updates
}

func (s *DestinationService) UpdateDestination(id uint, patch *DestinationPatch) (*models.Destination, error) {
	if patch.ImageURL != nil && *patch.ImageURL != "" {
		if err := s.imageConflict(*patch.ImageURL, id); err != nil {
			return nil, err
		}
	}

	res := s.DB.Model(&models.Destination{}).Where("id = ?", id).Updates(destinationUpdates(patch))
	if res.Error != nil {
		if isDuplicateEntryError(res.Error) && patch.ImageURL != nil {
			if cerr := s.imageConflict(*patch.ImageURL, id); cerr != nil {
				return nil, cerr
			}
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// updated_at is always in the map, so zero rows means the id is gone.
		var count int64
		s.DB.Model(&models.Destination{}).Where("id = ?", id).Count(&count)
		if count == 0 {
			return nil, ErrNotFound
		}
	}
	return s.GetDestination(id)
}

func (s *DestinationService) DeleteDestination(id uint) error {
	return s.DB.Delete(&models.Destination{}, id).Error
}

// CheckImageURLExists returns the destination currently holding imageURL,
// or nil when it is free. excludeID skips the row being updated.
func (s *DestinationService) CheckImageURLExists(imageURL string, excludeID uint) (*models.Destination, error) {
	q := s.DB.Where("image_url = ?", imageURL)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var d models.Destination
	if err := q.First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

type bookingAggregate struct {
	DestinationID uint
	BookingCount  int
	Revenue       string
}

// GetDestinationsWithStats merges booking count and summed revenue onto
// every destination, active or not. Destinations without bookings report
// zero.
func (s *DestinationService) GetDestinationsWithStats() ([]models.DestinationWithStats, error) {
	var all []models.Destination
	if err := s.DB.Find(&all).Error; err != nil {
		return nil, err
	}

	var aggs []bookingAggregate
	err := s.DB.Model(&models.Booking{}).
		Select("destination_id, COUNT(*) AS booking_count, COALESCE(SUM(total_amount), 0) AS revenue").
		Group("destination_id").
		Scan(&aggs).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]bookingAggregate, len(aggs))
	for _, a := range aggs {
		byID[a.DestinationID] = a
	}

	out := make([]models.DestinationWithStats, 0, len(all))
	for _, d := range all {
		stats := models.DestinationWithStats{Destination: d, Revenue: "0"}
		if a, ok := byID[d.ID]; ok {
			stats.BookingCount = a.BookingCount
			stats.Revenue = a.Revenue
		}
		out = append(out, stats)
	}
	return out, nil
}
