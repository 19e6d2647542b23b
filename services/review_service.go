package services

import (
	"travelex-backend/models"

	"gorm.io/gorm"
)

// ReviewService is the gorm-backed ReviewStore.
type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

func (s *ReviewService) GetDestinationReviews(destinationID uint) ([]models.ReviewWithUser, error) {
	var rows []models.Review
	err := s.DB.
		InnerJoins("User").
		Where("reviews.destination_id = ?", destinationID).
		Order("reviews.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]models.ReviewWithUser, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.ReviewWithUser{Review: row, User: row.User})
	}
	return out, nil
}

func (s *ReviewService) CreateReview(r *models.Review) error {
	return s.DB.Create(r).Error
}

// GetReviewStats returns the average rating rounded to one decimal plus the
// review count, zero for destinations without reviews.
func (s *ReviewService) GetReviewStats(destinationID uint) (models.ReviewStats, error) {
	var row struct {
		AverageRating *float64
		TotalReviews  int
	}
	err := s.DB.Model(&models.Review{}).
		Select("ROUND(AVG(rating), 1) AS average_rating, COUNT(id) AS total_reviews").
		Where("destination_id = ?", destinationID).
		Scan(&row).Error
	if err != nil {
		return models.ReviewStats{}, err
	}
	stats := models.ReviewStats{TotalReviews: row.TotalReviews}
	if row.AverageRating != nil {
		stats.AverageRating = *row.AverageRating
	}
	return stats, nil
}
