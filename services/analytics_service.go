package services

import (
	"fmt"
	"time"

	"travelex-backend/models"

	"gorm.io/gorm"
)

// AnalyticsService computes the admin dashboard summaries from the live
// bookings and users tables.
type AnalyticsService struct {
	DB *gorm.DB

	// now is swappable for tests.
	now func() time.Time
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{DB: db, now: time.Now}
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func growthPercent(current, previous int64) int {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return int(float64(current-previous) / float64(previous) * 100)
}

// GetRevenue sums total_amount over non-cancelled bookings and reports the
// month-over-month trend.
func (s *AnalyticsService) GetRevenue() (RevenueSummary, error) {
	var total float64
	err := s.DB.Model(&models.Booking{}).
		Where("status <> ?", models.BookingStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	if err != nil {
		return RevenueSummary{}, err
	}

	thisMonth := monthStart(s.now())
	lastMonth := thisMonth.AddDate(0, -1, 0)

	var current, previous float64
	err = s.DB.Model(&models.Booking{}).
		Where("status <> ? AND created_at >= ?", models.BookingStatusCancelled, thisMonth).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&current).Error
	if err != nil {
		return RevenueSummary{}, err
	}
	err = s.DB.Model(&models.Booking{}).
		Where("status <> ? AND created_at >= ? AND created_at < ?",
			models.BookingStatusCancelled, lastMonth, thisMonth).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&previous).Error
	if err != nil {
		return RevenueSummary{}, err
	}

	growth := growthPercent(int64(current), int64(previous))
	return RevenueSummary{
		Total:  fmt.Sprintf("%.2f", total),
		Period: fmt.Sprintf("%+d%% from last month", growth),
	}, nil
}

func (s *AnalyticsService) GetBookingStats() (BookingStatsSummary, error) {
	thisMonth := monthStart(s.now())
	lastMonth := thisMonth.AddDate(0, -1, 0)

	var total, current, previous int64
	if err := s.DB.Model(&models.Booking{}).Count(&total).Error; err != nil {
		return BookingStatsSummary{}, err
	}
	if err := s.DB.Model(&models.Booking{}).
		Where("created_at >= ?", thisMonth).Count(&current).Error; err != nil {
		return BookingStatsSummary{}, err
	}
	if err := s.DB.Model(&models.Booking{}).
		Where("created_at >= ? AND created_at < ?", lastMonth, thisMonth).
		Count(&previous).Error; err != nil {
		return BookingStatsSummary{}, err
	}

	return BookingStatsSummary{
		Total:     int(total),
		ThisMonth: int(current),
		Growth:    growthPercent(current, previous),
	}, nil
}

// GetUserStats counts all users, those seen in the last 30 days, and the
// month-over-month signup trend.
func (s *AnalyticsService) GetUserStats() (UserStatsSummary, error) {
	now := s.now()
	thisMonth := monthStart(now)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	var total, active, current, previous int64
	if err := s.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		return UserStatsSummary{}, err
	}
	if err := s.DB.Model(&models.User{}).
		Where("last_login_at >= ?", now.AddDate(0, 0, -30)).
		Count(&active).Error; err != nil {
		return UserStatsSummary{}, err
	}
	if err := s.DB.Model(&models.User{}).
		Where("created_at >= ?", thisMonth).Count(&current).Error; err != nil {
		return UserStatsSummary{}, err
	}
	if err := s.DB.Model(&models.User{}).
		Where("created_at >= ? AND created_at < ?", lastMonth, thisMonth).
		Count(&previous).Error; err != nil {
		return UserStatsSummary{}, err
	}

	return UserStatsSummary{
		Total:  int(total),
		Active: int(active),
		Growth: growthPercent(current, previous),
	}, nil
}
