package models

import "time"

type Review struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	DestinationID uint       `gorm:"column:destination_id;index" json:"destinationId"`
	UserID        string     `gorm:"column:user_id;size:36;index" json:"userId"`
	Rating        int        `json:"rating"`
	Title         string     `gorm:"size:255" json:"title,omitempty"`
	Comment       string     `gorm:"type:text" json:"comment,omitempty"`
	TripDate      *time.Time `gorm:"column:trip_date" json:"tripDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	User        User        `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Destination Destination `gorm:"foreignKey:DestinationID;references:ID" json:"-"`
}

// ReviewWithUser pairs a review with its author for listing.
type ReviewWithUser struct {
	Review
	User User `json:"user"`
}

// ReviewStats summarizes ratings for one destination.
type ReviewStats struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}
