package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	BookingStatusActive    = "active"
	BookingStatusCancelled = "cancelled"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

type Booking struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	UserID        string `gorm:"column:user_id;size:36;index" json:"userId"`
	DestinationID uint   `gorm:"column:destination_id;index" json:"destinationId"`

	// Stay dates kept as plain YYYY-MM-DD strings; the duplicate-booking
	// rule compares the exact stored tuple. varchar, not DATE: with
	// parseTime=True a DATE column would read back as RFC3339 text.
	CheckIn  string `gorm:"column:check_in;type:varchar(10)" json:"checkIn"`
	CheckOut string `gorm:"column:check_out;type:varchar(10)" json:"checkOut"`

	Guests      int            `gorm:"default:1" json:"guests"`
	TravelClass string         `gorm:"column:travel_class;size:64" json:"travelClass,omitempty"`
	Upgrades    datatypes.JSON `json:"upgrades,omitempty"`

	TotalAmount    string `gorm:"column:total_amount;type:decimal(10,2)" json:"totalAmount"`
	OriginalAmount string `gorm:"column:original_amount;type:decimal(10,2)" json:"originalAmount,omitempty"`

	AppliedCouponCode string `gorm:"column:applied_coupon_code;size:64" json:"appliedCouponCode,omitempty"`
	CouponDiscount    string `gorm:"column:coupon_discount;type:decimal(10,2)" json:"couponDiscount,omitempty"`

	Status                string `gorm:"size:32;default:active" json:"status"`
	PaymentStatus         string `gorm:"column:payment_status;size:32;default:pending" json:"paymentStatus"`
	StripePaymentIntentID string `gorm:"column:stripe_payment_intent_id;size:255" json:"stripePaymentIntentId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Destination Destination `gorm:"foreignKey:DestinationID;references:ID" json:"-"`
	User        User        `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

// BookingWithDetails is a booking joined with its destination and user,
// the shape the listing endpoints return.
type BookingWithDetails struct {
	Booking
	Destination Destination `json:"destination"`
	User        User        `json:"user"`
}
