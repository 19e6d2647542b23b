package models

import (
	"time"
)

type Destination struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"size:255" json:"name"`
	Country       string `gorm:"size:255" json:"country"`
	Description   string `gorm:"type:text" json:"description"`
	Price         string `gorm:"type:decimal(10,2)" json:"price"`
	OriginalPrice string `gorm:"column:original_price;type:decimal(10,2)" json:"originalPrice,omitempty"`
	Duration      int    `json:"duration"` // days
	MaxGuests     int    `gorm:"column:max_guests" json:"maxGuests"`
	Rating        string `gorm:"type:decimal(3,1)" json:"rating,omitempty"`

	// Unique index backs the "one destination per image" rule so a
	// concurrent insert can't slip between check and write.
	ImageURL string `gorm:"column:image_url;size:512;uniqueIndex" json:"imageUrl,omitempty"`
	IsActive bool   `gorm:"column:is_active;default:true" json:"isActive"`

	// Promotional attributes, each independently optional.
	PromoTag           string     `gorm:"column:promo_tag;size:64" json:"promoTag,omitempty"`
	DiscountPercentage int        `gorm:"column:discount_percentage;default:0" json:"discountPercentage,omitempty"`
	PromoExpiry        *time.Time `gorm:"column:promo_expiry" json:"promoExpiry,omitempty"`
	SeasonalTag        string     `gorm:"column:seasonal_tag;size:64" json:"seasonalTag,omitempty"`
	FlashSale          bool       `gorm:"column:flash_sale;default:false" json:"flashSale"`
	FlashSaleEnd       *time.Time `gorm:"column:flash_sale_end" json:"flashSaleEnd,omitempty"`
	CouponCode         string     `gorm:"column:coupon_code;size:64" json:"couponCode,omitempty"`
	DiscountType       string     `gorm:"column:discount_type;size:32" json:"discountType,omitempty"`
	GroupDiscountMin   int        `gorm:"column:group_discount_min;default:0" json:"groupDiscountMin,omitempty"`
	LoyaltyDiscount    int        `gorm:"column:loyalty_discount;default:0" json:"loyaltyDiscount,omitempty"`
	BundleDeal         string     `gorm:"column:bundle_deal;size:255" json:"bundleDeal,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasActivePromo reports whether any of the promotional fields is set.
func (d Destination) HasActivePromo() bool {
	return d.PromoTag != "" ||
		d.DiscountPercentage > 0 ||
		d.SeasonalTag != "" ||
		d.FlashSale ||
		d.CouponCode != "" ||
		d.GroupDiscountMin > 0 ||
		d.LoyaltyDiscount > 0 ||
		d.BundleDeal != ""
}

// DestinationWithStats decorates a destination with booking aggregates.
type DestinationWithStats struct {
	Destination
	BookingCount int    `json:"bookingCount"`
	Revenue      string `json:"revenue"`
}
