package models

import "time"

// ActivityLog is an append-only audit record. Rows are never updated or
// deleted once written.
type ActivityLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"column:user_id;size:36;index" json:"userId,omitempty"`
	Action     string    `gorm:"size:128" json:"action"`
	EntityType string    `gorm:"column:entity_type;size:64" json:"entityType,omitempty"`
	EntityID   string    `gorm:"column:entity_id;size:64" json:"entityId,omitempty"`
	Details    string    `gorm:"type:text" json:"details,omitempty"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}
