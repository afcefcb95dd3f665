package models

import "time"

// Entity represents a government body that can receive complaints.
// Inactive entities disappear from selection lists but keep their history,
// so rows are deactivated rather than deleted.
type Entity struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex;not null" json:"name"`
	Type         string    `json:"type"`
	ContactEmail string    `json:"contact_email,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}
