package models

import (
	"time"
)

// Base is embedded by every inventory entity. Identifiers are autoincrement
// integers assigned by the storage engine on create.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
