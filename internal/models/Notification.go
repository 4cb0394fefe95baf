// internal/models/notification.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type Notification struct {
	gorm.Model
	UserID uint       `json:"user_id" gorm:"index"`
	Kind   string     `json:"kind"` // "dispatch"
	Title  string     `json:"title"`
	Body   string     `json:"body"`
	ReadAt *time.Time `json:"read_at"`
}
