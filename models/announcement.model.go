package models

import (
	"time"

	"gorm.io/gorm"
)

type Announcement struct {
	gorm.Model
	Title      string     `json:"title" gorm:"not null"`
	Content    string     `json:"content" gorm:"not null"`
	Type       string     `json:"type" gorm:"default:'info';not null"` // 'info', 'warning', 'urgent', 'success'
	Priority   int        `json:"priority" gorm:"default:1;not null"`  // 1=low, 2=medium, 3=high
	CreatedBy  uint       `json:"createdBy"`
	ExpiresAt  *time.Time `json:"expiresAt"`
	Active     bool       `json:"active" gorm:"default:true;not null"`
	TargetRole string     `json:"targetRole"` // empty=all, 'user', 'admin'
}
