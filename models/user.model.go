package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a personnel account. NIP is the unique identifier used as the
// login username, formatted NN.NNNN.NN.
type User struct {
	gorm.Model
	Name      string     `json:"name" gorm:"not null"`
	NIP       string     `json:"nip" gorm:"column:nip;size:11;uniqueIndex;not null"`
	Password  string     `json:"-" gorm:"not null"`
	Role      string     `json:"role" gorm:"default:'user';not null"`
	Rank      string     `json:"rank"`
	Email     string     `json:"email"` // optional, used for account notifications only
	LastLogin *time.Time `json:"lastLogin"`
	Active    bool       `json:"active" gorm:"default:true;not null"`
}

// LoginRecord is appended on every successful login.
type LoginRecord struct {
	gorm.Model
	UserID    uint      `json:"userId" gorm:"index;not null"`
	IPAddress string    `json:"ipAddress"`
	Device    string    `json:"device"`
	Timestamp time.Time `json:"timestamp"`
}
