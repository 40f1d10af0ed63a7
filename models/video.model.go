package models

import (
	"time"

	"gorm.io/gorm"
)

// Video metadata. Filename is server-generated on upload and immutable
// afterwards; the binary lives under uploads/videos.
type Video struct {
	gorm.Model
	Title               string `json:"title" gorm:"not null"`
	Description         string `json:"description"`
	Filename            string `json:"filename" gorm:"not null"`
	Duration            int    `json:"duration" gorm:"not null"` // seconds
	CategoryID          *uint  `json:"categoryId" gorm:"index"`
	RequiresCertificate bool   `json:"requiresCertificate" gorm:"default:false;not null"`
	UploadedBy          uint   `json:"uploadedBy"`
	Active              bool   `json:"active" gorm:"default:true;not null"`
}

// VideoView is one telemetry sample of elapsed watched seconds. Append-only,
// many rows per (user, video) pair; never deduplicated.
type VideoView struct {
	gorm.Model
	UserID   uint      `json:"userId" gorm:"index;not null"`
	VideoID  uint      `json:"videoId" gorm:"index;not null"`
	Duration int       `json:"duration" gorm:"not null"` // seconds watched
	ViewedAt time.Time `json:"viewedAt"`
}

// VideoCompletion records that a user finished a video. The composite unique
// index makes the storage layer the authoritative idempotency guard: a
// concurrent duplicate insert fails with gorm.ErrDuplicatedKey.
type VideoCompletion struct {
	gorm.Model
	UserID            uint      `json:"userId" gorm:"uniqueIndex:idx_completions_user_video;not null"`
	VideoID           uint      `json:"videoId" gorm:"uniqueIndex:idx_completions_user_video;not null"`
	CompletedAt       time.Time `json:"completedAt"`
	Progress          int       `json:"progress" gorm:"default:100;not null"` // percentage
	CertificateIssued bool      `json:"certificateIssued" gorm:"default:false;not null"`
}
