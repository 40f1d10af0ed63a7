package models

import (
	"time"

	"gorm.io/gorm"
)

type Document struct {
	gorm.Model
	Title         string `json:"title" gorm:"not null"`
	Description   string `json:"description"`
	Filename      string `json:"filename" gorm:"not null"`
	FileType      string `json:"fileType" gorm:"not null"` // 'pdf', 'doc', 'docx', etc.
	FileSize      int64  `json:"fileSize" gorm:"not null"` // bytes
	CategoryID    *uint  `json:"categoryId" gorm:"index"`
	UploadedBy    uint   `json:"uploadedBy"`
	Active        bool   `json:"active" gorm:"default:true;not null"`
	DownloadCount int    `json:"downloadCount" gorm:"default:0;not null"`
}

type DocumentView struct {
	gorm.Model
	UserID     uint      `json:"userId" gorm:"index;not null"`
	DocumentID uint      `json:"documentId" gorm:"index;not null"`
	ViewedAt   time.Time `json:"viewedAt"`
	Downloaded bool      `json:"downloaded" gorm:"default:false;not null"`
}
