package utils

import (
	"log"
	"time"
	"tms/database"
	"tms/models"

	"github.com/robfig/cron/v3"
)

// InitializeAnnouncementScheduler sets up the daily announcement expiry sweep
func InitializeAnnouncementScheduler() {
	log.Println("[ANNOUNCEMENT-SCHEDULER] Initializing announcement scheduler...")

	c := cron.New()

	// Run daily at midnight to deactivate expired announcements
	c.AddFunc("0 0 * * *", func() {
		log.Println("[ANNOUNCEMENT-SCHEDULER] Running daily expiry sweep...")
		ExpireAnnouncements()
	})

	c.Start()
	log.Println("[ANNOUNCEMENT-SCHEDULER] Announcement scheduler started - runs daily at midnight")
}

// ExpireAnnouncements deactivates announcements whose expiry has passed.
func ExpireAnnouncements() {
	db := database.Database.Db

	result := db.Model(&models.Announcement{}).
		Where("active = ? AND expires_at IS NOT NULL AND expires_at < ?", true, time.Now()).
		Update("active", false)
	if result.Error != nil {
		log.Printf("[ANNOUNCEMENT-SCHEDULER] Error expiring announcements: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[ANNOUNCEMENT-SCHEDULER] Deactivated %d expired announcements", result.RowsAffected)
	}
}
