package utils

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"lms/database"
	"lms/models"
	"lms/session"
)

// StartScheduler wires the recurring jobs: lifting expired 24h blocks,
// rotating the daily tip and sweeping stale in-memory sessions.
func StartScheduler() *cron.Cron {
	c := cron.New()

	// Expired temporary blocks are cleared every 10 minutes.
	c.AddFunc("*/10 * * * *", func() {
		now := time.Now()
		result := database.Database.Db.
			Model(&models.User{}).
			Where("block_until IS NOT NULL AND block_until <= ?", now).
			Updates(map[string]interface{}{"block_until": nil})
		if result.Error != nil {
			log.Printf("[SCHEDULER] Failed to clear expired blocks: %v", result.Error)
		} else if result.RowsAffected > 0 {
			log.Printf("[SCHEDULER] Cleared %d expired user block(s)", result.RowsAffected)
		}
	})

	// Tip of the day rotates at midnight.
	c.AddFunc("0 0 * * *", func() {
		RotateTip()
	})

	// Edit and learner sessions idle for over 12 hours are dropped.
	c.AddFunc("0 * * * *", func() {
		removed := session.Sessions.SweepExpired(12 * time.Hour)
		if removed > 0 {
			log.Printf("[SCHEDULER] Swept %d stale session(s)", removed)
		}
	})

	c.Start()
	log.Println("Scheduler started.")
	return c
}
