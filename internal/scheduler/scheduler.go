package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/services"
)

// pickupRefreshSpec runs the pickup flag recalculation nightly at midnight.
const pickupRefreshSpec = "0 0 * * *"

// Scheduler owns the background cron jobs.
type Scheduler struct {
	cron *cron.Cron
	db   *gorm.DB
}

// New builds the scheduler with its jobs registered but not started.
func New(db *gorm.DB) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(),
		db:   db,
	}

	_, err := s.cron.AddFunc(pickupRefreshSpec, s.refreshNeedsPickup)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Start launches the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Printf("Scheduler started, pickup refresh at %q", pickupRefreshSpec)
}

// Stop halts the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Scheduler stopped")
}

func (s *Scheduler) refreshNeedsPickup() {
	if _, err := services.RefreshNeedsPickup(s.db, time.Now()); err != nil {
		log.Printf("Pickup refresh failed: %v", err)
	}
}
