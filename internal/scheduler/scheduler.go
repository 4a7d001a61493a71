// Package scheduler runs the daily reminder job.
package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

type DailyScheduler struct {
	scheduler *gocron.Scheduler
}

// New builds a scheduler in the given location. SingletonMode keeps a slow
// sweep from overlapping with the next day's run.
func New(loc *time.Location) *DailyScheduler {
	if loc == nil {
		loc = time.Local
	}
	s := gocron.NewScheduler(loc)
	s.SingletonModeAll()
	return &DailyScheduler{scheduler: s}
}

// AddDailyJob registers task to run every day at the given HH:MM.
func (s *DailyScheduler) AddDailyJob(at string, task func()) error {
	_, err := s.scheduler.Every(1).Day().At(at).Do(func() {
		start := time.Now()
		task()
		log.Printf("[scheduler] daily job done took=%s", time.Since(start).Truncate(time.Millisecond))
	})
	return err
}

func (s *DailyScheduler) Start() {
	s.scheduler.StartAsync()
	log.Printf("[scheduler] started")
}

func (s *DailyScheduler) Stop() {
	s.scheduler.Stop()
	log.Printf("[scheduler] stopped")
}
