package reminder

import (
	"fmt"
	"time"

	"github.com/khrees2412/takecare-ats/internal/logger"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the SR follow-up check on a cron schedule
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers check under spec, a six-field cron expression
// with seconds
func NewScheduler(spec string, loc *time.Location, check func()) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithSeconds(),
	)

	if _, err := c.AddFunc(spec, check); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	return &Scheduler{cron: c}, nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting SR reminder scheduler", "entries", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop waits for a running check to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("SR reminder scheduler stopped")
}

// Next reports when the check will next run
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
