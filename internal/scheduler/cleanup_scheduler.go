package scheduler

import (
	"context"
	"sync"
	"time"

	"pdf-summarizer-be/internal/pkg/logger"
	"pdf-summarizer-be/internal/service"
)

// NextRun returns the next occurrence of hour:minute in now's location, today if it is
// still ahead, tomorrow otherwise.
func NextRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// CleanupScheduler runs the retention job once a day in its own goroutine.
type CleanupScheduler struct {
	cleanup       service.ICleanupService
	logger        logger.ILogger
	hour, minute  int
	retentionDays int
	now           func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewCleanupScheduler(cleanup service.ICleanupService, hour, minute, retentionDays int, log logger.ILogger) *CleanupScheduler {
	return &CleanupScheduler{
		cleanup:       cleanup,
		logger:        log,
		hour:          hour,
		minute:        minute,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// Start launches the loop. Calling it twice is a no-op.
func (s *CleanupScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	s.logger.Info("SCHEDULER", "Cleanup scheduler started", map[string]interface{}{
		"hour":           s.hour,
		"minute":         s.minute,
		"retention_days": s.retentionDays,
	})
	go s.loop(ctx, s.done)
}

// Stop cancels the loop and waits for an in-flight run to return.
func (s *CleanupScheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Info("SCHEDULER", "Cleanup scheduler stopped", nil)
}

func (s *CleanupScheduler) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		now := s.now()
		next := NextRun(now, s.hour, s.minute)
		timer := time.NewTimer(next.Sub(now))
		s.logger.Debug("SCHEDULER", "Next cleanup scheduled", map[string]interface{}{"at": next.Format(time.RFC3339)})

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.runOnce(ctx)
		}
	}
}

func (s *CleanupScheduler) runOnce(ctx context.Context) {
	if _, err := s.cleanup.RunCleanup(ctx, s.now(), s.retentionDays); err != nil {
		s.logger.Error("SCHEDULER", "Scheduled cleanup failed", map[string]interface{}{"error": err.Error()})
	}
}
