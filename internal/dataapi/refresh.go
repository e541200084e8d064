package dataapi

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// ScheduleInvalidation starts a cron schedule that drops every cached
// collection on each tick. The next request after a tick refetches. The
// caller owns the returned scheduler and must Stop it.
func ScheduleInvalidation(c *CachedSource, spec string, logger *log.Logger) (*cron.Cron, error) {
	if logger == nil {
		logger = log.Default()
	}
	sched := cron.New()
	if _, err := sched.AddFunc(spec, func() {
		n := c.Len()
		c.Invalidate()
		logger.Printf("cache: dropped %d cached collections", n)
	}); err != nil {
		return nil, fmt.Errorf("add cache refresh schedule %q: %w", spec, err)
	}
	sched.Start()
	return sched, nil
}
