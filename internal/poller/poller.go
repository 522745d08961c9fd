// Package poller drives the support console's background refresh: while an
// agent has the console up, both queues and the unread-count badges are
// re-fetched on a fixed schedule.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/supportdesk-io/supportdesk-cli/internal/console"
)

// Poller schedules periodic console refreshes.
type Poller struct {
	console  *console.Console
	cron     *cron.Cron
	interval time.Duration
	logger   *zap.Logger

	startOnce sync.Once
	stopOnce  sync.Once
}

// New creates a poller refreshing every interval (default 30s).
func New(c *console.Console, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		console:  c,
		cron:     cron.New(),
		interval: interval,
		logger:   logger,
	}
}

// Start begins the schedule and stops it when ctx is cancelled. Start is
// idempotent.
func (p *Poller) Start(ctx context.Context) error {
	var err error
	p.startOnce.Do(func() {
		_, err = p.cron.AddFunc("@every "+p.interval.String(), func() {
			p.refresh(ctx)
		})
		if err != nil {
			return
		}
		p.cron.Start()
		go func() {
			<-ctx.Done()
			p.Stop()
		}()
	})
	return err
}

// Stop halts the schedule; running refreshes finish on their own.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		p.cron.Stop()
	})
}

func (p *Poller) refresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := p.console.RefreshQueues(ctx); err != nil {
		p.logger.Debug("background queue refresh failed", zap.Error(err))
		return
	}
	p.console.RefreshUnread(ctx)
}
