package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// StatusPoller refreshes the connection status on a fixed interval
type StatusPoller struct {
	session  *Session
	interval time.Duration
	logger   *zap.SugaredLogger
	wg       sync.WaitGroup
}

// NewStatusPoller creates a poller. A non-positive interval means one minute.
func NewStatusPoller(s *Session, interval time.Duration, logger *zap.SugaredLogger) *StatusPoller {
	if interval <= 0 {
		interval = time.Minute
	}
	return &StatusPoller{session: s, interval: interval, logger: logger.Named("status")}
}

// Run polls until ctx is cancelled. The first check runs immediately.
func (p *StatusPoller) Run(ctx context.Context) error {
	p.wg.Add(1)
	defer p.wg.Done()

	p.check(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Infow("Started status polling", "interval", p.interval)
	for {
		select {
		case <-ctx.Done():
			p.logger.Infow("Stopping status polling")
			return nil
		case <-ticker.C:
			p.check(ctx)
		}
	}
}

// Wait blocks until Run has returned
func (p *StatusPoller) Wait() {
	p.wg.Wait()
}

func (p *StatusPoller) check(ctx context.Context) {
	cctx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()
	st := p.session.RefreshStatus(cctx)
	p.logger.Debugw("Status checked", "connected", st.Connected, "url", st.GremlinURL)
}
