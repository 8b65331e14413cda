package services

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// pacer spaces actor invocations: a token bucket between units and an extra
// fixed pause whenever the batch index changes. It is used from one goroutine.
type pacer struct {
	limiter    *rate.Limiter
	batchPause time.Duration
	lastBatch  int
	started    bool
}

func newPacer(unitPause, batchPause time.Duration) *pacer {
	limit := rate.Inf
	if unitPause > 0 {
		limit = rate.Every(unitPause)
	}
	return &pacer{limiter: rate.NewLimiter(limit, 1), batchPause: batchPause}
}

func (p *pacer) wait(ctx context.Context, batch int) error {
	if p.started && batch != p.lastBatch && p.batchPause > 0 {
		timer := time.NewTimer(p.batchPause)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	p.started = true
	p.lastBatch = batch
	return p.limiter.Wait(ctx)
}
