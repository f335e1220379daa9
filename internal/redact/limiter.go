package redact

import (
	"context"

	"golang.org/x/time/rate"
)

// LineLimiter throttles the line-buffered streaming mode (spec.md §9): a
// caller reading very large streams and calling Sanitize per line can use
// this to bound how fast it feeds lines into the engine, independent of the
// engine's own CPU-bound, non-cancellable nature.
type LineLimiter struct {
	limiter *rate.Limiter
}

// NewLineLimiter returns a LineLimiter allowing linesPerSecond lines
// through on average, with burst as the maximum instantaneous batch.
func NewLineLimiter(linesPerSecond float64, burst int) *LineLimiter {
	return &LineLimiter{limiter: rate.NewLimiter(rate.Limit(linesPerSecond), burst)}
}

// Wait blocks until the next line is permitted to proceed, or ctx is
// cancelled.
func (l *LineLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a line may proceed right now, without blocking.
func (l *LineLimiter) Allow() bool {
	return l.limiter.Allow()
}
