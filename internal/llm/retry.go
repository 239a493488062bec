package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/abhisek/wikiquiz/internal/config"
)

// RetryProvider retries failed quiz generations according to the retry
// class of each error.
type RetryProvider struct {
	inner Provider
	cfg   config.RetryConfig
}

// WithRetry wraps p. MaxAttempts below 1 means a single attempt and a
// non-positive Multiplier doubles the wait each time.
func WithRetry(p Provider, cfg config.RetryConfig) Provider {
	cfg.MaxAttempts = max(cfg.MaxAttempts, 1)
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = 2
	}
	return &RetryProvider{inner: p, cfg: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	sched := schedule{next: r.cfg.InitialWait, cfg: r.cfg}
	usedOnce := false

	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt == r.cfg.MaxAttempts {
			return nil, err
		}

		switch classify(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			if usedOnce {
				return nil, err
			}
			usedOnce = true
		}

		wait := sched.advance()
		var rl *ErrRateLimit
		if errors.As(err, &rl) && rl.RetryAfter > 0 {
			wait = rl.RetryAfter
		}

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// schedule yields exponentially growing waits capped at MaxWait, each with
// up to 20% jitter either way.
type schedule struct {
	next time.Duration
	cfg  config.RetryConfig
}

func (s *schedule) advance() time.Duration {
	base := s.next
	if s.cfg.MaxWait > 0 {
		base = min(base, s.cfg.MaxWait)
	}
	s.next = time.Duration(float64(base) * s.cfg.Multiplier)

	if base <= 0 {
		return 0
	}
	spread := int64(base) / 5
	if spread == 0 {
		return base
	}
	return base + time.Duration(rand.Int64N(2*spread+1)-spread)
}
