package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/raulmendoza21/Asistente-Universidad-Personal/internal/core"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/log"
	"github.com/raulmendoza21/Asistente-Universidad-Personal/pkg/retry"
)

const (
	defaultBreakerMaxFailures uint32 = 5
	defaultBreakerTimeout            = 30 * time.Second
	defaultBreakerInterval           = 60 * time.Second
)

type ResilientConfig struct {
	Name        string
	MaxRetries  int
	MaxFailures uint32
	Timeout     time.Duration
	// Retry overrides the backoff schedule. MaxRetries still applies.
	Retry *retry.Config
}

// Resilient retries transient model failures and stops calling a model
// server that keeps failing.
type Resilient struct {
	inner   core.AIProvider
	breaker *gobreaker.CircuitBreaker[core.Message]
	retrier *retry.Retrier
}

func NewResilient(ctx context.Context, inner core.AIProvider, cfg ResilientConfig) *Resilient {
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = defaultBreakerMaxFailures
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultBreakerTimeout
	}

	logger := log.FromCtx(ctx)
	breaker := gobreaker.NewCircuitBreaker[core.Message](gobreaker.Settings{
		Name:        "llm:" + cfg.Name,
		MaxRequests: 1,
		Interval:    defaultBreakerInterval,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
		// Client errors say nothing about the server's health.
		IsSuccessful: func(err error) bool {
			return err == nil || !isTransient(err)
		},
	})

	rc := retry.NewDefaultConfig()
	if cfg.Retry != nil {
		c := *cfg.Retry
		rc = &c
	}
	rc.MaxRetries = max(cfg.MaxRetries, 0)
	rc.Retryable = isTransient

	return &Resilient{
		inner:   inner,
		breaker: breaker,
		retrier: retry.NewRetrier(rc),
	}
}

func (r *Resilient) Chat(ctx context.Context, req core.ChatRequest) (core.Message, error) {
	var msg core.Message
	err := r.retrier.Do(ctx, func() error {
		var err error
		msg, err = r.breaker.Execute(func() (core.Message, error) {
			return r.inner.Chat(ctx, req)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return retry.Permanent(fmt.Errorf("circuit open: %w", err))
		}
		return err
	})
	if err != nil {
		return core.Message{}, err
	}
	return msg, nil
}

func (r *Resilient) Models(ctx context.Context) ([]core.Model, error) {
	lister, ok := r.inner.(core.ModelLister)
	if !ok {
		return nil, fmt.Errorf("model listing not supported")
	}
	return lister.Models(ctx)
}

func (r *Resilient) State() gobreaker.State {
	return r.breaker.State()
}

// isTransient reports whether a failed model call is worth repeating.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return true
}
