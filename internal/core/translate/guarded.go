package translate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	coreerrors "github.com/lueurxax/tweet-classifier/internal/core/errors"
	"github.com/lueurxax/tweet-classifier/internal/platform/observability"
)

const (
	opDetect    = "detect"
	opTranslate = "translate"

	callStatusOK          = "ok"
	callStatusError       = "error"
	callStatusCircuitOpen = "circuit_open"

	rateLimiterBurst     = 5
	circuitHalfOpenCalls = 1
)

// GuardConfig bounds calls made to a backend.
type GuardConfig struct {
	Timeout          time.Duration
	RPS              float64
	FailureThreshold uint32
	OpenTimeout      time.Duration
}

// Guarded wraps a Service with a rate limiter, a per-call timeout and a circuit breaker.
type Guarded struct {
	next    Service
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	timeout time.Duration
	logger  *zerolog.Logger
}

// NewGuarded wraps next. A zero RPS disables rate limiting and a zero
// threshold trips the breaker after five consecutive failures.
func NewGuarded(next Service, cfg GuardConfig, logger *zerolog.Logger) *Guarded {
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}

	threshold := cfg.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}

	backend := next.Name()
	observability.TranslationCircuitState.WithLabelValues(backend).Set(float64(gobreaker.StateClosed))

	settings := gobreaker.Settings{
		Name:        backend,
		MaxRequests: circuitHalfOpenCalls,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			// A caller giving up is not a backend failure.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			observability.TranslationCircuitState.WithLabelValues(name).Set(float64(to))
			logger.Warn().
				Str("backend", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("translation circuit breaker state changed")
		},
	}

	return &Guarded{
		next:    next,
		limiter: rate.NewLimiter(limit, rateLimiterBurst),
		breaker: gobreaker.NewCircuitBreaker(settings),
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

// Name reports the wrapped backend.
func (g *Guarded) Name() string {
	return g.next.Name()
}

// State exposes the breaker state for readiness reporting.
func (g *Guarded) State() gobreaker.State {
	return g.breaker.State()
}

// Check fails while the circuit is open, so readiness reflects backend health.
func (g *Guarded) Check(_ context.Context) error {
	if g.breaker.State() == gobreaker.StateOpen {
		return fmt.Errorf("%s backend: %w", g.next.Name(), coreerrors.ErrCircuitBreakerOpen)
	}

	return nil
}

func (g *Guarded) Detect(ctx context.Context, text string) (string, error) {
	return g.call(ctx, opDetect, func(ctx context.Context) (string, error) {
		return g.next.Detect(ctx, text)
	})
}

func (g *Guarded) Translate(ctx context.Context, text, target string) (string, error) {
	return g.call(ctx, opTranslate, func(ctx context.Context) (string, error) {
		return g.next.Translate(ctx, text, target)
	})
}

func (g *Guarded) call(ctx context.Context, op string, fn func(context.Context) (string, error)) (string, error) {
	backend := g.next.Name()

	if err := g.limiter.Wait(ctx); err != nil {
		observability.TranslationCallsTotal.WithLabelValues(backend, op, callStatusError).Inc()
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	out, err := g.breaker.Execute(func() (interface{}, error) {
		callCtx := ctx
		if g.timeout > 0 {
			var cancel context.CancelFunc

			callCtx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}

		return fn(callCtx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			observability.TranslationCallsTotal.WithLabelValues(backend, op, callStatusCircuitOpen).Inc()
			return "", fmt.Errorf("%s %s: %w", backend, op, coreerrors.ErrCircuitBreakerOpen)
		}

		observability.TranslationCallsTotal.WithLabelValues(backend, op, callStatusError).Inc()
		g.logger.Debug().Err(err).Str("backend", backend).Str("op", op).Msg("translation backend call failed")

		return "", fmt.Errorf("%s %s: %w", backend, op, err)
	}

	observability.TranslationCallsTotal.WithLabelValues(backend, op, callStatusOK).Inc()

	text, _ := out.(string)

	return text, nil
}
