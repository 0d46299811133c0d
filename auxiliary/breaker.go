// Package auxiliary holds the clients for external collaborators that
// sit outside the core venue feed: Coinalyze, Deribit, and
// Coinmarketcap. Every request here goes through a circuit breaker,
// unlike the core session and venue clients, which retry instead.
package auxiliary

import (
	"context"
	"encoding/json"

	"github.com/sony/gobreaker"

	"marketfeed/errs"
	"marketfeed/httpclient"
)

// Breaker wraps an httpclient.Client's Request calls in a circuit
// breaker: three consecutive failures, or a failure rate above 5% once
// at least 20 requests have been seen, opens the circuit for 60s.
type Breaker struct {
	client *httpclient.Client
	cb     *gobreaker.CircuitBreaker
}

func NewBreaker(name string, client *httpclient.Client) *Breaker {
	settings := gobreaker.Settings{
		Name: name,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= 3 {
				return true
			}
			if counts.Requests < 20 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) > 0.05
		},
	}
	return &Breaker{client: client, cb: gobreaker.NewCircuitBreaker(settings)}
}

// Request issues client.Request through the breaker; an open circuit
// surfaces as errs.APIFailure with status 0 rather than reaching the wire.
func (b *Breaker) Request(ctx context.Context, path string, opts httpclient.Options) (json.RawMessage, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.client.Request(ctx, path, opts)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, errs.NewAPIFailure(b.client.Venue, 0, "circuit breaker open: "+err.Error())
		}
		return nil, err
	}
	return result.(json.RawMessage), nil
}
