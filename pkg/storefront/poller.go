package storefront

import (
	"context"
	"errors"
	"time"
)

const (
	DefaultPollInterval    = 2 * time.Second
	DefaultPollMaxAttempts = 10
)

type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
	// OutcomeProcessing means the attempt budget ran out before the
	// transaction settled. The caller should keep showing a waiting state.
	OutcomeProcessing Outcome = "processing"
)

type TransactionReader interface {
	GetTransaction(ctx context.Context, token, identifier string) (Transaction, error)
}

type PollerConfig struct {
	Interval    time.Duration `mapstructure:"interval"`
	MaxAttempts int           `mapstructure:"max_attempts"`
}

type PollResult struct {
	Outcome     Outcome
	Transaction Transaction
	Attempts    int
}

type Poller struct {
	reader TransactionReader
	config PollerConfig
}

func NewPoller(reader TransactionReader, cfg PollerConfig) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultPollInterval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultPollMaxAttempts
	}

	return &Poller{reader: reader, config: cfg}
}

// Await polls the transaction until it settles, the attempt budget runs out,
// or ctx is done. Transient read failures use up an attempt; 4xx answers
// abort with the error.
func (p *Poller) Await(ctx context.Context, token, identifier string) (PollResult, error) {
	var result PollResult

	timer := time.NewTimer(0)
	defer timer.Stop()

	for result.Attempts < p.config.MaxAttempts {
		if err := ctx.Err(); err != nil {
			result.Outcome = OutcomeProcessing
			return result, err
		}

		select {
		case <-ctx.Done():
			result.Outcome = OutcomeProcessing
			return result, ctx.Err()
		case <-timer.C:
		}

		result.Attempts++

		tx, err := p.reader.GetTransaction(ctx, token, identifier)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.Permanent() {
				return result, err
			}
		} else {
			result.Transaction = tx
			if outcome, settled := settledOutcome(tx.Status); settled {
				result.Outcome = outcome
				return result, nil
			}
		}

		timer.Reset(p.config.Interval)
	}

	result.Outcome = OutcomeProcessing
	return result, nil
}

func settledOutcome(status string) (Outcome, bool) {
	switch status {
	case "completed":
		return OutcomeCompleted, true
	case "failed", "cancelled":
		return OutcomeFailed, true
	default:
		return "", false
	}
}
