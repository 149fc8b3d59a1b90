// Package payment provides the payment step of checkout.
//
// Payment methods are validated locally. The charge itself goes through a
// Gateway; the built-in Simulated gateway waits a fixed delay and succeeds.
package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/iliamunaev/doorstep/internal/apperr"
	"github.com/iliamunaev/doorstep/internal/service/shared"
	"github.com/iliamunaev/doorstep/internal/service/tracker"
)

// Result is the outcome reported by a Gateway.
type Result int

const (
	Success Result = iota
	Declined
	NetworkError
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case Declined:
		return "declined"
	case NetworkError:
		return "network_error"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Charge is a request to collect an order total.
type Charge struct {
	OrderID  string
	VendorID string
	Amount   int64
	Method   Method
}

// Gateway collects payments.
type Gateway interface {
	Charge(ctx context.Context, c Charge) (Result, error)
}

// GatewayFunc adapts a function to Gateway.
type GatewayFunc func(ctx context.Context, c Charge) (Result, error)

func (f GatewayFunc) Charge(ctx context.Context, c Charge) (Result, error) { return f(ctx, c) }

// DefaultDelay is the latency of the simulated gateway.
const DefaultDelay = 2 * time.Second

// Simulated is a Gateway that waits Delay and then always succeeds.
// A started charge runs to completion even if ctx is canceled.
type Simulated struct {
	Delay time.Duration
}

// Charge waits for the configured delay.
func (s Simulated) Charge(ctx context.Context, _ Charge) (Result, error) {
	if err := shared.SleepOrDone(context.WithoutCancel(ctx), s.Delay); err != nil {
		return NetworkError, err
	}
	return Success, nil
}

// Process runs a charge through gw as a tracked step.
//
// Declined and NetworkError results are returned as errors wrapping
// apperr.ErrDeclined and apperr.ErrNetwork. Context errors are returned as is.
func Process(ctx context.Context, gw Gateway, c Charge, tr *tracker.Tracker) error {
	if tr != nil {
		tr.Inc()
		defer tr.Dec()
	}

	res, err := gw.Charge(ctx, c)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("payment: %w: %v", apperr.ErrNetwork, err)
	}

	switch res {
	case Success:
		return nil
	case Declined:
		return fmt.Errorf("payment: %w", apperr.ErrDeclined)
	default:
		return fmt.Errorf("payment: %w", apperr.ErrNetwork)
	}
}
