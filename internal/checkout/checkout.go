// Package checkout owns the payment step of an order: the summary handed
// over from a selection screen, the chosen payment method, and placing the
// order.
package checkout

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/iliamunaev/doorstep/internal/apperr"
	"github.com/iliamunaev/doorstep/internal/catalog"
	"github.com/iliamunaev/doorstep/internal/model"
	"github.com/iliamunaev/doorstep/internal/order"
	"github.com/iliamunaev/doorstep/internal/service/payment"
	"github.com/iliamunaev/doorstep/internal/service/pool"
	"github.com/iliamunaev/doorstep/internal/service/tracker"
	"github.com/iliamunaev/doorstep/internal/service/vendor"
)

const (
	stepPayment = "payment"
	stepVendor  = "vendor"
)

// Deps are the collaborators of a Session. Store is required; the rest
// default to simulated implementations.
type Deps struct {
	Store    *catalog.Store
	Gateway  payment.Gateway
	Notifier vendor.Notifier
	History  *order.History
	// Tracker counts running checkout steps. Sessions of one app share it.
	Tracker *tracker.Tracker
	Now     func() time.Time
	NewID   func() string
}

// Session is one checkout. It replaces screen-global payment state: screens
// read and mutate the session they are given.
type Session struct {
	store    *catalog.Store
	gw       payment.Gateway
	notifier vendor.Notifier
	history  *order.History
	now      func() time.Time
	newID    func() string

	tr    *tracker.Tracker
	guard *pool.Pool

	mu      sync.Mutex
	summary *model.OrderSummary
	details payment.Details
}

// New creates a session. It panics if d.Store is nil.
func New(d Deps) *Session {
	if d.Store == nil {
		panic("checkout.New: nil catalog store")
	}
	if d.Gateway == nil {
		d.Gateway = payment.Simulated{Delay: payment.DefaultDelay}
	}
	if d.Notifier == nil {
		d.Notifier = vendor.Simulated{Delay: vendor.DefaultDelay}
	}
	if d.History == nil {
		d.History = order.NewHistory()
	}
	if d.Tracker == nil {
		d.Tracker = &tracker.Tracker{}
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewID == nil {
		d.NewID = newOrderID
	}
	return &Session{
		store:    d.Store,
		gw:       d.Gateway,
		notifier: d.Notifier,
		history:  d.History,
		now:      d.Now,
		newID:    d.NewID,
		tr:       d.Tracker,
		guard:    pool.New(1),
		details:  payment.Details{Method: payment.UPI},
	}
}

func newOrderID() string {
	return "order_" + uuid.New().String()[:8]
}

// Begin starts checkout for summary. An empty summary is rejected with
// apperr.ErrEmptySelection, one without a vendor with apperr.ErrInvalidPayload.
// Payment details are reset.
func (s *Session) Begin(summary model.OrderSummary) error {
	if summary.IsEmpty() {
		return fmt.Errorf("checkout: %w", apperr.ErrEmptySelection)
	}
	if summary.VendorID == "" {
		return fmt.Errorf("checkout: summary has no vendor: %w", apperr.ErrInvalidPayload)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.summary = &summary
	s.details = payment.Details{Method: payment.UPI}
	return nil
}

// Open decodes a hand-off payload, recomputes its summary against the
// catalog and begins checkout with it.
func (s *Session) Open(v url.Values) error {
	summary, err := order.DecodeSummary(v, s.store)
	if err != nil {
		return err
	}
	return s.Begin(summary)
}

// Summary returns the summary being paid for; ok is false when no
// checkout is open.
func (s *Session) Summary() (model.OrderSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.summary == nil {
		return model.OrderSummary{}, false
	}
	return *s.summary, true
}

// AmountDue renders the total to pay, "₹0" when no checkout is open.
func (s *Session) AmountDue() string {
	sum, _ := s.Summary()
	return order.FormatAmount(sum.Total)
}

// Details returns the current payment-method state.
func (s *Session) Details() payment.Details {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.details
}

// SelectMethod switches the payment method. It clears the UPI sub-state
// and has no other effect.
func (s *Session) SelectMethod(m payment.Method) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details.SelectMethod(m)
}

// SelectUPIOption chooses between entering a UPI id and scanning a QR code.
func (s *Session) SelectUPIOption(o payment.UPIOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details.UPIOption = o
}

// SetUPIID stores the UPI id typed by the user.
func (s *Session) SetUPIID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details.UPIID = id
}

// SetCard stores card details. The number is truncated to 16 characters.
func (s *Session) SetCard(number, holder string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details.SetCardNumber(number)
	s.details.CardHolder = holder
}

// Busy reports whether a payment of this session is in flight.
func (s *Session) Busy() bool { return s.guard.InUse() > 0 }

// Cancel abandons the checkout without paying.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = nil
	s.details = payment.Details{Method: payment.UPI}
}

// Pay places the order.
//
// Local problems are reported without side effects: no open checkout
// (apperr.ErrEmptySelection), a missing payment field (apperr.FieldError),
// or another payment in flight (apperr.ErrPaymentInProgress). Otherwise the
// payment and vendor steps run concurrently; the first failure cancels the
// other. On success the order is recorded in the history and the checkout
// is closed.
func (s *Session) Pay(ctx context.Context) (model.Confirmation, error) {
	if !s.guard.TryAcquire() {
		return model.Confirmation{}, fmt.Errorf("checkout: %w", apperr.ErrPaymentInProgress)
	}
	defer s.guard.Release()

	s.mu.Lock()
	if s.summary == nil {
		s.mu.Unlock()
		return model.Confirmation{}, fmt.Errorf("checkout: %w", apperr.ErrEmptySelection)
	}
	sum, d := *s.summary, s.details
	s.mu.Unlock()

	if err := d.Validate(); err != nil {
		return model.Confirmation{}, err
	}

	orderID := s.newID()
	start := time.Now()
	steps, err := s.process(ctx, orderID, sum, d.Method)
	if err != nil {
		log.Printf("order failed order_id=%s vendor_id=%s method=%s total=%d kind=%s duration=%s",
			orderID, sum.VendorID, d.Method, sum.Total, apperr.Kind(err), time.Since(start))
		return model.Confirmation{OrderID: orderID, Steps: steps}, err
	}

	conf := model.Confirmation{
		OrderID:     orderID,
		VendorID:    sum.VendorID,
		Service:     sum.Service,
		Method:      string(d.Method),
		MethodLabel: d.Method.Label(),
		Total:       sum.Total,
		Delivery:    sum.Delivery,
		Message:     fmt.Sprintf("Paid %s via %s", order.FormatAmount(sum.Total), d.Method.Label()),
		PlacedAt:    s.now(),
		Steps:       steps,
	}
	s.history.Record(conf)

	s.mu.Lock()
	s.summary = nil
	s.details = payment.Details{Method: payment.UPI}
	s.mu.Unlock()

	log.Printf("order placed order_id=%s vendor_id=%s method=%s total=%d duration=%s",
		orderID, sum.VendorID, d.Method, sum.Total, time.Since(start))
	return conf, nil
}

// process runs the payment and vendor steps and returns their results in
// a fixed order regardless of which finished first.
func (s *Session) process(ctx context.Context, orderID string, sum model.OrderSummary, m payment.Method) ([]model.StepResult, error) {
	g, ctx := errgroup.WithContext(ctx)

	results := make(map[string]model.StepResult, 2)
	var mu sync.Mutex

	step := func(name string, fn func() error) func() error {
		return func() error {
			start := time.Now()
			err := fn()
			res := stepResult(name, time.Since(start), err)

			mu.Lock()
			results[name] = res
			mu.Unlock()
			return err
		}
	}

	charge := payment.Charge{OrderID: orderID, VendorID: sum.VendorID, Amount: sum.Total, Method: m}

	g.Go(step(stepPayment, func() error { return payment.Process(ctx, s.gw, charge, s.tr) }))
	g.Go(step(stepVendor, func() error { return s.notifier.Notify(ctx, orderID, sum) }))

	err := g.Wait()
	return flattenResults(results), err
}

// stepResult classifies a finished step. A step stopped by the other
// step's failure is "canceled"; its own failure is "error" with its kind.
func stepResult(name string, took time.Duration, err error) model.StepResult {
	res := model.StepResult{Name: name, Status: "ok", DurationMS: took.Milliseconds()}
	switch kind := apperr.Kind(err); kind {
	case "":
	case "canceled", "timeout":
		res.Status = "canceled"
	default:
		res.Status, res.Detail = "error", kind
	}
	return res
}

func flattenResults(m map[string]model.StepResult) []model.StepResult {
	out := make([]model.StepResult, 0, 2)
	for _, name := range []string{stepPayment, stepVendor} {
		if r, ok := m[name]; ok {
			out = append(out, r)
		}
	}
	return out
}
