package order

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/iliamunaev/doorstep/internal/apperr"
	"github.com/iliamunaev/doorstep/internal/booking"
	"github.com/iliamunaev/doorstep/internal/catalog"
	"github.com/iliamunaev/doorstep/internal/model"
)

// Delivery plan types.
const (
	PlanOneTime      = "onetime"
	PlanSubscription = "subscription"
)

// Subscription frequencies.
const (
	Weekly   = "weekly"
	Biweekly = "biweekly"
	Monthly  = "monthly"
)

// Frequencies returns the subscription frequencies in display order.
func Frequencies() []string { return []string{Weekly, Biweekly, Monthly} }

// Scheduler is a per-item selection delivered in a time slot, once or on
// a subscription. Water jars are ordered this way.
type Scheduler struct {
	*Composer
	slots catalog.SlotProvider
	plan  model.DeliveryPlan
}

// NewScheduler starts an empty one-time delivery in the first available slot.
func NewScheduler(service catalog.Category, vendorID string, p catalog.Provider, slots catalog.SlotProvider) *Scheduler {
	if slots == nil {
		panic("order.NewScheduler: nil slot provider")
	}
	s := &Scheduler{
		Composer: NewComposer(service, vendorID, p),
		slots:    slots,
		plan:     model.DeliveryPlan{Type: PlanOneTime},
	}
	if i := slices.IndexFunc(slots.Slots(), catalog.Slot.Available); i >= 0 {
		sl := slots.Slots()[i]
		s.plan.SlotID, s.plan.Slot = sl.ID, sl.Time
	}
	return s
}

// Plan returns the current delivery plan.
func (s *Scheduler) Plan() model.DeliveryPlan { return s.plan }

// OneTime switches to a single delivery.
func (s *Scheduler) OneTime() {
	s.plan.Type, s.plan.Frequency = PlanOneTime, ""
}

// Subscribe switches to a recurring delivery at freq.
func (s *Scheduler) Subscribe(freq string) error {
	if !slices.Contains(Frequencies(), freq) {
		return fmt.Errorf("order: frequency %q: %w", freq, apperr.ErrInvalidSchedule)
	}
	s.plan.Type, s.plan.Frequency = PlanSubscription, freq
	return nil
}

// SelectSlot chooses a delivery slot. Unavailable slots are refused.
func (s *Scheduler) SelectSlot(id string) error {
	sl, err := lookupSlot(s.slots, id)
	if err != nil {
		return err
	}
	s.plan.SlotID, s.plan.Slot = sl.ID, sl.Time
	return nil
}

// SetStartDate sets the first delivery day, YYYY-MM-DD.
func (s *Scheduler) SetStartDate(d string) error {
	t, err := booking.ParseDate(d)
	if err != nil {
		return err
	}
	s.plan.StartDate = booking.FormatDate(t)
	return nil
}

// SetAddress sets the delivery address.
func (s *Scheduler) SetAddress(a string) { s.plan.Address = strings.TrimSpace(a) }

// Summary derives the order summary with its delivery plan attached.
func (s *Scheduler) Summary() model.OrderSummary {
	sum := s.Composer.Summary()
	if !sum.IsEmpty() {
		p := s.plan
		sum.Delivery = &p
	}
	return sum
}

// Handoff packs the selection and its delivery plan for the payment step.
func (s *Scheduler) Handoff() (url.Values, error) {
	if err := ValidatePlan(s.plan, s.slots); err != nil {
		return nil, err
	}
	v, err := s.Composer.Handoff()
	if err != nil {
		return nil, err
	}
	EncodePlan(v, s.plan)
	return v, nil
}

// ValidatePlan checks that plan is complete and bookable against slots.
func ValidatePlan(plan model.DeliveryPlan, slots catalog.SlotProvider) error {
	switch plan.Type {
	case PlanOneTime:
		if plan.Frequency != "" {
			return fmt.Errorf("order: one-time delivery with frequency %q: %w", plan.Frequency, apperr.ErrInvalidSchedule)
		}
	case PlanSubscription:
		if !slices.Contains(Frequencies(), plan.Frequency) {
			return fmt.Errorf("order: frequency %q: %w", plan.Frequency, apperr.ErrInvalidSchedule)
		}
	default:
		return fmt.Errorf("order: delivery type %q: %w", plan.Type, apperr.ErrInvalidSchedule)
	}
	if _, err := lookupSlot(slots, plan.SlotID); err != nil {
		return err
	}
	if _, err := booking.ParseDate(plan.StartDate); err != nil {
		return fmt.Errorf("order: start date: %w", apperr.ErrInvalidSchedule)
	}
	if plan.Address == "" {
		return fmt.Errorf("order: delivery address is required: %w", apperr.ErrInvalidSchedule)
	}
	return nil
}

func lookupSlot(slots catalog.SlotProvider, id string) (catalog.Slot, error) {
	sl, ok := slots.Slot(id)
	switch {
	case !ok:
		return catalog.Slot{}, fmt.Errorf("order: slot %q: %w", id, apperr.ErrInvalidSchedule)
	case !sl.Available():
		return catalog.Slot{}, fmt.Errorf("order: slot %q: %w", id, apperr.ErrSlotUnavailable)
	}
	return sl, nil
}
