package flow

import (
	"context"
	"sync"
	"time"

	"sitekit/models"
	"sitekit/services/schedule"

	"go.uber.org/zap"
)

// resetDelay lets the widget's close animation finish before local state is
// cleared.
const resetDelay = 300 * time.Millisecond

// cancelTimeout bounds the detached best-effort payment cancellation.
const cancelTimeout = 10 * time.Second

// Controller owns one widget-open lifetime: it holds the current State, feeds
// user and network events through Reduce, and carries out the effects the
// reducer orders. Constructed fresh per widget-open, torn down on close.
type Controller struct {
	api    BookingAPI
	logger *zap.Logger

	mu    sync.Mutex
	state State

	now   func() time.Time
	delay time.Duration

	// detached tracks fire-and-forget cancellation calls so shutdown (and
	// tests) can drain them.
	detached sync.WaitGroup

	resetTimer *time.Timer
}

// NewController builds a controller from the client-side default config. The
// authoritative config replaces it on the first slot response that carries
// schedule data.
func NewController(api BookingAPI, cfg models.BookingConfig, logger *zap.Logger) *Controller {
	c := &Controller{
		api:    api,
		logger: logger,
		now:    time.Now,
		delay:  resetDelay,
	}
	c.state = NewState(cfg, schedule.CivilDate(c.now(), cfg.Timezone))
	return c
}

// State returns a snapshot of the current flow state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Open starts the flow by fetching slots for the initial bookable date. With
// no bookable day under the current config this is a no-op; the empty state
// renders instead.
func (c *Controller) Open(ctx context.Context) {
	initial := c.State().InitialDate
	if initial == "" {
		return
	}
	c.dispatch(ctx, EventDateSelected{Date: initial})
}

// SelectDate switches the calendar selection and fetches that day's slots.
func (c *Controller) SelectDate(ctx context.Context, date string) {
	c.dispatch(ctx, EventDateSelected{Date: date})
}

// PickSlot advances schedule -> form for an available slot.
func (c *Controller) PickSlot(slot models.TimeSlot) {
	c.dispatch(context.Background(), EventSlotPicked{Slot: slot})
}

// UpdateForm records the visitor's contact details.
func (c *Controller) UpdateForm(form ContactForm) {
	c.dispatch(context.Background(), EventFormChanged{Form: form})
}

// Submit attempts the reservation. Inert while another attempt is in flight
// or while required fields are empty.
func (c *Controller) Submit(ctx context.Context) {
	c.dispatch(ctx, EventSubmitRequested{})
}

// CompletePayment is invoked by the embedding surface once the checkout
// reports completion.
func (c *Controller) CompletePayment() {
	c.dispatch(context.Background(), EventPaymentCompleted{})
}

// Back leaves the payment step, cancelling the pending session best-effort.
func (c *Controller) Back(ctx context.Context) {
	c.dispatch(ctx, EventBackRequested{})
}

// Close tears the widget down: any pending payment session is cancelled
// best-effort, and local state resets after the close animation delay.
func (c *Controller) Close(ctx context.Context) {
	c.dispatch(ctx, EventCloseRequested{})
}

// Wait drains detached cancellation calls; used at shutdown and in tests.
func (c *Controller) Wait() {
	c.detached.Wait()
}

func (c *Controller) dispatch(ctx context.Context, ev any) {
	c.mu.Lock()
	next, effects := Reduce(c.state, ev)
	c.state = next
	c.mu.Unlock()

	for _, effect := range effects {
		c.run(ctx, effect)
	}
}

func (c *Controller) run(ctx context.Context, effect Effect) {
	switch e := effect.(type) {

	case EffectFetchSlots:
		resp, err := c.api.ListSlots(ctx, e.Date)
		if err != nil {
			c.logger.Warn("slot fetch failed",
				zap.String("date", e.Date), zap.Error(err))
			c.dispatch(ctx, EventSlotsFailed{Seq: e.Seq, Date: e.Date, Err: err.Error()})
			return
		}
		c.dispatch(ctx, EventSlotsLoaded{Seq: e.Seq, Date: e.Date, Resp: resp, At: c.now()})

	case EffectCreateReservation:
		resp, err := c.api.CreateReservation(ctx, e.Req)
		if err != nil {
			c.logger.Warn("reservation submit failed", zap.Error(err))
			c.dispatch(ctx, EventSubmitFailed{Err: err.Error()})
			return
		}
		c.dispatch(ctx, EventSubmitResolved{Resp: resp})

	case EffectCancelPayment:
		// Detached: the UI never blocks on this, but it is attempted exactly
		// once per pending session. Failure is logged and swallowed.
		c.detached.Add(1)
		go func(pending models.PendingPayment) {
			defer c.detached.Done()
			cctx, cancel := context.WithTimeout(context.Background(), cancelTimeout)
			defer cancel()
			if err := c.api.CancelPendingPayment(cctx, pending); err != nil {
				c.logger.Warn("pending payment cancellation failed",
					zap.String("eventId", pending.EventID),
					zap.String("checkoutSessionId", pending.CheckoutSessionID),
					zap.Error(err))
			}
		}(e.Pending)

	case EffectScheduleReset:
		c.mu.Lock()
		if c.resetTimer != nil {
			c.resetTimer.Stop()
		}
		c.resetTimer = time.AfterFunc(c.delay, func() {
			c.dispatch(context.Background(), EventResetFired{})
		})
		c.mu.Unlock()
	}
}
