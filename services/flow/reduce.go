package flow

import (
	"time"

	"sitekit/models"
	"sitekit/services/schedule"
)

// User-visible error strings. Errors render inline near the current step and
// never force a transition; the visitor can retry.
const (
	errSlotsUnavailable = "We couldn't load available times. Please try again."
	errSubmitFailed     = "We couldn't complete your booking. Please try again."
)

// Reduce applies one event and returns the next state plus the effects the
// controller must carry out. It performs no I/O and is deterministic given
// its inputs, so every transition is unit-testable without a UI harness.
func Reduce(s State, ev any) (State, []Effect) {
	switch e := ev.(type) {

	case EventDateSelected:
		// A new selection supersedes any in-flight fetch: bump the generation
		// tag and drop the previous slot list. The previously selected slot is
		// meaningless for another date.
		s.SelectedDate = e.Date
		s.SelectedSlot = nil
		s.Slots = nil
		s.SlotsLoaded = false
		s.Error = ""
		s.FetchSeq++
		return s, []Effect{EffectFetchSlots{Seq: s.FetchSeq, Date: e.Date}}

	case EventSlotsLoaded:
		if e.Seq != s.FetchSeq || e.Date != s.SelectedDate {
			// Stale response for an earlier selection; discard silently.
			return s, nil
		}
		s.Slots = e.Resp.Slots
		s.SlotsLoaded = true
		s.Error = ""
		if !s.ConfigLoaded && carriesConfig(e.Resp) {
			return reconcileConfig(s, e.Resp, e.At)
		}
		return s, nil

	case EventSlotsFailed:
		if e.Seq != s.FetchSeq || e.Date != s.SelectedDate {
			return s, nil
		}
		s.Error = errSlotsUnavailable
		return s, nil

	case EventSlotPicked:
		if s.Step != StepSchedule || !e.Slot.Available {
			return s, nil
		}
		slot := e.Slot
		s.SelectedSlot = &slot
		s.Step = StepForm
		s.Error = ""
		return s, nil

	case EventFormChanged:
		s.Form = e.Form
		return s, nil

	case EventSubmitRequested:
		// The submitting latch permits exactly one in-flight attempt; missing
		// required fields make the action inert, no network call is issued.
		if s.Step != StepForm || s.Submitting || s.SelectedSlot == nil {
			return s, nil
		}
		if s.Form.Name == "" || s.Form.Email == "" {
			return s, nil
		}
		s.Submitting = true
		s.Error = ""
		req := models.CreateReservationRequest{
			Date:      s.SelectedDate,
			StartTime: s.SelectedSlot.StartTime,
			EndTime:   s.SelectedSlot.EndTime,
			Name:      s.Form.Name,
			Email:     s.Form.Email,
			Note:      s.Form.Note,
		}
		return s, []Effect{EffectCreateReservation{Req: req}}

	case EventSubmitResolved:
		s.Submitting = false
		switch {
		case e.Resp.Error != "":
			s.Error = e.Resp.Error
		case e.Resp.RequiresPayment:
			// The slot is held, not confirmed: a pending, cancellable state.
			s.Step = StepPayment
			s.Payment = &models.PendingPayment{
				EventID:           e.Resp.EventID,
				Date:              e.Resp.Date,
				CheckoutSessionID: e.Resp.CheckoutSessionID,
			}
			s.ClientSecret = e.Resp.ClientSecret
		default:
			s.Step = StepConfirmed
			s.Warning = e.Resp.Warning
		}
		return s, nil

	case EventSubmitFailed:
		s.Submitting = false
		s.Error = errSubmitFailed
		return s, nil

	case EventPaymentCompleted:
		if s.Step != StepPayment {
			return s, nil
		}
		s.Step = StepConfirmed
		return s, nil

	case EventBackRequested:
		if s.Step != StepPayment {
			return s, nil
		}
		var effects []Effect
		if s.Payment != nil {
			effects = append(effects, EffectCancelPayment{Pending: *s.Payment})
		}
		s.Payment = nil
		s.ClientSecret = ""
		s.Step = StepForm
		return s, effects

	case EventCloseRequested:
		var effects []Effect
		if s.Payment != nil {
			effects = append(effects, EffectCancelPayment{Pending: *s.Payment})
			s.Payment = nil
			s.ClientSecret = ""
		}
		effects = append(effects, EffectScheduleReset{})
		return s, effects

	case EventResetFired:
		next := NewState(s.Config, s.Today)
		next.ConfigLoaded = s.ConfigLoaded
		next.InitialDate = s.InitialDate
		next.SelectedDate = s.InitialDate
		return next, nil
	}

	return s, nil
}

func carriesConfig(resp *models.SlotListResponse) bool {
	return resp.WeeklySchedule != nil || resp.LookaheadDays != nil
}

// reconcileConfig replaces the client-side default config with the
// authoritative one, exactly once per widget lifetime. Today is re-derived in
// the authoritative timezone from the receipt instant, so a tenant zone ahead
// of the client default cannot leave the window anchored on its yesterday.
// If the first bookable day changes under the new schedule, the selection
// moves there and a fresh fetch is ordered.
func reconcileConfig(s State, resp *models.SlotListResponse, at time.Time) (State, []Effect) {
	cfg := s.Config
	if resp.Timezone != "" {
		cfg.Timezone = resp.Timezone
	}
	if resp.SlotDurationMinutes > 0 {
		cfg.SlotDurationMinutes = resp.SlotDurationMinutes
	}
	if resp.LookaheadDays != nil {
		cfg.LookaheadDays = *resp.LookaheadDays
	}
	if resp.WeeklySchedule != nil {
		cfg.WeeklySchedule = resp.WeeklySchedule
	}
	if resp.Overrides != nil {
		cfg.Overrides = resp.Overrides
	}
	s.Config = cfg
	s.ConfigLoaded = true

	if !at.IsZero() {
		s.Today = schedule.CivilDate(at, cfg.Timezone)
	}
	maxDate := schedule.MaxBookableDate(s.Today, cfg.LookaheadDays)
	initial, ok := schedule.FirstBusinessDay(s.Today, cfg.WeeklySchedule, s.Today, maxDate, cfg.Overrides)
	if !ok {
		// No bookable day under the authoritative schedule: a displayable
		// empty state, not an error.
		s.InitialDate = ""
		s.SelectedDate = ""
		s.Slots = nil
		s.SlotsLoaded = false
		s.SelectedSlot = nil
		return s, nil
	}
	s.InitialDate = initial
	if initial != s.SelectedDate {
		s.SelectedDate = initial
		s.SelectedSlot = nil
		s.Slots = nil
		s.SlotsLoaded = false
		s.FetchSeq++
		return s, []Effect{EffectFetchSlots{Seq: s.FetchSeq, Date: initial}}
	}
	return s, nil
}
