package flow

import (
	"time"

	"sitekit/models"
	"sitekit/services/schedule"
	"sitekit/services/timeline"
)

// Step is the widget's position in the booking flow.
type Step string

const (
	StepSchedule  Step = "schedule"
	StepForm      Step = "form"
	StepPayment   Step = "payment"
	StepConfirmed Step = "confirmed"
)

// ContactForm holds the visitor details gathered on the form step.
type ContactForm struct {
	Name  string
	Email string
	Note  string
}

// State is the full local state of one widget-open lifetime. Transitions are
// computed by Reduce as pure functions of (State, Event); all side effects are
// returned as an explicit Effect list for the controller to carry out.
type State struct {
	Step Step

	// Config starts as the client-side default and is replaced exactly once,
	// when the first slot response carries authoritative schedule data.
	Config       models.BookingConfig
	ConfigLoaded bool

	// Today and InitialDate are civil dates in the site's timezone. InitialDate
	// is the first bookable day; a reset snaps the selection back to it.
	Today       string
	InitialDate string

	SelectedDate string
	Slots        []models.TimeSlot
	SlotsLoaded  bool
	SelectedSlot *models.TimeSlot

	Form       ContactForm
	Submitting bool

	// Pending payment session, present only on the payment step.
	Payment      *models.PendingPayment
	ClientSecret string

	Error   string
	Warning string

	// FetchSeq tags each slot fetch; responses carrying a stale tag (or a date
	// that is no longer selected) are discarded silently.
	FetchSeq int
}

// Events.

type EventDateSelected struct{ Date string }

type EventSlotsLoaded struct {
	Seq  int
	Date string
	Resp *models.SlotListResponse
	// At is the instant the response was received. The reducer needs it to
	// re-derive today's civil date when the authoritative config moves the
	// widget into another timezone.
	At time.Time
}

type EventSlotsFailed struct {
	Seq  int
	Date string
	Err  string
}

type EventSlotPicked struct{ Slot models.TimeSlot }

type EventFormChanged struct{ Form ContactForm }

type EventSubmitRequested struct{}

type EventSubmitResolved struct{ Resp *models.CreateReservationResponse }

type EventSubmitFailed struct{ Err string }

type EventPaymentCompleted struct{}

type EventBackRequested struct{}

type EventCloseRequested struct{}

type EventResetFired struct{}

// Effect is an order to the controller: network calls to issue or a reset to
// schedule. Effects are plain values so tests can assert on them directly.
type Effect any

// EffectFetchSlots asks for the slot list of Date, tagged with Seq.
type EffectFetchSlots struct {
	Seq  int
	Date string
}

// EffectCreateReservation submits the reservation attempt.
type EffectCreateReservation struct{ Req models.CreateReservationRequest }

// EffectCancelPayment releases a held slot; best-effort, failure is logged
// and swallowed. Emitted at most once per pending session.
type EffectCancelPayment struct{ Pending models.PendingPayment }

// EffectScheduleReset asks the controller to clear local state after the
// close animation delay.
type EffectScheduleReset struct{}

// Timeline renders the loaded slots as display rows: available slots stay
// individually selectable, runs of unavailable slots collapse into booked
// blocks.
func (s State) Timeline() []models.TimelineRow {
	return timeline.Build(s.Slots)
}

// NewState builds the state for a freshly opened widget from the client-side
// default config. today is the civil date in the config's timezone.
func NewState(cfg models.BookingConfig, today string) State {
	maxDate := schedule.MaxBookableDate(today, cfg.LookaheadDays)
	initial, _ := schedule.FirstBusinessDay(today, cfg.WeeklySchedule, today, maxDate, cfg.Overrides)
	return State{
		Step:         StepSchedule,
		Config:       cfg,
		Today:        today,
		InitialDate:  initial,
		SelectedDate: initial,
	}
}

