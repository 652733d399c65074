package models

import "time"

// Reservation statuses.
const (
	ReservationConfirmed      = "confirmed"
	ReservationPendingPayment = "pending_payment"
	ReservationCancelled      = "cancelled"
)

// Reservation is a persisted booking for one slot of a site's day.
type Reservation struct {
	ID     string `bson:"id" json:"id"`
	SiteID string `bson:"siteId" json:"siteId"`
	// Date is the civil date ("YYYY-MM-DD") in the site's timezone the slot
	// was listed under; slot selections are only meaningful relative to it.
	Date      string    `bson:"date" json:"date"`
	StartTime time.Time `bson:"startTime" json:"startTime"`
	EndTime   time.Time `bson:"endTime" json:"endTime"`

	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Note  string `bson:"note,omitempty" json:"note,omitempty"`

	Status            string    `bson:"status" json:"status"`
	CheckoutSessionID string    `bson:"checkoutSessionId,omitempty" json:"checkoutSessionId,omitempty"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
}

// SlotListResponse is the payload of "list slots for site+date". The config
// fields ride along so the widget can reconcile its client-side default with
// the authoritative settings on the first response.
type SlotListResponse struct {
	Slots               []TimeSlot     `json:"slots"`
	Timezone            string         `json:"timezone"`
	SlotDurationMinutes int            `json:"slotDurationMinutes,omitempty"`
	LookaheadDays       *int           `json:"lookaheadDays,omitempty"`
	WeeklySchedule      WeeklySchedule `json:"weeklySchedule,omitempty"`
	Overrides           Overrides      `json:"overrides,omitempty"`
}

// CreateReservationRequest carries the visitor's details for one selected slot.
// Website is a honeypot field: humans never fill it, bots do.
type CreateReservationRequest struct {
	Date      string    `json:"date"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Note      string    `json:"note,omitempty"`
	Website   string    `json:"website,omitempty"`
}

// CreateReservationResponse reports one of three outcomes: confirmed (with an
// optional non-fatal warning), payment required (with a resumable embedded
// checkout session), or failure.
type CreateReservationResponse struct {
	Confirmed       bool   `json:"confirmed"`
	Warning         string `json:"warning,omitempty"`
	RequiresPayment bool   `json:"requiresPayment"`

	ClientSecret      string `json:"clientSecret,omitempty"`
	CheckoutSessionID string `json:"checkoutSessionId,omitempty"`
	EventID           string `json:"eventId,omitempty"`
	Date              string `json:"date,omitempty"`

	Error string `json:"error,omitempty"`
}

// PendingPayment identifies a held reservation awaiting checkout completion.
type PendingPayment struct {
	EventID           string `json:"eventId"`
	Date              string `json:"date"`
	CheckoutSessionID string `json:"checkoutSessionId"`
}
