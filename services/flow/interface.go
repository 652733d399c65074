package flow

import (
	"context"

	"sitekit/models"
)

// BookingAPI is the collaborator the widget flow drives: slot listing,
// reservation creation and best-effort cancellation of a pending payment.
// Transport details live behind this interface (see clients/widgetapi).
type BookingAPI interface {
	ListSlots(ctx context.Context, date string) (*models.SlotListResponse, error)
	CreateReservation(ctx context.Context, req models.CreateReservationRequest) (*models.CreateReservationResponse, error)
	CancelPendingPayment(ctx context.Context, pending models.PendingPayment) error
}
