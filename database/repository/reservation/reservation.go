package reservationRepo

import "sitekit/models"

// Repository defines persistence for reservations.
type Repository interface {
	Create(res *models.Reservation) error
	GetByID(id string) (*models.Reservation, error)
	ListByDate(siteID, date string) ([]models.Reservation, error)
	UpdateStatus(id, status string) error
	SetCheckoutSession(id, sessionID string) error
}
