package siteRepo

import "sitekit/models"

// Repository defines persistence for per-site booking settings.
type Repository interface {
	GetSettings(siteID string) (*models.BookingSettings, error)
	UpsertSettings(settings *models.BookingSettings) error
}
