package reservation

import (
	"context"
	"time"

	reservationRepo "sitekit/database/repository/reservation"
	siteRepo "sitekit/database/repository/site"
	"sitekit/models"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Service is the server side of the widget's three operations, plus the
// settings surface the site editor uses.
type Service interface {
	ListDay(ctx context.Context, siteID, date string) (*models.SlotListResponse, error)
	Create(ctx context.Context, siteID string, req models.CreateReservationRequest) (*models.CreateReservationResponse, error)
	CancelPendingPayment(ctx context.Context, siteID string, pending models.PendingPayment) error
	ReleaseExpiredHold(ctx context.Context, reservationID string) error

	GetSettings(siteID string) (*models.BookingSettings, error)
	SaveSettings(settings *models.BookingSettings) error
}

// DefaultService implements Service.
type DefaultService struct {
	Reservations reservationRepo.Repository
	Sites        siteRepo.Repository
	Payments     PaymentProcessor
	Cache        *redis.Client
	PaymentCache *redis.Client
	Tasks        *asynq.Client
	Logger       *zap.Logger

	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}
