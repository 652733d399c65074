package reservation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sitekit/config"
	siteRepo "sitekit/database/repository/site"
	"sitekit/models"
	"sitekit/services/schedule"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeHoldExpire is the asynq task releasing a reservation whose payment
// session was never completed.
const TypeHoldExpire = "reservation:hold_expire"

// HoldExpirePayload is the task payload for TypeHoldExpire.
type HoldExpirePayload struct {
	ReservationID string `json:"reservationId"`
}

const adjustedTimeWarning = "Your requested time was adjusted to the nearest available slot."

func (s *DefaultService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ListDay returns the slot grid of one civil day plus the authoritative
// config the widget reconciles against. A date outside the booking window or
// a closed day yields an empty slot list, never an error.
func (s *DefaultService) ListDay(ctx context.Context, siteID, date string) (*models.SlotListResponse, error) {
	settings := s.settingsOrDefault(siteID)

	lookahead := settings.LookaheadDays
	resp := &models.SlotListResponse{
		Timezone:            settings.Timezone,
		SlotDurationMinutes: settings.SlotDurationMinutes,
		LookaheadDays:       &lookahead,
		WeeklySchedule:      settings.WeeklySchedule,
		Overrides:           settings.Overrides,
	}

	today := schedule.CivilDate(s.now(), settings.Timezone)
	maxDate := schedule.MaxBookableDate(today, settings.LookaheadDays)
	if date < today || date > maxDate {
		return resp, nil
	}

	slots, err := buildDayGrid(*settings, date)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return resp, nil
	}

	reservations, err := s.Reservations.ListByDate(siteID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations for %s: %w", date, err)
	}
	markBooked(slots, reservations)

	// Slots that already started today cannot be selected anymore.
	if date == today {
		now := s.now()
		for i := range slots {
			if slots[i].StartTime.Before(now) {
				slots[i].Available = false
			}
		}
	}

	resp.Slots = slots
	return resp, nil
}

// Create attempts a reservation for one selected slot. The outcome is either
// confirmed (optionally with a non-fatal warning), payment-required with a
// resumable embedded checkout session, or a validation/slot error.
func (s *DefaultService) Create(ctx context.Context, siteID string, req models.CreateReservationRequest) (*models.CreateReservationResponse, error) {
	// Honeypot: humans never fill this field.
	if req.Website != "" {
		return nil, NewValidationError("unable to process request")
	}
	if req.Name == "" || req.Email == "" {
		return nil, NewValidationError("name and email are required")
	}

	settings := s.settingsOrDefault(siteID)
	today := schedule.CivilDate(s.now(), settings.Timezone)
	maxDate := schedule.MaxBookableDate(today, settings.LookaheadDays)
	if req.Date < today || req.Date > maxDate {
		return nil, NewSlotError("selected day is outside the booking window")
	}
	if !schedule.IsBusinessDay(req.Date, settings.WeeklySchedule, settings.Overrides) {
		return nil, NewSlotError("selected day is not open for booking")
	}

	grid, err := buildDayGrid(*settings, req.Date)
	if err != nil {
		return nil, err
	}

	slot, warning, err := resolveSlot(grid, req.StartTime)
	if err != nil {
		return nil, err
	}

	reservations, err := s.Reservations.ListByDate(siteID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservations for %s: %w", req.Date, err)
	}
	for _, r := range reservations {
		if r.Status == models.ReservationCancelled {
			continue
		}
		if slot.StartTime.Before(r.EndTime) && r.StartTime.Before(slot.EndTime) {
			return nil, NewSlotError("this time was just booked, please pick another slot")
		}
	}

	res := models.Reservation{
		ID:        uuid.New().String(),
		SiteID:    siteID,
		Date:      req.Date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Name:      req.Name,
		Email:     req.Email,
		Note:      req.Note,
		Status:    models.ReservationConfirmed,
		CreatedAt: s.now(),
	}

	if settings.DepositCents > 0 {
		return s.createWithPayment(ctx, settings, res, warning)
	}

	if err := s.Reservations.Create(&res); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}
	s.Logger.Info("Reservation confirmed",
		zap.String("siteId", siteID), zap.String("reservationId", res.ID), zap.String("date", res.Date))

	return &models.CreateReservationResponse{Confirmed: true, Warning: warning}, nil
}

// createWithPayment persists the reservation as a hold, opens an embedded
// checkout session, and arms the expiry sweep. The slot stays held, not
// confirmed, until payment completes.
func (s *DefaultService) createWithPayment(ctx context.Context, settings *models.BookingSettings, res models.Reservation, warning string) (*models.CreateReservationResponse, error) {
	res.Status = models.ReservationPendingPayment
	if err := s.Reservations.Create(&res); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	clientSecret, sessionID, err := s.Payments.CreateCheckoutSession(ctx, res, settings.DepositCents, settings.Currency)
	if err != nil {
		// Release the hold immediately: the visitor never saw a checkout.
		if updErr := s.Reservations.UpdateStatus(res.ID, models.ReservationCancelled); updErr != nil {
			s.Logger.Error("failed to release hold after checkout failure",
				zap.String("reservationId", res.ID), zap.Error(updErr))
		}
		return nil, fmt.Errorf("failed to start payment: %w", err)
	}

	res.CheckoutSessionID = sessionID
	if err := s.Reservations.SetCheckoutSession(res.ID, sessionID); err != nil {
		s.Logger.Warn("failed to store checkout session on reservation",
			zap.String("reservationId", res.ID), zap.Error(err))
	}

	hold := time.Duration(config.AppConfig.PaymentHoldMins) * time.Minute
	s.cachePending(ctx, res, sessionID, hold)
	s.enqueueHoldExpiry(res.ID, hold)

	return &models.CreateReservationResponse{
		RequiresPayment:   true,
		Warning:           warning,
		ClientSecret:      clientSecret,
		CheckoutSessionID: sessionID,
		EventID:           res.ID,
		Date:              res.Date,
	}, nil
}

// CancelPendingPayment releases a held reservation: the checkout session is
// expired best-effort and the hold removed so the slot frees up again.
func (s *DefaultService) CancelPendingPayment(ctx context.Context, siteID string, pending models.PendingPayment) error {
	res, err := s.Reservations.GetByID(pending.EventID)
	if err != nil {
		return fmt.Errorf("pending reservation not found: %w", err)
	}
	if res.SiteID != siteID || res.Date != pending.Date ||
		(res.CheckoutSessionID != "" && res.CheckoutSessionID != pending.CheckoutSessionID) {
		return NewValidationError("pending payment does not match reservation")
	}
	if res.Status != models.ReservationPendingPayment {
		// Already confirmed or released; nothing to cancel.
		return nil
	}

	if err := s.Payments.ExpireSession(ctx, pending.CheckoutSessionID); err != nil {
		s.Logger.Warn("failed to expire checkout session",
			zap.String("sessionId", pending.CheckoutSessionID), zap.Error(err))
	}
	if err := s.Reservations.UpdateStatus(res.ID, models.ReservationCancelled); err != nil {
		return fmt.Errorf("failed to release hold: %w", err)
	}
	if s.PaymentCache != nil {
		s.PaymentCache.Del(ctx, holdKey(res.ID))
	}
	s.Logger.Info("Released pending payment hold",
		zap.String("siteId", siteID), zap.String("reservationId", res.ID))
	return nil
}

// ReleaseExpiredHold is invoked by the sweep worker once a hold's window
// lapses. A hold that was confirmed or already cancelled is left alone.
func (s *DefaultService) ReleaseExpiredHold(ctx context.Context, reservationID string) error {
	res, err := s.Reservations.GetByID(reservationID)
	if err != nil {
		return fmt.Errorf("reservation not found: %w", err)
	}
	if res.Status != models.ReservationPendingPayment {
		return nil
	}
	if res.CheckoutSessionID != "" {
		if err := s.Payments.ExpireSession(ctx, res.CheckoutSessionID); err != nil {
			s.Logger.Warn("failed to expire checkout session during sweep",
				zap.String("sessionId", res.CheckoutSessionID), zap.Error(err))
		}
	}
	if err := s.Reservations.UpdateStatus(res.ID, models.ReservationCancelled); err != nil {
		return fmt.Errorf("failed to release expired hold: %w", err)
	}
	s.Logger.Info("Released expired payment hold", zap.String("reservationId", res.ID))
	return nil
}

// GetSettings returns the site's booking settings, falling back to the
// configured defaults when the site never saved any.
func (s *DefaultService) GetSettings(siteID string) (*models.BookingSettings, error) {
	return s.settingsOrDefault(siteID), nil
}

// SaveSettings validates and persists the site editor's booking settings.
func (s *DefaultService) SaveSettings(settings *models.BookingSettings) error {
	if settings.SiteID == "" {
		return NewValidationError("missing site id")
	}
	if settings.SlotDurationMinutes <= 0 {
		return NewValidationError("slot duration must be positive")
	}
	if settings.LookaheadDays < 0 {
		return NewValidationError("lookahead days cannot be negative")
	}
	if settings.Timezone != "" {
		if _, err := time.LoadLocation(settings.Timezone); err != nil {
			return NewValidationError("unknown timezone")
		}
	}
	if err := s.Sites.UpsertSettings(settings); err != nil {
		return err
	}
	// Drop the cached copy so the widget sees the new schedule promptly.
	if s.Cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s.Cache.Del(ctx, settingsKey(settings.SiteID))
	}
	return nil
}

// settingsTTL bounds how stale a cached copy of a site's settings can get.
const settingsTTL = 5 * time.Minute

func (s *DefaultService) settingsOrDefault(siteID string) *models.BookingSettings {
	if cached := s.cachedSettings(siteID); cached != nil {
		return cached
	}
	settings, err := s.Sites.GetSettings(siteID)
	if err == nil {
		s.cacheSettings(settings)
		return settings
	}
	if !errors.Is(err, siteRepo.ErrNotFound) {
		s.Logger.Warn("failed to load site settings, using defaults",
			zap.String("siteId", siteID), zap.Error(err))
	}
	return defaultSettings(siteID)
}

func (s *DefaultService) cachedSettings(siteID string) *models.BookingSettings {
	if s.Cache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	data, err := s.Cache.Get(ctx, settingsKey(siteID)).Bytes()
	if err != nil {
		return nil
	}
	var settings models.BookingSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil
	}
	return &settings
}

func (s *DefaultService) cacheSettings(settings *models.BookingSettings) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Cache.Set(ctx, settingsKey(settings.SiteID), data, settingsTTL).Err(); err != nil {
		s.Logger.Warn("failed to cache site settings",
			zap.String("siteId", settings.SiteID), zap.Error(err))
	}
}

func settingsKey(siteID string) string {
	return "settings:" + siteID
}

// defaultSettings is the client-safe fallback: weekdays open, weekends closed.
func defaultSettings(siteID string) *models.BookingSettings {
	sched := models.WeeklySchedule{}
	for d := 1; d <= 5; d++ {
		sched[d] = models.DayHours{Enabled: true, Open: fallbackOpen, Close: fallbackClose}
	}
	return &models.BookingSettings{
		SiteID:              siteID,
		Timezone:            config.AppConfig.DefaultTimezone,
		SlotDurationMinutes: config.AppConfig.DefaultSlotMinutes,
		LookaheadDays:       config.AppConfig.DefaultLookaheadDays,
		WeeklySchedule:      sched,
	}
}

// resolveSlot finds the grid slot for a requested start time, snapping into
// the containing slot (with a warning) when the request is off-grid.
func resolveSlot(grid []models.TimeSlot, start time.Time) (models.TimeSlot, string, error) {
	for _, slot := range grid {
		if slot.StartTime.Equal(start) {
			return slot, "", nil
		}
	}
	for _, slot := range grid {
		if !start.Before(slot.StartTime) && start.Before(slot.EndTime) {
			return slot, adjustedTimeWarning, nil
		}
	}
	return models.TimeSlot{}, "", NewSlotError("selected time is not on the schedule")
}

func (s *DefaultService) cachePending(ctx context.Context, res models.Reservation, sessionID string, ttl time.Duration) {
	if s.PaymentCache == nil {
		return
	}
	pending := models.PendingPayment{
		EventID:           res.ID,
		Date:              res.Date,
		CheckoutSessionID: sessionID,
	}
	data, err := json.Marshal(pending)
	if err != nil {
		s.Logger.Error("failed to marshal pending payment", zap.Error(err))
		return
	}
	if err := s.PaymentCache.Set(ctx, holdKey(res.ID), data, ttl).Err(); err != nil {
		s.Logger.Warn("failed to cache pending payment", zap.Error(err))
	}
}

func (s *DefaultService) enqueueHoldExpiry(reservationID string, delay time.Duration) {
	if s.Tasks == nil {
		return
	}
	payload, err := json.Marshal(HoldExpirePayload{ReservationID: reservationID})
	if err != nil {
		s.Logger.Error("failed to marshal hold expiry payload", zap.Error(err))
		return
	}
	task := asynq.NewTask(TypeHoldExpire, payload)
	if _, err := s.Tasks.Enqueue(task, asynq.ProcessIn(delay), asynq.Queue("default")); err != nil {
		s.Logger.Warn("failed to enqueue hold expiry",
			zap.String("reservationId", reservationID), zap.Error(err))
	}
}

func holdKey(reservationID string) string {
	return "hold:" + reservationID
}
