package reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	siteRepo "sitekit/database/repository/site"
	"sitekit/models"
	"sitekit/services/schedule"

	"go.uber.org/zap"
)

// memReservations is an in-memory reservation repository.
type memReservations struct {
	byID map[string]*models.Reservation
}

func newMemReservations() *memReservations {
	return &memReservations{byID: map[string]*models.Reservation{}}
}

func (m *memReservations) Create(res *models.Reservation) error {
	cp := *res
	m.byID[res.ID] = &cp
	return nil
}

func (m *memReservations) GetByID(id string) (*models.Reservation, error) {
	res, ok := m.byID[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *res
	return &cp, nil
}

func (m *memReservations) ListByDate(siteID, date string) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, res := range m.byID {
		if res.SiteID == siteID && res.Date == date {
			out = append(out, *res)
		}
	}
	return out, nil
}

func (m *memReservations) UpdateStatus(id, status string) error {
	res, ok := m.byID[id]
	if !ok {
		return errors.New("not found")
	}
	res.Status = status
	return nil
}

func (m *memReservations) SetCheckoutSession(id, sessionID string) error {
	res, ok := m.byID[id]
	if !ok {
		return errors.New("not found")
	}
	res.CheckoutSessionID = sessionID
	return nil
}

// memSites serves fixed settings.
type memSites struct {
	settings *models.BookingSettings
}

func (m *memSites) GetSettings(string) (*models.BookingSettings, error) {
	if m.settings == nil {
		return nil, siteRepo.ErrNotFound
	}
	cp := *m.settings
	return &cp, nil
}

func (m *memSites) UpsertSettings(settings *models.BookingSettings) error {
	cp := *settings
	m.settings = &cp
	return nil
}

// fakePayments records checkout calls.
type fakePayments struct {
	createErr error
	expired   []string
}

func (f *fakePayments) CreateCheckoutSession(_ context.Context, res models.Reservation, _ int64, _ string) (string, string, error) {
	if f.createErr != nil {
		return "", "", f.createErr
	}
	return "cs_secret_" + res.ID, "cs_" + res.ID, nil
}

func (f *fakePayments) ExpireSession(_ context.Context, sessionID string) error {
	f.expired = append(f.expired, sessionID)
	return nil
}

func allOpenSettings(deposit int64) *models.BookingSettings {
	sched := models.WeeklySchedule{}
	for d := 0; d < 7; d++ {
		sched[d] = models.DayHours{Enabled: true, Open: "09:00", Close: "12:00"}
	}
	return &models.BookingSettings{
		SiteID:              "site-1",
		Timezone:            "UTC",
		SlotDurationMinutes: 30,
		LookaheadDays:       14,
		WeeklySchedule:      sched,
		DepositCents:        deposit,
		Currency:            "usd",
	}
}

func newTestService(deposit int64) (*DefaultService, *memReservations, *fakePayments) {
	repo := newMemReservations()
	payments := &fakePayments{}
	svc := &DefaultService{
		Reservations: repo,
		Sites:        &memSites{settings: allOpenSettings(deposit)},
		Payments:     payments,
		Logger:       zap.NewNop(),
	}
	return svc, repo, payments
}

// tomorrow keeps test dates inside the booking window regardless of when the
// suite runs.
func tomorrow() string {
	return schedule.AddDays(schedule.CivilDate(time.Now(), "UTC"), 1)
}

func slotStart(date string, hhmm string, t *testing.T) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", date+" "+hhmm, time.UTC)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return ts
}

func TestListDayBuildsGridAndMarksBooked(t *testing.T) {
	svc, repo, _ := newTestService(0)
	date := tomorrow()

	booked := models.Reservation{
		ID: "r1", SiteID: "site-1", Date: date,
		StartTime: slotStart(date, "09:30", t),
		EndTime:   slotStart(date, "10:00", t),
		Status:    models.ReservationConfirmed,
	}
	if err := repo.Create(&booked); err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp, err := svc.ListDay(context.Background(), "site-1", date)
	if err != nil {
		t.Fatalf("ListDay: %v", err)
	}
	if len(resp.Slots) != 6 { // 09:00-12:00 at 30min
		t.Fatalf("expected 6 slots, got %d", len(resp.Slots))
	}
	if resp.Slots[0].Available != true || resp.Slots[1].Available != false {
		t.Fatalf("expected 09:30 marked booked: %+v", resp.Slots[:2])
	}
	if resp.Timezone != "UTC" || resp.LookaheadDays == nil || *resp.LookaheadDays != 14 {
		t.Fatalf("expected authoritative config echoed, got %+v", resp)
	}
}

func TestListDayOutsideWindowIsEmpty(t *testing.T) {
	svc, _, _ := newTestService(0)
	past := schedule.AddDays(schedule.CivilDate(time.Now(), "UTC"), -1)
	resp, err := svc.ListDay(context.Background(), "site-1", past)
	if err != nil {
		t.Fatalf("ListDay: %v", err)
	}
	if len(resp.Slots) != 0 {
		t.Fatalf("expected empty slot list for a past date, got %d", len(resp.Slots))
	}

	beyond := schedule.AddDays(schedule.CivilDate(time.Now(), "UTC"), 15)
	resp, err = svc.ListDay(context.Background(), "site-1", beyond)
	if err != nil || len(resp.Slots) != 0 {
		t.Fatalf("expected empty slot list beyond the window, got %d err=%v", len(resp.Slots), err)
	}
}

func TestListDayTodayExcludesStartedSlots(t *testing.T) {
	svc, _, _ := newTestService(0)
	// 10:15 UTC: the 10:00 slot is underway, 09:00 and 09:30 are over.
	svc.Now = func() time.Time {
		return time.Date(2026, 8, 31, 10, 15, 0, 0, time.UTC)
	}

	resp, err := svc.ListDay(context.Background(), "site-1", "2026-08-31")
	if err != nil {
		t.Fatalf("ListDay: %v", err)
	}
	if len(resp.Slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(resp.Slots))
	}
	for i, want := range []bool{false, false, false, true, true, true} {
		if resp.Slots[i].Available != want {
			t.Fatalf("slot %d availability = %v, want %v (%+v)",
				i, resp.Slots[i].Available, want, resp.Slots[i])
		}
	}
}

func TestCreateConfirmsWithoutDeposit(t *testing.T) {
	svc, repo, _ := newTestService(0)
	date := tomorrow()

	resp, err := svc.Create(context.Background(), "site-1", models.CreateReservationRequest{
		Date:      date,
		StartTime: slotStart(date, "09:00", t),
		EndTime:   slotStart(date, "09:30", t),
		Name:      "Ada",
		Email:     "ada@example.com",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !resp.Confirmed || resp.RequiresPayment || resp.Warning != "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected one stored reservation")
	}
}

func TestCreateSnapsOffGridTimeWithWarning(t *testing.T) {
	svc, _, _ := newTestService(0)
	date := tomorrow()

	resp, err := svc.Create(context.Background(), "site-1", models.CreateReservationRequest{
		Date:      date,
		StartTime: slotStart(date, "09:40", t), // inside the 09:30 slot
		Name:      "Ada",
		Email:     "ada@example.com",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !resp.Confirmed || resp.Warning == "" {
		t.Fatalf("expected confirmation with adjustment warning, got %+v", resp)
	}
}

func TestCreateRejectsConflict(t *testing.T) {
	svc, repo, _ := newTestService(0)
	date := tomorrow()
	taken := models.Reservation{
		ID: "r1", SiteID: "site-1", Date: date,
		StartTime: slotStart(date, "09:00", t),
		EndTime:   slotStart(date, "09:30", t),
		Status:    models.ReservationConfirmed,
	}
	if err := repo.Create(&taken); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := svc.Create(context.Background(), "site-1", models.CreateReservationRequest{
		Date:      date,
		StartTime: slotStart(date, "09:00", t),
		Name:      "Bob",
		Email:     "bob@example.com",
	})
	var bookingErr *BookingError
	if !errors.As(err, &bookingErr) || bookingErr.Code != "slotError" {
		t.Fatalf("expected slot error, got %v", err)
	}
}

func TestCreateHoneypotAndMissingFields(t *testing.T) {
	svc, _, _ := newTestService(0)
	date := tomorrow()

	_, err := svc.Create(context.Background(), "site-1", models.CreateReservationRequest{
		Date: date, StartTime: slotStart(date, "09:00", t),
		Name: "Bot", Email: "bot@example.com", Website: "https://spam.example",
	})
	if err == nil {
		t.Fatalf("expected honeypot rejection")
	}

	_, err = svc.Create(context.Background(), "site-1", models.CreateReservationRequest{
		Date: date, StartTime: slotStart(date, "09:00", t), Name: "", Email: "",
	})
	var bookingErr *BookingError
	if !errors.As(err, &bookingErr) || bookingErr.Code != "validationError" {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateWithDepositHoldsAndCancelReleases(t *testing.T) {
	svc, repo, payments := newTestService(1500)
	date := tomorrow()

	resp, err := svc.Create(context.Background(), "site-1", models.CreateReservationRequest{
		Date:      date,
		StartTime: slotStart(date, "10:00", t),
		Name:      "Ada",
		Email:     "ada@example.com",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !resp.RequiresPayment || resp.ClientSecret == "" || resp.EventID == "" {
		t.Fatalf("expected payment-required response, got %+v", resp)
	}

	held, err := repo.GetByID(resp.EventID)
	if err != nil || held.Status != models.ReservationPendingPayment {
		t.Fatalf("expected held reservation, got %+v err=%v", held, err)
	}

	// The held slot blocks a second visitor.
	_, err = svc.Create(context.Background(), "site-1", models.CreateReservationRequest{
		Date: date, StartTime: slotStart(date, "10:00", t),
		Name: "Bob", Email: "bob@example.com",
	})
	if err == nil {
		t.Fatalf("expected the hold to block the slot")
	}

	// Cancelling the pending payment releases it.
	err = svc.CancelPendingPayment(context.Background(), "site-1", models.PendingPayment{
		EventID:           resp.EventID,
		Date:              resp.Date,
		CheckoutSessionID: resp.CheckoutSessionID,
	})
	if err != nil {
		t.Fatalf("CancelPendingPayment: %v", err)
	}
	if len(payments.expired) != 1 || payments.expired[0] != resp.CheckoutSessionID {
		t.Fatalf("expected the checkout session to be expired, got %v", payments.expired)
	}
	released, _ := repo.GetByID(resp.EventID)
	if released.Status != models.ReservationCancelled {
		t.Fatalf("expected released hold, got %s", released.Status)
	}

	// After release the slot books again.
	_, err = svc.Create(context.Background(), "site-1", models.CreateReservationRequest{
		Date: date, StartTime: slotStart(date, "10:00", t),
		Name: "Bob", Email: "bob@example.com",
	})
	if err != nil {
		t.Fatalf("expected slot to be free after release, got %v", err)
	}
}

func TestReleaseExpiredHold(t *testing.T) {
	svc, repo, payments := newTestService(1500)
	date := tomorrow()

	resp, err := svc.Create(context.Background(), "site-1", models.CreateReservationRequest{
		Date: date, StartTime: slotStart(date, "11:00", t),
		Name: "Ada", Email: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.ReleaseExpiredHold(context.Background(), resp.EventID); err != nil {
		t.Fatalf("ReleaseExpiredHold: %v", err)
	}
	res, _ := repo.GetByID(resp.EventID)
	if res.Status != models.ReservationCancelled {
		t.Fatalf("expected cancelled hold, got %s", res.Status)
	}
	if len(payments.expired) != 1 {
		t.Fatalf("expected session expiry during sweep")
	}

	// Idempotent: a second sweep run is a no-op.
	if err := svc.ReleaseExpiredHold(context.Background(), resp.EventID); err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if len(payments.expired) != 1 {
		t.Fatalf("sweep must not expire the session twice")
	}
}
