package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"festa/database/repository/memory"
	"festa/errs"
	"festa/models"
	"festa/services/auth"
	"festa/services/availability"
	"festa/services/notification"
)

const (
	testClientID     = "client-1"
	testProviderUser = "provider-user-1"
	testProviderID   = "prov-1"
	testPackageID    = "pkg-1"
	testEventDate    = "2026-06-15"
)

type fixture struct {
	svc       *DefaultBookingService
	providers *memory.ProviderRepo
	slots     *memory.SlotRepo
	events    *notification.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	providers := memory.NewProviderRepo()
	slots := memory.NewSlotRepo()
	recorder := &notification.Recorder{}

	provider := models.Provider{
		ID:           testProviderID,
		UserID:       testProviderUser,
		BusinessName: "Formația Harmony",
		Category:     models.CategoryBand,
		Location:     "București",
		Packages: []models.Package{
			{ID: testPackageID, ProviderID: testProviderID, Name: "Pachet Standard", Price: 2500},
			{ID: "pkg-retired", ProviderID: testProviderID, Name: "Pachet Vechi", Price: 1500, Retired: true},
		},
	}
	if err := providers.Create(&provider); err != nil {
		t.Fatalf("seed provider: %v", err)
	}

	svc := &DefaultBookingService{
		Repo:         memory.NewBookingRepo(),
		ProviderRepo: providers,
		Ledger:       &availability.DefaultLedger{Repo: slots},
		Publisher:    recorder,
		Now: func() time.Time {
			return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
		},
	}
	return &fixture{svc: svc, providers: providers, slots: slots, events: recorder}
}

func (f *fixture) request(t *testing.T) *models.Booking {
	t.Helper()
	booking, err := f.svc.Request(context.Background(), auth.ClientSession{ID: testClientID}, RequestInput{
		ProviderID: testProviderID,
		PackageID:  testPackageID,
		EventDate:  testEventDate,
		Message:    "Nuntă în aer liber",
	})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return booking
}

func (f *fixture) slotState(t *testing.T, date string) models.SlotState {
	t.Helper()
	slot, err := f.slots.Get(testProviderID, date)
	if err != nil {
		t.Fatalf("get slot: %v", err)
	}
	if slot == nil {
		return models.SlotFree
	}
	return slot.State
}

func TestRequest_CreatesPendingBookingAndHoldsSlot(t *testing.T) {
	f := newFixture(t)

	booking := f.request(t)

	if booking.Status != models.BookingPending {
		t.Fatalf("expected pending, got %s", booking.Status)
	}
	if booking.Version != 1 {
		t.Fatalf("expected version 1, got %d", booking.Version)
	}
	if booking.TotalPrice != 2500 {
		t.Fatalf("expected price snapshot 2500, got %d", booking.TotalPrice)
	}
	if got := f.slotState(t, testEventDate); got != models.SlotHeld {
		t.Fatalf("expected held slot, got %s", got)
	}

	events := f.events.Events()
	if len(events) != 1 || events[0].Type != models.EventBookingRequested {
		t.Fatalf("expected a single requested event, got %v", events)
	}
}

func TestRequest_Validation(t *testing.T) {
	f := newFixture(t)
	sess := auth.ClientSession{ID: testClientID}

	cases := []struct {
		name  string
		input RequestInput
		check func(error) bool
	}{
		{"malformed date", RequestInput{ProviderID: testProviderID, PackageID: testPackageID, EventDate: "15.06.2026"}, errs.IsValidation},
		{"past date", RequestInput{ProviderID: testProviderID, PackageID: testPackageID, EventDate: "2026-05-01"}, errs.IsValidation},
		{"unknown provider", RequestInput{ProviderID: "ghost", PackageID: testPackageID, EventDate: testEventDate}, errs.IsNotFound},
		{"foreign package", RequestInput{ProviderID: testProviderID, PackageID: "pkg-other", EventDate: testEventDate}, errs.IsValidation},
		{"retired package", RequestInput{ProviderID: testProviderID, PackageID: "pkg-retired", EventDate: testEventDate}, errs.IsValidation},
	}
	for _, tc := range cases {
		_, err := f.svc.Request(context.Background(), sess, tc.input)
		if !tc.check(err) {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
	}

	// None of the failed requests may leave a hold behind.
	if got := f.slotState(t, testEventDate); got != models.SlotFree {
		t.Fatalf("expected free slot after failed requests, got %s", got)
	}
	if len(f.events.Events()) != 0 {
		t.Fatal("expected no events from failed requests")
	}
}

func TestRequest_DoubleBookingConflict(t *testing.T) {
	f := newFixture(t)

	f.request(t)
	_, err := f.svc.Request(context.Background(), auth.ClientSession{ID: "client-2"}, RequestInput{
		ProviderID: testProviderID,
		PackageID:  testPackageID,
		EventDate:  testEventDate,
	})
	if !errs.IsConflict(err) {
		t.Fatalf("expected Conflict for taken date, got %v", err)
	}
}

func TestRequest_ConcurrentOneWinner(t *testing.T) {
	f := newFixture(t)

	const attempts = 32
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Request(context.Background(), auth.ClientSession{ID: testClientID}, RequestInput{
				ProviderID: testProviderID,
				PackageID:  testPackageID,
				EventDate:  testEventDate,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errs.IsConflict(err):
		default:
			t.Fatalf("unexpected error kind: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly 1 created booking, got %d", wins)
	}

	bookings, err := f.svc.Repo.ListByProvider(testProviderID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("expected 1 persisted booking, got %d", len(bookings))
	}
}

func TestAccept_ConfirmsBookingAndSlot(t *testing.T) {
	f := newFixture(t)
	booking := f.request(t)

	accepted, err := f.svc.Accept(context.Background(), auth.ProviderSession{ID: testProviderUser}, booking.ID, booking.Version)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Status != models.BookingConfirmed {
		t.Fatalf("expected confirmed, got %s", accepted.Status)
	}
	if accepted.Version != booking.Version+1 {
		t.Fatalf("expected version bump to %d, got %d", booking.Version+1, accepted.Version)
	}
	if got := f.slotState(t, testEventDate); got != models.SlotBooked {
		t.Fatalf("expected booked slot, got %s", got)
	}
}

func TestAccept_ForeignProviderDenied(t *testing.T) {
	f := newFixture(t)
	booking := f.request(t)

	_, err := f.svc.Accept(context.Background(), auth.ProviderSession{ID: "someone-else"}, booking.ID, booking.Version)
	if !errs.IsAuthorization(err) {
		t.Fatalf("expected Authorization, got %v", err)
	}

	// Denied accept must leave booking and slot untouched.
	current, err := f.svc.Repo.GetByID(booking.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if current.Status != models.BookingPending || current.Version != booking.Version {
		t.Fatalf("expected unchanged pending booking, got %s v%d", current.Status, current.Version)
	}
	if got := f.slotState(t, testEventDate); got != models.SlotHeld {
		t.Fatalf("expected slot still held, got %s", got)
	}
}

func TestAccept_StaleVersion(t *testing.T) {
	f := newFixture(t)
	booking := f.request(t)

	_, err := f.svc.Accept(context.Background(), auth.ProviderSession{ID: testProviderUser}, booking.ID, booking.Version+1)
	if !errs.IsConcurrentModification(err) {
		t.Fatalf("expected ConcurrentModification, got %v", err)
	}
	if got := f.slotState(t, testEventDate); got != models.SlotHeld {
		t.Fatalf("expected slot still held, got %s", got)
	}
}

func TestReject_FreesSlot(t *testing.T) {
	f := newFixture(t)
	booking := f.request(t)

	rejected, err := f.svc.Reject(context.Background(), auth.ProviderSession{ID: testProviderUser}, booking.ID, booking.Version)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != models.BookingCancelled {
		t.Fatalf("expected cancelled, got %s", rejected.Status)
	}
	if got := f.slotState(t, testEventDate); got != models.SlotFree {
		t.Fatalf("expected freed slot, got %s", got)
	}

	// The date can be booked again.
	f.request(t)
}

func TestCancel_PendingAndConfirmed(t *testing.T) {
	f := newFixture(t)
	sess := auth.ClientSession{ID: testClientID}

	pending := f.request(t)
	cancelled, err := f.svc.Cancel(context.Background(), sess, pending.ID, pending.Version)
	if err != nil {
		t.Fatalf("cancel pending: %v", err)
	}
	if cancelled.Status != models.BookingCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}
	if got := f.slotState(t, testEventDate); got != models.SlotFree {
		t.Fatalf("expected freed slot, got %s", got)
	}

	confirmed := f.request(t)
	if _, err := f.svc.Accept(context.Background(), auth.ProviderSession{ID: testProviderUser}, confirmed.ID, confirmed.Version); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := f.svc.Cancel(context.Background(), sess, confirmed.ID, confirmed.Version+1); err != nil {
		t.Fatalf("cancel confirmed: %v", err)
	}
	if got := f.slotState(t, testEventDate); got != models.SlotFree {
		t.Fatalf("expected freed slot after cancelling confirmed, got %s", got)
	}
}

func TestCancel_ForeignClientDenied(t *testing.T) {
	f := newFixture(t)
	booking := f.request(t)

	_, err := f.svc.Cancel(context.Background(), auth.ClientSession{ID: "client-2"}, booking.ID, booking.Version)
	if !errs.IsAuthorization(err) {
		t.Fatalf("expected Authorization, got %v", err)
	}
	if got := f.slotState(t, testEventDate); got != models.SlotHeld {
		t.Fatalf("expected slot still held, got %s", got)
	}
}

func TestTerminalStatesRejectTransitions(t *testing.T) {
	f := newFixture(t)
	sess := auth.ClientSession{ID: testClientID}
	provSess := auth.ProviderSession{ID: testProviderUser}

	booking := f.request(t)
	cancelled, err := f.svc.Cancel(context.Background(), sess, booking.ID, booking.Version)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if _, err := f.svc.Accept(context.Background(), provSess, cancelled.ID, cancelled.Version); !errs.IsInvalidState(err) {
		t.Fatalf("expected InvalidState accepting cancelled, got %v", err)
	}
	if _, err := f.svc.Reject(context.Background(), provSess, cancelled.ID, cancelled.Version); !errs.IsInvalidState(err) {
		t.Fatalf("expected InvalidState rejecting cancelled, got %v", err)
	}
	if _, err := f.svc.Cancel(context.Background(), sess, cancelled.ID, cancelled.Version); !errs.IsInvalidState(err) {
		t.Fatalf("expected InvalidState cancelling cancelled, got %v", err)
	}
	if _, err := f.svc.CompleteEvent(context.Background(), cancelled.ID); !errs.IsInvalidState(err) {
		t.Fatalf("expected InvalidState completing cancelled, got %v", err)
	}
}

func TestCompleteEvent_LeavesSlotConsumed(t *testing.T) {
	f := newFixture(t)
	booking := f.request(t)

	if _, err := f.svc.CompleteEvent(context.Background(), booking.ID); !errs.IsInvalidState(err) {
		t.Fatalf("expected InvalidState completing pending, got %v", err)
	}

	if _, err := f.svc.Accept(context.Background(), auth.ProviderSession{ID: testProviderUser}, booking.ID, booking.Version); err != nil {
		t.Fatalf("accept: %v", err)
	}
	completed, err := f.svc.CompleteEvent(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != models.BookingCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}
	// A completed event's date is history, not inventory.
	if got := f.slotState(t, testEventDate); got != models.SlotBooked {
		t.Fatalf("expected slot to stay booked, got %s", got)
	}
}

func TestPriceSnapshotSurvivesPackageEdit(t *testing.T) {
	f := newFixture(t)
	booking := f.request(t)

	provider, err := f.providers.GetByID(testProviderID)
	if err != nil {
		t.Fatalf("get provider: %v", err)
	}
	provider.Packages[0].Price = 9999
	if err := f.providers.Update(provider); err != nil {
		t.Fatalf("update provider: %v", err)
	}

	current, err := f.svc.Repo.GetByID(booking.ID)
	if err != nil {
		t.Fatalf("get booking: %v", err)
	}
	if current.TotalPrice != 2500 {
		t.Fatalf("expected snapshot 2500 after package edit, got %d", current.TotalPrice)
	}
}

func TestLifecycleEventSequence(t *testing.T) {
	f := newFixture(t)
	booking := f.request(t)

	if _, err := f.svc.Accept(context.Background(), auth.ProviderSession{ID: testProviderUser}, booking.ID, 1); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := f.svc.CompleteEvent(context.Background(), booking.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	want := []models.BookingEventType{
		models.EventBookingRequested,
		models.EventBookingAccepted,
		models.EventBookingCompleted,
	}
	events := f.events.Events()
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, eventType := range want {
		if events[i].Type != eventType {
			t.Fatalf("event %d: expected %s, got %s", i, eventType, events[i].Type)
		}
		if events[i].BookingID != booking.ID {
			t.Fatalf("event %d: wrong booking id %s", i, events[i].BookingID)
		}
	}
}

func TestGetBooking_Authorization(t *testing.T) {
	f := newFixture(t)
	booking := f.request(t)

	if _, err := f.svc.GetBooking(auth.ClientSession{ID: testClientID}, booking.ID); err != nil {
		t.Fatalf("client get: %v", err)
	}
	if _, err := f.svc.GetBooking(auth.ProviderSession{ID: testProviderUser}, booking.ID); err != nil {
		t.Fatalf("provider get: %v", err)
	}
	if _, err := f.svc.GetBooking(auth.ClientSession{ID: "stranger"}, booking.ID); !errs.IsAuthorization(err) {
		t.Fatalf("expected Authorization for foreign client, got %v", err)
	}
	if _, err := f.svc.GetBooking(auth.ProviderSession{ID: "stranger"}, booking.ID); !errs.IsAuthorization(err) {
		t.Fatalf("expected Authorization for foreign provider, got %v", err)
	}
	if _, err := f.svc.GetBooking(auth.ClientSession{ID: testClientID}, "missing"); !errs.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestListForProviderWithoutProfile(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListForProvider(auth.ProviderSession{ID: "no-profile"})
	if !errs.IsNotFound(err) {
		t.Fatalf("expected NotFound for missing provider profile, got %v", err)
	}
}
