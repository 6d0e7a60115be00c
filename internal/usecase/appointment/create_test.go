package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aurelia-labs/salon-scheduler/internal/domain/schedule"
)

func TestCreateAppointment(t *testing.T) {
	f := newFixture()

	ap, err := f.createUC.Execute(context.Background(), CreateAppointmentInput{
		ClientID:    1,
		TherapistID: 5,
		ServiceID:   10,
		StartTime:   slot(10, 0),
		ActorID:     1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ap.Status != string(schedule.StatusScheduled) {
		t.Errorf("initial status = %q", ap.Status)
	}
	if ap.Reference == "" {
		t.Error("reference must be generated")
	}
	// end derived from the 60-minute service
	if !ap.EndTime.Equal(slot(11, 0)) {
		t.Errorf("end time = %v, want 11:00", ap.EndTime)
	}
	// price snapshotted from the service
	if ap.Price != 50 {
		t.Errorf("price = %v, want the service price 50", ap.Price)
	}
	if len(f.store.apps) != 1 {
		t.Fatalf("store holds %d appointments", len(f.store.apps))
	}
	if f.notifier.created != 1 {
		t.Errorf("confirmation notifications = %d", f.notifier.created)
	}
	if f.cache.calls != 1 {
		t.Errorf("cache invalidations = %d", f.cache.calls)
	}
}

func TestCreateAppointmentExplicitPriceAndEnd(t *testing.T) {
	f := newFixture()

	ap, err := f.createUC.Execute(context.Background(), CreateAppointmentInput{
		ClientID:    1,
		TherapistID: 5,
		ServiceID:   10,
		StartTime:   slot(10, 0),
		EndTime:     slot(12, 0),
		Price:       75,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Price != 75 {
		t.Errorf("explicit price overridden: %v", ap.Price)
	}
	if !ap.EndTime.Equal(slot(12, 0)) {
		t.Errorf("explicit end overridden: %v", ap.EndTime)
	}
}

func TestCreateAppointmentRejectsDoubleBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	in := CreateAppointmentInput{
		ClientID: 1, TherapistID: 5, ServiceID: 10, StartTime: slot(10, 0),
	}
	if _, err := f.createUC.Execute(ctx, in); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	_, err := f.createUC.Execute(ctx, in)
	var oe *schedule.OverlapError
	if !errors.As(err, &oe) {
		t.Fatalf("expected OverlapError, got %v", err)
	}
	if len(f.store.apps) != 1 {
		t.Fatalf("the failed booking leaked into the store: %d rows", len(f.store.apps))
	}
	if f.notifier.created != 1 {
		t.Errorf("failed booking must not notify, got %d", f.notifier.created)
	}
}

func TestCreateAppointmentPartialOverlapRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.createUC.Execute(ctx, CreateAppointmentInput{
		ClientID: 1, TherapistID: 5, ServiceID: 10, StartTime: slot(10, 0),
	}); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	_, err := f.createUC.Execute(ctx, CreateAppointmentInput{
		ClientID: 1, TherapistID: 5, ServiceID: 10, StartTime: slot(10, 30),
	})
	var oe *schedule.OverlapError
	if !errors.As(err, &oe) {
		t.Fatalf("10:30-11:30 must collide with 10:00-11:00, got %v", err)
	}
	if len(oe.Conflicts) != 1 {
		t.Fatalf("conflicts = %+v", oe.Conflicts)
	}
}

func TestCreateAppointmentBackToBackAllowed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.createUC.Execute(ctx, CreateAppointmentInput{
		ClientID: 1, TherapistID: 5, ServiceID: 10, StartTime: slot(10, 0),
	}); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	if _, err := f.createUC.Execute(ctx, CreateAppointmentInput{
		ClientID: 1, TherapistID: 5, ServiceID: 10, StartTime: slot(11, 0),
	}); err != nil {
		t.Fatalf("11:00-12:00 is back-to-back, must be allowed: %v", err)
	}
}

func TestCreateAppointmentOtherTherapistSameSlot(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.createUC.Execute(ctx, CreateAppointmentInput{
		ClientID: 1, TherapistID: 5, ServiceID: 10, StartTime: slot(10, 0),
	}); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	if _, err := f.createUC.Execute(ctx, CreateAppointmentInput{
		ClientID: 1, TherapistID: 6, ServiceID: 10, StartTime: slot(10, 0),
	}); err != nil {
		t.Fatalf("a different therapist can take the same slot: %v", err)
	}
}

func TestCreateAppointmentOutsideWorkingHours(t *testing.T) {
	f := newFixture()

	_, err := f.createUC.Execute(context.Background(), CreateAppointmentInput{
		ClientID: 1, TherapistID: 5, ServiceID: 10, StartTime: slot(8, 0),
	})
	var we *schedule.OutsideWorkingHoursError
	if !errors.As(err, &we) {
		t.Fatalf("expected OutsideWorkingHoursError, got %v", err)
	}
}

func TestCreateAppointmentUnknownService(t *testing.T) {
	f := newFixture()

	_, err := f.createUC.Execute(context.Background(), CreateAppointmentInput{
		ClientID: 1, TherapistID: 5, ServiceID: 999, StartTime: slot(10, 0),
	})
	var nf *schedule.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestCreateAppointmentMissingInput(t *testing.T) {
	f := newFixture()

	_, err := f.createUC.Execute(context.Background(), CreateAppointmentInput{
		TherapistID: 5, ServiceID: 10, StartTime: slot(10, 0),
	})
	var ve *schedule.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	_, err = f.createUC.Execute(context.Background(), CreateAppointmentInput{
		ClientID: 1, TherapistID: 5, ServiceID: 10,
	})
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError for missing start, got %v", err)
	}
}

func TestCancelledSlotCanBeRebooked(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ap, err := f.createUC.Execute(ctx, CreateAppointmentInput{
		ClientID: 1, TherapistID: 5, ServiceID: 10, StartTime: slot(10, 0),
	})
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	if _, err := f.statusUC.Execute(ctx, TransitionStatusInput{
		ID:                 ap.ID,
		Status:             schedule.StatusCancelled,
		CancellationReason: "client called off",
	}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if _, err := f.createUC.Execute(ctx, CreateAppointmentInput{
		ClientID: 1, TherapistID: 5, ServiceID: 10, StartTime: slot(10, 0),
	}); err != nil {
		t.Fatalf("a cancelled booking must free its slot: %v", err)
	}
}

func TestCreateAppointmentStoresUTC(t *testing.T) {
	f := newFixture()

	loc := time.FixedZone("CET", 3600)
	localStart := time.Date(2026, 3, 2, 11, 0, 0, 0, loc) // 10:00 UTC

	ap, err := f.createUC.Execute(context.Background(), CreateAppointmentInput{
		ClientID: 1, TherapistID: 5, ServiceID: 10, StartTime: localStart,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.StartTime.Location() != time.UTC {
		t.Errorf("start stored in %v, want UTC", ap.StartTime.Location())
	}
	if !ap.StartTime.Equal(slot(10, 0)) {
		t.Errorf("start = %v, want 10:00 UTC", ap.StartTime)
	}
}
