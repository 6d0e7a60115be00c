package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aurelia-labs/salon-scheduler/internal/domain/schedule"
)

func timePtr(t time.Time) *time.Time { return &t }
func uintPtr(v uint) *uint           { return &v }
func floatPtr(v float64) *float64    { return &v }
func strPtr(s string) *string        { return &s }

func TestUpdateAppointmentReschedule(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ap, err := f.createUC.Execute(ctx, CreateAppointmentInput{
		ClientID: 1, TherapistID: 5, ServiceID: 10, StartTime: slot(10, 0),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := f.updateUC.Execute(ctx, UpdateAppointmentInput{
		ID:        ap.ID,
		StartTime: timePtr(slot(14, 0)),
		EndTime:   timePtr(slot(15, 0)),
	})
	if err != nil {
		t.Fatalf("reschedule failed: %v", err)
	}
	if !got.StartTime.Equal(slot(14, 0)) || !got.EndTime.Equal(slot(15, 0)) {
		t.Fatalf("window = %v-%v", got.StartTime, got.EndTime)
	}
}

func TestUpdateAppointmentSelfOverlapAllowed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ap, err := f.createUC.Execute(ctx, CreateAppointmentInput{
		ClientID: 1, TherapistID: 5, ServiceID: 10, StartTime: slot(10, 0),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Shifting by 30 minutes overlaps the appointment's own old slot;
	// the conflict scan must exclude itself.
	if _, err := f.updateUC.Execute(ctx, UpdateAppointmentInput{
		ID:        ap.ID,
		StartTime: timePtr(slot(10, 30)),
		EndTime:   timePtr(slot(11, 30)),
	}); err != nil {
		t.Fatalf("self-overlapping reschedule must succeed: %v", err)
	}
}

func TestUpdateAppointmentRescheduleIntoConflict(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.createUC.Execute(ctx, CreateAppointmentInput{
		ClientID: 1, TherapistID: 5, ServiceID: 10, StartTime: slot(10, 0),
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := f.createUC.Execute(ctx, CreateAppointmentInput{
		ClientID: 1, TherapistID: 5, ServiceID: 10, StartTime: slot(14, 0),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = f.updateUC.Execute(ctx, UpdateAppointmentInput{
		ID:        second.ID,
		StartTime: timePtr(slot(10, 30)),
		EndTime:   timePtr(slot(11, 30)),
	})
	var oe *schedule.OverlapError
	if !errors.As(err, &oe) {
		t.Fatalf("expected OverlapError, got %v", err)
	}
}

func TestUpdateAppointmentRescheduleOutsideHours(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ap, err := f.createUC.Execute(ctx, CreateAppointmentInput{
		ClientID: 1, TherapistID: 5, ServiceID: 10, StartTime: slot(10, 0),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = f.updateUC.Execute(ctx, UpdateAppointmentInput{
		ID:        ap.ID,
		StartTime: timePtr(slot(18, 0)),
		EndTime:   timePtr(slot(19, 0)),
	})
	var we *schedule.OutsideWorkingHoursError
	if !errors.As(err, &we) {
		t.Fatalf("expected OutsideWorkingHoursError, got %v", err)
	}
}

func TestUpdateAppointmentTherapistChangeReruns(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.createUC.Execute(ctx, CreateAppointmentInput{
		ClientID: 1, TherapistID: 6, ServiceID: 10, StartTime: slot(10, 0),
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	mine, err := f.createUC.Execute(ctx, CreateAppointmentInput{
		ClientID: 1, TherapistID: 5, ServiceID: 10, StartTime: slot(10, 0),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Moving the booking onto Boris collides with his 10:00 slot.
	_, err = f.updateUC.Execute(ctx, UpdateAppointmentInput{
		ID:          mine.ID,
		TherapistID: uintPtr(6),
	})
	var oe *schedule.OverlapError
	if !errors.As(err, &oe) {
		t.Fatalf("therapist change must re-run the conflict check, got %v", err)
	}
}

func TestUpdateAppointmentServiceChangeResnapshotsPrice(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ap, err := f.createUC.Execute(ctx, CreateAppointmentInput{
		ClientID: 1, TherapistID: 5, ServiceID: 10, StartTime: slot(10, 0),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := f.updateUC.Execute(ctx, UpdateAppointmentInput{
		ID:        ap.ID,
		ServiceID: uintPtr(11),
	})
	if err != nil {
		t.Fatalf("service change failed: %v", err)
	}
	if got.Price != 35 {
		t.Errorf("price = %v, want the new service's 35", got.Price)
	}

	// An explicit price in the same update wins over the snapshot.
	got, err = f.updateUC.Execute(ctx, UpdateAppointmentInput{
		ID:        ap.ID,
		ServiceID: uintPtr(10),
		Price:     floatPtr(99),
	})
	if err != nil {
		t.Fatalf("service change failed: %v", err)
	}
	if got.Price != 99 {
		t.Errorf("price = %v, want the explicit 99", got.Price)
	}
}

func TestUpdateAppointmentNotesOnlySkipsChecks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ap, err := f.createUC.Execute(ctx, CreateAppointmentInput{
		ClientID: 1, TherapistID: 5, ServiceID: 10, StartTime: slot(10, 0),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := f.updateUC.Execute(ctx, UpdateAppointmentInput{
		ID:    ap.ID,
		Notes: strPtr("bring own towel"),
	})
	if err != nil {
		t.Fatalf("notes-only update failed: %v", err)
	}
	if got.Notes != "bring own towel" {
		t.Errorf("notes = %q", got.Notes)
	}
}

func TestUpdateAppointmentNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.updateUC.Execute(context.Background(), UpdateAppointmentInput{
		ID:    42,
		Notes: strPtr("x"),
	})
	var nf *schedule.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestUpdateAppointmentInvertedWindow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	ap, err := f.createUC.Execute(ctx, CreateAppointmentInput{
		ClientID: 1, TherapistID: 5, ServiceID: 10, StartTime: slot(10, 0),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = f.updateUC.Execute(ctx, UpdateAppointmentInput{
		ID:      ap.ID,
		EndTime: timePtr(slot(9, 30)),
	})
	var ve *schedule.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
