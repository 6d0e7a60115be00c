package appointment

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aurelia-labs/salon-scheduler/internal/audit"
	"github.com/aurelia-labs/salon-scheduler/internal/domain/schedule"
	"github.com/aurelia-labs/salon-scheduler/internal/models"
)

// ======================================================
// IN-MEMORY FAKES
// ======================================================

type memStore struct {
	apps   []models.Appointment
	nextID uint
}

func newMemStore() *memStore {
	return &memStore{nextID: 1}
}

func (s *memStore) FindOverlapping(
	_ context.Context,
	therapistID uint,
	start, end time.Time,
	excludeID uint,
) ([]models.Appointment, error) {
	var mine []models.Appointment
	for _, ap := range s.apps {
		if ap.TherapistID == therapistID {
			mine = append(mine, ap)
		}
	}
	return schedule.FilterOverlapping(mine, start, end, excludeID), nil
}

func (s *memStore) FindInRange(
	_ context.Context,
	start, end time.Time,
	f schedule.AppointmentFilters,
) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range s.apps {
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		if f.TherapistID != 0 && ap.TherapistID != f.TherapistID {
			continue
		}
		if f.ClientID != 0 && ap.ClientID != f.ClientID {
			continue
		}
		out = append(out, ap)
	}
	return out, nil
}

func (s *memStore) FindByID(_ context.Context, id uint) (*models.Appointment, error) {
	for i := range s.apps {
		if s.apps[i].ID == id {
			ap := s.apps[i]
			return &ap, nil
		}
	}
	return nil, &schedule.NotFoundError{Entity: "appointment", ID: id}
}

func (s *memStore) FindUpcoming(_ context.Context, from time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range s.apps {
		if ap.StartTime.After(from) && schedule.IsUpcomingStatus(schedule.Status(ap.Status)) {
			out = append(out, ap)
		}
	}
	return out, nil
}

// Create mirrors the real store: the conflict re-check and the insert
// are one atomic step.
func (s *memStore) Create(ctx context.Context, ap *models.Appointment) error {
	conflicts, _ := s.FindOverlapping(ctx, ap.TherapistID, ap.StartTime, ap.EndTime, 0)
	if len(conflicts) > 0 {
		return &schedule.OverlapError{Conflicts: schedule.Summarize(conflicts)}
	}
	ap.ID = s.nextID
	s.nextID++
	s.apps = append(s.apps, *ap)
	return nil
}

func (s *memStore) Update(ctx context.Context, ap *models.Appointment) error {
	if schedule.BlocksSlot(schedule.Status(ap.Status)) {
		conflicts, _ := s.FindOverlapping(ctx, ap.TherapistID, ap.StartTime, ap.EndTime, ap.ID)
		if len(conflicts) > 0 {
			return &schedule.OverlapError{Conflicts: schedule.Summarize(conflicts)}
		}
	}
	for i := range s.apps {
		if s.apps[i].ID == ap.ID {
			s.apps[i] = *ap
			return nil
		}
	}
	return &schedule.NotFoundError{Entity: "appointment", ID: ap.ID}
}

func (s *memStore) Delete(_ context.Context, id uint) error {
	for i := range s.apps {
		if s.apps[i].ID == id {
			s.apps = append(s.apps[:i], s.apps[i+1:]...)
			return nil
		}
	}
	return &schedule.NotFoundError{Entity: "appointment", ID: id}
}

func (s *memStore) FindDueReminders(_ context.Context, from, until time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range s.apps {
		if ap.ReminderSent || !schedule.IsUpcomingStatus(schedule.Status(ap.Status)) {
			continue
		}
		if ap.StartTime.After(from) && ap.StartTime.Before(until) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (s *memStore) MarkReminderSent(_ context.Context, id uint) error {
	for i := range s.apps {
		if s.apps[i].ID == id {
			s.apps[i].ReminderSent = true
			return nil
		}
	}
	return &schedule.NotFoundError{Entity: "appointment", ID: id}
}

var _ schedule.AppointmentStore = (*memStore)(nil)

// ---------- catalog ----------

type memCatalog struct {
	clients    map[uint]models.Client
	therapists map[uint]models.Therapist
	services   map[uint]models.Service
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		clients: map[uint]models.Client{
			1: {ID: 1, FirstName: "Mira", LastName: "Kovac"},
		},
		therapists: map[uint]models.Therapist{
			5: {ID: 5, Name: "Ana", Active: true},
			6: {ID: 6, Name: "Boris", Active: true},
		},
		services: map[uint]models.Service{
			10: {ID: 10, Name: "Massage", DurationMin: 60, Price: 50, Active: true},
			11: {ID: 11, Name: "Facial", DurationMin: 30, Price: 35, Active: true},
		},
	}
}

func (c *memCatalog) GetClient(_ context.Context, id uint) (*models.Client, error) {
	if cl, ok := c.clients[id]; ok {
		return &cl, nil
	}
	return nil, &schedule.NotFoundError{Entity: "client", ID: id}
}

func (c *memCatalog) GetTherapist(_ context.Context, id uint) (*models.Therapist, error) {
	if th, ok := c.therapists[id]; ok {
		return &th, nil
	}
	return nil, &schedule.NotFoundError{Entity: "therapist", ID: id}
}

func (c *memCatalog) GetService(_ context.Context, id uint) (*models.Service, error) {
	if sv, ok := c.services[id]; ok {
		return &sv, nil
	}
	return nil, &schedule.NotFoundError{Entity: "service", ID: id}
}

// ---------- config ----------

type memConfig struct {
	rules      map[int]models.ScheduleSettings
	exceptions map[string]models.ScheduleException
}

// newMemConfig opens every day of the week 09:00-17:00.
func newMemConfig() *memConfig {
	c := &memConfig{
		rules:      make(map[int]models.ScheduleSettings),
		exceptions: make(map[string]models.ScheduleException),
	}
	for wd := 0; wd < 7; wd++ {
		c.rules[wd] = models.ScheduleSettings{
			Weekday: wd, StartTime: "09:00", EndTime: "17:00", IsWorkingDay: true,
		}
	}
	return c
}

func (c *memConfig) GetRuleForDay(_ context.Context, weekday int) (*models.ScheduleSettings, error) {
	if r, ok := c.rules[weekday]; ok {
		return &r, nil
	}
	return nil, nil
}

func (c *memConfig) HasAnyRule(_ context.Context) (bool, error) {
	return len(c.rules) > 0, nil
}

func (c *memConfig) ReplaceAllRules(_ context.Context, rules []models.ScheduleSettings) error {
	c.rules = make(map[int]models.ScheduleSettings)
	for _, r := range rules {
		c.rules[r.Weekday] = r
	}
	return nil
}

func (c *memConfig) ListRules(_ context.Context) ([]models.ScheduleSettings, error) {
	var out []models.ScheduleSettings
	for _, r := range c.rules {
		out = append(out, r)
	}
	return out, nil
}

func (c *memConfig) GetExceptionForDate(_ context.Context, date string, _ uint) (*models.ScheduleException, error) {
	if e, ok := c.exceptions[date]; ok {
		return &e, nil
	}
	return nil, nil
}

func (c *memConfig) CreateException(_ context.Context, exc *models.ScheduleException) error {
	c.exceptions[exc.Date] = *exc
	return nil
}

func (c *memConfig) DeleteException(_ context.Context, _ uint) error { return nil }

func (c *memConfig) ListExceptions(_ context.Context) ([]models.ScheduleException, error) {
	return nil, nil
}

var _ schedule.ConfigStore = (*memConfig)(nil)

// ---------- notifier / cache ----------

type countingNotifier struct {
	created   int
	reminders int
}

func (n *countingNotifier) AppointmentCreated(_ context.Context, _ *models.Appointment) {
	n.created++
}

func (n *countingNotifier) AppointmentReminder(_ context.Context, _ *models.Appointment) error {
	n.reminders++
	return nil
}

type countingInvalidator struct {
	calls int
}

func (i *countingInvalidator) Invalidate(_ context.Context) { i.calls++ }

// ---------- shared fixture ----------

type fixture struct {
	store    *memStore
	catalog  *memCatalog
	checker  *schedule.Checker
	notifier *countingNotifier
	cache    *countingInvalidator
	dispatch *audit.Dispatcher
	createUC *CreateAppointment
	updateUC *UpdateAppointment
	statusUC *TransitionStatus
	deleteUC *DeleteAppointment
}

func newFixture() *fixture {
	store := newMemStore()
	catalog := newMemCatalog()
	checker := schedule.NewChecker(newMemConfig(), store, time.UTC)
	notifier := &countingNotifier{}
	inv := &countingInvalidator{}

	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatch := audit.NewDispatcher(audit.New(nil), discard)

	return &fixture{
		store:    store,
		catalog:  catalog,
		checker:  checker,
		notifier: notifier,
		cache:    inv,
		dispatch: dispatch,
		createUC: NewCreateAppointment(store, catalog, checker, notifier, dispatch, inv),
		updateUC: NewUpdateAppointment(store, catalog, checker, dispatch, inv),
		statusUC: NewTransitionStatus(store, dispatch, inv),
		deleteUC: NewDeleteAppointment(store, dispatch, inv),
	}
}

func slot(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}
