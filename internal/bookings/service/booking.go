package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"photobox/internal/bookings/validator"
	"photobox/internal/pricing"
	"photobox/internal/schedule"
	"photobox/pkg/config"
	apperrors "photobox/pkg/errors"
	"photobox/pkg/events"
	"photobox/pkg/model"
	"photobox/pkg/sanitizer"
	"photobox/pkg/timeslot"
)

// Store is the persistence surface the service needs. *store.Store
// satisfies it.
type Store interface {
	ListAll() []model.Booking
	Get(id string) (*model.Booking, bool)
	Insert(b *model.Booking) (string, error)
	Update(id string, patch model.BookingPatch) (bool, error)
	SetStatus(id, status string) (bool, error)
	Remove(id string) error
	LoadSettings() model.Settings
}

// Filter narrows List results. Zero fields match everything.
type Filter struct {
	Date    string
	Status  string
	Package string
	Limit   int
	Offset  int
}

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context, filter Filter) ([]model.Booking, int, error)
	Edit(ctx context.Context, id string, patch *model.BookingPatch) (*model.Booking, error)
	Transition(ctx context.Context, id, status string) (*model.Booking, error)
	Cancel(ctx context.Context, id string) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
	SlotGrid(ctx context.Context, date string) ([]schedule.SlotStatus, error)
}

type bookingService struct {
	store     Store
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	store Store,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		store:     store,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	rawPhone := strings.TrimSpace(booking.Phone)
	s.sanitize(booking)
	if booking.Phone == "" && rawPhone != "" {
		return apperrors.Validation("Phone number cannot be parsed", map[string]any{
			"phone": rawPhone,
		})
	}

	if err := s.validator.Validate(booking); err != nil {
		return apperrors.Validation(err.Error(), nil)
	}

	settings := s.store.LoadSettings()
	if err := s.checkSchedulable(settings, booking.Date, booking.Time); err != nil {
		return err
	}

	if err := schedule.CheckReservation(s.store.ListAll(), booking.Date, booking.Time, booking.TimeExtra, ""); err != nil {
		return err
	}

	booking.Total = pricing.QuoteBooking(settings, booking)
	if booking.Status == "" {
		booking.Status = model.StatusPending
		if settings.AutoConfirm {
			booking.Status = model.StatusConfirmed
		}
	}

	id, err := s.store.Insert(booking)
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return err
	}

	s.cfg.Log.Info("Booking created",
		"id", id,
		"date", booking.Date,
		"time", booking.Time,
		"package", booking.Package,
		"status", booking.Status,
	)

	event := events.New(events.TypeBookingCreated, id)
	event.Booking = booking
	s.publish(ctx, event)
	return nil
}

func (s *bookingService) GetByID(_ context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	booking, ok := s.store.Get(id)
	if !ok {
		return nil, apperrors.NotFound("Booking", id)
	}
	return booking, nil
}

func (s *bookingService) List(_ context.Context, filter Filter) ([]model.Booking, int, error) {
	all := s.store.ListAll()

	matched := make([]model.Booking, 0, len(all))
	for _, b := range all {
		if filter.Date != "" && b.Date != filter.Date {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.Package != "" && b.Package != filter.Package {
			continue
		}
		matched = append(matched, b)
	}

	// newest first, ID as tiebreak for bookings created in the same second
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	limit := config.NormalizePaginationLimit(filter.Limit)
	offset := config.NormalizeOffset(filter.Offset)
	if offset >= total {
		return []model.Booking{}, total, nil
	}
	end := min(offset+limit, total)
	return matched[offset:end], total, nil
}

func (s *bookingService) Edit(ctx context.Context, id string, patch *model.BookingPatch) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	current, ok := s.store.Get(id)
	if !ok {
		return nil, apperrors.NotFound("Booking", id)
	}

	if patch.Phone != nil {
		// an unparseable phone normalizes to "", which omitempty would let
		// through and silently wipe the stored number
		if normalized := sanitizer.NormalizePhone(*patch.Phone); normalized == "" {
			return nil, apperrors.Validation("Phone number cannot be parsed", map[string]any{
				"phone": *patch.Phone,
			})
		}
	}
	s.sanitizePatch(patch)
	if err := s.validator.ValidatePatch(patch); err != nil {
		return nil, apperrors.Validation(err.Error(), nil)
	}

	merged := *current
	patch.ApplyTo(&merged)
	if info, ok := model.Packages[merged.Package]; ok && merged.People > info.MaxPeople {
		return nil, apperrors.Validation("Too many people for the selected package", map[string]any{
			"package":   merged.Package,
			"maxPeople": info.MaxPeople,
			"people":    merged.People,
		})
	}

	if patch.ChangesReservation(current) {
		settings := s.store.LoadSettings()
		if err := s.checkSchedulable(settings, merged.Date, merged.Time); err != nil {
			return nil, err
		}
		if err := schedule.CheckReservation(s.store.ListAll(), merged.Date, merged.Time, merged.TimeExtra, id); err != nil {
			return nil, err
		}
	}

	if patch.ChangesPricing(current) {
		total := pricing.QuoteBooking(s.store.LoadSettings(), &merged)
		patch.Total = &total
	}

	found, err := s.store.Update(id, *patch)
	if err != nil {
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFound("Booking", id)
	}

	updated, _ := s.store.Get(id)
	s.cfg.Log.Info("Booking updated", "id", id)

	event := events.New(events.TypeBookingUpdated, id)
	event.Booking = updated
	s.publish(ctx, event)
	return updated, nil
}

func (s *bookingService) Transition(ctx context.Context, id, status string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	current, ok := s.store.Get(id)
	if !ok {
		return nil, apperrors.NotFound("Booking", id)
	}
	if !current.CanTransitionTo(status) {
		return nil, apperrors.InvalidTransition(current.Status, status, current.AllowedTransitions())
	}

	found, err := s.store.SetStatus(id, status)
	if err != nil {
		s.cfg.Log.Error("Failed to change booking status", "id", id, "status", status, "error", err)
		return nil, err
	}
	if !found {
		return nil, apperrors.NotFound("Booking", id)
	}

	updated, _ := s.store.Get(id)
	s.cfg.Log.Info("Booking status changed", "id", id, "from", current.Status, "to", status)

	event := events.New(events.TypeBookingStatusChanged, id)
	event.Booking = updated
	event.FromStatus = current.Status
	event.ToStatus = status
	s.publish(ctx, event)
	return updated, nil
}

func (s *bookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	return s.Transition(ctx, id, model.StatusCancelled)
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if _, ok := s.store.Get(id); !ok {
		return apperrors.NotFound("Booking", id)
	}

	if err := s.store.Remove(id); err != nil {
		s.cfg.Log.Error("Failed to delete booking", "id", id, "error", err)
		return err
	}

	s.cfg.Log.Info("Booking deleted", "id", id)
	s.publish(ctx, events.New(events.TypeBookingDeleted, id))
	return nil
}

func (s *bookingService) SlotGrid(_ context.Context, date string) ([]schedule.SlotStatus, error) {
	if _, err := time.Parse(model.DateFormat, date); err != nil {
		return nil, apperrors.InvalidInput("Date must be in YYYY-MM-DD format")
	}

	grid, err := schedule.SlotGrid(s.store.ListAll(), s.store.LoadSettings(), date)
	if err != nil {
		return nil, apperrors.Internal("Failed to build slot grid", err)
	}
	return grid, nil
}

// checkSchedulable rejects holidays and start times outside operating
// hours. Extensions may run past closing; only the base slot is bounded.
func (s *bookingService) checkSchedulable(settings model.Settings, date, start string) error {
	if settings.IsHoliday(date) {
		return apperrors.Validation("Studio is closed on the selected date", map[string]any{
			"date": date,
		})
	}

	slot, err := timeslot.Parse(start)
	if err != nil {
		return apperrors.Validation("Time must be in HH:MM format", nil)
	}
	open, err := timeslot.Parse(settings.OpenTime)
	if err != nil {
		open, _ = timeslot.Parse(model.DefaultOpenTime)
	}
	closing, err := timeslot.Parse(settings.CloseTime)
	if err != nil {
		closing, _ = timeslot.Parse(model.DefaultCloseTime)
	}
	if slot.Before(open) || slot.After(closing) {
		return apperrors.Validation("Time is outside operating hours", map[string]any{
			"time":      start,
			"openTime":  open.String(),
			"closeTime": closing.String(),
		})
	}
	return nil
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.Name = sanitizer.NormalizeName(b.Name)
	b.Phone = sanitizer.NormalizePhone(b.Phone)
	b.Email = sanitizer.TrimAndNormalize(b.Email)
	b.Notes = sanitizer.NormalizeNotes(b.Notes)
	b.Background = sanitizer.TrimAndNormalize(b.Background)
	b.Vehicle = sanitizer.TrimAndNormalize(b.Vehicle)
}

func (s *bookingService) sanitizePatch(p *model.BookingPatch) {
	if p.Name != nil {
		v := sanitizer.NormalizeName(*p.Name)
		p.Name = &v
	}
	if p.Phone != nil {
		v := sanitizer.NormalizePhone(*p.Phone)
		p.Phone = &v
	}
	if p.Email != nil {
		v := sanitizer.TrimAndNormalize(*p.Email)
		p.Email = &v
	}
	if p.Notes != nil {
		v := sanitizer.NormalizeNotes(*p.Notes)
		p.Notes = &v
	}
	if p.Background != nil {
		v := sanitizer.TrimAndNormalize(*p.Background)
		p.Background = &v
	}
	if p.Vehicle != nil {
		v := sanitizer.TrimAndNormalize(*p.Vehicle)
		p.Vehicle = &v
	}
}

func (s *bookingService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"event_id", event.ID,
			"type", event.Type,
			"booking_id", event.BookingID,
			"error", err,
		)
	}
}
