package service

import (
	"context"
	"io"
	"testing"

	"photobox/internal/bookings/validator"
	"photobox/pkg/config"
	apperrors "photobox/pkg/errors"
	"photobox/pkg/events"
	"photobox/pkg/logger"
	"photobox/pkg/model"
	"photobox/pkg/store"
)

func newTestService(t *testing.T) (BookingService, *store.Store) {
	t.Helper()

	log := logger.New(logger.Config{
		Level:  "error",
		Format: logger.FormatJSON,
		Output: io.Discard,
		App:    "test",
	})

	st, err := store.New(t.TempDir(), log)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	cfg := &config.Config{Log: log}
	svc := NewBookingService(st, validator.NewBookingValidator(log), events.NewLogPublisher(log), cfg)
	return svc, st
}

func newBooking(date, slot string) *model.Booking {
	return &model.Booking{
		Name:    "Putu Ayu",
		Phone:   "081234567890",
		Date:    date,
		Time:    slot,
		Package: model.PackageBasic,
		People:  2,
	}
}

func TestCreateAssignsTotalAndPendingStatus(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	b := newBooking("2026-09-10", "10:00")
	if err := svc.Create(ctx, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.ID != "BK001" {
		t.Errorf("expected ID BK001, got %q", b.ID)
	}
	if b.Status != model.StatusPending {
		t.Errorf("expected status pending, got %q", b.Status)
	}
	// basic package plus one extra person
	wantTotal := model.DefaultPriceBasic + model.DefaultExtraPerson
	if b.Total != wantTotal {
		t.Errorf("expected total %d, got %d", wantTotal, b.Total)
	}
	if b.Phone != "+6281234567890" {
		t.Errorf("expected normalized phone, got %q", b.Phone)
	}

	stored, ok := st.Get("BK001")
	if !ok {
		t.Fatal("booking not persisted")
	}
	if stored.Total != b.Total {
		t.Errorf("persisted total %d differs from returned %d", stored.Total, b.Total)
	}
}

func TestCreateAutoConfirm(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	settings := model.DefaultSettings()
	settings.AutoConfirm = true
	if err := st.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	b := newBooking("2026-09-10", "10:00")
	if err := svc.Create(ctx, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != model.StatusConfirmed {
		t.Errorf("expected auto-confirmed booking, got status %q", b.Status)
	}
}

func TestCreateRejectsDoubleBooking(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first := newBooking("2026-09-10", "10:00")
	first.TimeExtra = 30 // occupies 10:00 and 10:30
	if err := svc.Create(ctx, first); err != nil {
		t.Fatalf("unexpected error on first booking: %v", err)
	}

	cases := []struct {
		name string
		slot string
	}{
		{"same slot", "10:00"},
		{"extension slot", "10:30"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Create(ctx, newBooking("2026-09-10", tc.slot))
			if !apperrors.IsCode(err, apperrors.CodeSlotTaken) {
				t.Errorf("expected SLOT_TAKEN, got %v", err)
			}
		})
	}

	// same slot on another day is fine
	if err := svc.Create(ctx, newBooking("2026-09-11", "10:00")); err != nil {
		t.Errorf("different date should not conflict: %v", err)
	}
}

func TestCancelFreesSlots(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b := newBooking("2026-09-10", "14:00")
	if err := svc.Create(ctx, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Cancel(ctx, b.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	if err := svc.Create(ctx, newBooking("2026-09-10", "14:00")); err != nil {
		t.Errorf("cancelled booking should free its slot: %v", err)
	}
}

func TestCompletedBookingKeepsSlots(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b := newBooking("2026-09-10", "14:00")
	if err := svc.Create(ctx, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Transition(ctx, b.ID, model.StatusConfirmed); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if _, err := svc.Transition(ctx, b.ID, model.StatusCompleted); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	err := svc.Create(ctx, newBooking("2026-09-10", "14:00"))
	if !apperrors.IsCode(err, apperrors.CodeSlotTaken) {
		t.Errorf("completed booking should keep its slot, got %v", err)
	}
}

func TestCreateRejectsHoliday(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	settings := model.DefaultSettings()
	settings.Holidays = []string{"2026-09-10"}
	if err := st.SaveSettings(settings); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	err := svc.Create(ctx, newBooking("2026-09-10", "10:00"))
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Errorf("expected VALIDATION_ERROR for holiday, got %v", err)
	}
}

func TestCreateRejectsOutsideOperatingHours(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, slot := range []string{"07:30", "22:30"} {
		err := svc.Create(ctx, newBooking("2026-09-10", slot))
		if !apperrors.IsCode(err, apperrors.CodeValidation) {
			t.Errorf("slot %s: expected VALIDATION_ERROR, got %v", slot, err)
		}
	}

	// closing time itself is still bookable
	if err := svc.Create(ctx, newBooking("2026-09-10", "22:00")); err != nil {
		t.Errorf("closing slot should be bookable: %v", err)
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*model.Booking)
	}{
		{"off-grid minute", func(b *model.Booking) { b.Time = "10:15" }},
		{"bad date", func(b *model.Booking) { b.Date = "2026-13-40" }},
		{"unknown package", func(b *model.Booking) { b.Package = "deluxe" }},
		{"too many people", func(b *model.Booking) { b.People = 5 }},
		{"missing name", func(b *model.Booking) { b.Name = "" }},
		{"bad timeExtra", func(b *model.Booking) { b.TimeExtra = 45 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newBooking("2026-09-10", "10:00")
			tc.mutate(b)
			err := svc.Create(ctx, b)
			if !apperrors.IsCode(err, apperrors.CodeValidation) {
				t.Errorf("expected VALIDATION_ERROR, got %v", err)
			}
		})
	}
}

func TestUnparseablePhoneRejected(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b := newBooking("2026-09-10", "10:00")
	b.Phone = "not a phone"
	if err := svc.Create(ctx, b); !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Errorf("create: expected VALIDATION_ERROR, got %v", err)
	}

	good := newBooking("2026-09-10", "10:00")
	if err := svc.Create(ctx, good); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := "garbage"
	if _, err := svc.Edit(ctx, good.ID, &model.BookingPatch{Phone: &bad}); !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Errorf("edit: expected VALIDATION_ERROR, got %v", err)
	}
	current, err := svc.GetByID(ctx, good.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if current.Phone != "+6281234567890" {
		t.Errorf("failed edit mutated phone to %q", current.Phone)
	}
}

func TestEditExcludesSelfFromConflictCheck(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b := newBooking("2026-09-10", "10:00")
	if err := svc.Create(ctx, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// extending over its own base slot must not self-conflict
	extra := 30
	updated, err := svc.Edit(ctx, b.ID, &model.BookingPatch{TimeExtra: &extra})
	if err != nil {
		t.Fatalf("edit conflicted with itself: %v", err)
	}
	if updated.TimeExtra != 30 {
		t.Errorf("expected timeExtra 30, got %d", updated.TimeExtra)
	}
}

func TestEditRejectsMoveToTakenSlot(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a := newBooking("2026-09-10", "10:00")
	if err := svc.Create(ctx, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := newBooking("2026-09-10", "11:00")
	if err := svc.Create(ctx, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	slot := "10:00"
	_, err := svc.Edit(ctx, b.ID, &model.BookingPatch{Time: &slot})
	if !apperrors.IsCode(err, apperrors.CodeSlotTaken) {
		t.Errorf("expected SLOT_TAKEN, got %v", err)
	}

	// the failed edit must not have touched the booking
	current, getErr := svc.GetByID(ctx, b.ID)
	if getErr != nil {
		t.Fatalf("unexpected error: %v", getErr)
	}
	if current.Time != "11:00" {
		t.Errorf("failed edit mutated booking time to %q", current.Time)
	}
}

func TestEditRecomputesTotal(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b := newBooking("2026-09-10", "10:00")
	if err := svc.Create(ctx, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pkg := model.PackageExclusive
	people := 6
	extra := 60
	props := true
	updated, err := svc.Edit(ctx, b.ID, &model.BookingPatch{
		Package:   &pkg,
		People:    &people,
		TimeExtra: &extra,
		Props:     &props,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 350000 + 5*35000 + 90000 + 15000
	want := 630000
	if updated.Total != want {
		t.Errorf("expected recomputed total %d, got %d", want, updated.Total)
	}
}

func TestEditRejectsPeopleOverPackageMax(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b := newBooking("2026-09-10", "10:00")
	if err := svc.Create(ctx, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	people := 5 // basic allows 4
	_, err := svc.Edit(ctx, b.ID, &model.BookingPatch{People: &people})
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Errorf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestTransitionMatrix(t *testing.T) {
	cases := []struct {
		name    string
		path    []string
		attempt string
		ok      bool
	}{
		{"pending to confirmed", nil, model.StatusConfirmed, true},
		{"pending to cancelled", nil, model.StatusCancelled, true},
		{"pending to no-show", nil, model.StatusNoShow, true},
		{"pending straight to completed", nil, model.StatusCompleted, false},
		{"confirmed to completed", []string{model.StatusConfirmed}, model.StatusCompleted, true},
		{"confirmed to cancelled", []string{model.StatusConfirmed}, model.StatusCancelled, true},
		{"confirmed back to pending", []string{model.StatusConfirmed}, model.StatusPending, false},
		{"completed is terminal", []string{model.StatusConfirmed, model.StatusCompleted}, model.StatusCancelled, false},
		{"cancelled is terminal", []string{model.StatusCancelled}, model.StatusConfirmed, false},
		{"no-show is terminal", []string{model.StatusNoShow}, model.StatusConfirmed, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			ctx := context.Background()

			b := newBooking("2026-09-10", "10:00")
			if err := svc.Create(ctx, b); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, step := range tc.path {
				if _, err := svc.Transition(ctx, b.ID, step); err != nil {
					t.Fatalf("setup transition to %s failed: %v", step, err)
				}
			}

			_, err := svc.Transition(ctx, b.ID, tc.attempt)
			if tc.ok && err != nil {
				t.Errorf("expected transition to succeed, got %v", err)
			}
			if !tc.ok && !apperrors.IsCode(err, apperrors.CodeInvalidTransition) {
				t.Errorf("expected INVALID_TRANSITION, got %v", err)
			}
		})
	}
}

func TestDeleteUnknownBooking(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Delete(context.Background(), "BK999")
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestListFiltersAndOrders(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	seeds := []struct {
		date string
		slot string
	}{
		{"2026-09-10", "10:00"},
		{"2026-09-10", "11:00"},
		{"2026-09-11", "10:00"},
	}
	var ids []string
	for _, s := range seeds {
		b := newBooking(s.date, s.slot)
		if err := svc.Create(ctx, b); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ids = append(ids, b.ID)
	}
	if _, err := svc.Cancel(ctx, ids[1]); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	byDate, total, err := svc.List(ctx, Filter{Date: "2026-09-10"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(byDate) != 2 {
		t.Fatalf("expected 2 bookings on 2026-09-10, got total=%d len=%d", total, len(byDate))
	}

	pending, _, err := svc.List(ctx, Filter{Status: model.StatusPending})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("expected 2 pending bookings, got %d", len(pending))
	}

	all, _, err := svc.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// same-second creates fall back to ID order, newest first
	for i := 1; i < len(all); i++ {
		if all[i-1].CreatedAt.Before(all[i].CreatedAt) {
			t.Errorf("list not newest-first at index %d", i)
		}
	}

	page, total, err := svc.List(ctx, Filter{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 || len(page) != 1 {
		t.Errorf("expected total=3 page=1, got total=%d page=%d", total, len(page))
	}
}

func TestSlotGridThroughService(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	b := newBooking("2026-09-10", "10:00")
	b.TimeExtra = 30
	if err := svc.Create(ctx, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	grid, err := svc.SlotGrid(ctx, "2026-09-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(grid) != 29 {
		t.Fatalf("expected 29 slots, got %d", len(grid))
	}
	for _, slot := range grid {
		switch slot.Time {
		case "10:00", "10:30":
			if slot.Available {
				t.Errorf("slot %s should be occupied", slot.Time)
			}
		default:
			if !slot.Available {
				t.Errorf("slot %s should be free", slot.Time)
			}
		}
	}

	if _, err := svc.SlotGrid(ctx, "not-a-date"); !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for malformed date, got %v", err)
	}
}
