package model

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no-show"
)

const (
	PackageBasic     = "basic"
	PackagePremium   = "premium"
	PackageExclusive = "exclusive"
)

const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Booking is the sole persisted entity. Date/Time/TimeExtra drive slot
// occupancy; Total is always recomputable from Package, People, TimeExtra
// and Props via the pricing formula and is never trusted from the client.
type Booking struct {
	ID         string    `json:"id,omitempty"`
	Name       string    `json:"name" validate:"required,min=2,max=100"`
	Phone      string    `json:"phone" validate:"required,min=8,max=20"`
	Email      string    `json:"email,omitempty" validate:"omitempty,email"`
	Date       string    `json:"date" validate:"required,booking_date"`
	Time       string    `json:"time" validate:"required,slot_time"`
	Package    string    `json:"package" validate:"required,oneof=basic premium exclusive"`
	People     int       `json:"people" validate:"required,min=1"`
	TimeExtra  int       `json:"timeExtra" validate:"oneof=0 30 60"`
	Props      bool      `json:"props"`
	Background string    `json:"background,omitempty"`
	Vehicle    string    `json:"vehicle,omitempty"`
	Total      int       `json:"total"`
	Status     string    `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled no-show"`
	Notes      string    `json:"notes,omitempty" validate:"omitempty,max=500"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty"`
}

// BookingPatch carries a partial update. Nil fields are left untouched.
type BookingPatch struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,min=8,max=20"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Date       *string `json:"date,omitempty" validate:"omitempty,booking_date"`
	Time       *string `json:"time,omitempty" validate:"omitempty,slot_time"`
	Package    *string `json:"package,omitempty" validate:"omitempty,oneof=basic premium exclusive"`
	People     *int    `json:"people,omitempty" validate:"omitempty,min=1"`
	TimeExtra  *int    `json:"timeExtra,omitempty" validate:"omitempty,oneof=0 30 60"`
	Props      *bool   `json:"props,omitempty"`
	Background *string `json:"background,omitempty"`
	Vehicle    *string `json:"vehicle,omitempty"`
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=500"`

	// Total is set internally when a pricing-relevant field changed. It is
	// never decoded from client input.
	Total *int `json:"-"`
}

// Occupies reports whether the booking still blocks its slots. Only
// cancelled bookings free their reservation; completed and no-show keep the
// historical record of the slot being used that day.
func (b *Booking) Occupies() bool {
	return b.Status != StatusCancelled
}

func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// statusEdges is the booking state machine. Terminal states have no edges.
var statusEdges = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// AllowedTransitions returns the states the booking may move to.
func (b *Booking) AllowedTransitions() []string {
	return statusEdges[b.Status]
}

func (b *Booking) CanTransitionTo(status string) bool {
	for _, next := range statusEdges[b.Status] {
		if next == status {
			return true
		}
	}
	return false
}

// PackageInfo is display metadata for a package tier. BaseDurationMin is
// the included session length; it does not affect slot occupancy, which is
// driven solely by TimeExtra.
type PackageInfo struct {
	BaseDurationMin int
	MaxPeople       int
}

var Packages = map[string]PackageInfo{
	PackageBasic:     {BaseDurationMin: 30, MaxPeople: 4},
	PackagePremium:   {BaseDurationMin: 60, MaxPeople: 4},
	PackageExclusive: {BaseDurationMin: 90, MaxPeople: 6},
}
