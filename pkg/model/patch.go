package model

// ApplyTo merges the patch into the booking. Nil fields are skipped.
func (p *BookingPatch) ApplyTo(b *Booking) {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Phone != nil {
		b.Phone = *p.Phone
	}
	if p.Email != nil {
		b.Email = *p.Email
	}
	if p.Date != nil {
		b.Date = *p.Date
	}
	if p.Time != nil {
		b.Time = *p.Time
	}
	if p.Package != nil {
		b.Package = *p.Package
	}
	if p.People != nil {
		b.People = *p.People
	}
	if p.TimeExtra != nil {
		b.TimeExtra = *p.TimeExtra
	}
	if p.Props != nil {
		b.Props = *p.Props
	}
	if p.Background != nil {
		b.Background = *p.Background
	}
	if p.Vehicle != nil {
		b.Vehicle = *p.Vehicle
	}
	if p.Notes != nil {
		b.Notes = *p.Notes
	}
	if p.Total != nil {
		b.Total = *p.Total
	}
}

// ChangesReservation reports whether applying the patch would move the
// booking to different slots, which requires re-running the conflict guard.
func (p *BookingPatch) ChangesReservation(b *Booking) bool {
	if p.Date != nil && *p.Date != b.Date {
		return true
	}
	if p.Time != nil && *p.Time != b.Time {
		return true
	}
	if p.TimeExtra != nil && *p.TimeExtra != b.TimeExtra {
		return true
	}
	return false
}

// ChangesPricing reports whether applying the patch touches a field the
// pricing formula depends on, requiring Total to be recomputed.
func (p *BookingPatch) ChangesPricing(b *Booking) bool {
	if p.Package != nil && *p.Package != b.Package {
		return true
	}
	if p.People != nil && *p.People != b.People {
		return true
	}
	if p.TimeExtra != nil && *p.TimeExtra != b.TimeExtra {
		return true
	}
	if p.Props != nil && *p.Props != b.Props {
		return true
	}
	return false
}
