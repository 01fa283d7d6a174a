package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"photobox/pkg/config"
	apperrors "photobox/pkg/errors"
	"photobox/pkg/model"
	"photobox/pkg/sanitizer"
)

type Store interface {
	Get(id string) (*model.Booking, bool)
	LoadSettings() model.Settings
}

// Link is a ready-to-open wa.me deep link plus the message it carries.
type Link struct {
	BookingID string `json:"bookingId"`
	Phone     string `json:"phone"`
	URL       string `json:"url"`
	Message   string `json:"message"`
}

type WhatsAppService interface {
	ConfirmationLink(ctx context.Context, bookingID string) (*Link, error)
}

type whatsappService struct {
	store Store
	cfg   *config.Config
}

func NewWhatsAppService(store Store, cfg *config.Config) WhatsAppService {
	return &whatsappService{
		store: store,
		cfg:   cfg,
	}
}

func (s *whatsappService) ConfirmationLink(_ context.Context, bookingID string) (*Link, error) {
	if bookingID == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, ok := s.store.Get(bookingID)
	if !ok {
		return nil, apperrors.NotFound("Booking", bookingID)
	}

	number := sanitizer.WhatsAppNumber(booking.Phone)
	if number == "" {
		return nil, apperrors.Validation("Booking has no valid WhatsApp number", map[string]any{
			"phone": booking.Phone,
		})
	}

	settings := s.store.LoadSettings()
	message := ConfirmationMessage(booking, settings)

	return &Link{
		BookingID: booking.ID,
		Phone:     number,
		URL:       fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(message)),
		Message:   message,
	}, nil
}

// ConfirmationMessage renders the text the studio sends after a booking
// comes in.
func ConfirmationMessage(b *model.Booking, settings model.Settings) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Halo %s!\n\n", b.Name)
	fmt.Fprintf(&sb, "Booking kamu di %s sudah kami terima:\n", settings.StudioName)
	fmt.Fprintf(&sb, "- ID: %s\n", b.ID)
	fmt.Fprintf(&sb, "- Tanggal: %s\n", b.Date)
	fmt.Fprintf(&sb, "- Jam: %s\n", b.Time)
	fmt.Fprintf(&sb, "- Paket: %s (%d orang)\n", titleCase(b.Package), b.People)
	if b.TimeExtra > 0 {
		fmt.Fprintf(&sb, "- Tambahan waktu: %d menit\n", b.TimeExtra)
	}
	fmt.Fprintf(&sb, "- Total: %s\n\n", FormatRupiah(b.Total))
	switch b.Status {
	case model.StatusConfirmed:
		sb.WriteString("Booking sudah dikonfirmasi. Sampai jumpa di studio!")
	default:
		sb.WriteString("Mohon tunggu konfirmasi dari admin ya.")
	}
	return sb.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FormatRupiah renders an amount as "Rp 150.000".
func FormatRupiah(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)
	return sign + "Rp " + strings.Join(groups, ".")
}
