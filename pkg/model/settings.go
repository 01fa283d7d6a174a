package model

// Settings is the studio-wide record stored under the settings key. Zero
// fields fall back to the defaults below when loaded, so a partially saved
// record stays usable.
type Settings struct {
	StudioName    string `json:"studioName"`
	StudioAddress string `json:"studioAddress"`
	StudioPhone   string `json:"studioPhone"`
	StudioEmail   string `json:"studioEmail"`

	OpenTime     string `json:"openTime"`
	CloseTime    string `json:"closeTime"`
	SlotDuration int    `json:"slotDuration"`
	// Holidays lists YYYY-MM-DD dates on which the studio is closed.
	Holidays []string `json:"holidays,omitempty"`

	PriceBasic     int `json:"priceBasic"`
	PricePremium   int `json:"pricePremium"`
	PriceExclusive int `json:"priceExclusive"`
	ExtraPerson    int `json:"extraPerson"`
	Extra30Min     int `json:"extra30min"`
	Extra60Min     int `json:"extra60min"`
	ExtraProps     int `json:"extraProps"`

	WhatsAppNotif bool `json:"whatsappNotif"`
	AutoConfirm   bool `json:"autoConfirm"`
	ReminderHours int  `json:"reminderHours"`
}

const (
	DefaultOpenTime     = "08:00"
	DefaultCloseTime    = "22:00"
	DefaultSlotDuration = 30

	DefaultPriceBasic     = 150000
	DefaultPricePremium   = 250000
	DefaultPriceExclusive = 350000
	DefaultExtraPerson    = 35000
	DefaultExtra30Min     = 50000
	DefaultExtra60Min     = 90000
	DefaultExtraProps     = 15000
)

// DefaultSettings mirrors the values the original studio operated with.
func DefaultSettings() Settings {
	return Settings{
		StudioName:    "Renwar Photobox",
		StudioAddress: "Dauh Umah, Jalan Kenangan",
		StudioPhone:   "+62 8123456789",
		StudioEmail:   "info@renwarphotobox.com",

		OpenTime:     DefaultOpenTime,
		CloseTime:    DefaultCloseTime,
		SlotDuration: DefaultSlotDuration,

		PriceBasic:     DefaultPriceBasic,
		PricePremium:   DefaultPricePremium,
		PriceExclusive: DefaultPriceExclusive,
		ExtraPerson:    DefaultExtraPerson,
		Extra30Min:     DefaultExtra30Min,
		Extra60Min:     DefaultExtra60Min,
		ExtraProps:     DefaultExtraProps,

		WhatsAppNotif: true,
		AutoConfirm:   false,
		ReminderHours: 1,
	}
}

// ApplyDefaults fills zero-valued fields from DefaultSettings.
func (s *Settings) ApplyDefaults() {
	def := DefaultSettings()
	if s.StudioName == "" {
		s.StudioName = def.StudioName
	}
	if s.StudioAddress == "" {
		s.StudioAddress = def.StudioAddress
	}
	if s.StudioPhone == "" {
		s.StudioPhone = def.StudioPhone
	}
	if s.StudioEmail == "" {
		s.StudioEmail = def.StudioEmail
	}
	if s.OpenTime == "" {
		s.OpenTime = def.OpenTime
	}
	if s.CloseTime == "" {
		s.CloseTime = def.CloseTime
	}
	if s.SlotDuration == 0 {
		s.SlotDuration = def.SlotDuration
	}
	if s.PriceBasic == 0 {
		s.PriceBasic = def.PriceBasic
	}
	if s.PricePremium == 0 {
		s.PricePremium = def.PricePremium
	}
	if s.PriceExclusive == 0 {
		s.PriceExclusive = def.PriceExclusive
	}
	if s.ExtraPerson == 0 {
		s.ExtraPerson = def.ExtraPerson
	}
	if s.Extra30Min == 0 {
		s.Extra30Min = def.Extra30Min
	}
	if s.Extra60Min == 0 {
		s.Extra60Min = def.Extra60Min
	}
	if s.ExtraProps == 0 {
		s.ExtraProps = def.ExtraProps
	}
	if s.ReminderHours == 0 {
		s.ReminderHours = def.ReminderHours
	}
}

// IsHoliday reports whether the studio is closed on the given YYYY-MM-DD
// date.
func (s *Settings) IsHoliday(date string) bool {
	for _, d := range s.Holidays {
		if d == date {
			return true
		}
	}
	return false
}
