package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// The studio's customers are overwhelmingly Indonesian, so local numbers
// (08xx...) parse under the ID region first.
var supportedRegions = []string{
	"ID",
}

// NormalizePhone returns the number in E.164 form, or "" when it cannot be
// parsed for any supported region.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	for _, region := range supportedRegions {
		parsed, err := phonenumbers.Parse(phone, region)
		if err == nil && phonenumbers.IsPossibleNumber(parsed) {
			return phonenumbers.Format(parsed, phonenumbers.E164)
		}
	}
	return ""
}

// WhatsAppNumber returns the digits wa.me expects: E.164 without the plus.
func WhatsAppNumber(phone string) string {
	normalized := NormalizePhone(phone)
	return strings.TrimPrefix(normalized, "+")
}
