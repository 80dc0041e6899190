package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/parcelgate/courier/internal/domain"
)

// Consignor validates the sender address fields of a raw order.
// Required: AddressLine1, City, Zip.
func Consignor(raw map[string]any, limits ServiceLimits) (*Record, error) {
	return address(consignorRules, raw, limits)
}

// Consignee validates the recipient address fields of a raw order.
// Required: FullName, AddressLine1, City, Zip, Country.
func Consignee(raw map[string]any, limits ServiceLimits) (*Record, error) {
	return address(consigneeRules, raw, limits)
}

// address interprets one address rule table. On top of the generic field
// checks: Email fields must parse as an email address, Phone fields must be
// digits only within the effective length, Country fields are upper-cased
// 2-letter codes gated by the service's supported set.
func address(rules []Descriptor, raw map[string]any, limits ServiceLimits) (*Record, error) {
	rec := NewRecord()

	for _, d := range rules {
		value, ok, err := validateField(d, raw[d.Source], limits, addressStyle)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		s := value.(string)

		switch {
		case strings.Contains(d.Out, "Email"):
			if !emailRe.MatchString(s) {
				return nil, domain.Errorf(domain.EINVALID, "validate.address",
					"Field '%s' must be a valid email address.", d.Source)
			}

		case strings.Contains(d.Out, "Phone"):
			// Length is already capped above, so this fires only for
			// non-digit characters.
			if !digitsRe.MatchString(s) {
				return nil, domain.Errorf(domain.EINVALID, "validate.address",
					"Field '%s' must be a valid phone number (up to %d digits).",
					d.Source, limits.maxLen(d.Out, d.MaxLen))
			}

		case strings.Contains(d.Out, "Country"):
			s = strings.ToUpper(s)
			if utf8.RuneCountInString(s) != 2 {
				return nil, domain.Errorf(domain.EINVALID, "validate.address",
					"Field '%s' must be a valid 2-letter country code.", d.Source)
			}
			if err := limits.CheckCountry(s, d.Source, ""); err != nil {
				return nil, err
			}
		}

		rec.Set(d.Out, s)
	}

	return rec, nil
}
