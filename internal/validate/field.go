package validate

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/parcelgate/courier/internal/domain"
)

// msgStyle holds the failure wording for one record kind. The three kinds
// phrase the same failures differently and the differences are part of the
// API surface, so they live here as data rather than in branching code.
type msgStyle struct {
	empty   string // one %s: source key
	tooLong string // %s source key, %d max length
	notInt  string // one %s
	notNum  string // one %s
	atLeast string // %s source key, %v bound
	atMost  string // %s source key, %v bound

	// tooLongHint optionally appends advice to length failures.
	tooLongHint func(source string) string
}

var addressStyle = msgStyle{
	empty:   "Field '%s' cannot be empty.",
	tooLong: "Field '%s' exceeds maximum length of %d characters.",
	notInt:  "Field '%s' must be an integer.",
	notNum:  "Field '%s' must be a number.",
	atLeast: "Field '%s' must be at least %v.",
	atMost:  "Field '%s' must be at most %v.",
	tooLongHint: func(source string) string {
		if strings.Contains(source, "_address") {
			return " Consider splitting the address into multiple lines."
		}
		return ""
	},
}

var shipmentStyle = msgStyle{
	empty:   "Shipment field '%s' cannot be empty.",
	tooLong: "Field '%s' exceeds maximum length of %d characters.",
	notInt:  "Shipment field '%s' must be an integer.",
	notNum:  "Shipment field '%s' must be a number.",
	atLeast: "Shipment field '%s' must be at least %v.",
	atMost:  "Shipment field '%s' must be at most %v.",
}

// productStyle builds the line-item wording for one 0-based index. The
// missing-required phrasing differs from the other checks; both forms are
// load-bearing for callers matching on messages.
func productStyle(index int) msgStyle {
	return msgStyle{
		empty:   fmt.Sprintf("Product no: %d field: '%%s' cannot be empty.", index),
		tooLong: fmt.Sprintf("Product no. %d: field '%%s' exceeds maximum length of %%d characters.", index),
		notInt:  fmt.Sprintf("Product no. %d: field '%%s' must be an integer.", index),
		notNum:  fmt.Sprintf("Product no. %d: field '%%s' must be a number.", index),
		atLeast: fmt.Sprintf("Product no. %d: field '%%s' must be at least %%v.", index),
		atMost:  fmt.Sprintf("Product no. %d: field '%%s' must be at most %%v.", index),
	}
}

// validateField applies one rule-table entry to a raw value: presence, type
// coercion, length or range against the effective (service-overridden)
// bounds. It returns (value, true, nil) for a normalized value,
// (nil, false, nil) for an absent optional field, or a failure.
func validateField(d Descriptor, raw any, limits ServiceLimits, style msgStyle) (any, bool, error) {
	value := coerceString(raw)

	if d.Required && value == "" {
		return nil, false, domain.Errorf(domain.EINVALID, "validate.field", style.empty, d.Source)
	}
	if value == "" {
		return nil, false, nil
	}

	switch d.Kind {
	case KindString:
		max := limits.maxLen(d.Out, d.MaxLen)
		if length := utf8.RuneCountInString(value); max > 0 && length > max {
			msg := fmt.Sprintf(style.tooLong, d.Source, max)
			if style.tooLongHint != nil {
				msg += style.tooLongHint(d.Source)
			}
			return nil, false, domain.Errorf(domain.EINVALID, "validate.field", "%s", msg)
		}
		return value, true, nil

	case KindInteger:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, false, domain.Errorf(domain.EINVALID, "validate.field", style.notInt, d.Source)
		}
		if float64(n) < d.Min {
			return nil, false, domain.Errorf(domain.EINVALID, "validate.field", style.atLeast, d.Source, d.Min)
		}
		if max := limits.numberMax(d.Out, d.Max); max != noMax && float64(n) > max {
			return nil, false, domain.Errorf(domain.EINVALID, "validate.field", style.atMost, d.Source, max)
		}
		return int(n), true, nil

	case KindNumber:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, false, domain.Errorf(domain.EINVALID, "validate.field", style.notNum, d.Source)
		}
		if f < d.Min {
			return nil, false, domain.Errorf(domain.EINVALID, "validate.field", style.atLeast, d.Source, d.Min)
		}
		if max := limits.numberMax(d.Out, d.Max); max != noMax && f > max {
			return nil, false, domain.Errorf(domain.EINVALID, "validate.field", style.atMost, d.Source, max)
		}
		return f, true, nil
	}

	// A rule table carrying an unknown kind is a defect in this package,
	// not bad input.
	return nil, false, domain.Errorf(domain.EINTERNAL, "validate.field",
		"unknown field kind %d for '%s'", d.Kind, d.Out)
}
