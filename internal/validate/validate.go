// Package validate is the field-validation and unit-normalization engine in
// front of the shipping broker. Declarative rule tables describe each record
// kind (shipment, consignor address, consignee address, product); one
// generic interpreter applies them together with per-service limits fetched
// from the broker, normalizes units to kg/cm, and produces the PascalCase
// records the broker's OrderShipment command expects.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/parcelgate/courier/internal/domain"
)

// Static business limits. Weights in kg, dimensions in cm, values in EUR.
const (
	maxProductCount   = 50
	maxShipmentWeight = 30.0
	maxTotalValue     = 5000.0
	maxShipmentLength = 120.0
	maxShipmentWidth  = 60.0
	maxShipmentHeight = 60.0

	// Sum of length + 2 * (width + height).
	maxDimensionSum = 300.0

	productDescMaxLength = 105
	displayIDMaxLength   = 15

	defaultWeightUnit = "kg"
	defaultDimUnit    = "cm"
)

var (
	lbToKg   = decimal.NewFromFloat(0.453592)
	inchToCm = decimal.NewFromFloat(2.54)
)

var (
	weightUnits    = []string{"kg", "lb"}
	dimUnits       = []string{"cm", "in"}
	customsDuties  = []string{"DDP", "DDU"}
	dangerousGoods = []string{"Y", "N"}
	labelFormats   = []string{"PDF", "PNG", "ZPL300", "ZPL600", "ZPL200", "ZPL", "EPL"}
)

// ISO 4217 currency codes accepted for Currency.
var currencies = map[string]struct{}{}

func init() {
	for _, code := range []string{
		"AED", "AFN", "ALL", "AMD", "ANG", "AOA", "ARS", "AUD", "AWG", "AZN",
		"BAM", "BBD", "BDT", "BGN", "BHD", "BIF", "BMD", "BND", "BOB", "BRL",
		"BSD", "BTN", "BWP", "BYN", "BZD", "CAD", "CDF", "CHF", "CLP", "CNY",
		"COP", "CRC", "CUC", "CUP", "CVE", "CZK", "DJF", "DKK", "DOP", "DZD",
		"EGP", "ERN", "ETB", "EUR", "FJD", "FKP", "GBP", "GEL", "GGP", "GHS",
		"GIP", "GMD", "GNF", "GTQ", "GYD", "HKD", "HNL", "HRK", "HTG", "HUF",
		"IDR", "ILS", "IMP", "INR", "IQD", "IRR", "ISK", "JEP", "JMD", "JOD",
		"JPY", "KES", "KGS", "KHR", "KMF", "KPW", "KRW", "KWD", "KYD", "KZT",
		"LAK", "LBP", "LKR", "LRD", "LSL", "LYD", "MAD", "MDL", "MGA", "MKD",
		"MMK", "MNT", "MOP", "MRU", "MUR", "MVR", "MWK", "MXN", "MYR", "MZN",
		"NAD", "NGN", "NIO", "NOK", "NPR", "NZD", "OMR", "PAB", "PEN", "PGK",
		"PHP", "PKR", "PLN", "PYG", "QAR", "RON", "RSD", "RUB", "RWF", "SAR",
		"SBD", "SCR", "SDG", "SEK", "SGD", "SHP", "SLL", "SOS", "SPL", "SRD",
		"STN", "SVC", "SYP", "SZL", "THB", "TJS", "TMT", "TND", "TOP", "TRY",
		"TTD", "TVD", "TWD", "TZS", "UAH", "UGX", "USD", "UYU", "UZS", "VES",
		"VND", "VUV", "WST", "XAF", "XCD", "XDR", "XOF", "XPF", "YER", "ZAR",
		"ZMW", "ZWL",
	} {
		currencies[code] = struct{}{}
	}
}

var (
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsRe     = regexp.MustCompile(`^\d*$`)
	niVatRe      = regexp.MustCompile(`^XI\d{9}$`)
	euEoriRe     = regexp.MustCompile(`^[A-Z]{2}\S+$`)
	iossRe       = regexp.MustCompile(`^IM[A-Z]{2}\d{12}$`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// lbsToKg converts pounds to kilograms, rounded to 2 decimals.
func lbsToKg(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Mul(lbToKg).Round(2).Float64()
	return f
}

// inchesToCm converts inches to centimeters, rounded to 2 decimals.
func inchesToCm(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Mul(inchToCm).Round(2).Float64()
	return f
}

// coerceString renders a raw record value the way the broker payloads do:
// nil becomes empty, numbers keep their shortest decimal form, everything is
// whitespace-trimmed.
func coerceString(raw any) string {
	var s string
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		s = v
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		s = strconv.Itoa(v)
	case int32:
		s = strconv.FormatInt(int64(v), 10)
	case int64:
		s = strconv.FormatInt(v, 10)
	default:
		s = fmt.Sprintf("%v", v)
	}
	return strings.TrimSpace(s)
}

// contains reports membership in a small enum slice.
func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// invalidEnum builds the shared "has invalid value" failure for enum fields.
func invalidEnum(source, value string, allowed []string) error {
	return domain.Errorf(domain.EINVALID, "validate.shipment",
		"Shipment field '%s' has invalid value '%s'. Allowed values: %s",
		source, value, strings.Join(allowed, ", "))
}
