package validate

import (
	"strconv"
	"strings"

	"github.com/parcelgate/courier/internal/broker"
	"github.com/parcelgate/courier/internal/domain"
)

// ServiceLimits is a read-only view over one service's GetServiceInfo
// response: the supported-country set, the maximum shipment weight, and
// per-field overrides of the rule tables' default bounds. It is built fresh
// for every validation call.
type ServiceLimits struct {
	Service            string
	SupportedCountries map[string]struct{}
	MaxWeightKg        float64

	fieldLimits map[string]float64
}

// NewServiceLimits interprets a decoded service-info body. Non-numeric
// fieldLimits entries are dropped so lookups fall back to the rule table's
// defaults; a missing maxWeight falls back to 30 kg.
func NewServiceLimits(info broker.ServiceInfo) ServiceLimits {
	limits := ServiceLimits{
		Service:            info.Service,
		SupportedCountries: make(map[string]struct{}),
		MaxWeightKg:        maxShipmentWeight,
		fieldLimits:        make(map[string]float64),
	}

	if info.MaxWeight != nil {
		limits.MaxWeightKg = *info.MaxWeight
	}

	for key, raw := range info.FieldLimits {
		if key == "SupportedCountries" {
			for _, code := range toStrings(raw) {
				limits.SupportedCountries[strings.ToUpper(code)] = struct{}{}
			}
			continue
		}
		if n, ok := toFloat(raw); ok {
			limits.fieldLimits[key] = n
		}
	}

	return limits
}

// maxLen resolves the effective max length for a string field.
func (l ServiceLimits) maxLen(out string, def int) int {
	if n, ok := l.fieldLimits[out]; ok {
		return int(n)
	}
	return def
}

// numberMax resolves the effective upper bound for a numeric field. Fields
// whose table bound is the no-limit sentinel stay unbounded regardless of
// overrides; their cap is enforced after unit conversion.
func (l ServiceLimits) numberMax(out string, def float64) float64 {
	if def == noMax {
		return noMax
	}
	if n, ok := l.fieldLimits[out]; ok {
		return n
	}
	return def
}

// CheckCountry verifies that an upper-cased 2-letter code is in the
// service's supported set. An empty set admits nothing; the broker always
// sends the list for routable services.
func (l ServiceLimits) CheckCountry(code, fieldName, msgPrefix string) error {
	if _, ok := l.SupportedCountries[code]; !ok {
		return domain.Errorf(domain.EINVALID, "validate.country",
			"%sShipment field '%s' country code '%s' is not supported for %s service.",
			msgPrefix, fieldName, code, l.Service)
	}
	return nil
}

// toStrings extracts a string list from an untyped JSON value.
func toStrings(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// toFloat extracts a numeric limit from an untyped JSON value, accepting the
// numeric strings the broker occasionally sends.
func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
