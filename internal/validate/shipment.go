package validate

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/parcelgate/courier/internal/domain"
)

// Shipment validates the shipment-level fields of a raw order and returns
// the normalized record plus the unit state captured from WeightUnit and
// DimUnit. Weight and dimensions in the returned record are always kg/cm.
func Shipment(raw map[string]any, limits ServiceLimits) (*Record, UnitState, error) {
	units := NewUnitState()
	rec := NewRecord()

	for _, d := range shipmentRules {
		value, ok, err := validateField(d, raw[d.Source], limits, shipmentStyle)
		if err != nil {
			return nil, units, err
		}
		if !ok {
			continue
		}

		value, err = checkShipmentField(d, value, limits, &units)
		if err != nil {
			return nil, units, err
		}
		rec.Set(d.Out, value)
	}

	if err := checkDimensions(rec, units); err != nil {
		return nil, units, err
	}
	if err := checkWeight(rec, limits, units); err != nil {
		return nil, units, err
	}

	if !rec.Has("Value") && !rec.Has("ShipmentValue") {
		return nil, units, domain.Errorf(domain.EINVALID, "validate.shipment",
			"At least one of the shipment fields 'shipment_value' or 'value' must be provided.")
	}

	return rec, units, nil
}

// checkShipmentField runs the field-specific format checks on top of the
// generic ones and captures unit declarations into units.
func checkShipmentField(d Descriptor, value any, limits ServiceLimits, units *UnitState) (any, error) {
	switch d.Out {
	case "OrderDate":
		s := value.(string)
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil || parsed.Format("2006-01-02") != s {
			return nil, domain.Errorf(domain.EINVALID, "validate.shipment",
				"Shipment field '%s' must be in 'YYYY-MM-DD' format.", d.Source)
		}

	case "DisplayId":
		// Independent of the generic length check: the broker caps display
		// IDs at 15 regardless of the rule table's 255.
		max := limits.maxLen(d.Out, displayIDMaxLength)
		if len([]rune(value.(string))) > max {
			return nil, domain.Errorf(domain.EINVALID, "validate.shipment",
				"Shipment field '%s' exceeds maximum length of %d characters.", d.Source, max)
		}

	case "WeightUnit":
		s := strings.ToLower(value.(string))
		if !contains(weightUnits, s) {
			return nil, invalidEnum(d.Source, value.(string), weightUnits)
		}
		units.WeightUnit = s
		// The stored unit is always kg; the numeric Weight is converted.
		value = defaultWeightUnit

	case "DimUnit":
		s := strings.ToLower(value.(string))
		if !contains(dimUnits, s) {
			return nil, invalidEnum(d.Source, value.(string), dimUnits)
		}
		units.DimUnit = s
		value = defaultDimUnit

	case "Currency":
		s := strings.ToUpper(value.(string))
		if _, ok := currencies[s]; !ok {
			return nil, domain.Errorf(domain.EINVALID, "validate.shipment",
				"Shipment field '%s' has invalid value '%s'. Must be a valid ISO 4217 currency code.",
				d.Source, value)
		}
		value = s

	case "CustomsDuty":
		s := strings.ToUpper(value.(string))
		if !contains(customsDuties, s) {
			return nil, invalidEnum(d.Source, value.(string), customsDuties)
		}
		value = s

	case "DangerousGoods":
		s := strings.ToUpper(value.(string))
		if !contains(dangerousGoods, s) {
			return nil, invalidEnum(d.Source, value.(string), dangerousGoods)
		}
		value = s

	case "NIVat":
		s := strings.ToUpper(whitespaceRe.ReplaceAllString(value.(string), ""))
		if !niVatRe.MatchString(s) {
			return nil, domain.Errorf(domain.EINVALID, "validate.shipment",
				"Shipment field '%s' must be in the format 'XI123456789'.", d.Source)
		}
		value = s

	case "EuEori":
		s := strings.ToUpper(whitespaceRe.ReplaceAllString(value.(string), ""))
		if !euEoriRe.MatchString(s) {
			return nil, domain.Errorf(domain.EINVALID, "validate.shipment",
				"Shipment field '%s' must start with a 2-letter country code followed by alphanumeric characters.",
				d.Source)
		}
		if err := limits.CheckCountry(s[:2], d.Source, ""); err != nil {
			return nil, err
		}
		value = s

	case "Ioss":
		s := strings.ToUpper(whitespaceRe.ReplaceAllString(value.(string), ""))
		if !iossRe.MatchString(s) {
			return nil, domain.Errorf(domain.EINVALID, "validate.shipment",
				"Shipment field '%s' must be in the format 'IMXX123456789012' where XX is the 2-letter country code.",
				d.Source)
		}
		if err := limits.CheckCountry(s[2:4], d.Source, ""); err != nil {
			return nil, err
		}
		value = s

	case "LabelFormat":
		s := strings.ToUpper(value.(string))
		if !contains(labelFormats, s) {
			return nil, invalidEnum(d.Source, value.(string), labelFormats)
		}
		value = s
	}

	return value, nil
}

// checkDimensions enforces the all-or-nothing dimension invariant, converts
// inches to cm, re-checks each dimension in cm, and caps the girth sum
// length + 2 * (width + height) at 300 cm.
func checkDimensions(rec *Record, units UnitState) error {
	present := 0
	for _, key := range []string{"Length", "Width", "Height"} {
		if rec.Has(key) {
			present++
		}
	}
	if present == 0 {
		return nil
	}
	if present != 3 {
		return domain.Errorf(domain.EINVALID, "validate.shipment",
			"Three dimensions (length, width, height) must be provided together. Or none of them.")
	}

	converted := ""
	if units.DimUnit == "in" {
		rec.Set("Length", inchesToCm(rec.Float("Length")))
		rec.Set("Width", inchesToCm(rec.Float("Width")))
		rec.Set("Height", inchesToCm(rec.Float("Height")))
		converted = " (Dimension converted from in to cm)"
	}

	length, width, height := rec.Float("Length"), rec.Float("Width"), rec.Float("Height")

	ranges := []struct {
		name  string
		value float64
		max   float64
	}{
		{"length", length, maxShipmentLength},
		{"width", width, maxShipmentWidth},
		{"height", height, maxShipmentHeight},
	}
	for _, r := range ranges {
		if r.value < 0.01 || r.value > r.max {
			return domain.Errorf(domain.EINVALID, "validate.shipment",
				"Shipment %s '%v cm'%s must be between 0.01 cm and %v cm.",
				r.name, r.value, converted, r.max)
		}
	}

	sum := decimal.NewFromFloat(length).Add(
		decimal.NewFromFloat(width).Add(decimal.NewFromFloat(height)).Mul(decimal.NewFromInt(2)))
	if sum.GreaterThan(decimal.NewFromFloat(maxDimensionSum)) {
		return domain.Errorf(domain.EINVALID, "validate.shipment",
			"Sum of shipment dimensions [L + 2 * (W + H)] = '%v cm'%s exceeds maximum allowed of %v cm.",
			sum, converted, maxDimensionSum)
	}

	return nil
}

// checkWeight converts the shipment weight to kg and re-checks it against
// the service's maximum. The rule table deliberately leaves Weight's upper
// bound open so a pound value above the kg cap can still convert into range.
func checkWeight(rec *Record, limits ServiceLimits, units UnitState) error {
	weight := rec.Float("Weight")

	converted := ""
	if units.WeightUnit == "lb" {
		weight = lbsToKg(weight)
		rec.Set("Weight", weight)
		converted = " (Weight converted from lb to kg)"
	}

	if weight < 0.01 || weight > limits.MaxWeightKg {
		return domain.Errorf(domain.EINVALID, "validate.shipment",
			"Shipment weight '%v kg'%s must be between %v kg and %v kg.",
			weight, converted, 0.01, limits.MaxWeightKg)
	}

	return nil
}
