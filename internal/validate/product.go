package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/parcelgate/courier/internal/domain"
)

// Products validates the order's line items. HsCode becomes required when
// the shipment crosses a border (consignee country differs from consignor).
// Item weights are converted to kg with the unit the shipment declared, then
// the aggregate caps apply: total quantity <= 50, total value <= 5000 EUR,
// total weight <= the service's max weight.
func Products(
	items []domain.Product,
	consignorCountry, consigneeCountry string,
	limits ServiceLimits,
	units UnitState,
) ([]*Record, error) {
	if len(items) == 0 {
		return nil, domain.Errorf(domain.EINVALID, "validate.products", "Products array cannot be empty.")
	}

	rules := productRules(consigneeCountry != consignorCountry)

	var (
		records       []*Record
		totalQuantity int
		totalValue    = decimal.Zero
		totalWeight   = decimal.Zero
	)

	for i, item := range items {
		rec, err := product(rules, item, limits, i)
		if err != nil {
			return nil, err
		}

		if units.WeightUnit == "lb" {
			rec.Set("Weight", lbsToKg(rec.Float("Weight")))
		}

		quantity := rec.Int("Quantity")
		totalQuantity += quantity
		totalWeight = totalWeight.Add(
			decimal.NewFromFloat(rec.Float("Weight")).Mul(decimal.NewFromInt(int64(quantity))))
		if rec.Has("Value") {
			totalValue = totalValue.Add(decimal.NewFromFloat(rec.Float("Value")))
		}

		records = append(records, rec)
	}

	if totalQuantity > maxProductCount {
		return nil, domain.Errorf(domain.EINVALID, "validate.products",
			"Exceeded maximum total quantity of products. Maximum allowed is %d", maxProductCount)
	}
	if totalValue.GreaterThan(decimal.NewFromFloat(maxTotalValue)) {
		return nil, domain.Errorf(domain.EINVALID, "validate.products",
			"Exceeded maximum total value of products. Maximum allowed is %v EUR", maxTotalValue)
	}
	if totalWeight.GreaterThan(decimal.NewFromFloat(limits.MaxWeightKg)) {
		converted := ""
		if units.WeightUnit == "lb" {
			converted = " (Weight converted from lb to kg)"
		}
		return nil, domain.Errorf(domain.EINVALID, "validate.products",
			"Total weight '%v kg'%s of products exceeds maximum allowed weight %v kg for the %s service.",
			totalWeight, converted, limits.MaxWeightKg, limits.Service)
	}

	return records, nil
}

// product validates one line item against the product rule table.
func product(rules []Descriptor, item domain.Product, limits ServiceLimits, index int) (*Record, error) {
	rec := NewRecord()
	style := productStyle(index)

	for _, d := range rules {
		value, ok, err := validateField(d, item[d.Source], limits, style)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		if d.Out == "OriginCountry" {
			s := strings.ToUpper(value.(string))
			if utf8.RuneCountInString(s) != 2 {
				return nil, domain.Errorf(domain.EINVALID, "validate.products",
					"Product no. %d: field '%s' must be a valid 2-letter country code.", index, d.Source)
			}
			if err := limits.CheckCountry(s, d.Source, fmt.Sprintf("Product no. %d: ", index)); err != nil {
				return nil, err
			}
			value = s
		}

		rec.Set(d.Out, value)
	}

	return rec, nil
}
