package validate

import (
	"github.com/parcelgate/courier/internal/broker"
)

// testLimits builds limits for the PPTT service with the given supported
// countries and optional field-limit overrides.
func testLimits(countries []string, fieldLimits map[string]any) ServiceLimits {
	supported := make([]any, len(countries))
	for i, c := range countries {
		supported[i] = c
	}
	fl := map[string]any{"SupportedCountries": supported}
	for k, v := range fieldLimits {
		fl[k] = v
	}
	return NewServiceLimits(broker.ServiceInfo{Service: "PPTT", FieldLimits: fl})
}

// baseShipment is a minimal valid shipment-level order.
func baseShipment() map[string]any {
	return map[string]any{
		"shipper_reference": "REF-001",
		"weight":            1.5,
		"value":             20.0,
	}
}
