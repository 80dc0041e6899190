package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcelgate/courier/internal/broker"
	"github.com/parcelgate/courier/internal/domain"
)

func TestNewServiceLimits_Defaults(t *testing.T) {
	limits := NewServiceLimits(broker.ServiceInfo{Service: "PPTT"})

	assert.Equal(t, "PPTT", limits.Service)
	assert.Equal(t, 30.0, limits.MaxWeightKg)
	assert.Empty(t, limits.SupportedCountries)
}

func TestNewServiceLimits_MaxWeightOverride(t *testing.T) {
	maxWeight := 20.0
	limits := NewServiceLimits(broker.ServiceInfo{Service: "PPTT", MaxWeight: &maxWeight})

	assert.Equal(t, 20.0, limits.MaxWeightKg)
}

func TestNewServiceLimits_CountriesUpperCased(t *testing.T) {
	limits := NewServiceLimits(broker.ServiceInfo{
		Service:     "PPTT",
		FieldLimits: map[string]any{"SupportedCountries": []any{"de", "Gb", "RO"}},
	})

	for _, code := range []string{"DE", "GB", "RO"} {
		_, ok := limits.SupportedCountries[code]
		assert.True(t, ok, "expected %s in supported set", code)
	}
}

func TestNewServiceLimits_FieldLimitValues(t *testing.T) {
	limits := NewServiceLimits(broker.ServiceInfo{
		Service: "PPTT",
		FieldLimits: map[string]any{
			"ShipperReference": float64(40),
			"Value":            "2500",
			"Description":      "unlimited", // non-numeric, dropped
		},
	})

	assert.Equal(t, 40, limits.maxLen("ShipperReference", 255))
	assert.Equal(t, 2500.0, limits.numberMax("Value", maxTotalValue))
	assert.Equal(t, 255, limits.maxLen("Description", 255))
}

func TestServiceLimits_NumberMaxKeepsOpenBounds(t *testing.T) {
	limits := NewServiceLimits(broker.ServiceInfo{
		Service:     "PPTT",
		FieldLimits: map[string]any{"Weight": float64(10)},
	})

	// Weight's table bound is open; the cap applies after unit conversion.
	assert.Equal(t, noMax, limits.numberMax("Weight", noMax))
}

func TestServiceLimits_CheckCountry(t *testing.T) {
	limits := testLimits([]string{"DE"}, nil)

	require.NoError(t, limits.CheckCountry("DE", "delivery_country", ""))

	err := limits.CheckCountry("FR", "delivery_country", "")
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	// An empty supported set admits nothing.
	empty := testLimits(nil, nil)
	err = empty.CheckCountry("PL", "delivery_country", "")
	require.Error(t, err)
	assert.Equal(t,
		"Shipment field 'delivery_country' country code 'PL' is not supported for PPTT service.",
		domain.ErrorMessage(err))
}
