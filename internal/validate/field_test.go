package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcelgate/courier/internal/domain"
)

func TestCoerceString(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
	}{
		{"nil", nil, ""},
		{"string", "  hello  ", "hello"},
		{"float", 1.5, "1.5"},
		{"float whole", 30.0, "30"},
		{"int", 42, "42"},
		{"int64", int64(7), "7"},
		{"bool", true, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coerceString(tt.raw))
		})
	}
}

func TestValidateField_RequiredAndOptional(t *testing.T) {
	limits := testLimits(nil, nil)
	required := Descriptor{Out: "ShipperReference", Source: "shipper_reference", Required: true, Kind: KindString, MaxLen: 255}
	optional := Descriptor{Out: "OrderReference", Source: "order_reference", Kind: KindString, MaxLen: 255}

	_, ok, err := validateField(required, "   ", limits, shipmentStyle)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, "Shipment field 'shipper_reference' cannot be empty.", domain.ErrorMessage(err))

	value, ok, err := validateField(optional, nil, limits, shipmentStyle)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestValidateField_Integer(t *testing.T) {
	limits := testLimits(nil, nil)
	d := Descriptor{Out: "Quantity", Source: "quantity", Required: true, Kind: KindInteger, Min: 1, Max: 50}

	value, ok, err := validateField(d, "3", limits, shipmentStyle)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, value)

	_, _, err = validateField(d, "3.5", limits, shipmentStyle)
	require.Error(t, err)
	assert.Equal(t, "Shipment field 'quantity' must be an integer.", domain.ErrorMessage(err))

	_, _, err = validateField(d, 0, limits, shipmentStyle)
	require.Error(t, err)
	assert.Equal(t, "Shipment field 'quantity' must be at least 1.", domain.ErrorMessage(err))

	_, _, err = validateField(d, 51, limits, shipmentStyle)
	require.Error(t, err)
	assert.Equal(t, "Shipment field 'quantity' must be at most 50.", domain.ErrorMessage(err))
}

func TestValidateField_Number(t *testing.T) {
	limits := testLimits(nil, nil)
	d := Descriptor{Out: "Value", Source: "value", Kind: KindNumber, Min: 0.01, Max: 5000}

	value, ok, err := validateField(d, 19.99, limits, shipmentStyle)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 19.99, value)

	_, _, err = validateField(d, "abc", limits, shipmentStyle)
	require.Error(t, err)
	assert.Equal(t, "Shipment field 'value' must be a number.", domain.ErrorMessage(err))

	_, _, err = validateField(d, 0.001, limits, shipmentStyle)
	require.Error(t, err)
	assert.Equal(t, "Shipment field 'value' must be at least 0.01.", domain.ErrorMessage(err))
}

func TestValidateField_OpenUpperBound(t *testing.T) {
	limits := testLimits(nil, nil)
	d := Descriptor{Out: "Weight", Source: "weight", Required: true, Kind: KindNumber, Min: 0.01, Max: noMax}

	// Values far above the kg cap pass here; the cap is enforced after
	// unit conversion.
	value, ok, err := validateField(d, 66.0, limits, shipmentStyle)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 66.0, value)
}

func TestUnitConversions(t *testing.T) {
	assert.Equal(t, 9.98, lbsToKg(22.0))
	assert.Equal(t, 15.88, lbsToKg(35.0))
	assert.Equal(t, 101.6, inchesToCm(40.0))
	assert.Equal(t, 2.54, inchesToCm(1.0))
}
