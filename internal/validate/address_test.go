package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parcelgate/courier/internal/domain"
)

func consignorFields() map[string]any {
	return map[string]any{
		"sender_fullname":   "Jan Kowalski",
		"sender_address":    "Kopernika 10",
		"sender_city":       "Gdansk",
		"sender_postalcode": "80-208",
	}
}

func consigneeFields(country string) map[string]any {
	return map[string]any{
		"delivery_fullname":   "Maud Driant",
		"delivery_address":    "Strada Foisorului 5",
		"delivery_city":       "Bucuresti",
		"delivery_postalcode": "031179",
		"delivery_country":    country,
	}
}

func TestConsignor_Minimal(t *testing.T) {
	limits := testLimits([]string{"DE"}, nil)

	rec, err := Consignor(consignorFields(), limits)

	require.NoError(t, err)
	assert.Equal(t, "Jan Kowalski", rec.Text("FullName"))
	assert.Equal(t, "Kopernika 10", rec.Text("AddressLine1"))
	assert.False(t, rec.Has("Country"))
}

func TestConsignor_MissingAddress(t *testing.T) {
	limits := testLimits(nil, nil)
	raw := consignorFields()
	delete(raw, "sender_address")

	_, err := Consignor(raw, limits)

	require.Error(t, err)
	assert.Equal(t, "Field 'sender_address' cannot be empty.", domain.ErrorMessage(err))
}

func TestConsignee_CountryNormalized(t *testing.T) {
	limits := testLimits([]string{"DE", "RO"}, nil)

	rec, err := Consignee(consigneeFields("ro"), limits)

	require.NoError(t, err)
	assert.Equal(t, "RO", rec.Text("Country"))
}

func TestConsignee_CountryRequired(t *testing.T) {
	limits := testLimits([]string{"DE"}, nil)
	raw := consigneeFields("")
	delete(raw, "delivery_country")

	_, err := Consignee(raw, limits)

	require.Error(t, err)
	assert.Equal(t, "Field 'delivery_country' cannot be empty.", domain.ErrorMessage(err))
}

func TestConsignee_CountryUnsupported(t *testing.T) {
	limits := testLimits(nil, nil)

	_, err := Consignee(consigneeFields("PL"), limits)

	require.Error(t, err)
	assert.Equal(t,
		"Shipment field 'delivery_country' country code 'PL' is not supported for PPTT service.",
		domain.ErrorMessage(err))
}

func TestConsignee_CountryNotTwoLetters(t *testing.T) {
	limits := testLimits([]string{"DEU"}, nil)

	_, err := Consignee(consigneeFields("DEU"), limits)

	require.Error(t, err)
	assert.Equal(t,
		"Field 'delivery_country' must be a valid 2-letter country code.",
		domain.ErrorMessage(err))
}

func TestAddress_Email(t *testing.T) {
	limits := testLimits([]string{"RO"}, nil)

	raw := consigneeFields("RO")
	raw["delivery_email"] = "maud@example.com"
	rec, err := Consignee(raw, limits)
	require.NoError(t, err)
	assert.Equal(t, "maud@example.com", rec.Text("Email"))

	raw["delivery_email"] = "not-an-email"
	_, err = Consignee(raw, limits)
	require.Error(t, err)
	assert.Equal(t,
		"Field 'delivery_email' must be a valid email address.",
		domain.ErrorMessage(err))
}

func TestAddress_Phone(t *testing.T) {
	limits := testLimits([]string{"RO"}, nil)

	raw := consigneeFields("RO")
	raw["delivery_phone"] = "40721456789"
	rec, err := Consignee(raw, limits)
	require.NoError(t, err)
	assert.Equal(t, "40721456789", rec.Text("Phone"))

	raw["delivery_phone"] = "40-721-456"
	_, err = Consignee(raw, limits)
	require.Error(t, err)
	assert.Equal(t,
		"Field 'delivery_phone' must be a valid phone number (up to 15 digits).",
		domain.ErrorMessage(err))

	raw["delivery_phone"] = "4072145678901234"
	_, err = Consignee(raw, limits)
	require.Error(t, err)
	assert.Equal(t,
		"Field 'delivery_phone' exceeds maximum length of 15 characters.",
		domain.ErrorMessage(err))
}

func TestAddress_LongAddressGetsSplitHint(t *testing.T) {
	limits := testLimits(nil, nil)
	raw := consignorFields()
	raw["sender_address"] = strings.Repeat("a", 51)

	_, err := Consignor(raw, limits)

	require.Error(t, err)
	assert.Equal(t,
		"Field 'sender_address' exceeds maximum length of 50 characters."+
			" Consider splitting the address into multiple lines.",
		domain.ErrorMessage(err))
}
