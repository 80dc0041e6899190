package validate

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_SetKeepsInsertionOrder(t *testing.T) {
	rec := NewRecord()
	rec.Set("B", 1)
	rec.Set("A", 2)
	rec.Set("B", 3) // overwrite keeps the original position

	assert.Equal(t, []string{"B", "A"}, rec.Keys())
	assert.Equal(t, 3, rec.Int("B"))
	assert.Equal(t, 2, rec.Len())
}

func TestRecord_Accessors(t *testing.T) {
	rec := NewRecord()
	rec.Set("Name", "box")
	rec.Set("Quantity", 2)
	rec.Set("Weight", 1.5)

	assert.Equal(t, "box", rec.Text("Name"))
	assert.Equal(t, 2, rec.Int("Quantity"))
	assert.Equal(t, 2.0, rec.Float("Quantity")) // ints widen
	assert.Equal(t, 1.5, rec.Float("Weight"))
	assert.True(t, rec.Has("Name"))
	assert.False(t, rec.Has("Missing"))
	assert.Equal(t, "", rec.Text("Missing"))
	assert.Equal(t, 0.0, rec.Float("Missing"))
}

func TestRecord_MarshalJSONOrdered(t *testing.T) {
	rec := NewRecord()
	rec.Set("ShipperReference", "REF-001")
	rec.Set("Weight", 1.5)
	rec.Set("WeightUnit", "kg")

	out, err := json.Marshal(rec)

	require.NoError(t, err)
	assert.Equal(t, `{"ShipperReference":"REF-001","Weight":1.5,"WeightUnit":"kg"}`, string(out))
}

func TestRecord_MarshalJSONNested(t *testing.T) {
	inner := NewRecord()
	inner.Set("City", "Gdansk")

	rec := NewRecord()
	rec.Set("ConsignorAddress", inner)
	rec.Set("Products", []*Record{inner})

	out, err := json.Marshal(rec)

	require.NoError(t, err)
	assert.Equal(t,
		`{"ConsignorAddress":{"City":"Gdansk"},"Products":[{"City":"Gdansk"}]}`,
		string(out))
}
