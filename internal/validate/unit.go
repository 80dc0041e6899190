package validate

// UnitState carries the measurement units the shipment record declared.
// Shipment validation fills it in as a side effect of parsing WeightUnit and
// DimUnit; product validation reads it to convert item weights with the same
// unit. It is a plain value threaded between the two steps so concurrent
// validation calls never share unit state.
type UnitState struct {
	WeightUnit string // "kg" or "lb"
	DimUnit    string // "cm" or "in"
}

// NewUnitState returns the default units (kg, cm).
func NewUnitState() UnitState {
	return UnitState{WeightUnit: defaultWeightUnit, DimUnit: defaultDimUnit}
}
