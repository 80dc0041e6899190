package validate

// Kind selects the type coercion a rule applies.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindNumber
)

// noMax marks numeric rules whose upper bound is enforced elsewhere (the
// shipment weight cap only applies after unit conversion, against the
// service's maxWeight).
const noMax = 0.0

// Descriptor describes one validated field: where it comes from on the raw
// record, where it goes on the normalized one, and its static constraints.
// Service limits may tighten MaxLen and Max at validation time.
type Descriptor struct {
	Out      string // output key, unique within one rule table
	Source   string // key on the caller's raw record
	Required bool
	Kind     Kind
	MaxLen   int     // KindString: max length in codepoints; 0 = unlimited
	Min      float64 // numeric kinds
	Max      float64 // numeric kinds; noMax = unbounded here
}

// shipmentRules is the canonical shipment rule table. Order matters:
// WeightUnit and DimUnit must be parsed before the post-loop weight and
// dimension conversions that read them.
var shipmentRules = []Descriptor{
	{Out: "ShipperReference", Source: "shipper_reference", Required: true, Kind: KindString, MaxLen: 255},
	{Out: "OrderReference", Source: "order_reference", Kind: KindString, MaxLen: 255},
	{Out: "OrderDate", Source: "order_date", Kind: KindString, MaxLen: 10},
	{Out: "DisplayId", Source: "display_id", Kind: KindString, MaxLen: 255},
	{Out: "InvoiceNumber", Source: "invoice_number", Kind: KindString, MaxLen: 255},
	{Out: "Weight", Source: "weight", Required: true, Kind: KindNumber, Min: 0.01, Max: noMax},
	{Out: "WeightUnit", Source: "weight_unit", Kind: KindString, MaxLen: 2},
	{Out: "Length", Source: "length", Kind: KindNumber, Min: 0.01, Max: maxShipmentLength},
	{Out: "Width", Source: "width", Kind: KindNumber, Min: 0.01, Max: maxShipmentWidth},
	{Out: "Height", Source: "height", Kind: KindNumber, Min: 0.01, Max: maxShipmentHeight},
	{Out: "DimUnit", Source: "dim_unit", Kind: KindString, MaxLen: 2},
	{Out: "Value", Source: "value", Kind: KindNumber, Min: 0.01, Max: maxTotalValue},
	{Out: "ShipmentValue", Source: "shipment_value", Kind: KindNumber, Min: 0.01, Max: maxTotalValue},
	{Out: "Currency", Source: "currency", Kind: KindString, MaxLen: 3},
	{Out: "CustomsDuty", Source: "customs_duty", Kind: KindString, MaxLen: 3},
	{Out: "Description", Source: "description", Kind: KindString, MaxLen: 255},
	{Out: "DeclarationType", Source: "declaration_type", Kind: KindString, MaxLen: 255},
	{Out: "DangerousGoods", Source: "dangerous_goods", Kind: KindString, MaxLen: 1},
	{Out: "ExportCarrierName", Source: "export_carriername", Kind: KindString, MaxLen: 255},
	{Out: "ExportAWB", Source: "export_awb", Kind: KindString, MaxLen: 255},
	{Out: "NIVat", Source: "ni_vat", Kind: KindString, MaxLen: 255},
	{Out: "EuEori", Source: "eu_eori", Kind: KindString, MaxLen: 255},
	{Out: "Ioss", Source: "ioss", Kind: KindString, MaxLen: 255},
	{Out: "LabelFormat", Source: "label_format", Kind: KindString, MaxLen: 10},
}

// consignorRules is the sender address table. Country is optional here
// while the consignee's is required.
var consignorRules = []Descriptor{
	{Out: "FullName", Source: "sender_fullname", Kind: KindString, MaxLen: 50},
	{Out: "Company", Source: "sender_company", Kind: KindString, MaxLen: 60},
	{Out: "AddressLine1", Source: "sender_address", Required: true, Kind: KindString, MaxLen: 50},
	{Out: "AddressLine2", Source: "sender_address2", Kind: KindString, MaxLen: 50},
	{Out: "AddressLine3", Source: "sender_address3", Kind: KindString, MaxLen: 50},
	{Out: "City", Source: "sender_city", Required: true, Kind: KindString, MaxLen: 50},
	{Out: "State", Source: "sender_state", Kind: KindString, MaxLen: 50},
	{Out: "Zip", Source: "sender_postalcode", Required: true, Kind: KindString, MaxLen: 20},
	{Out: "Country", Source: "sender_country", Kind: KindString, MaxLen: 2},
	{Out: "Phone", Source: "sender_phone", Kind: KindString, MaxLen: 15},
	{Out: "Email", Source: "sender_email", Kind: KindString, MaxLen: 255},
}

// consigneeRules is the recipient address table.
var consigneeRules = []Descriptor{
	{Out: "FullName", Source: "delivery_fullname", Required: true, Kind: KindString, MaxLen: 50},
	{Out: "Company", Source: "delivery_company", Kind: KindString, MaxLen: 60},
	{Out: "AddressLine1", Source: "delivery_address", Required: true, Kind: KindString, MaxLen: 50},
	{Out: "AddressLine2", Source: "delivery_address2", Kind: KindString, MaxLen: 50},
	{Out: "AddressLine3", Source: "delivery_address3", Kind: KindString, MaxLen: 50},
	{Out: "City", Source: "delivery_city", Required: true, Kind: KindString, MaxLen: 50},
	{Out: "State", Source: "delivery_state", Kind: KindString, MaxLen: 50},
	{Out: "Zip", Source: "delivery_postalcode", Required: true, Kind: KindString, MaxLen: 20},
	{Out: "Country", Source: "delivery_country", Required: true, Kind: KindString, MaxLen: 2},
	{Out: "Phone", Source: "delivery_phone", Kind: KindString, MaxLen: 15},
	{Out: "Email", Source: "delivery_email", Kind: KindString, MaxLen: 255},
}

// productRules builds the line-item table. HsCode is required only for
// cross-border shipments.
func productRules(hsCodeRequired bool) []Descriptor {
	return []Descriptor{
		{Out: "Description", Source: "name", Required: true, Kind: KindString, MaxLen: productDescMaxLength},
		{Out: "Quantity", Source: "quantity", Required: true, Kind: KindInteger, Min: 1, Max: maxProductCount},
		{Out: "Weight", Source: "weight", Required: true, Kind: KindNumber, Min: 0, Max: maxShipmentWeight},
		{Out: "Value", Source: "value", Kind: KindNumber, Min: 0, Max: maxTotalValue},
		{Out: "HsCode", Source: "hs_code", Required: hsCodeRequired, Kind: KindString, MaxLen: 255},
		{Out: "OriginCountry", Source: "origin_country", Kind: KindString, MaxLen: 2},
	}
}
