// Package broker talks to the remote shipping-broker API. The API is a
// single-endpoint command dispatcher: every call is a POST of
// {Apikey, Command, ...} JSON and every response is a JSON body that either
// carries the command result or an {ErrorLevel, Error} envelope.
package broker

import "context"

// Broker commands.
const (
	CommandGetServices      = "GetServices"
	CommandGetServiceInfo   = "GetServiceInfo"
	CommandOrderShipment    = "OrderShipment"
	CommandGetShipmentLabel = "GetShipmentLabel"
)

// Client defines the operations the courier layer needs from the broker.
// HTTPClient is the production implementation; Mock serves tests.
type Client interface {
	// GetServices returns the service names the account may ship with.
	GetServices(ctx context.Context) (*ServicesResponse, error)

	// GetServiceInfo returns the per-service limits used to build
	// validation constraints.
	GetServiceInfo(ctx context.Context, service string) (*ServiceInfoResponse, error)

	// OrderShipment submits a fully validated shipment payload and returns
	// the broker's tracking number.
	OrderShipment(ctx context.Context, shipment any) (*ShipmentResponse, error)

	// GetShipmentLabel fetches the label for a created shipment.
	GetShipmentLabel(ctx context.Context, trackingNumber, labelFormat string) (*LabelResponse, error)
}

// ServicesResponse is the decoded GetServices body.
type ServicesResponse struct {
	Services Services `json:"Services"`
}

// Services lists the service names available to the API key.
type Services struct {
	AllowedServices []string `json:"AllowedServices"`
}

// ServiceInfoResponse is the decoded GetServiceInfo body.
type ServiceInfoResponse struct {
	ServiceInfo ServiceInfo `json:"ServiceInfo"`
}

// ServiceInfo carries the per-service validation limits. FieldLimits mixes
// numeric per-field overrides with the SupportedCountries list, so it stays
// untyped here; the validate package interprets it.
type ServiceInfo struct {
	Service     string         `json:"service"`
	MaxWeight   *float64       `json:"maxWeight,omitempty"`
	FieldLimits map[string]any `json:"fieldLimits,omitempty"`
}

// ShipmentResponse is the decoded OrderShipment body.
type ShipmentResponse struct {
	Shipment ShipmentResult `json:"Shipment"`
}

// ShipmentResult identifies the created shipment.
type ShipmentResult struct {
	TrackingNumber string `json:"TrackingNumber"`
}

// LabelResponse is the decoded GetShipmentLabel body.
type LabelResponse struct {
	Shipment LabelResult `json:"Shipment"`
}

// LabelResult carries the rendered label.
type LabelResult struct {
	TrackingNumber string `json:"TrackingNumber"`
	LabelFormat    string `json:"LabelFormat"`
	LabelImage     string `json:"LabelImage"` // base64-encoded label bytes
}

// errorEnvelope is the broker's error shape. ErrorLevel is a pointer so a
// present-but-zero level can be told apart from an absent one.
type errorEnvelope struct {
	ErrorLevel *int   `json:"ErrorLevel,omitempty"`
	Error      string `json:"Error,omitempty"`
}
