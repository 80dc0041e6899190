package broker

import "context"

// Mock is a test implementation of Client. Each method delegates to the
// configured function and fails loudly when a test triggers a call it did
// not set up.
type Mock struct {
	GetServicesFunc      func(ctx context.Context) (*ServicesResponse, error)
	GetServiceInfoFunc   func(ctx context.Context, service string) (*ServiceInfoResponse, error)
	OrderShipmentFunc    func(ctx context.Context, shipment any) (*ShipmentResponse, error)
	GetShipmentLabelFunc func(ctx context.Context, trackingNumber, labelFormat string) (*LabelResponse, error)
}

// GetServices delegates to the configured function.
func (m *Mock) GetServices(ctx context.Context) (*ServicesResponse, error) {
	if m.GetServicesFunc == nil {
		panic("broker.Mock: GetServices called but GetServicesFunc not set")
	}
	return m.GetServicesFunc(ctx)
}

// GetServiceInfo delegates to the configured function.
func (m *Mock) GetServiceInfo(ctx context.Context, service string) (*ServiceInfoResponse, error) {
	if m.GetServiceInfoFunc == nil {
		panic("broker.Mock: GetServiceInfo called but GetServiceInfoFunc not set")
	}
	return m.GetServiceInfoFunc(ctx, service)
}

// OrderShipment delegates to the configured function.
func (m *Mock) OrderShipment(ctx context.Context, shipment any) (*ShipmentResponse, error) {
	if m.OrderShipmentFunc == nil {
		panic("broker.Mock: OrderShipment called but OrderShipmentFunc not set")
	}
	return m.OrderShipmentFunc(ctx, shipment)
}

// GetShipmentLabel delegates to the configured function.
func (m *Mock) GetShipmentLabel(ctx context.Context, trackingNumber, labelFormat string) (*LabelResponse, error) {
	if m.GetShipmentLabelFunc == nil {
		panic("broker.Mock: GetShipmentLabel called but GetShipmentLabelFunc not set")
	}
	return m.GetShipmentLabelFunc(ctx, trackingNumber, labelFormat)
}
