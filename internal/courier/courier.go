// Package courier sequences a shipment through the broker: resolve the
// service, fetch its limits, validate and normalize the order, create the
// shipment, fetch the label. All business rules live in internal/validate;
// this package only wires the steps together.
package courier

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"

	"github.com/parcelgate/courier/internal/broker"
	"github.com/parcelgate/courier/internal/domain"
	"github.com/parcelgate/courier/internal/telemetry"
	"github.com/parcelgate/courier/internal/validate"
)

// Label formats the caller may request for download. The shipment record's
// own LabelFormat field accepts the broker's longer list; this one gates the
// label retrieval call.
var allowedLabelFormats = []string{"PDF", "PNG", "ZPL"}

// Params are the service-selection parameters accompanying an order.
type Params struct {
	APIKey      string
	Service     string
	LabelFormat string
}

// Package identifies a shipment created at the broker.
type Package struct {
	TrackingNumber string
	Service        string
	LabelFormat    string
}

// Courier orchestrates validation and broker calls for one integration.
type Courier struct {
	client  broker.Client
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// New creates a Courier. metrics may be nil.
func New(client broker.Client, logger *slog.Logger, metrics *telemetry.Metrics) *Courier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Courier{client: client, logger: logger, metrics: metrics}
}

// NewPackage validates the order against the chosen service's limits and
// creates the shipment at the broker. Each call builds its own service
// limits and unit state, so concurrent calls are independent.
func (c *Courier) NewPackage(ctx context.Context, order domain.Order, params Params) (*Package, error) {
	if err := c.checkParams(params); err != nil {
		c.metrics.RecordValidationFailure("params")
		return nil, err
	}

	service, err := c.resolveService(ctx, params.Service)
	if err != nil {
		return nil, err
	}

	info, err := c.client.GetServiceInfo(ctx, service)
	if err != nil {
		return nil, err
	}
	limits := validate.NewServiceLimits(info.ServiceInfo)

	logger := c.logger.With("service", service)
	logger.Debug("validating order",
		"max_weight_kg", limits.MaxWeightKg,
		"supported_countries", len(limits.SupportedCountries))

	shipment, units, err := validate.Shipment(order, limits)
	if err != nil {
		c.metrics.RecordValidationFailure("shipment")
		return nil, err
	}
	consignor, err := validate.Consignor(order, limits)
	if err != nil {
		c.metrics.RecordValidationFailure("consignor")
		return nil, err
	}
	consignee, err := validate.Consignee(order, limits)
	if err != nil {
		c.metrics.RecordValidationFailure("consignee")
		return nil, err
	}
	products, err := validate.Products(
		order.Products(), consignor.Text("Country"), consignee.Text("Country"), limits, units)
	if err != nil {
		c.metrics.RecordValidationFailure("products")
		return nil, err
	}
	c.metrics.RecordShipmentValidated()

	shipment.Set("ConsignorAddress", consignor)
	shipment.Set("ConsigneeAddress", consignee)
	shipment.Set("Products", products)

	resp, err := c.client.OrderShipment(ctx, shipment)
	if err != nil {
		return nil, err
	}
	if resp.Shipment.TrackingNumber == "" {
		return nil, domain.Errorf(domain.EINTERNAL, "courier.NewPackage",
			"Tracking number not found in the response.")
	}
	c.metrics.RecordPackageCreated()

	logger.Info("shipment created", "tracking_number", resp.Shipment.TrackingNumber)

	return &Package{
		TrackingNumber: resp.Shipment.TrackingNumber,
		Service:        service,
		LabelFormat:    strings.ToUpper(params.LabelFormat),
	}, nil
}

// PackageLabel fetches the shipping label for a created shipment and
// returns the decoded label bytes.
func (c *Courier) PackageLabel(ctx context.Context, trackingNumber, labelFormat string) ([]byte, error) {
	if trackingNumber == "" {
		return nil, domain.Errorf(domain.EINVALID, "courier.PackageLabel",
			"Tracking number cannot be empty.")
	}
	format := strings.ToUpper(labelFormat)
	if !containsFormat(format) {
		return nil, domain.Errorf(domain.EINVALID, "courier.PackageLabel",
			"Invalid label format. Allowed formats: %s", strings.Join(allowedLabelFormats, ", "))
	}

	resp, err := c.client.GetShipmentLabel(ctx, trackingNumber, format)
	if err != nil {
		return nil, err
	}
	if resp.Shipment.LabelImage == "" {
		return nil, domain.Errorf(domain.EINTERNAL, "courier.PackageLabel",
			"Label image not found in the response.")
	}

	label, err := base64.StdEncoding.DecodeString(resp.Shipment.LabelImage)
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, "courier.PackageLabel",
			"failed to decode label image")
	}
	c.metrics.RecordLabelFetched(format)

	c.logger.Info("label fetched",
		"tracking_number", trackingNumber, "format", format, "bytes", len(label))

	return label, nil
}

// checkParams validates the service-selection parameters.
func (c *Courier) checkParams(params Params) error {
	if params.APIKey == "" {
		return domain.Errorf(domain.EINVALID, "courier.params", "API key cannot be empty.")
	}
	if !containsFormat(strings.ToUpper(params.LabelFormat)) {
		return domain.Errorf(domain.EINVALID, "courier.params",
			"Invalid label format. Allowed formats: %s", strings.Join(allowedLabelFormats, ", "))
	}
	return nil
}

// resolveService checks the chosen service against the account's allowed
// list and returns the canonical upper-cased name.
func (c *Courier) resolveService(ctx context.Context, service string) (string, error) {
	resp, err := c.client.GetServices(ctx)
	if err != nil {
		return "", err
	}

	allowed := resp.Services.AllowedServices
	upper := strings.ToUpper(service)
	for _, candidate := range allowed {
		if candidate == upper {
			return upper, nil
		}
	}

	c.metrics.RecordValidationFailure("params")
	return "", domain.Errorf(domain.EINVALID, "courier.service",
		"Invalid service. Allowed services: %s", strings.Join(allowed, ", "))
}

func containsFormat(format string) bool {
	for _, candidate := range allowedLabelFormats {
		if candidate == format {
			return true
		}
	}
	return false
}
