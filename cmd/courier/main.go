package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/parcelgate/courier/internal"
	"github.com/parcelgate/courier/internal/broker"
	"github.com/parcelgate/courier/internal/courier"
	"github.com/parcelgate/courier/internal/domain"
	"github.com/parcelgate/courier/internal/handler"
	"github.com/parcelgate/courier/internal/middleware"
	"github.com/parcelgate/courier/internal/router"
	"github.com/parcelgate/courier/internal/routes"
	"github.com/parcelgate/courier/internal/telemetry"
)

func run() error {
	serve := flag.Bool("serve", false, "start the HTTP server instead of processing a single order")
	orderPath := flag.String("order", "order.json", "path to the order file (one-shot mode)")
	labelPath := flag.String("label", "", "path to write the label to (one-shot mode, defaults to shipping_label.<format>)")
	flag.Parse()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	metrics := telemetry.NewMetrics(prometheus.DefaultRegisterer, "courier")

	client, err := broker.NewHTTPClient(broker.Config{
		BaseURL: cfg.Broker.BaseURL,
		APIKey:  cfg.Broker.APIKey,
		Timeout: cfg.Broker.Timeout,
		Logger:  logger,
		Metrics: metrics,
	})
	if err != nil {
		return fmt.Errorf("broker client initialization failed: %w", err)
	}

	c := courier.New(client, logger, metrics)

	params := courier.Params{
		APIKey:      cfg.Broker.APIKey,
		Service:     cfg.Courier.Service,
		LabelFormat: cfg.Courier.LabelFormat,
	}

	if *serve {
		return serveHTTP(cfg, c, params, logger)
	}
	return processOrder(context.Background(), c, params, *orderPath, *labelPath, logger)
}

func serveHTTP(cfg *internal.Config, c *courier.Courier, params courier.Params, logger *slog.Logger) error {
	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		middleware.WithRequestLogger(logger),
	)

	routes.Register(r, routes.Deps{
		Shipments: handler.New(c, params, logger),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting courier server", "address", addr)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// processOrder validates a single order from disk, creates the shipment and
// writes the label next to it.
func processOrder(ctx context.Context, c *courier.Courier, params courier.Params, orderPath, labelPath string, logger *slog.Logger) error {
	data, err := os.ReadFile(orderPath)
	if err != nil {
		return fmt.Errorf("reading order file failed: %w", err)
	}

	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return fmt.Errorf("order file is not valid JSON: %w", err)
	}

	pkg, err := c.NewPackage(ctx, order, params)
	result := courier.NewResult(pkg, err)
	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))
	if err != nil {
		return fmt.Errorf("shipment rejected: %w", err)
	}

	label, err := c.PackageLabel(ctx, pkg.TrackingNumber, pkg.LabelFormat)
	if err != nil {
		return fmt.Errorf("label retrieval failed: %w", err)
	}

	if labelPath == "" {
		labelPath = "shipping_label." + strings.ToLower(pkg.LabelFormat)
	}
	if err := os.WriteFile(labelPath, label, 0o644); err != nil {
		return fmt.Errorf("writing label failed: %w", err)
	}
	logger.Info("Label saved", "tracking_number", pkg.TrackingNumber, "path", labelPath)
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
