package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nikhila-inturi/cartify/internal/config"
	"github.com/Nikhila-inturi/cartify/internal/order"
	"github.com/Nikhila-inturi/cartify/internal/stubapi"
	"github.com/Nikhila-inturi/cartify/internal/support/logging"
)

var demoDrafts = []order.Draft{
	{
		CustomerID:      "cust-1001",
		CustomerEmail:   "ava.marsh@example.com",
		ShippingAddress: "14 Harbor Lane, Portsmouth",
		Items: []order.DraftLine{
			{ProductID: "prod-201", ProductName: "Walnut desk organizer", Quantity: 1, UnitPrice: 34.50},
			{ProductID: "prod-118", ProductName: "Brass pen holder", Quantity: 2, UnitPrice: 12.25},
		},
	},
	{
		CustomerID:      "cust-1002",
		CustomerEmail:   "theo.lindt@example.com",
		ShippingAddress: "88 Cedar Court, Leeds",
		Items: []order.DraftLine{
			{ProductID: "prod-077", ProductName: "Linen notebook", Quantity: 3, UnitPrice: 9.99},
		},
	},
	{
		CustomerID:      "cust-1003",
		CustomerEmail:   "mina.okafor@example.com",
		ShippingAddress: "5 Birch Row, Galway",
		Items: []order.DraftLine{
			{ProductID: "prod-310", ProductName: "Ceramic mug set", Quantity: 1, UnitPrice: 28.00},
			{ProductID: "prod-311", ProductName: "Pour-over kettle", Quantity: 1, UnitPrice: 46.75},
		},
	},
}

func init() {
	var seed bool
	var addr string
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local in-memory order service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Serve.Addr = addr
			}
			log := logging.New(logging.Options{
				Level:     cfg.Log.SlogLevel(),
				Format:    cfg.Log.Format,
				AddSource: cfg.Log.AddSource,
			})

			srv := stubapi.NewServer(log)
			if seed {
				srv.Seed(demoDrafts...)
			}

			httpServer := &http.Server{
				Addr: cfg.Serve.Addr,
				Handler: srv.Router(stubapi.RouterOptions{
					Metrics:          cfg.Serve.Metrics.Enabled,
					MetricsNamespace: cfg.Serve.Metrics.Namespace,
				}),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("order service listening", "addr", cfg.Serve.Addr)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-stop:
				log.Info("shutting down", "signal", sig.String())
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return httpServer.Shutdown(ctx)
		},
	}
	serveCmd.Flags().BoolVar(&seed, "seed", false, "Seed a few demo orders on startup")
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
