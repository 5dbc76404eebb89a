package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nikhila-inturi/cartify/internal/cache"
	"github.com/Nikhila-inturi/cartify/internal/config"
	"github.com/Nikhila-inturi/cartify/internal/gateway"
	"github.com/Nikhila-inturi/cartify/internal/order"
)

// newGateway builds the orders client from configuration.
func newGateway(cfg *config.Config) *gateway.Client {
	opts := []gateway.Option{}
	if cfg.API.Timeout > 0 {
		opts = append(opts, gateway.WithTimeout(cfg.API.Timeout))
	}
	if cfg.Cache.Enabled {
		store := cache.NewStore(cache.Options{
			DefaultTTL:      cfg.Cache.TTL,
			CleanupInterval: cfg.Cache.CleanupInterval,
		})
		opts = append(opts, gateway.WithCache(store, cfg.Cache.TTL))
	}
	return gateway.New(cfg.API.BaseURL, cfg.API.AuthToken, opts...)
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Minute)
}

func printOrderTable(orders []order.Order) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER #\tCUSTOMER\tSTATUS\tTOTAL\tCREATED")
	for _, o := range orders {
		created := ""
		if !o.CreatedAt.IsZero() {
			created = o.CreatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\n",
			o.OrderNumber, o.CustomerID, o.Status, o.TotalAmount, created)
	}
	w.Flush()
}

func printOrder(o *order.Order) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Order #\t%s\n", o.OrderNumber)
	fmt.Fprintf(w, "ID\t%s\n", o.ID)
	fmt.Fprintf(w, "Customer\t%s\n", o.CustomerID)
	fmt.Fprintf(w, "Email\t%s\n", o.CustomerEmail)
	if o.ShippingAddress != "" {
		fmt.Fprintf(w, "Ship to\t%s\n", o.ShippingAddress)
	}
	fmt.Fprintf(w, "Status\t%s\n", o.Status)
	fmt.Fprintf(w, "Total\t%.2f\n", o.TotalAmount)
	if !o.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Created\t%s\n", o.CreatedAt.Format(time.RFC3339))
	}
	w.Flush()

	if len(o.Items) > 0 {
		fmt.Println()
		items := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(items, "PRODUCT\tQTY\tUNIT PRICE\tSUBTOTAL")
		for _, line := range o.Items {
			fmt.Fprintf(items, "%s\t%d\t%.2f\t%.2f\n",
				line.ProductName, line.Quantity, line.UnitPrice, line.Subtotal)
		}
		items.Flush()
	}
}

func init() {
	// List
	var listPage, listSize int
	var listCustomer string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List orders, one page at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if listSize <= 0 {
				listSize = cfg.API.PageSize
			}
			gw := newGateway(cfg)

			ctx, cancel := commandContext()
			defer cancel()

			var page *order.Page
			if listCustomer != "" {
				page, err = gw.ListCustomerOrders(ctx, listCustomer, listPage, listSize)
			} else {
				page, err = gw.ListOrders(ctx, listPage, listSize)
			}
			if err != nil {
				return err
			}

			printOrderTable(page.Orders)
			fmt.Printf("\nPage %d of %d (%d orders)\n",
				page.PageNumber+1, max(page.TotalPages, 1), page.TotalElements)
			return nil
		},
	}
	listCmd.Flags().IntVar(&listPage, "page", 0, "Zero-based page index")
	listCmd.Flags().IntVar(&listSize, "size", 0, "Page size (default from config)")
	listCmd.Flags().StringVar(&listCustomer, "customer", "", "Filter by customer id")
	rootCmd.AddCommand(listCmd)

	// Get
	var byNumber bool
	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			gw := newGateway(cfg)

			ctx, cancel := commandContext()
			defer cancel()

			var o *order.Order
			if byNumber {
				o, err = gw.GetOrderByNumber(ctx, args[0])
			} else {
				o, err = gw.GetOrder(ctx, args[0])
			}
			if err != nil {
				return err
			}
			printOrder(o)
			return nil
		},
	}
	getCmd.Flags().BoolVar(&byNumber, "number", false, "Look up by order number instead of id")
	rootCmd.AddCommand(getCmd)

	// Create
	var draftFile string
	createCmd := &cobra.Command{
		Use:   "create --file draft.json",
		Short: "Create an order from a draft file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if draftFile == "" {
				return fmt.Errorf("--file is required")
			}
			data, err := os.ReadFile(draftFile)
			if err != nil {
				return fmt.Errorf("read draft: %w", err)
			}
			var draft order.Draft
			if err := json.Unmarshal(data, &draft); err != nil {
				return fmt.Errorf("parse draft: %w", err)
			}
			if err := draft.Validate(); err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			gw := newGateway(cfg)

			ctx, cancel := commandContext()
			defer cancel()

			o, err := gw.CreateOrder(ctx, draft)
			if err != nil {
				return err
			}
			fmt.Printf("Created %s\n\n", o.OrderNumber)
			printOrder(o)
			return nil
		},
	}
	createCmd.Flags().StringVar(&draftFile, "file", "", "Path to a JSON order draft")
	rootCmd.AddCommand(createCmd)

	// Status
	statusCmd := &cobra.Command{
		Use:   "status <id> <new-status>",
		Short: "Request a status transition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			next, err := order.ParseStatus(args[1])
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			gw := newGateway(cfg)

			ctx, cancel := commandContext()
			defer cancel()

			o, err := gw.UpdateStatus(ctx, args[0], next)
			if err != nil {
				return err
			}
			fmt.Printf("%s is now %s\n", o.OrderNumber, o.Status)
			return nil
		},
	}
	rootCmd.AddCommand(statusCmd)

	// Cancel
	cancelCmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			gw := newGateway(cfg)

			ctx, cancel := commandContext()
			defer cancel()

			if err := gw.CancelOrder(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("Order cancelled")
			return nil
		},
	}
	rootCmd.AddCommand(cancelCmd)
}
