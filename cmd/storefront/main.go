// Headless storefront client. Loads a section, prints its cards, and can
// place a one-off order or sit watching for refresh signals, exercising the
// same stock-aware flow the web storefront runs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/czulu/freshmart-backend/internal/refresh"
	"github.com/czulu/freshmart-backend/internal/storefront"
)

func main() {
	var (
		baseURL   = flag.String("api", envOr("API_URL", "http://localhost:8080"), "base URL of the FreshMart API")
		section   = flag.String("section", "trending", "section slug to load")
		orderID   = flag.String("order", "", "card id to order (optional)")
		orderQty  = flag.Int("qty", 1, "quantity to order")
		watch     = flag.Bool("watch", false, "stay running and reload on refresh signals")
		signalDir = flag.String("signal-dir", envOr("SIGNAL_DIR", "data/signals"), "shared signal directory for refresh pickup")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := storefront.NewClient(*baseURL, storefront.WithLogger(logger))

	opts := []storefront.ListingOption{storefront.WithListingLogger(logger)}
	var bus *refresh.Bus
	if *watch {
		transport, err := refresh.NewSignalDirTransport(*signalDir)
		if err != nil {
			log.Fatal(err)
		}
		bus = refresh.NewBus(transport, logger)
		defer bus.Close()
		opts = append(opts, storefront.WithRefreshBus(bus))
	}

	listing := storefront.NewListing(*section, client, opts...)
	if err := listing.Load(ctx); err != nil {
		log.Fatalf("load %s: %v", *section, err)
	}
	printListing(listing)

	if *orderID != "" {
		placeOrder(ctx, listing, *orderID, *orderQty)
		printListing(listing)
	}

	if *watch {
		cancel, err := listing.SubscribeRefresh(ctx)
		if err != nil {
			log.Fatalf("subscribe refresh: %v", err)
		}
		defer cancel()
		fmt.Println("Watching for refresh signals, Ctrl-C to stop...")
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				printListing(listing)
			}
		}
	}
}

func placeOrder(ctx context.Context, listing *storefront.Listing, id string, qty int) {
	if err := listing.SetQuantity(ctx, id, qty); err != nil {
		log.Fatalf("set quantity: %v", err)
	}
	err := listing.OrderNow(ctx, id)
	var oe *storefront.OrderError
	switch {
	case errors.As(err, &oe):
		fmt.Printf("order rejected: %s (stock %d)\n", oe.Reason, oe.Stock)
	case err != nil:
		log.Fatalf("order %s: %v", id, err)
	default:
		fmt.Printf("ordered %d x %s\n", qty, id)
	}
}

func printListing(listing *storefront.Listing) {
	fmt.Printf("\n%s\n", listing.Title())
	for _, c := range listing.Cards() {
		fmt.Printf("  %-34s %-28s $%-8.2f stock=%-4d [%s]\n",
			c.ID, c.Title, c.Price, c.Stock, listing.State(c.ID))
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
