// Command storefront is the headless grocery storefront: cart and
// checkout operations for customers, and fulfillment operations for
// admin and delivery actors, all against the external store API.
//
// Usage:
//
//	storefront catalog
//	storefront search <query>
//	storefront cart show|add|update|clear [args]
//	storefront checkout -shop ... -owner ... -mobile ... -address ...
//	storefront orders list|pack|assign|start|deliver [args]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"kirana-kart/internal/backend"
	"kirana-kart/internal/cart"
	"kirana-kart/internal/catalog"
	"kirana-kart/internal/checkout"
	"kirana-kart/internal/config"
	"kirana-kart/internal/database"
	"kirana-kart/internal/fulfillment"
	"kirana-kart/internal/geo"
	"kirana-kart/internal/model"
	"kirana-kart/internal/pricing"
	"kirana-kart/internal/search"
	"kirana-kart/internal/store"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the wired services the subcommands operate on.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	backend  backend.Client
	store    store.Store
	cart     *cart.Service
	checkout *checkout.Service
	cleanup  func()
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.cleanup()

	args := os.Args[1:]
	if len(args) == 0 {
		return fmt.Errorf("usage: storefront <catalog|search|cart|checkout|orders> [args]")
	}

	switch args[0] {
	case "catalog":
		return a.runCatalog(ctx)
	case "search":
		return a.runSearch(ctx, args[1:])
	case "cart":
		return a.runCart(ctx, args[1:])
	case "checkout":
		return a.runCheckout(ctx, args[1:])
	case "orders":
		return a.runOrders(ctx, args[1:])
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	client := backend.NewHTTPClient(backend.Options{
		BaseURL: cfg.Backend.BaseURL,
		Token:   cfg.Backend.Token,
		Timeout: time.Duration(cfg.Backend.Timeout) * time.Second,
	}, logger)

	st, cleanup, err := newStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	cartSvc := cart.NewService(st, logger)
	checkoutSvc := checkout.NewService(cartSvc, client, st, terminalNotifier{}, checkout.Config{
		MaxRetries:      cfg.Checkout.MaxRetries,
		InitialInterval: time.Duration(cfg.Checkout.InitialBackoff) * time.Second,
	}, logger)

	return &app{
		cfg:      cfg,
		logger:   logger,
		backend:  client,
		store:    st,
		cart:     cartSvc,
		checkout: checkoutSvc,
		cleanup:  cleanup,
	}, nil
}

func newStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (store.Store, func(), error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		return store.NewMemoryStore(), func() {}, nil
	case config.StoreBackendPostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if _, err := pool.Exec(ctx, store.Schema); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to ensure store schema: %w", err)
		}
		return store.NewPostgresStore(pool, logger), pool.Close, nil
	default:
		st, err := store.NewFileStore(cfg.Store.Dir, logger)
		if err != nil {
			return nil, nil, err
		}
		return st, func() {}, nil
	}
}

// terminalNotifier prints workflow progress for the person at the
// keyboard.
type terminalNotifier struct{}

func (terminalNotifier) Info(msg string)    { fmt.Println(msg) }
func (terminalNotifier) Success(msg string) { fmt.Println(msg) }
func (terminalNotifier) Error(msg string)   { fmt.Fprintln(os.Stderr, msg) }

func (a *app) runCatalog(ctx context.Context) error {
	loader := catalog.NewLoader(a.backend, a.logger)
	cat, err := loader.Load(ctx)
	if err != nil {
		return err
	}

	if cat.Settings != nil && cat.Settings.StoreName != "" {
		fmt.Printf("%s\n\n", cat.Settings.StoreName)
	}
	for _, p := range cat.Products {
		fmt.Printf("%-12s %-30s %8s %s\n", p.ID, p.Name, pricing.FormatAmount(pricing.FinalPrice(p)), p.Unit)
	}
	return nil
}

func (a *app) runSearch(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: storefront search <query>")
	}

	d := search.NewDebouncer(a.backend, time.Duration(a.cfg.Search.DebounceMillis)*time.Millisecond, a.logger)
	defer d.Close()

	d.Query(ctx, args[0])
	select {
	case res := <-d.Results():
		if res.Err != nil {
			return res.Err
		}
		for _, p := range res.Products {
			fmt.Printf("%-12s %-30s %8s\n", p.ID, p.Name, pricing.FormatAmount(pricing.FinalPrice(p)))
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *app) runCart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"show"}
	}

	switch args[0] {
	case "show":
		c := a.cart.GetCart(ctx)
		for _, item := range c {
			fmt.Printf("%-12s %-30s x%-4d %8s\n",
				item.Product.ID, item.Product.Name, item.Quantity,
				pricing.FormatAmount(pricing.LineTotal(item)))
		}
		fmt.Printf("Total: %s\n", pricing.FormatAmount(a.cart.GetCartTotal(c)))
		return nil

	case "add":
		if len(args) < 3 {
			return fmt.Errorf("usage: storefront cart add <product-id> <quantity>")
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid quantity: %s", args[2])
		}
		products, err := a.backend.GetProducts(ctx)
		if err != nil {
			return err
		}
		for _, p := range products {
			if p.ID == args[1] {
				_, err := a.cart.AddToCart(ctx, p, qty)
				return err
			}
		}
		return fmt.Errorf("product not found: %s", args[1])

	case "update":
		if len(args) < 3 {
			return fmt.Errorf("usage: storefront cart update <product-id> <quantity>")
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid quantity: %s", args[2])
		}
		_, err = a.cart.UpdateCartItem(ctx, args[1], qty)
		return err

	case "clear":
		return a.cart.ClearCart(ctx)

	default:
		return fmt.Errorf("unknown cart command: %s", args[0])
	}
}

func (a *app) runCheckout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	shop := fs.String("shop", "", "shop name")
	owner := fs.String("owner", "", "owner name")
	mobile := fs.String("mobile", "", "10-digit mobile number")
	address := fs.String("address", "", "delivery address")
	pincode := fs.String("pincode", "", "6-digit pincode")
	if err := fs.Parse(args); err != nil {
		return err
	}

	customer := model.Customer{
		ShopName:       *shop,
		OwnerName:      *owner,
		Mobile:         *mobile,
		Address:        *address,
		Pincode:        *pincode,
		DeliveryOption: "next_day",
	}

	// Prefill from the last checkout when the form is empty.
	if customer.Mobile == "" {
		if saved := a.checkout.RecallCustomer(ctx); saved != nil {
			customer = *saved
		}
	}

	resolver := geo.NewResolver(noLocator{}, time.Duration(a.cfg.Geo.Timeout)*time.Second, a.logger)
	loc, usedFallback := resolver.Resolve(ctx)
	customer.Location = loc
	if usedFallback {
		fmt.Println("Using default location: Gujarat, India")
	}

	orderID, err := a.checkout.Submit(ctx, customer)
	if err != nil {
		return err
	}
	fmt.Printf("Order ID: %s\n", orderID)
	return nil
}

// noLocator has no device location source; the resolver substitutes
// the fallback.
type noLocator struct{}

func (noLocator) Locate(ctx context.Context) (model.Location, error) {
	return model.Location{}, fmt.Errorf("no location source available")
}

func (a *app) runOrders(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: storefront orders <list|pack|assign|start|deliver> [args]")
	}

	admin := fulfillment.NewAdminService(a.backend, a.logger)

	switch args[0] {
	case "list":
		status := model.OrderStatus("")
		if len(args) > 1 {
			status = model.OrderStatus(args[1])
		}
		orders, err := admin.ListOrders(ctx, status)
		if err != nil {
			return err
		}
		for _, o := range orders {
			fmt.Printf("%-26s %-18s %10s %s\n",
				o.ID, o.Status, pricing.FormatAmount(o.TotalAmount), o.CustomerInfo.ShopName)
		}
		return nil

	case "pack":
		if len(args) < 2 {
			return fmt.Errorf("usage: storefront orders pack <order-id>")
		}
		order, err := admin.MarkPacked(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Order %s is now %s\n", order.ID, order.Status)
		return nil

	case "assign":
		if len(args) < 4 {
			return fmt.Errorf("usage: storefront orders assign <order-id> <partner-id> <partner-name>")
		}
		order, err := admin.AssignPartner(ctx, args[1], model.DeliveryPartner{ID: args[2], Name: args[3]})
		if err != nil {
			return err
		}
		fmt.Printf("Order %s assigned to %s\n", order.ID, order.DeliveryPartnerName)
		return nil

	case "start":
		if len(args) < 3 {
			return fmt.Errorf("usage: storefront orders start <order-id> <partner-id>")
		}
		delivery := fulfillment.NewDeliveryService(a.backend, model.DeliveryPartner{ID: args[2]}, a.logger)
		order, err := delivery.StartDelivery(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Order %s is now %s", order.ID, order.Status)
		if order.DeliveryOTP != "" {
			fmt.Printf(" (delivery OTP: %s)", order.DeliveryOTP)
		}
		fmt.Println()
		return nil

	case "deliver":
		if len(args) < 4 {
			return fmt.Errorf("usage: storefront orders deliver <order-id> <partner-id> <otp>")
		}
		delivery := fulfillment.NewDeliveryService(a.backend, model.DeliveryPartner{ID: args[2]}, a.logger)
		order, err := delivery.CompleteDelivery(ctx, args[1], args[3])
		if err != nil {
			return err
		}
		fmt.Printf("Order %s delivered\n", order.ID)
		return nil

	default:
		return fmt.Errorf("unknown orders command: %s", args[0])
	}
}
