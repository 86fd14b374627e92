package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress  string
	DatabaseURI string

	StripeAPIURL    string
	StripeSecretKey string
	Currency        string

	StaffTokenSecret string

	ProcessedDir string
	FinalizedDir string

	PrintBedAddr     string
	PrintBedUser     string
	PrintBedPassword string
	PrintBedDir      string

	ShippingFlat      decimal.Decimal
	TaxRate           decimal.Decimal
	DefaultCustomerID int64

	// Catalog ids the bundler maps image groups onto.
	ItemLightbox  int64
	ItemSingle4x4 int64
	ItemDouble4x4 int64
	ItemSingle4x6 int64
	ItemSingle6x4 int64

	ImageWorkers    int
	ShutdownTimeout time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultStripeAPIURL    = "https://api.stripe.com"
	defaultCurrency        = "usd"
	defaultStaffSecret     = "change-me-in-production"
	defaultProcessedDir    = "processed-uploads"
	defaultFinalizedDir    = "finalized-uploads"
	defaultPrintBedDir     = "incoming"
	defaultShippingFlat    = "10.00"
	defaultTaxRate         = "0.08"
	defaultCustomerID      = 1
	defaultImageWorkers    = 4
	defaultShutdownTimeout = 10 * time.Second
)

// Default catalog ids for the seeded item table.
const (
	defaultItemLightbox  = 5
	defaultItemSingle4x4 = 6
	defaultItemDouble4x4 = 7
	defaultItemSingle4x6 = 8
	defaultItemSingle6x4 = 9
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		StripeAPIURL:      getString(lookup, "STRIPE_API_URL", defaultStripeAPIURL),
		StripeSecretKey:   getString(lookup, "STRIPE_SECRET_KEY", ""),
		Currency:          getString(lookup, "CURRENCY", defaultCurrency),
		StaffTokenSecret:  getString(lookup, "STAFF_TOKEN_SECRET", defaultStaffSecret),
		ProcessedDir:      getString(lookup, "PROCESSED_DIR", defaultProcessedDir),
		FinalizedDir:      getString(lookup, "FINALIZED_DIR", defaultFinalizedDir),
		PrintBedAddr:      getString(lookup, "PRINTBED_ADDR", ""),
		PrintBedUser:      getString(lookup, "PRINTBED_USER", ""),
		PrintBedPassword:  getString(lookup, "PRINTBED_PASSWORD", ""),
		PrintBedDir:       getString(lookup, "PRINTBED_DIR", defaultPrintBedDir),
		DefaultCustomerID: getInt64(lookup, "DEFAULT_CUSTOMER_ID", defaultCustomerID),
		ItemLightbox:      getInt64(lookup, "ITEM_LIGHTBOX", defaultItemLightbox),
		ItemSingle4x4:     getInt64(lookup, "ITEM_SINGLE_4X4", defaultItemSingle4x4),
		ItemDouble4x4:     getInt64(lookup, "ITEM_DOUBLE_4X4", defaultItemDouble4x4),
		ItemSingle4x6:     getInt64(lookup, "ITEM_SINGLE_4X6", defaultItemSingle4x6),
		ItemSingle6x4:     getInt64(lookup, "ITEM_SINGLE_6X4", defaultItemSingle6x4),
		ImageWorkers:      getInt(lookup, "IMAGE_WORKERS", defaultImageWorkers),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	shippingStr := getString(lookup, "SHIPPING_FLAT_RATE", defaultShippingFlat)
	taxStr := getString(lookup, "TAX_RATE", defaultTaxRate)

	fs := flag.NewFlagSet("printdesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	shutdownTimeoutStr := cfg.ShutdownTimeout.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.StripeAPIURL, "stripe-url", cfg.StripeAPIURL, "Stripe API base URL")
	fs.StringVar(&cfg.StaffTokenSecret, "staff-secret", cfg.StaffTokenSecret, "Secret for signing staff tokens")
	fs.StringVar(&cfg.ProcessedDir, "processed-dir", cfg.ProcessedDir, "Directory for grayscale-processed uploads")
	fs.StringVar(&cfg.FinalizedDir, "finalized-dir", cfg.FinalizedDir, "Directory for finalized uploads")
	fs.StringVar(&shippingStr, "shipping", shippingStr, "Flat shipping rate")
	fs.StringVar(&taxStr, "tax", taxStr, "Tax rate as a fraction")
	fs.IntVar(&cfg.ImageWorkers, "image-workers", cfg.ImageWorkers, "Number of concurrent image ingest workers")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShippingFlat, err = decimal.NewFromString(shippingStr); err != nil {
		return nil, fmt.Errorf("invalid shipping rate: %w", err)
	}

	if cfg.TaxRate, err = decimal.NewFromString(taxStr); err != nil {
		return nil, fmt.Errorf("invalid tax rate: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("STRIPE_SECRET_KEY_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read stripe secret file: %w", err)
		}
		cfg.StripeSecretKey = string(content)
	}

	if cfg.ImageWorkers <= 0 {
		cfg.ImageWorkers = defaultImageWorkers
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.ShippingFlat.IsNegative() {
		return nil, fmt.Errorf("shipping rate must not be negative")
	}

	if cfg.TaxRate.IsNegative() {
		return nil, fmt.Errorf("tax rate must not be negative")
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("stripe secret key must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
