package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/carbon-atlas/pkg/gateways/awsaudit"
	"github.com/de-tools/carbon-atlas/pkg/gateways/awsbilling"
	"github.com/de-tools/carbon-atlas/pkg/gateways/awsconfig"
	"github.com/de-tools/carbon-atlas/pkg/gateways/awsinventory"
	"github.com/de-tools/carbon-atlas/pkg/gateways/awsmetrics"
	"github.com/de-tools/carbon-atlas/pkg/gateways/gridcarbon"
	"github.com/de-tools/carbon-atlas/pkg/gateways/powermodel"
	"github.com/de-tools/carbon-atlas/pkg/gateways/pricing"
	"github.com/de-tools/carbon-atlas/pkg/runtime/terminal"
	"github.com/de-tools/carbon-atlas/pkg/services/config"
	"github.com/de-tools/carbon-atlas/pkg/services/enrichment"
	"github.com/de-tools/carbon-atlas/pkg/store/cache"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	cfgPath := os.Getenv("CARBON_ATLAS_CONFIG")
	if cfgPath == "" {
		cfgPath = "carbon-atlas.yaml"
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	enricher, err := buildEngine(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Service: enricher,
		Regions: cfg.Regions,
		Output:  os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildEngine(ctx context.Context, cfg *config.Config) (enrichment.Service, error) {
	awsCfg, err := awsconfig.LoadConfig(ctx, cfg.AWSProfile, cfg.Regions[0])
	if err != nil {
		return nil, err
	}

	carbon, err := gridcarbon.NewClient(gridcarbon.DefaultSettings(cfg.Carbon.BaseURL, cfg.Carbon.Token))
	if err != nil {
		return nil, fmt.Errorf("failed to create grid carbon client: %w", err)
	}

	db, err := cache.NewDB(cache.Settings{DbPath: cfg.CachePath})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache store: %w", err)
	}

	return enrichment.NewEnricher(enrichment.Dependencies{
		Inventory: awsinventory.NewInventory(*awsCfg),
		Audit:     awsaudit.NewAudit(*awsCfg),
		Metrics:   awsmetrics.NewMetrics(*awsCfg),
		Carbon:    carbon,
		Power:     powermodel.NewModel(),
		Pricing:   pricing.NewClient(),
		Billing:   awsbilling.NewBilling(*awsCfg),
		Cache:     cache.NewStore(db, cache.SystemClock()),
	}, enrichment.Settings{
		LookbackHours: cfg.LookbackHours,
		Concurrency:   cfg.Concurrency,
	})
}
