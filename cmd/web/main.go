package main

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/de-tools/carbon-atlas/pkg/gateways"
	"github.com/de-tools/carbon-atlas/pkg/gateways/awsaudit"
	"github.com/de-tools/carbon-atlas/pkg/gateways/awsbilling"
	"github.com/de-tools/carbon-atlas/pkg/gateways/awsconfig"
	"github.com/de-tools/carbon-atlas/pkg/gateways/awsinventory"
	"github.com/de-tools/carbon-atlas/pkg/gateways/awsmetrics"
	"github.com/de-tools/carbon-atlas/pkg/gateways/gridcarbon"
	"github.com/de-tools/carbon-atlas/pkg/gateways/powermodel"
	"github.com/de-tools/carbon-atlas/pkg/gateways/pricing"
	"github.com/de-tools/carbon-atlas/pkg/server"
	"github.com/de-tools/carbon-atlas/pkg/services/config"
	"github.com/de-tools/carbon-atlas/pkg/services/enrichment"
	"github.com/de-tools/carbon-atlas/pkg/store/cache"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Carbon Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "carbon-atlas.yaml",
		"Path to the engine config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load engine config: %w", err)
	}

	enricher, inventory, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}

	logger.Info().Strs("regions", cfg.Regions).Msg("engine configured")

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:    net.JoinHostPort(host, port),
		Regions: cfg.Regions,
		Dependencies: server.Dependencies{
			Enricher:  enricher,
			Inventory: inventory,
		},
	})

	return api.Start()
}

func buildEngine(
	ctx context.Context,
	cfg *config.Config,
) (enrichment.Service, gateways.Inventory, error) {
	awsCfg, err := awsconfig.LoadConfig(ctx, cfg.AWSProfile, cfg.Regions[0])
	if err != nil {
		return nil, nil, err
	}

	carbon, err := gridcarbon.NewClient(gridcarbon.DefaultSettings(cfg.Carbon.BaseURL, cfg.Carbon.Token))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create grid carbon client: %w", err)
	}

	db, err := cache.NewDB(cache.Settings{DbPath: cfg.CachePath})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache store: %w", err)
	}
	repo := cache.NewStore(db, cache.SystemClock())

	inventory := awsinventory.NewInventory(*awsCfg)
	enricher, err := enrichment.NewEnricher(enrichment.Dependencies{
		Inventory: inventory,
		Audit:     awsaudit.NewAudit(*awsCfg),
		Metrics:   awsmetrics.NewMetrics(*awsCfg),
		Carbon:    carbon,
		Power:     powermodel.NewModel(),
		Pricing:   pricing.NewClient(),
		Billing:   awsbilling.NewBilling(*awsCfg),
		Cache:     repo,
	}, enrichment.Settings{
		LookbackHours: cfg.LookbackHours,
		Concurrency:   cfg.Concurrency,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create enricher: %w", err)
	}
	return enricher, inventory, nil
}
