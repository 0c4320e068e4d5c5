package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/de-tools/carbon-atlas/pkg/adapters"
	"github.com/de-tools/carbon-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/carbon-atlas/pkg/services/enrichment"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	service  enrichment.Service
	regions  []string
	reporter *export.Reporter
	output   io.Writer
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Service enrichment.Service
	Regions []string
	Output  io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		service:  opts.Service,
		regions:  opts.Regions,
		reporter: export.NewReporter(opts.Output),
		output:   opts.Output,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "carbon-atlas",
		Short: "Carbon and cost reporting tool",
	}

	cmd.AddCommand(cli.newReportCmd())
	cmd.AddCommand(cli.newRegionsCmd())

	return cmd
}

func (cli *CLI) newReportCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report <region>",
		Short: "Run an enrichment pass and print the region report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			region := args[0]

			report, err := cli.service.EnrichRegion(cmd.Context(), region)
			if err != nil {
				return fmt.Errorf("failed to build report for %s: %w", region, err)
			}

			if asJSON {
				encoder := json.NewEncoder(cli.output)
				encoder.SetIndent("", "  ")
				return encoder.Encode(adapters.MapEnrichmentReportDomainToApi(report))
			}
			return cli.reporter.Handle(&report)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw report as JSON")
	return cmd
}

func (cli *CLI) newRegionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the configured regions",
		RunE: func(_ *cobra.Command, _ []string) error {
			for _, region := range cli.regions {
				if _, err := fmt.Fprintln(cli.output, region); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
