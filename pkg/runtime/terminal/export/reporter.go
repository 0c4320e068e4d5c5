package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
)

type TableConfig struct {
	IDWidth         int
	RuntimeWidth    int
	CO2Width        int
	CostWidth       int
	MethodWidth     int
	ConfidenceWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		IDWidth:         22,
		RuntimeWidth:    11,
		CO2Width:        12,
		CostWidth:       12,
		MethodWidth:     16,
		ConfidenceWidth: 10,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(report *domain.EnrichmentReport) error {
	funcMap := template.FuncMap{
		"formatRow": func(id, runtime, co2, cost, method, confidence string) string {
			return fmt.Sprintf("| %-*s | %*s | %*s | %*s | %-*s | %-*s |",
				c.config.IDWidth, id,
				c.config.RuntimeWidth, runtime,
				c.config.CO2Width, co2,
				c.config.CostWidth, cost,
				c.config.MethodWidth, method,
				c.config.ConfidenceWidth, confidence)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.IDWidth+2),
				strings.Repeat("-", c.config.RuntimeWidth+2),
				strings.Repeat("-", c.config.CO2Width+2),
				strings.Repeat("-", c.config.CostWidth+2),
				strings.Repeat("-", c.config.MethodWidth+2),
				strings.Repeat("-", c.config.ConfidenceWidth+2))
		},
		"opt": formatOptional,
	}

	tmpl := `
Carbon & Cost Report for {{.Region}} (run {{.RunID}})

Window: {{.WindowStart.Format "2006-01-02 15:04"}} to {{.WindowEnd.Format "2006-01-02 15:04"}} UTC
{{if .CurrentIntensity}}Current grid intensity: {{opt .CurrentIntensity 0}} g/kWh
{{end}}
Totals (hourly precise / period average):
  CO2:  {{opt .Totals.CO2Hourly 4}} / {{opt .Totals.CO2Average 4}} kg
  Cost: {{opt .Totals.CostHourly 2}} / {{opt .Totals.CostAverage 2}} USD
{{if .Totals.BilledCost}}  Billed (provider): {{opt .Totals.BilledCost 2}} USD
{{end}}
Coverage: {{.Totals.HourlyPreciseCount}} hourly precise, {{.Totals.AverageOnlyCount}} average only, {{.Totals.UnmeasuredCount}} unmeasured

{{separator}}
{{formatRow "Resource" "Runtime h" "CO2 kg" "Cost USD" "Method" "Confidence"}}
{{separator}}
{{range .Results}}{{formatRow .Resource.ID (opt .RuntimeHours 1) (opt .CO2KgHourly 4) (opt .CostHourly 2) (printf "%s" .Method) (printf "%s" .Confidence)}}
{{end}}{{separator}}
`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

// formatOptional renders a possibly-absent value. Missing data prints as
// "n/a", never as zero.
func formatOptional(v *float64, decimals int) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.*f", decimals, *v)
}
