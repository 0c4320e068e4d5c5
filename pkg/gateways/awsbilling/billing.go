// Package awsbilling reads billed cost totals from Cost Explorer. Billed
// figures are the reconciliation reference for the computed totals, never an
// input to per-resource math.
package awsbilling

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/de-tools/carbon-atlas/pkg/gateways"
	"github.com/de-tools/carbon-atlas/pkg/gateways/awsconfig"
)

const costMetric = "UnblendedCost"

type billing struct {
	client *costexplorer.Client
}

func NewBilling(cfg aws.Config) gateways.Billing {
	return &billing{client: costexplorer.NewFromConfig(cfg)}
}

func (b *billing) PeriodCost(ctx context.Context, region string, start, end time.Time) (float64, error) {
	// Cost Explorer granularity is a calendar day; the period is widened to
	// whole days so a mid-day window start is still covered.
	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &types.DateInterval{
			Start: aws.String(start.Format("2006-01-02")),
			End:   aws.String(end.AddDate(0, 0, 1).Format("2006-01-02")),
		},
		Granularity: types.GranularityDaily,
		Metrics:     []string{costMetric},
		Filter: &types.Expression{
			Dimensions: &types.DimensionValues{
				Key:    types.DimensionRegion,
				Values: []string{region},
			},
		},
	}

	out, err := b.client.GetCostAndUsage(ctx, input)
	if err != nil {
		return 0, awsconfig.ClassifyError("failed to fetch billed cost", err)
	}
	return sumResults(out.ResultsByTime)
}

func sumResults(results []types.ResultByTime) (float64, error) {
	if len(results) == 0 {
		return 0, gateways.ErrUnavailable
	}
	total := 0.0
	for _, result := range results {
		metric, ok := result.Total[costMetric]
		if !ok || metric.Amount == nil {
			continue
		}
		amount, err := strconv.ParseFloat(aws.ToString(metric.Amount), 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse cost amount %q: %w", aws.ToString(metric.Amount), err)
		}
		total += amount
	}
	return total, nil
}
