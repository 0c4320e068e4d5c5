// Package awsmetrics reads hourly CPU utilization from CloudWatch.
package awsmetrics

import (
	"context"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/de-tools/carbon-atlas/pkg/gateways"
	"github.com/de-tools/carbon-atlas/pkg/gateways/awsconfig"
	"github.com/de-tools/carbon-atlas/pkg/models/domain"
)

const hourlyPeriodSeconds = 3600

type metrics struct {
	client *cloudwatch.Client
}

func NewMetrics(cfg aws.Config) gateways.Metrics {
	return &metrics{client: cloudwatch.NewFromConfig(cfg)}
}

func (m *metrics) FetchCPUHourly(
	ctx context.Context,
	resourceID, region string,
	start, end time.Time,
) ([]domain.Sample, error) {
	out, err := m.client.GetMetricStatistics(ctx, &cloudwatch.GetMetricStatisticsInput{
		Namespace:  aws.String("AWS/EC2"),
		MetricName: aws.String("CPUUtilization"),
		Dimensions: []types.Dimension{
			{Name: aws.String("InstanceId"), Value: aws.String(resourceID)},
		},
		StartTime:  aws.Time(start),
		EndTime:    aws.Time(end),
		Period:     aws.Int32(hourlyPeriodSeconds),
		Statistics: []types.Statistic{types.StatisticAverage},
	}, func(o *cloudwatch.Options) { o.Region = region })
	if err != nil {
		return nil, awsconfig.ClassifyError("failed to fetch CPU utilization", err)
	}
	return mapDatapoints(out.Datapoints), nil
}

// mapDatapoints converts CloudWatch datapoints to ordered samples.
// CloudWatch returns them in arbitrary order.
func mapDatapoints(points []types.Datapoint) []domain.Sample {
	samples := make([]domain.Sample, 0, len(points))
	for _, point := range points {
		if point.Timestamp == nil || point.Average == nil {
			continue
		}
		samples = append(samples, domain.Sample{
			Timestamp: *point.Timestamp,
			Value:     *point.Average,
		})
	}
	sort.Slice(samples, func(i, j int) bool {
		return samples[i].Timestamp.Before(samples[j].Timestamp)
	})
	return samples
}
