// Package awsaudit reads instance lifecycle events from CloudTrail.
package awsaudit

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail/types"
	"github.com/de-tools/carbon-atlas/pkg/gateways"
	"github.com/de-tools/carbon-atlas/pkg/gateways/awsconfig"
	"github.com/de-tools/carbon-atlas/pkg/models/domain"
)

// eventNames maps CloudTrail event names onto lifecycle transitions. A
// RunInstances launch starts a session the same way StartInstances does.
var eventNames = map[string]domain.EventName{
	"RunInstances":       domain.EventStart,
	"StartInstances":     domain.EventStart,
	"StopInstances":      domain.EventStop,
	"TerminateInstances": domain.EventTerminate,
}

type audit struct {
	client *cloudtrail.Client
}

func NewAudit(cfg aws.Config) gateways.Audit {
	return &audit{client: cloudtrail.NewFromConfig(cfg)}
}

func (a *audit) LookupEvents(
	ctx context.Context,
	resourceID, region string,
	windowStart, windowEnd time.Time,
) ([]domain.AuditEvent, error) {
	paginator := cloudtrail.NewLookupEventsPaginator(a.client, &cloudtrail.LookupEventsInput{
		LookupAttributes: []types.LookupAttribute{
			{
				AttributeKey:   types.LookupAttributeKeyResourceName,
				AttributeValue: aws.String(resourceID),
			},
		},
		StartTime: aws.Time(windowStart),
		EndTime:   aws.Time(windowEnd),
	})

	var events []domain.AuditEvent
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx, func(o *cloudtrail.Options) { o.Region = region })
		if err != nil {
			return nil, awsconfig.ClassifyError("failed to look up CloudTrail events", err)
		}
		for _, event := range page.Events {
			if mapped, ok := mapEvent(event); ok {
				events = append(events, mapped)
			}
		}
	}
	return events, nil
}

func mapEvent(event types.Event) (domain.AuditEvent, bool) {
	name, ok := eventNames[aws.ToString(event.EventName)]
	if !ok || event.EventTime == nil {
		return domain.AuditEvent{}, false
	}
	return domain.AuditEvent{Name: name, Timestamp: *event.EventTime}, true
}
