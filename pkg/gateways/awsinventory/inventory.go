// Package awsinventory lists EC2 instances as enrichable resources.
package awsinventory

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/de-tools/carbon-atlas/pkg/gateways"
	"github.com/de-tools/carbon-atlas/pkg/gateways/awsconfig"
	"github.com/de-tools/carbon-atlas/pkg/models/domain"
)

type inventory struct {
	client *ec2.Client
}

func NewInventory(cfg aws.Config) gateways.Inventory {
	return &inventory{client: ec2.NewFromConfig(cfg)}
}

func (inv *inventory) ListResources(ctx context.Context, region string) ([]domain.Resource, error) {
	// Terminated instances stay visible for roughly an hour, long enough to
	// attribute their final runtime, so no state filter is applied.
	paginator := ec2.NewDescribeInstancesPaginator(inv.client, &ec2.DescribeInstancesInput{})

	var resources []domain.Resource
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx, func(o *ec2.Options) { o.Region = region })
		if err != nil {
			return nil, awsconfig.ClassifyError("failed to describe EC2 instances", err)
		}
		for _, reservation := range page.Reservations {
			for _, instance := range reservation.Instances {
				resources = append(resources, mapInstance(instance, region))
			}
		}
	}
	return resources, nil
}

func mapInstance(instance types.Instance, region string) domain.Resource {
	res := domain.Resource{
		ID:         aws.ToString(instance.InstanceId),
		Type:       string(instance.InstanceType),
		State:      mapState(instance.State),
		Region:     region,
		LaunchTime: instance.LaunchTime,
	}
	if len(instance.Tags) > 0 {
		res.Tags = make(map[string]string, len(instance.Tags))
		for _, tag := range instance.Tags {
			res.Tags[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
		}
	}
	return res
}

func mapState(state *types.InstanceState) domain.ResourceState {
	if state == nil {
		return domain.ResourceStateStopped
	}
	switch state.Name {
	case types.InstanceStateNamePending, types.InstanceStateNameRunning:
		return domain.ResourceStateRunning
	case types.InstanceStateNameShuttingDown, types.InstanceStateNameTerminated:
		return domain.ResourceStateTerminated
	default:
		return domain.ResourceStateStopped
	}
}
