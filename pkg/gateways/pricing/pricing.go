// Package pricing serves on-demand hourly rates from an embedded price
// sheet. Regions not present in the sheet fall back to the fallback region's
// rates; an instance type missing there too is unavailable, not free.
package pricing

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/de-tools/carbon-atlas/pkg/gateways"
	json "github.com/goccy/go-json"
)

//go:embed data/ondemand.json
var rawOnDemandJSON []byte

type priceSheet struct {
	Currency       string                        `json:"currency"`
	FallbackRegion string                        `json:"fallbackRegion"`
	Regions        map[string]map[string]float64 `json:"regions"`
}

type client struct {
	once  sync.Once
	err   error
	sheet priceSheet
}

func NewClient() gateways.Pricing {
	return &client{}
}

func (c *client) HourlyPrice(_ context.Context, resourceType, region string) (float64, error) {
	c.once.Do(c.load)
	if c.err != nil {
		return 0, c.err
	}

	table, ok := c.sheet.Regions[region]
	if !ok {
		table, ok = c.sheet.Regions[c.sheet.FallbackRegion]
		if !ok {
			return 0, fmt.Errorf("no pricing for region %s: %w", region, gateways.ErrUnavailable)
		}
	}
	price, ok := table[resourceType]
	if !ok {
		return 0, fmt.Errorf(
			"no pricing for instance type %s in region %s: %w",
			resourceType, region, gateways.ErrUnavailable)
	}
	return price, nil
}

func (c *client) load() {
	if err := json.Unmarshal(rawOnDemandJSON, &c.sheet); err != nil {
		c.err = fmt.Errorf("failed to parse embedded price sheet: %w", err)
	}
}
