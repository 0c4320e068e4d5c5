// Package powermodel serves per-instance-type power ratings from an embedded
// dataset. The numbers follow the Cloud Carbon Footprint coefficients; the
// dataset is regenerated when CCF publishes a new vintage.
package powermodel

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/de-tools/carbon-atlas/pkg/gateways"
	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	json "github.com/goccy/go-json"
)

//go:embed data/instance_power.json
var rawInstancePowerJSON []byte

type instancePowerData struct {
	Source        string `json:"source"`
	InstanceTypes map[string]struct {
		AvgWatts float64 `json:"avgWatts"`
		MinWatts float64 `json:"minWatts"`
		MaxWatts float64 `json:"maxWatts"`
	} `json:"instanceTypes"`
}

type model struct {
	once    sync.Once
	err     error
	ratings map[string]domain.PowerRating
}

func NewModel() gateways.PowerModel {
	return &model{}
}

func (m *model) PowerRating(_ context.Context, resourceType string) (domain.PowerRating, error) {
	m.once.Do(m.load)
	if m.err != nil {
		return domain.PowerRating{}, m.err
	}
	rating, ok := m.ratings[resourceType]
	if !ok {
		return domain.PowerRating{}, fmt.Errorf(
			"no power rating for instance type %s: %w", resourceType, gateways.ErrUnavailable)
	}
	return rating, nil
}

func (m *model) load() {
	var data instancePowerData
	if err := json.Unmarshal(rawInstancePowerJSON, &data); err != nil {
		m.err = fmt.Errorf("failed to parse embedded power dataset: %w", err)
		return
	}
	m.ratings = make(map[string]domain.PowerRating, len(data.InstanceTypes))
	for instanceType, watts := range data.InstanceTypes {
		m.ratings[instanceType] = domain.PowerRating{
			AvgWatts: watts.AvgWatts,
			MinWatts: watts.MinWatts,
			MaxWatts: watts.MaxWatts,
		}
	}
}
