// Package gridcarbon is the HTTP client for the grid carbon intensity
// provider. Intensities are reported in grams CO2e per kWh.
package gridcarbon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/gateways"
	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	json "github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

type Settings struct {
	BaseURL string
	Token   string
	// RetryMax caps transient retries per request.
	RetryMax int
	Timeout  time.Duration
}

func DefaultSettings(baseURL, token string) Settings {
	return Settings{
		BaseURL:  baseURL,
		Token:    token,
		RetryMax: 3,
		Timeout:  10 * time.Second,
	}
}

type intensityResponse struct {
	Region    string    `json:"region"`
	Intensity float64   `json:"intensityGPerKWh"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type historyResponse struct {
	Region  string `json:"region"`
	Samples []struct {
		Timestamp time.Time `json:"timestamp"`
		Intensity float64   `json:"intensityGPerKWh"`
	} `json:"samples"`
}

type client struct {
	http     *retryablehttp.Client
	settings Settings
}

func NewClient(settings Settings) (gateways.Carbon, error) {
	if settings.BaseURL == "" {
		return nil, fmt.Errorf("grid carbon base URL is required")
	}
	rc := retryablehttp.NewClient()
	rc.RetryMax = settings.RetryMax
	rc.HTTPClient.Timeout = settings.Timeout
	rc.Logger = nil
	return &client{http: rc, settings: settings}, nil
}

func (c *client) CurrentIntensity(ctx context.Context, region string) (domain.Sample, error) {
	var resp intensityResponse
	query := url.Values{"region": {region}}
	if err := c.get(ctx, "/v1/intensity/current", query, &resp); err != nil {
		return domain.Sample{}, err
	}
	return domain.Sample{Timestamp: resp.UpdatedAt, Value: resp.Intensity}, nil
}

func (c *client) History(ctx context.Context, region string, hours int) ([]domain.Sample, error) {
	var resp historyResponse
	query := url.Values{
		"region": {region},
		"hours":  {strconv.Itoa(hours)},
	}
	if err := c.get(ctx, "/v1/intensity/history", query, &resp); err != nil {
		return nil, err
	}
	samples := make([]domain.Sample, 0, len(resp.Samples))
	for _, s := range resp.Samples {
		samples = append(samples, domain.Sample{Timestamp: s.Timestamp, Value: s.Intensity})
	}
	return samples, nil
}

func (c *client) get(ctx context.Context, path string, query url.Values, out any) error {
	logger := zerolog.Ctx(ctx)

	req, err := retryablehttp.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.settings.BaseURL+path+"?"+query.Encode(),
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to create grid carbon request: %w", err)
	}
	if c.settings.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.settings.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("grid carbon request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close grid carbon response body")
		}
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("grid carbon provider rejected credentials (%d): %w",
			resp.StatusCode, gateways.ErrAuthentication)
	case http.StatusNotFound, http.StatusNoContent:
		return fmt.Errorf("no intensity data for request: %w", gateways.ErrUnavailable)
	default:
		return fmt.Errorf("grid carbon provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read grid carbon response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal grid carbon response: %w", err)
	}
	return nil
}
