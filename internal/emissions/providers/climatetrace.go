package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/climatedash/emissions-dashboard/internal/emissions"
)

// ClimateTraceClient implements emissions.Client against a Climate
// TRACE-style API. One circuit breaker guards all endpoints of the
// upstream; when the provider is down, every view degrades together.
type ClimateTraceClient struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	backoff backoff
}

// NewClimateTraceClient creates a client for the given base URL, e.g.
// "https://api.climatetrace.org/v6".
func NewClimateTraceClient(client *http.Client, baseURL string) *ClimateTraceClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "climatetrace",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &ClimateTraceClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		circuit: cb,
		backoff: backoff{
			maxRetries:      2,
			initialInterval: 500 * time.Millisecond,
			maxInterval:     5 * time.Second,
		},
	}
}

func (c *ClimateTraceClient) CountryDefinitions(ctx context.Context) ([]emissions.RawCountryDefinition, error) {
	var defs []emissions.RawCountryDefinition
	if err := getJSON(ctx, c.client, c.circuit, c.backoff, c.baseURL+"/definitions/countries", &defs); err != nil {
		return nil, fmt.Errorf("country definitions: %w", err)
	}
	return defs, nil
}

func (c *ClimateTraceClient) SectorDefinitions(ctx context.Context) ([]emissions.RawSectorDefinition, error) {
	var defs []emissions.RawSectorDefinition
	if err := getJSON(ctx, c.client, c.circuit, c.backoff, c.baseURL+"/definitions/sectors", &defs); err != nil {
		return nil, fmt.Errorf("sector definitions: %w", err)
	}
	return defs, nil
}

func (c *ClimateTraceClient) CountryEmissions(ctx context.Context, since, to int, countries []string) ([]emissions.RawCountryEmissions, error) {
	u := c.baseURL + "/country/emissions?" + yearParams(since, to, countries).Encode()

	var records []emissions.RawCountryEmissions
	if err := getJSON(ctx, c.client, c.circuit, c.backoff, u, &records); err != nil {
		return nil, fmt.Errorf("country emissions %d-%d: %w", since, to, err)
	}
	return records, nil
}

func (c *ClimateTraceClient) SectorEmissions(ctx context.Context, since, to int, countries []string) (map[string][]emissions.RawSectorEmission, error) {
	u := c.baseURL + "/assets/emissions?" + yearParams(since, to, countries).Encode()

	feed := make(map[string][]emissions.RawSectorEmission)
	if err := getJSON(ctx, c.client, c.circuit, c.backoff, u, &feed); err != nil {
		return nil, fmt.Errorf("sector emissions %d-%d: %w", since, to, err)
	}
	return feed, nil
}

func yearParams(since, to int, countries []string) url.Values {
	values := url.Values{}
	values.Set("since", strconv.Itoa(since))
	values.Set("to", strconv.Itoa(to))
	if len(countries) > 0 {
		values.Set("countries", strings.Join(countries, ","))
	}
	return values
}
