package emissions

import (
	"context"
	"errors"
	"sync"
)

var errUpstream = errors.New("upstream unavailable")

// stubClient is a canned-response upstream with call counters, used to
// observe caching and degradation behaviour.
type stubClient struct {
	mu sync.Mutex

	countryDefs    []RawCountryDefinition
	countryDefsErr error
	defCalls       int

	sectorDefs    []RawSectorDefinition
	sectorDefsErr error

	// emissions holds the full per-country dataset; requests with an
	// explicit country list get the matching subset.
	emissions       []RawCountryEmissions
	emissionsByYear map[int][]RawCountryEmissions
	emissionsErr    error
	errYears        map[int]bool
	emissionCalls   int
	batches         [][]string

	sectorFeed    map[string][]RawSectorEmission
	sectorFeedErr error
	sectorCalls   int
}

func (c *stubClient) CountryDefinitions(ctx context.Context) ([]RawCountryDefinition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defCalls++
	if c.countryDefsErr != nil {
		return nil, c.countryDefsErr
	}
	return c.countryDefs, nil
}

func (c *stubClient) SectorDefinitions(ctx context.Context) ([]RawSectorDefinition, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sectorDefsErr != nil {
		return nil, c.sectorDefsErr
	}
	return c.sectorDefs, nil
}

func (c *stubClient) CountryEmissions(ctx context.Context, since, to int, countries []string) ([]RawCountryEmissions, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.emissionCalls++
	c.batches = append(c.batches, countries)

	if c.emissionsErr != nil {
		return nil, c.emissionsErr
	}
	if c.errYears != nil && c.errYears[since] {
		return nil, errUpstream
	}
	if c.emissionsByYear != nil {
		return c.emissionsByYear[since], nil
	}
	if len(countries) == 0 {
		return c.emissions, nil
	}

	requested := make(map[string]bool, len(countries))
	for _, code := range countries {
		requested[code] = true
	}
	var out []RawCountryEmissions
	for _, r := range c.emissions {
		if requested[r.Country] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (c *stubClient) SectorEmissions(ctx context.Context, since, to int, countries []string) (map[string][]RawSectorEmission, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sectorCalls++
	if c.sectorFeedErr != nil {
		return nil, c.sectorFeedErr
	}
	return c.sectorFeed, nil
}

func (c *stubClient) countryEmissionCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.emissionCalls
}

// fakeCache is a window-less cache whose entries tests can drop to
// simulate expiry.
type fakeCache struct {
	mu sync.Mutex
	m  map[string]any
}

func newFakeCache() *fakeCache {
	return &fakeCache{m: make(map[string]any)}
}

func (c *fakeCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *fakeCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = value
}

func (c *fakeCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = make(map[string]any)
}

// world wraps raw world totals for fixture readability.
func world(co2 float64) *RawGasValues {
	return &RawGasValues{CO2: co2}
}
