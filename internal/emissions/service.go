package emissions

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/climatedash/emissions-dashboard/internal/cache"
)

// Defaults for option bags arriving without a limit.
const (
	defaultCountryLimit = 10
	defaultTrendLimit   = 5
	topEmitterBatchSize = 50
)

// Service aggregates upstream emissions data into the dashboard views. All
// exported fetch methods degrade to structurally valid empty or fallback
// results on upstream failure; they never surface network errors.
type Service struct {
	client Client
	cache  Cache

	mu            sync.Mutex
	countryNames  map[string]string
	namesLoaded   bool
	lastCountries []CountryDefinition
	lastSectors   []SectorDefinition
}

// NewService creates a Service backed by the given upstream client and
// cache. The cache is constructed once at process start and injected so
// tests run without hidden shared state.
func NewService(client Client, c Cache) *Service {
	return &Service{
		client:       client,
		cache:        c,
		countryNames: make(map[string]string),
	}
}

// CountryEmissions fetches and normalizes per-country emissions for the
// query window. When no explicit country list is supplied, the top emitters
// for the window bound the request size.
func (s *Service) CountryEmissions(ctx context.Context, opts QueryOptions) CountryEmissionsResponse {
	opts = opts.normalized(defaultCountryLimit)

	scope := "top"
	if len(opts.Countries) > 0 {
		scope = cacheScope(opts.Countries)
	}
	key := cache.Key("country-emissions", opts.Since, opts.To, scope, opts.Limit)
	if v, ok := s.cache.Get(key); ok {
		return v.(CountryEmissionsResponse)
	}

	resp, err := s.countryEmissions(ctx, opts)
	if err != nil {
		log.Printf("WARN: country emissions fetch failed for %d-%d: %v", opts.Since, opts.To, err)
		return CountryEmissionsResponse{
			APIStatus:    StatusError,
			Countries:    []EmissionRecord{},
			TopCountries: []string{},
		}
	}

	s.cache.Set(key, resp)
	return resp
}

func (s *Service) countryEmissions(ctx context.Context, opts QueryOptions) (CountryEmissionsResponse, error) {
	codes := opts.Countries
	if len(codes) == 0 {
		codes = s.TopEmitters(ctx, opts.Since, opts.To, opts.Limit)
	}

	raw, err := s.client.CountryEmissions(ctx, opts.Since, opts.To, codes)
	if err != nil {
		return CountryEmissionsResponse{}, err
	}

	world, records := buildCountryRecords(raw, s.names())
	if len(records) > opts.Limit {
		records = records[:opts.Limit]
	}

	top := make([]string, 0, len(records))
	for _, rec := range records {
		top = append(top, rec.CountryCode)
	}

	return CountryEmissionsResponse{
		APIStatus:    StatusOK,
		WorldTotals:  world,
		Countries:    records,
		TopCountries: top,
	}, nil
}

// AllGasesEmissions is the gas-mix view over the country aggregation: the
// same normalized records plus a per-gas breakdown of the world totals
// against the 100-year CO2-equivalent figure.
func (s *Service) AllGasesEmissions(ctx context.Context, opts QueryOptions) AllGasesResponse {
	base := s.CountryEmissions(ctx, opts)
	if base.APIStatus != StatusOK {
		return AllGasesResponse{
			APIStatus: StatusError,
			Gases:     []GasBreakdown{},
			Countries: []EmissionRecord{},
		}
	}

	co2e := base.WorldTotals.CO2e100yr
	pct := func(v float64) float64 {
		if co2e <= 0 {
			return 0
		}
		return round2(v / co2e * 100)
	}

	// CH4 and N2O are reported in kilotonnes of the gas itself, not in
	// CO2-equivalent, so only the Mt-basis entries carry a share.
	gases := []GasBreakdown{
		{Gas: "co2", Label: "Carbon Dioxide", Value: base.WorldTotals.CO2, Unit: "Mt", PercentageOfCO2e: pct(base.WorldTotals.CO2)},
		{Gas: "ch4", Label: "Methane", Value: base.WorldTotals.CH4, Unit: "kt"},
		{Gas: "n2o", Label: "Nitrous Oxide", Value: base.WorldTotals.N2O, Unit: "kt"},
		{Gas: "co2e_100yr", Label: "CO2e (100-year)", Value: base.WorldTotals.CO2e100yr, Unit: "Mt", PercentageOfCO2e: pct(base.WorldTotals.CO2e100yr)},
		{Gas: "co2e_20yr", Label: "CO2e (20-year)", Value: base.WorldTotals.CO2e20yr, Unit: "Mt", PercentageOfCO2e: pct(base.WorldTotals.CO2e20yr)},
	}

	return AllGasesResponse{
		APIStatus:   StatusOK,
		WorldTotals: base.WorldTotals,
		Gases:       gases,
		Countries:   base.Countries,
	}
}

// cacheScope folds an explicit country list into a stable cache key part.
func cacheScope(countries []string) string {
	return strings.Join(countries, ",")
}

// names returns the loaded country name map. InitializeCountryNames swaps
// in a fresh map rather than mutating in place, so the returned map is
// safe to read without holding the lock.
func (s *Service) names() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countryNames
}
