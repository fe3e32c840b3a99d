package emissions

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defsFor(codes ...string) []RawCountryDefinition {
	defs := make([]RawCountryDefinition, 0, len(codes))
	for _, c := range codes {
		defs = append(defs, RawCountryDefinition{Alpha3: c, Name: c})
	}
	return defs
}

func TestTopEmittersRanksByCO2(t *testing.T) {
	client := &stubClient{
		countryDefs: defsFor("USA", "CHN", "IND"),
		emissions: []RawCountryEmissions{
			{Country: "USA", Emissions: RawGasValues{CO2: 60_000_000}},
			{Country: "CHN", Emissions: RawGasValues{CO2: 110_000_000}},
			{Country: "IND", Emissions: RawGasValues{CO2: 30_000_000}},
		},
	}
	svc := newTestService(client)

	top := svc.TopEmitters(context.Background(), 2020, 2023, 2)
	assert.Equal(t, []string{"CHN", "USA"}, top)
}

func TestTopEmittersCachedPerWindow(t *testing.T) {
	client := &stubClient{
		countryDefs: defsFor("USA", "CHN"),
		emissions: []RawCountryEmissions{
			{Country: "USA", Emissions: RawGasValues{CO2: 60_000_000}},
			{Country: "CHN", Emissions: RawGasValues{CO2: 110_000_000}},
		},
	}
	svc := newTestService(client)

	first := svc.TopEmitters(context.Background(), 2023, 2023, 2)
	calls := client.countryEmissionCalls()
	second := svc.TopEmitters(context.Background(), 2023, 2023, 2)

	assert.Equal(t, first, second)
	assert.Equal(t, calls, client.countryEmissionCalls(), "cached ranking must not refetch")

	// A different tuple is a different cache entry.
	svc.TopEmitters(context.Background(), 2022, 2022, 2)
	assert.Greater(t, client.countryEmissionCalls(), calls)
}

func TestTopEmittersBatchesRegistryCodes(t *testing.T) {
	codes := make([]string, 0, 120)
	for i := 0; i < 120; i++ {
		codes = append(codes, fmt.Sprintf("C%03d", i))
	}
	client := &stubClient{countryDefs: defsFor(codes...)}
	svc := newTestService(client)

	svc.TopEmitters(context.Background(), 2023, 2023, 10)

	client.mu.Lock()
	defer client.mu.Unlock()
	require.Len(t, client.batches, 3, "120 codes should go out as 3 batches")
	for _, batch := range client.batches {
		assert.LessOrEqual(t, len(batch), 50)
	}
}

func TestTopEmittersFallbackOnEmptyRegistry(t *testing.T) {
	client := &stubClient{} // registry returns nothing
	svc := newTestService(client)

	top := svc.TopEmitters(context.Background(), 2023, 2023, 5)
	assert.Equal(t, fallbackTopEmitters[:5], top)
	assert.Equal(t, 0, client.countryEmissionCalls(), "no ranking fetch without a registry")
}

func TestTopEmittersFallbackWhenAllBatchesFail(t *testing.T) {
	client := &stubClient{
		countryDefs:  defsFor("USA", "CHN", "IND"),
		emissionsErr: errUpstream,
	}
	svc := newTestService(client)

	top := svc.TopEmitters(context.Background(), 2023, 2023, 5)
	assert.Equal(t, fallbackTopEmitters[:5], top, "fallback list order must be preserved")
}

func TestTopEmittersExcludesAggregateRows(t *testing.T) {
	// The upstream "all" row carries the world total and would otherwise
	// rank first.
	client := &stubClient{
		countryDefs: defsFor("USA", "CHN"),
		emissionsByYear: map[int][]RawCountryEmissions{
			2023: {
				{Country: "all", Emissions: RawGasValues{CO2: 900_000_000}},
				{Country: "CHN", Emissions: RawGasValues{CO2: 110_000_000}},
				{Country: "USA", Emissions: RawGasValues{CO2: 60_000_000}},
			},
		},
	}
	svc := newTestService(client)

	top := svc.TopEmitters(context.Background(), 2023, 2023, 2)
	assert.Equal(t, []string{"CHN", "USA"}, top)
}

func TestTopEmittersBoundsCountrylessQueries(t *testing.T) {
	client := &stubClient{
		countryDefs: defsFor("USA", "CHN"),
		emissions: []RawCountryEmissions{
			{Country: "USA", Emissions: RawGasValues{CO2: 60_000_000}, WorldEmissions: world(200_000_000)},
			{Country: "CHN", Emissions: RawGasValues{CO2: 110_000_000}},
		},
	}
	svc := newTestService(client)

	// Without an explicit country list, CountryEmissions goes through the
	// resolver to bound the query.
	resp := svc.CountryEmissions(context.Background(), QueryOptions{Since: 2023, To: 2023, Limit: 1})
	require.Equal(t, StatusOK, resp.APIStatus)
	require.Len(t, resp.Countries, 1)
	assert.Equal(t, "CHN", resp.Countries[0].CountryCode)
}
