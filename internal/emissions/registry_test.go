package emissions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeCountryNamesFetchesOnce(t *testing.T) {
	client := &stubClient{
		countryDefs: []RawCountryDefinition{
			{Alpha3: "USA", Name: "United States"},
			{Alpha3: "CHN", Name: "China"},
		},
	}
	svc := newTestService(client)

	svc.InitializeCountryNames(context.Background())
	svc.InitializeCountryNames(context.Background())
	svc.InitializeCountryNames(context.Background())

	client.mu.Lock()
	calls := client.defCalls
	client.mu.Unlock()
	assert.Equal(t, 1, calls, "repeated initialization must not refetch")

	names := svc.names()
	assert.Equal(t, "United States", names["USA"])
	assert.Equal(t, "China", names["CHN"])
}

func TestInitializeCountryNamesFailureLeavesCodes(t *testing.T) {
	client := &stubClient{countryDefsErr: errUpstream}
	svc := newTestService(client)

	svc.InitializeCountryNames(context.Background())
	assert.Empty(t, svc.names())

	// The loaded flag holds even after a failed fetch.
	svc.InitializeCountryNames(context.Background())
	client.mu.Lock()
	calls := client.defCalls
	client.mu.Unlock()
	assert.Equal(t, 1, calls)

	// Display names fall back to the raw ISO3 code.
	client.mu.Lock()
	client.countryDefsErr = nil
	client.countryDefs = []RawCountryDefinition{{Alpha3: "USA", Name: "United States"}}
	client.emissions = []RawCountryEmissions{
		{Country: "USA", Emissions: RawGasValues{CO2: 60_000_000}, WorldEmissions: world(100_000_000)},
	}
	client.mu.Unlock()

	resp := svc.CountryEmissions(context.Background(), QueryOptions{Countries: []string{"USA"}})
	require.Len(t, resp.Countries, 1)
	assert.Equal(t, "USA", resp.Countries[0].Name)
}

func TestCountryDefinitionsCachedAndConverted(t *testing.T) {
	client := &stubClient{
		countryDefs: []RawCountryDefinition{
			{Alpha3: "USA", Name: "United States", Continent: "North America"},
			{Alpha3: "", Name: "bogus row"},
		},
	}
	svc := newTestService(client)

	defs := svc.CountryDefinitions(context.Background())
	require.Len(t, defs, 1, "rows without a code are dropped")
	assert.Equal(t, CountryDefinition{
		ISOCode3:  "USA",
		Name:      "United States",
		Continent: "North America",
	}, defs[0])

	svc.CountryDefinitions(context.Background())
	client.mu.Lock()
	calls := client.defCalls
	client.mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestCountryDefinitionsLastKnownGoodOnFailure(t *testing.T) {
	client := &stubClient{
		countryDefs: []RawCountryDefinition{{Alpha3: "USA", Name: "United States"}},
	}
	fc := newFakeCache()
	svc := NewService(client, fc)

	good := svc.CountryDefinitions(context.Background())
	require.Len(t, good, 1)

	// Cache window lapses, then the upstream goes down: the stale value is
	// better than nothing.
	fc.clear()
	client.mu.Lock()
	client.countryDefsErr = errUpstream
	client.mu.Unlock()

	stale := svc.CountryDefinitions(context.Background())
	assert.Equal(t, good, stale)
}

func TestCountryDefinitionsEmptyWhenNeverFetched(t *testing.T) {
	client := &stubClient{countryDefsErr: errUpstream}
	svc := newTestService(client)

	defs := svc.CountryDefinitions(context.Background())
	assert.NotNil(t, defs)
	assert.Empty(t, defs)
}

func TestSectorDefinitionsLabels(t *testing.T) {
	client := &stubClient{
		sectorDefs: []RawSectorDefinition{
			{Slug: "road-transportation"},
			{Slug: "space-tourism"},
			{Slug: "steel", Label: "Iron & Steel"},
		},
	}
	svc := newTestService(client)

	defs := svc.SectorDefinitions(context.Background())
	require.Len(t, defs, 3)
	assert.Equal(t, "Road Transport", defs[0].Label, "static table label fills missing upstream labels")
	assert.Equal(t, "Space Tourism", defs[1].Label, "unknown slugs get title-cased")
	assert.Equal(t, "Iron & Steel", defs[2].Label, "upstream labels win when present")
}
