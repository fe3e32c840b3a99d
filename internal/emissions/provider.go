package emissions

import "context"

// RawGasValues mirrors the upstream per-gas payload. Values are in native
// upstream units (tonne-scale) and need the /1e6 or /1e3 conversions before
// display.
type RawGasValues struct {
	CO2       float64 `json:"co2"`
	CH4       float64 `json:"ch4"`
	N2O       float64 `json:"n2o"`
	CO2e100yr float64 `json:"co2e_100yr"`
	CO2e20yr  float64 `json:"co2e_20yr"`
}

// RawCountryEmissions is one element of the upstream /country/emissions
// response.
type RawCountryEmissions struct {
	Country        string        `json:"country"`
	Rank           int           `json:"rank"`
	Emissions      RawGasValues  `json:"emissions"`
	WorldEmissions *RawGasValues `json:"worldEmissions"`
}

// RawSectorEmission is one record of the upstream per-country sector feed.
type RawSectorEmission struct {
	Sector    string  `json:"Sector"`
	Gas       string  `json:"Gas"`
	Emissions float64 `json:"Emissions"`
}

// RawCountryDefinition is one element of /definitions/countries.
type RawCountryDefinition struct {
	Alpha3    string `json:"alpha3"`
	Name      string `json:"name"`
	Continent string `json:"continent"`
}

// RawSectorDefinition is one element of /definitions/sectors.
type RawSectorDefinition struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

// Client abstracts the upstream climate data API.
type Client interface {
	CountryDefinitions(ctx context.Context) ([]RawCountryDefinition, error)
	SectorDefinitions(ctx context.Context) ([]RawSectorDefinition, error)
	CountryEmissions(ctx context.Context, since, to int, countries []string) ([]RawCountryEmissions, error)
	SectorEmissions(ctx context.Context, since, to int, countries []string) (map[string][]RawSectorEmission, error)
}

// Cache is the memoization contract the service depends on. Get must treat
// expired entries as absent.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}
