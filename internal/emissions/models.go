package emissions

import "encoding/json"

// APIStatus reports whether the upstream climate API answered a query.
type APIStatus string

const (
	StatusOK    APIStatus = "ok"
	StatusError APIStatus = "error"
)

// CountryDefinition is immutable reference data mapping an ISO3 code to a
// display name and a continent.
type CountryDefinition struct {
	ISOCode3  string `json:"isoCode3"`
	Name      string `json:"name"`
	Continent string `json:"continent"`
}

// SectorDefinition describes one leaf node of the upstream sector taxonomy.
type SectorDefinition struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

// GasValues holds normalized emissions per gas. CO2-family values are in
// megatonnes, CH4 and N2O in kilotonnes, all rounded to whole units.
type GasValues struct {
	CO2       float64 `json:"co2"`
	CH4       float64 `json:"ch4"`
	N2O       float64 `json:"n2o"`
	CO2e100yr float64 `json:"co2e100yr"`
	CO2e20yr  float64 `json:"co2e20yr"`
}

// EmissionRecord is the normalized per-country view for a query window.
type EmissionRecord struct {
	CountryCode string    `json:"countryCode"`
	Name        string    `json:"name"`
	Rank        int       `json:"rank"`
	GasValues   GasValues `json:"gasValues"`
	Share       float64   `json:"shareOfGlobalPercent"`
}

// CountryEmissionsResponse is the country-level aggregation result.
type CountryEmissionsResponse struct {
	APIStatus    APIStatus        `json:"apiStatus"`
	WorldTotals  GasValues        `json:"worldTotals"`
	Countries    []EmissionRecord `json:"countries"`
	TopCountries []string         `json:"topCountries"`
}

// RegionCountry is one country inside a region's breakdown.
type RegionCountry struct {
	Name               string  `json:"name"`
	Code               string  `json:"code"`
	Emissions          float64 `json:"emissions"`
	PercentageOfRegion float64 `json:"percentageOfRegion"`
}

// RegionAggregate is a continent-level roll-up of country emissions.
type RegionAggregate struct {
	Name               string          `json:"name"`
	TotalEmissions     float64         `json:"totalEmissions"`
	PercentageOfGlobal float64         `json:"percentageOfGlobal"`
	CountryCount       int             `json:"countryCount"`
	TopCountries       []string        `json:"topCountries"`
	CountryBreakdown   []RegionCountry `json:"countryBreakdown"`
}

// RegionalEmissionsResponse is the regional aggregation result.
type RegionalEmissionsResponse struct {
	APIStatus    APIStatus         `json:"apiStatus"`
	Regions      []RegionAggregate `json:"regions"`
	TopCountries []string          `json:"topCountries"`
}

// SectorRecord is one taxonomy leaf with its summed emissions in megatonnes.
type SectorRecord struct {
	Name       string  `json:"name"`
	Emissions  float64 `json:"emissions"`
	Percentage float64 `json:"percentage"`
}

// IndustryAggregate groups sector emissions into one of the six fixed
// industry buckets. Color and ordering come from a static table so chart
// legends stay stable across requests.
type IndustryAggregate struct {
	Name       string  `json:"name"`
	Emissions  float64 `json:"emissions"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// SectorEmissionsResponse is the sector/industry aggregation result.
type SectorEmissionsResponse struct {
	APIStatus  APIStatus           `json:"apiStatus"`
	Sectors    []SectorRecord      `json:"sectors"`
	Industries []IndustryAggregate `json:"industries"`
	Total      float64             `json:"total"`
}

// TrendCountry is one country's CO2 contribution inside a trend point.
type TrendCountry struct {
	Code string  `json:"code"`
	Name string  `json:"name"`
	CO2  float64 `json:"co2"`
}

// TrendPoint is one year of the emissions trend. Industry values are
// flattened into the JSON object alongside year and total, matching the
// shape the dashboard charts consume.
type TrendPoint struct {
	Year       int
	Total      float64
	Industries map[string]float64
	Countries  []TrendCountry
}

// MarshalJSON flattens the Industries map into top-level keys.
func (p TrendPoint) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any, len(p.Industries)+3)
	obj["year"] = p.Year
	obj["total"] = p.Total
	for name, v := range p.Industries {
		obj[name] = v
	}
	obj["countries"] = p.Countries
	return json.Marshal(obj)
}

// GasBreakdown is one gas slice of the all-gases view.
type GasBreakdown struct {
	Gas              string  `json:"gas"`
	Label            string  `json:"label"`
	Value            float64 `json:"value"`
	Unit             string  `json:"unit"`
	PercentageOfCO2e float64 `json:"percentageOfCo2e"`
}

// AllGasesResponse is the gas-mix view over the country aggregation.
type AllGasesResponse struct {
	APIStatus   APIStatus        `json:"apiStatus"`
	WorldTotals GasValues        `json:"worldTotals"`
	Gases       []GasBreakdown   `json:"gases"`
	Countries   []EmissionRecord `json:"countries"`
}

// QueryOptions is the plain option bag callers pass to the fetch functions.
// Zero or negative years are defaulted to DefaultYear. An empty Countries
// slice means "use the top emitters".
type QueryOptions struct {
	Since     int
	To        int
	Countries []string
	Limit     int
}

// DefaultYear is used when a caller omits or mangles a year parameter.
const DefaultYear = 2023

// normalized applies the year and limit defaults.
func (o QueryOptions) normalized(defaultLimit int) QueryOptions {
	if o.Since <= 0 {
		o.Since = DefaultYear
	}
	if o.To <= 0 {
		o.To = DefaultYear
	}
	if o.Limit <= 0 {
		o.Limit = defaultLimit
	}
	return o
}
