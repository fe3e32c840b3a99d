package emissions

import (
	"context"
	"sort"

	"github.com/climatedash/emissions-dashboard/internal/cache"
)

// regionBreakdownSize caps the per-region country breakdown.
const regionBreakdownSize = 10

// RegionalEmissions rolls country emissions up by continent. Countries
// whose continent cannot be resolved are left out of every region; region
// percentages use the total of successfully assigned emissions as the
// denominator, not the global world total.
func (s *Service) RegionalEmissions(ctx context.Context, opts QueryOptions) RegionalEmissionsResponse {
	opts = opts.normalized(defaultCountryLimit)

	scope := "top"
	if len(opts.Countries) > 0 {
		scope = cacheScope(opts.Countries)
	}
	key := cache.Key("regional-emissions", opts.Since, opts.To, scope, opts.Limit)
	if v, ok := s.cache.Get(key); ok {
		return v.(RegionalEmissionsResponse)
	}

	base := s.CountryEmissions(ctx, opts)
	if base.APIStatus != StatusOK {
		return RegionalEmissionsResponse{
			APIStatus:    StatusError,
			Regions:      []RegionAggregate{},
			TopCountries: []string{},
		}
	}

	resp := aggregateRegions(base, s.continents(ctx))
	s.cache.Set(key, resp)
	return resp
}

func aggregateRegions(base CountryEmissionsResponse, continents map[string]string) RegionalEmissionsResponse {
	grouped := make(map[string][]EmissionRecord)
	var assignedTotal float64

	for _, rec := range base.Countries {
		continent, ok := continents[rec.CountryCode]
		if !ok || continent == "" {
			// No continent mapping; excluded from regional totals but still
			// present in the flat country views.
			continue
		}
		grouped[continent] = append(grouped[continent], rec)
		assignedTotal += rec.GasValues.CO2
	}

	regions := make([]RegionAggregate, 0, len(grouped))
	for continent, records := range grouped {
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].GasValues.CO2 > records[j].GasValues.CO2
		})

		var regionTotal float64
		for _, rec := range records {
			regionTotal += rec.GasValues.CO2
		}

		breakdown := make([]RegionCountry, 0, regionBreakdownSize)
		topNames := make([]string, 0, regionBreakdownSize)
		for i, rec := range records {
			if i == regionBreakdownSize {
				break
			}
			pct := 0.0
			if regionTotal > 0 {
				pct = round2(rec.GasValues.CO2 / regionTotal * 100)
			}
			breakdown = append(breakdown, RegionCountry{
				Name:               rec.Name,
				Code:               rec.CountryCode,
				Emissions:          rec.GasValues.CO2,
				PercentageOfRegion: pct,
			})
			topNames = append(topNames, rec.Name)
		}

		pctGlobal := 0.0
		if assignedTotal > 0 {
			pctGlobal = round2(regionTotal / assignedTotal * 100)
		}

		regions = append(regions, RegionAggregate{
			Name:               continent,
			TotalEmissions:     regionTotal,
			PercentageOfGlobal: pctGlobal,
			CountryCount:       len(records),
			TopCountries:       topNames,
			CountryBreakdown:   breakdown,
		})
	}

	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].TotalEmissions > regions[j].TotalEmissions
	})

	return RegionalEmissionsResponse{
		APIStatus:    StatusOK,
		Regions:      regions,
		TopCountries: base.TopCountries,
	}
}
