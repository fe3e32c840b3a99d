package emissions

import (
	"context"
	"log"
	"sort"

	"github.com/climatedash/emissions-dashboard/internal/cache"
)

// co2e100Gas is the only gas series the sector view consumes, keeping the
// whole view on a single unit basis.
const co2e100Gas = "co2e_100yr"

// SectorEmissions aggregates the per-country sector feed into sector totals
// and the six fixed industry buckets. Sector percentages are computed
// against the sum of all sector totals; industries with no contributing
// emissions are omitted.
func (s *Service) SectorEmissions(ctx context.Context, opts QueryOptions) SectorEmissionsResponse {
	opts = opts.normalized(defaultCountryLimit)

	scope := "all"
	if len(opts.Countries) > 0 {
		scope = cacheScope(opts.Countries)
	}
	key := cache.Key("sector-emissions", opts.Since, opts.To, scope)
	if v, ok := s.cache.Get(key); ok {
		return v.(SectorEmissionsResponse)
	}

	feed, err := s.client.SectorEmissions(ctx, opts.Since, opts.To, opts.Countries)
	if err != nil {
		log.Printf("WARN: sector emissions fetch failed for %d-%d: %v", opts.Since, opts.To, err)
		return SectorEmissionsResponse{
			APIStatus:  StatusError,
			Sectors:    []SectorRecord{},
			Industries: []IndustryAggregate{},
		}
	}

	resp := aggregateSectors(feed)
	s.cache.Set(key, resp)
	return resp
}

// aggregateSectors sums the co2e_100yr series per sector across all
// countries in the feed and derives the industry roll-up.
func aggregateSectors(feed map[string][]RawSectorEmission) SectorEmissionsResponse {
	sectorTotals := make(map[string]float64)
	for _, records := range feed {
		for _, r := range records {
			if r.Gas != co2e100Gas || r.Sector == "" {
				continue
			}
			sectorTotals[r.Sector] += r.Emissions
		}
	}

	var total float64
	for slug, raw := range sectorTotals {
		sectorTotals[slug] = toMegatonnes(raw)
		total += sectorTotals[slug]
	}

	sectors := make([]SectorRecord, 0, len(sectorTotals))
	industryTotals := make(map[string]float64)
	for slug, mt := range sectorTotals {
		pct := 0.0
		if total > 0 {
			pct = round2(mt / total * 100)
		}
		sectors = append(sectors, SectorRecord{
			Name:       sectorLabel(slug),
			Emissions:  mt,
			Percentage: pct,
		})
		// Unmapped sectors stay in the sector list but contribute to no
		// industry bucket.
		if industry, ok := sectorIndustry[slug]; ok {
			industryTotals[industry] += mt
		}
	}

	sort.SliceStable(sectors, func(i, j int) bool {
		return sectors[i].Emissions > sectors[j].Emissions
	})

	industries := make([]IndustryAggregate, 0, len(industryOrder))
	for _, name := range industryOrder {
		mt := industryTotals[name]
		if mt == 0 {
			continue
		}
		pct := 0.0
		if total > 0 {
			pct = round2(mt / total * 100)
		}
		industries = append(industries, IndustryAggregate{
			Name:       name,
			Emissions:  mt,
			Percentage: pct,
			Color:      industryColors[name],
		})
	}

	return SectorEmissionsResponse{
		APIStatus:  StatusOK,
		Sectors:    sectors,
		Industries: industries,
		Total:      total,
	}
}
