package emissions

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/climatedash/emissions-dashboard/internal/cache"
)

// EmissionsTrends produces one TrendPoint per year in [opts.Since,
// opts.To]. The industry breakdown is computed once for the whole window
// and its shares applied uniformly to every year's total; composition is
// assumed constant across the window and only the total scales. That
// approximation is intentional and kept for compatibility with the
// dashboard charts. Years whose fetch fails are absent from the output.
func (s *Service) EmissionsTrends(ctx context.Context, opts QueryOptions) []TrendPoint {
	opts = opts.normalized(defaultTrendLimit)
	if opts.To < opts.Since {
		opts.Since, opts.To = opts.To, opts.Since
	}

	scope := "top"
	if len(opts.Countries) > 0 {
		scope = cacheScope(opts.Countries)
	}
	key := cache.Key("emissions-trends", opts.Since, opts.To, scope, opts.Limit)
	if v, ok := s.cache.Get(key); ok {
		return v.([]TrendPoint)
	}

	codes := opts.Countries
	if len(codes) == 0 {
		codes = s.TopEmitters(ctx, opts.Since, opts.To, opts.Limit)
	}

	shares := s.windowIndustryShares(ctx, opts)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		byYear = make(map[int]TrendPoint)
	)

	// Years are independent once the shared share baseline exists; fetch
	// them concurrently and reassemble by year key, not arrival order.
	for year := opts.Since; year <= opts.To; year++ {
		year := year
		wg.Add(1)
		go func() {
			defer wg.Done()

			point, ok := s.yearTrendPoint(ctx, year, codes, shares)
			if !ok {
				return
			}

			mu.Lock()
			byYear[year] = point
			mu.Unlock()
		}()
	}

	wg.Wait()

	points := make([]TrendPoint, 0, len(byYear))
	for _, p := range byYear {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })

	if len(points) > 0 {
		s.cache.Set(key, points)
	}
	return points
}

// windowIndustryShares computes the industry share table for the whole
// query window, falling back to the static share table when the sector
// breakdown cannot be fetched.
func (s *Service) windowIndustryShares(ctx context.Context, opts QueryOptions) map[string]float64 {
	breakdown := s.SectorEmissions(ctx, QueryOptions{Since: opts.Since, To: opts.To})
	if breakdown.APIStatus != StatusOK || len(breakdown.Industries) == 0 {
		log.Printf("WARN: industry breakdown unavailable for %d-%d, using fallback shares", opts.Since, opts.To)
		return fallbackIndustryShares
	}

	shares := make(map[string]float64, len(breakdown.Industries))
	for _, ind := range breakdown.Industries {
		shares[ind.Name] = ind.Percentage / 100
	}
	return shares
}

// yearTrendPoint fetches one year's totals and scales the window shares by
// the year's world CO2 total.
func (s *Service) yearTrendPoint(ctx context.Context, year int, codes []string, shares map[string]float64) (TrendPoint, bool) {
	resp := s.CountryEmissions(ctx, QueryOptions{
		Since:     year,
		To:        year,
		Countries: codes,
		Limit:     len(codes),
	})
	if resp.APIStatus != StatusOK {
		// A failed year is skipped, not fatal to the whole trend.
		log.Printf("WARN: trend fetch failed for year %d, skipping", year)
		return TrendPoint{}, false
	}

	total := resp.WorldTotals.CO2
	industries := make(map[string]float64, len(shares))
	for name, share := range shares {
		industries[name] = round2(total * share)
	}

	countries := make([]TrendCountry, 0, len(resp.Countries))
	for _, rec := range resp.Countries {
		countries = append(countries, TrendCountry{
			Code: rec.CountryCode,
			Name: rec.Name,
			CO2:  rec.GasValues.CO2,
		})
	}

	return TrendPoint{
		Year:       year,
		Total:      total,
		Industries: industries,
		Countries:  countries,
	}, true
}
