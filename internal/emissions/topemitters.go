package emissions

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/climatedash/emissions-dashboard/internal/cache"
)

// TopEmitters returns the ISO3 codes of the largest CO2 emitters for the
// window, descending. The registry's full code list is fetched in batches
// of 50 to respect upstream query-size limits; failed batches are skipped.
// When the registry is empty or every batch fails, the hardcoded fallback
// list is returned truncated to limit, so downstream aggregation is never
// blocked by registry unavailability.
func (s *Service) TopEmitters(ctx context.Context, since, to, limit int) []string {
	if limit <= 0 {
		limit = defaultCountryLimit
	}

	key := cache.Key("top-emitters", since, to, limit)
	if v, ok := s.cache.Get(key); ok {
		return v.([]string)
	}

	defs := s.CountryDefinitions(ctx)
	if len(defs) == 0 {
		log.Printf("WARN: country registry empty, using fallback emitter list")
		return truncate(fallbackTopEmitters, limit)
	}

	codes := make([]string, 0, len(defs))
	for _, d := range defs {
		codes = append(codes, d.ISOCode3)
	}

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		all []RawCountryEmissions
	)

	for start := 0; start < len(codes); start += topEmitterBatchSize {
		end := start + topEmitterBatchSize
		if end > len(codes) {
			end = len(codes)
		}
		batch := codes[start:end]

		wg.Add(1)
		go func() {
			defer wg.Done()

			raw, err := s.client.CountryEmissions(ctx, since, to, batch)
			if err != nil {
				// Skip this batch; ranking proceeds from the rest.
				log.Printf("WARN: emitter ranking batch failed (%d codes): %v", len(batch), err)
				return
			}

			mu.Lock()
			all = append(all, raw...)
			mu.Unlock()
		}()
	}

	wg.Wait()

	if len(all) == 0 {
		log.Printf("WARN: every emitter ranking batch failed, using fallback list")
		return truncate(fallbackTopEmitters, limit)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Emissions.CO2 > all[j].Emissions.CO2
	})

	top := make([]string, 0, limit)
	for _, r := range all {
		code := strings.TrimSpace(r.Country)
		if code == "" || strings.EqualFold(code, "all") {
			continue
		}
		top = append(top, code)
		if len(top) == limit {
			break
		}
	}

	s.cache.Set(key, top)
	return top
}

func truncate(list []string, limit int) []string {
	if limit >= len(list) {
		return list
	}
	return list[:limit]
}
