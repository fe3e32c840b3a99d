package emissions

import (
	"context"
	"log"

	"github.com/climatedash/emissions-dashboard/internal/cache"
)

// CountryDefinitions returns the country reference data. Results are cached
// for the cache window; on upstream failure the last known good value is
// returned if one exists, else an empty list. The caller never sees an
// error, only a logged warning.
func (s *Service) CountryDefinitions(ctx context.Context) []CountryDefinition {
	key := cache.Key("definitions", "countries")
	if v, ok := s.cache.Get(key); ok {
		return v.([]CountryDefinition)
	}

	raw, err := s.client.CountryDefinitions(ctx)
	if err != nil {
		log.Printf("WARN: country definitions fetch failed: %v", err)
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.lastCountries != nil {
			return s.lastCountries
		}
		return []CountryDefinition{}
	}

	defs := make([]CountryDefinition, 0, len(raw))
	for _, r := range raw {
		if r.Alpha3 == "" {
			continue
		}
		defs = append(defs, CountryDefinition{
			ISOCode3:  r.Alpha3,
			Name:      r.Name,
			Continent: r.Continent,
		})
	}

	s.cache.Set(key, defs)
	s.mu.Lock()
	s.lastCountries = defs
	s.mu.Unlock()
	return defs
}

// SectorDefinitions returns the sector taxonomy with display labels applied.
// Same degradation contract as CountryDefinitions.
func (s *Service) SectorDefinitions(ctx context.Context) []SectorDefinition {
	key := cache.Key("definitions", "sectors")
	if v, ok := s.cache.Get(key); ok {
		return v.([]SectorDefinition)
	}

	raw, err := s.client.SectorDefinitions(ctx)
	if err != nil {
		log.Printf("WARN: sector definitions fetch failed: %v", err)
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.lastSectors != nil {
			return s.lastSectors
		}
		return []SectorDefinition{}
	}

	defs := make([]SectorDefinition, 0, len(raw))
	for _, r := range raw {
		if r.Slug == "" {
			continue
		}
		label := r.Label
		if label == "" {
			label = sectorLabel(r.Slug)
		}
		defs = append(defs, SectorDefinition{Slug: r.Slug, Label: label})
	}

	s.cache.Set(key, defs)
	s.mu.Lock()
	s.lastSectors = defs
	s.mu.Unlock()
	return defs
}

// InitializeCountryNames populates the code-to-name lookup used for display
// names everywhere. Safe to call multiple times; the network fetch happens
// at most once per process. If the fetch fails, the map stays empty and
// display names fall back to raw ISO3 codes.
func (s *Service) InitializeCountryNames(ctx context.Context) {
	s.mu.Lock()
	if s.namesLoaded {
		s.mu.Unlock()
		return
	}
	s.namesLoaded = true
	s.mu.Unlock()

	raw, err := s.client.CountryDefinitions(ctx)
	if err != nil {
		log.Printf("WARN: country name initialization failed, using ISO codes: %v", err)
		return
	}

	names := make(map[string]string, len(raw))
	for _, r := range raw {
		if r.Alpha3 != "" && r.Name != "" {
			names[r.Alpha3] = r.Name
		}
	}

	s.mu.Lock()
	s.countryNames = names
	s.mu.Unlock()
	log.Printf("INFO: loaded %d country names", len(names))
}

// continents builds a code-to-continent lookup from the country reference
// data. An empty map means no country can be assigned to a region.
func (s *Service) continents(ctx context.Context) map[string]string {
	defs := s.CountryDefinitions(ctx)
	m := make(map[string]string, len(defs))
	for _, d := range defs {
		if d.Continent != "" {
			m[d.ISOCode3] = d.Continent
		}
	}
	return m
}

// sectorLabel resolves a sector slug to its display label, title-casing
// slugs missing from the static table.
func sectorLabel(slug string) string {
	if label, ok := sectorLabels[slug]; ok {
		return label
	}
	return titleCaseSlug(slug)
}
