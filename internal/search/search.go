// Package search proxies lookups to an external web search API, falling
// back to a static list of curated climate data resources when the API is
// unconfigured or unavailable.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/climatedash/emissions-dashboard/internal/common"
)

// Result is one search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Searcher wraps the external search API.
type Searcher struct {
	client *http.Client
	apiURL string
	apiKey string
}

// New creates a Searcher. An empty apiURL means fallback-only operation.
func New(client *http.Client, apiURL, apiKey string) *Searcher {
	return &Searcher{client: client, apiURL: apiURL, apiKey: apiKey}
}

// Search returns web results for the query, or the static fallback list
// when the upstream is unconfigured or fails. Never returns an error.
func (s *Searcher) Search(ctx context.Context, query string) []Result {
	if s.apiURL == "" {
		return fallbackResults(query)
	}

	results, err := s.search(ctx, query)
	if err != nil {
		log.Printf("WARN: web search failed, serving fallback list: %v", err)
		return fallbackResults(query)
	}
	if len(results) == 0 {
		return fallbackResults(query)
	}
	return results
}

func (s *Searcher) search(ctx context.Context, query string) ([]Result, error) {
	u, err := url.Parse(s.apiURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("search API returned %d", resp.StatusCode)
	}

	var payload struct {
		Results []Result `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return payload.Results, nil
}

// fallbackResources is served when no search backend is reachable.
var fallbackResources = []Result{
	{Title: "Climate TRACE", URL: "https://climatetrace.org", Snippet: "Independent global greenhouse-gas emissions tracking by country, sector, and asset."},
	{Title: "Our World in Data: CO2 Emissions", URL: "https://ourworldindata.org/co2-emissions", Snippet: "Interactive charts and research on global carbon dioxide emissions."},
	{Title: "Global Carbon Project", URL: "https://www.globalcarbonproject.org", Snippet: "Annual global carbon budget and emissions accounting."},
	{Title: "IPCC Reports", URL: "https://www.ipcc.ch/reports", Snippet: "Assessment reports of the Intergovernmental Panel on Climate Change."},
	{Title: "IEA Emissions Data", URL: "https://www.iea.org/data-and-statistics", Snippet: "International Energy Agency data on energy-related emissions."},
	{Title: "UNFCCC GHG Data", URL: "https://unfccc.int/ghg-inventories", Snippet: "National greenhouse-gas inventory submissions under the UN climate convention."},
	{Title: "EDGAR Emissions Database", URL: "https://edgar.jrc.ec.europa.eu", Snippet: "European Commission global atmospheric emissions database."},
	{Title: "NOAA Global Monitoring Laboratory", URL: "https://gml.noaa.gov", Snippet: "Atmospheric greenhouse-gas concentration measurements."},
}

// fallbackResults filters the static list with the query terms, returning
// the full list when nothing matches so the UI always has content.
func fallbackResults(query string) []Result {
	if query == "" {
		return fallbackResources
	}

	var matched []Result
	for _, r := range fallbackResources {
		if common.HasAnyFold(r.Title+" "+r.Snippet, query) {
			matched = append(matched, r)
		}
	}
	if len(matched) == 0 {
		return fallbackResources
	}
	return matched
}
