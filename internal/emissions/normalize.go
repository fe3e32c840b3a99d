package emissions

import (
	"math"
	"sort"
	"strings"
)

// Unit conversion factors for the upstream's native tonne-scale values.
const (
	megatonneDivisor = 1_000_000
	kilotonneDivisor = 1_000
)

// toMegatonnes converts a raw CO2-family value to whole megatonnes.
func toMegatonnes(raw float64) float64 {
	return math.Round(raw / megatonneDivisor)
}

// toKilotonnes converts a raw CH4/N2O value to whole kilotonnes.
func toKilotonnes(raw float64) float64 {
	return math.Round(raw / kilotonneDivisor)
}

// round2 rounds to two decimal places, used for percentage shares.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// normalizeGasValues applies the canonical unit conversions: CO2 and the
// CO2-equivalents become megatonnes, CH4 and N2O become kilotonnes.
func normalizeGasValues(raw RawGasValues) GasValues {
	return GasValues{
		CO2:       toMegatonnes(raw.CO2),
		CH4:       toKilotonnes(raw.CH4),
		N2O:       toKilotonnes(raw.N2O),
		CO2e100yr: toMegatonnes(raw.CO2e100yr),
		CO2e20yr:  toMegatonnes(raw.CO2e20yr),
	}
}

// shareOfGlobal computes a country's percentage of the world CO2 total,
// rounded to two decimals. Zero when the world total is zero or missing.
func shareOfGlobal(countryCO2, worldCO2 float64) float64 {
	if worldCO2 <= 0 {
		return 0
	}
	return round2(countryCO2 / worldCO2 * 100)
}

// buildCountryRecords normalizes a raw upstream response into sorted
// EmissionRecords plus the world totals used as the share denominator.
// Records with a missing or sentinel "all" country code are excluded.
func buildCountryRecords(raw []RawCountryEmissions, names map[string]string) (GasValues, []EmissionRecord) {
	var world GasValues
	var haveWorld bool
	records := make([]EmissionRecord, 0, len(raw))

	for _, r := range raw {
		code := strings.TrimSpace(r.Country)
		if code == "" || strings.EqualFold(code, "all") {
			continue
		}
		if !haveWorld && r.WorldEmissions != nil {
			world = normalizeGasValues(*r.WorldEmissions)
			haveWorld = true
		}
		records = append(records, EmissionRecord{
			CountryCode: code,
			Name:        displayName(code, names),
			Rank:        r.Rank,
			GasValues:   normalizeGasValues(r.Emissions),
		})
	}

	// Without an upstream world figure, fall back to the sum of the
	// countries in view.
	if !haveWorld {
		for _, rec := range records {
			world.CO2 += rec.GasValues.CO2
			world.CH4 += rec.GasValues.CH4
			world.N2O += rec.GasValues.N2O
			world.CO2e100yr += rec.GasValues.CO2e100yr
			world.CO2e20yr += rec.GasValues.CO2e20yr
		}
	}

	for i := range records {
		records[i].Share = shareOfGlobal(records[i].GasValues.CO2, world.CO2)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].GasValues.CO2 > records[j].GasValues.CO2
	})

	return world, records
}

// displayName resolves a code through the loaded name map, falling back to
// the raw ISO3 code when the map is empty or missing the entry.
func displayName(code string, names map[string]string) string {
	if name, ok := names[code]; ok && name != "" {
		return name
	}
	return code
}

// titleCaseSlug converts an unknown upstream slug such as
// "fluorinated-gases" into a displayable "Fluorinated Gases" label.
func titleCaseSlug(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "_", "-"), "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
