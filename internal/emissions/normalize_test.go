package emissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeGasValues(t *testing.T) {
	got := normalizeGasValues(RawGasValues{
		CO2:       2_400_000,
		CH4:       1_499,
		N2O:       2_501,
		CO2e100yr: 3_600_000,
		CO2e20yr:  4_600_000,
	})

	assert.Equal(t, 2.0, got.CO2, "CO2 should be whole megatonnes")
	assert.Equal(t, 1.0, got.CH4, "CH4 should be whole kilotonnes")
	assert.Equal(t, 3.0, got.N2O, "N2O should be whole kilotonnes")
	assert.Equal(t, 4.0, got.CO2e100yr)
	assert.Equal(t, 5.0, got.CO2e20yr)
}

func TestShareOfGlobal(t *testing.T) {
	assert.Equal(t, 33.33, shareOfGlobal(1, 3))
	assert.Equal(t, 100.0, shareOfGlobal(5, 5))
	assert.Equal(t, 0.0, shareOfGlobal(10, 0), "zero world total yields zero share")
	assert.Equal(t, 0.0, shareOfGlobal(10, -1))
}

func TestBuildCountryRecordsExcludesSentinelCodes(t *testing.T) {
	raw := []RawCountryEmissions{
		{Country: "all", Emissions: RawGasValues{CO2: 900_000_000}},
		{Country: "", Emissions: RawGasValues{CO2: 100_000_000}},
		{Country: "USA", Emissions: RawGasValues{CO2: 50_000_000}, WorldEmissions: world(100_000_000)},
	}

	_, records := buildCountryRecords(raw, nil)
	require.Len(t, records, 1)
	assert.Equal(t, "USA", records[0].CountryCode)
}

func TestBuildCountryRecordsSortsAndComputesShares(t *testing.T) {
	raw := []RawCountryEmissions{
		{Country: "IND", Emissions: RawGasValues{CO2: 30_000_000}, WorldEmissions: world(200_000_000)},
		{Country: "CHN", Emissions: RawGasValues{CO2: 110_000_000}},
		{Country: "USA", Emissions: RawGasValues{CO2: 60_000_000}},
	}

	worldTotals, records := buildCountryRecords(raw, nil)
	require.Len(t, records, 3)
	assert.Equal(t, 200.0, worldTotals.CO2)

	// Sorted descending by CO2.
	assert.Equal(t, []string{"CHN", "USA", "IND"}, []string{
		records[0].CountryCode, records[1].CountryCode, records[2].CountryCode,
	})

	// Share recomputed from the returned fields matches the share field.
	for _, rec := range records {
		assert.Equal(t, shareOfGlobal(rec.GasValues.CO2, worldTotals.CO2), rec.Share, rec.CountryCode)
	}
	assert.Equal(t, 55.0, records[0].Share)
	assert.Equal(t, 30.0, records[1].Share)
	assert.Equal(t, 15.0, records[2].Share)
}

func TestBuildCountryRecordsSumsWorldWhenUpstreamOmitsIt(t *testing.T) {
	raw := []RawCountryEmissions{
		{Country: "CHN", Emissions: RawGasValues{CO2: 60_000_000}},
		{Country: "USA", Emissions: RawGasValues{CO2: 40_000_000}},
	}

	worldTotals, records := buildCountryRecords(raw, nil)
	assert.Equal(t, 100.0, worldTotals.CO2)
	assert.Equal(t, 60.0, records[0].Share)
	assert.Equal(t, 40.0, records[1].Share)
}

func TestDisplayNameFallsBackToCode(t *testing.T) {
	names := map[string]string{"USA": "United States of America"}
	assert.Equal(t, "United States of America", displayName("USA", names))
	assert.Equal(t, "XYZ", displayName("XYZ", names))
	assert.Equal(t, "XYZ", displayName("XYZ", nil))
}

func TestTitleCaseSlug(t *testing.T) {
	assert.Equal(t, "Fluorinated Gases", titleCaseSlug("fluorinated-gases"))
	assert.Equal(t, "Space Tourism", titleCaseSlug("space_tourism"))
	assert.Equal(t, "Steel", titleCaseSlug("steel"))
}
