package emissions

// Static lookup data used by the aggregators. Kept in one place so the
// groupings can be extended without touching aggregation logic.

// Industry names, in the fixed order charts display them.
const (
	IndustryEnergy         = "Energy"
	IndustryManufacturing  = "Manufacturing"
	IndustryTransportation = "Transportation"
	IndustryBuildings      = "Buildings"
	IndustryAgriculture    = "Agriculture"
	IndustryWasteLandUse   = "Waste & Land Use"
)

// industryOrder drives deterministic output ordering for industries.
var industryOrder = []string{
	IndustryEnergy,
	IndustryManufacturing,
	IndustryTransportation,
	IndustryBuildings,
	IndustryAgriculture,
	IndustryWasteLandUse,
}

// industryColors gives each industry a stable legend color.
var industryColors = map[string]string{
	IndustryEnergy:         "#f59e0b",
	IndustryManufacturing:  "#6366f1",
	IndustryTransportation: "#10b981",
	IndustryBuildings:      "#ef4444",
	IndustryAgriculture:    "#84cc16",
	IndustryWasteLandUse:   "#8b5cf6",
}

// sectorInfo ties an upstream sector slug to its display label and its one
// industry bucket.
type sectorInfo struct {
	slug     string
	label    string
	industry string
}

// sectorTable is the single source for slug display names and the
// sector-to-industry grouping. Each sector belongs to exactly one
// industry; slugs absent from this table are title-cased for display and
// dropped from industry totals.
var sectorTable = []sectorInfo{
	{slug: "electricity-generation", label: "Electricity Generation", industry: IndustryEnergy},
	{slug: "oil-and-gas-production", label: "Oil & Gas Production", industry: IndustryEnergy},
	{slug: "oil-and-gas-refining", label: "Oil & Gas Refining", industry: IndustryEnergy},
	{slug: "oil-and-gas-transport", label: "Oil & Gas Transport", industry: IndustryEnergy},
	{slug: "coal-mining", label: "Coal Mining", industry: IndustryEnergy},
	{slug: "other-energy-use", label: "Other Energy Use", industry: IndustryEnergy},
	{slug: "solid-fuel-transformation", label: "Solid Fuel Transformation", industry: IndustryEnergy},
	{slug: "steel", label: "Steel", industry: IndustryManufacturing},
	{slug: "cement", label: "Cement", industry: IndustryManufacturing},
	{slug: "aluminum", label: "Aluminum", industry: IndustryManufacturing},
	{slug: "chemicals", label: "Chemicals", industry: IndustryManufacturing},
	{slug: "petrochemicals", label: "Petrochemicals", industry: IndustryManufacturing},
	{slug: "pulp-and-paper", label: "Pulp & Paper", industry: IndustryManufacturing},
	{slug: "other-manufacturing", label: "Other Manufacturing", industry: IndustryManufacturing},
	{slug: "mining-and-quarrying", label: "Mining & Quarrying", industry: IndustryManufacturing},
	{slug: "road-transportation", label: "Road Transport", industry: IndustryTransportation},
	{slug: "domestic-aviation", label: "Domestic Aviation", industry: IndustryTransportation},
	{slug: "international-aviation", label: "International Aviation", industry: IndustryTransportation},
	{slug: "domestic-shipping", label: "Domestic Shipping", industry: IndustryTransportation},
	{slug: "international-shipping", label: "International Shipping", industry: IndustryTransportation},
	{slug: "railways", label: "Railways", industry: IndustryTransportation},
	{slug: "other-transport", label: "Other Transport", industry: IndustryTransportation},
	{slug: "residential-onsite-fuel-usage", label: "Residential Buildings", industry: IndustryBuildings},
	{slug: "non-residential-onsite-fuel-usage", label: "Commercial Buildings", industry: IndustryBuildings},
	{slug: "other-onsite-fuel-usage", label: "Other Buildings", industry: IndustryBuildings},
	{slug: "enteric-fermentation-cattle-pasture", label: "Cattle (Pasture)", industry: IndustryAgriculture},
	{slug: "enteric-fermentation-cattle-operation", label: "Cattle (Feedlot)", industry: IndustryAgriculture},
	{slug: "enteric-fermentation-other", label: "Other Livestock", industry: IndustryAgriculture},
	{slug: "manure-management-cattle-operation", label: "Manure Management (Cattle)", industry: IndustryAgriculture},
	{slug: "manure-management-other", label: "Manure Management (Other)", industry: IndustryAgriculture},
	{slug: "rice-cultivation", label: "Rice Cultivation", industry: IndustryAgriculture},
	{slug: "synthetic-fertilizer-application", label: "Synthetic Fertilizer", industry: IndustryAgriculture},
	{slug: "cropland-fires", label: "Cropland Fires", industry: IndustryAgriculture},
	{slug: "crop-residues", label: "Crop Residues", industry: IndustryAgriculture},
	{slug: "other-agricultural-soil-emissions", label: "Other Agricultural Soils", industry: IndustryAgriculture},
	{slug: "solid-waste-disposal", label: "Solid Waste Disposal", industry: IndustryWasteLandUse},
	{slug: "wastewater-treatment-and-discharge", label: "Wastewater Treatment", industry: IndustryWasteLandUse},
	{slug: "biological-treatment-of-solid-waste-and-biogenic", label: "Biological Waste Treatment", industry: IndustryWasteLandUse},
	{slug: "incineration-and-open-burning-of-waste", label: "Waste Incineration", industry: IndustryWasteLandUse},
	{slug: "forest-land-clearing", label: "Forest Clearing", industry: IndustryWasteLandUse},
	{slug: "forest-land-degradation", label: "Forest Degradation", industry: IndustryWasteLandUse},
	{slug: "forest-land-fires", label: "Forest Fires", industry: IndustryWasteLandUse},
	{slug: "shrubgrass-fires", label: "Shrub & Grass Fires", industry: IndustryWasteLandUse},
	{slug: "wetland-fires", label: "Wetland Fires", industry: IndustryWasteLandUse},
	{slug: "net-forest-land", label: "Net Forest Land", industry: IndustryWasteLandUse},
	{slug: "net-shrubgrass", label: "Net Shrub & Grass", industry: IndustryWasteLandUse},
	{slug: "net-wetland", label: "Net Wetland", industry: IndustryWasteLandUse},
	{slug: "removals", label: "Removals", industry: IndustryWasteLandUse},
	{slug: "water-reservoirs", label: "Water Reservoirs", industry: IndustryWasteLandUse},
}

// sectorLabels and sectorIndustry are lookup views over sectorTable.
var sectorLabels, sectorIndustry = func() (map[string]string, map[string]string) {
	labels := make(map[string]string, len(sectorTable))
	industries := make(map[string]string, len(sectorTable))
	for _, s := range sectorTable {
		labels[s.slug] = s.label
		if s.industry != "" {
			industries[s.slug] = s.industry
		}
	}
	return labels, industries
}()

// fallbackIndustryShares is used by the trend aggregator when the window's
// industry breakdown cannot be fetched.
var fallbackIndustryShares = map[string]float64{
	IndustryEnergy:         0.35,
	IndustryManufacturing:  0.21,
	IndustryTransportation: 0.16,
	IndustryBuildings:      0.10,
	IndustryAgriculture:    0.11,
	IndustryWasteLandUse:   0.07,
}

// fallbackTopEmitters is returned, truncated to the requested limit, when
// the registry is empty or every ranking batch fails. Ordered roughly by
// historical CO2 output so a truncated prefix is still meaningful.
var fallbackTopEmitters = []string{
	"CHN", "USA", "IND", "RUS", "JPN", "IRN", "DEU", "SAU", "IDN", "KOR",
	"CAN", "BRA", "TUR", "ZAF", "MEX", "AUS", "GBR", "ITA", "POL", "FRA",
	"VNM", "KAZ", "THA", "EGY", "MYS", "ESP", "ARE", "IRQ", "SGP", "PAK",
	"UKR", "PHL", "NLD", "ARG", "NGA", "BGD", "VEN", "QAT", "KWT", "DZA",
}
