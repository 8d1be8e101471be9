package rebates

import "strings"

// CatalogEntry is one program from the static rebate catalog. The catalog is
// compiled in; saved rebates denormalize these fields rather than referencing
// them.
type CatalogEntry struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Provider        string `json:"provider"`
	BuildingType    string `json:"building_type"`
	IncentiveAmount string `json:"incentive_amount"`
	Description     string `json:"description"`
	WebsiteURL      string `json:"website_url"`
}

// catalog lists the Ontario residential insulation programs the finder
// surfaces today.
var catalog = []CatalogEntry{
	{
		ID:              "RB-001",
		Name:            "Enbridge HER+ Program",
		Provider:        "Enbridge Gas",
		BuildingType:    "Residential",
		IncentiveAmount: "Up to $10,000",
		Description:     "Home Efficiency Rebate Plus for attic, wall and basement insulation upgrades.",
		WebsiteURL:      "https://www.enbridgegas.com/rebates-energy-conservation/home-efficiency-rebate-plus",
	},
	{
		ID:              "RB-002",
		Name:            "Home Energy Loan Program (HELP)",
		Provider:        "City of Toronto",
		BuildingType:    "Residential",
		IncentiveAmount: "Low-interest financing",
		Description:     "Fixed-rate financing for home energy improvements including insulation.",
		WebsiteURL:      "https://www.toronto.ca/services-payments/water-environment/environmental-grants-incentives/home-energy-loan-program-help/",
	},
	{
		ID:              "RB-003",
		Name:            "HELP Incentives - Toronto",
		Provider:        "City of Toronto",
		BuildingType:    "Residential",
		IncentiveAmount: "Varies by measure",
		Description:     "Incentive top-ups for HELP participants completing eligible retrofits.",
		WebsiteURL:      "https://www.toronto.ca/services-payments/water-environment/environmental-grants-incentives/",
	},
	{
		ID:              "RB-004",
		Name:            "Renovate Lanark",
		Provider:        "Lanark County",
		BuildingType:    "Residential",
		IncentiveAmount: "Up to $20,000",
		Description:     "Forgivable loans for essential repairs and energy upgrades for qualifying homeowners.",
		WebsiteURL:      "https://www.lanarkcounty.ca/en/resident-services/housing.aspx",
	},
	{
		ID:              "RB-005",
		Name:            "Save ON - Energy Affordability Program",
		Provider:        "IESO",
		BuildingType:    "Residential",
		IncentiveAmount: "Free upgrades",
		Description:     "No-cost insulation and draft proofing for income-eligible households.",
		WebsiteURL:      "https://saveonenergy.ca/en/For-Your-Home/Energy-Affordability-Program",
	},
	{
		ID:              "RB-006",
		Name:            "Home Winterproofing Program (Enbridge)",
		Provider:        "Enbridge Gas",
		BuildingType:    "Residential",
		IncentiveAmount: "Free upgrades",
		Description:     "Free insulation, draft proofing and smart thermostats for eligible customers.",
		WebsiteURL:      "https://www.enbridgegas.com/rebates-energy-conservation/home-winterproofing-program",
	},
	{
		ID:              "RB-007",
		Name:            "Better Homes Kingston",
		Provider:        "City of Kingston",
		BuildingType:    "Residential",
		IncentiveAmount: "Low-interest financing",
		Description:     "Financing for deep energy retrofits of Kingston homes.",
		WebsiteURL:      "https://www.cityofkingston.ca/residents/environment-sustainability/climate-change/better-homes-kingston/",
	},
	{
		ID:              "RB-008",
		Name:            "Better Homes Ottawa",
		Provider:        "City of Ottawa",
		BuildingType:    "Residential",
		IncentiveAmount: "Low-interest financing",
		Description:     "Loan program supporting insulation and other home energy improvements in Ottawa.",
		WebsiteURL:      "https://ottawa.ca/en/living-ottawa/environment-conservation-and-climate/climate-change/better-homes-ottawa",
	},
}

// Catalog returns the full program list, filtered by query when non-blank.
// Matching is case-insensitive against program id and name.
func Catalog(query string) []CatalogEntry {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		out := make([]CatalogEntry, len(catalog))
		copy(out, catalog)
		return out
	}

	matches := []CatalogEntry{}
	for _, entry := range catalog {
		if strings.Contains(strings.ToLower(entry.ID), normalized) ||
			strings.Contains(strings.ToLower(entry.Name), normalized) {
			matches = append(matches, entry)
		}
	}
	return matches
}

// CatalogEntryByID looks up one program; ok is false for unknown ids.
func CatalogEntryByID(id string) (CatalogEntry, bool) {
	for _, entry := range catalog {
		if strings.EqualFold(entry.ID, strings.TrimSpace(id)) {
			return entry, true
		}
	}
	return CatalogEntry{}, false
}
