package tags

import "sort"

// CategoryID groups related tags for presentation purposes.
type CategoryID string

const (
	CategoryGear       CategoryID = "gear-category"
	CategoryClothing   CategoryID = "clothing"
	CategoryEssentials CategoryID = "essentials"
	CategoryRiskSafety CategoryID = "risk-safety"
)

// tagCategory maps the known closed-vocabulary tags to their category.
// Tags outside this table are still valid; the grouping is an optional
// layer on top of the open vocabulary.
var tagCategory = map[string]CategoryID{
	"GEAR_BACKPACK_DAYPACK":     CategoryGear,
	"GEAR_UNIVERSAL_ADAPTER":    CategoryGear,
	"GEAR_POWER_BANK":           CategoryGear,
	"GEAR_TRAVEL_BOTTLES":       CategoryGear,
	"GEAR_RAIN_PONCHO":          CategoryGear,
	"CLOTHING_THERMAL_LAYER":    CategoryClothing,
	"ESSENTIALS_DOCUMENT_POUCH": CategoryEssentials,
	"RISK_FIRST_AID_KIT":        CategoryRiskSafety,
	"RISK_ANTI_THEFT_LOCK":      CategoryRiskSafety,
	"RISK_MOSQUITO_REPELLENT":   CategoryRiskSafety,
}

// Category returns the category of a known tag, or false for open tags.
func Category(id string) (CategoryID, bool) {
	c, ok := tagCategory[id]
	return c, ok
}

// Known lists the closed-vocabulary tag identifiers in stable order.
func Known() []string {
	out := make([]string, 0, len(tagCategory))
	for id := range tagCategory {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
