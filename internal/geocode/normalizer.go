// Package geocode turns the ISO country codes carried by aggregate
// records into the display names used by the map-geometry dataset.
package geocode

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/neozeit/dmarcscope/internal/logger"
	"github.com/neozeit/dmarcscope/internal/models"
)

// geometryNameOverrides translates canonical English country names into
// the spelling used by the Natural Earth admin-0 dataset. The naming
// conventions of the code table and the geometry dataset disagree for
// these countries. Data, not logic: extend the table, not the lookup.
var geometryNameOverrides = map[string]string{
	"United States": "United States of America",
	"Russia":        "Russian Federation",
	"South Korea":   "Korea, Republic of",
	"North Korea":   "Korea, Democratic People's Republic of",
	"Iran":          "Iran, Islamic Republic of",
	"Syria":         "Syrian Arab Republic",
	"Venezuela":     "Venezuela, Bolivarian Republic of",
	"Bolivia":       "Bolivia, Plurinational State of",
	"Moldova":       "Moldova, Republic of",
	"Macedonia":     "North Macedonia",
	"Vietnam":       "Viet Nam",
	"Laos":          "Lao People's Democratic Republic",
	"Brunei":        "Brunei Darussalam",
	"Tanzania":      "Tanzania, United Republic of",
	"Congo":         "Congo, Republic of the",
	"Ivory Coast":   "Côte d'Ivoire",
	"Cape Verde":    "Cabo Verde",
	"East Timor":    "Timor-Leste",
}

// CanonicalName resolves an ISO 3166-1 alpha-2 code to its English
// display name. Unresolvable codes (including the "Unknown" pseudo
// country) come back unchanged with ok=false.
func CanonicalName(code string) (string, bool) {
	region, err := language.ParseRegion(code)
	if err != nil {
		return code, false
	}
	name := display.English.Regions().Name(region)
	if name == "" {
		return code, false
	}
	return name, true
}

// GeometryName applies the override table to a canonical country name.
// Names without an override pass through unchanged.
func GeometryName(name string) string {
	if override, ok := geometryNameOverrides[name]; ok {
		return override
	}
	return name
}

type Normalizer struct {
	log logger.Logger
}

func NewNormalizer(log logger.Logger) *Normalizer {
	return &Normalizer{log: log}
}

// DisplayNames rewrites a country ranking from ISO codes to
// geometry-dataset names, preserving order and counts. Codes the code
// table does not recognize keep their original label and are logged,
// never dropped.
func (n *Normalizer) DisplayNames(ranking []models.CountryCount) []models.CountryCount {
	if len(ranking) == 0 {
		return nil
	}
	out := make([]models.CountryCount, 0, len(ranking))
	for _, entry := range ranking {
		name, ok := CanonicalName(entry.Country)
		if !ok {
			n.log.Warnf("Country code %s not recognized", entry.Country)
		}
		out = append(out, models.CountryCount{
			Country:  GeometryName(name),
			Messages: entry.Messages,
		})
	}
	return out
}
