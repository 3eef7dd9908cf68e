package catalog

import (
	"strings"

	"medley/models"
)

// regionCountries is the source of truth for region labels: each label owns
// the ISO country codes that resolve to it. countryRegion below is derived by
// inversion so the two directions can never disagree.
var regionCountries = map[string][]string{
	models.RegionHollywood: {"US", "CA", "MX", "BR", "AR", "CL"},
	models.RegionBollywood: {"IN"},
	models.RegionBritish:   {"GB", "IE"},
	models.RegionKorean:    {"KR"},
	models.RegionJapanese:  {"JP"},
	models.RegionEuropean:  {"FR", "DE", "IT", "ES", "PT", "NL", "BE", "SE", "NO", "DK", "FI", "PL", "CZ", "AT", "CH", "GR", "TR", "RU", "UA"},
	models.RegionAsian:     {"CN", "TW", "HK", "TH", "VN", "PH", "ID", "MY", "SG", "PK", "BD", "LK", "NP", "IR"},
	models.RegionAfrica:    {"NG", "ZA", "EG", "KE", "MA", "GH"},
	models.RegionOceania:   {"AU", "NZ"},
}

var countryRegion = func() map[string]string {
	m := make(map[string]string)
	for label, codes := range regionCountries {
		for _, code := range codes {
			m[code] = label
		}
	}
	return m
}()

// countryToRegion maps an ISO country code to a UI region label. An unmapped
// code yields RegionOther, an absent one RegionUnknown.
func countryToRegion(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || code == "UNKNOWN" {
		return models.RegionUnknown
	}
	if label, ok := countryRegion[code]; ok {
		return label
	}
	return models.RegionOther
}

// languageCountry is a best-effort fallback for video results that carry an
// original language but no origin country (TMDB movie payloads in particular).
var languageCountry = map[string]string{
	"en": "US",
	"ja": "JP",
	"ko": "KR",
	"hi": "IN",
	"ta": "IN",
	"te": "IN",
	"zh": "CN",
	"cn": "CN",
	"th": "TH",
	"vi": "VN",
	"id": "ID",
	"tl": "PH",
	"fr": "FR",
	"de": "DE",
	"it": "IT",
	"es": "ES",
	"pt": "PT",
	"nl": "NL",
	"sv": "SE",
	"no": "NO",
	"da": "DK",
	"fi": "FI",
	"pl": "PL",
	"cs": "CZ",
	"el": "GR",
	"tr": "TR",
	"ru": "RU",
	"uk": "UA",
	"ar": "EG",
	"fa": "IR",
	"ur": "PK",
	"bn": "BD",
}

// languageToCountry returns the most likely origin country for an ISO language
// code, or "" when the language is not in the map. Region resolution falls
// through to RegionUnknown in that case.
func languageToCountry(lang string) string {
	return languageCountry[strings.ToLower(strings.TrimSpace(lang))]
}

// regionLabelToCountryCodes is the inverse lookup used in discover mode to
// push a region filter upstream as an origin-country constraint. Unmapped
// labels (including Global, Other, Unknown) return nil, in which case no
// upstream filter is applied and the region must be enforced by post-filter.
func regionLabelToCountryCodes(label string) []string {
	for name, codes := range regionCountries {
		if strings.EqualFold(name, strings.TrimSpace(label)) {
			return codes
		}
	}
	return nil
}

// canonicalRegionLabel returns the properly-cased region label for a
// user-supplied value, or "" when the label is not part of the closed set.
func canonicalRegionLabel(label string) string {
	label = strings.TrimSpace(label)
	for name := range regionCountries {
		if strings.EqualFold(name, label) {
			return name
		}
	}
	return ""
}

// resolveRegion derives the canonical region for an item given its explicit
// origin country (may be empty) and original language.
func resolveRegion(country, language string) (region, resolvedCountry string) {
	if strings.TrimSpace(country) == "" {
		country = languageToCountry(language)
	}
	if strings.TrimSpace(country) == "" {
		return models.RegionUnknown, "Unknown"
	}
	return countryToRegion(country), strings.ToUpper(strings.TrimSpace(country))
}

// matchesRegion reports whether an item passes a region post-filter. An empty
// or "all" filter matches everything.
func matchesRegion(item models.Item, region string) bool {
	region = strings.TrimSpace(region)
	if region == "" || strings.EqualFold(region, "all") {
		return true
	}
	return strings.EqualFold(item.Region, region)
}
