package model

// StateType classifies a first-level administrative subdivision.
type StateType string

const (
	StateTypeState            StateType = "state"
	StateTypeProvince         StateType = "province"
	StateTypeRegion           StateType = "region"
	StateTypeTerritory        StateType = "territory"
	StateTypeFederalDistrict  StateType = "federal district"
	StateTypeCountry          StateType = "country"
	StateTypeMunicipality     StateType = "municipality"
	StateTypeAutonomousRegion StateType = "autonomous region"
)

// StateRegion is a first-level subdivision of a country. The enrichment
// source does not distinguish subdivision kinds, so Type is always "state"
// for merged data.
type StateRegion struct {
	Name string    `json:"name"`
	Code string    `json:"code,omitempty"`
	Type StateType `json:"type"`
}

// CountryName holds the canonical common name of a country.
type CountryName struct {
	Common string `json:"common"`
}

// Flags holds normalized flag image references, raster and vector.
type Flags struct {
	PNG string `json:"png,omitempty"`
	SVG string `json:"svg,omitempty"`
}

// IDD is the international direct dialing prefix of a country.
type IDD struct {
	Root     string   `json:"root,omitempty"`
	Suffixes []string `json:"suffixes,omitempty"`
}

// Currency describes one currency a country uses.
type Currency struct {
	Name   string `json:"name,omitempty"`
	Symbol string `json:"symbol,omitempty"`
}

// Country is a record from the primary country dataset, optionally
// enriched with subdivisions. It is transient and never persisted.
type Country struct {
	Name       CountryName         `json:"name"`
	Flags      Flags               `json:"flags"`
	IDD        IDD                 `json:"idd"`
	Currencies map[string]Currency `json:"currencies,omitempty"`
	Region     string              `json:"region,omitempty"`
	Subregion  string              `json:"subregion,omitempty"`
	Capital    []string            `json:"capital,omitempty"`
	Population int64               `json:"population,omitempty"`
	Area       float64             `json:"area,omitempty"`
	Languages  map[string]string   `json:"languages,omitempty"`
	Timezones  []string            `json:"timezones,omitempty"`
	CCA2       string              `json:"cca2,omitempty"`
	CCA3       string              `json:"cca3,omitempty"`
	States     []StateRegion       `json:"states"`
}
