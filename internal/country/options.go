package country

import (
	"sort"
	"strings"

	"github.com/Franklivania/go-to-market/internal/model"
)

// CountryOption is a country flattened into a picker-friendly shape.
type CountryOption struct {
	Name           string   `json:"name"`
	Code           string   `json:"code"`
	FlagURL        string   `json:"flagUrl,omitempty"`
	DialCode       string   `json:"dialCode,omitempty"`
	CurrencyCode   string   `json:"currencyCode,omitempty"`
	CurrencyName   string   `json:"currencyName,omitempty"`
	CurrencySymbol string   `json:"currencySymbol,omitempty"`
	Region         string   `json:"region,omitempty"`
	Subregion      string   `json:"subregion,omitempty"`
	Capital        string   `json:"capital,omitempty"`
	Population     int64    `json:"population"`
	Area           float64  `json:"area,omitempty"`
	Languages      []string `json:"languages,omitempty"`
	Timezones      []string `json:"timezones,omitempty"`
	StateCount     int      `json:"stateCount"`

	searchText string
}

// StateOption is a subdivision flattened for pickers.
type StateOption struct {
	Name        string `json:"name"`
	Code        string `json:"code,omitempty"`
	CountryName string `json:"countryName"`
	CountryCode string `json:"countryCode"`

	searchText string
}

// Options holds the flattened catalogue and supports lookups over it.
type Options struct {
	countries []CountryOption
	states    map[string][]StateOption
	collator  interface {
		CompareString(a, b string) int
	}
}

// BuildOptions flattens the reconciled catalogue into picker options,
// sorted by country name.
func (s *Service) BuildOptions(countries []model.Country) *Options {
	opts := &Options{
		countries: make([]CountryOption, 0, len(countries)),
		states:    make(map[string][]StateOption, len(countries)),
		collator:  s.collator,
	}

	for _, c := range countries {
		name := strings.TrimSpace(c.Name.Common)
		if name == "" {
			continue
		}
		code := strings.ToUpper(c.CCA2)

		opt := CountryOption{
			Name:       name,
			Code:       code,
			FlagURL:    flagURL(c.Flags),
			DialCode:   dialCode(c.IDD),
			Region:     c.Region,
			Subregion:  c.Subregion,
			Population: c.Population,
			Area:       c.Area,
			Languages:  languageNames(c.Languages),
			Timezones:  append([]string(nil), c.Timezones...),
			StateCount: len(c.States),
		}
		if len(c.Capital) > 0 {
			opt.Capital = c.Capital[0]
		}
		opt.CurrencyCode, opt.CurrencyName, opt.CurrencySymbol = firstCurrency(c.Currencies)

		parts := []string{name, code, c.CCA3, opt.DialCode, opt.CurrencyCode, opt.CurrencyName, opt.Capital, c.Region, c.Subregion}
		parts = append(parts, opt.Languages...)
		opt.searchText = strings.ToLower(strings.Join(parts, " "))

		opts.countries = append(opts.countries, opt)

		if len(c.States) > 0 && code != "" {
			states := make([]StateOption, 0, len(c.States))
			for _, st := range c.States {
				states = append(states, StateOption{
					Name:        st.Name,
					Code:        st.Code,
					CountryName: name,
					CountryCode: code,
					searchText:  strings.ToLower(strings.Join([]string{st.Name, st.Code, string(st.Type), name}, " ")),
				})
			}
			opts.states[code] = states
		}
	}

	sort.Slice(opts.countries, func(i, j int) bool {
		return s.collator.CompareString(opts.countries[i].Name, opts.countries[j].Name) < 0
	})
	return opts
}

// Countries returns every option in name order.
func (o *Options) Countries() []CountryOption {
	out := make([]CountryOption, len(o.countries))
	copy(out, o.countries)
	return out
}

// StatesForCountry returns the subdivisions for an ISO2 code, empty when
// the country is unknown or has none.
func (o *Options) StatesForCountry(code string) []StateOption {
	states := o.states[strings.ToUpper(code)]
	out := make([]StateOption, len(states))
	copy(out, states)
	return out
}

// Search matches the query against each country's search text (name,
// codes, dial code, currency, capital, region and languages). With
// includeStates it also returns the matching subdivisions of the
// matched countries; a state never surfaces a country its own text
// did not match.
func (o *Options) Search(query string, includeStates bool) ([]CountryOption, []StateOption) {
	q := strings.ToLower(strings.TrimSpace(query))

	var countries []CountryOption
	for _, c := range o.countries {
		if strings.Contains(c.searchText, q) {
			countries = append(countries, c)
		}
	}
	if !includeStates {
		return countries, nil
	}

	var states []StateOption
	for _, c := range countries {
		for _, st := range o.states[c.Code] {
			if strings.Contains(st.searchText, q) {
				states = append(states, st)
			}
		}
	}
	return countries, states
}

// ByRegion groups the options by their region name.
func (o *Options) ByRegion() map[string][]CountryOption {
	grouped := make(map[string][]CountryOption)
	for _, c := range o.countries {
		region := c.Region
		if region == "" {
			region = "Other"
		}
		grouped[region] = append(grouped[region], c)
	}
	return grouped
}

// Popular returns the limit most populous countries. Entries without
// population data are left out.
func (o *Options) Popular(limit int) []CountryOption {
	if limit <= 0 {
		limit = 20
	}
	out := make([]CountryOption, 0, len(o.countries))
	for _, c := range o.countries {
		if c.Population > 0 {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Population > out[j].Population
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// flagURL prefers the raster flag, which renders more predictably in
// image views.
func flagURL(f model.Flags) string {
	if f.PNG != "" {
		return f.PNG
	}
	return f.SVG
}

// dialCode joins the IDD root with its first suffix.
func dialCode(idd model.IDD) string {
	if idd.Root == "" {
		return ""
	}
	if len(idd.Suffixes) > 0 {
		return idd.Root + idd.Suffixes[0]
	}
	return idd.Root
}

// firstCurrency picks the alphabetically first currency code so the
// choice is deterministic regardless of map order.
func firstCurrency(currencies map[string]model.Currency) (code, name, symbol string) {
	if len(currencies) == 0 {
		return "", "", ""
	}
	codes := make([]string, 0, len(currencies))
	for k := range currencies {
		codes = append(codes, k)
	}
	sort.Strings(codes)
	c := currencies[codes[0]]
	return codes[0], c.Name, c.Symbol
}

// languageNames returns the language names in deterministic order.
func languageNames(languages map[string]string) []string {
	if len(languages) == 0 {
		return nil
	}
	names := make([]string, 0, len(languages))
	for _, name := range languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
