// Package country fetches the world country catalogue and enriches it
// with state and region subdivisions from a second provider. The primary
// catalogue is required; subdivision enrichment is best effort.
package country

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Franklivania/go-to-market/internal/model"
)

const (
	defaultCountriesURL = "https://restcountries.com/v3.1/all?fields=name,flags,idd,currencies,region,subregion,capital,population,area,languages,timezones,cca2,cca3"
	defaultStatesURL    = "https://countriesnow.space/api/v0.1/countries/states"
)

// Service reconciles country data from the two upstream providers.
type Service struct {
	client       *http.Client
	countriesURL string
	statesURL    string
	logger       *slog.Logger
	collator     *collate.Collator
}

func NewService(logger *slog.Logger) *Service {
	return &Service{
		client:       &http.Client{Timeout: 30 * time.Second},
		countriesURL: defaultCountriesURL,
		statesURL:    defaultStatesURL,
		logger:       logger,
		collator:     collate.New(language.English),
	}
}

// statesResponse is the subdivision provider's envelope.
type statesResponse struct {
	Error bool   `json:"error"`
	Msg   string `json:"msg"`
	Data  []struct {
		Name   string `json:"name"`
		ISO2   string `json:"iso2"`
		ISO3   string `json:"iso3"`
		States []struct {
			Name      string `json:"name"`
			StateCode string `json:"state_code"`
		} `json:"states"`
	} `json:"data"`
}

// FetchCountries returns the full reconciled catalogue. A failure of the
// primary provider fails the whole call; a failure of the subdivision
// provider leaves every country with an empty states slice.
func (s *Service) FetchCountries(ctx context.Context) ([]model.Country, error) {
	countries, err := s.fetchPrimary(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.mergeStates(ctx, countries); err != nil {
		s.logger.Warn("state enrichment unavailable", "error", err)
	}
	return countries, nil
}

func (s *Service) fetchPrimary(ctx context.Context) ([]model.Country, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.countriesURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build countries request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch countries: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch countries: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read countries response: %w", err)
	}

	var countries []model.Country
	if err := json.Unmarshal(body, &countries); err != nil {
		return nil, fmt.Errorf("decode countries response: %w", err)
	}

	for i := range countries {
		// Every country carries a states slice even when enrichment
		// never runs, so consumers see an empty set, not an absent one.
		countries[i].States = []model.StateRegion{}
	}
	return countries, nil
}

// mergeStates attaches subdivisions in place. Countries the provider
// does not know keep their empty slice; provider entries that match no
// country are skipped.
func (s *Service) mergeStates(ctx context.Context, countries []model.Country) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.statesURL, nil)
	if err != nil {
		return fmt.Errorf("build states request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch states: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch states: unexpected status %d", resp.StatusCode)
	}

	var payload statesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("decode states response: %w", err)
	}
	if payload.Error {
		return fmt.Errorf("states provider error: %s", payload.Msg)
	}

	byName := make(map[string]*model.Country, len(countries))
	byISO2 := make(map[string]*model.Country, len(countries))
	byISO3 := make(map[string]*model.Country, len(countries))
	for i := range countries {
		c := &countries[i]
		if n := strings.ToLower(strings.TrimSpace(c.Name.Common)); n != "" {
			byName[n] = c
		}
		if c.CCA2 != "" {
			byISO2[strings.ToUpper(c.CCA2)] = c
		}
		if c.CCA3 != "" {
			byISO3[strings.ToUpper(c.CCA3)] = c
		}
	}

	matched := 0
	for _, entry := range payload.Data {
		var target *model.Country
		if iso2 := strings.ToUpper(strings.TrimSpace(entry.ISO2)); iso2 != "" {
			target = byISO2[iso2]
		}
		if target == nil {
			if iso3 := strings.ToUpper(strings.TrimSpace(entry.ISO3)); iso3 != "" {
				target = byISO3[iso3]
			}
		}
		if target == nil {
			target = byName[strings.ToLower(strings.TrimSpace(entry.Name))]
		}
		if target == nil {
			continue
		}

		states := make([]model.StateRegion, 0, len(entry.States))
		for _, st := range entry.States {
			name := strings.TrimSpace(st.Name)
			if name == "" {
				continue
			}
			states = append(states, model.StateRegion{
				Name: name,
				Code: strings.TrimSpace(st.StateCode),
				Type: model.StateTypeState,
			})
		}
		if len(states) == 0 {
			continue
		}

		sort.Slice(states, func(i, j int) bool {
			return s.collator.CompareString(states[i].Name, states[j].Name) < 0
		})
		target.States = states
		matched++
	}

	s.logger.Debug("merged subdivision data", "providers_entries", len(payload.Data), "matched", matched)
	return nil
}
