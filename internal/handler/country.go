package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/Franklivania/go-to-market/internal/country"
)

// countryCacheTTL bounds how stale the served catalogue can get. The
// upstream datasets change rarely.
const countryCacheTTL = 12 * time.Hour

type CountryHandler struct {
	service *country.Service

	mu        sync.Mutex
	options   *country.Options
	fetchedAt time.Time
}

func NewCountryHandler(service *country.Service) *CountryHandler {
	return &CountryHandler{service: service}
}

func (h *CountryHandler) load(r *http.Request) (*country.Options, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.options != nil && time.Since(h.fetchedAt) < countryCacheTTL {
		return h.options, nil
	}

	countries, err := h.service.FetchCountries(r.Context())
	if err != nil {
		// Serve the stale catalogue over an error if we have one.
		if h.options != nil {
			return h.options, nil
		}
		return nil, err
	}

	h.options = h.service.BuildOptions(countries)
	h.fetchedAt = time.Now()
	return h.options, nil
}

// Countries returns the flattened country catalogue, optionally filtered
// by ?q= (with ?states=true also returning the matching subdivisions of
// the matched countries) or grouped by ?region=true.
func (h *CountryHandler) Countries(w http.ResponseWriter, r *http.Request) {
	opts, err := h.load(r)
	if err != nil {
		writeError(w, http.StatusBadGateway, "country data unavailable")
		return
	}

	q := r.URL.Query()
	if q.Get("region") == "true" {
		writeJSON(w, http.StatusOK, opts.ByRegion())
		return
	}
	if query := q.Get("q"); query != "" {
		includeStates := q.Get("states") == "true"
		countries, states := opts.Search(query, includeStates)
		if countries == nil {
			countries = []country.CountryOption{}
		}
		if !includeStates {
			writeJSON(w, http.StatusOK, countries)
			return
		}
		if states == nil {
			states = []country.StateOption{}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"countries": countries,
			"states":    states,
		})
		return
	}
	writeJSON(w, http.StatusOK, opts.Countries())
}

// States returns the subdivisions of one country by ISO2 code.
func (h *CountryHandler) States(w http.ResponseWriter, r *http.Request) {
	opts, err := h.load(r)
	if err != nil {
		writeError(w, http.StatusBadGateway, "country data unavailable")
		return
	}
	writeJSON(w, http.StatusOK, opts.StatesForCountry(r.PathValue("code")))
}

// Popular returns the most populous countries for quick pickers.
func (h *CountryHandler) Popular(w http.ResponseWriter, r *http.Request) {
	opts, err := h.load(r)
	if err != nil {
		writeError(w, http.StatusBadGateway, "country data unavailable")
		return
	}
	writeJSON(w, http.StatusOK, opts.Popular(20))
}
