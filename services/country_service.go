package services

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Country is the subset of the public countries API the discover browser
// renders.
type Country struct {
	Name       string   `json:"name"`
	Capital    string   `json:"capital"`
	Region     string   `json:"region"`
	Subregion  string   `json:"subregion"`
	Population int64    `json:"population"`
	FlagURL    string   `json:"flag_url"`
	Currencies []string `json:"currencies"`
	Languages  []string `json:"languages"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
}

type restCountry struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Capital    []string `json:"capital"`
	Region     string   `json:"region"`
	Subregion  string   `json:"subregion"`
	Population int64    `json:"population"`
	Latlng     []float64 `json:"latlng"`
	Flags      struct {
		PNG string `json:"png"`
	} `json:"flags"`
	Currencies map[string]struct {
		Name string `json:"name"`
	} `json:"currencies"`
	Languages map[string]string `json:"languages"`
}

var (
	countryCache   = make(map[string]Country)
	countryCacheMu sync.RWMutex
)

// CountryAPIBaseURL points at the public countries API; tests swap it for a
// local server.
var CountryAPIBaseURL = "https://restcountries.com/v3.1"

// FetchCountry looks a country up by name, serving repeat lookups from an
// in-process cache. Country facts do not change, so cached entries never
// expire.
func FetchCountry(name string) (*Country, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("country name is required")
	}

	countryCacheMu.RLock()
	if cached, ok := countryCache[key]; ok {
		countryCacheMu.RUnlock()
		return &cached, nil
	}
	countryCacheMu.RUnlock()

	log.Printf("Fetching country info for %q from API...", key)
	endpoint := fmt.Sprintf("%s/name/%s?fullText=false", CountryAPIBaseURL, url.PathEscape(key))

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("country %q not found", name)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("country API returned status %d", resp.StatusCode)
	}

	var results []restCountry
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("country %q not found", name)
	}

	country := fromRestCountry(results[0])

	countryCacheMu.Lock()
	countryCache[key] = country
	countryCacheMu.Unlock()

	return &country, nil
}

func fromRestCountry(rc restCountry) Country {
	c := Country{
		Name:       rc.Name.Common,
		Region:     rc.Region,
		Subregion:  rc.Subregion,
		Population: rc.Population,
		FlagURL:    rc.Flags.PNG,
	}
	if len(rc.Capital) > 0 {
		c.Capital = rc.Capital[0]
	}
	if len(rc.Latlng) == 2 {
		c.Latitude = rc.Latlng[0]
		c.Longitude = rc.Latlng[1]
	}
	for _, cur := range rc.Currencies {
		c.Currencies = append(c.Currencies, cur.Name)
	}
	for _, lang := range rc.Languages {
		c.Languages = append(c.Languages, lang)
	}
	return c
}
