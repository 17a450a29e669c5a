package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const portugalJSON = `[{
	"name": {"common": "Portugal"},
	"capital": ["Lisbon"],
	"region": "Europe",
	"subregion": "Southern Europe",
	"population": 10305564,
	"latlng": [39.5, -8.0],
	"flags": {"png": "https://flagcdn.com/w320/pt.png"},
	"currencies": {"EUR": {"name": "Euro"}},
	"languages": {"por": "Portuguese"}
}]`

func TestFetchCountry(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(portugalJSON))
	}))
	defer server.Close()

	orig := CountryAPIBaseURL
	CountryAPIBaseURL = server.URL
	defer func() { CountryAPIBaseURL = orig }()

	country, err := FetchCountry("Portugal")
	require.NoError(t, err)
	assert.Equal(t, "Portugal", country.Name)
	assert.Equal(t, "Lisbon", country.Capital)
	assert.Equal(t, "Europe", country.Region)
	assert.Equal(t, int64(10305564), country.Population)
	assert.Equal(t, []string{"Euro"}, country.Currencies)
	assert.Equal(t, 39.5, country.Latitude)

	// Second lookup is served from cache.
	_, err = FetchCountry("portugal")
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

func TestFetchCountryNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	orig := CountryAPIBaseURL
	CountryAPIBaseURL = server.URL
	defer func() { CountryAPIBaseURL = orig }()

	_, err := FetchCountry("Atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFetchCountryEmptyName(t *testing.T) {
	_, err := FetchCountry("   ")
	require.Error(t, err)
}
