// Package aahotels implements the AAdvantage Hotels portal client:
// place discovery, search-session creation, and paginated result
// retrieval, authenticated with captured browser session headers.
package aahotels

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/bradfox2/aa-hotel-optimizer/internal/model"
	"github.com/bradfox2/aa-hotel-optimizer/internal/points"
)

// DefaultBaseURL is the portal's REST root.
const DefaultBaseURL = "https://www.aadvantagehotels.com/rest/aadvantage-hotels"

// Per-call timeouts. Result retrieval is the slowest endpoint.
const (
	placesTimeout  = 10 * time.Second
	searchTimeout  = 15 * time.Second
	resultsTimeout = 20 * time.Second
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Config configures a Client. Headers are the captured session headers
// (cookie, xsrf token); they overlay the baseline browser headers on
// every request.
type Config struct {
	BaseURL          string
	Headers          map[string]string
	CardBonusEnabled bool
	CardMilesRate    int
	MilesValueRate   float64
	HTTPClient       *http.Client
}

// Client talks to the portal API. It implements service.PlaceResolver
// and service.StayFetcher.
type Client struct {
	baseURL          string
	headers          map[string]string
	cardBonusEnabled bool
	cardMilesRate    int
	milesValueRate   float64
	httpClient       *http.Client
}

// NewClient builds a Client, applying defaults for anything unset.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	milesRate := cfg.CardMilesRate
	if milesRate == 0 {
		milesRate = 10
	}
	valueRate := cfg.MilesValueRate
	if valueRate <= 0 {
		valueRate = points.DefaultMilesValueRate
	}
	return &Client{
		baseURL:          baseURL,
		headers:          cfg.Headers,
		cardBonusEnabled: cfg.CardBonusEnabled,
		cardMilesRate:    milesRate,
		milesValueRate:   valueRate,
		httpClient:       httpClient,
	}
}

// ResolvePlaces looks up portal places matching query. City-scoped
// entries are surfaced first, area entries after, deduplicated by ID.
func (c *Client) ResolvePlaces(ctx context.Context, query string) ([]model.Place, error) {
	ctx, cancel := context.WithTimeout(ctx, placesTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("query", query)
	params.Set("source", "AGODA")
	params.Set("language", "en")
	params.Set("includeHotelNames", "true")

	var entries []placeEntry
	if err := c.getJSON(ctx, c.baseURL+"/places?"+params.Encode(), &entries); err != nil {
		return nil, fmt.Errorf("place lookup for %q: %w", query, err)
	}

	places := make([]model.Place, 0, len(entries))
	seen := make(map[string]bool)
	for _, pass := range []string{"AGODA_CITY", "AGODA_AREA"} {
		for _, e := range entries {
			if e.Type != pass || e.ID == "" || e.Name == "" || seen[e.ID] {
				continue
			}
			seen[e.ID] = true
			places = append(places, model.Place{DisplayName: e.Name, ID: e.ID})
		}
	}

	slog.Debug("resolved places", "query", query, "count", len(places))
	return places, nil
}

// CreateSearch initiates a portal search session for a one-night stay
// and returns the session UUID used to retrieve results.
func (c *Client) CreateSearch(ctx context.Context, placeID, query string, checkIn, checkOut model.Date) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("adults", "1")
	params.Set("checkIn", checkIn.String())
	params.Set("checkOut", checkOut.String())
	params.Set("children", "0")
	params.Set("currency", "USD")
	params.Set("language", "en")
	params.Set("locationType", "CITY")
	params.Set("mode", "earn")
	params.Set("numberOfChildren", "0")
	params.Set("placeId", placeID)
	params.Set("program", "aadvantage")
	params.Set("promotion", "")
	params.Set("query", query)
	params.Set("rooms", "1")
	params.Set("source", "AGODA")

	var resp searchInitResponse
	if err := c.getJSON(ctx, c.baseURL+"/searchRequest?"+params.Encode(), &resp); err != nil {
		return "", fmt.Errorf("search init for %q on %s: %w", query, checkIn, err)
	}
	if resp.UUID == "" {
		return "", fmt.Errorf("search init for %q on %s: no uuid in response", query, checkIn)
	}
	return resp.UUID, nil
}

// FetchResults retrieves the first page of hotel results for an
// initiated search session.
func (c *Client) FetchResults(ctx context.Context, searchID string) (*resultsResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, resultsTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("hotelImageHeight", "368")
	params.Set("hotelImageWidth", "704")
	params.Set("pageSize", "45")
	params.Set("pageNumber", "1")

	var resp resultsResponse
	if err := c.getJSON(ctx, c.baseURL+"/search/"+searchID+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("results for search %s: %w", searchID, err)
	}
	return &resp, nil
}

// FetchStays runs the full per-date pipeline: initiate a one-night
// search, retrieve its results, and parse them into stay options with
// ingestion-time card earn applied. Errors cover transport and decode
// failures only; the caller treats any error as zero stays for the date.
func (c *Client) FetchStays(ctx context.Context, checkIn model.Date, location, placeID string) ([]model.StayOption, error) {
	searchID, err := c.CreateSearch(ctx, placeID, location, checkIn, checkIn.Next())
	if err != nil {
		return nil, err
	}

	results, err := c.FetchResults(ctx, searchID)
	if err != nil {
		return nil, err
	}

	stays := c.parseResults(results, location, checkIn)
	slog.Debug("fetched stays",
		"location", location,
		"date", checkIn.String(),
		"count", len(stays))
	return stays, nil
}

// getJSON issues an authenticated GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("User-Agent", defaultUserAgent)
	for name, value := range c.headers {
		req.Header.Set(name, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("portal API error: %d - %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
