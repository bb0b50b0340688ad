package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/devanlim/busarrival/internal/geo"
	"github.com/devanlim/busarrival/internal/provider"
)

const defaultStopsURL = "https://datamall2.mytransport.sg/ltaodataservice/BusStops"

// Client fetches stop batches from the provider's paginated BusStops endpoint.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a catalog client. An empty baseURL uses the provider default.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultStopsURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// busStopsResponse mirrors the provider's OData envelope.
type busStopsResponse struct {
	Value []struct {
		BusStopCode string  `json:"BusStopCode"`
		RoadName    string  `json:"RoadName"`
		Description string  `json:"Description"`
		Latitude    float64 `json:"Latitude"`
		Longitude   float64 `json:"Longitude"`
	} `json:"value"`
}

// ListStops fetches one batch of stops starting at the given skip offset.
func (c *Client) ListStops(ctx context.Context, skip int) ([]Stop, error) {
	params := url.Values{}
	params.Set("$skip", fmt.Sprintf("%d", skip))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building stops request: %w", err)
	}
	req.Header.Set("AccountKey", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching stops: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &provider.Error{Status: resp.StatusCode, Details: string(body)}
	}

	var result busStopsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing stops response: %w", err)
	}

	stops := make([]Stop, 0, len(result.Value))
	for _, s := range result.Value {
		stops = append(stops, Stop{
			Code:     s.BusStopCode,
			Name:     s.Description,
			RoadName: s.RoadName,
			Location: geo.Coordinate{Lat: s.Latitude, Lng: s.Longitude},
		})
	}
	return stops, nil
}
