package arrivals

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/devanlim/busarrival/internal/provider"
)

const defaultArrivalURL = "https://datamall2.mytransport.sg/ltaodataservice/BusArrivalv2"

// Client fetches raw arrival records from the provider's BusArrivalv2 endpoint.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates an arrival client. An empty baseURL uses the provider default.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultArrivalURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// busArrivalResponse mirrors the provider's arrival payload. EstimatedArrival
// is ISO8601 or empty when no estimate is available.
type busArrivalResponse struct {
	BusStopCode string `json:"BusStopCode"`
	Services    []struct {
		ServiceNo string     `json:"ServiceNo"`
		Operator  string     `json:"Operator"`
		NextBus   rawVehicle `json:"NextBus"`
		NextBus2  rawVehicle `json:"NextBus2"`
		NextBus3  rawVehicle `json:"NextBus3"`
	} `json:"Services"`
}

type rawVehicle struct {
	EstimatedArrival string `json:"EstimatedArrival"`
	Load             string `json:"Load"`
	Feature          string `json:"Feature"`
	Type             string `json:"Type"`
}

// Services fetches the raw service records for one stop.
func (c *Client) Services(ctx context.Context, stopCode string) ([]RawService, error) {
	params := url.Values{}
	params.Set("BusStopCode", stopCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building arrival request: %w", err)
	}
	req.Header.Set("AccountKey", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching arrivals for stop %s: %w", stopCode, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &provider.Error{Status: resp.StatusCode, Details: string(body)}
	}

	var result busArrivalResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing arrival response: %w", err)
	}

	services := make([]RawService, 0, len(result.Services))
	for _, s := range result.Services {
		services = append(services, RawService{
			ServiceNo: s.ServiceNo,
			Operator:  s.Operator,
			Vehicles: [3]RawVehicle{
				s.NextBus.vehicle(),
				s.NextBus2.vehicle(),
				s.NextBus3.vehicle(),
			},
		})
	}
	return services, nil
}

func (v rawVehicle) vehicle() RawVehicle {
	out := RawVehicle{Load: v.Load, Feature: v.Feature, Type: v.Type}
	if v.EstimatedArrival != "" {
		// The provider emits RFC3339 with a +08:00 offset.
		if t, err := time.Parse(time.RFC3339, v.EstimatedArrival); err == nil {
			out.Estimated = t
		}
	}
	return out
}
